/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyvaluestore

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
)

func TestDefaultFKVS(t *testing.T) {
	testFKVS(t, t.TempDir(), nil)
}

func TestFKVSWithCustomKeySerializer(t *testing.T) {
	storePath := t.TempDir()
	keySerializer := func(key interface{}) (string, error) {
		keyString, ok := key.(string)
		if !ok {
			return "", errors.New("converting key to string failed")
		}
		return filepath.Join(storePath, fmt.Sprintf("servers/%s/token", keyString)), nil
	}
	testFKVS(t, storePath, keySerializer)
}

func testFKVS(t *testing.T, storePath string, keySerializer KeySerializer) {
	var store core.KVStore
	store, err := New(&FileKeyValueStoreOptions{Path: storePath, KeySerializer: keySerializer})
	require.NoError(t, err)

	err = store.Store(nil, []byte("1234"))
	assert.EqualError(t, err, "key is nil")
	err = store.Store("key", nil)
	assert.EqualError(t, err, "value is nil")

	require.NoError(t, store.Store("localhost_8080", []byte("token-a")))
	require.NoError(t, store.Store("bookchain.example.com", "token-b"))

	checkKeyValue(t, store, "localhost_8080", []byte("token-a"))
	checkKeyValue(t, store, "bookchain.example.com", []byte("token-b"))

	_, err = store.Load("non-existing")
	assert.Equal(t, core.ErrKeyValueNotFound, err)

	require.NoError(t, store.Store("empty-string", []byte("")))
	v, err := store.Load("empty-string")
	require.NoError(t, err)
	assert.Equal(t, []byte{}, v)
}

func checkKeyValue(t *testing.T, store core.KVStore, key string, value []byte) {
	v, err := store.Load(key)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	file, err := store.(*FileKeyValueStore).keySerializer(key)
	require.NoError(t, err)
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(newFileMode), info.Mode().Perm())

	require.NoError(t, store.Delete(key))
	_, err = store.Load(key)
	assert.Equal(t, core.ErrKeyValueNotFound, err)
	require.NoError(t, store.Delete(key), "deleting twice is fine")
}

func TestOverwriteLeavesNoTempFiles(t *testing.T) {
	storePath := t.TempDir()
	store, err := New(&FileKeyValueStoreOptions{Path: storePath, Unmarshaller: StringUnmarshaller})
	require.NoError(t, err)

	require.NoError(t, store.Store("token", "first"))
	require.NoError(t, store.Store("token", "second"))

	v, err := store.Load("token")
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	entries, err := ioutil.ReadDir(storePath)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInvalidKeysAndValues(t *testing.T) {
	store, err := New(&FileKeyValueStoreOptions{Path: t.TempDir()})
	require.NoError(t, err)

	assert.Error(t, store.Store("../escape", "x"))
	assert.Error(t, store.Store("", "x"))
	assert.Error(t, store.Store(42, "x"))
	assert.Error(t, store.Store("number", 42))
	_, err = store.Load("a/b")
	assert.Error(t, err)
}

func TestCreateNewFileKeyValueStore(t *testing.T) {
	_, err := New(&FileKeyValueStoreOptions{Path: ""})
	assert.EqualError(t, err, "FileKeyValueStore path is empty")

	_, err = New(nil)
	assert.EqualError(t, err, "FileKeyValueStoreOptions is nil")

	store, err := New(&FileKeyValueStoreOptions{Path: "/tmp/bcsdk-kvstore"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bcsdk-kvstore", store.GetPath())
}
