/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyvaluestore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
)

const (
	newDirMode  = 0700
	newFileMode = 0600
)

// KeySerializer converts a key to a unique file path
type KeySerializer func(key interface{}) (string, error)

// Marshaller marshals a value into a byte array
type Marshaller func(value interface{}) ([]byte, error)

// Unmarshaller unmarshals a value from a byte array
type Unmarshaller func(value []byte) (interface{}, error)

// FileKeyValueStore stores each value into a separate file under path.
// The SDK keeps session tokens in it, one file per backend.
type FileKeyValueStore struct {
	path          string
	keySerializer KeySerializer
	marshaller    Marshaller
	unmarshaller  Unmarshaller
}

// FileKeyValueStoreOptions allow overriding store defaults
type FileKeyValueStoreOptions struct {
	// Store path, mandatory
	Path string
	// Optional. If not provided, keys are plain file names under Path.
	KeySerializer KeySerializer
	// Optional. If not provided, []byte and string values are stored as is.
	Marshaller Marshaller
	// Optional. If not provided, values are returned as []byte.
	Unmarshaller Unmarshaller
}

func defaultMarshaller(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.Errorf("converting value of type %T to byte array failed", value)
	}
}

func defaultUnmarshaller(value []byte) (interface{}, error) {
	return value, nil
}

// StringUnmarshaller returns stored values as strings
func StringUnmarshaller(value []byte) (interface{}, error) {
	return string(value), nil
}

// GetPath returns the store path
func (fkvs *FileKeyValueStore) GetPath() string {
	return fkvs.path
}

// New creates a new instance of FileKeyValueStore using provided options
func New(opts *FileKeyValueStoreOptions) (*FileKeyValueStore, error) {
	if opts == nil {
		return nil, errors.New("FileKeyValueStoreOptions is nil")
	}
	if opts.Path == "" {
		return nil, errors.New("FileKeyValueStore path is empty")
	}
	keySerializer := opts.KeySerializer
	if keySerializer == nil {
		keySerializer = func(key interface{}) (string, error) {
			keyString, ok := key.(string)
			if !ok {
				return "", errors.New("converting key to string failed")
			}
			if keyString == "" || strings.ContainsAny(keyString, `/\`) || keyString == "." || keyString == ".." {
				return "", errors.Errorf("invalid key [%s]", keyString)
			}
			return filepath.Join(opts.Path, keyString), nil
		}
	}
	marshaller := opts.Marshaller
	if marshaller == nil {
		marshaller = defaultMarshaller
	}
	unmarshaller := opts.Unmarshaller
	if unmarshaller == nil {
		unmarshaller = defaultUnmarshaller
	}
	return &FileKeyValueStore{
		path:          opts.Path,
		keySerializer: keySerializer,
		marshaller:    marshaller,
		unmarshaller:  unmarshaller,
	}, nil
}

// Load returns the value stored in the store for a key.
// If a value for the key was not found, returns (nil, core.ErrKeyValueNotFound)
func (fkvs *FileKeyValueStore) Load(key interface{}) (interface{}, error) {
	file, err := fkvs.keySerializer(key)
	if err != nil {
		return nil, err
	}
	bytes, err := ioutil.ReadFile(file) // nolint: gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrKeyValueNotFound
		}
		return nil, errors.Wrapf(err, "reading %s failed", file)
	}
	return fkvs.unmarshaller(bytes)
}

// Store sets the value for the key. The file is replaced atomically.
func (fkvs *FileKeyValueStore) Store(key interface{}, value interface{}) error {
	if key == nil {
		return errors.New("key is nil")
	}
	if value == nil {
		return errors.New("value is nil")
	}
	file, err := fkvs.keySerializer(key)
	if err != nil {
		return err
	}
	valueBytes, err := fkvs.marshaller(value)
	if err != nil {
		return err
	}
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, newDirMode); err != nil {
		return errors.Wrapf(err, "creating %s failed", dir)
	}

	tmp, err := ioutil.TempFile(dir, ".kv-")
	if err != nil {
		return errors.Wrap(err, "creating temp file failed")
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(valueBytes); err != nil {
		tmp.Close() // nolint: errcheck
		return errors.Wrap(err, "writing value failed")
	}
	if err := tmp.Chmod(newFileMode); err != nil {
		tmp.Close() // nolint: errcheck
		return errors.Wrap(err, "chmod failed")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file failed")
	}
	return os.Rename(tmp.Name(), file)
}

// Delete deletes the value for a key. Deleting a missing key is not an error.
func (fkvs *FileKeyValueStore) Delete(key interface{}) error {
	if key == nil {
		return errors.New("key is nil")
	}
	file, err := fkvs.keySerializer(key)
	if err != nil {
		return err
	}
	err = os.Remove(file)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s failed", file)
	}
	return nil
}
