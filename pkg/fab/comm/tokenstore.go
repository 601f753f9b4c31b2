/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
)

// MemoryTokenStore keeps the session token in memory
type MemoryTokenStore struct {
	mutex sync.RWMutex
	token string
}

var _ bookchain.TokenStore = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore returns an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token returns the stored token, empty if none
func (s *MemoryTokenStore) Token() (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token, nil
}

// SetToken stores token
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = token
	return nil
}

// ClearToken removes the token
func (s *MemoryTokenStore) ClearToken() error {
	return s.SetToken("")
}

// KVTokenStore persists the session token in a key value store
type KVTokenStore struct {
	store core.KVStore
	key   string
}

var _ bookchain.TokenStore = (*KVTokenStore)(nil)

// NewKVTokenStore returns a token store saving the token under key
func NewKVTokenStore(store core.KVStore, key string) (*KVTokenStore, error) {
	if store == nil {
		return nil, errors.New("key value store is nil")
	}
	if key == "" {
		return nil, errors.New("token key is empty")
	}
	return &KVTokenStore{store: store, key: key}, nil
}

// Token loads the token. A missing token is returned as empty.
func (s *KVTokenStore) Token() (string, error) {
	v, err := s.store.Load(s.key)
	if err != nil {
		if err == core.ErrKeyValueNotFound {
			return "", nil
		}
		return "", errors.WithMessage(err, "loading token failed")
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", errors.Errorf("unexpected token value type %T", v)
	}
}

// SetToken saves token. Setting an empty token clears it.
func (s *KVTokenStore) SetToken(token string) error {
	if token == "" {
		return s.ClearToken()
	}
	return errors.WithMessage(s.store.Store(s.key, token), "storing token failed")
}

// ClearToken deletes the saved token
func (s *KVTokenStore) ClearToken() error {
	return errors.WithMessage(s.store.Delete(s.key), "deleting token failed")
}

// TokenKey derives a file safe store key from the server URL, e.g.
// http://localhost:8080 becomes localhost_8080
func TokenKey(serverURL string) string {
	host := serverURL
	if u, err := url.Parse(serverURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(host)
}
