/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"sync"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
)

// MockStateStore is an in-memory key value store
type MockStateStore struct {
	mutex  sync.RWMutex
	values map[interface{}]interface{}
	// Err, when set, is returned by every operation
	Err error
}

// NewMockStateStore returns an empty store
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{values: make(map[interface{}]interface{})}
}

// Store sets the value for the key.
func (s *MockStateStore) Store(key interface{}, value interface{}) error {
	if s.Err != nil {
		return s.Err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[key] = value
	return nil
}

// Load returns the value stored in the store for a key.
func (s *MockStateStore) Load(key interface{}) (interface{}, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, core.ErrKeyValueNotFound
	}
	return v, nil
}

// Delete deletes the value for a key.
func (s *MockStateStore) Delete(key interface{}) error {
	if s.Err != nil {
		return s.Err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.values, key)
	return nil
}
