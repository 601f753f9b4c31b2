/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import "github.com/zhang829-666/BookchainHF/pkg/common/providers/core"

// MockConfigBackend mocks config backend for unit tests
type MockConfigBackend struct {
	//KeyValueMap map to override CustomBackend key-values.
	KeyValueMap map[string]interface{}
}

// NewMockConfigBackend returns a backend serving the given key-values
func NewMockConfigBackend(kv map[string]interface{}) *MockConfigBackend {
	return &MockConfigBackend{KeyValueMap: kv}
}

// Lookup returns the value for given key. Lookup options are ignored.
func (b *MockConfigBackend) Lookup(key string, opts ...core.LookupOption) (interface{}, bool) {
	v, ok := b.KeyValueMap[key]
	return v, ok
}

// Provider returns a config provider serving this backend
func (b *MockConfigBackend) Provider() core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		return []core.ConfigBackend{b}, nil
	}
}
