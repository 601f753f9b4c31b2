/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"sort"
)

// Param is a named chaincode argument
type Param struct {
	Key   string
	Value interface{}
}

// Params is an ordered set of chaincode arguments. Keys are unique.
type Params []Param

// NewParams builds params from alternating keys and values. A trailing key
// without a value gets a nil value.
func NewParams(keysAndValues ...interface{}) Params {
	var p Params
	for i := 0; i < len(keysAndValues); i += 2 {
		key, _ := keysAndValues[i].(string)
		var value interface{}
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		p = p.Set(key, value)
	}
	return p
}

// ParamsFromMap returns the entries of m ordered by key
func ParamsFromMap(m map[string]interface{}) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Params, 0, len(keys))
	for _, k := range keys {
		p = append(p, Param{Key: k, Value: m[k]})
	}
	return p
}

// Get returns the value for key
func (p Params) Get(key string) (interface{}, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Set returns params with key set to value. An existing key keeps its
// position, a new key is appended. p is not modified.
func (p Params) Set(key string, value interface{}) Params {
	out := p.Copy()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Key: key, Value: value})
}

// Copy returns a copy of p
func (p Params) Copy() Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	return out
}

// Flatten returns the alternating key/value argument list
func (p Params) Flatten() []interface{} {
	args := make([]interface{}, 0, 2*len(p))
	for _, param := range p {
		args = append(args, param.Key, param.Value)
	}
	return args
}
