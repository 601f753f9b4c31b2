/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

// RawResponse is returned to the caller as the response body, unencoded
type RawResponse string

// MockRequester records requests and answers them from canned responses
type MockRequester struct {
	mutex     sync.Mutex
	requests  []*bookchain.Request
	responses map[string]interface{}
	errs      map[string]error
	// Err is returned for every request when set
	Err error
}

var _ bookchain.Requester = (*MockRequester)(nil)

// NewMockRequester returns a requester answering every call with an empty body
func NewMockRequester() *MockRequester {
	return &MockRequester{
		responses: make(map[string]interface{}),
		errs:      make(map[string]error),
	}
}

// SetResponse sets the response for method and path. The value is JSON
// encoded unless it is a RawResponse.
func (m *MockRequester) SetResponse(method, path string, value interface{}) *MockRequester {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.responses[method+" "+path] = value
	return m
}

// SetError makes calls to method and path fail with err
func (m *MockRequester) SetError(method, path string, err error) *MockRequester {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.errs[method+" "+path] = err
	return m
}

// Do records req and decodes the canned response into out
func (m *MockRequester) Do(ctx context.Context, req *bookchain.Request, out interface{}) error {
	m.mutex.Lock()
	m.requests = append(m.requests, req)
	key := req.Method + " " + req.Path
	resp, err := m.responses[key], m.errs[key]
	if err == nil {
		err = m.Err
	}
	m.mutex.Unlock()

	if err != nil {
		return err
	}
	if resp == nil || out == nil {
		return nil
	}

	var body []byte
	if raw, ok := resp.(RawResponse); ok {
		body = []byte(raw)
	} else if body, err = json.Marshal(resp); err != nil {
		return errors.Wrap(err, "encoding mock response failed")
	}

	switch v := out.(type) {
	case *[]byte:
		*v = body
		return nil
	case *string:
		if len(body) > 0 && body[0] == '"' {
			return json.Unmarshal(body, v)
		}
		*v = string(body)
		return nil
	default:
		return json.Unmarshal(body, out)
	}
}

// Requests returns the recorded requests
func (m *MockRequester) Requests() []*bookchain.Request {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]*bookchain.Request(nil), m.requests...)
}

// LastRequest returns the most recent request, nil if none
func (m *MockRequester) LastRequest() *bookchain.Request {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}
