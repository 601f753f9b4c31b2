/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatusConstructors(t *testing.T) {
	s := New(ClientStatus, ConnectionFailed.ToInt32(), "test", nil)
	assert.NotNil(t, s, "Expected status to be constructed")
	assert.EqualValues(t, ConnectionFailed, ToSDKStatusCode(s.Code))
	assert.Equal(t, ClientStatus, s.Group)
	assert.Equal(t, "test", s.Message, "Expected test message")

	s = NewFromHTTPResponse(http.StatusNotFound, "book not found", []byte(`{"message":"book not found"}`))
	assert.Equal(t, HTTPTransportStatus, s.Group)
	assert.EqualValues(t, http.StatusNotFound, s.Code)
	assert.Equal(t, "book not found", s.Message)
	assert.Equal(t, `{"message":"book not found"}`, s.Details[0].(string))

	s = NewFromHTTPResponse(http.StatusBadGateway, "", nil)
	assert.Equal(t, "Bad Gateway", s.Message)
	assert.Empty(t, s.Details)
}

func TestFromError(t *testing.T) {
	s := New(ClientStatus, InvalidResponse.ToInt32(), "test", nil)
	derivedStatus, ok := FromError(s)
	assert.True(t, ok)
	assert.Equal(t, s, derivedStatus)

	// Test unwrap
	s1 := errors.Wrap(s, "test")
	derivedStatus, ok = FromError(s1)
	assert.True(t, ok)
	assert.Equal(t, s, derivedStatus)

	s, ok = FromError(nil)
	assert.True(t, ok)
	assert.EqualValues(t, OK.ToInt32(), s.Code)

	_, ok = FromError(fmt.Errorf("Test"))
	assert.False(t, ok)
}

func TestHTTPCode(t *testing.T) {
	err := errors.WithMessage(NewFromHTTPResponse(http.StatusUnauthorized, "", nil), "get current user failed")
	code, ok := HTTPCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, ok = HTTPCode(New(ClientStatus, Timeout.ToInt32(), "timed out", nil))
	assert.False(t, ok)

	_, ok = HTTPCode(nil)
	assert.False(t, ok)
}

func TestStatusToError(t *testing.T) {
	s := New(ClientStatus, ConnectionFailed.ToInt32(), "test", nil)
	assert.Equal(t, "Client Status Code: (2) CONNECTION_FAILED. Description: test", s.Error())

	s = NewFromHTTPResponse(http.StatusConflict, "already owned", nil)
	assert.Equal(t, "HTTP Transport Status Code: (409) Conflict. Description: already owned", s.Error())

	s = New(ChaincodeStatus, 500, "asset not found", nil)
	assert.Equal(t, "Chaincode Status Code: (500) UNKNOWN. Description: asset not found", s.Error())
}

func TestGroupAndCodeNames(t *testing.T) {
	assert.Equal(t, "Unknown", Group(99).String())
	assert.Equal(t, "Event Server Status", EventServerStatus.String())
	assert.Equal(t, "42", Code(42).String())
	assert.Equal(t, "INVALID_PAYLOAD", InvalidPayload.String())
	assert.Equal(t, "CANCELED", Canceled.String())
}
