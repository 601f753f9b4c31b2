/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package status defines metadata for errors returned by the Bookchain SDK.
// This information may be used by SDK users to make decisions about how to
// handle certain error conditions.
// Status codes are divided by group, where each group represents a particular
// component and the codes correspond to those returned by the component.
package status

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Status provides additional information about an unsuccessful operation
// performed by the SDK. Essentially, this object contains metadata about
// an error returned by the SDK.
type Status struct {
	// Group status group
	Group Group
	// Code status code
	Code int32
	// Message status message
	Message string
	// Details any additional status details
	Details []interface{}
}

// Group of status to help users infer status codes from various components
type Group int32

const (
	// UnknownStatus unknown status group
	UnknownStatus Group = iota

	// HTTPTransportStatus is the status associated with requests made to the
	// Bookchain backend. The code is the HTTP status code of the response.
	HTTPTransportStatus

	// EventServerStatus status returned by the chaincode event socket
	EventServerStatus

	// ClientStatus defines the status inferred by the SDK itself, e.g. a
	// response that could not be decoded.
	ClientStatus

	// ChaincodeStatus defines the status reported by the backend for a
	// chaincode invocation
	ChaincodeStatus
)

// GroupName maps the groups in this packages to human-readable strings
var GroupName = map[int32]string{
	0: "Unknown",
	1: "HTTP Transport Status",
	2: "Event Server Status",
	3: "Client Status",
	4: "Chaincode Status",
}

func (g Group) String() string {
	if s, ok := GroupName[int32(g)]; ok {
		return s
	}
	return UnknownStatus.String()
}

// FromError returns a Status representing err if available,
// otherwise it returns nil, false.
func FromError(err error) (s *Status, ok bool) {
	if err == nil {
		return &Status{Code: int32(OK)}, true
	}
	if s, ok := err.(*Status); ok {
		return s, true
	}
	if s, ok := errors.Cause(err).(*Status); ok {
		return s, true
	}
	return nil, false
}

// HTTPCode returns the HTTP status code carried by err, if any.
func HTTPCode(err error) (int, bool) {
	s, ok := FromError(err)
	if !ok || err == nil || s.Group != HTTPTransportStatus {
		return 0, false
	}
	return int(s.Code), true
}

func (s *Status) Error() string {
	return fmt.Sprintf("%s Code: (%d) %s. Description: %s", s.Group.String(), s.Code, s.codeString(), s.Message)
}

func (s *Status) codeString() string {
	switch s.Group {
	case HTTPTransportStatus:
		if text := http.StatusText(int(s.Code)); text != "" {
			return text
		}
		return Unknown.String()
	case EventServerStatus, ClientStatus:
		return ToSDKStatusCode(s.Code).String()
	default:
		return Unknown.String()
	}
}

// New returns a Status with the given parameters
func New(group Group, code int32, msg string, details []interface{}) *Status {
	return &Status{Group: group, Code: code, Message: msg, Details: details}
}

// NewFromHTTPResponse creates a status from a non-successful backend response.
// The raw body, when present, is kept as the first detail.
func NewFromHTTPResponse(code int, msg string, body []byte) *Status {
	var details []interface{}
	if len(body) > 0 {
		details = append(details, string(body))
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &Status{Group: HTTPTransportStatus, Code: int32(code), Message: msg, Details: details}
}
