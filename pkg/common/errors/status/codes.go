/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"strconv"
)

// Code represents a status code
type Code uint32

const (
	// OK is returned on success.
	OK Code = 0

	// Unknown represents status codes that are uncategorized or unknown to the SDK
	Unknown Code = 1

	// ConnectionFailed is returned when a network connection attempt from the SDK fails
	ConnectionFailed Code = 2

	// Timeout operation timed out
	Timeout Code = 5

	// InvalidResponse is returned when a response body cannot be decoded
	InvalidResponse Code = 13

	// InvalidArgument is returned when a request cannot be built from the given arguments
	InvalidArgument Code = 14

	// ConnectionClosed is returned when an operation is attempted on a closed connection
	ConnectionClosed Code = 15

	// InvalidPayload is returned when an event frame is not valid JSON
	InvalidPayload Code = 16

	// Canceled is returned when the caller canceled the request context
	Canceled Code = 17
)

// CodeName maps the codes in this packages to human-readable strings
var CodeName = map[int32]string{
	0:  "OK",
	1:  "UNKNOWN",
	2:  "CONNECTION_FAILED",
	5:  "TIMEOUT",
	13: "INVALID_RESPONSE",
	14: "INVALID_ARGUMENT",
	15: "CONNECTION_CLOSED",
	16: "INVALID_PAYLOAD",
	17: "CANCELED",
}

// ToInt32 cast to int32
func (c Code) ToInt32() int32 {
	return int32(c)
}

// String representation of the code
func (c Code) String() string {
	if s, ok := CodeName[c.ToInt32()]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// ToSDKStatusCode cast to SDK status code
func ToSDKStatusCode(c int32) Code {
	return Code(c)
}
