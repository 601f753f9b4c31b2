/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package uuidgen generates identifiers in the formats the Bookchain backend
// hands out, for use where a client needs an id without a round trip.
package uuidgen

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// New32 returns a random UUID as 32 lower case hex digits, without hyphens.
func New32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Short returns the first length hex digits of a New32 id.
func Short(length int) (string, error) {
	if length < 0 || length > 32 {
		return "", errors.Errorf("uuid fragment length must be between 0 and 32, got %d", length)
	}
	return New32()[:length], nil
}

// Prefixed returns "<prefix>_<SUFFIX>" with an upper case suffix of suffixLength
// hex digits, e.g. USER_2A1B3C.
func Prefixed(prefix string, suffixLength int) (string, error) {
	if suffixLength < 4 || suffixLength > 8 {
		return "", errors.Errorf("suffix length must be between 4 and 8, got %d", suffixLength)
	}
	suffix, err := Short(suffixLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + strings.ToUpper(suffix), nil
}
