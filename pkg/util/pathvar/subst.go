/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pathvar

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// homeDir returns the user's home directory, or the working directory when
// none is known.
func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}

// bookchainHome returns BOOKCHAIN_HOME if set, otherwise ~/.bookchain.
func bookchainHome() string {
	if h, ok := os.LookupEnv("BOOKCHAIN_HOME"); ok && h != "" {
		return h
	}
	return filepath.Join(homeDir(), ".bookchain")
}

// Subst replaces instances of '${VARNAME}' (eg ${BOOKCHAIN_HOME}) with the variable.
// Variables names that are not set by the SDK are replaced with the environment variable.
func Subst(path string) string {
	const (
		sepPrefix = "${"
		sepSuffix = "}"
	)

	splits := strings.Split(path, sepPrefix)

	var buffer bytes.Buffer

	// first split precedes the first sepPrefix so should always be written
	buffer.WriteString(splits[0])

	for _, s := range splits[1:] {
		subst, rest := substVar(s, sepPrefix, sepSuffix)
		buffer.WriteString(subst)
		buffer.WriteString(rest)
	}

	return buffer.String()
}

// substVar searches for an instance of a variables name and replaces them with their value.
// The first return value is substituted portion of the string or noMatch if no replacement occurred.
// The second return value is the unconsumed portion of s.
func substVar(s string, noMatch string, sep string) (string, string) {
	endPos := strings.Index(s, sep)
	if endPos == -1 {
		return noMatch, s
	}

	v, ok := lookupVar(s[:endPos])
	if !ok {
		return noMatch, s
	}

	return v, s[endPos+1:]
}

// lookupVar returns the value of the variable.
// The local variable table is consulted first, followed by environment variables.
// Returns false if the variable doesn't exist.
func lookupVar(v string) (string, bool) {
	switch v {
	case "BOOKCHAIN_HOME":
		return bookchainHome(), true
	case "HOME":
		return homeDir(), true
	case "TMPDIR":
		return os.TempDir(), true
	}
	return os.LookupEnv(v)
}
