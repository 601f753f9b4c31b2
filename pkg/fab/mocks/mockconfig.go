/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"time"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

// MockConfig is an in-memory bookchain.EndpointConfig
type MockConfig struct {
	Server         string
	Event          string
	Origin         string
	Org            string
	Timeout        time.Duration
	CredentialPath string
	Metrics        bool
}

var _ bookchain.EndpointConfig = (*MockConfig)(nil)

// NewMockConfig returns a config pointing at the given servers
func NewMockConfig(serverURL, eventURL string) *MockConfig {
	return &MockConfig{
		Server:  serverURL,
		Event:   eventURL,
		Origin:  "http://localhost/",
		Org:     "org1",
		Timeout: 5 * time.Second,
	}
}

// ServerURL ...
func (c *MockConfig) ServerURL() string {
	return c.Server
}

// EventURL ...
func (c *MockConfig) EventURL() string {
	return c.Event
}

// EventOrigin ...
func (c *MockConfig) EventOrigin() string {
	return c.Origin
}

// Organization ...
func (c *MockConfig) Organization() string {
	return c.Org
}

// RequestTimeout ...
func (c *MockConfig) RequestTimeout() time.Duration {
	return c.Timeout
}

// CredentialStorePath ...
func (c *MockConfig) CredentialStorePath() string {
	return c.CredentialPath
}

// MetricsEnabled ...
func (c *MockConfig) MetricsEnabled() bool {
	return c.Metrics
}
