/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mockbookchain

import (
	"time"

	"github.com/golang/mock/gomock"
)

// DefaultMockConfig returns a default mock config for testing
func DefaultMockConfig(mockCtrl *gomock.Controller) *MockEndpointConfig {
	return CustomMockConfig(mockCtrl, "http://localhost:8080", "ws://localhost:8080/chaincode-events")
}

// CustomMockConfig returns a mock config pointing at the given server and event URLs
func CustomMockConfig(mockCtrl *gomock.Controller, serverURL, eventURL string) *MockEndpointConfig {
	config := NewMockEndpointConfig(mockCtrl)

	config.EXPECT().ServerURL().Return(serverURL).AnyTimes()
	config.EXPECT().EventURL().Return(eventURL).AnyTimes()
	config.EXPECT().EventOrigin().Return("http://localhost/").AnyTimes()
	config.EXPECT().Organization().Return("org1").AnyTimes()
	config.EXPECT().RequestTimeout().Return(time.Second * 5).AnyTimes()
	config.EXPECT().CredentialStorePath().Return("").AnyTimes()
	config.EXPECT().MetricsEnabled().Return(false).AnyTimes()

	return config
}
