/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package context

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/test/mockbookchain"
	"github.com/zhang829-666/BookchainHF/pkg/fab/comm"
	"github.com/zhang829-666/BookchainHF/pkg/fab/mocks"
)

func TestNewClient(t *testing.T) {
	config := mocks.NewMockConfig("http://localhost:8080", "ws://localhost:8080/chaincode-events")
	requester := mocks.NewMockRequester()
	tokens := comm.NewMemoryTokenStore()
	m := metrics.NewDiscardMetrics()

	ctx, err := NewClient(WithEndpointConfig(config), WithRequester(requester), WithTokenStore(tokens), WithMetrics(m))
	require.NoError(t, err)

	assert.Equal(t, config, ctx.EndpointConfig())
	assert.Equal(t, requester, ctx.Requester())
	assert.Equal(t, tokens, ctx.TokenStore())
	assert.Equal(t, m, ctx.Metrics())
	assert.NotNil(t, ctx.EventConnectionProvider())

	c, err := Provider(ctx)()
	require.NoError(t, err)
	assert.Equal(t, ctx, c)
}

func TestNewClientDefaults(t *testing.T) {
	config := mocks.NewMockConfig("http://localhost:8080", "ws://localhost:8080/chaincode-events")

	ctx, err := NewClient(WithEndpointConfig(config), WithRequester(mocks.NewMockRequester()))
	require.NoError(t, err)
	assert.Nil(t, ctx.TokenStore())
	assert.NotNil(t, ctx.Metrics())
}

func TestNewClientMissingProviders(t *testing.T) {
	_, err := NewClient(WithRequester(mocks.NewMockRequester()))
	assert.EqualError(t, err, "endpoint config is required")

	_, err = NewClient(WithEndpointConfig(mocks.NewMockConfig("", "")))
	assert.EqualError(t, err, "requester is required")

	_, err = Provider(nil)()
	assert.Error(t, err)
}

func TestNewClientWithMockConfig(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	config := mockbookchain.DefaultMockConfig(mockCtrl)
	ctx, err := NewClient(WithEndpointConfig(config), WithRequester(mockbookchain.NewMockRequester(mockCtrl)))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", ctx.EndpointConfig().ServerURL())
	assert.Equal(t, "org1", ctx.EndpointConfig().Organization())

	config = mockbookchain.CustomMockConfig(mockCtrl, "https://bookchain.example.com", "wss://bookchain.example.com/chaincode-events")
	ctx, err = NewClient(WithEndpointConfig(config), WithRequester(mocks.NewMockRequester()))
	require.NoError(t, err)
	assert.Equal(t, "wss://bookchain.example.com/chaincode-events", ctx.EndpointConfig().EventURL())
}
