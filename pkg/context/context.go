/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package context

import (
	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	contextApi "github.com/zhang829-666/BookchainHF/pkg/common/providers/context"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/wsclient"
)

// Client implementation for the client context
type Client struct {
	endpointConfig bookchain.EndpointConfig
	requester      bookchain.Requester
	tokenStore     bookchain.TokenStore
	connProvider   api.ConnectionProvider
	metrics        *metrics.ClientMetrics
}

var _ contextApi.Client = (*Client)(nil)

// EndpointConfig returns the endpoint configuration
func (c *Client) EndpointConfig() bookchain.EndpointConfig {
	return c.endpointConfig
}

// Requester returns the backend requester
func (c *Client) Requester() bookchain.Requester {
	return c.requester
}

// TokenStore returns the session token store, nil if none
func (c *Client) TokenStore() bookchain.TokenStore {
	return c.tokenStore
}

// EventConnectionProvider returns the provider of event server connections
func (c *Client) EventConnectionProvider() api.ConnectionProvider {
	return c.connProvider
}

// Metrics returns the client metrics
func (c *Client) Metrics() *metrics.ClientMetrics {
	return c.metrics
}

// ClientParams parameter for creating Client
type ClientParams func(ctx *Client)

// WithEndpointConfig sets the endpoint configuration
func WithEndpointConfig(config bookchain.EndpointConfig) ClientParams {
	return func(ctx *Client) {
		ctx.endpointConfig = config
	}
}

// WithRequester sets the requester
func WithRequester(requester bookchain.Requester) ClientParams {
	return func(ctx *Client) {
		ctx.requester = requester
	}
}

// WithTokenStore sets the token store
func WithTokenStore(store bookchain.TokenStore) ClientParams {
	return func(ctx *Client) {
		ctx.tokenStore = store
	}
}

// WithEventConnectionProvider sets the event connection provider
func WithEventConnectionProvider(provider api.ConnectionProvider) ClientParams {
	return func(ctx *Client) {
		ctx.connProvider = provider
	}
}

// WithMetrics sets the client metrics
func WithMetrics(m *metrics.ClientMetrics) ClientParams {
	return func(ctx *Client) {
		ctx.metrics = m
	}
}

// NewClient creates a client context. The endpoint config and requester
// are required; events default to WebSocket connections and metrics to
// discard.
func NewClient(params ...ClientParams) (*Client, error) {
	ctx := &Client{}
	for _, param := range params {
		param(ctx)
	}

	if ctx.endpointConfig == nil {
		return nil, errors.New("endpoint config is required")
	}
	if ctx.requester == nil {
		return nil, errors.New("requester is required")
	}
	if ctx.connProvider == nil {
		ctx.connProvider = wsclient.Provider()
	}
	if ctx.metrics == nil {
		ctx.metrics = metrics.NewDiscardMetrics()
	}
	return ctx, nil
}

// Provider returns a ClientProvider for ctx
func Provider(ctx contextApi.Client) contextApi.ClientProvider {
	return func() (contextApi.Client, error) {
		if ctx == nil {
			return nil, errors.New("client context is nil")
		}
		return ctx, nil
	}
}
