/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package context

import (
	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
)

// Providers represents the SDK configured providers context.
type Providers interface {
	EndpointConfig() bookchain.EndpointConfig
	Requester() bookchain.Requester
	TokenStore() bookchain.TokenStore
	EventConnectionProvider() api.ConnectionProvider
}

// Client supplies the configuration and backend access to client objects.
type Client interface {
	Providers
	Metrics() *metrics.ClientMetrics
}

// ClientProvider returns client context
type ClientProvider func() (Client, error)
