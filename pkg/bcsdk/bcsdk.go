/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bcsdk enables client usage of a Bookchain marketplace backend.
//
// The SDK loads the endpoint configuration, prepares the session token
// store, metrics and requester shared by every client, and hands out the
// chaincode, book, user and event clients.
package bcsdk

import (
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/client/book"
	"github.com/zhang829-666/BookchainHF/pkg/client/chaincode"
	"github.com/zhang829-666/BookchainHF/pkg/client/event"
	"github.com/zhang829-666/BookchainHF/pkg/client/user"
	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/options"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	contextApi "github.com/zhang829-666/BookchainHF/pkg/common/providers/context"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
	bcctx "github.com/zhang829-666/BookchainHF/pkg/context"
	"github.com/zhang829-666/BookchainHF/pkg/fab"
	"github.com/zhang829-666/BookchainHF/pkg/fab/comm"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
	"github.com/zhang829-666/BookchainHF/pkg/fab/keyvaluestore"
)

var logger = logging.NewLogger("bcsdk")

// BookchainSDK provides access (and context) to clients being managed by the SDK
type BookchainSDK struct {
	opts sdkOptions

	config     bookchain.EndpointConfig
	tokenStore bookchain.TokenStore
	requester  *comm.HTTPRequester
	metrics    *metrics.ClientMetrics
	context    *bcctx.Client

	mutex        sync.Mutex
	eventClients []*event.Client
	closed       bool
}

type sdkOptions struct {
	httpClient   *http.Client
	tokenStore   bookchain.TokenStore
	registerer   prometheus.Registerer
	connProvider api.ConnectionProvider
	userAgent    string
}

// Option configures the SDK
type Option func(opts *sdkOptions) error

// WithHTTPClient sets the HTTP client used for backend calls
func WithHTTPClient(client *http.Client) Option {
	return func(opts *sdkOptions) error {
		if client == nil {
			return errors.New("HTTP client is nil")
		}
		opts.httpClient = client
		return nil
	}
}

// WithTokenStore overrides the configured session token store
func WithTokenStore(store bookchain.TokenStore) Option {
	return func(opts *sdkOptions) error {
		if store == nil {
			return errors.New("token store is nil")
		}
		opts.tokenStore = store
		return nil
	}
}

// WithMetricsRegisterer enables client metrics, registered with r
func WithMetricsRegisterer(r prometheus.Registerer) Option {
	return func(opts *sdkOptions) error {
		if r == nil {
			return errors.New("metrics registerer is nil")
		}
		opts.registerer = r
		return nil
	}
}

// WithEventConnectionProvider overrides how event sockets are opened
func WithEventConnectionProvider(p api.ConnectionProvider) Option {
	return func(opts *sdkOptions) error {
		opts.connProvider = p
		return nil
	}
}

// WithUserAgent sets the User-Agent header of backend calls
func WithUserAgent(userAgent string) Option {
	return func(opts *sdkOptions) error {
		opts.userAgent = userAgent
		return nil
	}
}

// New initializes the SDK from the given config provider, e.g.
// bcsdk.New(config.FromFile("config.yaml"))
func New(configProvider core.ConfigProvider, opts ...Option) (*BookchainSDK, error) {
	if configProvider == nil {
		return nil, errors.New("config provider is required")
	}

	sdk := &BookchainSDK{}
	for _, opt := range opts {
		if err := opt(&sdk.opts); err != nil {
			return nil, errors.WithMessage(err, "Error in option passed to New")
		}
	}

	backends, err := configProvider()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to load config")
	}
	cfg, err := fab.ConfigFromBackend(backends...)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to initialize endpoint config")
	}
	sdk.config = cfg

	if sdk.tokenStore, err = sdk.newTokenStore(); err != nil {
		return nil, errors.WithMessage(err, "failed to initialize token store")
	}
	if sdk.metrics, err = sdk.newMetrics(); err != nil {
		return nil, errors.WithMessage(err, "failed to initialize metrics")
	}

	requesterOpts := []options.Opt{
		comm.WithTokenStore(sdk.tokenStore),
		comm.WithMetrics(sdk.metrics),
		comm.WithRequestTimeout(cfg.RequestTimeout()),
	}
	if sdk.opts.httpClient != nil {
		requesterOpts = append(requesterOpts, comm.WithHTTPClient(sdk.opts.httpClient))
	}
	if sdk.opts.userAgent != "" {
		requesterOpts = append(requesterOpts, comm.WithUserAgent(sdk.opts.userAgent))
	}
	if sdk.requester, err = comm.NewHTTPRequester(cfg.ServerURL(), requesterOpts...); err != nil {
		return nil, errors.WithMessage(err, "failed to initialize requester")
	}

	ctxParams := []bcctx.ClientParams{
		bcctx.WithEndpointConfig(cfg),
		bcctx.WithRequester(sdk.requester),
		bcctx.WithTokenStore(sdk.tokenStore),
		bcctx.WithMetrics(sdk.metrics),
	}
	if sdk.opts.connProvider != nil {
		ctxParams = append(ctxParams, bcctx.WithEventConnectionProvider(sdk.opts.connProvider))
	}
	if sdk.context, err = bcctx.NewClient(ctxParams...); err != nil {
		return nil, errors.WithMessage(err, "failed to initialize client context")
	}

	logger.Debugf("SDK initialized for %s", cfg.ServerURL())
	return sdk, nil
}

// newTokenStore persists the token under client.credentialStore.path when
// configured, and keeps it in memory otherwise
func (sdk *BookchainSDK) newTokenStore() (bookchain.TokenStore, error) {
	if sdk.opts.tokenStore != nil {
		return sdk.opts.tokenStore, nil
	}

	path := sdk.config.CredentialStorePath()
	if path == "" {
		return comm.NewMemoryTokenStore(), nil
	}

	store, err := keyvaluestore.New(&keyvaluestore.FileKeyValueStoreOptions{
		Path:         path,
		Unmarshaller: keyvaluestore.StringUnmarshaller,
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("session token is kept under %s", path)
	return comm.NewKVTokenStore(store, comm.TokenKey(sdk.config.ServerURL()))
}

func (sdk *BookchainSDK) newMetrics() (*metrics.ClientMetrics, error) {
	r := sdk.opts.registerer
	if r == nil && sdk.config.MetricsEnabled() {
		r = prometheus.DefaultRegisterer
	}
	if r == nil {
		return metrics.NewDiscardMetrics(), nil
	}
	return metrics.NewClientMetrics(r)
}

// Context returns the client context shared by the SDK clients
func (sdk *BookchainSDK) Context() contextApi.ClientProvider {
	return bcctx.Provider(sdk.context)
}

// Config returns the endpoint config
func (sdk *BookchainSDK) Config() bookchain.EndpointConfig {
	return sdk.config
}

// TokenStore returns the session token store
func (sdk *BookchainSDK) TokenStore() bookchain.TokenStore {
	return sdk.tokenStore
}

// ChaincodeClient returns a chaincode client
func (sdk *BookchainSDK) ChaincodeClient(opts ...chaincode.ClientOption) (*chaincode.Client, error) {
	if err := sdk.checkOpen(); err != nil {
		return nil, err
	}
	return chaincode.New(sdk.Context(), opts...)
}

// BookClient returns a book client
func (sdk *BookchainSDK) BookClient() (*book.Client, error) {
	if err := sdk.checkOpen(); err != nil {
		return nil, err
	}
	return book.New(sdk.Context())
}

// UserClient returns a user client
func (sdk *BookchainSDK) UserClient(opts ...user.ClientOption) (*user.Client, error) {
	if err := sdk.checkOpen(); err != nil {
		return nil, err
	}
	return user.New(sdk.Context(), opts...)
}

// EventClient returns an event client. Its sockets are closed by Close.
func (sdk *BookchainSDK) EventClient(opts ...event.ClientOption) (*event.Client, error) {
	if err := sdk.checkOpen(); err != nil {
		return nil, err
	}
	ec, err := event.New(sdk.Context(), opts...)
	if err != nil {
		return nil, err
	}

	sdk.mutex.Lock()
	defer sdk.mutex.Unlock()
	sdk.eventClients = append(sdk.eventClients, ec)
	return ec, nil
}

// Close frees up the sockets held by event clients. Clients obtained from
// the SDK must not be used afterwards.
func (sdk *BookchainSDK) Close() {
	sdk.mutex.Lock()
	if sdk.closed {
		sdk.mutex.Unlock()
		return
	}
	sdk.closed = true
	eventClients := sdk.eventClients
	sdk.eventClients = nil
	sdk.mutex.Unlock()

	logger.Debug("closing SDK")
	for _, ec := range eventClients {
		ec.Close()
	}
}

func (sdk *BookchainSDK) checkOpen() error {
	sdk.mutex.Lock()
	defer sdk.mutex.Unlock()
	if sdk.closed {
		return errors.New("SDK is closed")
	}
	return nil
}
