/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
	"github.com/zhang829-666/BookchainHF/pkg/core/config/lookup"
	"github.com/zhang829-666/BookchainHF/pkg/util/pathvar"
)

var logger = logging.NewLogger("bcsdk/fab")

const (
	defaultServerURL      = "http://localhost:8080"
	defaultEventURL       = "ws://localhost:8080/chaincode-events"
	defaultEventOrigin    = "http://localhost/"
	defaultOrganization   = "org1"
	defaultRequestTimeout = time.Second * 30
)

// ConfigFromBackend returns endpoint config implementation for given backend
func ConfigFromBackend(coreBackend ...core.ConfigBackend) (*EndpointConfig, error) {
	config := &EndpointConfig{
		backend: lookup.New(coreBackend...),
	}

	if err := config.loadEndpointConfiguration(); err != nil {
		return nil, errors.WithMessage(err, "endpoint configuration load failed")
	}

	return config, nil
}

// EndpointConfig represents the endpoint configuration for the client
type EndpointConfig struct {
	backend *lookup.ConfigLookup
	entity  endpointConfigEntity
}

// endpointConfigEntity contains the config sections needed by EndpointConfig
type endpointConfigEntity struct {
	Client  ClientConfig
	Server  ServerConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

// ClientConfig is the client section of the SDK config
type ClientConfig struct {
	Organization    string
	Logging         struct{ Level string }
	Timeout         struct{ Request time.Duration }
	CredentialStore struct{ Path string }
}

// ServerConfig is the REST API section of the SDK config
type ServerConfig struct {
	URL string
}

// EventsConfig is the event socket section of the SDK config
type EventsConfig struct {
	URL    string
	Origin string
}

// MetricsConfig is the metrics section of the SDK config
type MetricsConfig struct {
	Enabled bool
}

var _ bookchain.EndpointConfig = (*EndpointConfig)(nil)

// ServerURL returns the REST API base URL without trailing slash
func (c *EndpointConfig) ServerURL() string {
	return c.entity.Server.URL
}

// EventURL returns the chaincode event socket URL
func (c *EndpointConfig) EventURL() string {
	return c.entity.Events.URL
}

// EventOrigin returns the Origin sent on the socket handshake
func (c *EndpointConfig) EventOrigin() string {
	return c.entity.Events.Origin
}

// Organization returns the organization sent with chaincode invocations
func (c *EndpointConfig) Organization() string {
	return c.entity.Client.Organization
}

// RequestTimeout returns the per request timeout
func (c *EndpointConfig) RequestTimeout() time.Duration {
	return c.entity.Client.Timeout.Request
}

// CredentialStorePath returns the token store directory, with path variables substituted
func (c *EndpointConfig) CredentialStorePath() string {
	return pathvar.Subst(c.entity.Client.CredentialStore.Path)
}

// MetricsEnabled reports whether client metrics are collected
func (c *EndpointConfig) MetricsEnabled() bool {
	return c.entity.Metrics.Enabled
}

func (c *EndpointConfig) loadEndpointConfiguration() error {
	entity := endpointConfigEntity{}

	if err := c.backend.UnmarshalKey("client", &entity.Client); err != nil {
		return errors.Wrap(err, "failed to parse 'client' config item")
	}
	if err := c.backend.UnmarshalKey("server", &entity.Server); err != nil {
		return errors.Wrap(err, "failed to parse 'server' config item")
	}
	if err := c.backend.UnmarshalKey("events", &entity.Events); err != nil {
		return errors.Wrap(err, "failed to parse 'events' config item")
	}
	entity.Metrics.Enabled = c.backend.GetBool("metrics.enabled")

	// flat keys take precedence; env overrides only show up there
	entity.Server.URL = c.backend.GetStringOrDefault("server.url", orDefault(entity.Server.URL, defaultServerURL))
	entity.Events.URL = c.backend.GetStringOrDefault("events.url", orDefault(entity.Events.URL, defaultEventURL))
	entity.Events.Origin = c.backend.GetStringOrDefault("events.origin", orDefault(entity.Events.Origin, defaultEventOrigin))
	entity.Client.Organization = c.backend.GetStringOrDefault("client.organization", orDefault(entity.Client.Organization, defaultOrganization))
	entity.Client.CredentialStore.Path = c.backend.GetStringOrDefault("client.credentialStore.path", entity.Client.CredentialStore.Path)
	if d := c.backend.GetDuration("client.timeout.request"); d > 0 {
		entity.Client.Timeout.Request = d
	}
	if entity.Client.Timeout.Request == 0 {
		entity.Client.Timeout.Request = defaultRequestTimeout
	}

	entity.Server.URL = strings.TrimRight(entity.Server.URL, "/")

	if err := checkURL(entity.Server.URL, "http", "https"); err != nil {
		return errors.WithMessage(err, "invalid server.url")
	}
	if err := checkURL(entity.Events.URL, "ws", "wss"); err != nil {
		return errors.WithMessage(err, "invalid events.url")
	}

	logger.Debugf("endpoint config: server=%s events=%s organization=%s", entity.Server.URL, entity.Events.URL, entity.Client.Organization)

	c.entity = entity
	return nil
}

func checkURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "parsing %s failed", raw)
	}
	for _, s := range schemes {
		if strings.EqualFold(u.Scheme, s) {
			if u.Host == "" {
				return errors.Errorf("%s has no host", raw)
			}
			return nil
		}
	}
	return errors.Errorf("%s must use one of the schemes %v", raw, schemes)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
