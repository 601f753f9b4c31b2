/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"net/http"
	"time"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/options"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

const defaultUserAgent = "bookchain-sdk-go"

type params struct {
	httpClient     *http.Client
	tokenStore     bookchain.TokenStore
	metrics        *metrics.ClientMetrics
	requestTimeout time.Duration
	userAgent      string
	header         http.Header
}

func defaultParams() *params {
	return &params{
		httpClient: &http.Client{},
		metrics:    metrics.NewDiscardMetrics(),
		userAgent:  defaultUserAgent,
		header:     http.Header{},
	}
}

// WithHTTPClient sets the HTTP client used for backend calls
func WithHTTPClient(value *http.Client) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(httpClientSetter); ok {
			setter.SetHTTPClient(value)
		}
	}
}

// WithTokenStore sets the store holding the session token
func WithTokenStore(value bookchain.TokenStore) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(tokenStoreSetter); ok {
			setter.SetTokenStore(value)
		}
	}
}

// WithMetrics sets the client metrics
func WithMetrics(value *metrics.ClientMetrics) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(metricsSetter); ok {
			setter.SetMetrics(value)
		}
	}
}

// WithRequestTimeout bounds every request. Zero disables the bound.
func WithRequestTimeout(value time.Duration) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(requestTimeoutSetter); ok {
			setter.SetRequestTimeout(value)
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(value string) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(userAgentSetter); ok {
			setter.SetUserAgent(value)
		}
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(headerSetter); ok {
			setter.SetHeader(key, value)
		}
	}
}

func (p *params) SetHTTPClient(value *http.Client) {
	if value == nil {
		logger.Debug("ignoring nil HTTP client")
		return
	}
	p.httpClient = value
}

func (p *params) SetTokenStore(value bookchain.TokenStore) {
	logger.Debugf("TokenStore: %T", value)
	p.tokenStore = value
}

func (p *params) SetMetrics(value *metrics.ClientMetrics) {
	if value == nil {
		return
	}
	p.metrics = value
}

func (p *params) SetRequestTimeout(value time.Duration) {
	logger.Debugf("RequestTimeout: %s", value)
	p.requestTimeout = value
}

func (p *params) SetUserAgent(value string) {
	p.userAgent = value
}

func (p *params) SetHeader(key, value string) {
	p.header.Add(key, value)
}

type httpClientSetter interface {
	SetHTTPClient(value *http.Client)
}

type tokenStoreSetter interface {
	SetTokenStore(value bookchain.TokenStore)
}

type metricsSetter interface {
	SetMetrics(value *metrics.ClientMetrics)
}

type requestTimeoutSetter interface {
	SetRequestTimeout(value time.Duration)
}

type userAgentSetter interface {
	SetUserAgent(value string)
}

type headerSetter interface {
	SetHeader(key, value string)
}
