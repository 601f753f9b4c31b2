/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/options"
)

type params struct {
	connEventCh             chan *ConnectionEvent
	errHandler              ErrorHandler
	metrics                 *metrics.ClientMetrics
	eventConsumerBufferSize uint
}

func defaultParams() *params {
	return &params{
		eventConsumerBufferSize: 100,
		metrics:                 metrics.NewDiscardMetrics(),
	}
}

// WithEventConsumerBufferSize sets the size of the buffer between the
// socket reader and the handler. Zero means unbuffered.
func WithEventConsumerBufferSize(value uint) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(eventConsumerBufferSizeSetter); ok {
			setter.SetEventConsumerBufferSize(value)
		}
	}
}

// WithConnectionEvent sets the channel that is to receive connection events, i.e. when the client connects and/or
// disconnects from the event server.
func WithConnectionEvent(value chan *ConnectionEvent) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(connectEventChSetter); ok {
			setter.SetConnectEventCh(value)
		}
	}
}

// WithErrorHandler sets the function called with frames that cannot be
// decoded and with connection failures
func WithErrorHandler(value ErrorHandler) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(errorHandlerSetter); ok {
			setter.SetErrorHandler(value)
		}
	}
}

// WithMetrics sets the metrics counting received and failed events
func WithMetrics(value *metrics.ClientMetrics) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(metricsSetter); ok {
			setter.SetMetrics(value)
		}
	}
}

func (p *params) SetEventConsumerBufferSize(value uint) {
	logger.Debugf("EventConsumerBufferSize: %d", value)
	p.eventConsumerBufferSize = value
}

func (p *params) SetConnectEventCh(value chan *ConnectionEvent) {
	logger.Debugf("ConnectEventCh: %#v", value)
	p.connEventCh = value
}

func (p *params) SetErrorHandler(value ErrorHandler) {
	p.errHandler = value
}

func (p *params) SetMetrics(value *metrics.ClientMetrics) {
	if value == nil {
		return
	}
	p.metrics = value
}

type eventConsumerBufferSizeSetter interface {
	SetEventConsumerBufferSize(value uint)
}

type connectEventChSetter interface {
	SetConnectEventCh(value chan *ConnectionEvent)
}

type errorHandlerSetter interface {
	SetErrorHandler(value ErrorHandler)
}

type metricsSetter interface {
	SetMetrics(value *metrics.ClientMetrics)
}
