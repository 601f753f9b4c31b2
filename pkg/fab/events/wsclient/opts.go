/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wsclient

import (
	"net/http"

	"github.com/zhang829-666/BookchainHF/pkg/common/options"
)

type params struct {
	header       http.Header
	protocols    []string
	maxFrameSize int
}

func defaultParams() *params {
	return &params{
		header:       http.Header{},
		maxFrameSize: defaultMaxFrameSize,
	}
}

// WithHeader adds a header to the handshake request
func WithHeader(key, value string) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(headerSetter); ok {
			setter.SetHeader(key, value)
		}
	}
}

// WithProtocol adds a WebSocket sub-protocol to the handshake
func WithProtocol(value string) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(protocolSetter); ok {
			setter.SetProtocol(value)
		}
	}
}

// WithMaxFrameSize limits the size of a received frame
func WithMaxFrameSize(value int) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(maxFrameSizeSetter); ok {
			setter.SetMaxFrameSize(value)
		}
	}
}

func (p *params) SetHeader(key, value string) {
	p.header.Add(key, value)
}

func (p *params) SetProtocol(value string) {
	p.protocols = append(p.protocols, value)
}

func (p *params) SetMaxFrameSize(value int) {
	logger.Debugf("MaxFrameSize: %d", value)
	p.maxFrameSize = value
}

type headerSetter interface {
	SetHeader(key, value string)
}

type protocolSetter interface {
	SetProtocol(value string)
}

type maxFrameSizeSetter interface {
	SetMaxFrameSize(value int)
}
