/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wsclient

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/net/websocket"

	"github.com/zhang829-666/BookchainHF/pkg/common/errors/status"
	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/options"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
)

var logger = logging.NewLogger("bcsdk/events")

const defaultMaxFrameSize = 4 << 20

// Connection is a WebSocket connection to the chaincode event endpoint
type Connection struct {
	url       string
	ws        *websocket.Conn
	closed    int32
	done      chan struct{}
	closeOnce sync.Once
}

var _ api.Connection = (*Connection)(nil)

// New dials the event server at url. origin is sent as the Origin header.
func New(ctx context.Context, url, origin string, opts ...options.Opt) (*Connection, error) {
	params := defaultParams()
	options.Apply(params, opts)

	cfg, err := websocket.NewConfig(url, origin)
	if err != nil {
		return nil, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(),
			fmt.Sprintf("invalid event URL [%s] or origin [%s]: %s", url, origin, err), nil)
	}
	cfg.Protocol = params.protocols
	for k, vs := range params.header {
		for _, v := range vs {
			cfg.Header.Add(k, v)
		}
	}

	ws, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, status.New(status.EventServerStatus, status.ConnectionFailed.ToInt32(),
			fmt.Sprintf("connecting to %s failed: %s", url, err), nil)
	}
	ws.MaxPayloadBytes = params.maxFrameSize

	logger.Debugf("connected to event server %s", url)

	return &Connection{
		url:  url,
		ws:   ws,
		done: make(chan struct{}),
	}, nil
}

// Provider is an api.ConnectionProvider dialing WebSocket connections
func Provider(opts ...options.Opt) api.ConnectionProvider {
	return func(ctx context.Context, url, origin string) (api.Connection, error) {
		return New(ctx, url, origin, opts...)
	}
}

// URL returns the event server URL
func (c *Connection) URL() string {
	return c.url
}

// Receive reads frames and sends them to eventch until the connection is
// closed or fails. A failure is reported as *api.DisconnectedEvent unless
// the connection was closed locally. eventch is closed on return.
func (c *Connection) Receive(eventch chan<- interface{}) {
	defer close(eventch)

	for {
		var data []byte
		if err := websocket.Message.Receive(c.ws, &data); err != nil {
			if c.Closed() {
				logger.Debugf("connection to %s closed", c.url)
				return
			}
			logger.Warnf("receive from %s failed: %s", c.url, err)
			c.send(eventch, &api.DisconnectedEvent{
				Err: status.New(status.EventServerStatus, status.ConnectionClosed.ToInt32(), err.Error(), nil),
			})
			c.Close()
			return
		}
		if !c.send(eventch, &api.Frame{Data: data}) {
			return
		}
	}
}

func (c *Connection) send(eventch chan<- interface{}, event interface{}) bool {
	select {
	case eventch <- event:
		return true
	case <-c.done:
		return false
	}
}

// Close closes the socket. It may be called more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		close(c.done)
		if err := c.ws.Close(); err != nil {
			logger.Debugf("closing connection to %s: %s", c.url, err)
		}
	})
}

// Closed returns true if Close was called or the connection failed
func (c *Connection) Closed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}
