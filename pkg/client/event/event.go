/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package event receives the chaincode events the Bookchain backend pushes
// over its WebSocket endpoint.
//  Basic Flow:
//  1) Prepare client context
//  2) Create event client
//  3) Listen, or register for events
//  4) Process events
//  5) Dispose the listener, or unregister
//
// Every listener and registration owns its own socket. There is no
// reconnect: once the server closes the socket the listener stays silent.
package event

import (
	"context"
	"sync"

	"github.com/Knetic/govaluate"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/options"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	contextApi "github.com/zhang829-666/BookchainHF/pkg/common/providers/context"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/client"
)

var logger = logging.NewLogger("bcsdk/client")

const defaultBufferSize = 100

// Client receives chaincode events
type Client struct {
	url          string
	origin       string
	connProvider api.ConnectionProvider
	metrics      *metrics.ClientMetrics
	errHandler   func(err error)
	filter       *govaluate.EvaluableExpression
	bufferSize   uint

	mutex     sync.Mutex
	// listeners maps each open socket to the func that stops its handler
	// from blocking, nil for callback listeners
	listeners map[*client.Client]func()
	closed    bool
}

var _ bookchain.EventService = (*Client)(nil)

// New returns an event client
func New(clientProvider contextApi.ClientProvider, opts ...ClientOption) (*Client, error) {
	ctx, err := clientProvider()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create client context")
	}
	if ctx.EventConnectionProvider() == nil {
		return nil, errors.New("event connection provider not initialized")
	}

	c := &Client{
		connProvider: ctx.EventConnectionProvider(),
		metrics:      ctx.Metrics(),
		bufferSize:   defaultBufferSize,
		listeners:    make(map[*client.Client]func()),
	}
	if cfg := ctx.EndpointConfig(); cfg != nil {
		c.url = cfg.EventURL()
		c.origin = cfg.EventOrigin()
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.WithMessage(err, "option failed")
		}
	}

	if c.url == "" {
		return nil, errors.New("event URL not configured")
	}
	return c, nil
}

// ListenToChaincodeEvents opens a socket to the event server and invokes
// callback with every decoded event. The returned function closes the
// socket; once it returns callback is not invoked again, and a callback
// running on another goroutine has completed. It may be called more than
// once, and from within callback.
func (c *Client) ListenToChaincodeEvents(callback func(event interface{})) (func(), error) {
	if callback == nil {
		return nil, errors.New("event callback is nil")
	}

	ec, err := c.connect(func(payload interface{}, raw []byte) {
		if c.matches(payload) {
			callback(payload)
		}
	}, nil)
	if err != nil {
		return nil, err
	}
	return func() { c.release(ec) }, nil
}

// RegisterChaincodeEvent opens a socket to the event server and delivers
// each event on the returned channel. Unregister must be called when the
// registration is no longer needed.
//  Returns:
//  the registration and a channel that is used to receive events. The channel is closed when Unregister is called.
func (c *Client) RegisterChaincodeEvent() (bookchain.Registration, <-chan *bookchain.CCEvent, error) {
	reg := &registration{
		eventch: make(chan *bookchain.CCEvent, c.bufferSize),
		done:    make(chan struct{}),
	}

	ec, err := c.connect(func(payload interface{}, raw []byte) {
		if !c.matches(payload) {
			return
		}
		select {
		case reg.eventch <- newCCEvent(payload, raw):
		case <-reg.done:
		}
	}, reg.stop)
	if err != nil {
		return nil, nil, err
	}
	reg.client = ec
	return reg, reg.eventch, nil
}

// Unregister closes the socket of the given registration and then the
// event channel
func (c *Client) Unregister(reg bookchain.Registration) {
	r, ok := reg.(*registration)
	if !ok || r == nil {
		logger.Warnf("unsupported registration type: %T", reg)
		return
	}
	r.closeOnce.Do(func() {
		r.stop()
		c.release(r.client)
		<-r.client.Done()
		close(r.eventch)
	})
}

// Close closes every open listener and registration socket. Registration
// channels are closed by Unregister.
func (c *Client) Close() {
	c.mutex.Lock()
	c.closed = true
	listeners := c.listeners
	c.listeners = make(map[*client.Client]func())
	c.mutex.Unlock()

	for l, stop := range listeners {
		if stop != nil {
			stop()
		}
		l.Close()
	}
}

func (c *Client) connect(handler client.Handler, stop func()) (*client.Client, error) {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return nil, errors.New("event client is closed")
	}
	c.mutex.Unlock()

	opts := []options.Opt{
		client.WithEventConsumerBufferSize(c.bufferSize),
		client.WithMetrics(c.metrics),
	}
	if c.errHandler != nil {
		opts = append(opts, client.WithErrorHandler(c.errHandler))
	}

	ec := client.New(c.url, c.origin, c.connProvider, handler, opts...)
	if err := ec.Connect(context.Background()); err != nil {
		return nil, errors.WithMessagef(err, "listening to chaincode events on %s failed", c.url)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		ec.Close()
		return nil, errors.New("event client is closed")
	}
	c.listeners[ec] = stop
	logger.Debugf("listening to chaincode events on %s", c.url)
	return ec, nil
}

func (c *Client) release(ec *client.Client) {
	c.mutex.Lock()
	delete(c.listeners, ec)
	c.mutex.Unlock()
	ec.Close()
}

// matches evaluates the event filter against the top level fields of payload
func (c *Client) matches(payload interface{}) bool {
	if c.filter == nil {
		return true
	}
	fields, ok := payload.(map[string]interface{})
	if !ok {
		fields = map[string]interface{}{}
	}
	result, err := c.filter.Evaluate(fields)
	if err != nil {
		logger.Debugf("event filter [%s] not applicable: %s", c.filter, err)
		return false
	}
	match, ok := result.(bool)
	return ok && match
}

type registration struct {
	client    *client.Client
	eventch   chan *bookchain.CCEvent
	done      chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
}

// stop releases a handler blocked on a full event channel
func (r *registration) stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// newCCEvent decodes the well known fields of payload. Events that are not
// JSON objects carry only Payload and Raw.
func newCCEvent(payload interface{}, raw []byte) *bookchain.CCEvent {
	evt := &bookchain.CCEvent{}
	if fields, ok := payload.(map[string]interface{}); ok {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           evt,
		})
		if err == nil {
			err = decoder.Decode(fields)
		}
		if err != nil {
			logger.Warnf("decoding chaincode event fields failed: %s", err)
		}
	}
	evt.Payload = payload
	evt.Raw = raw
	return evt
}
