/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/common/errors/status"
	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/options"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
)

var logger = logging.NewLogger("bcsdk/events")

// ConnectionState is the state of the client connection
type ConnectionState int32

const (
	// Disconnected indicates that the client is disconnected from the server
	Disconnected ConnectionState = iota
	// Connecting indicates that the client is in the process of establishing a connection
	Connecting
	// Connected indicates that the client is connected to the server
	Connected
)

// ConnectionEvent is sent when the client connects or disconnects
type ConnectionEvent struct {
	Connected bool
	Err       error
}

// Handler is invoked with each decoded event payload and the frame it came from
type Handler func(payload interface{}, raw []byte)

// ErrorHandler is invoked with undecodable frames and connection failures
type ErrorHandler func(err error)

// Client connects to the event server and hands every JSON frame it
// receives to a handler. A client owns one connection and is not reused
// once closed; there is no reconnect.
type Client struct {
	params
	url             string
	origin          string
	connProvider    api.ConnectionProvider
	handler         Handler
	mutex           sync.Mutex
	conn            api.Connection
	connectionState int32
	stopped         int32
	done            chan struct{}
	// handlerMutex is held while a handler is checked for and invoked
	handlerMutex sync.Mutex
	dispatcherID uint64
}

// New returns a new event client
func New(url, origin string, connProvider api.ConnectionProvider, handler Handler, opts ...options.Opt) *Client {
	params := defaultParams()
	options.Apply(params, opts)

	return &Client{
		params:          *params,
		url:             url,
		origin:          origin,
		connProvider:    connProvider,
		handler:         handler,
		connectionState: int32(Disconnected),
		done:            make(chan struct{}),
	}
}

// Connect connects to the event server and starts dispatching events
func (c *Client) Connect(ctx context.Context) error {
	if c.handler == nil {
		return errors.New("event handler is nil")
	}
	if c.Stopped() {
		return errors.New("event client is closed")
	}
	if !c.setConnectionState(Disconnected, Connecting) {
		return errors.Errorf("unable to connect event client since client is [%s]. Expecting client to be in state [%s]", c.ConnectionState(), Disconnected)
	}

	conn, err := c.connProvider(ctx, c.url, c.origin)
	if err != nil {
		c.mustSetConnectionState(Disconnected)
		c.notifyConnectEventChan(&ConnectionEvent{Err: err})
		return errors.WithMessage(err, "connecting to event server failed")
	}

	c.mutex.Lock()
	if c.Stopped() {
		c.mutex.Unlock()
		conn.Close()
		return errors.New("event client is closed")
	}
	c.conn = conn
	c.mutex.Unlock()

	c.mustSetConnectionState(Connected)
	c.notifyConnectEventChan(&ConnectionEvent{Connected: true})
	logger.Debugf("event client connected to %s", c.url)

	eventch := make(chan interface{}, c.eventConsumerBufferSize)
	go conn.Receive(eventch)
	go c.dispatch(eventch)

	return nil
}

// Close closes the connection. Once Close returns neither the handler nor
// the error handler is invoked again; a handler running on another goroutine
// is waited for. Close may be called from within the handler.
func (c *Client) Close() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		logger.Debugf("closing event client for %s", c.url)

		c.mutex.Lock()
		conn := c.conn
		c.mutex.Unlock()

		if conn == nil {
			close(c.done)
		} else {
			conn.Close()
		}
	}

	if id := goroutineID(); id != 0 && id == atomic.LoadUint64(&c.dispatcherID) {
		return
	}
	c.handlerMutex.Lock()
	c.handlerMutex.Unlock() // nolint: staticcheck
}

// Done is closed when the client stops dispatching events
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Stopped returns true if the client was closed
func (c *Client) Stopped() bool {
	return atomic.LoadInt32(&c.stopped) == 1
}

// ConnectionState returns the connection state
func (c *Client) ConnectionState() ConnectionState {
	return ConnectionState(atomic.LoadInt32(&c.connectionState))
}

func (c *Client) setConnectionState(currentState, newState ConnectionState) bool {
	return atomic.CompareAndSwapInt32(&c.connectionState, int32(currentState), int32(newState))
}

func (c *Client) mustSetConnectionState(newState ConnectionState) {
	atomic.StoreInt32(&c.connectionState, int32(newState))
}

func (c *Client) dispatch(eventch <-chan interface{}) {
	defer close(c.done)
	atomic.StoreUint64(&c.dispatcherID, goroutineID())

	for e := range eventch {
		switch evt := e.(type) {
		case *api.Frame:
			c.handleFrame(evt)
		case *api.DisconnectedEvent:
			logger.Warnf("event client disconnected from %s: %s", c.url, evt.Err)
			c.mustSetConnectionState(Disconnected)
			c.notifyConnectEventChan(&ConnectionEvent{Err: evt.Err})
			c.reportError(evt.Err)
		default:
			logger.Warnf("unsupported event type: %T", e)
		}
	}

	c.mustSetConnectionState(Disconnected)
	logger.Debugf("event dispatcher for %s stopped", c.url)
}

func (c *Client) handleFrame(frame *api.Frame) {
	if c.Stopped() {
		return
	}
	c.metrics.EventsReceived.Add(1)

	var payload interface{}
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		c.metrics.EventsFailed.Add(1)
		logger.Errorf("dropping chaincode event frame that is not valid JSON: %s", err)
		c.reportError(status.New(status.EventServerStatus, status.InvalidPayload.ToInt32(),
			fmt.Sprintf("invalid event frame: %s", err), []interface{}{string(frame.Data)}))
		return
	}

	c.invoke(func() { c.handler(payload, frame.Data) })
}

func (c *Client) reportError(err error) {
	if c.errHandler != nil {
		c.invoke(func() { c.errHandler(err) })
	}
}

// invoke calls fn unless the client is stopped. The check and the call are
// atomic with respect to Close.
func (c *Client) invoke(fn func()) {
	c.handlerMutex.Lock()
	defer c.handlerMutex.Unlock()
	if c.Stopped() {
		return
	}
	fn()
}

// goroutineID returns the id of the calling goroutine
func goroutineID() uint64 {
	var buf [64]byte
	b := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (c *Client) notifyConnectEventChan(event *ConnectionEvent) {
	if c.connEventCh == nil {
		return
	}
	select {
	case c.connEventCh <- event:
	default:
		logger.Warnf("connection event channel is full, dropping event")
	}
}

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connected:
		return "Connected"
	case Connecting:
		return "Connecting"
	default:
		return "undefined"
	}
}
