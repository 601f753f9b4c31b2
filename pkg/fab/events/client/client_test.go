/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhang829-666/BookchainHF/pkg/common/errors/status"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/client/mocks"
)

const (
	eventURL    = "ws://localhost:8080/chaincode-events"
	waitTimeout = 5 * time.Second
)

type recorder struct {
	mutex    sync.Mutex
	payloads []interface{}
	errs     []error
	ch       chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 100)}
}

func (r *recorder) handle(payload interface{}, raw []byte) {
	r.mutex.Lock()
	r.payloads = append(r.payloads, payload)
	r.mutex.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) handleErr(err error) {
	r.mutex.Lock()
	r.errs = append(r.errs, err)
	r.mutex.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T, n int) {
	for i := 0; i < n; i++ {
		select {
		case <-r.ch:
		case <-time.After(waitTimeout):
			t.Fatalf("timed out waiting for event %d", i+1)
		}
	}
}

func TestConnectAndDispatch(t *testing.T) {
	conn := mocks.NewMockConnection(eventURL)
	provider := mocks.NewProvider(conn)
	rec := newRecorder()
	connEvents := make(chan *ConnectionEvent, 10)

	c := New(eventURL, "http://localhost/", provider.Provide, rec.handle,
		WithErrorHandler(rec.handleErr), WithConnectionEvent(connEvents), WithEventConsumerBufferSize(0))
	assert.Equal(t, Disconnected, c.ConnectionState())

	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, Connected, c.ConnectionState())
	assert.Equal(t, []string{eventURL}, provider.URLs())

	ce := <-connEvents
	assert.True(t, ce.Connected)

	err := c.Connect(context.Background())
	assert.Error(t, err, "expected error connecting twice")

	conn.ProduceFrame(`{"eventName":"AssetCreated","assetId":"A1"}`)
	conn.ProduceFrame(`{broken`)
	conn.ProduceFrame(`[1,2]`)
	rec.wait(t, 3)

	rec.mutex.Lock()
	require.Len(t, rec.payloads, 2)
	assert.Equal(t, map[string]interface{}{"eventName": "AssetCreated", "assetId": "A1"}, rec.payloads[0])
	assert.Equal(t, []interface{}{float64(1), float64(2)}, rec.payloads[1])
	require.Len(t, rec.errs, 1)
	s, ok := status.FromError(rec.errs[0])
	require.True(t, ok)
	assert.Equal(t, status.InvalidPayload.ToInt32(), s.Code)
	assert.Equal(t, []interface{}{"{broken"}, s.Details)
	rec.mutex.Unlock()

	c.Close()
	c.Close()
	select {
	case <-c.Done():
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for dispatcher to stop")
	}
	assert.True(t, c.Stopped())
	assert.True(t, conn.Closed())
	assert.Equal(t, Disconnected, c.ConnectionState())
}

func TestNoHandlerAfterClose(t *testing.T) {
	conn := mocks.NewMockConnection(eventURL)
	rec := newRecorder()

	c := New(eventURL, "", mocks.NewProvider(conn).Provide, rec.handle)
	require.NoError(t, c.Connect(context.Background()))

	conn.ProduceFrame(`{"n":1}`)
	rec.wait(t, 1)

	c.Close()
	conn.ProduceFrame(`{"n":2}`)
	<-c.Done()

	rec.mutex.Lock()
	defer rec.mutex.Unlock()
	assert.Len(t, rec.payloads, 1)
}

// floodConnection delivers the same frame as fast as the dispatcher takes it
type floodConnection struct {
	data      []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newFloodConnection(data string) *floodConnection {
	return &floodConnection{data: []byte(data), done: make(chan struct{})}
}

func (c *floodConnection) Receive(eventch chan<- interface{}) {
	defer close(eventch)
	for {
		select {
		case eventch <- &api.Frame{Data: c.data}:
		case <-c.done:
			return
		}
	}
}

func (c *floodConnection) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *floodConnection) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func TestNoHandlerStartsAfterCloseReturns(t *testing.T) {
	for i := 0; i < 2000; i++ {
		conn := newFloodConnection(`{"a":1}`)
		provider := func(ctx context.Context, url, origin string) (api.Connection, error) { return conn, nil }

		var closed, late int32
		started := make(chan struct{})
		var once sync.Once
		c := New(eventURL, "", provider, func(payload interface{}, raw []byte) {
			if atomic.LoadInt32(&closed) == 1 {
				atomic.AddInt32(&late, 1)
			}
			once.Do(func() { close(started) })
		}, WithEventConsumerBufferSize(0))
		require.NoError(t, c.Connect(context.Background()))

		<-started
		c.Close()
		atomic.StoreInt32(&closed, 1)

		select {
		case <-c.Done():
		case <-time.After(waitTimeout):
			t.Fatal("timed out waiting for dispatcher to stop")
		}
		require.Zero(t, atomic.LoadInt32(&late), "handler invoked after Close returned in cycle %d", i)
	}
}

func TestCloseWaitsForRunningHandler(t *testing.T) {
	conn := mocks.NewMockConnection(eventURL)
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished int32
	c := New(eventURL, "", mocks.NewProvider(conn).Provide, func(payload interface{}, raw []byte) {
		close(entered)
		<-release
		atomic.StoreInt32(&finished, 1)
	})
	require.NoError(t, c.Connect(context.Background()))

	conn.ProduceFrame(`{"n":1}`)
	<-entered

	closed := make(chan struct{})
	go func() {
		c.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while the handler was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(waitTimeout):
		t.Fatal("Close did not return")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&finished))
}

func TestCloseFromHandler(t *testing.T) {
	conn := mocks.NewMockConnection(eventURL)
	var c *Client
	calls := 0
	c = New(eventURL, "", mocks.NewProvider(conn).Provide, func(payload interface{}, raw []byte) {
		calls++
		c.Close()
	})
	require.NoError(t, c.Connect(context.Background()))

	conn.ProduceFrame(`1`)
	conn.ProduceFrame(`2`)

	select {
	case <-c.Done():
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for dispatcher to stop")
	}
	assert.Equal(t, 1, calls)
}

func TestDisconnected(t *testing.T) {
	conn := mocks.NewMockConnection(eventURL)
	rec := newRecorder()
	connEvents := make(chan *ConnectionEvent, 10)

	c := New(eventURL, "", mocks.NewProvider(conn).Provide, rec.handle, WithErrorHandler(rec.handleErr), WithConnectionEvent(connEvents))
	require.NoError(t, c.Connect(context.Background()))
	<-connEvents

	disconnectErr := errors.New("connection reset")
	conn.ProduceEvent(&api.DisconnectedEvent{Err: disconnectErr})
	rec.wait(t, 1)

	ce := <-connEvents
	assert.False(t, ce.Connected)
	assert.Equal(t, disconnectErr, ce.Err)

	rec.mutex.Lock()
	assert.Equal(t, []error{disconnectErr}, rec.errs)
	rec.mutex.Unlock()

	c.Close()
}

func TestConnectFailure(t *testing.T) {
	connEvents := make(chan *ConnectionEvent, 10)
	c := New(eventURL, "", mocks.NewFailingProvider(errors.New("refused")).Provide, newRecorder().handle, WithConnectionEvent(connEvents))

	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
	assert.Equal(t, Disconnected, c.ConnectionState())

	ce := <-connEvents
	assert.False(t, ce.Connected)
}

func TestConnectAfterClose(t *testing.T) {
	c := New(eventURL, "", mocks.NewProvider(mocks.NewMockConnection(eventURL)).Provide, newRecorder().handle)
	c.Close()
	<-c.Done()
	assert.Error(t, c.Connect(context.Background()))

	c = New(eventURL, "", mocks.NewProvider(mocks.NewMockConnection(eventURL)).Provide, nil)
	assert.Error(t, c.Connect(context.Background()))
}

func TestConnectionStateString(t *testing.T) {
	assert.Equal(t, "Connected", Connected.String())
	assert.Equal(t, "Connecting", Connecting.String())
	assert.Equal(t, "Disconnected", Disconnected.String())
	assert.Equal(t, "undefined", ConnectionState(9).String())
}
