/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
)

// MockConnection is a mock connection used for unit testing
type MockConnection struct {
	rcvch     chan interface{}
	closed    int32
	closeOnce sync.Once
	done      chan struct{}
	sourceURL string
}

var _ api.Connection = (*MockConnection)(nil)

// NewMockConnection returns a new MockConnection
func NewMockConnection(sourceURL string) *MockConnection {
	return &MockConnection{
		rcvch:     make(chan interface{}, 100),
		done:      make(chan struct{}),
		sourceURL: sourceURL,
	}
}

// Close implements the Connection interface
func (c *MockConnection) Close() {
	c.closeOnce.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		close(c.done)
	})
}

// Closed return true if the connection is closed
func (c *MockConnection) Closed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// Receive implements the Connection interface
func (c *MockConnection) Receive(eventch chan<- interface{}) {
	defer close(eventch)
	for {
		select {
		case e := <-c.rcvch:
			select {
			case eventch <- e:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

// ProduceFrame sends data as a received frame
func (c *MockConnection) ProduceFrame(data string) {
	c.ProduceEvent(&api.Frame{Data: []byte(data)})
}

// ProduceEvent sends the given event to the event channel
func (c *MockConnection) ProduceEvent(event interface{}) {
	c.rcvch <- event
}

// SourceURL returns the event source
func (c *MockConnection) SourceURL() string {
	return c.sourceURL
}

// MockConnectionProvider hands out a fixed connection
type MockConnectionProvider struct {
	mutex sync.Mutex
	conn  *MockConnection
	err   error
	urls  []string
}

// NewProvider returns a provider handing out conn
func NewProvider(conn *MockConnection) *MockConnectionProvider {
	return &MockConnectionProvider{conn: conn}
}

// NewFailingProvider returns a provider failing with err
func NewFailingProvider(err error) *MockConnectionProvider {
	return &MockConnectionProvider{err: err}
}

// Provide is an api.ConnectionProvider
func (p *MockConnectionProvider) Provide(ctx context.Context, url, origin string) (api.Connection, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.urls = append(p.urls, url)
	if p.err != nil {
		return nil, p.err
	}
	if p.conn == nil {
		return nil, errors.New("no connection")
	}
	return p.conn, nil
}

// URLs returns the URLs connections were requested for
func (p *MockConnectionProvider) URLs() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string(nil), p.urls...)
}
