/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/websocket"
)

// EventPath is the path the mock event server listens on
const EventPath = "/chaincode-events"

// MockEventServer is a WebSocket server pushing chaincode events
type MockEventServer struct {
	srv          *httptest.Server
	mutex        sync.Mutex
	conns        map[*websocket.Conn]struct{}
	connected    chan struct{}
	disconnected chan struct{}
	origins      []string
}

// StartMockEventServer starts a mock event server on a random local port
func StartMockEventServer() *MockEventServer {
	m := &MockEventServer{
		conns:        make(map[*websocket.Conn]struct{}),
		connected:    make(chan struct{}, 16),
		disconnected: make(chan struct{}, 16),
	}

	mux := http.NewServeMux()
	mux.Handle(EventPath, websocket.Handler(m.handle))
	m.srv = httptest.NewServer(mux)
	return m
}

func (m *MockEventServer) handle(conn *websocket.Conn) {
	m.mutex.Lock()
	m.conns[conn] = struct{}{}
	m.origins = append(m.origins, conn.Config().Origin.String())
	m.mutex.Unlock()

	notify(m.connected)

	// the client never writes; a read returns when it goes away
	var ignored []byte
	for {
		if err := websocket.Message.Receive(conn, &ignored); err != nil {
			break
		}
	}

	m.mutex.Lock()
	delete(m.conns, conn)
	m.mutex.Unlock()

	notify(m.disconnected)
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// URL returns the ws:// URL of the event endpoint
func (m *MockEventServer) URL() string {
	return "ws" + strings.TrimPrefix(m.srv.URL, "http") + EventPath
}

// Origins returns the Origin headers of the connections received so far
func (m *MockEventServer) Origins() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]string(nil), m.origins...)
}

// NumConnections returns the number of open client connections
func (m *MockEventServer) NumConnections() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.conns)
}

// WaitForConnection waits until a client connects
func (m *MockEventServer) WaitForConnection(timeout time.Duration) error {
	select {
	case <-m.connected:
		return nil
	case <-time.After(timeout):
		return errors.New("timed out waiting for client connection")
	}
}

// WaitForDisconnect waits until a client goes away
func (m *MockEventServer) WaitForDisconnect(timeout time.Duration) error {
	select {
	case <-m.disconnected:
		return nil
	case <-time.After(timeout):
		return errors.New("timed out waiting for client disconnect")
	}
}

// SendRaw sends a text frame to all connected clients
func (m *MockEventServer) SendRaw(frame string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for conn := range m.conns {
		if err := websocket.Message.Send(conn, frame); err != nil {
			return errors.Wrap(err, "sending frame failed")
		}
	}
	return nil
}

// SendMockEvent sends event as a JSON text frame to all connected clients
func (m *MockEventServer) SendMockEvent(event interface{}) error {
	b, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshalling event failed")
	}
	return m.SendRaw(string(b))
}

// CloseConnections closes all client connections from the server side
func (m *MockEventServer) CloseConnections() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for conn := range m.conns {
		conn.Close() // nolint: errcheck
	}
}

// Stop shuts the server down
func (m *MockEventServer) Stop() {
	m.CloseConnections()
	m.srv.Close()
}
