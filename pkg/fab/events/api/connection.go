/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
)

// Connection defines the functions for an event server connection
type Connection interface {
	// Receive sends events to the given channel until the connection is closed.
	// Events are either *Frame or *DisconnectedEvent.
	Receive(chan<- interface{})
	// Close closes the connection
	Close()
	// Closed return true if the connection is closed
	Closed() bool
}

// ConnectionProvider creates a Connection to the event server at url
type ConnectionProvider func(ctx context.Context, url, origin string) (Connection, error)

// Frame is a message received from the event server
type Frame struct {
	Data []byte
}

// DisconnectedEvent is sent when the connection is lost
type DisconnectedEvent struct {
	Err error
}
