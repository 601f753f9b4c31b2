/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wsclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhang829-666/BookchainHF/pkg/common/errors/status"
	"github.com/zhang829-666/BookchainHF/pkg/fab/events/api"
	"github.com/zhang829-666/BookchainHF/pkg/fab/mocks"
)

const waitTimeout = 5 * time.Second

func TestConnectionReceive(t *testing.T) {
	srv := mocks.StartMockEventServer()
	defer srv.Stop()

	conn, err := New(context.Background(), srv.URL(), "http://localhost/")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, srv.WaitForConnection(waitTimeout))
	assert.Equal(t, []string{"http://localhost/"}, srv.Origins())

	eventch := make(chan interface{}, 10)
	go conn.Receive(eventch)

	require.NoError(t, srv.SendRaw(`{"eventName":"AssetTransferred"}`))
	require.NoError(t, srv.SendRaw(`not json`))

	for _, expected := range []string{`{"eventName":"AssetTransferred"}`, `not json`} {
		select {
		case e := <-eventch:
			frame, ok := e.(*api.Frame)
			require.True(t, ok, "expected frame but got %T", e)
			assert.Equal(t, expected, string(frame.Data))
		case <-time.After(waitTimeout):
			t.Fatal("timed out waiting for frame")
		}
	}
}

func TestConnectionClose(t *testing.T) {
	srv := mocks.StartMockEventServer()
	defer srv.Stop()

	conn, err := New(context.Background(), srv.URL(), "http://localhost/")
	require.NoError(t, err)
	require.NoError(t, srv.WaitForConnection(waitTimeout))

	eventch := make(chan interface{})
	go conn.Receive(eventch)

	conn.Close()
	conn.Close()
	assert.True(t, conn.Closed())

	select {
	case _, ok := <-eventch:
		assert.False(t, ok, "expected event channel to be closed")
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for event channel to close")
	}
	require.NoError(t, srv.WaitForDisconnect(waitTimeout))
}

func TestConnectionServerDisconnect(t *testing.T) {
	srv := mocks.StartMockEventServer()
	defer srv.Stop()

	conn, err := New(context.Background(), srv.URL(), "http://localhost/")
	require.NoError(t, err)
	require.NoError(t, srv.WaitForConnection(waitTimeout))

	eventch := make(chan interface{}, 1)
	go conn.Receive(eventch)

	srv.CloseConnections()

	select {
	case e := <-eventch:
		de, ok := e.(*api.DisconnectedEvent)
		require.True(t, ok, "expected disconnected event but got %T", e)
		s, ok := status.FromError(de.Err)
		require.True(t, ok)
		assert.Equal(t, status.EventServerStatus, s.Group)
		assert.Equal(t, status.ConnectionClosed.ToInt32(), s.Code)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for disconnected event")
	}
	assert.True(t, conn.Closed())
}

func TestConnectionDialFailure(t *testing.T) {
	srv := mocks.StartMockEventServer()
	url := srv.URL()
	srv.Stop()

	_, err := New(context.Background(), url, "http://localhost/")
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.EventServerStatus, s.Group)
	assert.Equal(t, status.ConnectionFailed.ToInt32(), s.Code)

	_, err = New(context.Background(), "://bad", "http://localhost/")
	s, ok = status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.InvalidArgument.ToInt32(), s.Code)
}

func TestProvider(t *testing.T) {
	srv := mocks.StartMockEventServer()
	defer srv.Stop()

	conn, err := Provider(WithHeader("X-Org", "org1"), WithMaxFrameSize(1024))(context.Background(), srv.URL(), "http://localhost/")
	require.NoError(t, err)
	defer conn.Close()
	assert.False(t, conn.Closed())
}
