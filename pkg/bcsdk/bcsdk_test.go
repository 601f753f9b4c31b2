/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bcsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	"github.com/zhang829-666/BookchainHF/pkg/core/config"
	"github.com/zhang829-666/BookchainHF/pkg/fab/comm"
	"github.com/zhang829-666/BookchainHF/pkg/fab/mocks"
)

func newBackend(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "token-123")
	})
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-123" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"unauthorized"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"userId":1,"username":"alice"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func configYAML(serverURL, eventURL, storePath string) []byte {
	return []byte(fmt.Sprintf(`
client:
  organization: org2
  logging:
    level: info
  credentialStore:
    path: %q
server:
  url: %s
events:
  url: %s
`, storePath, serverURL, eventURL))
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(config.FromRaw([]byte("server:\n  url: ftp://localhost\n"), "yaml"))
	assert.Error(t, err)

	_, err = New(config.FromRaw(configYAML("http://localhost:8080", "ws://localhost:8080/chaincode-events", ""), "yaml"), WithTokenStore(nil))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	sdk, err := New(config.FromRaw(configYAML("http://localhost:8080/", "ws://localhost:8080/chaincode-events", ""), "yaml"))
	require.NoError(t, err)
	defer sdk.Close()

	assert.Equal(t, "http://localhost:8080", sdk.Config().ServerURL())
	assert.Equal(t, "org2", sdk.Config().Organization())
	assert.IsType(t, &comm.MemoryTokenStore{}, sdk.TokenStore())

	_, err = sdk.ChaincodeClient()
	assert.NoError(t, err)
	_, err = sdk.BookClient()
	assert.NoError(t, err)
	_, err = sdk.UserClient()
	assert.NoError(t, err)
	_, err = sdk.EventClient()
	assert.NoError(t, err)
}

func TestTokenPersistence(t *testing.T) {
	backend := newBackend(t)
	storePath := t.TempDir()
	cfg := configYAML(backend.URL, "ws://localhost:8080/chaincode-events", storePath)

	sdk, err := New(config.FromRaw(cfg, "yaml"))
	require.NoError(t, err)
	assert.IsType(t, &comm.KVTokenStore{}, sdk.TokenStore())

	users, err := sdk.UserClient()
	require.NoError(t, err)
	_, err = users.Login(context.Background(), bookchain.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	sdk.Close()

	// a new SDK on the same store picks the session up
	sdk, err = New(config.FromRaw(cfg, "yaml"))
	require.NoError(t, err)
	defer sdk.Close()

	users, err = sdk.UserClient()
	require.NoError(t, err)
	u, err := users.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	require.NoError(t, users.Logout())
	_, err = users.GetCurrentUser(context.Background())
	assert.Error(t, err)
}

func TestCustomTokenStoreAndHTTPClient(t *testing.T) {
	backend := newBackend(t)
	tokens := comm.NewMemoryTokenStore()
	require.NoError(t, tokens.SetToken("token-123"))

	sdk, err := New(
		config.FromRaw(configYAML(backend.URL, "ws://localhost:8080/chaincode-events", ""), "yaml"),
		WithTokenStore(tokens),
		WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
		WithUserAgent("bookchain-test"),
	)
	require.NoError(t, err)
	defer sdk.Close()
	assert.Equal(t, tokens, sdk.TokenStore())

	users, err := sdk.UserClient()
	require.NoError(t, err)
	u, err := users.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bookchain.ID("1"), u.UserID)
}

func TestMetricsRegisterer(t *testing.T) {
	backend := newBackend(t)
	registry := prometheus.NewRegistry()

	sdk, err := New(config.FromRaw(configYAML(backend.URL, "ws://localhost:8080/chaincode-events", ""), "yaml"), WithMetricsRegisterer(registry))
	require.NoError(t, err)
	defer sdk.Close()

	users, err := sdk.UserClient()
	require.NoError(t, err)
	_, err = users.GetCurrentUser(context.Background())
	require.Error(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["bookchain_client_requests_received"])
	assert.True(t, names["bookchain_client_requests_failed"])
}

func TestClose(t *testing.T) {
	server := mocks.StartMockEventServer()
	defer server.Stop()

	sdk, err := New(config.FromRaw(configYAML("http://localhost:8080", server.URL(), ""), "yaml"))
	require.NoError(t, err)

	ec, err := sdk.EventClient()
	require.NoError(t, err)
	_, err = ec.ListenToChaincodeEvents(func(interface{}) {})
	require.NoError(t, err)
	require.NoError(t, server.WaitForConnection(5*time.Second))

	sdk.Close()
	sdk.Close()
	require.NoError(t, server.WaitForDisconnect(5*time.Second))

	_, err = sdk.BookClient()
	assert.EqualError(t, err, "SDK is closed")
	_, err = sdk.EventClient()
	assert.Error(t, err)
}
