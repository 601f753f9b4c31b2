/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/errors/status"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

func newTestRequester(t *testing.T, h http.HandlerFunc) (*HTTPRequester, *httptest.Server) {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	r, err := NewHTTPRequester(srv.URL + "/")
	require.NoError(t, err)
	return r, srv
}

func TestNewHTTPRequesterInvalidURL(t *testing.T) {
	_, err := NewHTTPRequester("ftp://localhost")
	assert.Error(t, err)

	_, err = NewHTTPRequester("://bad")
	assert.Error(t, err)
}

func TestDoJSON(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotCT, gotAuth, gotReqID string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.RawQuery
		gotCT, gotAuth, gotReqID = r.Header.Get("Content-Type"), r.Header.Get("Authorization"), r.Header.Get(HeaderRequestID)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"title":"Dune"}`)) // nolint: errcheck
	}))
	defer srv.Close()

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.SetToken("abc"))

	r, err := NewHTTPRequester(srv.URL, WithTokenStore(tokens))
	require.NoError(t, err)

	req := bookchain.NewRequest(http.MethodPost, "/api/books/{bookId}", "/api/books/7")
	req.Query = url.Values{"b": {"2"}, "a": {"1"}}
	req.Body = map[string]string{"title": "Dune"}

	var out struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, r.Do(context.Background(), req, &out))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/books/7", gotPath)
	assert.Equal(t, "a=1&b=2", gotQuery)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "Dune", gotBody["title"])
	assert.Equal(t, 7, out.ID)
	assert.Equal(t, "Dune", out.Title)
}

func TestDoNoTokenNoAuthorization(t *testing.T) {
	var gotAuth []string
	r, _ := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header["Authorization"]
	})
	require.NoError(t, r.Do(context.Background(), bookchain.NewRequest(http.MethodGet, "", "/api/users/me"), nil))
	assert.Empty(t, gotAuth)
}

func TestDoMultipart(t *testing.T) {
	var fields map[string][]string
	var fileName, fileContent, fileCT string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = r.MultipartForm.Value
		fh := r.MultipartForm.File["file"][0]
		fileName, fileCT = fh.Filename, fh.Header.Get("Content-Type")
		f, err := fh.Open()
		require.NoError(t, err)
		b, err := ioutil.ReadAll(f)
		require.NoError(t, err)
		fileContent = string(b)
		w.Write([]byte(`{}`)) // nolint: errcheck
	}))
	defer srv.Close()

	r, err := NewHTTPRequester(srv.URL)
	require.NoError(t, err)

	req := bookchain.NewRequest(http.MethodPost, "", "/api/books/upload")
	req.Form = bookchain.NewMultipart().
		AddField("title", "Dune").
		AddField("tags", "a").
		AddField("tags", "b").
		AddFile("file", "dune.pdf", "", strings.NewReader("%PDF"))

	require.NoError(t, r.Do(context.Background(), req, nil))
	assert.Equal(t, []string{"Dune"}, fields["title"])
	assert.Equal(t, []string{"a", "b"}, fields["tags"])
	assert.Equal(t, "dune.pdf", fileName)
	assert.Equal(t, "application/octet-stream", fileCT)
	assert.Equal(t, "%PDF", fileContent)
}

func TestDoBodyAndFormRejected(t *testing.T) {
	r, err := NewHTTPRequester("http://localhost:1")
	require.NoError(t, err)

	req := bookchain.NewRequest(http.MethodPost, "", "/x")
	req.Body = map[string]string{}
	req.Form = bookchain.NewMultipart()

	err = r.Do(context.Background(), req, nil)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.InvalidArgument.ToInt32(), s.Code)
}

func TestDoHTTPError(t *testing.T) {
	r, _ := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"book not found"}`)) // nolint: errcheck
	})

	err := r.Do(context.Background(), bookchain.NewRequest(http.MethodGet, "", "/api/books/9"), nil)
	require.Error(t, err)

	code, ok := status.HTTPCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, code)

	s, _ := status.FromError(err)
	assert.Equal(t, "book not found", s.Message)
	assert.Equal(t, []interface{}{`{"message":"book not found"}`}, s.Details)
}

func TestDoHTTPErrorTextBody(t *testing.T) {
	r, _ := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	err := r.Do(context.Background(), bookchain.NewRequest(http.MethodPost, "", "/api/auth/login"), nil)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.HTTPTransportStatus, s.Group)
	assert.Equal(t, int32(http.StatusUnauthorized), s.Code)
	assert.Equal(t, "bad credentials", s.Message)
}

func TestDoDecodeTargets(t *testing.T) {
	body := `"jwt-token"`
	r, _ := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(body)) // nolint: errcheck
	})
	req := bookchain.NewRequest(http.MethodGet, "", "/api/utils/uuid")

	var s string
	require.NoError(t, r.Do(context.Background(), req, &s))
	assert.Equal(t, "jwt-token", s)

	body = "plain-token\n"
	require.NoError(t, r.Do(context.Background(), req, &s))
	assert.Equal(t, "plain-token", s)

	var raw []byte
	require.NoError(t, r.Do(context.Background(), req, &raw))
	assert.Equal(t, "plain-token\n", string(raw))

	var rm json.RawMessage
	err := r.Do(context.Background(), req, &rm)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.InvalidResponse.ToInt32(), st.Code)

	body = ""
	var m map[string]interface{}
	require.NoError(t, r.Do(context.Background(), req, &m))
	assert.Nil(t, m)
}

func TestDoTimeout(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewClientMetrics(reg)
	require.NoError(t, err)

	r, err := NewHTTPRequester(srv.URL, WithRequestTimeout(50*time.Millisecond), WithMetrics(m))
	require.NoError(t, err)

	err = r.Do(context.Background(), bookchain.NewRequest(http.MethodGet, "/api/books", "/api/books"), nil)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.ClientStatus, s.Group)
	assert.Equal(t, status.Timeout.ToInt32(), s.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	var timeouts float64
	for _, f := range families {
		if f.GetName() == "bookchain_client_request_timeouts" {
			timeouts = f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), timeouts)
}

func TestDoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		<-r.Context().Done()
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewClientMetrics(reg)
	require.NoError(t, err)

	r, err := NewHTTPRequester(srv.URL, WithMetrics(m))
	require.NoError(t, err)

	err = r.Do(ctx, bookchain.NewRequest(http.MethodGet, "/api/books", "/api/books"), nil)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.ClientStatus, s.Group)
	assert.Equal(t, status.Canceled.ToInt32(), s.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	var failLabels []string
	for _, f := range families {
		if f.GetName() != "bookchain_client_requests_failed" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == metrics.LabelFail {
					failLabels = append(failLabels, l.GetValue())
				}
			}
		}
	}
	assert.Equal(t, []string{"canceled"}, failLabels)
}

func TestDoConnectionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	r, err := NewHTTPRequester(addr)
	require.NoError(t, err)

	err = r.Do(context.Background(), bookchain.NewRequest(http.MethodGet, "", "/api/books"), nil)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.ConnectionFailed.ToInt32(), s.Code)
}

func TestDoHeadersAndUserAgent(t *testing.T) {
	var h http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h = r.Header
	}))
	defer srv.Close()

	r, err := NewHTTPRequester(srv.URL, WithUserAgent("shelf/1.0"), WithHeader("X-Org", "org1"))
	require.NoError(t, err)

	req := bookchain.NewRequest(http.MethodGet, "", "/api/books")
	req.Header = http.Header{HeaderRequestID: {"req-1"}}
	require.NoError(t, r.Do(context.Background(), req, nil))

	assert.Equal(t, "shelf/1.0", h.Get("User-Agent"))
	assert.Equal(t, "org1", h.Get("X-Org"))
	assert.Equal(t, "req-1", h.Get(HeaderRequestID))
}

func TestFailLabel(t *testing.T) {
	assert.Equal(t, "http_500", failLabel(status.NewFromHTTPResponse(500, "", nil)))
	assert.Equal(t, "connection_failed", failLabel(status.New(status.ClientStatus, status.ConnectionFailed.ToInt32(), "", nil)))
	assert.Equal(t, "canceled", failLabel(status.New(status.ClientStatus, status.Canceled.ToInt32(), "", nil)))
	assert.Equal(t, "unknown", failLabel(assert.AnError))
}

func TestDoTextBody(t *testing.T) {
	var gotCT, gotBody string
	r, _ := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		gotCT = req.Header.Get("Content-Type")
		b, _ := ioutil.ReadAll(req.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	})

	req := bookchain.NewRequest(http.MethodPut, "", "/api/users/interests")
	req.Body = bookchain.TextBody("sci-fi,history")
	require.NoError(t, r.Do(context.Background(), req, nil))
	assert.Equal(t, "text/plain; charset=utf-8", gotCT)
	assert.Equal(t, "sci-fi,history", gotBody)
}
