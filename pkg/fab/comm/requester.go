/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk/metrics"
	"github.com/zhang829-666/BookchainHF/pkg/common/errors/status"
	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/options"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

var logger = logging.NewLogger("bcsdk/comm")

const (
	tracerName = "github.com/zhang829-666/BookchainHF/pkg/fab/comm"

	// HeaderRequestID carries a per request id for correlation with backend logs
	HeaderRequestID = "X-Request-ID"

	maxErrorMessageLen = 256
)

// HTTPRequester sends requests to the Bookchain REST API
type HTTPRequester struct {
	baseURL string
	params  *params
	tracer  trace.Tracer
}

var _ bookchain.Requester = (*HTTPRequester)(nil)

// NewHTTPRequester returns a requester for the API rooted at serverURL
func NewHTTPRequester(serverURL string, opts ...options.Opt) (*HTTPRequester, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid server URL [%s]", serverURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid server URL [%s]: scheme must be http or https", serverURL)
	}

	p := defaultParams()
	options.Apply(p, opts)

	return &HTTPRequester{
		baseURL: strings.TrimRight(serverURL, "/"),
		params:  p,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// TokenStore returns the configured token store, nil if none
func (r *HTTPRequester) TokenStore() bookchain.TokenStore {
	return r.params.tokenStore
}

// Do sends req and decodes the response into out.
//
// A non-2xx response is returned as a status error in the
// status.HTTPTransportStatus group with the HTTP status code.
func (r *HTTPRequester) Do(ctx context.Context, req *bookchain.Request, out interface{}) error {
	if req == nil {
		return status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), "request is nil", nil)
	}

	route := req.Route
	if route == "" {
		route = req.Path
	}
	labels := []string{metrics.LabelMethod, req.Method, metrics.LabelRoute, route}
	m := r.params.metrics
	m.RequestsReceived.With(labels...).Add(1)

	start := time.Now()
	defer func() {
		m.RequestDuration.With(labels...).Observe(time.Since(start).Seconds())
	}()

	ctx, span := r.tracer.Start(ctx, req.Method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("http.route", route),
		))
	defer span.End()

	if r.params.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.params.requestTimeout)
		defer cancel()
	}

	err := r.do(ctx, req, out, span)
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if s, ok := status.FromError(err); ok && s.Group == status.ClientStatus && s.Code == status.Timeout.ToInt32() {
		m.RequestTimeouts.With(labels...).Add(1)
	} else {
		m.RequestsFailed.With(append(labels, metrics.LabelFail, failLabel(err))...).Add(1)
	}
	return err
}

func (r *HTTPRequester) do(ctx context.Context, req *bookchain.Request, out interface{}, span trace.Span) error {
	httpReq, err := r.newHTTPRequest(ctx, req)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("http.request.id", httpReq.Header.Get(HeaderRequestID)))

	logger.Debugf("%s %s [%s]", req.Method, httpReq.URL.String(), httpReq.Header.Get(HeaderRequestID))

	resp, err := r.params.httpClient.Do(httpReq)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close() // nolint: errcheck

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return transportError(ctx, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debugf("%s %s returned %d", req.Method, req.Path, resp.StatusCode)
		return status.NewFromHTTPResponse(resp.StatusCode, errorMessage(body), body)
	}

	if err := decodeBody(body, out); err != nil {
		return status.New(status.ClientStatus, status.InvalidResponse.ToInt32(),
			fmt.Sprintf("decoding response of %s %s failed: %s", req.Method, req.Path, err), []interface{}{string(body)})
	}
	return nil
}

func (r *HTTPRequester) newHTTPRequest(ctx context.Context, req *bookchain.Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	if req.Body != nil && req.Form != nil {
		return nil, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), "request has both a JSON body and a form", nil)
	}

	u, err := url.Parse(r.baseURL + req.Path)
	if err != nil {
		return nil, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), fmt.Sprintf("invalid path [%s]: %s", req.Path, err), nil)
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Form != nil:
		buf, ct, err := encodeMultipart(req.Form)
		if err != nil {
			return nil, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), err.Error(), nil)
		}
		body, contentType = buf, ct
	case req.Body != nil:
		if text, ok := req.Body.(bookchain.TextBody); ok {
			body, contentType = strings.NewReader(string(text)), "text/plain; charset=utf-8"
			break
		}
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), fmt.Sprintf("encoding request body failed: %s", err), nil)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), err.Error(), nil)
	}

	for k, vs := range r.params.header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	}
	if r.params.userAgent != "" {
		httpReq.Header.Set("User-Agent", r.params.userAgent)
	}
	if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}

	if err := r.authorize(httpReq); err != nil {
		return nil, err
	}
	return httpReq, nil
}

// authorize adds the bearer token when one is stored
func (r *HTTPRequester) authorize(httpReq *http.Request) error {
	if r.params.tokenStore == nil || httpReq.Header.Get("Authorization") != "" {
		return nil
	}
	token, err := r.params.tokenStore.Token()
	if err != nil {
		return errors.WithMessage(err, "reading session token failed")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func encodeMultipart(form *bookchain.Multipart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", errors.Wrapf(err, "writing form field %s failed", f.Name)
		}
	}
	for _, f := range form.Files {
		if f.Content == nil {
			return nil, "", errors.Errorf("form file %s has no content", f.Field)
		}
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Field), escapeQuotes(f.FileName)))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrapf(err, "creating form file %s failed", f.Field)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", errors.Wrapf(err, "writing form file %s failed", f.Field)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing form failed")
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// decodeBody decodes body into out, see bookchain.Requester for the accepted targets
func decodeBody(body []byte, out interface{}) error {
	switch v := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*v = append((*v)[:0], body...)
		return nil
	case *json.RawMessage:
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 {
			*v = nil
			return nil
		}
		if !json.Valid(trimmed) {
			return errors.New("body is not valid JSON")
		}
		*v = append((*v)[:0], trimmed...)
		return nil
	case *string:
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '"' {
			return json.Unmarshal(trimmed, v)
		}
		*v = string(trimmed)
		return nil
	default:
		if len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		return json.Unmarshal(body, out)
	}
}

// errorMessage extracts a readable message from an error response body
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' {
		var e map[string]interface{}
		if json.Unmarshal(trimmed, &e) == nil {
			for _, k := range []string{"message", "error", "msg", "detail"} {
				if s, ok := e[k].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	msg := string(trimmed)
	if len(msg) > maxErrorMessageLen {
		msg = msg[:maxErrorMessageLen] + "..."
	}
	return msg
}

func transportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return status.New(status.ClientStatus, status.Timeout.ToInt32(), "request timed out", []interface{}{err.Error()})
	}
	if ctx.Err() == context.Canceled {
		return status.New(status.ClientStatus, status.Canceled.ToInt32(), "request canceled", []interface{}{err.Error()})
	}
	return status.New(status.ClientStatus, status.ConnectionFailed.ToInt32(), err.Error(), nil)
}

func failLabel(err error) string {
	s, ok := status.FromError(err)
	if !ok {
		return "unknown"
	}
	if s.Group == status.HTTPTransportStatus {
		return fmt.Sprintf("http_%d", s.Code)
	}
	return strings.ToLower(status.ToSDKStatusCode(s.Code).String())
}
