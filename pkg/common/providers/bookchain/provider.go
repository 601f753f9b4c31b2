/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bookchain

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Request describes a call to the Bookchain backend.
type Request struct {
	// Method is the HTTP method
	Method string
	// Route is the path template (e.g. /api/books/{bookId}), used to label
	// metrics and spans
	Route string
	// Path is the concrete request path
	Path string
	// Query parameters
	Query url.Values
	// Body is sent as JSON when set, or as text/plain when it is a TextBody
	Body interface{}
	// Form is sent as multipart/form-data when set. Body and Form are exclusive.
	Form *Multipart
	// Header holds extra request headers
	Header http.Header
}

// NewRequest returns a request for method and path. Route defaults to path.
func NewRequest(method, route, path string) *Request {
	if route == "" {
		route = path
	}
	return &Request{Method: method, Route: route, Path: path}
}

// TextBody is a request body sent as text/plain
type TextBody string

// Requester sends requests to the backend and decodes the response into out.
//
// out may be nil (response discarded), a *[]byte (raw body), a *string (JSON
// string or plain text) or any JSON decodable value.
type Requester interface {
	Do(ctx context.Context, req *Request, out interface{}) error
}

// TokenStore holds the session token sent with every request
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// FormField is a named multipart field
type FormField struct {
	Name  string
	Value string
}

// FormFile is a named multipart file part
type FormFile struct {
	Field    string
	FileName string
	// ContentType defaults to application/octet-stream
	ContentType string
	Content     io.Reader
}

// Multipart is an ordered multipart/form-data payload
type Multipart struct {
	Fields []FormField
	Files  []FormFile
}

// NewMultipart returns an empty form
func NewMultipart() *Multipart {
	return &Multipart{}
}

// AddField appends a field. Repeated names are sent repeatedly.
func (m *Multipart) AddField(name, value string) *Multipart {
	m.Fields = append(m.Fields, FormField{Name: name, Value: value})
	return m
}

// AddFile appends a file part
func (m *Multipart) AddFile(field, fileName, contentType string, content io.Reader) *Multipart {
	m.Files = append(m.Files, FormFile{Field: field, FileName: fileName, ContentType: contentType, Content: content})
	return m
}

// Value returns the first value of the named field
func (m *Multipart) Value(name string) (string, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// EndpointConfig exposes the backend endpoints and client settings
type EndpointConfig interface {
	// ServerURL is the base URL of the REST API
	ServerURL() string
	// EventURL is the chaincode event socket URL
	EventURL() string
	// EventOrigin is the Origin header sent on the event socket handshake
	EventOrigin() string
	// Organization is the organization sent with chaincode invocations
	Organization() string
	// RequestTimeout bounds a single REST call, zero means no limit
	RequestTimeout() time.Duration
	// CredentialStorePath is where the session token is persisted, empty for memory only
	CredentialStorePath() string
	// MetricsEnabled reports whether client metrics are collected
	MetricsEnabled() bool
}
