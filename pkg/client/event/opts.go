/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package event

import (
	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

// ClientOption describes a functional parameter for the New constructor
type ClientOption func(*Client) error

// WithErrorHandler sets the function called with event frames that are not
// valid JSON and with connection failures
func WithErrorHandler(h func(err error)) ClientOption {
	return func(c *Client) error {
		c.errHandler = h
		return nil
	}
}

// WithEventFilter only delivers events for which expr evaluates to true.
// The expression sees the top level fields of the event, e.g.
// "type == 'BLIND_BOX' && owner != ''". Events the expression cannot be
// evaluated against are skipped.
func WithEventFilter(expr string) ClientOption {
	return func(c *Client) error {
		filter, err := govaluate.NewEvaluableExpression(expr)
		if err != nil {
			return errors.Wrapf(err, "invalid event filter [%s]", expr)
		}
		c.filter = filter
		return nil
	}
}

// WithBufferSize sets the number of events buffered between the socket and
// the consumer
func WithBufferSize(size uint) ClientOption {
	return func(c *Client) error {
		c.bufferSize = size
		return nil
	}
}

// WithEventURL overrides the configured event socket URL
func WithEventURL(url string) ClientOption {
	return func(c *Client) error {
		if url == "" {
			return errors.New("event URL is empty")
		}
		c.url = url
		return nil
	}
}
