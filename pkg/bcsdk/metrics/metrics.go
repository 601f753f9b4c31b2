/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "bookchain"
	subsystem = "client"
)

// Label names
const (
	LabelMethod = "method"
	LabelRoute  = "route"
	LabelFail   = "fail"
)

var (
	requestsReceived = prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_received",
		Help:      "The number of backend requests sent by the client.",
	}
	requestsFailed = prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_failed",
		Help:      "The number of backend requests that failed (timeouts excluded).",
	}
	requestTimeouts = prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_timeouts",
		Help:      "The number of backend requests that failed due to time out.",
	}
	requestDuration = prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "The time to complete a backend request.",
		Buckets:   prometheus.DefBuckets,
	}
	eventsReceived = prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "events_received",
		Help:      "The number of chaincode event frames received.",
	}
	eventsFailed = prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "events_failed",
		Help:      "The number of chaincode event frames that could not be decoded.",
	}
)

// ClientMetrics contains the metrics used by the requester and the event listener
type ClientMetrics struct {
	RequestsReceived metrics.Counter
	RequestsFailed   metrics.Counter
	RequestTimeouts  metrics.Counter
	RequestDuration  metrics.Histogram
	EventsReceived   metrics.Counter
	EventsFailed     metrics.Counter
}

// NewClientMetrics registers the client metrics with r
func NewClientMetrics(r prometheus.Registerer) (*ClientMetrics, error) {
	if r == nil {
		return nil, errors.New("registerer is nil")
	}

	received := prometheus.NewCounterVec(requestsReceived, []string{LabelMethod, LabelRoute})
	failed := prometheus.NewCounterVec(requestsFailed, []string{LabelMethod, LabelRoute, LabelFail})
	timeouts := prometheus.NewCounterVec(requestTimeouts, []string{LabelMethod, LabelRoute})
	duration := prometheus.NewHistogramVec(requestDuration, []string{LabelMethod, LabelRoute})
	evReceived := prometheus.NewCounterVec(eventsReceived, nil)
	evFailed := prometheus.NewCounterVec(eventsFailed, nil)

	for _, c := range []prometheus.Collector{received, failed, timeouts, duration, evReceived, evFailed} {
		if err := r.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering client metrics failed")
		}
	}

	return &ClientMetrics{
		RequestsReceived: kitprometheus.NewCounter(received),
		RequestsFailed:   kitprometheus.NewCounter(failed),
		RequestTimeouts:  kitprometheus.NewCounter(timeouts),
		RequestDuration:  kitprometheus.NewHistogram(duration),
		EventsReceived:   kitprometheus.NewCounter(evReceived),
		EventsFailed:     kitprometheus.NewCounter(evFailed),
	}, nil
}

// NewDiscardMetrics returns client metrics that record nothing
func NewDiscardMetrics() *ClientMetrics {
	return &ClientMetrics{
		RequestsReceived: discard.NewCounter(),
		RequestsFailed:   discard.NewCounter(),
		RequestTimeouts:  discard.NewCounter(),
		RequestDuration:  discard.NewHistogram(),
		EventsReceived:   discard.NewCounter(),
		EventsFailed:     discard.NewCounter(),
	}
}
