/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package metrics exposes Prometheus metrics for the customer health service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "chs",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chs",
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	healthScoreComputations = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "chs",
		Name:      "health_score_computations_total",
		Help:      "Total number of health score computations performed.",
	})

	healthScoreDuration = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: "chs",
		Name:      "health_score_duration_seconds",
		Help:      "Histogram of health score computation latency, including store reads.",
		Buckets:   prometheus.DefBuckets,
	})

	eventsIngested = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "chs",
		Name:      "events_ingested_total",
		Help:      "Total number of events ingested by event type.",
	}, []string{"event_type"})
)

// Handler returns the HTTP handler serving the metrics registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordHealthScoreComputation records one score computation and its duration.
func RecordHealthScoreComputation(elapsed time.Duration) {
	healthScoreComputations.Inc()
	healthScoreDuration.Observe(elapsed.Seconds())
}

// RecordEventIngested increments the ingest counter for the given event type.
func RecordEventIngested(eventType string) {
	eventsIngested.WithLabelValues(eventType).Inc()
}

// statusRecorder captures the response status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler wraps an HTTP handler with request count and latency metrics.
func InstrumentHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
