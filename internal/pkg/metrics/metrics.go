// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records the API's Prometheus metrics.
type Collector struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	uploads        *prometheus.CounterVec
	seededRows     prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutormatch_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tutormatch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutormatch_file_uploads_total",
			Help: "Accepted file uploads by bucket",
		}, []string{"bucket"}),
		seededRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tutormatch_seeded_rows_total",
			Help: "Catalog rows inserted by the seeder",
		}),
	}

	reg.MustRegister(c.requests, c.requestLatency, c.uploads, c.seededRows)
	return c
}

// RecordRequest records one finished HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordUpload records one accepted file upload.
func (c *Collector) RecordUpload(bucket string) {
	c.uploads.WithLabelValues(bucket).Inc()
}

// RecordSeededRows records rows inserted by the catalog seeder.
func (c *Collector) RecordSeededRows(count int) {
	c.seededRows.Add(float64(count))
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
