// Package metrics exposes Prometheus counters for the HTTP surface and the extraction pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	extractionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_runs_total",
			Help: "Total number of extraction runs",
		},
		[]string{"mode", "outcome"},
	)

	extractionLeads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_leads_total",
			Help: "Registry records seen by extraction runs",
		},
		[]string{"result"},
	)

	providerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of requests to the company registry",
		},
		[]string{"endpoint", "outcome"},
	)

	cleanupDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_cleanup_deleted_total",
			Help: "Leads soft-deleted by duplicate cleanup",
		},
	)
)

// Middleware records request counts and latencies, labelled by route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordExtraction records the outcome of one extraction run
func RecordExtraction(dryRun bool, outcome string, accepted, duplicates, checked int) {
	mode := "extract"
	if dryRun {
		mode = "preview"
	}
	extractionRuns.WithLabelValues(mode, outcome).Inc()
	extractionLeads.WithLabelValues("accepted").Add(float64(accepted))
	extractionLeads.WithLabelValues("duplicate").Add(float64(duplicates))
	extractionLeads.WithLabelValues("checked").Add(float64(checked))
}

// RecordProviderRequest records one call to the registry API
func RecordProviderRequest(endpoint string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	providerRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordCleanup records leads removed by a cleanup run
func RecordCleanup(deleted int) {
	cleanupDeleted.Add(float64(deleted))
}
