package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	reportRequestsTotal  *prometheus.CounterVec
	reportLatencySeconds *prometheus.HistogramVec
	reportErrorsTotal    *prometheus.CounterVec
	cacheLookupsTotal    *prometheus.CounterVec
	adsCallsTotal        *prometheus.CounterVec
	adsLatencySeconds    *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used for report
// observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		reportRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_requests_total",
			Help: "Total number of report API requests served.",
		}, []string{"method", "route", "status"})

		reportLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "report_latency_seconds",
			Help:    "Latency distribution for report API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		reportErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_errors_total",
			Help: "Total number of error responses returned by report endpoints.",
		}, []string{"method", "route", "status"})

		cacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_cache_lookups_total",
			Help: "Report cache lookups partitioned by hit or miss.",
		}, []string{"report", "result"})

		adsCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "googleads_api_calls_total",
			Help: "Google Ads API calls partitioned by operation and outcome.",
		}, []string{"operation", "status"})

		adsLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "googleads_api_latency_seconds",
			Help:    "Latency distribution for Google Ads API calls.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		}, []string{"operation"})

		prometheus.MustRegister(reportRequestsTotal, reportLatencySeconds, reportErrorsTotal, cacheLookupsTotal, adsCallsTotal, adsLatencySeconds)
	})
}

// ReportRequests exposes the counter for report requests.
func ReportRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return reportRequestsTotal
}

// ReportLatency exposes the latency histogram for report requests.
func ReportLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return reportLatencySeconds
}

// ReportErrors exposes the counter for report error responses.
func ReportErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return reportErrorsTotal
}

// CacheLookups exposes the counter for report cache hits and misses.
func CacheLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return cacheLookupsTotal
}

// AdsCalls exposes the counter for Google Ads API calls.
func AdsCalls() *prometheus.CounterVec {
	RegisterMetrics()
	return adsCallsTotal
}

// AdsLatency exposes the latency histogram for Google Ads API calls.
func AdsLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adsLatencySeconds
}
