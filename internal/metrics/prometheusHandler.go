package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rag_queries_total",
	Help: "Total number of answered queries labelled by outcome",
}, []string{"outcome"})

var ingestRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ingest_runs_total",
	Help: "Total number of ingestion runs labelled by terminal state",
}, []string{"state"})

var indexedChunks = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "index_chunks",
	Help: "Number of chunks in the active index",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func CaptureQueryOutcome(outcome string) {
	queriesTotal.WithLabelValues(outcome).Inc()
}

func CaptureIngestOutcome(state string) {
	ingestRunsTotal.WithLabelValues(state).Inc()
}

func SetIndexedChunks(n int) {
	indexedChunks.Set(float64(n))
}

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "query_duration_seconds",
	Help:    "Total time spent answering a query.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureQueryMetrics(label string, timeElapsed time.Duration) {
	queryDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
