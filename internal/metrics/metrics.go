package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_splitter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_splitter_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// External tool metrics (ffprobe / ffmpeg)
var (
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_tool_invocations_total",
			Help: "Total number of external media tool invocations",
		},
		[]string{"operation", "status"}, // operation: "probe", "preview", "crop"
	)

	ToolInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_splitter_tool_invocation_duration_seconds",
			Help:    "External media tool invocation duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"operation"},
	)

	ToolInvocationsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_splitter_tool_invocations_in_progress",
			Help: "Number of external media tool processes currently running",
		},
	)

	ProbeUnknownTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_splitter_probe_unknown_total",
			Help: "Total number of probes that found no video stream",
		},
	)
)

// Pipeline metrics
var (
	IngestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_ingest_total",
			Help: "Total number of ingest attempts by outcome",
		},
		[]string{"status"}, // "success", "rejected", "error"
	)

	IngestFailedStage = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_ingest_failed_stage_total",
			Help: "Ingest failures by the last stage that completed before the failure",
		},
		[]string{"stage"},
	)

	CutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_cut_total",
			Help: "Total number of cut requests by outcome",
		},
		[]string{"status"}, // "success", "rejected", "error"
	)

	PartsProducedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_splitter_parts_produced_total",
			Help: "Total number of video parts written",
		},
	)

	BytesHashedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_splitter_bytes_hashed_total",
			Help: "Total number of bytes read while computing content digests",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_splitter_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts after stale file handle errors",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retrying",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_splitter_filesystem_retry_duration_seconds",
			Help:    "Total time spent in retried filesystem operations",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_splitter_filesystem_stale_errors_total",
			Help: "Total number of stale file handle errors observed",
		},
		[]string{"operation", "volume"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "video_splitter_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
