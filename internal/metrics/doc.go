// Package metrics provides Prometheus instrumentation for video-splitter.
//
// All metrics are prefixed with "video_splitter_" and registered through
// promauto at package init, so importing the package is enough to expose them
// on the default registry.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: requests by method, normalized path and status
//   - HTTPRequestDuration: request latency by method and path
//   - HTTPRequestsInFlight: requests currently being served
//
// ## External Tool Metrics
//
// Every ffprobe/ffmpeg process started by the media package is recorded:
//   - ToolInvocationsTotal: invocations by operation (probe, preview, crop) and status
//   - ToolInvocationDuration: wall time per operation
//   - ToolInvocationsInProgress: processes currently running
//   - ProbeUnknownTotal: probes that found no video stream
//
// ## Pipeline Metrics
//
//   - IngestTotal, CutTotal: outcomes (success, rejected, error)
//   - IngestFailedStage: last completed ingest stage when an ingest failed
//   - PartsProducedTotal: parts written by the cutter
//   - BytesHashedTotal: bytes streamed through the content digest
//
// ## Filesystem Metrics
//
// Recorded through the filesystem.Observer implemented in observer.go:
// operation latency and errors per volume, plus retry counters for stale
// file handle errors.
//
// # Usage
//
//	metrics.InitializeMetrics()
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//	http.Handle("/metrics", promhttp.Handler())
package metrics
