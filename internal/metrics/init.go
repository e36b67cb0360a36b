package metrics

// Volumes are the upload-root subdirectories used as filesystem metric labels.
var Volumes = []string{"original", "preview", "parts", "incoming", "unknown"}

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, op := range []string{"probe", "preview", "crop"} {
		ToolInvocationsTotal.WithLabelValues(op, "success")
		ToolInvocationsTotal.WithLabelValues(op, "error")
		ToolInvocationDuration.WithLabelValues(op)
	}

	for _, status := range []string{"success", "rejected", "error"} {
		IngestTotal.WithLabelValues(status)
		CutTotal.WithLabelValues(status)
	}

	for _, stage := range []string{"uploaded", "addressed", "stored", "probed"} {
		IngestFailedStage.WithLabelValues(stage)
	}

	fsOps := []string{"stat", "open", "move", "write"}
	for _, vol := range Volumes {
		for _, op := range fsOps {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
