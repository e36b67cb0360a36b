package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// seriesCount returns how many series c currently exports.
func seriesCount(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric, 4096)
	c.Collect(ch)
	close(ch)
	return len(ch)
}

func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if out.Counter != nil {
		return out.GetCounter().GetValue()
	}
	return out.GetGauge().GetValue()
}

func TestHTTPMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestToolMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"ToolInvocationsTotal", ToolInvocationsTotal},
		{"ToolInvocationDuration", ToolInvocationDuration},
		{"ToolInvocationsInProgress", ToolInvocationsInProgress},
		{"ProbeUnknownTotal", ProbeUnknownTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestInitializeMetricsPopulatesLabels(t *testing.T) {
	InitializeMetrics()

	if got := seriesCount(ToolInvocationsTotal); got != 6 {
		t.Errorf("Expected 6 tool invocation series, got %d", got)
	}
	if got := seriesCount(IngestTotal); got != 3 {
		t.Errorf("Expected 3 ingest series, got %d", got)
	}
	if got := seriesCount(FilesystemOperationDuration); got != len(Volumes)*4 {
		t.Errorf("Expected %d filesystem duration series, got %d", len(Volumes)*4, got)
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := metricValue(t, FilesystemStaleErrors.WithLabelValues("stat", "original"))
	obs.ObserveStaleError("stat", "original")
	after := metricValue(t, FilesystemStaleErrors.WithLabelValues("stat", "original"))

	if after != before+1 {
		t.Errorf("Expected stale error counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.0.0", "abc123", "go1.25")

	if got := metricValue(t, AppInfo.WithLabelValues("1.0.0", "abc123", "go1.25")); got != 1 {
		t.Errorf("Expected app info gauge to be 1, got %v", got)
	}
}
