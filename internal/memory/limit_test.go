package memory

import (
	"testing"
)

// captureLimit replaces setLimit for the duration of a test and records
// the last positive limit applied.
func captureLimit(t *testing.T, current int64) *int64 {
	t.Helper()
	applied := new(int64)
	orig := setLimit
	setLimit = func(limit int64) int64 {
		if limit < 0 {
			return current
		}
		*applied = limit
		return current
	}
	t.Cleanup(func() { setLimit = orig })
	return applied
}

func TestConfigureLimit_FromContainerLimit(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	applied := captureLimit(t, 0)

	result := ConfigureLimit(2<<30, 0.5)

	if !result.Configured || result.Source != SourceMemoryLimit {
		t.Errorf("unexpected result %+v", result)
	}
	if result.GoMemLimit != 1<<30 {
		t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, int64(1<<30))
	}
	if *applied != 1<<30 {
		t.Errorf("applied limit = %d, want %d", *applied, int64(1<<30))
	}
}

func TestConfigureLimit_RatioOutOfRange(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	captureLimit(t, 0)

	for _, ratio := range []float64{0, -1, 1.5} {
		result := ConfigureLimit(1000, ratio)
		if result.Ratio != DefaultRatio {
			t.Errorf("ratio %v: Ratio = %v, want default %v", ratio, result.Ratio, DefaultRatio)
		}
		if result.GoMemLimit != 500 {
			t.Errorf("ratio %v: GoMemLimit = %d, want 500", ratio, result.GoMemLimit)
		}
	}
}

func TestConfigureLimit_NoContainerLimit(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	applied := captureLimit(t, 0)

	result := ConfigureLimit(0, 0.5)

	if result.Configured || result.Source != SourceNone {
		t.Errorf("unexpected result %+v", result)
	}
	if *applied != 0 {
		t.Errorf("limit should not be applied, got %d", *applied)
	}
}

func TestConfigureLimit_GoMemLimitWins(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "512MiB")
	applied := captureLimit(t, 512<<20)

	result := ConfigureLimit(4<<30, 0.5)

	if result.Source != SourceGoMemLimit || !result.Configured {
		t.Errorf("unexpected result %+v", result)
	}
	if result.GoMemLimit != 512<<20 {
		t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, int64(512<<20))
	}
	if *applied != 0 {
		t.Errorf("explicit GOMEMLIMIT must not be overridden, applied %d", *applied)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536 << 20, "1.5 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
