package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"video-splitter/internal/logging"
)

// DefaultRatio is the share of the container limit given to the Go heap.
// The rest is left to ffmpeg subprocesses.
const DefaultRatio = 0.5

// Source values reported in LimitResult.
const (
	SourceNone        = "none"
	SourceGoMemLimit  = "GOMEMLIMIT"
	SourceMemoryLimit = "MEMORY_LIMIT"
)

// LimitResult holds the result of memory configuration
type LimitResult struct {
	// Configured indicates whether a Go memory limit is in effect
	Configured bool

	// Source is one of SourceNone, SourceGoMemLimit, SourceMemoryLimit
	Source string

	// ContainerLimit is the container memory limit in bytes (0 if not set)
	ContainerLimit int64

	// GoMemLimit is the Go memory limit in bytes (0 if not set)
	GoMemLimit int64

	// Ratio is the ratio applied to ContainerLimit (0 if not applicable)
	Ratio float64
}

// setLimit is swapped in tests so they do not change the process limit.
var setLimit = debug.SetMemoryLimit

// ConfigureLimit sets the Go memory limit to ratio × containerLimit. A
// containerLimit of zero or less leaves the runtime default. A ratio outside
// (0, 1] falls back to DefaultRatio.
func ConfigureLimit(containerLimit int64, ratio float64) LimitResult {
	if env := os.Getenv("GOMEMLIMIT"); env != "" {
		result := LimitResult{Source: SourceGoMemLimit}
		if limit := setLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Configured = true
			result.GoMemLimit = limit
		}
		logging.Info("  GOMEMLIMIT set via environment: %s", env)
		return result
	}

	if containerLimit <= 0 {
		logging.Debug("  MEMORY_LIMIT not set, GOMEMLIMIT will not be configured automatically")
		return LimitResult{Source: SourceNone}
	}

	if ratio <= 0 || ratio > 1 {
		logging.Warn("  MEMORY_RATIO %v out of range (0.0-1.0], using default %.2f", ratio, DefaultRatio)
		ratio = DefaultRatio
	}

	goMemLimit := int64(float64(containerLimit) * ratio)
	setLimit(goMemLimit)

	logging.Info("  Configured GOMEMLIMIT: %s (%.1f%% of %s container limit)",
		formatBytes(goMemLimit),
		ratio*100,
		formatBytes(containerLimit),
	)

	return LimitResult{
		Configured:     true,
		Source:         SourceMemoryLimit,
		ContainerLimit: containerLimit,
		GoMemLimit:     goMemLimit,
		Ratio:          ratio,
	}
}

// formatBytes formats bytes into human-readable string
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
