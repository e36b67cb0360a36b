package media

import (
	"errors"
	"fmt"
)

// ErrUnknownFrameSize is returned when crop math is attempted without known
// video dimensions.
var ErrUnknownFrameSize = errors.New("video dimensions unknown")

// ProbeError reports a failed or unparseable ffprobe run.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string { return fmt.Sprintf("probe %s: %v", e.Path, e.Err) }
func (e *ProbeError) Unwrap() error { return e.Err }

// PreviewError reports a failure to produce a preview image.
type PreviewError struct {
	Path string
	Err  error
}

func (e *PreviewError) Error() string { return fmt.Sprintf("preview %s: %v", e.Path, e.Err) }
func (e *PreviewError) Unwrap() error { return e.Err }

// CropError reports the region whose crop failed. Regions after it were not
// attempted.
type CropError struct {
	Index int
	Path  string
	Err   error
}

func (e *CropError) Error() string {
	return fmt.Sprintf("crop part %d of %s: %v", e.Index, e.Path, e.Err)
}
func (e *CropError) Unwrap() error { return e.Err }

// RegionError reports a region request that cannot be mapped to a crop.
type RegionError struct {
	Index  int
	Reason string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("region %d: %s", e.Index, e.Reason)
}
