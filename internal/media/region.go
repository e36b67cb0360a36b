package media

import (
	"fmt"
	"math"
	"strconv"
)

// Region is one requested crop in normalized coordinates: each field is a
// fraction of the corresponding frame dimension.
type Region struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is a frame size in pixels.
type Size struct {
	Width  int
	Height int
}

// Known reports whether both dimensions are positive.
func (s Size) Known() bool { return s.Width > 0 && s.Height > 0 }

// Rect is a crop rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// CropFilter renders r as an ffmpeg crop filter (crop=w:h:x:y).
func (r Rect) CropFilter() string {
	return "crop=" + strconv.Itoa(r.W) + ":" + strconv.Itoa(r.H) + ":" +
		strconv.Itoa(r.X) + ":" + strconv.Itoa(r.Y)
}

// boundsTolerance absorbs float noise in client-computed fractions such as
// x=0.7, width=0.3.
const boundsTolerance = 1e-9

// pixelTolerance keeps products like 0.29*100 from truncating to 28.
const pixelTolerance = 1e-6

// Validate checks the normalized coordinates: every value finite, the
// origin inside [0,1], a positive size, and the rectangle inside the frame.
func (r Region) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{{"x", r.X}, {"y", r.Y}, {"width", r.Width}, {"height", r.Height}}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &RegionError{Index: r.Index, Reason: f.name + " is not a finite number"}
		}
	}

	switch {
	case r.X < 0 || r.X > 1:
		return &RegionError{Index: r.Index, Reason: fmt.Sprintf("x=%g outside [0,1]", r.X)}
	case r.Y < 0 || r.Y > 1:
		return &RegionError{Index: r.Index, Reason: fmt.Sprintf("y=%g outside [0,1]", r.Y)}
	case r.Width <= 0 || r.Width > 1:
		return &RegionError{Index: r.Index, Reason: fmt.Sprintf("width=%g outside (0,1]", r.Width)}
	case r.Height <= 0 || r.Height > 1:
		return &RegionError{Index: r.Index, Reason: fmt.Sprintf("height=%g outside (0,1]", r.Height)}
	case r.X+r.Width > 1+boundsTolerance:
		return &RegionError{Index: r.Index, Reason: fmt.Sprintf("x+width=%g exceeds frame", r.X+r.Width)}
	case r.Y+r.Height > 1+boundsTolerance:
		return &RegionError{Index: r.Index, Reason: fmt.Sprintf("y+height=%g exceeds frame", r.Y+r.Height)}
	}
	return nil
}

// ValidateRegions validates every region and returns the first violation.
func ValidateRegions(regions []Region) error {
	for _, r := range regions {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PixelRect maps r onto a frame of the given size. Each coordinate is the
// product of frame dimension and fraction, truncated toward zero. The
// rectangle is clipped to the frame and must be at least one pixel in each
// dimension.
func PixelRect(r Region, frame Size) (Rect, error) {
	if !frame.Known() {
		return Rect{}, ErrUnknownFrameSize
	}

	rect := Rect{
		X: truncate(float64(frame.Width) * r.X),
		Y: truncate(float64(frame.Height) * r.Y),
		W: truncate(float64(frame.Width) * r.Width),
		H: truncate(float64(frame.Height) * r.Height),
	}

	rect.W = min(rect.W, frame.Width-rect.X)
	rect.H = min(rect.H, frame.Height-rect.Y)

	if rect.W < 1 || rect.H < 1 {
		return Rect{}, &RegionError{
			Index:  r.Index,
			Reason: fmt.Sprintf("maps to an empty %dx%d crop on a %dx%d frame", rect.W, rect.H, frame.Width, frame.Height),
		}
	}
	return rect, nil
}

func truncate(v float64) int {
	return int(math.Floor(v + pixelTolerance))
}
