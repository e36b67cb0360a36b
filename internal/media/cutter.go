package media

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"video-splitter/internal/logging"
	"video-splitter/internal/metrics"
)

// Cutter extracts rectangular regions of a video into separate files.
type Cutter struct {
	runner Runner
	ffmpeg string
}

// NewCutter returns a Cutter running the ffmpeg binary at path ffmpeg.
func NewCutter(runner Runner, ffmpeg string) *Cutter {
	return &Cutter{runner: runner, ffmpeg: ffmpeg}
}

// PartFilename is {base}_{index}{ext} for the source file name.
func PartFilename(source string, index int) string {
	ext := filepath.Ext(source)
	base := strings.TrimSuffix(filepath.Base(source), ext)
	return base + "_" + strconv.Itoa(index) + ext
}

// Cut crops each region out of src into destDir and returns index →
// filename. Regions run one at a time in order. The first failing region
// stops the batch: its CropError is returned and no mapping is produced.
// Files written for earlier regions stay in destDir.
//
// All regions are mapped to pixels before the first crop starts, so an
// unmappable region fails the call without invoking ffmpeg.
func (c *Cutter) Cut(ctx context.Context, src string, frame Size, destDir string, regions []Region) (map[int]string, error) {
	rects := make([]Rect, len(regions))
	for i, r := range regions {
		rect, err := PixelRect(r, frame)
		if err != nil {
			return nil, err
		}
		rects[i] = rect
	}

	result := make(map[int]string, len(regions))
	for i, r := range regions {
		filename := PartFilename(src, r.Index)
		dest := filepath.Join(destDir, filename)
		rect := rects[i]

		logging.Info("crop video; x=%d, y=%d, width=%d, height=%d", rect.X, rect.Y, rect.W, rect.H)

		err := track("crop", func() error {
			_, err := c.runner.Run(ctx, c.ffmpeg,
				"-nostdin",
				"-v", "error",
				"-y",
				"-i", src,
				"-vf", rect.CropFilter(),
				dest,
			)
			return err
		})
		if err != nil {
			logging.Error("error while cutting video part %d: %v", r.Index, err)
			return nil, &CropError{Index: r.Index, Path: src, Err: err}
		}

		metrics.PartsProducedTotal.Inc()
		logging.Info("finished cutting video part %d; saved in %s", r.Index, dest)
		result[r.Index] = filename
	}

	return result, nil
}
