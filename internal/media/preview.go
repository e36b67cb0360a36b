package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"

	"video-splitter/internal/filesystem"
	"video-splitter/internal/logging"
)

// PreviewExt is appended to the base name given to Generate.
const PreviewExt = ".jpg"

const previewQuality = 85

// PreviewFilename returns the file name Generate writes for baseName.
func PreviewFilename(baseName string) string {
	return baseName + PreviewExt
}

// PreviewGenerator grabs a single frame from a video and stores it as a
// JPEG, scaled down to fit a square bounding box.
type PreviewGenerator struct {
	runner  Runner
	ffmpeg  string
	maxSize int
}

// NewPreviewGenerator returns a generator running the ffmpeg binary at path
// ffmpeg. maxSize bounds the longer edge of the preview; zero or negative
// keeps the frame size.
func NewPreviewGenerator(runner Runner, ffmpeg string, maxSize int) *PreviewGenerator {
	return &PreviewGenerator{runner: runner, ffmpeg: ffmpeg, maxSize: maxSize}
}

// Generate writes {outDir}/{baseName}.jpg. outDir must already exist.
func (g *PreviewGenerator) Generate(ctx context.Context, videoPath, outDir, baseName string) error {
	return track("preview", func() error {
		if err := g.generate(ctx, videoPath, outDir, baseName); err != nil {
			return &PreviewError{Path: videoPath, Err: err}
		}
		return nil
	})
}

func (g *PreviewGenerator) generate(ctx context.Context, videoPath, outDir, baseName string) error {
	logging.Info("get preview of video %s; save to %s; filename: %s", videoPath, outDir, baseName)

	info, err := filesystem.StatWithRetry(outDir, filesystem.DefaultRetryConfig())
	if err != nil {
		return fmt.Errorf("preview directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("preview directory %s is not a directory", outDir)
	}

	frame, err := g.grabFrame(ctx, videoPath)
	if err != nil {
		return err
	}

	if g.maxSize > 0 {
		frame = imaging.Fit(frame, g.maxSize, g.maxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(previewQuality)); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}

	name := PreviewFilename(baseName)
	if err := filesystem.WriteFileAtomic(outDir, name, buf.Bytes()); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}

	logging.Info("preview filenames: %s", name)
	return nil
}

// grabFrame extracts one frame one second in, falling back to the first
// frame for clips shorter than that or streams that cannot seek.
func (g *PreviewGenerator) grabFrame(ctx context.Context, videoPath string) (image.Image, error) {
	out, err := g.runner.Run(ctx, g.ffmpeg, frameArgs(videoPath, "1")...)
	if err != nil || len(out) == 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Debug("Seeked frame grab failed for %s (err=%v, %d bytes), using first frame", videoPath, err, len(out))

		out, err = g.runner.Run(ctx, g.ffmpeg, frameArgs(videoPath, "")...)
		if err != nil {
			return nil, err
		}
	}

	if len(out) == 0 {
		return nil, errors.New("ffmpeg produced no frame")
	}

	img, err := bmp.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

// frameArgs builds an ffmpeg invocation that writes one uncompressed BMP
// frame to stdout.
func frameArgs(videoPath, seek string) []string {
	args := []string{"-nostdin", "-v", "error"}
	if seek != "" {
		args = append(args, "-ss", seek)
	}
	return append(args,
		"-i", videoPath,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "bmp",
		"-",
	)
}

// PreviewPath is the path Generate writes for baseName in outDir.
func PreviewPath(outDir, baseName string) string {
	return filepath.Join(outDir, PreviewFilename(baseName))
}
