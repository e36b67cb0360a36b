package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"video-splitter/internal/filesystem"
	"video-splitter/internal/logging"
	"video-splitter/internal/media"
	"video-splitter/internal/metrics"
	"video-splitter/internal/storage"
)

// RegionCutter crops regions of a video into part files.
type RegionCutter interface {
	Cut(ctx context.Context, src string, frame media.Size, destDir string, regions []media.Region) (map[int]string, error)
}

// CutService splits stored videos into parts.
type CutService struct {
	layout storage.Layout
	prober Prober
	cutter RegionCutter
}

// NewCutService returns a CutService reading originals from layout.
func NewCutService(layout storage.Layout, prober Prober, cutter RegionCutter) *CutService {
	return &CutService{layout: layout, prober: prober, cutter: cutter}
}

// Cut crops each region out of the stored video id and returns index →
// part filename. Parts are written to the video's parts directory.
//
// The id, the video's existence and every region are checked before any
// tool runs. The video is probed on every call for its frame size.
func (s *CutService) Cut(ctx context.Context, rawID string, regions []media.Region) (map[int]string, error) {
	parts, err := s.cut(ctx, rawID, regions)
	switch {
	case err == nil:
		metrics.CutTotal.WithLabelValues("success").Inc()
	case IsValidation(err):
		metrics.CutTotal.WithLabelValues("rejected").Inc()
	default:
		metrics.CutTotal.WithLabelValues("error").Inc()
	}
	return parts, err
}

func (s *CutService) cut(ctx context.Context, rawID string, regions []media.Region) (map[int]string, error) {
	id, err := storage.ParseCanonicalID(rawID)
	if err != nil {
		return nil, invalid("", err)
	}

	src := s.layout.OriginalPath(id)
	exists, err := filesystem.Exists(src)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", id, err)
	}
	if !exists {
		return nil, invalid(fmt.Sprintf("video %s", id), ErrUnknownVideo)
	}

	if err := media.ValidateRegions(regions); err != nil {
		return nil, invalid("", err)
	}

	if len(regions) == 0 {
		return map[int]string{}, nil
	}

	logging.Info("cut %s into %d parts", id, len(regions))

	info, err := s.prober.Probe(ctx, src)
	if err != nil {
		return nil, err
	}
	if !info.Known() {
		return nil, invalid(fmt.Sprintf("video %s", id), media.ErrUnknownFrameSize)
	}

	destDir := s.layout.PartsDir(id.Digest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create parts directory: %w", err)
	}

	parts, err := s.cutter.Cut(ctx, src, info.Size(), destDir, regions)
	if err != nil {
		var re *media.RegionError
		if errors.As(err, &re) {
			return nil, invalid("", err)
		}
		return nil, err
	}
	return parts, nil
}
