package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-splitter/internal/filesystem"
	"video-splitter/internal/logging"
	"video-splitter/internal/media"
	"video-splitter/internal/metrics"
	"video-splitter/internal/storage"
)

// Stage is a step of the ingest state machine. Stages complete in order.
type Stage int

const (
	StageUploaded Stage = iota
	StageAddressed
	StageStored
	StageProbed
	StagePreviewReady
)

func (s Stage) String() string {
	switch s {
	case StageUploaded:
		return "uploaded"
	case StageAddressed:
		return "addressed"
	case StageStored:
		return "stored"
	case StageProbed:
		return "probed"
	case StagePreviewReady:
		return "preview_ready"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Prober reads video metadata.
type Prober interface {
	Probe(ctx context.Context, path string) (media.VideoInfo, error)
}

// PreviewMaker writes {outDir}/{baseName}.jpg for a video.
type PreviewMaker interface {
	Generate(ctx context.Context, videoPath, outDir, baseName string) error
}

// Upload is a received file waiting in temporary storage.
type Upload struct {
	TempPath     string
	OriginalName string
	MediaType    string
}

// IngestResult describes a stored video.
type IngestResult struct {
	ID          storage.CanonicalID
	Info        media.VideoInfo
	PreviewPath string
	Stage       Stage
}

// Ingester moves uploads into content-addressed storage, probes them and
// renders a preview.
type Ingester struct {
	layout  storage.Layout
	prober  Prober
	preview PreviewMaker
}

// NewIngester returns an Ingester storing under layout.
func NewIngester(layout storage.Layout, prober Prober, preview PreviewMaker) *Ingester {
	return &Ingester{layout: layout, prober: prober, preview: preview}
}

// Ingest runs upload through every stage. A rejected upload returns a
// ValidationError and its temp file is removed; nothing is stored. Any later
// failure returns a StageError naming the last completed stage and leaves
// the completed work in place.
//
// Ingesting the same bytes twice yields the same id and overwrites the
// stored original and preview.
func (i *Ingester) Ingest(ctx context.Context, up Upload) (*IngestResult, error) {
	res, err := i.ingest(ctx, up)
	switch {
	case err == nil:
		metrics.IngestTotal.WithLabelValues("success").Inc()
	case IsValidation(err):
		metrics.IngestTotal.WithLabelValues("rejected").Inc()
	default:
		metrics.IngestTotal.WithLabelValues("error").Inc()
		var se *StageError
		if errors.As(err, &se) {
			metrics.IngestFailedStage.WithLabelValues(se.Stage.String()).Inc()
		}
	}
	return res, err
}

func (i *Ingester) ingest(ctx context.Context, up Upload) (*IngestResult, error) {
	if err := validateUpload(up); err != nil {
		discard(up.TempPath)
		return nil, err
	}

	logging.Info("ingest %s (%s)", up.OriginalName, up.MediaType)

	digest, err := storage.Digest(ctx, up.TempPath)
	if err != nil {
		discard(up.TempPath)
		return nil, &StageError{Stage: StageUploaded, Err: err}
	}
	id := storage.NewCanonicalID(digest, up.OriginalName)
	res := &IngestResult{ID: id, Stage: StageAddressed}

	stored := i.layout.OriginalPath(id)
	if err := filesystem.Move(up.TempPath, stored); err != nil {
		discard(up.TempPath)
		return res, &StageError{Stage: res.Stage, Err: fmt.Errorf("store %s: %w", id, err)}
	}
	res.Stage = StageStored
	logging.Debug("stored %s at %s", up.OriginalName, stored)

	info, err := i.prober.Probe(ctx, stored)
	if err != nil {
		return res, &StageError{Stage: res.Stage, Err: err}
	}
	res.Info = info
	res.Stage = StageProbed

	if err := i.preview.Generate(ctx, stored, i.layout.PreviewDir(), digest); err != nil {
		return res, &StageError{Stage: res.Stage, Err: err}
	}
	res.PreviewPath = media.PreviewPath(i.layout.PreviewDir(), digest)
	res.Stage = StagePreviewReady

	logging.Info("ingested %s as %s", up.OriginalName, id)
	return res, nil
}

func validateUpload(up Upload) error {
	if !strings.HasPrefix(strings.ToLower(up.MediaType), "video/") {
		return invalid(fmt.Sprintf("unsupported media type %q", up.MediaType), nil)
	}
	ext := filepath.Ext(up.OriginalName)
	if ext == "" {
		return invalid(fmt.Sprintf("file name %q has no extension", up.OriginalName), nil)
	}
	if !storage.ValidExt(ext) {
		return invalid(fmt.Sprintf("unsupported file extension %q", ext), nil)
	}
	return nil
}

// discard removes a temp file that will not be stored.
func discard(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("Failed to remove temp upload %s: %v", path, err)
	}
}
