package handlers

import (
	"context"
	"time"

	"video-splitter/internal/media"
	"video-splitter/internal/pipeline"
	"video-splitter/internal/startup"
	"video-splitter/internal/storage"
)

// Ingester stores an uploaded video.
type Ingester interface {
	Ingest(ctx context.Context, up pipeline.Upload) (*pipeline.IngestResult, error)
}

// Cutter splits a stored video into parts.
type Cutter interface {
	Cut(ctx context.Context, id string, regions []media.Region) (map[int]string, error)
}

type Handlers struct {
	ingester       Ingester
	cutter         Cutter
	layout         storage.Layout
	maxUploadBytes int64
	startTime      time.Time
}

func New(config *startup.Config, ingester Ingester, cutter Cutter) *Handlers {
	return &Handlers{
		ingester:       ingester,
		cutter:         cutter,
		layout:         config.Layout,
		maxUploadBytes: config.MaxUploadBytes,
		startTime:      time.Now(),
	}
}
