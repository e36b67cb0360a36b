// Package pipeline orchestrates the two workflows of the service: ingesting
// an uploaded video into content-addressed storage, and cutting a stored
// video into parts.
//
// Both pipelines depend on small interfaces (Prober, PreviewMaker,
// RegionCutter) satisfied by the media package, so the orchestration and its
// failure reporting can be tested without ffmpeg.
package pipeline
