// Package handlers provides the HTTP handlers of the video splitter API.
//
// It includes handlers for:
//   - Video upload and ingest (POST /video)
//   - Cutting a stored video into parts (POST /video/{id}/cut)
//   - Health, liveness and readiness probes
//   - Version and build information
package handlers
