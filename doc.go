// Package main provides the entry point for the video splitter service.
//
// The service accepts video uploads, stores each one under the SHA-256
// digest of its content, records its dimensions and codec, and renders a
// preview image. A stored video can later be split into rectangular parts
// described by normalized coordinates.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads settings and provisions the upload root
//  2. Component Initialization: ffprobe/ffmpeg runners, ingest and cut pipelines
//  3. HTTP Server Setup: Routes, CORS, access logging, metrics, panic recovery
//  4. Metrics Server: Prometheus /metrics on a separate port (if enabled)
//  5. Graceful Shutdown: Handles SIGINT/SIGTERM and drains both servers
//
// # Upload Root Layout
//
//	{root}/original/{digest}{ext}           stored videos
//	{root}/preview/{digest}.jpg             preview images
//	{root}/parts/{digest}/{digest}_{i}{ext} cut parts
//	{root}/incoming/                        uploads being received
package main
