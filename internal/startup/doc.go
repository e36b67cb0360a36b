// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// [LoadConfig] reads settings through viper. Values come from the
// environment and, when CONFIG_FILE names a YAML/TOML/JSON file, from that
// file; the environment wins. Supported keys:
//
//   - UPLOAD_ROOT: Root of the content-addressed store (required; upload_root accepted)
//   - PORT: HTTP server port (required)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - PREVIEW_MAX_SIZE: Bounding box for preview images in pixels, 0 keeps the frame size (default: 640)
//   - TOOL_TIMEOUT: Cap on a single ffmpeg/ffprobe run as Go duration, 0 disables (default: 0)
//   - MAX_UPLOAD_BYTES: Largest accepted upload (default: 4 GiB)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - FFMPEG_PATH, FFPROBE_PATH: Tool binaries (default: looked up in PATH)
//   - MEMORY_LIMIT: Container memory limit in bytes, used to derive GOMEMLIMIT (default: unset)
//   - MEMORY_RATIO: Share of MEMORY_LIMIT given to the Go heap (default: 0.5)
//   - LOG_LEVEL, DEBUG, LOG_FORMAT: see package logging
//
// # Directory Setup
//
// The original, preview, parts and incoming directories are created under
// the upload root and must be writable; otherwise LoadConfig fails.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//	startup.LogToolInit(config)
//
//	startup.LogServerStarted(startup.ServerConfig{
//	    Port:            config.Port,
//	    MetricsPort:     config.MetricsPort,
//	    MetricsEnabled:  config.MetricsEnabled,
//	    StartupDuration: time.Since(startTime),
//	})
package startup
