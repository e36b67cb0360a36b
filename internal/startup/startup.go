package startup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/viper"

	"video-splitter/internal/logging"
	"video-splitter/internal/storage"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	UploadRoot      string
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogHealthChecks bool

	PreviewMaxSize int
	ToolTimeout    time.Duration
	MaxUploadBytes int64
	CORSOrigins    []string
	FFmpegPath     string
	FFprobePath    string

	// MemoryLimit is the container memory limit in bytes, 0 if unknown
	MemoryLimit int64
	MemoryRatio float64

	// Layout is derived from UploadRoot
	Layout storage.Layout
}

// Configuration keys
const (
	keyUploadRoot      = "upload_root"
	keyPort            = "port"
	keyMetricsPort     = "metrics_port"
	keyMetricsEnabled  = "metrics_enabled"
	keyLogHealthChecks = "log_health_checks"
	keyPreviewMaxSize  = "preview_max_size"
	keyToolTimeout     = "tool_timeout"
	keyMaxUploadBytes  = "max_upload_bytes"
	keyCORSOrigins     = "cors_origins"
	keyFFmpegPath      = "ffmpeg_path"
	keyFFprobePath     = "ffprobe_path"
	keyMemoryLimit     = "memory_limit"
	keyMemoryRatio     = "memory_ratio"
)

// ErrMissingSetting is returned when a required setting has no value.
var ErrMissingSetting = errors.New("required setting missing")

// LoadConfig loads configuration from the environment and, when CONFIG_FILE
// is set, from that file. Environment values win over the file. The upload
// root directories are created and checked for write access.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	v := viper.New()
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logging.Info("  CONFIG_FILE:         %s", file)
	}

	config, err := configFrom(v)
	if err != nil {
		return nil, err
	}

	logging.Info("  UPLOAD_ROOT:         %s", config.UploadRoot)
	logging.Info("  PORT:                %s", config.Port)
	logging.Info("  METRICS_PORT:        %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:     %v", config.MetricsEnabled)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", config.LogHealthChecks)
	logging.Info("  PREVIEW_MAX_SIZE:    %d", config.PreviewMaxSize)
	logging.Info("  TOOL_TIMEOUT:        %v", config.ToolTimeout)
	logging.Info("  MAX_UPLOAD_BYTES:    %d", config.MaxUploadBytes)
	logging.Info("  CORS_ORIGINS:        %s", strings.Join(config.CORSOrigins, ","))
	logging.Info("  FFMPEG_PATH:         %s", config.FFmpegPath)
	logging.Info("  FFPROBE_PATH:        %s", config.FFprobePath)
	logging.Info("  MEMORY_LIMIT:        %d", config.MemoryLimit)
	logging.Info("  MEMORY_RATIO:        %.2f", config.MemoryRatio)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Upload root (absolute): %s", config.UploadRoot)

	if err := setupDirectories(config.Layout); err != nil {
		return nil, err
	}

	return config, nil
}

// configFrom reads every setting from v, applying defaults. Environment
// variables are consulted for each key in upper case.
func configFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault(keyMetricsPort, "9090")
	v.SetDefault(keyMetricsEnabled, true)
	v.SetDefault(keyLogHealthChecks, true)
	v.SetDefault(keyPreviewMaxSize, 640)
	v.SetDefault(keyToolTimeout, time.Duration(0))
	v.SetDefault(keyMaxUploadBytes, int64(4<<30))
	v.SetDefault(keyCORSOrigins, "*")
	v.SetDefault(keyFFmpegPath, "ffmpeg")
	v.SetDefault(keyFFprobePath, "ffprobe")
	v.SetDefault(keyMemoryLimit, int64(0))
	v.SetDefault(keyMemoryRatio, 0.5)

	v.AutomaticEnv()
	// Older deployments set the root in lower case.
	if err := v.BindEnv(keyUploadRoot, "UPLOAD_ROOT", "upload_root"); err != nil {
		return nil, err
	}

	uploadRoot := strings.TrimSpace(v.GetString(keyUploadRoot))
	if uploadRoot == "" {
		return nil, fmt.Errorf("%w: UPLOAD_ROOT", ErrMissingSetting)
	}
	port := strings.TrimSpace(v.GetString(keyPort))
	if port == "" {
		return nil, fmt.Errorf("%w: PORT", ErrMissingSetting)
	}

	uploadRoot, err := filepath.Abs(uploadRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload root path: %w", err)
	}

	previewMaxSize := v.GetInt(keyPreviewMaxSize)
	if previewMaxSize < 0 {
		logging.Warn("  Invalid PREVIEW_MAX_SIZE %d, previews keep the frame size", previewMaxSize)
		previewMaxSize = 0
	}

	toolTimeout := v.GetDuration(keyToolTimeout)
	if toolTimeout < 0 {
		logging.Warn("  Invalid TOOL_TIMEOUT %v, tool runs are not capped", toolTimeout)
		toolTimeout = 0
	}

	maxUpload := v.GetInt64(keyMaxUploadBytes)
	if maxUpload <= 0 {
		logging.Warn("  Invalid MAX_UPLOAD_BYTES %d, using default: %d", maxUpload, int64(4<<30))
		maxUpload = 4 << 30
	}

	return &Config{
		UploadRoot:      uploadRoot,
		Port:            port,
		MetricsPort:     v.GetString(keyMetricsPort),
		MetricsEnabled:  v.GetBool(keyMetricsEnabled),
		LogHealthChecks: v.GetBool(keyLogHealthChecks),
		PreviewMaxSize:  previewMaxSize,
		ToolTimeout:     toolTimeout,
		MaxUploadBytes:  maxUpload,
		CORSOrigins:     splitList(v.GetString(keyCORSOrigins)),
		FFmpegPath:      v.GetString(keyFFmpegPath),
		FFprobePath:     v.GetString(keyFFprobePath),
		MemoryLimit:     v.GetInt64(keyMemoryLimit),
		MemoryRatio:     v.GetFloat64(keyMemoryRatio),
		Layout:          storage.NewLayout(uploadRoot),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setupDirectories(layout storage.Layout) error {
	if err := layout.Provision(); err != nil {
		return fmt.Errorf("upload root error: %w", err)
	}

	names := make([]string, 0, len(layout.Volumes()))
	for name := range layout.Volumes() {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dir := layout.Volumes()[name]
		logging.Debug("  Testing %s directory write access: %s", name, dir)
		if err := testWriteAccess(dir); err != nil {
			return fmt.Errorf("%s directory is not writable: %w", name, err)
		}
		logging.Info("  [OK] %-9s %s", name, dir)
	}
	return nil
}

// CheckWritable reports whether every directory under the upload root
// accepts writes. It backs the readiness probe.
func CheckWritable(layout storage.Layout) error {
	for name, dir := range layout.Volumes() {
		if err := testWriteAccess(dir); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// LogToolInit checks that ffmpeg and ffprobe can be started.
func LogToolInit(config *Config) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("MEDIA TOOLS")
	logging.Info("------------------------------------------------------------")

	for _, tool := range []string{config.FFprobePath, config.FFmpegPath} {
		if err := checkTool(tool); err != nil {
			logging.Warn("  %s check failed: %v", tool, err)
			logging.Warn("  Uploads and cuts will fail until %s is installed", filepath.Base(tool))
			continue
		}
		logging.Info("  [OK] %s is available", tool)
	}
	if config.ToolTimeout > 0 {
		logging.Info("  Tool timeout: %v", config.ToolTimeout)
	}
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")
	first, _, _ := strings.Cut(path, "/")
	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Upload:        POST http://0.0.0.0:%s/video", config.Port)
	logging.Info("    Cut:           POST http://0.0.0.0:%s/video/{id}/cut", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
 _   _ _     _               ____        _ _ _   _
| | | (_) __| | ___  ___    / ___| _ __ | (_) |_| |_ ___ _ __
| | | | |/ _' |/ _ \/ _ \   \___ \| '_ \| | | __| __/ _ \ '__|
 \ V /| | (_| |  __/ (_) |   ___) | |_) | | | |_| ||  __/ |
  \_/ |_|\__,_|\___|\___/   |____/| .__/|_|_|\__|\__\___|_|
                                   |_|
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

func checkTool(name string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", name)
	}
	logging.Debug("  %s path: %s", name, path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return fmt.Errorf("failed to get %s version: %w", name, err)
	}

	if first, _, _ := strings.Cut(string(output), "\n"); first != "" {
		logging.Debug("  %s version: %s", name, strings.TrimSpace(first))
	}
	return nil
}
