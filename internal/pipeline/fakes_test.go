package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"video-splitter/internal/media"
	"video-splitter/internal/storage"
)

// testDigest is the SHA-256 of "test".
const testDigest = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

type fakeProber struct {
	mu    sync.Mutex
	info  media.VideoInfo
	err   error
	paths []string
}

func (f *fakeProber) Probe(_ context.Context, path string) (media.VideoInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.info, f.err
}

type fakePreview struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakePreview) Generate(_ context.Context, _, outDir, baseName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(media.PreviewPath(outDir, baseName), []byte("jpeg"), 0o644)
}

type cutCall struct {
	src     string
	frame   media.Size
	destDir string
	regions []media.Region
}

type fakeCutter struct {
	mu     sync.Mutex
	result map[int]string
	err    error
	calls  []cutCall
}

func (f *fakeCutter) Cut(_ context.Context, src string, frame media.Size, destDir string, regions []media.Region) (map[int]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cutCall{src: src, frame: frame, destDir: destDir, regions: regions})
	return f.result, f.err
}

func newTestLayout(t *testing.T) storage.Layout {
	t.Helper()
	layout := storage.NewLayout(t.TempDir())
	require.NoError(t, layout.Provision())
	return layout
}

// writeUpload places content in the incoming directory as a received upload would be.
func writeUpload(t *testing.T, layout storage.Layout, name, content string) string {
	t.Helper()
	path := filepath.Join(layout.IncomingDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
