package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-splitter/internal/media"
	"video-splitter/internal/storage"
)

func storeOriginal(t *testing.T, layout storage.Layout, id string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(layout.OriginalDir(), id), []byte("test"), 0o644))
}

func TestCut_DelegatesWithFrameSize(t *testing.T) {
	layout := newTestLayout(t)
	id := testDigest + ".mp4"
	storeOriginal(t, layout, id)

	prober := &fakeProber{info: media.VideoInfo{Width: 1920, Height: 1080, Codec: "h264"}}
	cutter := &fakeCutter{result: map[int]string{0: testDigest + "_0.mp4"}}
	svc := NewCutService(layout, prober, cutter)

	regions := []media.Region{{Index: 0, X: 0, Y: 0, Width: 0.5, Height: 1}}
	parts, err := svc.Cut(context.Background(), id, regions)
	require.NoError(t, err)

	assert.Equal(t, map[int]string{0: testDigest + "_0.mp4"}, parts)
	require.Len(t, cutter.calls, 1)
	c := cutter.calls[0]
	assert.Equal(t, filepath.Join(layout.OriginalDir(), id), c.src)
	assert.Equal(t, media.Size{Width: 1920, Height: 1080}, c.frame)
	assert.Equal(t, filepath.Join(layout.Root(), "parts", testDigest), c.destDir)
	assert.DirExists(t, c.destDir)
}

func TestCut_UnknownVideoTouchesNothing(t *testing.T) {
	layout := newTestLayout(t)
	prober := &fakeProber{}
	cutter := &fakeCutter{}
	svc := NewCutService(layout, prober, cutter)

	_, err := svc.Cut(context.Background(), strings.Repeat("a", 64)+".mp4", []media.Region{{Width: 1, Height: 1}})

	assert.ErrorIs(t, err, ErrUnknownVideo)
	assert.True(t, IsValidation(err))
	assert.Empty(t, prober.paths)
	assert.Empty(t, cutter.calls)
}

func TestCut_InvalidIDs(t *testing.T) {
	layout := newTestLayout(t)
	svc := NewCutService(layout, &fakeProber{}, &fakeCutter{})

	for _, id := range []string{"", "abc.mp4", "../../etc/passwd", testDigest, testDigest + ".mp4/.."} {
		t.Run(id, func(t *testing.T) {
			_, err := svc.Cut(context.Background(), id, nil)
			assert.ErrorIs(t, err, storage.ErrInvalidID)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestCut_RegionValidationBeforeProbe(t *testing.T) {
	layout := newTestLayout(t)
	id := testDigest + ".mp4"
	storeOriginal(t, layout, id)
	prober := &fakeProber{info: media.VideoInfo{Width: 100, Height: 100}}
	cutter := &fakeCutter{}
	svc := NewCutService(layout, prober, cutter)

	_, err := svc.Cut(context.Background(), id, []media.Region{
		{Index: 0, Width: 0.5, Height: 0.5},
		{Index: 1, X: 0.8, Width: 0.5, Height: 0.5},
	})

	var re *media.RegionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.Index)
	assert.True(t, IsValidation(err))
	assert.Empty(t, prober.paths)
	assert.Empty(t, cutter.calls)
}

func TestCut_EmptyRegions(t *testing.T) {
	layout := newTestLayout(t)
	id := testDigest + ".mp4"
	storeOriginal(t, layout, id)
	cutter := &fakeCutter{}
	svc := NewCutService(layout, &fakeProber{}, cutter)

	parts, err := svc.Cut(context.Background(), id, nil)
	require.NoError(t, err)
	assert.Empty(t, parts)
	assert.Empty(t, cutter.calls)
}

func TestCut_UnknownDimensions(t *testing.T) {
	layout := newTestLayout(t)
	id := testDigest + ".mp4"
	storeOriginal(t, layout, id)
	cutter := &fakeCutter{}
	svc := NewCutService(layout, &fakeProber{}, cutter)

	_, err := svc.Cut(context.Background(), id, []media.Region{{Width: 1, Height: 1}})

	assert.ErrorIs(t, err, media.ErrUnknownFrameSize)
	assert.True(t, IsValidation(err))
	assert.Empty(t, cutter.calls)
}

func TestCut_ProbeFailureIsNotValidation(t *testing.T) {
	layout := newTestLayout(t)
	id := testDigest + ".mp4"
	storeOriginal(t, layout, id)
	svc := NewCutService(layout, &fakeProber{err: errors.New("ffprobe crashed")}, &fakeCutter{})

	_, err := svc.Cut(context.Background(), id, []media.Region{{Width: 1, Height: 1}})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}

func TestCut_CropFailurePropagates(t *testing.T) {
	layout := newTestLayout(t)
	id := testDigest + ".mp4"
	storeOriginal(t, layout, id)
	cropErr := &media.CropError{Index: 1, Path: id, Err: errors.New("exit status 1")}
	svc := NewCutService(layout,
		&fakeProber{info: media.VideoInfo{Width: 100, Height: 100}},
		&fakeCutter{err: cropErr},
	)

	parts, err := svc.Cut(context.Background(), id, []media.Region{{Width: 1, Height: 1}})

	assert.Nil(t, parts)
	assert.ErrorIs(t, err, cropErr)
	assert.False(t, IsValidation(err))
}

// TestCut_ThroughMediaCutter runs the real Cutter behind a scripted runner
// to check the pixel rectangles handed to ffmpeg.
func TestCut_ThroughMediaCutter(t *testing.T) {
	layout := newTestLayout(t)
	id := testDigest + ".mp4"
	storeOriginal(t, layout, id)

	runner := &recordingRunner{}
	svc := NewCutService(layout,
		&fakeProber{info: media.VideoInfo{Width: 1920, Height: 1080, Codec: "h264"}},
		media.NewCutter(runner, "ffmpeg"),
	)

	parts, err := svc.Cut(context.Background(), id, []media.Region{
		{Index: 0, X: 0, Y: 0, Width: 0.5, Height: 1},
		{Index: 1, X: 0.5, Y: 0, Width: 0.5, Height: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, map[int]string{
		0: testDigest + "_0.mp4",
		1: testDigest + "_1.mp4",
	}, parts)
	require.Len(t, runner.args, 2)
	assert.Contains(t, strings.Join(runner.args[0], " "), "crop=960:1080:0:0")
	assert.Contains(t, strings.Join(runner.args[1], " "), "crop=960:1080:960:0")
}

type recordingRunner struct {
	args [][]string
}

func (r *recordingRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	r.args = append(r.args, args)
	return nil, nil
}
