package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "aac", "codec_type": "audio", "sample_rate": "48000"},
    {"index": 1, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 2, "codec_name": "hevc", "codec_type": "video", "width": 640, "height": 360}
  ]
}`

func TestProbe_FirstVideoStream(t *testing.T) {
	runner := &fakeRunner{responses: []response{{out: []byte(probeJSON)}}}
	p := NewProber(runner, "ffprobe")

	info, err := p.Probe(context.Background(), "/data/original/abc.mp4")
	require.NoError(t, err)

	assert.Equal(t, VideoInfo{Width: 1920, Height: 1080, Codec: "h264"}, info)
	assert.True(t, info.Known())

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "ffprobe", runner.calls[0].name)
	assert.Contains(t, runner.calls[0].joined(), "-show_streams")
	assert.Equal(t, "/data/original/abc.mp4", runner.calls[0].args[len(runner.calls[0].args)-1])
}

func TestProbe_NoVideoStreamIsUnknown(t *testing.T) {
	runner := &fakeRunner{responses: []response{{out: []byte(`{"streams":[{"codec_type":"audio","codec_name":"mp3"}]}`)}}}
	p := NewProber(runner, "ffprobe")

	info, err := p.Probe(context.Background(), "/data/original/abc.mp3")
	require.NoError(t, err)
	assert.False(t, info.Known())
	assert.Equal(t, VideoInfo{}, info)
}

func TestProbe_VideoStreamWithoutDimensionsIsUnknown(t *testing.T) {
	runner := &fakeRunner{responses: []response{{out: []byte(`{"streams":[{"codec_type":"video","codec_name":"mjpeg"}]}`)}}}
	info, err := NewProber(runner, "ffprobe").Probe(context.Background(), "x.mp4")

	require.NoError(t, err)
	assert.Equal(t, VideoInfo{}, info)
}

func TestProbe_MalformedOutput(t *testing.T) {
	for name, out := range map[string]string{
		"not json": "Invalid data found when processing input",
		"empty":    "",
	} {
		t.Run(name, func(t *testing.T) {
			runner := &fakeRunner{responses: []response{{out: []byte(out)}}}
			_, err := NewProber(runner, "ffprobe").Probe(context.Background(), "x.mp4")

			var probeErr *ProbeError
			require.ErrorAs(t, err, &probeErr)
			assert.Equal(t, "x.mp4", probeErr.Path)
		})
	}
}

func TestProbe_ToolFailure(t *testing.T) {
	toolErr := &ExitError{Tool: "ffprobe", Err: errors.New("exit status 1"), Stderr: "moov atom not found"}
	runner := &fakeRunner{responses: []response{{err: toolErr}}}

	_, err := NewProber(runner, "ffprobe").Probe(context.Background(), "x.mp4")

	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
	assert.ErrorIs(t, err, toolErr.Err)
	assert.Contains(t, err.Error(), "moov atom not found")
}
