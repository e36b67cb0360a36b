package media

import (
	"context"
	"errors"

	"github.com/goccy/go-json"

	"video-splitter/internal/logging"
	"video-splitter/internal/metrics"
)

// VideoInfo is what probing learned about the first video stream. All
// fields are zero when the file has no video stream.
type VideoInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Codec  string `json:"codec"`
}

// Known reports whether a video stream was found.
func (v VideoInfo) Known() bool { return v.Size().Known() }

// Size returns the frame size.
func (v VideoInfo) Size() Size { return Size{Width: v.Width, Height: v.Height} }

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Prober reads stream metadata with ffprobe.
type Prober struct {
	runner  Runner
	ffprobe string
}

// NewProber returns a Prober that runs the ffprobe binary at path ffprobe.
func NewProber(runner Runner, ffprobe string) *Prober {
	return &Prober{runner: runner, ffprobe: ffprobe}
}

// Probe returns the dimensions and codec of the first video stream in path.
// A file without a video stream is not an error: the zero VideoInfo is
// returned and a warning logged.
func (p *Prober) Probe(ctx context.Context, path string) (VideoInfo, error) {
	var info VideoInfo
	err := track("probe", func() error {
		out, err := p.runner.Run(ctx, p.ffprobe,
			"-v", "error",
			"-print_format", "json",
			"-show_streams",
			path,
		)
		if err != nil {
			return &ProbeError{Path: path, Err: err}
		}

		info, err = parseProbeOutput(out)
		if err != nil {
			return &ProbeError{Path: path, Err: err}
		}
		return nil
	})
	if err != nil {
		return VideoInfo{}, err
	}

	if !info.Known() {
		metrics.ProbeUnknownTotal.Inc()
		logging.Warn("Couldn't determine video dimensions: %s", path)
		return VideoInfo{}, nil
	}

	logging.Debug("Probed %s: %dx%d %s", path, info.Width, info.Height, info.Codec)
	return info, nil
}

func parseProbeOutput(out []byte) (VideoInfo, error) {
	if len(out) == 0 {
		return VideoInfo{}, errors.New("empty ffprobe output")
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return VideoInfo{}, err
	}

	for _, s := range parsed.Streams {
		if s.CodecType == "video" {
			return VideoInfo{Width: s.Width, Height: s.Height, Codec: s.CodecName}, nil
		}
	}
	return VideoInfo{}, nil
}
