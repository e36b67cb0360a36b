package pipeline

import (
	"errors"
	"fmt"

	"video-splitter/internal/media"
	"video-splitter/internal/storage"
)

// ErrUnknownVideo is returned when a cut names a video that is not stored.
var ErrUnknownVideo = errors.New("unknown video")

// ValidationError reports a request the caller can fix. It is never caused
// by a tool or storage failure.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(msg string, err error) *ValidationError {
	return &ValidationError{Msg: msg, Err: err}
}

// IsValidation reports whether err is the caller's fault: a ValidationError
// anywhere in the chain, or a region that cannot be mapped to a crop.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var re *media.RegionError
	if errors.As(err, &re) {
		return true
	}
	return errors.Is(err, storage.ErrInvalidID)
}

// StageError reports an ingest that stopped part way. Stage is the last
// stage that completed; work done up to it is kept.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ingest failed after stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
