package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"video-splitter/internal/logging"
	"video-splitter/internal/pipeline"
	"video-splitter/internal/storage"
)

// uploadField is the multipart form field carrying the video.
const uploadField = "video"

var (
	errNoVideoPart     = errors.New("multipart field \"" + uploadField + "\" with a file is required")
	errMalformedUpload = errors.New("malformed multipart body")
)

// UploadResponse describes an ingested video. Dimensions and codec are
// omitted when the file has no readable video stream.
type UploadResponse struct {
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Codec   string `json:"codec,omitempty"`
	Preview string `json:"preview"`
	VideoID string `json:"videoId"`
}

// UploadVideo receives a multipart upload, buffers the video part in the
// incoming directory and ingests it.
func (h *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	up, err := h.receiveUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSONError(w, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		case errors.Is(err, errNoVideoPart), errors.Is(err, errMalformedUpload),
			errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			writeJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			logging.Error("Failed to receive upload: %v", err)
			writeJSONError(w, "failed to receive upload", http.StatusInternalServerError)
		}
		return
	}

	res, err := h.ingester.Ingest(r.Context(), up)
	if err != nil {
		if pipeline.IsValidation(err) {
			logging.Debug("Rejected upload %s: %v", up.OriginalName, err)
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logging.Error("Failed to ingest %s: %v", up.OriginalName, err)
		writeJSONError(w, "failed to process video", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, UploadResponse{
		Width:   res.Info.Width,
		Height:  res.Info.Height,
		Codec:   res.Info.Codec,
		Preview: res.PreviewPath,
		VideoID: res.ID.String(),
	})
}

// receiveUpload streams the first file in the video field to a uniquely
// named file in the incoming directory. Other parts are skipped.
func (h *Handlers) receiveUpload(r *http.Request) (pipeline.Upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return pipeline.Upload{}, err
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return pipeline.Upload{}, errNoVideoPart
		}
		if err != nil {
			return pipeline.Upload{}, fmt.Errorf("%w: %w", errMalformedUpload, err)
		}

		if part.FormName() != uploadField || part.FileName() == "" {
			part.Close()
			continue
		}

		up, err := h.bufferPart(part)
		part.Close()
		return up, err
	}
}

func (h *Handlers) bufferPart(part *multipart.Part) (pipeline.Upload, error) {
	name := part.FileName()
	ext := filepath.Ext(name)
	if !storage.ValidExt(ext) {
		ext = ""
	}

	tmp := filepath.Join(h.layout.IncomingDir(), uuid.NewString()+ext)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return pipeline.Upload{}, fmt.Errorf("create incoming file: %w", err)
	}

	n, err := io.Copy(f, part)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logging.Warn("Failed to remove partial upload %s: %v", tmp, rmErr)
		}
		return pipeline.Upload{}, err
	}

	logging.Debug("Received %s (%d bytes) into %s", name, n, tmp)
	return pipeline.Upload{
		TempPath:     tmp,
		OriginalName: name,
		MediaType:    part.Header.Get("Content-Type"),
	}, nil
}
