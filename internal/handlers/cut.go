package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"video-splitter/internal/logging"
	"video-splitter/internal/media"
	"video-splitter/internal/pipeline"
)

// maxCutBody bounds the region list payload.
const maxCutBody = 1 << 20

// CutVideo splits the stored video named in the path into the regions given
// as a JSON array in the body. The response maps each region index to the
// part filename.
func (h *Handlers) CutVideo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	regions, err := decodeRegions(http.MaxBytesReader(w, r.Body, maxCutBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, "region list too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	parts, err := h.cutter.Cut(r.Context(), id, regions)
	if err != nil {
		if pipeline.IsValidation(err) {
			logging.Debug("Rejected cut of %s: %v", id, err)
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logging.Error("Failed to cut %s: %v", id, err)
		writeJSONError(w, "failed to cut video", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, parts)
}

// decodeRegions reads a JSON array of regions. An empty body or null means
// no regions.
func decodeRegions(body io.Reader) ([]media.Region, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var regions []media.Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("invalid region list: %w", err)
	}
	return regions, nil
}
