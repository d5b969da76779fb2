package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sartorproj/godemand/internal/log"
	"github.com/sartorproj/godemand/pipeline"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 10 << 20

// Handler holds dependencies for API handlers.
type Handler struct {
	runner *pipeline.Runner
}

// NewHandler creates a new API handler.
func NewHandler(runner *pipeline.Runner) *Handler {
	return &Handler{runner: runner}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Segment handles POST /segment.
func (h *Handler) Segment(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.runner.Segment)
}

// Cleanse handles POST /cleanse. The body must carry the segmentation the
// cleansing method is selected from.
func (h *Handler) Cleanse(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.runner.Cleanse)
}

// Analyze handles POST /analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.runner.Run)
}

type runFunc func(ctx context.Context, req pipeline.Request) pipeline.Response

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, run runFunc) {
	var req pipeline.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		log.Debugw("rejected request body", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, pipeline.Response{
			Success: false,
			Message: fmt.Sprintf("invalid JSON request body: %v", err),
		})
		return
	}

	resp := run(r.Context(), req)
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorw("failed to encode response", "error", err)
	}
}
