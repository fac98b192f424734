package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/auspexlabs/imager/pkg/buildinfo"
	apperrors "github.com/auspexlabs/imager/pkg/errors"
	"github.com/auspexlabs/imager/pkg/pipeline"
)

// handleGenerateChart decodes one render request, runs the pipeline, and
// writes the success or failure envelope. Caller errors (undecodable body,
// unknown chart type) map to 400; render failures map to 500 with
// diagnostic detail in the envelope.
func (s *Server) handleGenerateChart(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "no request data provided"
		}
		writeJSON(w, http.StatusBadRequest, pipeline.Fail(
			apperrors.New(apperrors.ErrCodeInvalidInput, "%s", msg)))
		return
	}

	res, err := pipeline.Render(&req, s.logger)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsCallerError(err) {
			status = http.StatusBadRequest
		}
		s.logger.Error("render failed", "chart_type", req.ChartType, "err", err)
		writeJSON(w, status, pipeline.Fail(err))
		return
	}

	writeJSON(w, http.StatusOK, pipeline.Succeed(&req, res))
}

// healthResponse is the static liveness payload.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: "imager",
		Version: buildinfo.Version,
	})
}
