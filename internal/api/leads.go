package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lifescore/lifescore/internal/intake"
	"github.com/lifescore/lifescore/internal/leads"
	"github.com/lifescore/lifescore/pkg/scoring"
)

func (h *Handler) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var req intake.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	out, err := h.intake.Submit(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, leads.ErrInvalidEmail),
		errors.Is(err, scoring.ErrInvalidAnswers),
		errors.Is(err, intake.ErrUnknownAudience),
		errors.Is(err, intake.ErrMissingAnswers):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.logger.Error("submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store submission")
		return
	}

	w.Header().Set("Location", "/api/v1/reports/"+out.SubmissionID)
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}
	if format != "markdown" && format != "json" {
		writeError(w, http.StatusBadRequest, "format must be markdown or json")
		return
	}

	file := h.cache.Get(id, format)
	if file == nil {
		var err error
		file, err = h.intake.Report(r.Context(), id, format)
		if errors.Is(err, leads.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		if err != nil {
			h.logger.Error("report failed", zap.String("submission_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to build report")
			return
		}
		h.cache.Put(id, format, file)
	}

	w.Header().Set("Content-Type", file.ContentType)
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
