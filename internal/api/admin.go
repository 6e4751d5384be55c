package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/lifescore/lifescore/internal/leads"
)

func (h *Handler) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := leads.ListOptions{Audience: q.Get("audience")}
	if opts.Audience != "" && opts.Audience != "adult" && opts.Audience != "child" {
		writeError(w, http.StatusBadRequest, "audience must be adult or child")
		return
	}
	var err error
	if v := q.Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if opts.Offset, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
	}

	subs, err := h.leads.ListSubmissions(r.Context(), opts)
	if err != nil {
		h.logger.Error("list submissions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	if subs == nil {
		subs = []leads.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leads.Stats(r.Context())
	if err != nil {
		h.logger.Error("submission stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	if stats == nil {
		stats = []leads.AudienceStats{}
	}
	writeJSON(w, http.StatusOK, stats)
}
