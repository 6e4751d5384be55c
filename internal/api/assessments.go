package api

import (
	"errors"
	"net/http"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

type questionsResponse struct {
	Questions []questionView `json:"questions"`
	AdultAges [2]int         `json:"adult_ages"`
	ChildAges [2]int         `json:"child_ages"`
	Devices   []deviceView   `json:"devices"`
}

type questionView struct {
	catalog.Question
	Default float64 `json:"default"`
}

type deviceView struct {
	Category catalog.DeviceCategory `json:"category"`
	Label    string                 `json:"label"`
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	resp := questionsResponse{
		AdultAges: [2]int{scoring.MinAdultAge, scoring.MaxAdultAge},
		ChildAges: [2]int{scoring.MinChildAge, scoring.MaxChildAge},
	}
	for _, q := range h.catalog.Questions {
		resp.Questions = append(resp.Questions, questionView{Question: q, Default: q.Midpoint()})
	}
	for _, c := range catalog.DeviceCategories {
		resp.Devices = append(resp.Devices, deviceView{Category: c, Label: c.Label()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAdultAssessment(w http.ResponseWriter, r *http.Request) {
	var answers scoring.AdultAnswers
	if err := decodeJSON(w, r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.adult.Evaluate(answers)
	if err != nil {
		writeScoringError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type bucketRequest struct {
	Age     float64                 `json:"age"`
	Answers scoring.BucketedAnswers `json:"answers"`
}

// handleBucketAssessment scores answers that were already mapped to bucket
// labels. Unknown questions or labels are skipped, not rejected.
func (h *Handler) handleBucketAssessment(w http.ResponseWriter, r *http.Request) {
	var req bucketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}
	writeJSON(w, http.StatusOK, h.adult.Aggregator().ScoreDetailed(req.Age, req.Answers))
}

func (h *Handler) handleChildAssessment(w http.ResponseWriter, r *http.Request) {
	var answers scoring.ChildAnswers
	if err := decodeJSON(w, r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.child.Evaluate(answers)
	if err != nil {
		writeScoringError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeScoringError(w http.ResponseWriter, err error) {
	if errors.Is(err, scoring.ErrInvalidAnswers) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "scoring failed")
}
