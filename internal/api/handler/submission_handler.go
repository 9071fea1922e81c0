package handler

import (
	"net/http"

	"cp_tracker/internal/app/service"
	"cp_tracker/internal/common"

	"github.com/go-chi/chi/v5"
)

// maxSubmitBody bounds a submit payload; source code makes up most of it.
const maxSubmitBody = 4 << 20

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/submit", h.createSubmission)
	r.Get("/submissions", h.listSubmissions)
}

func (h *SubmissionHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	form, err := service.DecodeSubmissionForm(http.MaxBytesReader(w, r.Body, maxSubmitBody))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.submissionService.CreateSubmission(r.Context(), form); err != nil {
		respondWithServiceError(w, r, err, "Server error while saving submission")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.MessageResponse{Message: "Submission stored successfully"})
}

func (h *SubmissionHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.ListSubmissions(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch submissions")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, subs)
}
