// Package handlers exposes the proposal workflow over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nxtreasury/treasury-workflow/pkg/api"
	"github.com/nxtreasury/treasury-workflow/pkg/approval"
	"github.com/nxtreasury/treasury-workflow/pkg/mapping"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
	"github.com/nxtreasury/treasury-workflow/pkg/workflow"
)

// Uploads above this size are rejected at parse time.
const maxUploadBytes = 32 << 20

// Handler holds the dependencies for the workflow handlers.
type Handler struct {
	Controller *workflow.Controller
	Logger     *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(controller *workflow.Controller, logger *slog.Logger) *Handler {
	return &Handler{Controller: controller, Logger: logger}
}

// Routes mounts the workflow endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/submit_request", h.SubmitRequest)
	r.Get("/get_proposal/{proposalID}", h.GetProposal)
	r.Post("/submit_approval", h.SubmitApproval)
	r.Get("/execution_result/{proposalID}", h.ExecutionResult)
	r.Get("/health", h.Health)
}

// SubmitRequest handles step 1: a multipart upload with an `excel` file part
// and a `json` form field.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", fmt.Sprintf("invalid multipart request: %v", err))
		return
	}

	file, header, err := r.FormFile("excel")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", "missing excel file upload")
		return
	}
	defer file.Close()

	rawJSON := r.FormValue("json")
	if strings.TrimSpace(rawJSON) == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "missing json form field")
		return
	}

	proposalID, err := h.Controller.Submit(r.Context(), file, header.Filename, []byte(rawJSON))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.SubmitResponse{
		Success:    true,
		ProposalID: proposalID,
		Status:     "ready_for_review",
	})
}

// GetProposal handles step 2: retrieving a proposal for review.
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	proposalID := chi.URLParam(r, "proposalID")

	proposal, err := h.Controller.Review(r.Context(), proposalID)
	if err != nil {
		if errors.Is(err, workflow.ErrStillProcessing) {
			h.writeJSON(w, http.StatusAccepted, map[string]string{
				"proposal_id": proposalID,
				"status":      "processing",
			})
			return
		}
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, mapping.ToApiProposal(proposal))
}

// SubmitApproval handles step 3: applying the reviewer's decision.
func (h *Handler) SubmitApproval(w http.ResponseWriter, r *http.Request) {
	var req api.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.ProposalID) == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "missing proposal_id")
		return
	}

	result, err := h.Controller.Approve(r.Context(), req.ProposalID, mapping.ToDomainDecision(&req))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.ApprovalResponse{
		Success:         true,
		ExecutionStatus: string(result.Status),
		Summary:         mapping.ToApiSummary(result.Summary),
	})
}

// ExecutionResult handles step 4: retrieving the execution outcome.
func (h *Handler) ExecutionResult(w http.ResponseWriter, r *http.Request) {
	proposalID := chi.URLParam(r, "proposalID")

	result, err := h.Controller.Result(r.Context(), proposalID)
	if err != nil {
		if errors.Is(err, workflow.ErrStillProcessing) {
			h.writeJSON(w, http.StatusAccepted, map[string]string{
				"proposal_id": proposalID,
				"status":      "pending_approval",
			})
			return
		}
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, mapping.ToApiExecutionResult(result))
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.Health{Status: "healthy"})
}

// handleError maps the workflow error taxonomy onto HTTP statuses.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrMissingInput),
		errors.Is(err, workflow.ErrInvalidJSON),
		errors.Is(err, workflow.ErrValidation):
		h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, approval.ErrPaymentNotFound):
		h.writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		h.Logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, api.Error{Error: code, Message: message})
}
