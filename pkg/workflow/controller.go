// Package workflow orchestrates the four-step proposal lifecycle:
// submit -> review -> approve -> result.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nxtreasury/treasury-workflow/pkg/approval"
	"github.com/nxtreasury/treasury-workflow/pkg/audit"
	"github.com/nxtreasury/treasury-workflow/pkg/extractor"
	"github.com/nxtreasury/treasury-workflow/pkg/fees"
	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/nxtreasury/treasury-workflow/pkg/risk"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
	"github.com/shopspring/decimal"
)

// Controller wires the extractor, screening, stores, and approval processor
// into the workflow state machine. All operations resolve synchronously; the
// processing state stays representable for an async extractor drop-in.
type Controller struct {
	Store     storage.Store
	Assessor  *risk.Assessor
	Processor *approval.Processor
	Auditor   audit.Publisher
	Logger    *slog.Logger

	// ConsumeResults deletes an execution result after its first successful
	// retrieval instead of retaining it for the process lifetime.
	ConsumeResults bool
}

// NewController creates a Controller.
func NewController(store storage.Store, assessor *risk.Assessor, processor *approval.Processor, auditor audit.Publisher, logger *slog.Logger) *Controller {
	return &Controller{
		Store:     store,
		Assessor:  assessor,
		Processor: processor,
		Auditor:   auditor,
		Logger:    logger,
	}
}

// submitRequest is the JSON payload accompanying the uploaded sheet.
type submitRequest struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
	Purpose  string `json:"purpose"`
	Priority string `json:"priority"`
	Country  string `json:"destination_country"`
}

// Submit runs extraction, screening, and fee estimation over the upload and
// stores the resulting proposal. Returns the generated proposal id.
func (c *Controller) Submit(ctx context.Context, file io.Reader, filename string, rawJSON []byte) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: file upload", ErrMissingInput)
	}
	if len(rawJSON) == 0 {
		return "", fmt.Errorf("%w: json payload", ErrMissingInput)
	}

	var req submitRequest
	if err := json.Unmarshal(rawJSON, &req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return "", fmt.Errorf("%w: user_id", ErrMissingInput)
	}

	entries, stats, err := extractor.Extract(file, filename, extractor.RequestMetadata{
		UserID:          req.UserID,
		DefaultCurrency: req.Currency,
		DefaultPurpose:  req.Purpose,
		DefaultPriority: req.Priority,
		DefaultCountry:  req.Country,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	c.Assessor.ScreenAll(entries)
	fees.EstimateAll(entries)

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}

	proposal := &models.Proposal{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Entries:     entries,
		TotalAmount: total,
		// Single-currency batch assumption: the first entry sets the batch
		// currency.
		Currency:    entries[0].Currency,
		Status:      models.READY_FOR_REVIEW,
		SkippedRows: stats.SkippedRows,
		AuditID:     "audit-" + uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.Store.PutProposal(ctx, proposal); err != nil {
		return "", fmt.Errorf("failed to store proposal: %w", err)
	}

	c.publish(ctx, audit.NewRecord(proposal.AuditID, proposal.ID, audit.EventProposalCreated, req.UserID,
		fmt.Sprintf("proposal created with %d payment(s), %d row(s) skipped", len(entries), stats.SkippedRows)))

	return proposal.ID, nil
}

// Review returns the proposal for human review. A proposal still being
// extracted is returned alongside ErrStillProcessing.
func (c *Controller) Review(ctx context.Context, proposalID string) (*models.Proposal, error) {
	proposal, err := c.Store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status == models.PROCESSING {
		return proposal, ErrStillProcessing
	}
	return proposal, nil
}

// Approve applies the reviewer's decision and stores the execution result.
func (c *Controller) Approve(ctx context.Context, proposalID string, decision approval.Decision) (*models.ExecutionResult, error) {
	proposal, err := c.Store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	result, err := c.Processor.Process(proposal, decision)
	if err != nil {
		return nil, err
	}

	if err := c.Store.PutResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to store execution result: %w", err)
	}

	c.publish(ctx, audit.NewRecord(proposal.AuditID, proposal.ID, audit.EventApprovalProcessed, proposal.UserID,
		fmt.Sprintf("approval processed: %s, %d executed, %d failed", result.Status, result.Summary.ExecutedCount, result.Summary.FailedCount)))

	return result, nil
}

// Result returns the execution result for a proposal. A known proposal
// without a result yields ErrStillProcessing; an unknown proposal is a hard
// not-found.
func (c *Controller) Result(ctx context.Context, proposalID string) (*models.ExecutionResult, error) {
	result, err := c.Store.GetResult(ctx, proposalID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if _, perr := c.Store.GetProposal(ctx, proposalID); perr != nil {
			return nil, perr
		}
		return nil, ErrStillProcessing
	}

	if c.ConsumeResults {
		if err := c.Store.DeleteResult(ctx, proposalID); err != nil {
			c.Logger.Error("failed to consume execution result", "proposal_id", proposalID, "error", err)
		}
	}

	c.publish(ctx, audit.NewRecord(result.AuditID, proposalID, audit.EventResultRetrieved, "",
		fmt.Sprintf("execution result retrieved: %s", result.Status)))

	return result, nil
}

// Audit publishing is fire-and-forget; a failed publish never fails the
// request that produced the record.
func (c *Controller) publish(ctx context.Context, record audit.Record) {
	if err := c.Auditor.Publish(ctx, record); err != nil {
		c.Logger.Error("failed to publish audit record", "audit_id", record.AuditID, "event", record.Event, "error", err)
	}
}
