package mapping

import (
	"strings"

	"github.com/nxtreasury/treasury-workflow/pkg/api"
	"github.com/nxtreasury/treasury-workflow/pkg/approval"
	"github.com/nxtreasury/treasury-workflow/pkg/models"
)

// ToApiProposal converts a domain Proposal to its API representation.
func ToApiProposal(p *models.Proposal) *api.Proposal {
	payments := make([]api.PaymentProposal, len(p.Entries))
	for i, entry := range p.Entries {
		payments[i] = toApiPayment(entry)
	}
	return &api.Proposal{
		ProposalID:       p.ID,
		UserID:           p.UserID,
		PaymentProposals: payments,
		TotalAmount:      p.TotalAmount,
		Currency:         p.Currency,
		Status:           string(p.Status),
		SkippedRows:      p.SkippedRows,
		AuditID:          p.AuditID,
		CreatedAt:        p.CreatedAt,
	}
}

func toApiPayment(entry models.PaymentEntry) api.PaymentProposal {
	out := api.PaymentProposal{
		PaymentID:    entry.ID,
		Recipient:    entry.Recipient,
		Amount:       entry.Amount,
		Currency:     entry.Currency,
		Purpose:      entry.Purpose,
		Priority:     string(entry.Priority),
		Status:       string(entry.Status),
		EstimatedFee: entry.EstimatedFee,
		Route:        entry.Route,
	}
	if entry.Screening != nil {
		out.Screening = &api.Screening{
			Status:    string(entry.Screening.Status),
			RiskLevel: entry.Screening.RiskLevel,
			RiskScore: entry.Screening.RiskScore,
			Factors:   entry.Screening.Factors,
		}
	}
	return out
}

// ToApiExecutionResult converts a domain ExecutionResult to its API
// representation.
func ToApiExecutionResult(r *models.ExecutionResult) *api.ExecutionResult {
	executed := make([]api.ExecutedPayment, len(r.Executed))
	for i, e := range r.Executed {
		executed[i] = api.ExecutedPayment{
			PaymentID:      e.PaymentID,
			TransactionID:  e.TransactionID,
			Recipient:      e.Recipient,
			OriginalAmount: e.OriginalAmount,
			Amount:         e.Amount,
			Currency:       e.Currency,
			Status:         e.Status,
			ExecutedAt:     e.ExecutedAt,
		}
	}
	failed := make([]api.FailedPayment, len(r.Failed))
	for i, f := range r.Failed {
		failed[i] = api.FailedPayment{
			PaymentID: f.PaymentID,
			Reason:    f.Reason,
			FailedAt:  f.FailedAt,
		}
	}
	return &api.ExecutionResult{
		ProposalID:       r.ProposalID,
		ExecutionStatus:  string(r.Status),
		ExecutedPayments: executed,
		FailedPayments:   failed,
		Summary:          ToApiSummary(r.Summary),
		AuditID:          r.AuditID,
		CreatedAt:        r.CreatedAt,
	}
}

// ToApiSummary converts a domain ExecutionSummary to its API representation.
func ToApiSummary(s models.ExecutionSummary) api.ExecutionSummary {
	return api.ExecutionSummary{
		ExecutedCount:       s.ExecutedCount,
		FailedCount:         s.FailedCount,
		TotalAmountExecuted: s.TotalAmountExecuted,
	}
}

// ToDomainDecision converts an API ApprovalRequest into an approval
// decision.
func ToDomainDecision(req *api.ApprovalRequest) approval.Decision {
	decision := approval.Decision{
		ApproveAll: strings.EqualFold(req.ApprovalDecision, "approve_all"),
		Comments:   req.Comments,
	}
	for _, ap := range req.ApprovedPayments {
		if ap.Index != nil {
			decision.Approved = append(decision.Approved, approval.ByIndex(*ap.Index))
		} else {
			decision.Approved = append(decision.Approved, approval.ByID(ap.PaymentID))
		}
	}
	for _, rej := range req.RejectedPayments {
		decision.Rejected = append(decision.Rejected, approval.Rejection{
			PaymentID: rej.PaymentID,
			Reason:    rej.RejectionReason,
		})
	}
	for _, mod := range req.PartialModifications {
		decision.Modifications = append(decision.Modifications, approval.Modification{
			PaymentID:      mod.PaymentID,
			ApprovedAmount: mod.ApprovedAmount,
		})
	}
	return decision
}
