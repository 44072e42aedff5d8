// Package api holds the wire types for the proposal workflow HTTP surface.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Error is the structured error envelope returned on every failure.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SubmitResponse is returned by POST /submit_request.
type SubmitResponse struct {
	Success    bool   `json:"success"`
	ProposalID string `json:"proposal_id"`
	Status     string `json:"status"`
}

// Screening mirrors the compliance assessment attached to a payment.
type Screening struct {
	Status    string   `json:"status"`
	RiskLevel string   `json:"risk_level"`
	RiskScore float64  `json:"risk_score"`
	Factors   []string `json:"factors,omitempty"`
}

// PaymentProposal is one proposed payment as shown to the reviewer.
type PaymentProposal struct {
	PaymentID    string          `json:"payment_id"`
	Recipient    string          `json:"recipient"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Purpose      string          `json:"purpose"`
	Priority     string          `json:"priority"`
	Status       string          `json:"status"`
	EstimatedFee decimal.Decimal `json:"estimated_fee"`
	Route        string          `json:"route,omitempty"`
	Screening    *Screening      `json:"screening,omitempty"`
}

// Proposal is returned by GET /get_proposal/{id}.
type Proposal struct {
	ProposalID       string            `json:"proposal_id"`
	UserID           string            `json:"user_id"`
	PaymentProposals []PaymentProposal `json:"payment_proposals"`
	TotalAmount      decimal.Decimal   `json:"total_amount"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	SkippedRows      int               `json:"skipped_rows"`
	AuditID          string            `json:"audit_id"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ApprovedPayment references a payment to approve: by id, by zero-based
// index, or inline (a full payment object carrying payment_id).
type ApprovedPayment struct {
	PaymentID string `json:"payment_id,omitempty"`
	Index     *int   `json:"index,omitempty"`
}

// UnmarshalJSON accepts the three reference shapes the approval contract
// allows: a JSON string (payment id), a JSON number (zero-based index into
// the proposal's entry list), or an object carrying payment_id / index.
func (a *ApprovedPayment) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty approved payment reference")
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &a.PaymentID)
	case '{':
		type plain ApprovedPayment
		return json.Unmarshal(trimmed, (*plain)(a))
	default:
		var idx int
		if err := json.Unmarshal(trimmed, &idx); err != nil {
			return fmt.Errorf("approved payment reference must be an id, index, or object: %w", err)
		}
		a.Index = &idx
		return nil
	}
}

// RejectedPayment marks a payment as refused by the reviewer.
type RejectedPayment struct {
	PaymentID       string `json:"payment_id"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// PartialModification approves a payment with an overridden amount.
type PartialModification struct {
	PaymentID      string          `json:"payment_id"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

// ApprovalRequest is the body of POST /submit_approval.
type ApprovalRequest struct {
	ProposalID           string                `json:"proposal_id"`
	ApprovalDecision     string                `json:"approval_decision"`
	ApprovedPayments     []ApprovedPayment     `json:"approved_payments,omitempty"`
	RejectedPayments     []RejectedPayment     `json:"rejected_payments,omitempty"`
	PartialModifications []PartialModification `json:"partial_modifications,omitempty"`
	Comments             string                `json:"comments,omitempty"`
}

// ApprovalResponse is returned by POST /submit_approval.
type ApprovalResponse struct {
	Success         bool             `json:"success"`
	ExecutionStatus string           `json:"execution_status"`
	Summary         ExecutionSummary `json:"summary"`
}

// ExecutedPayment is one simulated transfer in an execution result.
type ExecutedPayment struct {
	PaymentID      string          `json:"payment_id"`
	TransactionID  string          `json:"transaction_id"`
	Recipient      string          `json:"recipient"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	ExecutedAt     time.Time       `json:"executed_at"`
}

// FailedPayment is one refused payment in an execution result.
type FailedPayment struct {
	PaymentID string    `json:"payment_id"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failed_at"`
}

// ExecutionSummary aggregates an execution result.
type ExecutionSummary struct {
	ExecutedCount       int             `json:"executed_count"`
	FailedCount         int             `json:"failed_count"`
	TotalAmountExecuted decimal.Decimal `json:"total_amount_executed"`
}

// ExecutionResult is returned by GET /execution_result/{id}.
type ExecutionResult struct {
	ProposalID       string            `json:"proposal_id"`
	ExecutionStatus  string            `json:"execution_status"`
	ExecutedPayments []ExecutedPayment `json:"executed_payments"`
	FailedPayments   []FailedPayment   `json:"failed_payments"`
	Summary          ExecutionSummary  `json:"summary"`
	AuditID          string            `json:"audit_id"`
	CreatedAt        time.Time         `json:"created_at"`
}

// Health is returned by GET /health.
type Health struct {
	Status string `json:"status"`
}
