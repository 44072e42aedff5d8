package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalStatus defines the possible states of a proposal.
type ProposalStatus string

const (
	PROCESSING       ProposalStatus = "processing"
	READY_FOR_REVIEW ProposalStatus = "ready_for_review"
	FAILED           ProposalStatus = "failed"
)

// EntryStatus defines the possible states of a single proposed payment.
type EntryStatus string

const (
	PENDING_APPROVAL EntryStatus = "pending_approval"
	APPROVED         EntryStatus = "approved"
	REJECTED         EntryStatus = "rejected"
	MODIFIED         EntryStatus = "modified"
)

// Priority classifies how urgently a payment should be routed.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ExecutionStatus is the overall outcome of applying an approval decision.
type ExecutionStatus string

const (
	SUCCESS         ExecutionStatus = "SUCCESS"
	PARTIAL_SUCCESS ExecutionStatus = "PARTIAL_SUCCESS"
	FAILURE         ExecutionStatus = "FAILURE"
)

// SimulatedSuccess is the terminal status of every executed payment.
// Execution is simulation-only: a transaction id is fabricated and no real
// payment rail is ever contacted.
const SimulatedSuccess = "SIMULATED_SUCCESS"

// ScreeningStatus is the compliance verdict attached to a payment entry.
type ScreeningStatus string

const (
	ScreeningApproved      ScreeningStatus = "APPROVED"
	ScreeningMonitored     ScreeningStatus = "APPROVED_WITH_MONITORING"
	ScreeningNeedsApproval ScreeningStatus = "REQUIRES_APPROVAL"
	ScreeningManualReview  ScreeningStatus = "REQUIRES_MANUAL_REVIEW"
	ScreeningBlocked       ScreeningStatus = "BLOCKED"
)

// Screening holds the rule-table risk assessment for one payment entry.
type Screening struct {
	Status    ScreeningStatus `json:"status" dynamodbav:"status"`
	RiskLevel string          `json:"risk_level" dynamodbav:"risk_level"`
	RiskScore float64         `json:"risk_score" dynamodbav:"risk_score"`
	Factors   []string        `json:"factors,omitempty" dynamodbav:"factors,omitempty"`
}

// PaymentEntry is one proposed payment extracted from the uploaded sheet.
// Immutable after creation except for Status.
type PaymentEntry struct {
	ID           string          `json:"payment_id" dynamodbav:"payment_id"`
	Recipient    string          `json:"recipient" dynamodbav:"recipient"`
	Amount       decimal.Decimal `json:"amount" dynamodbav:"amount"`
	Currency     string          `json:"currency" dynamodbav:"currency"`
	Purpose      string          `json:"purpose" dynamodbav:"purpose"`
	Priority     Priority        `json:"priority" dynamodbav:"priority"`
	Status       EntryStatus     `json:"status" dynamodbav:"status"`
	EstimatedFee decimal.Decimal `json:"estimated_fee" dynamodbav:"estimated_fee"`
	Route        string          `json:"route,omitempty" dynamodbav:"route,omitempty"`
	Country      string          `json:"destination_country,omitempty" dynamodbav:"destination_country,omitempty"`
	Screening    *Screening      `json:"screening,omitempty" dynamodbav:"screening,omitempty"`
}

// Proposal is a batch of proposed payments awaiting human approval.
// Owned exclusively by the proposal store; never mutated after creation.
type Proposal struct {
	ID          string          `json:"proposal_id" dynamodbav:"proposal_id"`
	UserID      string          `json:"user_id" dynamodbav:"user_id"`
	Entries     []PaymentEntry  `json:"payment_proposals" dynamodbav:"payment_proposals"`
	TotalAmount decimal.Decimal `json:"total_amount" dynamodbav:"total_amount"`
	Currency    string          `json:"currency" dynamodbav:"currency"`
	Status      ProposalStatus  `json:"status" dynamodbav:"status"`
	SkippedRows int             `json:"skipped_rows" dynamodbav:"skipped_rows"`
	AuditID     string          `json:"audit_id" dynamodbav:"audit_id"`
	CreatedAt   time.Time       `json:"created_at" dynamodbav:"created_at"`
}

// Entry returns the entry with the given payment id, or nil if it is not part
// of the proposal.
func (p *Proposal) Entry(paymentID string) *PaymentEntry {
	for i := range p.Entries {
		if p.Entries[i].ID == paymentID {
			return &p.Entries[i]
		}
	}
	return nil
}

// ExecutedPayment records one simulated transfer.
type ExecutedPayment struct {
	PaymentID      string          `json:"payment_id" dynamodbav:"payment_id"`
	TransactionID  string          `json:"transaction_id" dynamodbav:"transaction_id"`
	Recipient      string          `json:"recipient" dynamodbav:"recipient"`
	OriginalAmount decimal.Decimal `json:"original_amount" dynamodbav:"original_amount"`
	Amount         decimal.Decimal `json:"amount" dynamodbav:"amount"`
	Currency       string          `json:"currency" dynamodbav:"currency"`
	Status         string          `json:"status" dynamodbav:"status"`
	ExecutedAt     time.Time       `json:"executed_at" dynamodbav:"executed_at"`
}

// FailedPayment records one payment that was rejected or refused.
type FailedPayment struct {
	PaymentID string    `json:"payment_id" dynamodbav:"payment_id"`
	Reason    string    `json:"reason" dynamodbav:"reason"`
	FailedAt  time.Time `json:"failed_at" dynamodbav:"failed_at"`
}

// ExecutionSummary aggregates an execution result.
type ExecutionSummary struct {
	ExecutedCount       int             `json:"executed_count" dynamodbav:"executed_count"`
	FailedCount         int             `json:"failed_count" dynamodbav:"failed_count"`
	TotalAmountExecuted decimal.Decimal `json:"total_amount_executed" dynamodbav:"total_amount_executed"`
}

// ExecutionResult is the outcome record produced after approval decisions are
// applied. Keyed 1:1 by proposal id.
type ExecutionResult struct {
	ProposalID string            `json:"proposal_id" dynamodbav:"proposal_id"`
	Status     ExecutionStatus   `json:"execution_status" dynamodbav:"execution_status"`
	Executed   []ExecutedPayment `json:"executed_payments" dynamodbav:"executed_payments"`
	Failed     []FailedPayment   `json:"failed_payments" dynamodbav:"failed_payments"`
	Summary    ExecutionSummary  `json:"summary" dynamodbav:"summary"`
	AuditID    string            `json:"audit_id" dynamodbav:"audit_id"`
	CreatedAt  time.Time         `json:"created_at" dynamodbav:"created_at"`
}
