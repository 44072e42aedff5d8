// Package audit emits the compliance trail for the proposal workflow.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType classifies an audit record.
type EventType string

const (
	EventProposalCreated   EventType = "proposal_created"
	EventApprovalProcessed EventType = "approval_processed"
	EventResultRetrieved   EventType = "result_retrieved"
)

// Record is one immutable audit trail entry.
type Record struct {
	LogID      string    `json:"log_id"`
	AuditID    string    `json:"audit_id"`
	ProposalID string    `json:"proposal_id"`
	Event      EventType `json:"event_type"`
	UserID     string    `json:"user_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	Severity   string    `json:"severity"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewRecord builds a record with a fresh log id and the current time.
func NewRecord(auditID, proposalID string, event EventType, userID, details string) Record {
	return Record{
		LogID:      uuid.New().String(),
		AuditID:    auditID,
		ProposalID: proposalID,
		Event:      event,
		UserID:     userID,
		Details:    details,
		Severity:   "info",
		Timestamp:  time.Now().UTC(),
	}
}

// Publisher delivers audit records to wherever the trail is kept.
// Publishing is fire-and-forget from the workflow's point of view; a failed
// publish must never fail the request that produced the record.
type Publisher interface {
	Publish(ctx context.Context, record Record) error
}

// NoOpPublisher discards audit records. Used when no audit queue is
// configured, and as a stand-in for tests.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, record Record) error {
	return nil
}
