// Package approval applies a reviewer's decision to a proposal and produces
// the execution result. Execution is simulation-only: every approved payment
// gets a fabricated transaction id and SIMULATED_SUCCESS status.
package approval

import (
	"time"

	"github.com/google/uuid"
	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/shopspring/decimal"
)

// DefaultRejectionReason is used when a rejection carries no reason.
const DefaultRejectionReason = "Rejected by user"

// Rejection refuses one payment.
type Rejection struct {
	PaymentID string
	Reason    string
}

// Modification approves one payment with an overridden amount.
type Modification struct {
	PaymentID      string
	ApprovedAmount decimal.Decimal
}

// Decision is the reviewer's verdict on a proposal.
type Decision struct {
	ApproveAll    bool
	Approved      []PaymentRef
	Rejected      []Rejection
	Modifications []Modification
	Comments      string
}

// Processor turns (proposal, decision) into an execution result. The clock
// and transaction id source are injectable for tests.
type Processor struct {
	Now              func() time.Time
	NewTransactionID func() string
}

// NewProcessor creates a Processor with real time and uuid-based simulated
// transaction ids.
func NewProcessor() *Processor {
	return &Processor{
		Now:              time.Now,
		NewTransactionID: func() string { return "sim-" + uuid.New().String() },
	}
}

type outcome struct {
	entry    *models.PaymentEntry
	amount   decimal.Decimal
	modified bool
}

// Process applies the decision and returns the execution result. It does not
// mutate the proposal store's data. The result always satisfies
// len(executed)+len(failed) == number of decisions applied.
func (p *Processor) Process(proposal *models.Proposal, decision Decision) (*models.ExecutionResult, error) {
	now := p.Now()

	// Order-preserving set of approvals, keyed by payment id so a later
	// modification overrides an earlier plain approval of the same entry.
	var order []string
	approved := make(map[string]outcome)
	add := func(o outcome) {
		if _, seen := approved[o.entry.ID]; !seen {
			order = append(order, o.entry.ID)
		}
		approved[o.entry.ID] = o
	}

	rejected := make(map[string]string)
	for _, rej := range decision.Rejected {
		reason := rej.Reason
		if reason == "" {
			reason = DefaultRejectionReason
		}
		rejected[rej.PaymentID] = reason
	}

	if decision.ApproveAll {
		for i := range proposal.Entries {
			entry := &proposal.Entries[i]
			if _, isRejected := rejected[entry.ID]; isRejected {
				continue
			}
			add(outcome{entry: entry, amount: entry.Amount})
		}
	} else {
		for _, ref := range decision.Approved {
			entry, err := ref.Resolve(proposal)
			if err != nil {
				return nil, err
			}
			add(outcome{entry: entry, amount: entry.Amount})
		}
	}

	for _, mod := range decision.Modifications {
		entry, err := ByID(mod.PaymentID).Resolve(proposal)
		if err != nil {
			return nil, err
		}
		add(outcome{entry: entry, amount: mod.ApprovedAmount, modified: true})
	}

	result := &models.ExecutionResult{
		ProposalID: proposal.ID,
		AuditID:    proposal.AuditID,
		Executed:   []models.ExecutedPayment{},
		Failed:     []models.FailedPayment{},
		CreatedAt:  now,
	}

	total := decimal.Zero
	for _, id := range order {
		o := approved[id]
		if reason, blocked := screeningBlock(o.entry); blocked {
			result.Failed = append(result.Failed, models.FailedPayment{
				PaymentID: id,
				Reason:    reason,
				FailedAt:  now,
			})
			continue
		}
		result.Executed = append(result.Executed, models.ExecutedPayment{
			PaymentID:      id,
			TransactionID:  p.NewTransactionID(),
			Recipient:      o.entry.Recipient,
			OriginalAmount: o.entry.Amount,
			Amount:         o.amount,
			Currency:       o.entry.Currency,
			Status:         models.SimulatedSuccess,
			ExecutedAt:     now,
		})
		total = total.Add(o.amount)
	}

	for _, rej := range decision.Rejected {
		result.Failed = append(result.Failed, models.FailedPayment{
			PaymentID: rej.PaymentID,
			Reason:    rejected[rej.PaymentID],
			FailedAt:  now,
		})
	}

	result.Status = deriveStatus(len(result.Executed), len(result.Failed))
	result.Summary = models.ExecutionSummary{
		ExecutedCount:       len(result.Executed),
		FailedCount:         len(result.Failed),
		TotalAmountExecuted: total,
	}
	return result, nil
}

// Approving a BLOCKED entry must not silently execute it; it fails with the
// screening reason instead.
func screeningBlock(entry *models.PaymentEntry) (string, bool) {
	if entry.Screening == nil || entry.Screening.Status != models.ScreeningBlocked {
		return "", false
	}
	reason := "Blocked by compliance screening"
	if len(entry.Screening.Factors) > 0 {
		reason = reason + ": " + entry.Screening.Factors[0]
	}
	return reason, true
}

func deriveStatus(executed, failed int) models.ExecutionStatus {
	switch {
	case executed > 0 && failed == 0:
		return models.SUCCESS
	case executed > 0 && failed > 0:
		return models.PARTIAL_SUCCESS
	default:
		return models.FAILURE
	}
}
