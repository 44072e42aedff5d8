package approval

import (
	"errors"
	"fmt"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
)

// ErrPaymentNotFound is returned when an approval reference matches neither
// a payment id nor a valid index in the proposal.
var ErrPaymentNotFound = errors.New("payment not found in proposal")

type refKind int

const (
	refByID refKind = iota
	refByIndex
)

// PaymentRef references one payment entry in a proposal, either by id or by
// zero-based index into the entry list. Inline payment objects on the wire
// resolve to a by-id reference.
type PaymentRef struct {
	kind  refKind
	id    string
	index int
}

// ByID references a payment by its id.
func ByID(paymentID string) PaymentRef {
	return PaymentRef{kind: refByID, id: paymentID}
}

// ByIndex references a payment by its zero-based position.
func ByIndex(i int) PaymentRef {
	return PaymentRef{kind: refByIndex, index: i}
}

// Resolve returns the referenced entry from the proposal. A reference that
// matches neither an id nor an in-range index fails; it is never silently
// dropped.
func (r PaymentRef) Resolve(proposal *models.Proposal) (*models.PaymentEntry, error) {
	switch r.kind {
	case refByIndex:
		if r.index < 0 || r.index >= len(proposal.Entries) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrPaymentNotFound, r.index)
		}
		return &proposal.Entries[r.index], nil
	default:
		if entry := proposal.Entry(r.id); entry != nil {
			return entry, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrPaymentNotFound, r.id)
	}
}
