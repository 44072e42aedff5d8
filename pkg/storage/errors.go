package storage

import "errors"

// ErrNotFound is returned when no record exists for the requested key.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateProposal is returned when a proposal id is put twice into a
// backend that enforces uniqueness.
var ErrDuplicateProposal = errors.New("proposal already exists")
