package storage

// Store defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on
// the more granular interfaces (ProposalStore, ResultStore) instead of this one.
type Store interface {
	ProposalStore
	ResultStore
}
