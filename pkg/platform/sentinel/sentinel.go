package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: a uniqueness constraint (username, access pair) was hit
//
// For business-rule failures use the typed errors in internal/bank.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
