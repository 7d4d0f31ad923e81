package storage

import "github.com/ipfs/go-cid"

// Store persists token records keyed by token id.
//
// Contract:
// - Save replaces the token's record atomically and returns the record CID
//   (CIDv1 raw sha2-256 of MarshalRecord output).
// - Load returns ErrNotFound when the token is absent.
// - Load never returns a partially written record.
// - Records are values: mutating a loaded Record does not affect the store.
type Store interface {
	Load(tokenID uint64) (Record, error)
	Save(r Record) (cid.Cid, error)
	Has(tokenID uint64) bool
}

// Lister is implemented by stores that can enumerate their tokens.
type Lister interface {
	Tokens() ([]uint64, error)
}
