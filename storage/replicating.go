package storage

import (
	"fmt"

	"github.com/ipfs/go-cid"
)

// NamedStore associates a Store with a stable backend name.
type NamedStore struct {
	Name  string
	Store Store
}

// ReplicatingStore writes every record to all backends.
//
// Loads fall back in order. Saves require every backend to report the CID of
// the record's canonical encoding; otherwise ErrCIDMismatch is returned.
type ReplicatingStore struct {
	Backends []NamedStore
}

var _ Store = ReplicatingStore{}

// SaveAll writes r to all backends and returns the canonical CID plus the CID
// each backend reported.
func (s ReplicatingStore) SaveAll(r Record) (cid.Cid, map[string]cid.Cid, error) {
	want, err := RecordCID(r)
	if err != nil {
		return cid.Undef, nil, err
	}
	if len(s.Backends) == 0 {
		return cid.Undef, nil, fmt.Errorf("storage: ReplicatingStore has no backends")
	}

	out := make(map[string]cid.Cid, len(s.Backends))
	for _, b := range s.Backends {
		if b.Store == nil {
			return cid.Undef, nil, fmt.Errorf("storage: nil store for backend %q", b.Name)
		}
		got, err := b.Store.Save(r)
		if err != nil {
			return cid.Undef, out, fmt.Errorf("storage: backend %q: %w", b.Name, err)
		}
		out[b.Name] = got
		if !got.Equals(want) {
			return cid.Undef, out, ErrCIDMismatch
		}
	}
	return want, out, nil
}

func (s ReplicatingStore) Save(r Record) (cid.Cid, error) {
	id, _, err := s.SaveAll(r)
	return id, err
}

func (s ReplicatingStore) Load(tokenID uint64) (Record, error) {
	for _, b := range s.Backends {
		if b.Store == nil {
			continue
		}
		r, err := b.Store.Load(tokenID)
		if err == nil {
			return r, nil
		}
		if IsNotFound(err) {
			continue
		}
		return Record{}, err
	}
	return Record{}, ErrNotFound
}

func (s ReplicatingStore) Has(tokenID uint64) bool {
	for _, b := range s.Backends {
		if b.Store != nil && b.Store.Has(tokenID) {
			return true
		}
	}
	return false
}
