package storage

import (
	"errors"

	"github.com/ipfs/go-cid"
)

// MultiStore provides deterministic, ordered fallback across multiple stores.
//
// Loads try Stores in slice order and return the first hit. Save writes only to
// the first store.
type MultiStore struct {
	Stores []Store
}

var _ Store = MultiStore{}

func (m MultiStore) Save(r Record) (cid.Cid, error) {
	if len(m.Stores) == 0 {
		return cid.Undef, errors.New("storage: MultiStore has no stores")
	}
	return m.Stores[0].Save(r)
}

func (m MultiStore) Load(tokenID uint64) (Record, error) {
	for _, s := range m.Stores {
		r, err := s.Load(tokenID)
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

func (m MultiStore) Has(tokenID uint64) bool {
	for _, s := range m.Stores {
		if s.Has(tokenID) {
			return true
		}
	}
	return false
}
