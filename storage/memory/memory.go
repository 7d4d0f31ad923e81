// Package memory is an in-process token store, used by tests and ephemeral
// daemons.
package memory

import (
	"flag"
	"sort"
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/paint/cidutil"
	"xdao.co/paint/storage"
	"xdao.co/paint/storage/registry"
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:          "memory",
		Description:   "In-memory token store (lost on exit)",
		Usage:         registry.UsageCLI | registry.UsageDaemon,
		RegisterFlags: func(*flag.FlagSet) {},
		Open: func() (storage.Store, func() error, error) {
			return New(), nil, nil
		},
		OpenConfig: func(map[string]string) (storage.Store, func() error, error) {
			return New(), nil, nil
		},
	})
}

// Store keeps canonical record encodings in a map so loads always return an
// independent copy.
type Store struct {
	mu      sync.RWMutex
	records map[uint64][]byte
}

var (
	_ storage.Store  = (*Store)(nil)
	_ storage.Lister = (*Store)(nil)
)

func New() *Store {
	return &Store{records: map[uint64][]byte{}}
}

func (s *Store) Save(r storage.Record) (cid.Cid, error) {
	b := storage.MarshalRecord(r)
	id, err := cidutil.Sum(b)
	if err != nil {
		return cid.Undef, err
	}
	s.mu.Lock()
	s.records[r.TokenID] = b
	s.mu.Unlock()
	return id, nil
}

func (s *Store) Load(tokenID uint64) (storage.Record, error) {
	s.mu.RLock()
	b, ok := s.records[tokenID]
	s.mu.RUnlock()
	if !ok {
		return storage.Record{}, storage.ErrNotFound
	}
	return storage.UnmarshalRecord(b)
}

func (s *Store) Has(tokenID uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[tokenID]
	return ok
}

func (s *Store) Tokens() ([]uint64, error) {
	s.mu.RLock()
	out := make([]uint64, 0, len(s.records))
	for id := range s.records {
		out = append(out, id)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
