package storage_test

import (
	"errors"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/paint/storage"
	"xdao.co/paint/storage/memory"
	"xdao.co/paint/storage/testkit"
)

func TestMultiStore_Conformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) storage.Store {
		return storage.MultiStore{Stores: []storage.Store{memory.New(), memory.New()}}
	})
}

func TestMultiStore_FallbackAndFirstWrite(t *testing.T) {
	a, b := memory.New(), memory.New()
	m := storage.MultiStore{Stores: []storage.Store{a, b}}

	if _, err := b.Save(testkit.Fixture(t, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load(1); err != nil {
		t.Fatalf("expected fallback hit, got %v", err)
	}
	if _, err := m.Save(testkit.Fixture(t, 2)); err != nil {
		t.Fatal(err)
	}
	if !a.Has(2) || b.Has(2) {
		t.Fatalf("Save must write only to the first store")
	}
}

type failingStore struct{ err error }

func (f failingStore) Load(uint64) (storage.Record, error)   { return storage.Record{}, f.err }
func (f failingStore) Save(storage.Record) (cid.Cid, error) { return cid.Undef, f.err }
func (f failingStore) Has(uint64) bool                      { return false }

func TestMultiStore_StopsOnHardError(t *testing.T) {
	boom := errors.New("disk on fire")
	ok := memory.New()
	if _, err := ok.Save(testkit.Fixture(t, 1)); err != nil {
		t.Fatal(err)
	}
	m := storage.MultiStore{Stores: []storage.Store{failingStore{err: boom}, ok}}
	if _, err := m.Load(1); !errors.Is(err, boom) {
		t.Fatalf("expected hard error to surface, got %v", err)
	}
}

// lyingStore reports a CID that is not the record's.
type lyingStore struct{ storage.Store }

func (l lyingStore) Save(r storage.Record) (cid.Cid, error) {
	if _, err := l.Store.Save(r); err != nil {
		return cid.Undef, err
	}
	r.TokenID++
	return storage.RecordCID(r)
}

func TestReplicatingStore_Conformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) storage.Store {
		return storage.ReplicatingStore{Backends: []storage.NamedStore{
			{Name: "a", Store: memory.New()},
			{Name: "b", Store: memory.New()},
		}}
	})
}

func TestReplicatingStore_WritesAllAndDetectsMismatch(t *testing.T) {
	a, b := memory.New(), memory.New()
	r := storage.ReplicatingStore{Backends: []storage.NamedStore{{Name: "a", Store: a}, {Name: "b", Store: b}}}
	want, per, err := r.SaveAll(testkit.Fixture(t, 4))
	if err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if !a.Has(4) || !b.Has(4) {
		t.Fatalf("record not replicated")
	}
	if !per["a"].Equals(want) || !per["b"].Equals(want) {
		t.Fatalf("per-backend CIDs disagree: %v", per)
	}

	bad := storage.ReplicatingStore{Backends: []storage.NamedStore{{Name: "a", Store: memory.New()}, {Name: "liar", Store: lyingStore{memory.New()}}}}
	if _, err := bad.Save(testkit.Fixture(t, 4)); !errors.Is(err, storage.ErrCIDMismatch) {
		t.Fatalf("expected ErrCIDMismatch, got %v", err)
	}

	if _, err := (storage.ReplicatingStore{}).Save(testkit.Fixture(t, 4)); err == nil {
		t.Fatalf("expected error with no backends")
	}
}
