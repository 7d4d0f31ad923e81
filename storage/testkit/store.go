// Package testkit holds the conformance suite every storage.Store backend
// runs in its own tests.
package testkit

import (
	"bytes"
	"errors"
	"testing"

	"xdao.co/paint/art"
	"xdao.co/paint/storage"
)

// NewStore constructs a fresh, empty Store for a test. The returned store MUST
// be isolated from other tests.
type NewStore func(t *testing.T) storage.Store

// Fixture returns a record for tokenID holding a bucket fill, a line, and a
// seven-point path so the overflow buffer is exercised.
func Fixture(t testing.TB, tokenID uint64) storage.Record {
	t.Helper()
	tr, err := art.NewTrait([art.NumTraitColors]art.Color{0xff0000, 0x00ff00, 0x0000ff, 0x123456, 0xabcdef}, art.Rect, art.Line, 3)
	if err != nil {
		t.Fatalf("NewTrait: %v", err)
	}
	objs := []art.Object{
		{Shape: art.Rect, Color: art.White, Points: []art.Point{{X: 0, Y: 0}, {X: 100, Y: 100}}},
		{Shape: art.Line, Color: 0xff0000, Stroke: 2, Points: []art.Point{{X: -32768, Y: -32768}, {X: 32767, Y: 32767}}},
		{Shape: art.Path, Color: 0x123456, Stroke: 3, Points: []art.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}, {X: 7, Y: 8}, {X: 9, Y: 10}, {X: 11, Y: 12}, {X: -13, Y: 14}}},
	}
	packed, err := art.EncodeAll(objs)
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	return storage.Record{TokenID: tokenID, Trait: tr, Objects: packed}
}

func RunStoreConformance(t *testing.T, newStore NewStore) {
	t.Helper()

	t.Run("SaveLoadRoundTrip", func(t *testing.T) {
		s := newStore(t)
		want := Fixture(t, 7)

		id, err := s.Save(want)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		wantID, err := storage.RecordCID(want)
		if err != nil {
			t.Fatalf("RecordCID failed: %v", err)
		}
		if !id.Equals(wantID) {
			t.Fatalf("Save CID mismatch: got %s want %s", id, wantID)
		}

		got, err := s.Load(7)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !bytes.Equal(storage.MarshalRecord(got), storage.MarshalRecord(want)) {
			t.Fatalf("Load returned a different record")
		}
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		s := newStore(t)
		first := Fixture(t, 1)
		if _, err := s.Save(first); err != nil {
			t.Fatalf("Save(1) failed: %v", err)
		}
		second := first.Clone()
		second.Objects = second.Objects[:1]
		if _, err := s.Save(second); err != nil {
			t.Fatalf("Save(2) failed: %v", err)
		}
		got, err := s.Load(1)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(got.Objects) != 1 {
			t.Fatalf("expected replaced record with 1 object, got %d", len(got.Objects))
		}
	})

	t.Run("EmptyArt", func(t *testing.T) {
		s := newStore(t)
		r := Fixture(t, 2)
		r.Objects = nil
		if _, err := s.Save(r); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := s.Load(2)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(got.Objects) != 0 || got.Trait != r.Trait {
			t.Fatalf("unexpected record: %+v", got)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		s := newStore(t)
		if s.Has(42) {
			t.Fatalf("Has returned true for missing token")
		}
		_, err := s.Load(42)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Load missing: got err=%v want ErrNotFound", err)
		}
		if _, err := s.Save(Fixture(t, 42)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if !s.Has(42) {
			t.Fatalf("Has returned false after Save")
		}
	})

	t.Run("LoadReturnsCopy", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Save(Fixture(t, 3)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		a, err := s.Load(3)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		a.Objects[2].AdditionalPoints[0] ^= 0xff
		a.Objects = a.Objects[:0]

		b, err := s.Load(3)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !bytes.Equal(storage.MarshalRecord(b), storage.MarshalRecord(Fixture(t, 3))) {
			t.Fatalf("mutating a loaded record changed the store")
		}
	})

	t.Run("TokensSorted", func(t *testing.T) {
		s := newStore(t)
		lister, ok := s.(storage.Lister)
		if !ok {
			t.Skip("store does not enumerate tokens")
		}
		for _, id := range []uint64{9, 2, 5} {
			if _, err := s.Save(Fixture(t, id)); err != nil {
				t.Fatalf("Save(%d) failed: %v", id, err)
			}
		}
		ids, err := lister.Tokens()
		if err != nil {
			t.Fatalf("Tokens failed: %v", err)
		}
		if len(ids) != 3 || ids[0] != 2 || ids[1] != 5 || ids[2] != 9 {
			t.Fatalf("Tokens = %v, want [2 5 9]", ids)
		}
	})
}
