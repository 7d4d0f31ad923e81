package mint

import (
	"errors"
	"testing"

	"xdao.co/paint/art"
)

func TestKeccakSource_DeterministicAndValid(t *testing.T) {
	src := KeccakSource{Seed: []byte("paint")}
	seen := map[art.Trait]bool{}
	for id := uint64(0); id < 64; id++ {
		a, err := src.TraitFor(id)
		if err != nil {
			t.Fatalf("TraitFor(%d): %v", id, err)
		}
		b, err := src.TraitFor(id)
		if err != nil {
			t.Fatalf("TraitFor(%d): %v", id, err)
		}
		if a != b {
			t.Fatalf("token %d: trait not deterministic", id)
		}
		if err := a.Validate(); err != nil {
			t.Fatalf("token %d: invalid trait: %v", id, err)
		}
		if a.Shape0 == a.Shape1 {
			t.Fatalf("token %d: duplicate tool shape %s", id, a.Shape0)
		}
		if a.Shape0 == art.Polygon || a.Shape0 == art.Path || a.Shape1 == art.Polygon || a.Shape1 == art.Path {
			t.Fatalf("token %d: trait grants an always-allowed shape", id)
		}
		seen[a] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected traits to vary across tokens")
	}
}

func TestKeccakSource_SeedChangesTrait(t *testing.T) {
	a, err := KeccakSource{Seed: []byte("a")}.TraitFor(1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := KeccakSource{Seed: []byte("b")}.TraitFor(1)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("expected different seeds to yield different traits")
	}
}

func TestTraitFunc(t *testing.T) {
	want := errors.New("sold out")
	src := TraitFunc(func(uint64) (art.Trait, error) { return art.Trait{}, want })
	if _, err := src.TraitFor(9); !errors.Is(err, want) {
		t.Fatalf("expected wrapped func error, got %v", err)
	}

	tr := art.Trait{Shape0: art.Rect, Shape1: art.Line, Polygon: 5}
	got, err := Fixed(tr).TraitFor(3)
	if err != nil || got != tr {
		t.Fatalf("Fixed: got %+v, %v", got, err)
	}
}
