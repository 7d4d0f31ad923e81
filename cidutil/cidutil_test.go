package cidutil

import (
	"errors"
	"testing"

	"github.com/ipfs/go-cid"
)

func TestSum_IsDeterministicRawV1(t *testing.T) {
	a, err := Sum([]byte("<svg></svg>"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	b, err := Sum([]byte("<svg></svg>"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if !a.Equals(b) {
		t.Fatalf("expected equal CIDs: %s vs %s", a, b)
	}
	if a.Version() != 1 || a.Type() != cid.Raw {
		t.Fatalf("unexpected cid prefix: version=%d codec=%d", a.Version(), a.Type())
	}
	if SumString([]byte("<svg></svg>")) != a.String() {
		t.Fatalf("SumString disagrees with Sum")
	}
}

func TestVerify(t *testing.T) {
	id, err := Sum([]byte("record"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if err := Verify([]byte("record"), id); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := Verify([]byte("other"), id); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
	if err := Verify([]byte("record"), cid.Undef); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch for undefined cid, got %v", err)
	}
}
