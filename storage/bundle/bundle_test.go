package bundle_test

import (
	"archive/tar"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"

	"xdao.co/paint/art"
	"xdao.co/paint/cidutil"
	"xdao.co/paint/storage"
	"xdao.co/paint/storage/bundle"
	"xdao.co/paint/storage/localfs"
	"xdao.co/paint/storage/memory"
	"xdao.co/paint/storage/testkit"
)

func TestBundle_ExportIsDeterministic(t *testing.T) {
	src := memory.New()
	for _, id := range []uint64{1, 2} {
		if _, err := src.Save(testkit.Fixture(t, id)); err != nil {
			t.Fatal(err)
		}
	}

	var outA bytes.Buffer
	if err := bundle.Export(&outA, src, []uint64{2, 1}, bundle.ExportOptions{IncludeIndex: true}); err != nil {
		t.Fatal(err)
	}
	var outB bytes.Buffer
	if err := bundle.Export(&outB, src, []uint64{1, 2, 1}, bundle.ExportOptions{IncludeIndex: true}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(outA.Bytes(), outB.Bytes()) {
		t.Fatalf("expected deterministic bundle bytes")
	}
}

func TestBundle_ImportRoundTrip(t *testing.T) {
	src := memory.New()
	want := testkit.Fixture(t, 9)
	if _, err := src.Save(want); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := bundle.Export(&buf, src, []uint64{9}, bundle.ExportOptions{IncludeIndex: true}); err != nil {
		t.Fatal(err)
	}

	dst, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ids, err := bundle.Import(bytes.NewReader(buf.Bytes()), dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 9 {
		t.Fatalf("imported ids = %v", ids)
	}
	got, err := dst.Load(9)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(storage.MarshalRecord(got), storage.MarshalRecord(want)) {
		t.Fatalf("record mismatch after import")
	}
}

func TestBundle_ExportMissingToken(t *testing.T) {
	var buf bytes.Buffer
	err := bundle.Export(&buf, memory.New(), []uint64{1}, bundle.ExportOptions{})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBundle_ImportRejectsCIDMismatch(t *testing.T) {
	good := storage.MarshalRecord(testkit.Fixture(t, 1))
	otherCID, err := cidutil.Sum([]byte("other"))
	if err != nil {
		t.Fatal(err)
	}

	// Name says otherCID but the bytes are the record.
	b := makeDeterministicTar(t, "records/"+otherCID.String(), good)
	if _, err := bundle.Import(bytes.NewReader(b), memory.New()); !errors.Is(err, storage.ErrCIDMismatch) {
		t.Fatalf("expected ErrCIDMismatch, got %v", err)
	}
}

func TestBundle_ImportRejectsUnknownEntry(t *testing.T) {
	b := makeDeterministicTar(t, "notes.txt", []byte("hi"))
	if _, err := bundle.Import(bytes.NewReader(b), memory.New()); err == nil {
		t.Fatalf("expected error for unknown entry")
	}
	ids, err := bundle.ImportWithOptions(bytes.NewReader(b), memory.New(), bundle.ImportOptions{IgnoreUnknown: true})
	if err != nil || len(ids) != 0 {
		t.Fatalf("IgnoreUnknown: ids=%v err=%v", ids, err)
	}
}

func TestBundle_ImportRejectsUnacceptedArt(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *storage.Record)
		rule   string
	}{
		{"zero-point rect", func(r *storage.Record) { r.Objects = append(r.Objects, art.Packed{}) }, art.RuleShapePoints},
		{"color outside trait", func(r *storage.Record) {
			p, err := art.Encode(art.Object{Shape: art.Rect, Color: 0x777777, Points: []art.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}})
			if err != nil {
				t.Fatal(err)
			}
			r.Objects = append(r.Objects, p)
		}, art.RuleTraitColor},
		{"stray bits above the point slots", func(r *storage.Record) {
			var stray uint256.Int
			stray.Lsh(uint256.NewInt(1), 250)
			r.Objects[0].Base.Or(&r.Objects[0].Base, &stray)
		}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testkit.Fixture(t, 7)
			tc.mutate(&rec)
			src := memory.New()
			if _, err := src.Save(rec); err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := bundle.Export(&buf, src, []uint64{7}, bundle.ExportOptions{}); err != nil {
				t.Fatal(err)
			}

			dst := memory.New()
			ids, err := bundle.Import(bytes.NewReader(buf.Bytes()), dst)
			if !errors.Is(err, storage.ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got ids=%v err=%v", ids, err)
			}
			if art.RuleID(err) != tc.rule {
				t.Fatalf("rule = %q want %q", art.RuleID(err), tc.rule)
			}
			if dst.Has(7) {
				t.Fatalf("rejected record was stored")
			}
		})
	}
}

func makeDeterministicTar(t *testing.T, name string, content []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	h := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  time.Unix(0, 0).UTC(),
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(h); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
