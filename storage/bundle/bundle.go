// Package bundle exports and imports token records as a deterministic TAR
// archive.
//
// Entries:
//
//	records/<cid>  canonical record encoding (storage.MarshalRecord)
//	index.json     optional, non-authoritative token -> cid listing
package bundle

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/paint/cidutil"
	"xdao.co/paint/storage"
)

// FormatVersion is the current bundle index schema version.
const FormatVersion = 1

var epoch0 = time.Unix(0, 0).UTC()

type ExportOptions struct {
	// IncludeIndex controls whether index.json is written.
	IncludeIndex bool
}

// Export writes the records of the given tokens to w.
//
// Bundle bytes are deterministic: entries are ordered by CID and TAR headers
// are normalized. Duplicate token ids are exported once.
func Export(w io.Writer, store storage.Store, tokenIDs []uint64, opts ExportOptions) error {
	if store == nil {
		return fmt.Errorf("bundle: nil store")
	}

	type entry struct {
		id    cid.Cid
		token uint64
		data  []byte
	}
	seen := make(map[uint64]struct{}, len(tokenIDs))
	entries := make([]entry, 0, len(tokenIDs))
	for _, tok := range tokenIDs {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		r, err := store.Load(tok)
		if err != nil {
			return fmt.Errorf("bundle: token %d: %w", tok, err)
		}
		b := storage.MarshalRecord(r)
		id, err := cidutil.Sum(b)
		if err != nil {
			return err
		}
		entries = append(entries, entry{id: id, token: tok, data: b})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id.String() < entries[j].id.String() })

	tw := tar.NewWriter(w)
	for _, e := range entries {
		if err := writeFile(tw, "records/"+e.id.String(), e.data); err != nil {
			_ = tw.Close()
			return err
		}
	}

	if opts.IncludeIndex {
		idx := indexJSON{
			Version:   FormatVersion,
			CIDCodec:  "raw",
			Multihash: "sha2-256",
			Records:   make([]indexRecord, 0, len(entries)),
		}
		for _, e := range entries {
			idx.Records = append(idx.Records, indexRecord{Token: e.token, CID: e.id.String(), Size: len(e.data)})
		}
		sort.Slice(idx.Records, func(i, j int) bool { return idx.Records[i].Token < idx.Records[j].Token })

		b, err := json.Marshal(idx)
		if err != nil {
			_ = tw.Close()
			return err
		}
		if err := writeFile(tw, "index.json", append(b, '\n')); err != nil {
			_ = tw.Close()
			return err
		}
	}

	return tw.Close()
}

type ImportOptions struct {
	// IgnoreUnknown skips unknown entries. The default fails closed.
	IgnoreUnknown bool
}

// Import reads a bundle from r and saves every record into store. It returns
// the imported token ids in archive order.
func Import(r io.Reader, store storage.Store) ([]uint64, error) {
	return ImportWithOptions(r, store, ImportOptions{})
}

// ImportWithOptions is Import with options. Each record must match the CID in
// its entry name, pass storage.CheckRecord, and be reported under the same CID
// by the store on save. Nothing after the first bad record is imported.
func ImportWithOptions(r io.Reader, store storage.Store, opts ImportOptions) ([]uint64, error) {
	if store == nil {
		return nil, fmt.Errorf("bundle: nil store")
	}

	tr := tar.NewReader(r)
	seen := map[uint64]struct{}{}
	var imported []uint64

	for {
		h, err := tr.Next()
		if err == io.EOF {
			return imported, nil
		}
		if err != nil {
			return imported, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return imported, fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}

		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return imported, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}

		if name == "index.json" {
			_, _ = io.Copy(io.Discard, tr)
			continue
		}

		if !strings.HasPrefix(name, "records/") {
			if opts.IgnoreUnknown {
				_, _ = io.Copy(io.Discard, tr)
				continue
			}
			return imported, fmt.Errorf("bundle: unknown entry: %s", name)
		}

		id, derr := cid.Decode(strings.TrimPrefix(name, "records/"))
		if derr != nil || !id.Defined() {
			return imported, storage.ErrInvalidCID
		}
		payload, rerr := io.ReadAll(tr)
		if rerr != nil {
			return imported, rerr
		}
		if err := cidutil.Verify(payload, id); err != nil {
			return imported, storage.ErrCIDMismatch
		}
		rec, err := storage.UnmarshalRecord(payload)
		if err != nil {
			return imported, err
		}
		if err := storage.CheckRecord(rec); err != nil {
			return imported, fmt.Errorf("bundle: %s: %w", name, err)
		}
		if _, dup := seen[rec.TokenID]; dup {
			return imported, fmt.Errorf("bundle: duplicate record for token %d", rec.TokenID)
		}
		seen[rec.TokenID] = struct{}{}

		saved, err := store.Save(rec)
		if err != nil {
			return imported, err
		}
		if !saved.Equals(id) {
			return imported, storage.ErrCIDMismatch
		}
		imported = append(imported, rec.TokenID)
	}
}

type indexJSON struct {
	Version   int           `json:"version"`
	CIDCodec  string        `json:"cidCodec"`
	Multihash string        `json:"multihash"`
	Records   []indexRecord `json:"records"`
}

type indexRecord struct {
	Token uint64 `json:"token"`
	CID   string `json:"cid"`
	Size  int    `json:"size"`
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := io.Copy(tw, bytes.NewReader(content))
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return name
}
