// Package localfs stores token records on the local filesystem.
//
// Layout under the root directory:
//
//	blocks/<cid[:2]>/<cid>  immutable canonical record encodings, keyed by CID
//	heads/<tokenId>         the CID of the token's current record
//
// A save writes the block first and then atomically replaces the head, so a
// reader sees either the previous record or the new one.
package localfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ipfs/go-cid"

	"xdao.co/paint/cidutil"
	"xdao.co/paint/storage"
)

// Store is a filesystem-backed token store. It never uses the network and
// never depends on wall-clock time.
type Store struct {
	root string
}

var (
	_ storage.Store  = (*Store)(nil)
	_ storage.Lister = (*Store)(nil)
)

// New constructs a store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	for _, dir := range []string{root, filepath.Join(root, "blocks"), filepath.Join(root, "heads")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Save(r storage.Record) (cid.Cid, error) {
	b := storage.MarshalRecord(r)
	id, err := s.putBlock(b)
	if err != nil {
		return cid.Undef, err
	}
	if err := s.writeHead(r.TokenID, id); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

func (s *Store) Load(tokenID uint64) (storage.Record, error) {
	id, err := s.Head(tokenID)
	if err != nil {
		return storage.Record{}, err
	}
	b, err := s.Block(id)
	if err != nil {
		return storage.Record{}, err
	}
	r, err := storage.UnmarshalRecord(b)
	if err != nil {
		return storage.Record{}, err
	}
	if r.TokenID != tokenID {
		return storage.Record{}, fmt.Errorf("%w: head %d points at record for token %d", storage.ErrMalformed, tokenID, r.TokenID)
	}
	return r, nil
}

func (s *Store) Has(tokenID uint64) bool {
	_, err := os.Stat(s.headPath(tokenID))
	return err == nil
}

// Tokens lists tokens with a head, ascending.
func (s *Store) Tokens() ([]uint64, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "heads"))
	if err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		id, err := strconv.ParseUint(e.Name(), 10, 64)
		if err != nil {
			// Temp files from interrupted saves.
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Head returns the CID of the token's current record.
func (s *Store) Head(tokenID uint64) (cid.Cid, error) {
	b, err := os.ReadFile(s.headPath(tokenID))
	if err != nil {
		if os.IsNotExist(err) {
			return cid.Undef, storage.ErrNotFound
		}
		return cid.Undef, err
	}
	id, err := cid.Decode(strings.TrimSpace(string(b)))
	if err != nil || !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}
	return id, nil
}

// Block reads a record block and verifies it against id.
func (s *Store) Block(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	b, err := os.ReadFile(s.blockPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if err := cidutil.Verify(b, id); err != nil {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (s *Store) putBlock(b []byte) (cid.Cid, error) {
	id, err := cidutil.Sum(b)
	if err != nil {
		return cid.Undef, err
	}

	path := s.blockPath(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			existing, rerr := s.Block(id)
			if rerr != nil || string(existing) != string(b) {
				// An unreadable or corrupted block is never repaired in place.
				return cid.Undef, storage.ErrImmutable
			}
			return id, nil
		}
		return cid.Undef, err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return cid.Undef, err
	}
	return id, nil
}

func (s *Store) writeHead(tokenID uint64, id cid.Cid) error {
	dir := filepath.Join(s.root, "heads")
	f, err := os.CreateTemp(dir, ".head-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.WriteString(id.String() + "\n"); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.headPath(tokenID)); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (s *Store) headPath(tokenID uint64) string {
	return filepath.Join(s.root, "heads", strconv.FormatUint(tokenID, 10))
}

func (s *Store) blockPath(id cid.Cid) string {
	v := id.String()
	return filepath.Join(s.root, "blocks", v[:2], v)
}
