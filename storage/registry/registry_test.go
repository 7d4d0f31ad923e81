package registry

import (
	"flag"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/paint/storage"
)

type nopStore struct{}

func (nopStore) Load(uint64) (storage.Record, error)   { return storage.Record{}, storage.ErrNotFound }
func (nopStore) Save(storage.Record) (cid.Cid, error) { return cid.Undef, nil }
func (nopStore) Has(uint64) bool                      { return false }

func testBackend(name string, usage Usage, got *map[string]string) Backend {
	return Backend{
		Name:          name,
		Usage:         usage,
		RegisterFlags: func(fs *flag.FlagSet) { fs.String(name+"-opt", "", "") },
		Open:          func() (storage.Store, func() error, error) { return nopStore{}, nil, nil },
		OpenConfig: func(cfg map[string]string) (storage.Store, func() error, error) {
			*got = cfg
			return nopStore{}, nil, nil
		},
	}
}

func TestRegister_RejectsIncompleteAndDuplicate(t *testing.T) {
	if err := Register(Backend{}); err == nil {
		t.Fatalf("expected error for empty backend")
	}
	var cfg map[string]string
	b := testBackend("regtest-dup", UsageCLI, &cfg)
	if err := Register(b); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := Register(b); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestOpenWithConfig_RespectsUsage(t *testing.T) {
	var cfg map[string]string
	if err := Register(testBackend("regtest-daemon", UsageDaemon, &cfg)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := OpenWithConfig("regtest-daemon", UsageCLI, nil); err == nil {
		t.Fatalf("expected usage mismatch error")
	}
	if _, _, err := OpenWithConfig("regtest-missing", UsageDaemon, nil); err == nil {
		t.Fatalf("expected unknown backend error")
	}

	s, _, err := OpenWithConfig("regtest-daemon", UsageDaemon, map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("OpenWithConfig: %v", err)
	}
	if s == nil || cfg["k"] != "v" {
		t.Fatalf("config not passed through: %v", cfg)
	}

	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	RegisterFlags(fs, UsageDaemon)
	if fs.Lookup("regtest-daemon-opt") == nil {
		t.Fatalf("daemon backend flags not registered")
	}
	found := false
	for _, n := range Names(UsageDaemon) {
		if n == "regtest-daemon" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Names missing regtest-daemon")
	}
}
