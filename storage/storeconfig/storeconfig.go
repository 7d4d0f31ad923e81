// Package storeconfig opens one or more registry backends from configuration.
//
// Callers still link the desired backends with blank imports.
package storeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"xdao.co/paint/storage"
	"xdao.co/paint/storage/registry"
)

// Config describes the backends to open.
//
// WritePolicy values:
//   - "first" (default): save only to the first backend; loads fall back in order
//   - "all": save to every backend and require CID equality (storage.ReplicatingStore)
//
// Example (TOML, as embedded in the paintd config):
//
//	[store]
//	write_policy = "all"
//
//	[[store.backends]]
//	name = "localfs"
//	config = { localfs-dir = "/var/lib/paint" }
//
//	[[store.backends]]
//	name = "grpc"
//	id = "replica"
//	config = { grpc-target = "10.0.0.2:7070" }
//
// Config values are backend-specific; keys mirror the backend's flag names.
type Config struct {
	WritePolicy string          `toml:"write_policy" json:"write_policy,omitempty"`
	Backends    []BackendConfig `toml:"backends" json:"backends"`
}

type BackendConfig struct {
	// Name is the registry backend name ("memory", "localfs", "grpc").
	Name string `toml:"name" json:"name"`
	// ID is an optional stable alias used in per-backend CID maps. Defaults to Name.
	ID     string            `toml:"id" json:"id,omitempty"`
	Config map[string]string `toml:"config" json:"config,omitempty"`
}

func (b BackendConfig) id() string {
	if b.ID != "" {
		return b.ID
	}
	return b.Name
}

// LoadFile reads a JSON config file.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, errors.New("storeconfig: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if len(c.Backends) == 0 {
		return errors.New("storeconfig: at least one backend is required")
	}
	seen := make(map[string]struct{}, len(c.Backends))
	for _, b := range c.Backends {
		if b.Name == "" {
			return errors.New("storeconfig: backend name is required")
		}
		if _, ok := seen[b.id()]; ok {
			return fmt.Errorf("storeconfig: duplicate backend id %q", b.id())
		}
		seen[b.id()] = struct{}{}
	}
	switch c.WritePolicy {
	case "", "first", "all":
		return nil
	default:
		return fmt.Errorf("storeconfig: invalid write_policy %q", c.WritePolicy)
	}
}

// Open opens the configured backends and combines them per WritePolicy.
//
// If preferred is non-empty, the matching backend (by name or id) is moved to
// the front and so receives writes under the "first" policy.
func (c Config) Open(usage registry.Usage, preferred string) (storage.Store, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	ordered := append([]BackendConfig(nil), c.Backends...)
	if preferred != "" {
		idx := -1
		for i := range ordered {
			if ordered[i].Name == preferred || ordered[i].ID == preferred {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, fmt.Errorf("storeconfig: preferred backend %q not found in config", preferred)
		}
		if idx != 0 {
			b := ordered[idx]
			copy(ordered[1:idx+1], ordered[0:idx])
			ordered[0] = b
		}
	}

	named := make([]storage.NamedStore, 0, len(ordered))
	closers := make([]func() error, 0, len(ordered))
	closeAll := func() error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	for _, b := range ordered {
		s, closeFn, err := registry.OpenWithConfig(b.Name, usage, b.Config)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("storeconfig: open %q: %w", b.id(), err)
		}
		named = append(named, storage.NamedStore{Name: b.id(), Store: s})
		if closeFn != nil {
			closers = append(closers, closeFn)
		}
	}

	if len(named) == 1 {
		return named[0].Store, closeAll, nil
	}
	if c.WritePolicy == "all" {
		return storage.ReplicatingStore{Backends: named}, closeAll, nil
	}
	stores := make([]storage.Store, 0, len(named))
	for _, n := range named {
		stores = append(stores, n.Store)
	}
	return storage.MultiStore{Stores: stores}, closeAll, nil
}
