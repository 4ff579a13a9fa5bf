// Package config holds the single runtime-flexible configuration record
// the cryptographic engine is driven by (spec §9: "Runtime-flexible
// configuration objects").
//
// The teacher's cmd/auctiond/config.go is a JSON-backed struct with
// DefaultConfig/LoadConfig/SaveConfig/Validate; this generalizes the same
// Default()/Validate() shape to the engine's actual three knobs instead of
// auction-daemon fields, and drops file persistence since the core holds
// no on-disk state (spec §6).
package config

import (
	"errors"
	"fmt"

	"github.com/craft-ec/cloakcraft-sub003/boundary"
)

// CachePolicy selects how proof.ArtifactCache's circuit-artifact cache is
// bounded (spec §5: "a bounded cache (configurable, default unbounded per
// session) keeps artifact pairs keyed by circuit").
type CachePolicy struct {
	// Unbounded, when true, never evicts cached artifacts.
	Unbounded bool
	// MaxEntries bounds the cache to an LRU of this size. Ignored if
	// Unbounded is true. Zero with Unbounded false is invalid.
	MaxEntries int
}

// Unbounded is the default cache policy: never evict.
func Unbounded() CachePolicy { return CachePolicy{Unbounded: true} }

// SizedLRU bounds the circuit-artifact cache to n entries.
func SizedLRU(n int) CachePolicy { return CachePolicy{MaxEntries: n} }

// Config is the engine's configuration record; its CachePolicy is what
// proof.NewArtifactCache consumes. ArtifactRoot is a filesystem path or URL the
// ProverBackend resolves circuit artifacts against; the engine itself
// never dereferences it.
type Config struct {
	ArtifactRoot  string
	ProverBackend boundary.ProverBackend
	CachePolicy   CachePolicy
}

// Default returns a Config with an unbounded cache policy and no prover
// backend configured; callers must set ProverBackend before use.
func Default() Config {
	return Config{CachePolicy: Unbounded()}
}

// Validate checks the configuration is usable. It does not reach out to
// ArtifactRoot (the engine treats it as opaque until handed to the
// ProverBackend).
func (c Config) Validate() error {
	if c.ArtifactRoot == "" {
		return errors.New("config: artifact_root must be set")
	}
	if c.ProverBackend == nil {
		return errors.New("config: prover_backend must be set")
	}
	if !c.CachePolicy.Unbounded && c.CachePolicy.MaxEntries <= 0 {
		return fmt.Errorf("config: cache_policy must be unbounded or have a positive max_entries, got %d", c.CachePolicy.MaxEntries)
	}
	return nil
}
