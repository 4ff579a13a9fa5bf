package proof

import (
	"github.com/craft-ec/cloakcraft-sub003/config"
	"github.com/craft-ec/cloakcraft-sub003/internal/lrucache"
)

// ArtifactCache memoises opaque circuit artifacts (proving/verifying key
// material, whatever shape the configured ProverBackend wants) keyed by
// circuit name, bounded per config.CachePolicy (spec §5).
type ArtifactCache struct {
	cache *lrucache.Cache
}

// NewArtifactCache builds a cache honouring policy.
func NewArtifactCache(policy config.CachePolicy) *ArtifactCache {
	if policy.Unbounded {
		return &ArtifactCache{cache: lrucache.New(0)}
	}
	return &ArtifactCache{cache: lrucache.New(policy.MaxEntries)}
}

// Get returns the memoised artifact for circuitName, if loaded.
func (c *ArtifactCache) Get(circuitName string) (any, bool) {
	return c.cache.Get(circuitName)
}

// Put memoises artifact under circuitName.
func (c *ArtifactCache) Put(circuitName string, artifact any) {
	c.cache.Put(circuitName, artifact)
}

// Clear evicts every memoised artifact, e.g. on wallet switch.
func (c *ArtifactCache) Clear() {
	c.cache.Clear()
}
