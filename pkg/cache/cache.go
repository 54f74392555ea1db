// Package cache provides caching for recomputed recommendation results and
// rendered floor plans.
//
// Recomputation is deterministic: the same preferences, room, budget, and
// policy always produce the same recommendation list (modulo freshly minted
// IDs). That makes results safe to memoize keyed on a hash of the inputs.
//
// # Backends
//
//   - MemoryCache: in-process, TTL-aware. Default for the server.
//   - FileCache: on-disk entries with expiration metadata. Default for the CLI.
//   - NullCache: stores nothing. Caching disabled.
//
// Keys are produced by a Keyer so the key schema lives in one place and
// scoped (per-session) namespaces compose over any inner keyer.
package cache

import (
	"context"
	"time"
)

// TTLs per cacheable stage. Recomputed results and plan artifacts are
// cheap to rebuild; an hour keeps repeated CLI runs and plan fetches
// warm without holding stale layouts for long.
const (
	TTLRecommendation = 1 * time.Hour
	TTLPlan           = 1 * time.Hour
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RecommendationKeyOpts captures the budget policy knobs that affect a
// recommendation result. Two recomputations with the same input hash but
// different policies must not share a cache entry.
type RecommendationKeyOpts struct {
	NearLimitFraction   float64 `json:"near_limit_fraction"`
	ItemCeilingFraction float64 `json:"item_ceiling_fraction"`
	FallbackConfidence  float64 `json:"fallback_confidence"`
}

// PlanKeyOpts captures the rendering parameters that affect a floor plan
// artifact. A zero GridSpacing means no grid layer.
type PlanKeyOpts struct {
	PixelsPerUnit float64 `json:"pixels_per_unit"`
	GridSpacing   float64 `json:"grid_spacing"`
	Labels        bool    `json:"labels"`
}

// Keyer generates cache keys for the cacheable stages.
type Keyer interface {
	// RecommendationKey generates a key for a composed and budget-derated
	// recommendation list. inputsHash is a hash over the preferences, room,
	// and budget.
	RecommendationKey(inputsHash string, opts RecommendationKeyOpts) string

	// PlanKey generates a key for a rendered floor plan. roomHash is a hash
	// over the room state.
	PlanKey(roomHash string, opts PlanKeyOpts) string
}

// DefaultKeyer is the standard key schema.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RecommendationKey generates a key for recommendation caching.
func (k *DefaultKeyer) RecommendationKey(inputsHash string, opts RecommendationKeyOpts) string {
	return hashKey("rec", inputsHash, opts)
}

// PlanKey generates a key for floor plan caching.
func (k *DefaultKeyer) PlanKey(roomHash string, opts PlanKeyOpts) string {
	return hashKey("plan", roomHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
