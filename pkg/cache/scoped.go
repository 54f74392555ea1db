package cache

// ScopedKeyer wraps a Keyer with a prefix for per-session isolation.
// The server caches rendered floor plans under a per-session namespace
// so one session's plan never leaks into another's:
//
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RecommendationKey generates a prefixed key for recommendation caching.
func (k *ScopedKeyer) RecommendationKey(inputsHash string, opts RecommendationKeyOpts) string {
	return k.prefix + k.inner.RecommendationKey(inputsHash, opts)
}

// PlanKey generates a prefixed key for floor plan caching.
func (k *ScopedKeyer) PlanKey(roomHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(roomHash, opts)
}
