package budget

// Policy holds the allocator's threshold constants. The defaults are
// carried over from the original product behavior; they are exposed as
// named, overridable parameters rather than hard-coded.
type Policy struct {
	// NearLimitFraction is the share of the total below which remaining
	// budget is flagged NearLimit (remaining < total * fraction).
	NearLimitFraction float64

	// ItemCeilingFraction caps a single furniture item's price at
	// total * fraction during the budget filter pass.
	ItemCeilingFraction float64

	// FallbackConfidence replaces a furniture recommendation's confidence
	// when the budget filter empties its item list.
	FallbackConfidence float64
}

// Default policy values.
const (
	DefaultNearLimitFraction   = 0.10
	DefaultItemCeilingFraction = 0.20
	DefaultFallbackConfidence  = 0.5
)

// DefaultPolicy returns the standard threshold set.
func DefaultPolicy() Policy {
	return Policy{
		NearLimitFraction:   DefaultNearLimitFraction,
		ItemCeilingFraction: DefaultItemCeilingFraction,
		FallbackConfidence:  DefaultFallbackConfidence,
	}
}
