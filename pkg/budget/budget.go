// Package budget tracks a total budget split across spending categories
// and filters recommendations against a per-item spending ceiling.
//
// # Model
//
// A budget has a total, a fixed set of categories (furniture, decor,
// materials, labor), and a currency. The sum of allocations is not
// capped at the total: over-allocation surfaces as a negative remaining
// value and an OverBudget status, never as an error: the system keeps
// operating while over budget.
//
// # Operations
//
//   - [Remaining]: total minus the sum of allocations (may be negative)
//   - [StatusOf]: OverBudget / NearLimit / WithinBudget classification
//   - [Reallocate]: atomically move an amount between two categories
//   - [FilterByBudget]: derate furniture recommendations whose items
//     exceed the per-item ceiling
//
// Reallocation is the only mutating operation, and it returns a new
// Budget value; the input is never modified. The thresholds driving
// StatusOf and FilterByBudget live in [Policy].
package budget

import (
	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
)

// Status classifies how a budget's remaining amount relates to its total.
type Status string

// Budget statuses.
const (
	StatusOverBudget   Status = "over_budget"
	StatusNearLimit    Status = "near_limit"
	StatusWithinBudget Status = "within_budget"
)

// Display returns the human-readable label for the status.
func (s Status) Display() string {
	switch s {
	case StatusOverBudget:
		return "Over Budget"
	case StatusNearLimit:
		return "Near Limit"
	default:
		return "Within Budget"
	}
}

// Remaining returns the unallocated amount: total minus the sum of all
// category allocations. A negative result signals over-budget, not an
// error.
func Remaining(b design.Budget) float64 {
	spent := 0.0
	for _, amount := range b.Allocated {
		spent += amount
	}
	return b.Total - spent
}

// StatusOf classifies the budget using the policy thresholds: OverBudget
// when remaining is negative, NearLimit when remaining is below
// total * NearLimitFraction, WithinBudget otherwise.
func StatusOf(b design.Budget, policy Policy) Status {
	remaining := Remaining(b)
	switch {
	case remaining < 0:
		return StatusOverBudget
	case remaining < b.Total*policy.NearLimitFraction:
		return StatusNearLimit
	default:
		return StatusWithinBudget
	}
}

// PercentSpent returns the share of the total allocated to the category,
// in percent. Zero-total budgets report zero.
func PercentSpent(b design.Budget, category design.Category) float64 {
	if b.Total == 0 {
		return 0
	}
	return b.Allocated[category] / b.Total * 100
}

// Reallocate moves amount from one category to another and returns the
// updated budget. The operation is atomic: on any failure the returned
// budget is the zero value and the input is untouched.
//
// Failure cases:
//   - unknown category on either side (INVALID_CATEGORY)
//   - negative amount (INVALID_INPUT)
//   - allocated[from] < amount (INSUFFICIENT_FUNDS)
//
// Moving between the same category is a legal no-op that still returns a
// fresh budget value. No upper bound is enforced on the destination
// category.
func Reallocate(b design.Budget, from, to design.Category, amount float64) (design.Budget, error) {
	if !design.ValidCategory(from) {
		return design.Budget{}, errors.New(errors.ErrCodeInvalidCategory, "unknown source category %q", from)
	}
	if !design.ValidCategory(to) {
		return design.Budget{}, errors.New(errors.ErrCodeInvalidCategory, "unknown destination category %q", to)
	}
	if amount < 0 {
		return design.Budget{}, errors.New(errors.ErrCodeInvalidInput, "amount must be non-negative, got %g", amount)
	}
	if b.Allocated[from] < amount {
		return design.Budget{}, errors.New(errors.ErrCodeInsufficientFunds,
			"insufficient funds in source category %s: have %g, need %g", from, b.Allocated[from], amount)
	}

	out := b.Clone()
	if from != to {
		out.Allocated[from] -= amount
		out.Allocated[to] += amount
	}
	return out, nil
}

// FilterByBudget applies the per-item spending ceiling to furniture
// recommendations: items priced above total * ItemCeilingFraction are
// dropped. When the filter empties a recommendation's item list, its
// confidence is forced down to FallbackConfidence instead of removing the
// recommendation. Recommendations of other kinds pass through unchanged.
//
// The input slice is not modified; the result preserves order.
func FilterByBudget(recs []design.Recommendation, total float64, policy Policy) []design.Recommendation {
	ceiling := total * policy.ItemCeilingFraction

	out := make([]design.Recommendation, len(recs))
	for i, rec := range recs {
		if rec.Kind != design.KindFurniture || rec.Items == nil {
			out[i] = rec
			continue
		}

		filtered := rec.Clone()
		affordable := filtered.Items[:0]
		for _, item := range filtered.Items {
			if item.Price <= ceiling {
				affordable = append(affordable, item)
			}
		}
		filtered.Items = affordable
		if len(affordable) == 0 {
			filtered.Confidence = policy.FallbackConfidence
		}
		out[i] = filtered
	}
	return out
}
