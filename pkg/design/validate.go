package design

import (
	"github.com/studiolane/roomcraft/pkg/errors"
)

// ValidateDimensions checks that all components are strictly positive.
func ValidateDimensions(d Dimensions) error {
	if d.Width <= 0 || d.Length <= 0 || d.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions,
			"dimensions must be positive: %gx%gx%g", d.Width, d.Length, d.Height)
	}
	return nil
}

// ValidateRoom checks room structural integrity:
//   - positive dimensions
//   - positive item dimensions and non-negative prices
//   - every item footprint inside [0, Width] x [0, Length]
func ValidateRoom(r Room) error {
	if err := ValidateDimensions(r.Dimensions); err != nil {
		return err
	}

	for _, it := range r.Items {
		if it.Dimensions.Width <= 0 || it.Dimensions.Length <= 0 || it.Dimensions.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidDimensions,
				"item %q has non-positive dimensions", it.ID)
		}
		if it.Price < 0 {
			return errors.New(errors.ErrCodeInvalidInput,
				"item %q has negative price %g", it.ID, it.Price)
		}
		if it.Position.X < 0 || it.Position.Y < 0 ||
			it.Position.X+it.Dimensions.Width > r.Dimensions.Width ||
			it.Position.Y+it.Dimensions.Length > r.Dimensions.Length {
			return errors.New(errors.ErrCodeInvalidInput,
				"item %q footprint extends outside the room", it.ID)
		}
	}

	return nil
}

// ValidateBudget checks that the total and every allocation is non-negative
// and that every allocated category is one of the fixed categories. The sum
// of allocations is deliberately NOT checked against the total: over-budget
// is a reported condition, not an invalid state.
func ValidateBudget(b Budget) error {
	if b.Total < 0 {
		return errors.New(errors.ErrCodeInvalidBudget, "total must be non-negative, got %g", b.Total)
	}
	for cat, amount := range b.Allocated {
		if !ValidCategory(cat) {
			return errors.New(errors.ErrCodeInvalidCategory, "unknown category %q", cat)
		}
		if amount < 0 {
			return errors.New(errors.ErrCodeInvalidBudget,
				"allocation for %s must be non-negative, got %g", cat, amount)
		}
	}
	return nil
}
