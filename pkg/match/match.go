// Package match scores and ranks catalog styles against user preferences.
//
// Matching is a pure function: given the same preferences and catalog it
// always produces the same ranking, and it never fails; absent matches
// yield an empty result, not an error.
//
// # Scoring
//
// A style survives the filter when its name equals any entry of the
// user's style list, case-insensitively. Surviving styles are scored by
// counting intersections between the style's recommended colors/materials
// and the user's stated colors/materials (case-sensitive, as given), then
// sorted descending by score. The sort is stable: equally scored styles
// keep their catalog-relative order.
package match

import (
	"slices"

	"github.com/studiolane/roomcraft/pkg/design"
)

// Score returns the style match score: the number of the style's
// recommended colors present in the user's color scheme plus the number of
// its recommended materials present in the user's material list.
func Score(style design.DesignStyle, prefs design.StylePreferences) int {
	score := 0
	for _, c := range style.RecommendedColors {
		if slices.Contains(prefs.ColorScheme, c) {
			score++
		}
	}
	for _, m := range style.RecommendedMaterials {
		if slices.Contains(prefs.Materials, m) {
			score++
		}
	}
	return score
}

// Match filters the catalog to styles the user named and ranks them by
// score, highest first. Ties keep catalog order. The catalog is not
// modified; the result is a fresh slice.
func Match(prefs design.StylePreferences, catalog []design.DesignStyle) []design.DesignStyle {
	matched := make([]design.DesignStyle, 0, len(catalog))
	for _, style := range catalog {
		for _, want := range prefs.DesignStyle {
			if style.MatchesName(want) {
				matched = append(matched, style)
				break
			}
		}
	}

	slices.SortStableFunc(matched, func(a, b design.DesignStyle) int {
		return Score(b, prefs) - Score(a, prefs)
	})

	return matched
}
