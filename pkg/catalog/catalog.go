// Package catalog provides the design style reference catalog.
//
// A catalog is an ordered list of [design.DesignStyle] entries with unique
// names. The stock catalog ships four built-in styles; additional styles
// can be loaded from TOML files and merged in, with duplicate names
// rejected at merge time.
//
// Catalog order is significant: the style matcher's stable sort preserves
// catalog-relative order between equally scored styles.
package catalog

import (
	"strings"

	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
)

// Stock returns the built-in style catalog.
//
// The returned slice is a fresh copy on every call so callers can append
// to it without affecting other users.
func Stock() []design.DesignStyle {
	return []design.DesignStyle{
		{
			Name:                 "Modern",
			Characteristics:      []string{"clean lines", "minimalist", "functional"},
			RecommendedColors:    []string{"#FFFFFF", "#000000", "#808080", "#A0A0A0"},
			RecommendedMaterials: []string{"glass", "metal", "concrete"},
			TypicalFurniture:     []string{"platform bed", "minimalist sofa", "geometric coffee table"},
		},
		{
			Name:                 "Traditional",
			Characteristics:      []string{"ornate", "classic", "symmetrical"},
			RecommendedColors:    []string{"#8B4513", "#DEB887", "#CD853F", "#D2B48C"},
			RecommendedMaterials: []string{"wood", "leather", "fabric"},
			TypicalFurniture:     []string{"wingback chair", "carved wood bed", "classic dresser"},
		},
		{
			Name:                 "Industrial",
			Characteristics:      []string{"raw", "urban", "utilitarian"},
			RecommendedColors:    []string{"#36454F", "#708090", "#A9A9A9", "#CD853F"},
			RecommendedMaterials: []string{"metal", "wood", "concrete", "brick"},
			TypicalFurniture:     []string{"metal bed frame", "leather sofa", "pipe shelving"},
		},
		{
			Name:                 "Scandinavian",
			Characteristics:      []string{"minimal", "natural", "light"},
			RecommendedColors:    []string{"#FFFFFF", "#F5F5F5", "#E6E6FA", "#B0C4DE"},
			RecommendedMaterials: []string{"light wood", "wool", "cotton"},
			TypicalFurniture:     []string{"simple bed", "organic shape chair", "minimal desk"},
		},
	}
}

// Find returns the style with the given name, matched case-insensitively.
// Unknown names simply fail to match: the second return is false and no
// error is raised.
func Find(styles []design.DesignStyle, name string) (design.DesignStyle, bool) {
	for _, s := range styles {
		if s.MatchesName(name) {
			return s, true
		}
	}
	return design.DesignStyle{}, false
}

// Validate checks the catalog uniqueness invariant: no two entries may
// share a name, compared case-insensitively.
func Validate(styles []design.DesignStyle) error {
	seen := make(map[string]string, len(styles))
	for _, s := range styles {
		if s.Name == "" {
			return errors.New(errors.ErrCodeInvalidCatalog, "catalog entry has empty name")
		}
		key := strings.ToLower(s.Name)
		if prev, ok := seen[key]; ok {
			return errors.New(errors.ErrCodeDuplicateStyle, "duplicate style name %q (conflicts with %q)", s.Name, prev)
		}
		seen[key] = s.Name
	}
	return nil
}

// Merge appends extra styles to base, preserving base order, and validates
// the combined catalog. The inputs are not modified.
func Merge(base, extra []design.DesignStyle) ([]design.DesignStyle, error) {
	merged := make([]design.DesignStyle, 0, len(base)+len(extra))
	merged = append(merged, base...)
	merged = append(merged, extra...)
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}
