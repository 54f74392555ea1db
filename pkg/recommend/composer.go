// Package recommend composes ranked design recommendations from user
// preferences and room state.
//
// The [Composer] is an explicitly constructed, dependency-injected
// component: it holds its catalog and pluggable hooks rather than living
// as a package singleton, so isolated per-session instances are cheap to
// create in tests and servers.
//
// Composition is budget-unaware by contract. Budget derating
// (budget.FilterByBudget) is a separate, explicit pass applied by the
// caller after composition.
package recommend

import (
	"fmt"
	"strings"

	"github.com/studiolane/roomcraft/pkg/catalog"
	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/match"
)

// Composition confidences. Fixed values carried over from the original
// product behavior.
const (
	ColorConfidence    = 0.85
	LayoutConfidence   = 0.75
	MaterialConfidence = 0.9

	// FurnitureConfidence applies to style-derived furniture picks. These
	// are defaults rather than observed behavior, so they rank below the
	// material suggestions.
	FurnitureConfidence = 0.8
)

// Defaults for style-derived furniture suggestions.
const (
	styleFurnitureWidth  = 2.0
	styleFurnitureLength = 2.0
	styleFurnitureHeight = 1.0
	styleFurniturePrice  = 500.0
)

// HarmonyFunc expands a primary color into a harmonious palette.
type HarmonyFunc func(primary string) []string

// LayoutFunc derives a candidate furniture arrangement for a room.
// Returning an empty slice suppresses the layout recommendation.
type LayoutFunc func(room design.Room) []design.FurnitureItem

// SingletonHarmony is the default harmony expansion: the primary color
// alone. Real color-theory computation is an extension point.
func SingletonHarmony(primary string) []string {
	return []string{primary}
}

// NoLayout is the default layout derivation: no suggested arrangement.
// Full layout synthesis (collision resolution, traffic flow) is an
// extension point.
func NoLayout(design.Room) []design.FurnitureItem {
	return nil
}

// Composer builds recommendation lists from preferences and room state.
type Composer struct {
	catalog []design.DesignStyle
	harmony HarmonyFunc
	layout  LayoutFunc
}

// Option configures a Composer.
type Option func(*Composer)

// WithHarmony overrides the harmony expansion function.
func WithHarmony(fn HarmonyFunc) Option {
	return func(c *Composer) {
		if fn != nil {
			c.harmony = fn
		}
	}
}

// WithLayout overrides the layout derivation function.
func WithLayout(fn LayoutFunc) Option {
	return func(c *Composer) {
		if fn != nil {
			c.layout = fn
		}
	}
}

// New creates a Composer over the given catalog. A nil catalog falls back
// to the stock catalog.
func New(styles []design.DesignStyle, opts ...Option) *Composer {
	c := &Composer{
		catalog: styles,
		harmony: SingletonHarmony,
		layout:  NoLayout,
	}
	if c.catalog == nil {
		c.catalog = catalog.Stock()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the composer's style catalog.
func (c *Composer) Catalog() []design.DesignStyle {
	return c.catalog
}

// Compose produces a fresh, ordered recommendation list. Steps run in a
// fixed order and only ever append:
//
//  1. A color recommendation from the first preferred color (when the
//     color scheme is non-empty), confidence 0.85.
//  2. A layout recommendation when the layout derivation yields items,
//     confidence 0.75.
//  3. One material recommendation per matched style, in match order,
//     confidence 0.9.
//
// Compose never fails: empty preferences yield an empty (or shorter)
// list. The result supersedes any previous list wholesale.
func (c *Composer) Compose(prefs design.StylePreferences, room design.Room) []design.Recommendation {
	var recs []design.Recommendation

	if primary := prefs.PrimaryColor(); primary != "" {
		recs = append(recs, design.NewColorRecommendation(
			"Harmonious Color Palette",
			"Based on your color preferences and design principles",
			ColorConfidence,
			c.harmony(primary),
		))
	}

	if layout := c.layout(room); len(layout) > 0 {
		recs = append(recs, design.NewLayoutRecommendation(
			"Optimal Furniture Layout",
			"Maximizes space utilization and flow",
			LayoutConfidence,
			layout,
		))
	}

	for _, style := range match.Match(prefs, c.catalog) {
		recs = append(recs, design.NewMaterialRecommendation(
			fmt.Sprintf("%s Style Elements", style.Name),
			fmt.Sprintf("Matches your preference for %s design", strings.ToLower(style.Name)),
			MaterialConfidence,
		))
	}

	return recs
}

// SuggestFurniture builds a furniture recommendation from the best-matched
// style's typical pieces. The second return is false when no style matches
// or the matched style lists no furniture.
func (c *Composer) SuggestFurniture(prefs design.StylePreferences) (design.Recommendation, bool) {
	matched := match.Match(prefs, c.catalog)
	if len(matched) == 0 {
		return design.Recommendation{}, false
	}

	items := c.StyleFurniture(matched[0].Name)
	if len(items) == 0 {
		return design.Recommendation{}, false
	}

	return design.NewFurnitureRecommendation(
		fmt.Sprintf("%s Furniture Picks", matched[0].Name),
		fmt.Sprintf("Typical pieces for %s interiors", strings.ToLower(matched[0].Name)),
		FurnitureConfidence,
		items,
	), true
}

// StyleFurniture returns the named style's typical furniture as concrete
// items, each with a default footprint and price and the style's first
// recommended material attached. Unknown style names yield an empty
// result, not an error.
func (c *Composer) StyleFurniture(styleName string) []design.FurnitureItem {
	style, ok := catalog.Find(c.catalog, styleName)
	if !ok {
		return nil
	}

	material := ""
	if len(style.RecommendedMaterials) > 0 {
		material = style.RecommendedMaterials[0]
	}

	items := make([]design.FurnitureItem, len(style.TypicalFurniture))
	for i, name := range style.TypicalFurniture {
		items[i] = design.FurnitureItem{
			ID:   design.NewID(),
			Name: name,
			Type: design.KindFurniture,
			Dimensions: design.Dimensions{
				Width:  styleFurnitureWidth,
				Length: styleFurnitureLength,
				Height: styleFurnitureHeight,
			},
			Price:    styleFurniturePrice,
			Material: material,
		}
	}
	return items
}
