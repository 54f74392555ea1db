package design

import (
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// Preferences
// =============================================================================

// StylePreferences captures the user's stated design preferences.
//
// All lists are ordered and intentionally never deduplicated: a style or
// color listed twice legitimately weights the preference. Preferences are
// immutable once captured for a scoring pass.
type StylePreferences struct {
	DesignStyle []string `json:"design_style"`
	ColorScheme []string `json:"color_scheme"`
	Materials   []string `json:"materials"`
	Priorities  []string `json:"priorities"`
}

// PrimaryColor returns the first preferred color, or "" when none is set.
func (p StylePreferences) PrimaryColor() string {
	if len(p.ColorScheme) == 0 {
		return ""
	}
	return p.ColorScheme[0]
}

// =============================================================================
// Catalog Entry
// =============================================================================

// DesignStyle is a read-only catalog entry describing a named design style.
// Entries are defined at process start and never mutated; Name is the
// unique key within a catalog.
type DesignStyle struct {
	Name                 string   `json:"name"`
	Characteristics      []string `json:"characteristics"`
	RecommendedColors    []string `json:"recommended_colors"`
	RecommendedMaterials []string `json:"recommended_materials"`
	TypicalFurniture     []string `json:"typical_furniture"`
}

// MatchesName reports whether name equals the style name, case-insensitively.
func (s DesignStyle) MatchesName(name string) bool {
	return strings.EqualFold(s.Name, name)
}

// =============================================================================
// Room Model
// =============================================================================

// Dimensions is a width/length/height triple in feet. All components must
// be positive for rooms and furniture.
type Dimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// Position locates a furniture item in room-plane coordinates.
// Rotation is in degrees and is ignored for footprint checks.
type Position struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
}

// FurnitureItem is a placeable object owned exclusively by the Room that
// contains it. Its position is mutated only through the spatial engine's
// commit path.
type FurnitureItem struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Dimensions Dimensions `json:"dimensions"`
	Position   Position   `json:"position"`
	Price      float64    `json:"price"`
	Material   string     `json:"material,omitempty"`
	Color      string     `json:"color,omitempty"`
}

// Window is an opening in a wall.
type Window struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Door types.
const (
	DoorSingle  = "single"
	DoorDouble  = "double"
	DoorSliding = "sliding"
)

// Door is a doorway in a wall.
type Door struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Type   string  `json:"type"`
}

// Wall describes one wall of a room: its finish plus any openings.
type Wall struct {
	ID      string   `json:"id"`
	Color   string   `json:"color"`
	Texture string   `json:"texture,omitempty"`
	Windows []Window `json:"windows"`
	Doors   []Door   `json:"doors"`
}

// Room is a rectangular room with an ordered collection of furniture.
//
// Invariant: after any committed update, every item's footprint lies
// within [0, Width] x [0, Length].
type Room struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Dimensions Dimensions      `json:"dimensions"`
	Items      []FurnitureItem `json:"items"`
	Walls      []Wall          `json:"walls"`
}

// ItemIndex returns the index of the item with the given ID, or -1.
func (r Room) ItemIndex(itemID string) int {
	for i, it := range r.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the room. Item and wall slices are copied
// so the clone shares no mutable state with the original.
func (r Room) Clone() Room {
	out := r
	out.Items = make([]FurnitureItem, len(r.Items))
	copy(out.Items, r.Items)
	out.Walls = make([]Wall, len(r.Walls))
	for i, w := range r.Walls {
		out.Walls[i] = w
		out.Walls[i].Windows = make([]Window, len(w.Windows))
		copy(out.Walls[i].Windows, w.Windows)
		out.Walls[i].Doors = make([]Door, len(w.Doors))
		copy(out.Walls[i].Doors, w.Doors)
	}
	return out
}

// =============================================================================
// Budget
// =============================================================================

// Category identifies one of the fixed spending categories.
type Category string

// The fixed set of budget categories.
const (
	CategoryFurniture Category = "furniture"
	CategoryDecor     Category = "decor"
	CategoryMaterials Category = "materials"
	CategoryLabor     Category = "labor"
)

// Categories lists all budget categories in display order.
var Categories = []Category{CategoryFurniture, CategoryDecor, CategoryMaterials, CategoryLabor}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Budget tracks a total budget split across the fixed categories.
//
// The sum of allocations is not constrained to the total: over-allocation
// is surfaced as a negative remaining value, not rejected.
type Budget struct {
	Total     float64              `json:"total"`
	Allocated map[Category]float64 `json:"allocated"`
	Currency  string               `json:"currency"`
}

// Clone returns a deep copy of the budget.
func (b Budget) Clone() Budget {
	out := b
	out.Allocated = make(map[Category]float64, len(b.Allocated))
	for k, v := range b.Allocated {
		out.Allocated[k] = v
	}
	return out
}

// =============================================================================
// ID Generation
// =============================================================================

// NewID returns a fresh unique identifier for domain objects.
func NewID() string {
	return uuid.NewString()
}
