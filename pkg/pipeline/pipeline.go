// Package pipeline provides the core recommendation pipeline for RoomCraft.
//
// This package implements the complete match → compose → budget pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Compose: Match catalog styles against preferences and build the
//     ordered recommendation list
//  2. Budget: Apply the per-item spending ceiling to furniture suggestions
//  3. Persist: Hand the superseding list back to the caller (session store,
//     CLI output)
//
// Recomputation is wholesale: each run replaces the previous recommendation
// list entirely, so results are memoizable by a hash of the inputs.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Preferences: prefs,
//	    Room:        room,
//	    Budget:      budget,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	recs := result.Recommendations
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/studiolane/roomcraft/pkg/budget"
	"github.com/studiolane/roomcraft/pkg/cache"
	"github.com/studiolane/roomcraft/pkg/design"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultRoomName is the room name used when none is given.
	DefaultRoomName = "Living Room"

	// DefaultRoomID is the fixed identifier of the starter room. A stable
	// ID keeps the inputs hash of defaulted options identical across runs
	// so cached results stay reachable.
	DefaultRoomID = "room-default"

	// DefaultRoomWidth is the default room width in feet.
	DefaultRoomWidth = 20.0

	// DefaultRoomLength is the default room length in feet.
	DefaultRoomLength = 15.0

	// DefaultRoomHeight is the default room height in feet.
	DefaultRoomHeight = 10.0

	// DefaultBudgetTotal is the default project budget.
	DefaultBudgetTotal = 25000.0

	// DefaultCurrency is the default budget currency.
	DefaultCurrency = "USD"
)

// DefaultAllocations returns the default budget split by category.
func DefaultAllocations() map[design.Category]float64 {
	return map[design.Category]float64{
		design.CategoryFurniture: 10000,
		design.CategoryDecor:     5000,
		design.CategoryMaterials: 7500,
		design.CategoryLabor:     2500,
	}
}

// DefaultPreferences returns the starter style preferences.
func DefaultPreferences() design.StylePreferences {
	return design.StylePreferences{
		DesignStyle: []string{"Modern", "Minimalist"},
		ColorScheme: []string{"#FFFFFF", "#000000", "#808080"},
		Materials:   []string{"wood", "metal", "glass"},
		Priorities:  []string{"functionality", "aesthetics"},
	}
}

// DefaultRoom returns the starter room.
func DefaultRoom() design.Room {
	return design.Room{
		ID:   DefaultRoomID,
		Name: DefaultRoomName,
		Dimensions: design.Dimensions{
			Width:  DefaultRoomWidth,
			Length: DefaultRoomLength,
			Height: DefaultRoomHeight,
		},
	}
}

// DefaultBudget returns the starter budget.
func DefaultBudget() design.Budget {
	return design.Budget{
		Total:     DefaultBudgetTotal,
		Allocated: DefaultAllocations(),
		Currency:  DefaultCurrency,
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the recommendation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Compose options
	Preferences design.StylePreferences `json:"preferences"`
	Room        design.Room             `json:"room"`
	Budget      design.Budget           `json:"budget"`

	// Policy holds the budget thresholds. Zero values take the defaults.
	Policy budget.Policy `json:"policy,omitempty"`

	// Catalog overrides the stock style catalog.
	Catalog []design.DesignStyle `json:"catalog,omitempty"`

	// SuggestFurniture appends a furniture recommendation derived from the
	// best-matched style's typical pieces.
	SuggestFurniture bool `json:"suggest_furniture,omitempty"`

	// SkipBudgetPass leaves the composed list un-derated.
	SkipBudgetPass bool `json:"skip_budget_pass,omitempty"`

	// Refresh bypasses the cache and forces recomputation.
	Refresh bool `json:"refresh,omitempty"`

	// Revision orders concurrent recomputations for the same session.
	// Zero means unordered (CLI one-shot usage).
	Revision uint64 `json:"revision,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Recommendations is the composed, budget-derated list.
	Recommendations []design.Recommendation

	// InputsHash is the content hash of the pipeline inputs.
	InputsHash string

	// Status classifies the budget after the run.
	Status budget.Status

	// Revision echoes the options revision for write ordering.
	Revision uint64

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the result came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecommendationCount int
	ItemsDropped        int
	ComposeTime         time.Duration
	BudgetTime          time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ComposeHit bool // Whether the recommendation list came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Room.ID == "" && o.Room.Name == "" && o.Room.Dimensions == (design.Dimensions{}) {
		o.Room = DefaultRoom()
	}
	if o.Budget.Total == 0 && len(o.Budget.Allocated) == 0 {
		o.Budget = DefaultBudget()
	}
	if len(o.Preferences.DesignStyle) == 0 && len(o.Preferences.ColorScheme) == 0 &&
		len(o.Preferences.Materials) == 0 {
		o.Preferences = DefaultPreferences()
	}
	if o.Policy == (budget.Policy{}) {
		o.Policy = budget.DefaultPolicy()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := design.ValidateRoom(o.Room); err != nil {
		return fmt.Errorf("invalid room: %w", err)
	}
	if err := design.ValidateBudget(o.Budget); err != nil {
		return fmt.Errorf("invalid budget: %w", err)
	}

	o.validated = true
	return nil
}

// RecommendationKeyOpts returns cache key options for the recommendation stage.
func (o *Options) RecommendationKeyOpts() cache.RecommendationKeyOpts {
	return cache.RecommendationKeyOpts{
		NearLimitFraction:   o.Policy.NearLimitFraction,
		ItemCeilingFraction: o.Policy.ItemCeilingFraction,
		FallbackConfidence:  o.Policy.FallbackConfidence,
	}
}

// inputs is the hashable subset of options that determines the result.
type inputs struct {
	Preferences      design.StylePreferences `json:"preferences"`
	Room             design.Room             `json:"room"`
	Budget           design.Budget           `json:"budget"`
	Catalog          []design.DesignStyle    `json:"catalog,omitempty"`
	SuggestFurniture bool                    `json:"suggest_furniture,omitempty"`
	SkipBudgetPass   bool                    `json:"skip_budget_pass,omitempty"`
}

// InputsHash hashes the result-determining inputs.
func (o *Options) InputsHash() (string, error) {
	return cache.HashJSON(inputs{
		Preferences:      o.Preferences,
		Room:             o.Room,
		Budget:           o.Budget,
		Catalog:          o.Catalog,
		SuggestFurniture: o.SuggestFurniture,
		SkipBudgetPass:   o.SkipBudgetPass,
	})
}
