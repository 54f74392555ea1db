package pipeline

import (
	"context"
	"testing"

	"github.com/studiolane/roomcraft/pkg/budget"
	"github.com/studiolane/roomcraft/pkg/cache"
	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
	"github.com/studiolane/roomcraft/pkg/session"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	if opts.Room.Name != DefaultRoomName {
		t.Errorf("Room.Name = %q, want %q", opts.Room.Name, DefaultRoomName)
	}
	if opts.Room.Dimensions.Width != DefaultRoomWidth || opts.Room.Dimensions.Length != DefaultRoomLength {
		t.Errorf("Room.Dimensions = %+v", opts.Room.Dimensions)
	}
	if opts.Budget.Total != DefaultBudgetTotal {
		t.Errorf("Budget.Total = %v, want %v", opts.Budget.Total, DefaultBudgetTotal)
	}
	if got := opts.Budget.Allocated[design.CategoryFurniture]; got != 10000 {
		t.Errorf("furniture allocation = %v, want 10000", got)
	}
	if len(opts.Preferences.DesignStyle) == 0 || opts.Preferences.DesignStyle[0] != "Modern" {
		t.Errorf("Preferences.DesignStyle = %v", opts.Preferences.DesignStyle)
	}
	if opts.Policy != budget.DefaultPolicy() {
		t.Errorf("Policy = %+v, want defaults", opts.Policy)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	room := opts.Room
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults error: %v", err)
	}
	if opts.Room.ID != room.ID {
		t.Error("second call should not re-generate the default room")
	}
}

func TestValidateAndSetDefaultsRejectsBadInputs(t *testing.T) {
	opts := Options{
		Room: design.Room{
			ID:         "r1",
			Name:       "Studio",
			Dimensions: design.Dimensions{Width: -1, Length: 10, Height: 8},
		},
	}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("negative room width should fail validation")
	}

	opts = Options{
		Budget: design.Budget{
			Total:     1000,
			Allocated: map[design.Category]float64{"vehicles": 100},
		},
	}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("unknown budget category should fail validation")
	}
}

func TestRecompute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Recompute(ctx, Options{})
	if err != nil {
		t.Fatalf("Recompute error: %v", err)
	}

	// Default prefs match Modern: color rec + material rec.
	if result.Stats.RecommendationCount != 2 {
		t.Fatalf("RecommendationCount = %d, want 2", result.Stats.RecommendationCount)
	}
	if result.Recommendations[0].Kind != design.KindColor {
		t.Errorf("first rec kind = %q, want color", result.Recommendations[0].Kind)
	}
	if result.Recommendations[1].Kind != design.KindMaterial {
		t.Errorf("second rec kind = %q, want material", result.Recommendations[1].Kind)
	}
	if result.InputsHash == "" {
		t.Error("InputsHash should be set")
	}
	if result.CacheInfo.ComposeHit {
		t.Error("first run should not hit the cache")
	}
	// 25000 total, 25000 allocated: remaining 0 is within the near-limit band.
	if result.Status != budget.StatusNearLimit {
		t.Errorf("Status = %v, want NearLimit", result.Status)
	}
}

func TestDefaultedInputsHashStable(t *testing.T) {
	if DefaultRoom().ID != DefaultRoom().ID {
		t.Fatal("DefaultRoom should carry a stable ID")
	}

	var a, b Options
	if err := a.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if err := b.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	hashA, err := a.InputsHash()
	if err != nil {
		t.Fatalf("InputsHash error: %v", err)
	}
	hashB, err := b.InputsHash()
	if err != nil {
		t.Fatalf("InputsHash error: %v", err)
	}
	if hashA != hashB {
		t.Errorf("defaulted options hash %q and %q, want identical", hashA, hashB)
	}
}

func TestRecomputeCaching(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	first, err := runner.Recompute(ctx, Options{})
	if err != nil {
		t.Fatalf("Recompute error: %v", err)
	}

	second, err := runner.Recompute(ctx, Options{})
	if err != nil {
		t.Fatalf("second Recompute error: %v", err)
	}
	if !second.CacheInfo.ComposeHit {
		t.Error("identical inputs should hit the cache")
	}
	if second.Recommendations[0].ID != first.Recommendations[0].ID {
		t.Error("cache hit should replay the previous result verbatim")
	}

	// Refresh bypasses the cache and mints fresh IDs.
	third, err := runner.Recompute(ctx, Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Recompute error: %v", err)
	}
	if third.CacheInfo.ComposeHit {
		t.Error("Refresh should bypass the cache")
	}
	if third.Recommendations[0].ID == first.Recommendations[0].ID {
		t.Error("Refresh should produce a fresh list")
	}

	// Different inputs miss.
	opts := Options{Preferences: design.StylePreferences{
		DesignStyle: []string{"Industrial"},
		ColorScheme: []string{"#36454F"},
	}}
	fourth, err := runner.Recompute(ctx, opts)
	if err != nil {
		t.Fatalf("Recompute error: %v", err)
	}
	if fourth.CacheInfo.ComposeHit {
		t.Error("changed preferences should miss the cache")
	}
}

func TestRecomputeSuggestFurniture(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Recompute(ctx, Options{SuggestFurniture: true})
	if err != nil {
		t.Fatalf("Recompute error: %v", err)
	}

	var furniture *design.Recommendation
	for i := range result.Recommendations {
		if result.Recommendations[i].Kind == design.KindFurniture {
			furniture = &result.Recommendations[i]
		}
	}
	if furniture == nil {
		t.Fatal("expected a furniture recommendation")
	}
	// Default pieces cost 500 each, well under the 25000 * 0.2 ceiling.
	if len(furniture.Items) != 3 {
		t.Errorf("furniture items = %d, want 3", len(furniture.Items))
	}
	if result.Stats.ItemsDropped != 0 {
		t.Errorf("ItemsDropped = %d, want 0", result.Stats.ItemsDropped)
	}
}

func TestRecomputeBudgetPassDropsExpensiveItems(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	// Total 1000: ceiling is 200, so the 500-priced defaults all drop and
	// the furniture recommendation falls back to the low confidence.
	opts := Options{
		SuggestFurniture: true,
		Budget: design.Budget{
			Total:    1000,
			Currency: "USD",
			Allocated: map[design.Category]float64{
				design.CategoryFurniture: 400,
			},
		},
	}
	result, err := runner.Recompute(ctx, opts)
	if err != nil {
		t.Fatalf("Recompute error: %v", err)
	}

	var furniture *design.Recommendation
	for i := range result.Recommendations {
		if result.Recommendations[i].Kind == design.KindFurniture {
			furniture = &result.Recommendations[i]
		}
	}
	if furniture == nil {
		t.Fatal("expected a furniture recommendation")
	}
	if len(furniture.Items) != 0 {
		t.Errorf("items over the ceiling should drop, got %d", len(furniture.Items))
	}
	if furniture.Confidence != budget.DefaultPolicy().FallbackConfidence {
		t.Errorf("confidence = %v, want fallback", furniture.Confidence)
	}
	if result.Stats.ItemsDropped != 3 {
		t.Errorf("ItemsDropped = %d, want 3", result.Stats.ItemsDropped)
	}

	// SkipBudgetPass keeps the composed list intact.
	opts.SkipBudgetPass = true
	result, err = runner.Recompute(ctx, opts)
	if err != nil {
		t.Fatalf("Recompute error: %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.Kind == design.KindFurniture && len(rec.Items) != 3 {
			t.Errorf("SkipBudgetPass should keep all items, got %d", len(rec.Items))
		}
	}
}

func TestRecomputeSession(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	store := session.NewMemoryStore()

	sess := session.New(session.Project{
		Preferences: DefaultPreferences(),
		Room:        DefaultRoom(),
		Budget:      DefaultBudget(),
	}, session.DefaultTTL)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	result, err := runner.RecomputeSession(ctx, store, sess, Options{})
	if err != nil {
		t.Fatalf("RecomputeSession error: %v", err)
	}
	if result.Revision != 2 {
		t.Errorf("Revision = %d, want 2", result.Revision)
	}

	stored, _ := store.Get(ctx, sess.ID)
	if len(stored.Project.Recommendations) != result.Stats.RecommendationCount {
		t.Error("recommendations should be committed to the session")
	}
}

func TestRecomputeSessionStaleLoses(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	store := session.NewMemoryStore()

	sess := session.New(session.Project{
		Preferences: DefaultPreferences(),
		Room:        DefaultRoom(),
		Budget:      DefaultBudget(),
	}, session.DefaultTTL)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Two recomputations race from the same snapshot.
	snapshotA := *sess
	snapshotB := *sess

	if _, err := runner.RecomputeSession(ctx, store, &snapshotA, Options{}); err != nil {
		t.Fatalf("first RecomputeSession error: %v", err)
	}

	_, err := runner.RecomputeSession(ctx, store, &snapshotB, Options{})
	if errors.GetCode(err) != errors.ErrCodeStaleRevision {
		t.Fatalf("stale recomputation = %v, want STALE_REVISION", err)
	}

	// The first writer's result survives.
	stored, _ := store.Get(ctx, sess.ID)
	if stored.Revision != 2 {
		t.Errorf("stored revision = %d, want 2", stored.Revision)
	}
}
