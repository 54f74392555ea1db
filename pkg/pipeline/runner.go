package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/studiolane/roomcraft/pkg/budget"
	"github.com/studiolane/roomcraft/pkg/cache"
	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
	"github.com/studiolane/roomcraft/pkg/observability"
	"github.com/studiolane/roomcraft/pkg/recommend"
	"github.com/studiolane/roomcraft/pkg/session"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Recompute runs the complete compose → budget pipeline with caching.
//
// A cache hit replays the previous result byte for byte, recommendation IDs
// included. Set opts.Refresh to force fresh composition.
func (r *Runner) Recompute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	inputsHash, err := opts.InputsHash()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash inputs")
	}

	result := &Result{
		InputsHash: inputsHash,
		Revision:   opts.Revision,
		Status:     budget.StatusOf(opts.Budget, opts.Policy),
	}

	cacheKey := r.Keyer.RecommendationKey(inputsHash, opts.RecommendationKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var recs []design.Recommendation
			if err := json.Unmarshal(data, &recs); err == nil {
				observability.Cache().OnCacheHit(ctx, "recommendations")
				result.Recommendations = recs
				result.Stats.RecommendationCount = len(recs)
				result.CacheInfo.ComposeHit = true
				return result, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "recommendations")
	}

	// Stage 1: Compose
	composeStart := time.Now()
	observability.Engine().OnComposeStart(ctx, opts.Room.Name)

	composer := recommend.New(opts.Catalog)
	recs := composer.Compose(opts.Preferences, opts.Room)
	if opts.SuggestFurniture {
		if rec, ok := composer.SuggestFurniture(opts.Preferences); ok {
			recs = append(recs, rec)
		}
	}

	result.Stats.ComposeTime = time.Since(composeStart)
	observability.Engine().OnComposeComplete(ctx, len(recs), result.Stats.ComposeTime, nil)

	r.Logger.Info("composed recommendations",
		"count", len(recs),
		"room", opts.Room.Name,
		"duration", result.Stats.ComposeTime)

	// Stage 2: Budget derating
	if !opts.SkipBudgetPass {
		budgetStart := time.Now()
		before := countItems(recs)
		recs = budget.FilterByBudget(recs, opts.Budget.Total, opts.Policy)
		kept := countItems(recs)

		result.Stats.ItemsDropped = before - kept
		result.Stats.BudgetTime = time.Since(budgetStart)
		observability.Engine().OnBudgetPass(ctx, string(design.CategoryFurniture), kept, before-kept)

		r.Logger.Info("applied budget ceiling",
			"kept_items", kept,
			"dropped_items", before-kept,
			"status", result.Status.Display(),
			"duration", result.Stats.BudgetTime)
	}

	result.Recommendations = recs
	result.Stats.RecommendationCount = len(recs)

	// Cache the result
	if data, err := json.Marshal(recs); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRecommendation)
		observability.Cache().OnCacheSet(ctx, "recommendations", len(data))
	}

	return result, nil
}

// RecomputeSession recomputes from a session's project and commits the new
// recommendation list back to the store.
//
// Writes are ordered by revision: the session is touched before saving, and
// a racing newer write makes the store reject this one, in which case the
// stale result is discarded and ErrCodeStaleRevision is returned. The newer
// result stays in place either way.
func (r *Runner) RecomputeSession(ctx context.Context, store session.Store, sess *session.Session, opts Options) (*Result, error) {
	opts.Preferences = sess.Project.Preferences
	opts.Room = sess.Project.Room
	opts.Budget = sess.Project.Budget
	opts.Revision = sess.Revision

	result, err := r.Recompute(ctx, opts)
	if err != nil {
		return nil, err
	}

	sess.Project.Recommendations = result.Recommendations
	sess.Touch()
	if err := store.Set(ctx, sess); err != nil {
		if stderrors.Is(err, session.ErrStale) {
			return nil, errors.Wrap(errors.ErrCodeStaleRevision, err, "discarding stale recomputation")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "save session")
	}

	result.Revision = sess.Revision
	return result, nil
}

// countItems sums the suggested items across furniture recommendations.
func countItems(recs []design.Recommendation) int {
	n := 0
	for _, rec := range recs {
		if rec.Kind == design.KindFurniture {
			n += len(rec.Items)
		}
	}
	return n
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
