// Package server exposes the recommendation engine over HTTP.
//
// The API is a thin JSON facade: every endpoint resolves a session,
// applies one engine operation, and commits the result back through the
// session store. Concurrent writers are ordered by revision: each
// response carries the committed revision in the X-Revision header, and
// a write based on an older revision is rejected with 409 so the newer
// layout wins.
//
// # Routes
//
//	GET  /api/v1/styles                              catalog listing
//	POST /api/v1/sessions                            create a session
//	GET  /api/v1/sessions/{sessionID}                fetch a session
//	POST /api/v1/recommendations                     recompute recommendations
//	POST /api/v1/rooms/{roomID}/items/{itemID}/move  move a furniture item
//	POST /api/v1/budget/reallocate                   move funds between categories
//	GET  /api/v1/plan.svg                            rendered floor plan
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studiolane/roomcraft/pkg/budget"
	"github.com/studiolane/roomcraft/pkg/cache"
	"github.com/studiolane/roomcraft/pkg/catalog"
	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
	"github.com/studiolane/roomcraft/pkg/observability"
	"github.com/studiolane/roomcraft/pkg/pipeline"
	"github.com/studiolane/roomcraft/pkg/render"
	"github.com/studiolane/roomcraft/pkg/session"
	"github.com/studiolane/roomcraft/pkg/spatial"
)

// Header names used by the revision protocol.
const (
	HeaderSessionID = "X-Session-ID"
	HeaderRevision  = "X-Revision"
)

// shutdownTimeout bounds graceful shutdown on context cancellation.
const shutdownTimeout = 5 * time.Second

// Config holds the server dependencies. Zero-value fields get defaults:
// an in-memory store, an uncached runner, the stock catalog, and a
// silent logger.
type Config struct {
	Addr    string
	Store   session.Store
	Runner  *pipeline.Runner
	Catalog []design.DesignStyle
	Logger  *log.Logger
}

// Server is the HTTP facade over the engine.
type Server struct {
	store   session.Store
	runner  *pipeline.Runner
	catalog []design.DesignStyle
	logger  *log.Logger
	addr    string
	router  chi.Router
}

// New creates a server, filling in defaults for missing dependencies.
func New(cfg Config) *Server {
	s := &Server{
		store:   cfg.Store,
		runner:  cfg.Runner,
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
		addr:    cfg.Addr,
	}
	if s.store == nil {
		s.store = session.NewMemoryStore()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if s.catalog == nil {
		s.catalog = catalog.Stock()
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.addr == "" {
		s.addr = ":8080"
	}
	s.router = s.routes()
	return s
}

// Router returns the HTTP handler, for embedding and for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/styles", s.handleStyles)
		r.Post("/sessions", s.handleSessionCreate)
		r.Get("/sessions/{sessionID}", s.handleSessionGet)
		r.Post("/recommendations", s.handleRecommendations)
		r.Post("/rooms/{roomID}/items/{itemID}/move", s.handleMove)
		r.Post("/budget/reallocate", s.handleReallocate)
		r.Get("/plan.svg", s.handlePlan)
	})
	return r
}

// logRequests logs method, path, and duration per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(s.catalog),
		"styles": s.catalog,
	})
}

// SessionCreateRequest seeds a new session. A nil project starts from
// the engine defaults.
type SessionCreateRequest struct {
	Project *session.Project `json:"project,omitempty"`
}

// SessionResponse is the wire form of a session.
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	Revision  uint64          `json:"revision"`
	Project   session.Project `json:"project"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	project := defaultProject()
	if req.Project != nil {
		project = *req.Project
	}

	sess := session.New(project, session.DefaultTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "create session"))
		return
	}
	writeSession(w, http.StatusCreated, sess)
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSession(w, http.StatusOK, sess)
}

// RecommendationsRequest drives a recompute. Omitted fields fall back
// to the session's project; a request without a session ID runs
// stateless against the engine defaults.
type RecommendationsRequest struct {
	SessionID        string                   `json:"session_id,omitempty"`
	Preferences      *design.StylePreferences `json:"preferences,omitempty"`
	Room             *design.Room             `json:"room,omitempty"`
	Budget           *design.Budget           `json:"budget,omitempty"`
	SuggestFurniture bool                     `json:"suggest_furniture,omitempty"`
	SkipBudgetPass   bool                     `json:"skip_budget_pass,omitempty"`
	Refresh          bool                     `json:"refresh,omitempty"`
}

// RecommendationsResponse carries the recompute result.
type RecommendationsResponse struct {
	SessionID       string                  `json:"session_id,omitempty"`
	Revision        uint64                  `json:"revision,omitempty"`
	Recommendations []design.Recommendation `json:"recommendations"`
	BudgetStatus    budget.Status           `json:"budget_status"`
	Cached          bool                    `json:"cached"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Catalog:          s.catalog,
		SuggestFurniture: req.SuggestFurniture,
		SkipBudgetPass:   req.SkipBudgetPass,
		Refresh:          req.Refresh,
		Logger:           s.logger,
	}

	if req.SessionID == "" {
		s.recommendStateless(w, r, req, opts)
		return
	}

	sess, err := s.loadSession(r, req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	applyOverrides(sess, req)

	result, err := s.runner.RecomputeSession(r.Context(), s.store, sess, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set(HeaderRevision, strconv.FormatUint(result.Revision, 10))
	writeJSON(w, http.StatusOK, RecommendationsResponse{
		SessionID:       sess.ID,
		Revision:        result.Revision,
		Recommendations: result.Recommendations,
		BudgetStatus:    result.Status,
		Cached:          result.CacheInfo.ComposeHit,
	})
}

// recommendStateless runs the pipeline without touching the store.
func (s *Server) recommendStateless(w http.ResponseWriter, r *http.Request, req RecommendationsRequest, opts pipeline.Options) {
	if req.Preferences != nil {
		opts.Preferences = *req.Preferences
	}
	if req.Room != nil {
		opts.Room = *req.Room
	}
	if req.Budget != nil {
		opts.Budget = *req.Budget
	}

	result, err := s.runner.Recompute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Recommendations: result.Recommendations,
		BudgetStatus:    result.Status,
		Cached:          result.CacheInfo.ComposeHit,
	})
}

// applyOverrides replaces session project fields the request names.
func applyOverrides(sess *session.Session, req RecommendationsRequest) {
	if req.Preferences != nil {
		sess.Project.Preferences = *req.Preferences
	}
	if req.Room != nil {
		sess.Project.Room = *req.Room
	}
	if req.Budget != nil {
		sess.Project.Budget = *req.Budget
	}
}

// MoveRequest is a candidate position for one item.
type MoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MoveResponse reports the outcome of a move.
type MoveResponse struct {
	Accepted bool        `json:"accepted"`
	Revision uint64      `json:"revision"`
	Room     design.Room `json:"room"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	itemID := chi.URLParam(r, "itemID")

	var req MoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess, err := s.loadSession(r, r.Header.Get(HeaderSessionID))
	if err != nil {
		writeError(w, err)
		return
	}
	if sess.Project.Room.ID != roomID {
		writeError(w, errors.New(errors.ErrCodeRoomNotFound, "room %s not in session", roomID))
		return
	}
	if sess.Project.Room.ItemIndex(itemID) < 0 {
		writeError(w, errors.New(errors.ErrCodeItemNotFound, "item %s not in room", itemID))
		return
	}

	if !spatial.ProposeMove(sess.Project.Room, itemID, req.X, req.Y) {
		observability.Engine().OnMove(r.Context(), itemID, false)
		w.Header().Set(HeaderRevision, strconv.FormatUint(sess.Revision, 10))
		writeJSON(w, http.StatusUnprocessableEntity, MoveResponse{
			Accepted: false,
			Revision: sess.Revision,
			Room:     sess.Project.Room,
		})
		return
	}

	sess.Project.Room = spatial.CommitMove(sess.Project.Room, itemID, req.X, req.Y)
	observability.Engine().OnMove(r.Context(), itemID, true)
	if err := s.commit(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set(HeaderRevision, strconv.FormatUint(sess.Revision, 10))
	writeJSON(w, http.StatusOK, MoveResponse{
		Accepted: true,
		Revision: sess.Revision,
		Room:     sess.Project.Room,
	})
}

// ReallocateRequest moves funds between two categories.
type ReallocateRequest struct {
	From   design.Category `json:"from"`
	To     design.Category `json:"to"`
	Amount float64         `json:"amount"`
}

// ReallocateResponse is the budget after a successful reallocation.
type ReallocateResponse struct {
	Revision uint64        `json:"revision"`
	Budget   design.Budget `json:"budget"`
	Status   budget.Status `json:"status"`
}

func (s *Server) handleReallocate(w http.ResponseWriter, r *http.Request) {
	var req ReallocateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess, err := s.loadSession(r, r.Header.Get(HeaderSessionID))
	if err != nil {
		writeError(w, err)
		return
	}

	moved, err := budget.Reallocate(sess.Project.Budget, req.From, req.To, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.Project.Budget = moved

	if err := s.commit(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set(HeaderRevision, strconv.FormatUint(sess.Revision, 10))
	writeJSON(w, http.StatusOK, ReallocateResponse{
		Revision: sess.Revision,
		Budget:   moved,
		Status:   budget.StatusOf(moved, budget.DefaultPolicy()),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r, r.Header.Get(HeaderSessionID))
	if err != nil {
		writeError(w, err)
		return
	}

	keyOpts := cache.PlanKeyOpts{PixelsPerUnit: render.DefaultPixelsPerUnit}
	var opts []render.SVGOption
	q := r.URL.Query()
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts = append(opts, render.WithScale(scale))
		keyOpts.PixelsPerUnit = scale
	}
	if q.Get("grid") == "1" || q.Get("grid") == "true" {
		opts = append(opts, render.WithGrid(spatial.DefaultGridSpacing))
		keyOpts.GridSpacing = spatial.DefaultGridSpacing
	}
	if q.Get("labels") == "1" || q.Get("labels") == "true" {
		opts = append(opts, render.WithLabels())
		keyOpts.Labels = true
	}

	svg, err := s.renderPlan(r.Context(), sess, keyOpts, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set(HeaderRevision, strconv.FormatUint(sess.Revision, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// renderPlan serves a rendered floor plan through the session's cache
// namespace. The key hashes the room state, so a committed move changes
// the key and the next fetch re-renders.
func (s *Server) renderPlan(ctx context.Context, sess *session.Session, keyOpts cache.PlanKeyOpts, opts []render.SVGOption) ([]byte, error) {
	roomHash, err := cache.HashJSON(sess.Project.Room)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash room")
	}
	keyer := cache.NewScopedKeyer(s.runner.Keyer, "session:"+sess.ID+":")
	key := keyer.PlanKey(roomHash, keyOpts)

	if data, hit, err := s.runner.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "plan")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "plan")

	svg := render.PlanSVG(sess.Project.Room, opts...)
	if err := s.runner.Cache.Set(ctx, key, svg, cache.TTLPlan); err == nil {
		observability.Cache().OnCacheSet(ctx, "plan", len(svg))
	}
	return svg, nil
}

// ============================================================================
// Session plumbing
// ============================================================================

// loadSession resolves a session by ID and enforces the revision
// precondition: a request carrying X-Revision below the stored revision
// is based on a layout that has since been replaced and is rejected.
func (s *Server) loadSession(r *http.Request, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "missing session ID")
	}

	sess, err := s.store.Get(r.Context(), sessionID)
	if err != nil {
		if stderrors.Is(err, session.ErrNotFound) {
			return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", sessionID)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load session")
	}
	// Stores report unknown or expired sessions as a nil session, not an
	// error.
	if sess == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", sessionID)
	}

	if v := r.Header.Get(HeaderRevision); v != "" {
		rev, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid %s header %q", HeaderRevision, v)
		}
		if rev < sess.Revision {
			return nil, errors.New(errors.ErrCodeStaleRevision,
				"revision %d is behind the current revision %d", rev, sess.Revision)
		}
	}
	return sess, nil
}

// commit bumps the revision and saves, translating a racing newer write
// into a stale-revision error.
func (s *Server) commit(ctx context.Context, sess *session.Session) error {
	sess.Touch()
	if err := s.store.Set(ctx, sess); err != nil {
		if stderrors.Is(err, session.ErrStale) {
			return errors.Wrap(errors.ErrCodeStaleRevision, err, "a newer revision was committed first")
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "save session")
	}
	return nil
}

func defaultProject() session.Project {
	return session.Project{
		Preferences: pipeline.DefaultPreferences(),
		Room:        pipeline.DefaultRoom(),
		Budget:      pipeline.DefaultBudget(),
	}
}

// ============================================================================
// Wire helpers
// ============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeSession(w http.ResponseWriter, status int, sess *session.Session) {
	w.Header().Set(HeaderRevision, strconv.FormatUint(sess.Revision, 10))
	writeJSON(w, status, SessionResponse{
		SessionID: sess.ID,
		Revision:  sess.Revision,
		Project:   sess.Project,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), ErrorResponse{
		Code:    code,
		Message: errors.UserMessage(err),
	})
}

// statusFor maps engine error codes onto HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCategory,
		errors.ErrCodeInvalidDimensions, errors.ErrCodeInvalidBudget,
		errors.ErrCodeInvalidCatalog, errors.ErrCodeDuplicateStyle:
		return http.StatusBadRequest
	case errors.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeItemNotFound, errors.ErrCodeRoomNotFound,
		errors.ErrCodeFileNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStaleRevision:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body. An empty body decodes to the
// zero value.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}
