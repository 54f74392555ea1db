// Package session provides storage for in-progress design sessions.
//
// A session holds one user's working project: their style preferences, the
// room being arranged, the budget, and the current recommendation list.
// Implementations exist for different backends:
//   - memory: In-memory storage for development/testing
//   - redis: Redis-backed storage for production multi-instance deployments
//   - file: File-based storage for CLI applications
//
// # Revisions
//
// Preference edits race with recomputation: a stale recomputation must never
// overwrite the result of a newer one. Every session carries a monotonically
// increasing revision, and Store.Set rejects writes whose revision is not
// newer than the stored one with ErrStale. Callers bump the revision via
// Session.Touch before saving.
//
// # Usage
//
// Create a session store:
//
//	// Development
//	store := session.NewMemoryStore()
//
//	// Production
//	store, err := session.NewRedisStore(ctx, session.RedisConfig{
//	    Addr: "localhost:6379",
//	})
//
//	// CLI
//	store, err := session.NewFileStore("")  // Uses ~/.config/roomcraft/sessions/
//
// Manage sessions:
//
//	sess := session.New(project, session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, sessionID)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Session not found or expired
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/studiolane/roomcraft/pkg/design"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStale is returned when a write carries a revision that is not newer
	// than the stored one.
	ErrStale = errors.New("stale revision")
)

// Project is the mutable working state of a design session.
type Project struct {
	Preferences     design.StylePreferences `json:"preferences"`
	Room            design.Room             `json:"room"`
	Budget          design.Budget           `json:"budget"`
	Recommendations []design.Recommendation `json:"recommendations,omitempty"`
}

// Session stores one user's design project with write-ordering metadata.
type Session struct {
	ID        string    `json:"id"`
	Project   Project   `json:"project"`
	Revision  uint64    `json:"revision"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Touch bumps the revision and update timestamp. Call before Set.
func (s *Session) Touch() {
	s.Revision++
	s.UpdatedAt = time.Now()
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session. Returns ErrStale when a session with the same ID
	// exists at an equal or newer revision.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (optional, may be no-op for Redis).
	Cleanup(ctx context.Context) error
}

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// New creates a session around the given project at revision 1.
func New(project Project, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		ID:        design.NewID(),
		Project:   project,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}
