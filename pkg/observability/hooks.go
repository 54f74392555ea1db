// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about engine execution, cache operations, and session
// storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnComposeStart(ctx, roomName)
//	// ... compose recommendations ...
//	observability.Engine().OnComposeComplete(ctx, recCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the recommendation engine.
type EngineHooks interface {
	// Compose events
	OnComposeStart(ctx context.Context, roomName string)
	OnComposeComplete(ctx context.Context, recommendationCount int, duration time.Duration, err error)

	// Budget derating events
	OnBudgetPass(ctx context.Context, category string, keptItems, droppedItems int)

	// Spatial events
	OnMove(ctx context.Context, itemID string, accepted bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from session storage operations.
type SessionHooks interface {
	// OnSessionLoad records a session read.
	OnSessionLoad(ctx context.Context, backend string, found bool)

	// OnSessionSave records a session write.
	OnSessionSave(ctx context.Context, backend string, revision uint64)

	// OnSessionError records a storage error (connection failure, timeout).
	OnSessionError(ctx context.Context, backend string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnComposeStart(context.Context, string)                       {}
func (NoopEngineHooks) OnComposeComplete(context.Context, int, time.Duration, error) {}
func (NoopEngineHooks) OnBudgetPass(context.Context, string, int, int)               {}
func (NoopEngineHooks) OnMove(context.Context, string, bool)                         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionLoad(context.Context, string, bool)   {}
func (NoopSessionHooks) OnSessionSave(context.Context, string, uint64) {}
func (NoopSessionHooks) OnSessionError(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks  EngineHooks  = NoopEngineHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	sessionHooks SessionHooks = NoopSessionHooks{}
	hooksMu      sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before any session operations.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
	sessionHooks = NoopSessionHooks{}
}
