// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about fold jobs, solver runs, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetJobHooks(&myJobHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Job().OnFoldStart(ctx, jobID, method, length)
//	// ... run solver and normalize ...
//	observability.Job().OnFoldComplete(ctx, jobID, method, dimension, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Job Hooks
// =============================================================================

// JobHooks receives events from the job orchestrator.
type JobHooks interface {
	OnFoldStart(ctx context.Context, jobID, method string, sequenceLength int)
	OnFoldComplete(ctx context.Context, jobID, method string, dimension int, duration time.Duration, err error)
}

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from solver process invocations.
type SolverHooks interface {
	OnSolverStart(ctx context.Context, method string, threads int)
	OnSolverComplete(ctx context.Context, method string, returnCode int, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopJobHooks is a no-op implementation of JobHooks.
type NoopJobHooks struct{}

func (NoopJobHooks) OnFoldStart(context.Context, string, string, int) {}
func (NoopJobHooks) OnFoldComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolverStart(context.Context, string, int)                          {}
func (NoopSolverHooks) OnSolverComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	jobHooks    JobHooks    = NoopJobHooks{}
	solverHooks SolverHooks = NoopSolverHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetJobHooks registers custom job hooks.
// This should be called once at application startup before any fold runs.
func SetJobHooks(h JobHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		jobHooks = h
	}
}

// SetSolverHooks registers custom solver hooks.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
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

// Job returns the registered job hooks.
func Job() JobHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return jobHooks
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	jobHooks = NoopJobHooks{}
	solverHooks = NoopSolverHooks{}
	cacheHooks = NoopCacheHooks{}
}
