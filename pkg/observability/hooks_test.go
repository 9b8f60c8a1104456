package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Job hooks
	j := NoopJobHooks{}
	j.OnFoldStart(ctx, "job-1", "oryg", 120)
	j.OnFoldComplete(ctx, "job-1", "oryg", 120, time.Second, nil)

	// Solver hooks
	s := NoopSolverHooks{}
	s.OnSolverStart(ctx, "pluto", 4)
	s.OnSolverComplete(ctx, "pluto", 0, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "fold")
	c.OnCacheMiss(ctx, "fold")
	c.OnCacheSet(ctx, "fold", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Job().(NoopJobHooks); !ok {
		t.Error("Job() should return NoopJobHooks by default")
	}
	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Solver() should return NoopSolverHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customJob := &testJobHooks{}
	SetJobHooks(customJob)
	if Job() != customJob {
		t.Error("SetJobHooks should set custom hooks")
	}

	customSolver := &testSolverHooks{}
	SetSolverHooks(customSolver)
	if Solver() != customSolver {
		t.Error("SetSolverHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Job().(NoopJobHooks); !ok {
		t.Error("Reset() should restore NoopJobHooks")
	}
	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Reset() should restore NoopSolverHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testJobHooks{}
	SetJobHooks(custom)

	// Setting nil should be ignored
	SetJobHooks(nil)

	if Job() != custom {
		t.Error("SetJobHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testJobHooks struct{ NoopJobHooks }
type testSolverHooks struct{ NoopSolverHooks }
type testCacheHooks struct{ NoopCacheHooks }
