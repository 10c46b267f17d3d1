// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about each imposition run.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface per event category
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Pipeline().OnPlanStart(ctx, pages)
//	// ... plan signatures ...
//	observability.Pipeline().OnPlanComplete(ctx, sizes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the imposition pipeline.
type PipelineHooks interface {
	// Source events
	OnSourceOpen(ctx context.Context, path string, pages int, err error)

	// Plan events
	OnPlanStart(ctx context.Context, pages int)
	OnPlanComplete(ctx context.Context, sizes []int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, slots int)
	OnRenderComplete(ctx context.Context, pages int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSourceOpen(context.Context, string, int, error)            {}
func (NoopPipelineHooks) OnPlanStart(context.Context, int)                            {}
func (NoopPipelineHooks) OnPlanComplete(context.Context, []int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
