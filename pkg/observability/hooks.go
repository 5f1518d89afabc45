// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about the animation loop, snapshot streaming, rendering,
// cache operations and HTTP requests.
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
//   - Allows different backends (Prometheus, OpenTelemetry, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAnimationHooks(&myAnimationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Animation().OnTick(ctx, pulled, exhausted)
//	observability.Stream().OnPublish(ctx, "redis", len(data), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Animation Hooks
// =============================================================================

// AnimationHooks receives events from the animation driver.
type AnimationHooks interface {
	// OnTick records one batch pull. pulled is the number of steps taken.
	OnTick(ctx context.Context, pulled int, exhausted bool)

	// OnComplete records the end of a cycle.
	OnComplete(ctx context.Context, cycle, steps int, duration time.Duration)

	// OnReset records the start of a new cycle.
	OnReset(ctx context.Context, cycle int)

	// OnFill records an applied autofill step.
	OnFill(ctx context.Context, path string)

	// OnRecover records a panic recovered inside the driver.
	OnRecover(ctx context.Context, op string)
}

// =============================================================================
// Stream Hooks
// =============================================================================

// StreamHooks receives events from snapshot publishers.
type StreamHooks interface {
	// OnPublish records a snapshot handed to a sink ("hub", "redis").
	OnPublish(ctx context.Context, sink string, size int, err error)

	// OnSubscribe records a new live subscriber.
	OnSubscribe(ctx context.Context, subscribers int)

	// OnUnsubscribe records a subscriber leaving.
	OnUnsubscribe(ctx context.Context, subscribers int)

	// OnDrop records a snapshot skipped for a slow subscriber.
	OnDrop(ctx context.Context)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records a served request. route is the matched route
	// pattern, not the raw path.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnimationHooks is a no-op implementation of AnimationHooks.
type NoopAnimationHooks struct{}

func (NoopAnimationHooks) OnTick(context.Context, int, bool)                   {}
func (NoopAnimationHooks) OnComplete(context.Context, int, int, time.Duration) {}
func (NoopAnimationHooks) OnReset(context.Context, int)                        {}
func (NoopAnimationHooks) OnFill(context.Context, string)                      {}
func (NoopAnimationHooks) OnRecover(context.Context, string)                   {}

// NoopStreamHooks is a no-op implementation of StreamHooks.
type NoopStreamHooks struct{}

func (NoopStreamHooks) OnPublish(context.Context, string, int, error) {}
func (NoopStreamHooks) OnSubscribe(context.Context, int)              {}
func (NoopStreamHooks) OnUnsubscribe(context.Context, int)            {}
func (NoopStreamHooks) OnDrop(context.Context)                        {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	animationHooks AnimationHooks = NoopAnimationHooks{}
	streamHooks    StreamHooks    = NoopStreamHooks{}
	renderHooks    RenderHooks    = NoopRenderHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetAnimationHooks registers custom animation hooks.
// This should be called once at application startup before any animator runs.
func SetAnimationHooks(h AnimationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		animationHooks = h
	}
}

// SetStreamHooks registers custom stream hooks.
func SetStreamHooks(h StreamHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		streamHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
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

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Animation returns the registered animation hooks.
func Animation() AnimationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return animationHooks
}

// Stream returns the registered stream hooks.
func Stream() StreamHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return streamHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	animationHooks = NoopAnimationHooks{}
	streamHooks = NoopStreamHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
