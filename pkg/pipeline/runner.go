package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autotype/pkg/cache"
	apperr "github.com/matzehuels/autotype/pkg/errors"
	"github.com/matzehuels/autotype/pkg/observability"
	"github.com/matzehuels/autotype/pkg/record"
)

// Runner renders records with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Render renders rec, reading and filling the cache unless opts.Refresh is
// set.
func (r *Runner) Render(ctx context.Context, rec *record.Record, opts Options) (*Result, error) {
	if rec == nil {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "nothing to render")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	recordData, err := json.Marshal(rec)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "serialize record for cache key")
	}
	result := &Result{RecordHash: cache.Hash(recordData)}
	cacheKey := r.Keyer.RenderKey(result.RecordHash, opts.RenderKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			result.Data = data
			result.CacheHit = true
			result.Duration = time.Since(start)
			r.Logger.Debug("render cache hit", "format", opts.Format, "hash", result.RecordHash[:12])
			return result, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	observability.Render().OnRenderStart(ctx, opts.Format)
	data, err := Render(rec, opts)
	result.Duration = time.Since(start)
	observability.Render().OnRenderComplete(ctx, opts.Format, result.Duration, err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	result.Data = data

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLRender); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}

	r.Logger.Debug("rendered record",
		"format", opts.Format,
		"bytes", len(data),
		"duration", result.Duration)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
