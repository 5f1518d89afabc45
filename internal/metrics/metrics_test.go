package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/autotype/pkg/observability"
)

func TestAnimationMetrics(t *testing.T) {
	ctx := context.Background()
	m := New()

	m.OnTick(ctx, 10, false)
	m.OnTick(ctx, 3, true)
	m.OnTick(ctx, 0, true)
	m.OnComplete(ctx, 1, 13, 2*time.Second)
	m.OnReset(ctx, 2)
	m.OnFill(ctx, "profile.name")
	m.OnFill(ctx, "profile.name")
	m.OnRecover(ctx, "tick")

	if got := testutil.ToFloat64(m.ticks); got != 2 {
		t.Errorf("ticks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.steps); got != 13 {
		t.Errorf("steps = %v, want 13", got)
	}
	if got := testutil.ToFloat64(m.cycles); got != 1 {
		t.Errorf("cycles = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.resets); got != 1 {
		t.Errorf("resets = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.fills.WithLabelValues("profile.name")); got != 2 {
		t.Errorf("fills = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.recovered.WithLabelValues("tick")); got != 1 {
		t.Errorf("recovered = %v, want 1", got)
	}
}

func TestStreamMetrics(t *testing.T) {
	ctx := context.Background()
	m := New()

	m.OnPublish(ctx, "hub", 120, nil)
	m.OnPublish(ctx, "redis", 0, errors.New("down"))
	m.OnSubscribe(ctx, 1)
	m.OnSubscribe(ctx, 2)
	m.OnUnsubscribe(ctx, 1)
	m.OnDrop(ctx)

	if got := testutil.ToFloat64(m.publishes.WithLabelValues("hub", "ok")); got != 1 {
		t.Errorf("hub publishes = %v", got)
	}
	if got := testutil.ToFloat64(m.publishes.WithLabelValues("redis", "error")); got != 1 {
		t.Errorf("redis failures = %v", got)
	}
	if got := testutil.ToFloat64(m.subscribers); got != 1 {
		t.Errorf("subscribers = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.drops); got != 1 {
		t.Errorf("drops = %v, want 1", got)
	}
}

func TestRenderAndCacheMetrics(t *testing.T) {
	ctx := context.Background()
	m := New()

	m.OnRenderStart(ctx, "markdown")
	if got := testutil.ToFloat64(m.rendersRunning); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	m.OnRenderComplete(ctx, "markdown", time.Millisecond, nil)
	if got := testutil.ToFloat64(m.rendersRunning); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.renders.WithLabelValues("markdown", "ok")); got != 1 {
		t.Errorf("renders = %v", got)
	}

	m.OnCacheMiss(ctx, "render")
	m.OnCacheSet(ctx, "render", 512)
	m.OnCacheHit(ctx, "render")
	m.OnCacheHit(ctx, "render")
	if got := testutil.ToFloat64(m.cacheRequests.WithLabelValues("render", "hit")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.cacheRequests.WithLabelValues("render", "miss")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheBytes.WithLabelValues("render")); got != 512 {
		t.Errorf("bytes = %v, want 512", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.OnRequest(context.Background(), "GET", "/snapshot", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`autotype_http_requests_total{method="GET",route="/snapshot",status="200"} 1`,
		"autotype_http_request_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestInstall(t *testing.T) {
	t.Cleanup(observability.Reset)
	m := New()
	m.Install()

	observability.Animation().OnReset(context.Background(), 2)
	observability.Cache().OnCacheHit(context.Background(), "render")

	if got := testutil.ToFloat64(m.resets); got != 1 {
		t.Errorf("resets = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheRequests.WithLabelValues("render", "hit")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
}
