// Package metrics exports observability hook events as Prometheus metrics.
//
// [Metrics] implements every hook interface of pkg/observability on its own
// registry; [Metrics.Install] registers it as the process-wide hooks and
// [Metrics.Handler] serves the registry at /metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/autotype/pkg/observability"
)

const namespace = "autotype"

// Metrics holds the collectors fed by the observability hooks.
type Metrics struct {
	registry *prometheus.Registry

	ticks          prometheus.Counter
	steps          prometheus.Counter
	cycles         prometheus.Counter
	cycleDuration  prometheus.Histogram
	resets         prometheus.Counter
	fills          *prometheus.CounterVec
	recovered      *prometheus.CounterVec
	publishes      *prometheus.CounterVec
	publishBytes   *prometheus.HistogramVec
	subscribers    prometheus.Gauge
	drops          prometheus.Counter
	rendersRunning prometheus.Gauge
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	cacheRequests  *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "ticks_total",
			Help: "Number of animation ticks that pulled at least one step.",
		}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "steps_total",
			Help: "Number of typewriter steps pulled.",
		}),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cycles_completed_total",
			Help: "Number of animation cycles that reached the target.",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "cycle_duration_seconds",
			Help:    "Time from the start of a cycle to its completion.",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "resets_total",
			Help: "Number of animation resets.",
		}),
		fills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fills_total",
			Help: "Number of applied autofill steps.",
		}, []string{"path"}),
		recovered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "panics_recovered_total",
			Help: "Number of panics recovered inside the animation driver.",
		}, []string{"op"}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "publishes_total",
			Help: "Number of snapshots published per sink.",
		}, []string{"sink", "result"}),
		publishBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "snapshot_bytes",
			Help:    "Encoded size of published snapshots.",
			Buckets: prometheus.ExponentialBuckets(64, 2, 10),
		}, []string{"sink"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "subscribers",
			Help: "Number of connected snapshot subscribers.",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "dropped_snapshots_total",
			Help: "Number of snapshots dropped for slow subscribers.",
		}),
		rendersRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "renders_in_flight",
			Help: "Number of renders in progress.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "renders_total",
			Help: "Number of renders per format.",
		}, []string{"format", "result"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "render_duration_seconds",
			Help:    "Time spent rendering a document.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_requests_total",
			Help: "Number of cache lookups.",
		}, []string{"type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_written_bytes_total",
			Help: "Number of bytes written to the cache.",
		}, []string{"type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Number of HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ticks, m.steps, m.cycles, m.cycleDuration, m.resets, m.fills, m.recovered,
		m.publishes, m.publishBytes, m.subscribers, m.drops,
		m.rendersRunning, m.renders, m.renderDuration,
		m.cacheRequests, m.cacheBytes,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// Install registers m as the process-wide observability hooks.
func (m *Metrics) Install() {
	observability.SetAnimationHooks(m)
	observability.SetStreamHooks(m)
	observability.SetRenderHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// =============================================================================
// Animation Hooks
// =============================================================================

func (m *Metrics) OnTick(_ context.Context, pulled int, _ bool) {
	if pulled == 0 {
		return
	}
	m.ticks.Inc()
	m.steps.Add(float64(pulled))
}

func (m *Metrics) OnComplete(_ context.Context, _, _ int, d time.Duration) {
	m.cycles.Inc()
	m.cycleDuration.Observe(d.Seconds())
}

func (m *Metrics) OnReset(context.Context, int) { m.resets.Inc() }

func (m *Metrics) OnFill(_ context.Context, path string) {
	m.fills.WithLabelValues(path).Inc()
}

func (m *Metrics) OnRecover(_ context.Context, op string) {
	m.recovered.WithLabelValues(op).Inc()
}

// =============================================================================
// Stream Hooks
// =============================================================================

func (m *Metrics) OnPublish(_ context.Context, sink string, size int, err error) {
	m.publishes.WithLabelValues(sink, result(err)).Inc()
	if err == nil {
		m.publishBytes.WithLabelValues(sink).Observe(float64(size))
	}
}

func (m *Metrics) OnSubscribe(_ context.Context, n int)   { m.subscribers.Set(float64(n)) }
func (m *Metrics) OnUnsubscribe(_ context.Context, n int) { m.subscribers.Set(float64(n)) }
func (m *Metrics) OnDrop(context.Context)                 { m.drops.Inc() }

// =============================================================================
// Render Hooks
// =============================================================================

func (m *Metrics) OnRenderStart(context.Context, string) { m.rendersRunning.Inc() }

func (m *Metrics) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	m.rendersRunning.Dec()
	m.renders.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// =============================================================================
// HTTP Hooks
// =============================================================================

func (m *Metrics) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.AnimationHooks = (*Metrics)(nil)
	_ observability.StreamHooks    = (*Metrics)(nil)
	_ observability.RenderHooks    = (*Metrics)(nil)
	_ observability.CacheHooks     = (*Metrics)(nil)
	_ observability.HTTPHooks      = (*Metrics)(nil)
)
