package animation

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autotype/pkg/observability"
	"github.com/matzehuels/autotype/pkg/publish"
	"github.com/matzehuels/autotype/pkg/record"
	"github.com/matzehuels/autotype/pkg/typewriter"
)

// State is the lifecycle state of an [Animator].
type State int

const (
	// StateRunning means ticks still pull from the sequence.
	StateRunning State = iota
	// StateCompleted means the target has been published and ticks do
	// nothing until the next reset.
	StateCompleted
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Option configures an [Animator].
type Option func(*Animator)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFiller enables autofill with f.
func WithFiller(f *Filler) Option {
	return func(a *Animator) { a.filler = f }
}

// WithClock replaces time.Now for cycle timing.
func WithClock(now func() time.Time) Option {
	return func(a *Animator) {
		if now != nil {
			a.now = now
		}
	}
}

// Animator publishes a typewriter sequence at a fixed cadence.
type Animator struct {
	start, target *record.Record
	targetChars   int
	cfg           Config

	seq        *typewriter.Sequence
	current    *record.Record
	state      State
	cycle      int
	cycleStart time.Time

	filler *Filler
	logger *log.Logger
	now    func() time.Time
}

// New creates an animator growing start into target. Both records are
// copied. The first published record is start itself.
func New(start, target *record.Record, cfg Config, opts ...Option) *Animator {
	a := &Animator{
		start:  record.CloneRecord(start),
		target: record.CloneRecord(target),
		cfg:    cfg,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.targetChars = record.CountChars(a.target)
	a.current = record.CloneRecord(a.start)
	a.restart()
	return a
}

func (a *Animator) restart() {
	a.seq = typewriter.New(a.start, a.target)
	a.state = StateRunning
	a.cycle++
	a.cycleStart = a.now()
}

// Tick pulls one batch and reports whether the published record changed.
// A completed animator does nothing. A batch size below one pulls a single
// step.
func (a *Animator) Tick(ctx context.Context) (changed bool) {
	if a.state == StateCompleted {
		return false
	}
	defer a.recoverPanic(ctx, "tick", &changed)

	n := a.cfg.ElementsPerTick
	if n < 1 {
		n = 1
	}
	last, pulled, exhausted := a.seq.Pull(n)
	observability.Animation().OnTick(ctx, pulled, exhausted)
	if exhausted {
		a.complete(ctx)
		return true
	}
	if last == nil {
		return false
	}
	a.current = last
	return true
}

func (a *Animator) complete(ctx context.Context) {
	a.current = record.CloneRecord(a.target)
	a.state = StateCompleted

	elapsed := a.now().Sub(a.cycleStart)
	a.logger.Debug("animation cycle complete", "cycle", a.cycle, "steps", a.seq.Steps(), "duration", elapsed)
	observability.Animation().OnComplete(ctx, a.cycle, a.seq.Steps(), elapsed)
}

// Reset starts a fresh sequence from the original start record. The
// published record is left alone; the next tick publishes the first batch
// of the new cycle.
func (a *Animator) Reset(ctx context.Context) {
	var changed bool
	defer a.recoverPanic(ctx, "reset", &changed)

	a.restart()
	a.logger.Debug("animation reset", "cycle", a.cycle)
	observability.Animation().OnReset(ctx, a.cycle)
}

// Fill applies the next pending autofill step to the published record and
// reports whether it changed. Without a filler it does nothing.
func (a *Animator) Fill(ctx context.Context) (changed bool) {
	if a.filler == nil {
		return false
	}
	defer a.recoverPanic(ctx, "fill", &changed)

	next, path, ok := a.filler.Apply(a.current)
	if !ok {
		return false
	}
	a.current = next
	a.logger.Debug("autofill", "path", path)
	observability.Animation().OnFill(ctx, path)
	return true
}

func (a *Animator) recoverPanic(ctx context.Context, op string, changed *bool) {
	r := recover()
	if r == nil {
		return
	}
	a.logger.Error("animation panic recovered", "op", op, "panic", r)
	observability.Animation().OnRecover(ctx, op)
	a.current = record.CloneRecord(a.target)
	a.state = StateCompleted
	*changed = true
}

// Current returns the published record. It is never modified in place, but
// callers must not modify it either.
func (a *Animator) Current() *record.Record { return a.current }

// Target returns the target record. Callers must not modify it.
func (a *Animator) Target() *record.Record { return a.target }

// State returns the lifecycle state.
func (a *Animator) State() State { return a.state }

// Cycle returns the current cycle number, starting at 1.
func (a *Animator) Cycle() int { return a.cycle }

// Config returns the cadence.
func (a *Animator) Config() Config { return a.cfg }

// Progress returns the share of the target's characters present in the
// published record, between 0 and 1.
func (a *Animator) Progress() float64 {
	if a.state == StateCompleted || a.targetChars == 0 {
		return 1
	}
	return min(1, float64(record.CountChars(a.current))/float64(a.targetChars))
}

// Run drives the animator until ctx is cancelled, publishing the initial
// record and then every change. All three cadences are served from one
// goroutine; their tickers stop together when Run returns.
func (a *Animator) Run(ctx context.Context, pub publish.Publisher) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	tick := time.NewTicker(a.cfg.TickInterval)
	defer tick.Stop()
	reset := time.NewTicker(a.cfg.ResetInterval)
	defer reset.Stop()

	var fill <-chan time.Time
	if a.cfg.FillInterval > 0 && a.filler.Len() > 0 {
		t := time.NewTicker(a.cfg.FillInterval)
		defer t.Stop()
		fill = t.C
	}

	a.logger.Info("animation started",
		"tick", a.cfg.TickInterval,
		"per_tick", a.cfg.ElementsPerTick,
		"reset", a.cfg.ResetInterval,
		"chars", a.targetChars)
	a.publish(ctx, pub)

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("animation stopped", "cycle", a.cycle)
			return nil
		case <-tick.C:
			if a.Tick(ctx) {
				a.publish(ctx, pub)
			}
		case <-reset.C:
			a.Reset(ctx)
		case <-fill:
			if a.Fill(ctx) {
				a.publish(ctx, pub)
			}
		}
	}
}

func (a *Animator) publish(ctx context.Context, pub publish.Publisher) {
	if err := pub.Publish(ctx, a.current); err != nil {
		a.logger.Warn("publish failed", "error", err)
	}
}
