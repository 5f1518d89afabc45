package publish

import (
	"context"
	"errors"

	"github.com/matzehuels/autotype/pkg/record"
)

// Publisher receives published snapshots. Implementations must not modify
// the snapshot.
type Publisher interface {
	Publish(ctx context.Context, snap *record.Record) error
}

// Func adapts a function to the [Publisher] interface.
type Func func(ctx context.Context, snap *record.Record) error

// Publish calls f.
func (f Func) Publish(ctx context.Context, snap *record.Record) error { return f(ctx, snap) }

// Multi publishes to every publisher in order. A failing publisher does not
// stop the others; their errors are joined.
type Multi []Publisher

// Publish implements [Publisher].
func (m Multi) Publish(ctx context.Context, snap *record.Record) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard is a publisher that drops every snapshot.
var Discard Publisher = Func(func(context.Context, *record.Record) error { return nil })
