package animation

import (
	"github.com/matzehuels/autotype/pkg/record"
)

// FillStep writes Value at Path once the record at Guard is empty or
// missing. Guard defaults to Path.
type FillStep struct {
	Path  string
	Guard string
	Value record.Value
}

func (s FillStep) guard() string {
	if s.Guard != "" {
		return s.Guard
	}
	return s.Path
}

// Filler applies fill steps in priority order, one per call.
type Filler struct {
	steps []FillStep
}

// NewFiller creates a filler over steps. The values are copied.
func NewFiller(steps ...FillStep) *Filler {
	f := &Filler{steps: make([]FillStep, len(steps))}
	for i, s := range steps {
		s.Value = record.Clone(s.Value)
		f.steps[i] = s
	}
	return f
}

// Len returns the number of steps.
func (f *Filler) Len() int {
	if f == nil {
		return 0
	}
	return len(f.steps)
}

// Next returns the first step whose guard is empty or missing in r.
func (f *Filler) Next(r *record.Record) (FillStep, bool) {
	if p := f.pending(r); len(p) > 0 {
		return p[0], true
	}
	return FillStep{}, false
}

// Apply returns a copy of r with the first pending step applied, and the
// step's path. Steps whose parent record does not exist in r are passed
// over. It returns r itself and false when nothing could be applied.
func (f *Filler) Apply(r *record.Record) (*record.Record, string, bool) {
	for _, s := range f.pending(r) {
		out := record.CloneRecord(r)
		if record.SetPath(out, s.Path, record.Clone(s.Value)) {
			return out, s.Path, true
		}
	}
	return r, "", false
}

func (f *Filler) pending(r *record.Record) []FillStep {
	if f == nil {
		return nil
	}
	var out []FillStep
	for _, s := range f.steps {
		v, ok := record.Lookup(r, s.guard())
		if !ok || record.IsEmpty(v) {
			out = append(out, s)
		}
	}
	return out
}
