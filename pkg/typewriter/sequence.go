package typewriter

import (
	"iter"
	"strings"

	"github.com/matzehuels/autotype/pkg/record"
)

type frameKind int

const (
	recordFrame frameKind = iota
	listFrame
	textFrame
)

// slot is the place a text frame writes to: a record field or a list element.
type slot struct {
	rec   *record.Record
	key   string
	list  *record.List
	index int
}

func (s slot) set(v record.Value) {
	if s.rec != nil {
		s.rec.Set(s.key, v)
		return
	}
	s.list.SetAt(s.index, v)
}

// frame is one level of the traversal stack.
type frame struct {
	kind frameKind
	next int // next key or index to visit; next rune count for text

	rec       *record.Record
	recTarget *record.Record
	keys      []string

	list       *record.List
	listTarget *record.List

	slot  slot
	runes []rune
}

// Sequence is a lazy, non-restartable sequence of snapshots growing start
// into target. It is not safe for concurrent use.
type Sequence struct {
	root  *record.Record
	stack []frame
	dirty bool
	done  bool
	steps int
}

// New creates a sequence that grows start into target. Both records are
// copied, so later changes to them do not affect the sequence. A nil start
// is treated as an empty record; a nil target yields nothing.
func New(start, target *record.Record) *Sequence {
	s := &Sequence{root: record.CloneRecord(start)}
	if target == nil {
		s.done = true
		return s
	}
	s.pushRecord(s.root, record.CloneRecord(target))
	return s
}

// Next pulls one snapshot. It returns false once the sequence is exhausted
// and on every call after that.
func (s *Sequence) Next() (*record.Record, bool) {
	if !s.advance() {
		return nil, false
	}
	return record.CloneRecord(s.root), true
}

// Pull advances up to n steps and returns a copy of the state after the last
// one. pulled is the number of steps taken. exhausted is true when the
// sequence ran out before n steps were taken; last is nil if no step was.
func (s *Sequence) Pull(n int) (last *record.Record, pulled int, exhausted bool) {
	for pulled < n {
		if !s.advance() {
			exhausted = true
			break
		}
		pulled++
	}
	if pulled > 0 {
		last = record.CloneRecord(s.root)
	}
	return last, pulled, exhausted
}

// All returns an iterator over the remaining snapshots. Breaking out of the
// loop leaves the sequence where it stopped.
func (s *Sequence) All() iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		for {
			snap, ok := s.Next()
			if !ok || !yield(snap) {
				return
			}
		}
	}
}

// Done reports whether the sequence is exhausted.
func (s *Sequence) Done() bool { return s.done }

// Steps returns the number of snapshots produced so far, including those
// skipped over by [Sequence.Pull].
func (s *Sequence) Steps() int { return s.steps }

// advance performs one step on the working copy. It returns false when
// there is nothing left to do.
func (s *Sequence) advance() bool {
	if s.done {
		return false
	}
	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		switch top.kind {
		case textFrame:
			if top.next >= len(top.runes) {
				s.pop()
				continue
			}
			top.next++
			top.slot.set(record.Text(string(top.runes[:top.next])))
			s.step()
			return true

		case recordFrame:
			if top.next >= len(top.keys) {
				s.pop()
				continue
			}
			key := top.keys[top.next]
			top.next++
			tv, _ := top.recTarget.Get(key)
			s.enterField(top.rec, key, tv)

		case listFrame:
			if top.next >= top.listTarget.Len() {
				s.pop()
				continue
			}
			i := top.next
			top.next++
			s.enterElement(top.list, i, top.listTarget.At(i))
		}
	}

	// Placeholders and keys created for empty targets are not covered by any
	// character step; flush them so the last snapshot always equals target.
	if s.dirty {
		s.step()
		s.done = true
		s.stack = nil
		return true
	}
	s.done = true
	return false
}

func (s *Sequence) step() {
	s.steps++
	s.dirty = false
}

func (s *Sequence) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

// enterField prepares rec[key] to grow into target and pushes its frame.
func (s *Sequence) enterField(rec *record.Record, key string, target record.Value) {
	cur, ok := rec.Get(key)
	if !ok {
		cur = empty(target)
		if cur == nil {
			return
		}
		rec.Set(key, cur)
		s.dirty = true
	}
	s.push(cur, target, slot{rec: rec, key: key})
}

// enterElement prepares list[i] to grow into target and pushes its frame.
func (s *Sequence) enterElement(list *record.List, i int, target record.Value) {
	if i >= list.Len() {
		placeholder := empty(target)
		if placeholder == nil {
			return
		}
		list.Append(placeholder)
		s.dirty = true
	}
	s.push(list.At(i), target, slot{list: list, index: i})
}

// push adds the frame growing cur into target. Mismatched kinds are skipped.
func (s *Sequence) push(cur, target record.Value, at slot) {
	switch t := target.(type) {
	case record.Text:
		c, ok := cur.(record.Text)
		if !ok {
			return
		}
		runes := []rune(string(t))
		start := 0
		if strings.HasPrefix(string(t), string(c)) {
			start = c.Len()
		}
		if start < len(runes) {
			s.stack = append(s.stack, frame{kind: textFrame, next: start, slot: at, runes: runes})
		}
	case *record.List:
		c, ok := cur.(*record.List)
		if !ok {
			return
		}
		s.stack = append(s.stack, frame{kind: listFrame, list: c, listTarget: t})
	case *record.Record:
		c, ok := cur.(*record.Record)
		if !ok {
			return
		}
		s.pushRecord(c, t)
	}
}

func (s *Sequence) pushRecord(cur, target *record.Record) {
	s.stack = append(s.stack, frame{kind: recordFrame, rec: cur, recTarget: target, keys: target.Keys()})
}

// empty returns the placeholder a value of target's kind starts from.
func empty(target record.Value) record.Value {
	switch target.(type) {
	case record.Text:
		return record.Text("")
	case *record.List:
		return record.NewList()
	case *record.Record:
		return record.NewRecord()
	default:
		return nil
	}
}
