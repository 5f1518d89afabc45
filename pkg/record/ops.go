package record

import (
	"fmt"
	"strings"

	apperr "github.com/matzehuels/autotype/pkg/errors"
)

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Text:
		return v
	case *List:
		if v == nil {
			return NewList()
		}
		out := &List{items: make([]Value, len(v.items))}
		for i, item := range v.items {
			out.items[i] = Clone(item)
		}
		return out
	case *Record:
		return CloneRecord(v)
	default:
		return nil
	}
}

// CloneRecord returns a deep copy of r. A nil record clones to an empty one.
func CloneRecord(r *Record) *Record {
	out := &Record{fields: make(map[string]Value, r.Len())}
	if r == nil {
		return out
	}
	out.keys = make([]string, len(r.keys))
	copy(out.keys, r.keys)
	for k, v := range r.fields {
		out.fields[k] = Clone(v)
	}
	return out
}

// Equal reports whether a and b hold the same data. Records compare by key
// set, not key order.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Text:
		bt, ok := b.(Text)
		return ok && a == bt
	case *List:
		bl, ok := b.(*List)
		if !ok || a.Len() != bl.Len() {
			return false
		}
		for i := range a.Len() {
			if !Equal(a.items[i], bl.items[i]) {
				return false
			}
		}
		return true
	case *Record:
		br, ok := b.(*Record)
		if !ok || a.Len() != br.Len() {
			return false
		}
		for k, av := range a.Fields() {
			bv, ok := br.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

// CountChars returns the total number of runes across every text value in v.
// It is the number of atomic typing steps needed to write v from scratch.
func CountChars(v Value) int {
	switch v := v.(type) {
	case Text:
		return v.Len()
	case *List:
		n := 0
		for _, item := range v.Items() {
			n += CountChars(item)
		}
		return n
	case *Record:
		n := 0
		for _, field := range v.Fields() {
			n += CountChars(field)
		}
		return n
	default:
		return 0
	}
}

// IsEmpty reports whether v is an empty text, an empty list, or a record
// whose fields are all empty. A nil value is empty.
func IsEmpty(v Value) bool {
	switch v := v.(type) {
	case Text:
		return v == ""
	case *List:
		return v.Len() == 0
	case *Record:
		for _, field := range v.Fields() {
			if !IsEmpty(field) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Lookup returns the value at a dot-separated path of record keys.
func Lookup(r *Record, path string) (Value, bool) {
	var cur Value = r
	for _, key := range strings.Split(path, ".") {
		rec, ok := cur.(*Record)
		if !ok {
			return nil, false
		}
		if cur, ok = rec.Get(key); !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetPath stores v at a dot-separated path. Every record on the way must
// already exist; SetPath reports false and leaves r untouched otherwise.
func SetPath(r *Record, path string, v Value) bool {
	keys := strings.Split(path, ".")
	parent := r
	for _, key := range keys[:len(keys)-1] {
		next, ok := parent.Get(key)
		if !ok {
			return false
		}
		if parent, ok = next.(*Record); !ok {
			return false
		}
	}
	if parent == nil {
		return false
	}
	parent.Set(keys[len(keys)-1], v)
	return true
}

// SameShape reports whether a and b have identical key sets at every level
// and the same kind at every corresponding position. Lists may differ in
// length; elements present in both are compared. The returned error carries
// [apperr.ErrCodeShapeMismatch] and names the first diverging path.
func SameShape(a, b Value) error {
	return sameShape("", a, b)
}

func sameShape(path string, a, b Value) error {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return apperr.New(apperr.ErrCodeShapeMismatch, "%s: %s vs %s", where(path), kindOf(a), kindOf(b))
	}
	switch a := a.(type) {
	case *List:
		bl := b.(*List)
		for i := range min(a.Len(), bl.Len()) {
			if err := sameShape(fmt.Sprintf("%s[%d]", path, i), a.At(i), bl.At(i)); err != nil {
				return err
			}
		}
	case *Record:
		br := b.(*Record)
		for k, av := range a.Fields() {
			bv, ok := br.Get(k)
			if !ok {
				return apperr.New(apperr.ErrCodeShapeMismatch, "%s: key missing on the right", where(join(path, k)))
			}
			if err := sameShape(join(path, k), av, bv); err != nil {
				return err
			}
		}
		for _, k := range br.Keys() {
			if _, ok := a.Get(k); !ok {
				return apperr.New(apperr.ErrCodeShapeMismatch, "%s: key missing on the left", where(join(path, k)))
			}
		}
	}
	return nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func where(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

func kindOf(v Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}
