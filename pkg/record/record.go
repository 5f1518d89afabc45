package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"unicode/utf8"
)

// Kind identifies which variant a [Value] holds.
type Kind int

const (
	KindText Kind = iota + 1
	KindList
	KindRecord
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is one of [Text], [*List] or [*Record].
type Value interface {
	Kind() Kind
	sealed()
}

// =============================================================================
// Text
// =============================================================================

// Text is a string value. Its length is measured in runes.
type Text string

// Kind returns KindText.
func (Text) Kind() Kind { return KindText }
func (Text) sealed()    {}

// Len returns the number of runes in t.
func (t Text) Len() int { return utf8.RuneCountInString(string(t)) }

// =============================================================================
// List
// =============================================================================

// List is an ordered sequence of values.
type List struct {
	items []Value
}

// NewList creates a list holding items.
func NewList(items ...Value) *List {
	return &List{items: slices.Clone(items)}
}

// Kind returns KindList.
func (*List) Kind() Kind { return KindList }
func (*List) sealed()    {}

// Len returns the number of elements. A nil list is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the element at index i.
func (l *List) At(i int) Value { return l.items[i] }

// SetAt replaces the element at index i.
func (l *List) SetAt(i int, v Value) { l.items[i] = v }

// Append adds v to the end of the list.
func (l *List) Append(v Value) { l.items = append(l.items, v) }

// Items iterates over index/element pairs.
func (l *List) Items() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if l == nil {
			return
		}
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// MarshalJSON encodes the list as a JSON array.
func (l *List) MarshalJSON() ([]byte, error) {
	if l == nil || len(l.items) == 0 {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// =============================================================================
// Record
// =============================================================================

// Record is an ordered mapping from string keys to values.
// The zero value is not usable; create records with [NewRecord].
type Record struct {
	keys   []string
	fields map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Kind returns KindRecord.
func (*Record) Kind() Kind { return KindRecord }
func (*Record) sealed()    {}

// Len returns the number of fields. A nil record is empty.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// Get returns the value stored at key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.fields[key]
	return v, ok
}

// Set stores v at key. New keys are appended to the key order; existing keys
// keep their position.
func (r *Record) Set(key string, v Value) *Record {
	if _, ok := r.fields[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = v
	return r
}

// Fields iterates over key/value pairs in key order.
func (r *Record) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.fields[k]) {
				return
			}
		}
	}
}

// Map converts the record into plain Go values: map[string]any for records,
// []any for lists and string for text. Key order is lost.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	for k, v := range r.Fields() {
		out[k] = plain(v)
	}
	return out
}

func plain(v Value) any {
	switch v := v.(type) {
	case Text:
		return string(v)
	case *List:
		out := make([]any, 0, v.Len())
		for _, item := range v.Items() {
			out = append(out, plain(item))
		}
		return out
	case *Record:
		return v.Map()
	default:
		return nil
	}
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// =============================================================================
// Literals
// =============================================================================

// Of builds a record from alternating keys and values, for literals in code
// and tests. Values may be a Value, a string, or a []any (converted with
// [ListOf]). Of panics on an odd argument count, a non-string key or an
// unsupported value.
func Of(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("record.Of: odd number of arguments")
	}
	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("record.Of: key %v is not a string", kv[i]))
		}
		r.Set(key, literal(kv[i+1]))
	}
	return r
}

// ListOf builds a list literal. Items follow the same rules as values in [Of].
func ListOf(items ...any) *List {
	l := &List{items: make([]Value, 0, len(items))}
	for _, item := range items {
		l.items = append(l.items, literal(item))
	}
	return l
}

func literal(v any) Value {
	switch v := v.(type) {
	case Value:
		return v
	case string:
		return Text(v)
	case []any:
		return ListOf(v...)
	default:
		panic(fmt.Sprintf("record: unsupported literal %T", v))
	}
}
