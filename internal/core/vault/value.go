// Package vault defines the note domain model: frontmatter values, the
// ordered string-keyed mapping that holds them, and the note itself.
package vault

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindSequence
	KindMapping
)

// Value is an immutable YAML frontmatter value. Floats remember their source
// text so renderings round-trip the way the author wrote them.
type Value struct {
	kind Kind
	str  string // KindString text, KindFloat source text
	num  int64
	f    float64
	b    bool
	seq  []Value
	m    *Mapping
}

// NullValue returns the null value.
func NullValue() Value { return Value{kind: KindNull} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue wraps i.
func IntValue(i int64) Value { return Value{kind: KindInt, num: i} }

// FloatValue wraps f. The rendered form uses the shortest representation
// that parses back to f.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// floatValueRaw preserves the source text of a parsed float.
func floatValueRaw(raw string, f float64) Value {
	return Value{kind: KindFloat, f: f, str: raw}
}

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// SequenceValue wraps the given elements.
func SequenceValue(elems ...Value) Value { return Value{kind: KindSequence, seq: elems} }

// MappingValue wraps a nested mapping.
func MappingValue(m *Mapping) Value { return Value{kind: KindMapping, m: m} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string content when v is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Sequence returns the elements when v is a sequence.
func (v Value) Sequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return v.seq, true
}

// AsMapping returns the nested mapping when v is one.
func (v Value) AsMapping() (*Mapping, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return v.m, true
}

// String renders v in its canonical textual form. Scalars render as their
// source text; sequences and mappings fall back to compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	default:
		raw, err := json.Marshal(v.JSON())
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// Contains reports whether the rendering of v contains sub. Sequences match
// when any element matches; mappings and null never match.
func (v Value) Contains(sub string) bool {
	switch v.kind {
	case KindSequence:
		for _, e := range v.seq {
			if e.Contains(sub) {
				return true
			}
		}
		return false
	case KindMapping, KindNull:
		return false
	default:
		return strings.Contains(v.String(), sub)
	}
}

// ContainsFold is Contains under case folding.
func (v Value) ContainsFold(sub string) bool {
	switch v.kind {
	case KindSequence:
		for _, e := range v.seq {
			if e.ContainsFold(sub) {
				return true
			}
		}
		return false
	case KindMapping, KindNull:
		return false
	default:
		return strings.Contains(strings.ToLower(v.String()), strings.ToLower(sub))
	}
}

// Flatten returns the scalar view of v used for value collection: a sequence
// yields its elements, anything else yields v itself. Elements that are not
// plain scalars are kept and render through the JSON fallback.
func (v Value) Flatten() []Value {
	if v.kind == KindSequence {
		return v.seq
	}
	return []Value{v}
}

// JSON converts v to the generic tree shape encoding/json understands.
func (v Value) JSON() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.JSON()
		}
		return out
	case KindMapping:
		return v.m.JSON()
	default:
		return nil
	}
}

// Mapping is a string-keyed map that preserves YAML source order. Keys are
// always strings; the parser drops anything else.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: map[string]Value{}}
}

// Set stores v under key, appending key to the order on first insert.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get performs an exact-key lookup. Safe on a nil mapping.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// GetFold resolves key case-insensitively: an exact match wins, otherwise the
// first key in source order whose lowercase form matches. Returns the
// original spelling of the matched key.
func (m *Mapping) GetFold(key string) (Value, string, bool) {
	if v, ok := m.Get(key); ok {
		return v, key, true
	}
	if m == nil {
		return Value{}, "", false
	}
	lower := strings.ToLower(key)
	for _, k := range m.keys {
		if strings.ToLower(k) == lower {
			return m.values[k], k, true
		}
	}
	return Value{}, "", false
}

// Keys returns the keys in source order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// JSON converts the mapping to a map[string]any tree for serialization.
func (m *Mapping) JSON() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out[k] = m.values[k].JSON()
	}
	return out
}
