// Package tree holds the format independent response value that every
// operation produces and every serializer consumes.
package tree

import (
	"strconv"
)

// Node is one of *Map, List or Scalar.
type Node interface {
	node()
}

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value Node
}

// Map is a string keyed mapping that keeps insertion order.
type Map struct {
	entries []Entry
	index   map[string]int
}

func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

func (*Map) node() {}

// Set adds key at the end of the map, or replaces the value in place when
// the key already exists.
func (m *Map) Set(key string, value Node) *Map {
	if m.index == nil {
		m.index = map[string]int{}
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
	return m
}

func (m *Map) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

func (m *Map) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

func (m *Map) Len() int { return len(m.entries) }

// Entries returns the entries in insertion order. The slice must not be modified.
func (m *Map) Entries() []Entry { return m.entries }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// List is an ordered sequence of nodes.
type List []Node

func (List) node() {}

// Scalar wraps a string, int64, float64, bool or nil.
type Scalar struct {
	v any
}

func (Scalar) node() {}

func String(s string) Scalar { return Scalar{v: s} }
func Int(i int64) Scalar     { return Scalar{v: i} }
func Float(f float64) Scalar { return Scalar{v: f} }
func Bool(b bool) Scalar     { return Scalar{v: b} }
func Null() Scalar           { return Scalar{} }

func (s Scalar) Value() any   { return s.v }
func (s Scalar) IsNull() bool { return s.v == nil }

// Text is the textual form used by the markup and plain text renderers:
// booleans become "true"/"false" and null becomes the empty string.
func (s Scalar) Text() string {
	switch v := s.v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Plain converts n into map[string]any, []any and scalar values.
func Plain(n Node) any {
	switch n := n.(type) {
	case *Map:
		out := make(map[string]any, n.Len())
		for _, e := range n.entries {
			out[e.Key] = Plain(e.Value)
		}
		return out
	case List:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = Plain(v)
		}
		return out
	case Scalar:
		return n.v
	default:
		return nil
	}
}
