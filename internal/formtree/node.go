// Package formtree provides the generic nested-document tree the resume
// editor operates on. A Node is a tagged union of record, list, and scalar
// shapes; the two operations that genuinely need heterogeneous traversal
// (validation and date conversion) pattern-match on Kind instead of
// reflecting on runtime types.
package formtree

import "time"

// Kind discriminates the Node union.
type Kind int

const (
	KindRecord Kind = iota
	KindList
	KindString
	KindDate
	KindBool
	KindNumber
	KindNull
)

// Node is one vertex of a form tree. Exactly the fields implied by Kind are
// meaningful; the zero Node is an empty record-less KindRecord and should not
// be used directly. Build nodes through the constructors.
type Node struct {
	Kind Kind

	keys   []string
	fields map[string]Node

	Items []Node
	Str   string
	Time  time.Time
	Bool  bool
	Num   float64
}

// Record returns an empty record node. Field insertion order is preserved so
// traversal and serialization are deterministic.
func Record() Node {
	return Node{Kind: KindRecord, fields: make(map[string]Node)}
}

// List returns a list node over the given items.
func List(items ...Node) Node {
	return Node{Kind: KindList, Items: items}
}

// String returns a string leaf.
func String(s string) Node {
	return Node{Kind: KindString, Str: s}
}

// Date returns a date leaf. Only the year/month/day of t are significant.
func Date(t time.Time) Node {
	return Node{Kind: KindDate, Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Bool returns a boolean leaf.
func Bool(b bool) Node {
	return Node{Kind: KindBool, Bool: b}
}

// Number returns a numeric leaf.
func Number(f float64) Node {
	return Node{Kind: KindNumber, Num: f}
}

// Null returns a null leaf.
func Null() Node {
	return Node{Kind: KindNull}
}

// Set adds or replaces a field on a record node. Setting an existing key
// keeps its original position.
func (n *Node) Set(key string, child Node) {
	if n.Kind != KindRecord {
		return
	}
	if n.fields == nil {
		n.fields = make(map[string]Node)
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = child
}

// Get fetches a field from a record node.
func (n Node) Get(key string) (Node, bool) {
	child, ok := n.fields[key]
	return child, ok
}

// Keys returns record field names in insertion order. The returned slice is
// shared; callers must not mutate it.
func (n Node) Keys() []string {
	return n.keys
}

// Len returns the number of fields or items, depending on shape.
func (n Node) Len() int {
	switch n.Kind {
	case KindRecord:
		return len(n.keys)
	case KindList:
		return len(n.Items)
	default:
		return 0
	}
}

// MapLeaves rebuilds the tree applying f to every leaf node, preserving
// record keys and list order. Record and list nodes are never passed to f.
func MapLeaves(n Node, f func(Node) Node) Node {
	switch n.Kind {
	case KindRecord:
		out := Record()
		for _, key := range n.keys {
			out.Set(key, MapLeaves(n.fields[key], f))
		}
		return out
	case KindList:
		items := make([]Node, len(n.Items))
		for i, item := range n.Items {
			items[i] = MapLeaves(item, f)
		}
		return List(items...)
	default:
		return f(n)
	}
}

// Equal reports structural equality. Record key order is ignored; only the
// key set and the values matter.
func Equal(a, b Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindRecord:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for key, av := range a.fields {
			bv, ok := b.fields[key]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindList:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case KindString:
		return a.Str == b.Str
	case KindDate:
		return a.Time.Equal(b.Time)
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Num == b.Num
	case KindNull:
		return true
	default:
		return false
	}
}
