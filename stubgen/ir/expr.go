package ir

import "strings"

// ArrayDescriptor represents an ordered collection (T[] in the source notation).
type ArrayDescriptor struct {
	exprBase

	// Element is the array element type. Never nil.
	Element TypeDescriptor
}

// Kind returns KindArray.
func (d *ArrayDescriptor) Kind() DescriptorKind { return KindArray }

// String returns "array<element>".
func (d *ArrayDescriptor) String() string {
	return "array<" + canonical(d.Element) + ">"
}

// ArrayOf returns an ArrayDescriptor. A nil element becomes Unknown().
func ArrayOf(element TypeDescriptor) *ArrayDescriptor {
	if element == nil {
		element = Unknown()
	}
	return &ArrayDescriptor{Element: element}
}

// MapDescriptor represents a key-value mapping.
//
// Both the tuple notation Base<Key,Value> and the bare container keywords
// (array, object) produce a MapDescriptor; the latter use OpenMap().
type MapDescriptor struct {
	exprBase

	// Key is the map key type. Never nil.
	Key TypeDescriptor

	// Value is the map value type. Never nil.
	Value TypeDescriptor
}

// Kind returns KindMap.
func (d *MapDescriptor) Kind() DescriptorKind { return KindMap }

// String returns "map<key,value>".
func (d *MapDescriptor) String() string {
	return "map<" + canonical(d.Key) + "," + canonical(d.Value) + ">"
}

// MapOf returns a MapDescriptor. Nil key or value become Unknown().
func MapOf(key, value TypeDescriptor) *MapDescriptor {
	if key == nil {
		key = Unknown()
	}
	if value == nil {
		value = Unknown()
	}
	return &MapDescriptor{Key: key, Value: value}
}

// OpenMap returns the open string-keyed map used for untyped containers.
func OpenMap() *MapDescriptor {
	return MapOf(String(), Unknown())
}

// UnionDescriptor represents a union of types (T1 | T2 | ...).
//
// Types never contains another *UnionDescriptor and never contains two
// structurally equal members; both are enforced by Union().
type UnionDescriptor struct {
	exprBase

	// Types contains the union members in first-occurrence order.
	Types []TypeDescriptor
}

// Kind returns KindUnion.
func (d *UnionDescriptor) Kind() DescriptorKind { return KindUnion }

// String returns "union<a,b,...>".
func (d *UnionDescriptor) String() string {
	parts := make([]string, len(d.Types))
	for i, t := range d.Types {
		parts[i] = canonical(t)
	}
	return "union<" + strings.Join(parts, ",") + ">"
}

// Union returns a UnionDescriptor over types.
// Nested unions are flattened into the result, duplicates are dropped keeping
// the first occurrence, and nil members are treated as Unknown().
func Union(types ...TypeDescriptor) *UnionDescriptor {
	u := &UnionDescriptor{Types: make([]TypeDescriptor, 0, len(types))}
	seen := make(map[string]bool, len(types))

	var add func(t TypeDescriptor)
	add = func(t TypeDescriptor) {
		if t == nil {
			t = Unknown()
		}
		if nested, ok := t.(*UnionDescriptor); ok {
			for _, m := range nested.Types {
				add(m)
			}
			return
		}
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		u.Types = append(u.Types, t)
	}

	for _, t := range types {
		add(t)
	}
	return u
}

// Join is like Union but collapses the result: zero members yield Unknown()
// and a single remaining member is returned unwrapped.
func Join(types ...TypeDescriptor) TypeDescriptor {
	u := Union(types...)
	switch len(u.Types) {
	case 0:
		return Unknown()
	case 1:
		return u.Types[0]
	default:
		return u
	}
}
