package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindScalar DescriptorKind = iota // string, number, boolean, void or unknown
	KindArray                        // Ordered collection (T[])
	KindMap                          // Key-value mapping (Base<K,V> or bare array/object)
	KindUnion                        // Union of types (T1 | T2 | ...)
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindUnion:
		return "Union"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
//
// The set of implementations is closed: ScalarDescriptor, ArrayDescriptor,
// MapDescriptor and UnionDescriptor. Descriptors are never mutated after
// construction.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// String returns the canonical form of the descriptor.
	// Two descriptors are structurally equal iff their canonical forms are equal.
	// Examples: "number", "array<string>", "map<string,unknown>", "union<number,string>".
	String() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// exprBase seals the descriptor interface.
type exprBase struct{}

func (exprBase) sealed() {}

// Equal reports whether a and b describe the same type.
// A nil descriptor is treated as Unknown().
func Equal(a, b TypeDescriptor) bool {
	return canonical(a) == canonical(b)
}

func canonical(d TypeDescriptor) string {
	if d == nil {
		return Unknown().String()
	}
	return d.String()
}
