// Package annotation turns raw annotation signals into type descriptors.
//
// A parameter or return value carries up to three signals: a native type
// hint, a doc-comment type, and a default value. Resolve picks the raw
// annotation string by fixed priority, and Parse turns that string into an
// ir.TypeDescriptor.
package annotation

// Literal is a default value in its decoded runtime shape
// (bool, string, nil, a sequence, a number, or anything else).
type Literal struct {
	Value any
}

// Signals holds the annotation signals of one parameter or return value.
type Signals struct {
	// Name is the parameter name. Empty for return values.
	Name string

	// NativeHint is the declared type, if any.
	NativeHint string

	// DocType is the type from the doc comment tag, if any.
	DocType string

	// Optional is true if the parameter may be omitted.
	Optional bool

	// Default is the default value, or nil if there is none.
	// A non-nil Default with a nil Value is an explicit null default.
	Default *Literal
}
