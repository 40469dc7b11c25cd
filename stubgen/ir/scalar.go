package ir

// ScalarKind identifies the category of a scalar type.
type ScalarKind int

const (
	ScalarUnknown ScalarKind = iota // No signal yielded a recognizable type
	ScalarString
	ScalarNumber // int, float and any other numeric annotation
	ScalarBoolean
	ScalarVoid
)

// String returns the string representation of the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "string"
	case ScalarNumber:
		return "number"
	case ScalarBoolean:
		return "boolean"
	case ScalarVoid:
		return "void"
	default:
		return "unknown"
	}
}

// ScalarDescriptor represents a non-composite type.
type ScalarDescriptor struct {
	exprBase
	ScalarKind ScalarKind
}

// Kind returns KindScalar.
func (d *ScalarDescriptor) Kind() DescriptorKind { return KindScalar }

// String returns the scalar kind name.
func (d *ScalarDescriptor) String() string { return d.ScalarKind.String() }

// Convenience constructors for the scalar kinds.

// String returns a ScalarDescriptor for string.
func String() *ScalarDescriptor {
	return &ScalarDescriptor{ScalarKind: ScalarString}
}

// Number returns a ScalarDescriptor for number.
func Number() *ScalarDescriptor {
	return &ScalarDescriptor{ScalarKind: ScalarNumber}
}

// Boolean returns a ScalarDescriptor for boolean.
func Boolean() *ScalarDescriptor {
	return &ScalarDescriptor{ScalarKind: ScalarBoolean}
}

// Void returns a ScalarDescriptor for void.
func Void() *ScalarDescriptor {
	return &ScalarDescriptor{ScalarKind: ScalarVoid}
}

// Unknown returns a ScalarDescriptor for the unknown type.
func Unknown() *ScalarDescriptor {
	return &ScalarDescriptor{ScalarKind: ScalarUnknown}
}

// IsUnknown reports whether d is the unknown scalar (or nil).
func IsUnknown(d TypeDescriptor) bool {
	if d == nil {
		return true
	}
	s, ok := d.(*ScalarDescriptor)
	return ok && s.ScalarKind == ScalarUnknown
}
