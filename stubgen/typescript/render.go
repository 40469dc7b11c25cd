package typescript

import (
	"fmt"
	"strings"

	"github.com/broady/stubgen/stubgen/ir"
)

// Renderer converts type descriptors into TypeScript type expressions.
// The zero value renders the unknown type as DefaultUnknownType.
type Renderer struct {
	// UnknownType is the token rendered for the unknown type.
	UnknownType string
}

// Render returns the TypeScript type expression for d. It never fails;
// anything it cannot express becomes the unknown token.
func (r Renderer) Render(d ir.TypeDescriptor) string {
	switch t := d.(type) {
	case *ir.ScalarDescriptor:
		return r.renderScalar(t)
	case *ir.ArrayDescriptor:
		return r.renderArray(t)
	case *ir.MapDescriptor:
		return fmt.Sprintf("Record<%s, %s>", r.Render(t.Key), r.Render(t.Value))
	case *ir.UnionDescriptor:
		return r.renderUnion(t)
	default:
		return r.unknown()
	}
}

func (r Renderer) unknown() string {
	if r.UnknownType == "" {
		return DefaultUnknownType
	}
	return r.UnknownType
}

func (r Renderer) renderScalar(s *ir.ScalarDescriptor) string {
	switch s.ScalarKind {
	case ir.ScalarString:
		return "string"
	case ir.ScalarNumber:
		return "number"
	case ir.ScalarBoolean:
		return "boolean"
	case ir.ScalarVoid:
		return "void"
	default:
		return r.unknown()
	}
}

func (r Renderer) renderArray(a *ir.ArrayDescriptor) string {
	elem := r.Render(a.Element)
	if u, ok := a.Element.(*ir.UnionDescriptor); ok && len(u.Types) > 1 {
		elem = "(" + elem + ")"
	}
	return elem + "[]"
}

func (r Renderer) renderUnion(u *ir.UnionDescriptor) string {
	if len(u.Types) == 0 {
		return r.unknown()
	}
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = r.Render(t)
	}
	return strings.Join(parts, " | ")
}
