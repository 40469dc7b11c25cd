package typescript

import (
	"testing"

	"github.com/broady/stubgen/stubgen/ir"
)

func TestRenderer_Render(t *testing.T) {
	tests := []struct {
		name string
		in   ir.TypeDescriptor
		want string
	}{
		{"string", ir.String(), "string"},
		{"number", ir.Number(), "number"},
		{"boolean", ir.Boolean(), "boolean"},
		{"void", ir.Void(), "void"},
		{"unknown", ir.Unknown(), "any"},
		{"nil", nil, "any"},
		{"array", ir.ArrayOf(ir.String()), "string[]"},
		{"nested array", ir.ArrayOf(ir.ArrayOf(ir.Number())), "number[][]"},
		{"array of union", ir.ArrayOf(ir.Union(ir.String(), ir.Number())), "(string | number)[]"},
		{"array of single-member union", ir.ArrayOf(ir.Union(ir.String())), "string[]"},
		{"open map", ir.OpenMap(), "Record<string, any>"},
		{"map", ir.MapOf(ir.Number(), ir.Boolean()), "Record<number, boolean>"},
		{"union", ir.Union(ir.String(), ir.OpenMap()), "string | Record<string, any>"},
		{"empty union", ir.Union(), "any"},
		{"map of array", ir.MapOf(ir.String(), ir.ArrayOf(ir.Number())), "Record<string, number[]>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Renderer{}).Render(tt.in); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_UnknownType(t *testing.T) {
	r := Renderer{UnknownType: "unknown"}
	if got := r.Render(ir.OpenMap()); got != "Record<string, unknown>" {
		t.Errorf("Render() = %q, want %q", got, "Record<string, unknown>")
	}
	if got := r.Render(ir.Union()); got != "unknown" {
		t.Errorf("Render() = %q, want %q", got, "unknown")
	}
}
