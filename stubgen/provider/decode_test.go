package provider

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/stubgen/stubgen/ir"
)

const ecommerceJSON = `[
  {
    "name": "EcommerceView",
    "path": "EcommerceView",
    "methods": [
      {
        "name": "obterSelectEcommerces",
        "parameters": [
          {"name": "opcoes", "docType": "array", "optional": false},
          {"name": "params", "docType": "array", "optional": true, "defaultValue": []},
          {"name": "plataformas", "optional": true, "defaultValue": []},
          {"name": "retornarDados", "optional": true, "defaultValue": false}
        ],
        "returnType": {"docType": "string|array"}
      },
      {
        "name": "gerarLinksWebhooks",
        "parameters": [
          {"name": "idEcommerce", "type": "int", "optional": false},
          {"name": "limite", "optional": true, "defaultValue": 10},
          {"name": "nada", "optional": true, "defaultValue": null}
        ],
        "returnType": {}
      }
    ]
  }
]`

func TestDecode_JSON(t *testing.T) {
	res, err := Decode([]byte(ecommerceJSON), FormatJSON, "")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, "EcommerceView", rec.Name)
	require.Len(t, rec.Methods, 2)

	m := rec.Methods[0]
	assert.Equal(t, "string|array", m.Return.DocType)
	require.Len(t, m.Parameters, 4)
	assert.Nil(t, m.Parameters[0].Default)
	assert.Equal(t, []any{}, m.Parameters[1].Default.Value)
	assert.Equal(t, false, m.Parameters[3].Default.Value)

	p := rec.Methods[1].Parameters
	assert.Equal(t, "int", p[0].Type)
	assert.Equal(t, json.Number("10"), p[1].Default.Value)
	require.NotNil(t, p[2].Default, "explicit null is a default signal")
	assert.Nil(t, p[2].Default.Value)
}

func TestDecode_YAML(t *testing.T) {
	doc := `
- name: UsuarioView
  path: Admin/UsuarioView
  methods:
    - name: listar
      doc: Lista os usuários.
      parameters:
        - name: ids
          type: array
          docType: "int[]"
        - name: pagina
          optional: true
          defaultValue: 1
      returnType:
        type: array
`
	res, err := Decode([]byte(doc), FormatYAML, "sigs.yaml")
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	m := res.Records[0].Methods[0]
	assert.Equal(t, "Lista os usuários.", m.Doc)
	assert.Equal(t, "array", m.Return.Type)
	assert.Equal(t, "int[]", m.Parameters[0].DocType)
	assert.True(t, m.Parameters[1].Optional)
	assert.Equal(t, 1, m.Parameters[1].Default.Value)
}

func TestDecode_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n", "[]"} {
		res, err := Decode([]byte(in), FormatJSON, "")
		require.NoError(t, err)
		assert.Empty(t, res.Records)
		assert.Empty(t, res.Warnings)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "PHP Fatal error: Uncaught Error"},
		{"object root", `{"name": "X"}`},
		{"string root", `"x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in), FormatJSON, "")
			assert.Error(t, err)
		})
	}
}

func TestDecode_Warnings(t *testing.T) {
	in := `[
	  "not a record",
	  {"name": "SemPath"},
	  {"name": "A", "path": "A", "methods": {"x": 1}},
	  {"name": "B", "path": "B"},
	  {"name": "C", "path": "C", "methods": [
	    7,
	    {"parameters": []},
	    {"name": "semParametros"},
	    {"name": "paramsInvalidos", "parameters": "x"},
	    {"name": "paramsNulos", "parameters": null},
	    {"name": "paramSemNome", "parameters": [{"type": "int"}]},
	    {"name": "ok", "parameters": [{"name": "x"}]}
	  ]}
	]`

	res, err := Decode([]byte(in), FormatJSON, "stdout")
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "C", rec.Name)

	var names []string
	for _, m := range rec.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"semParametros", "ok"}, names)
	assert.Empty(t, rec.Methods[0].Parameters)

	var codes []string
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
		assert.Equal(t, "stdout", w.Source.File)
	}
	assert.Equal(t, []string{
		ir.WarnInvalidRecord,
		ir.WarnInvalidRecord,
		ir.WarnInvalidMethods,
		ir.WarnInvalidMethods,
		ir.WarnInvalidMethod,
		ir.WarnInvalidMethod,
		ir.WarnInvalidParameters,
		ir.WarnInvalidParameters,
		ir.WarnInvalidParameter,
	}, codes)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"sigs.json", FormatJSON},
		{"sigs.yaml", FormatYAML},
		{"sigs.YML", FormatYAML},
		{"sigs", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParameter_Signals(t *testing.T) {
	p := Parameter{Name: "x", Type: "int", DocType: "string", Optional: true}
	sig := p.Signals()
	assert.Equal(t, "x", sig.Name)
	assert.Equal(t, "int", sig.NativeHint)
	assert.Equal(t, "string", sig.DocType)
	assert.True(t, sig.Optional)
	assert.Nil(t, sig.Default)

	r := ReturnType{Type: "void"}.Signals()
	assert.Empty(t, r.Name)
	assert.Equal(t, "void", r.NativeHint)
}
