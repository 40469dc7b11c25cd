package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSpec_Compile(t *testing.T) {
	tests := []struct {
		spec    RuleSpec
		name    string
		matches bool
	}{
		{RuleSpec{Match: MatchPrefix, Pattern: "id", Type: "number"}, "idLoja", true},
		{RuleSpec{Match: MatchPrefix, Pattern: "id", Type: "number"}, "lojaId", false},
		{RuleSpec{Match: MatchSuffix, Pattern: "Id", Type: "number"}, "lojaId", true},
		{RuleSpec{Match: MatchExact, Pattern: "page", Type: "number"}, "page", true},
		{RuleSpec{Match: MatchExact, Pattern: "page", Type: "number"}, "pages", false},
		{RuleSpec{Match: MatchContains, Pattern: "Data", Type: "string"}, "retornarDados", false},
		{RuleSpec{Match: MatchContains, Pattern: "Dad", Type: "string"}, "retornarDados", true},
		{RuleSpec{Match: MatchRegex, Pattern: `^is[A-Z]`, Type: "bool"}, "isAtivo", true},
		{RuleSpec{Match: MatchRegex, Pattern: `^is[A-Z]`, Type: "bool"}, "issue", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.spec.Match)+"/"+tt.name, func(t *testing.T) {
			r, err := tt.spec.Compile()
			require.NoError(t, err)
			assert.Equal(t, tt.matches, r.Test(tt.name))
			assert.Equal(t, tt.spec.Type, r.Type)
		})
	}
}

func TestRuleSpec_CompileInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec RuleSpec
	}{
		{"unknown match", RuleSpec{Match: "glob", Pattern: "*", Type: "string"}},
		{"missing pattern", RuleSpec{Match: MatchPrefix, Type: "string"}},
		{"missing type", RuleSpec{Match: MatchPrefix, Pattern: "id"}},
		{"bad regex", RuleSpec{Match: MatchRegex, Pattern: "(", Type: "string"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Compile()
			assert.Error(t, err)
		})
	}
}

func TestCompileRules_Order(t *testing.T) {
	rules, err := CompileRules([]RuleSpec{
		{Match: MatchExact, Pattern: "idioma", Type: "string"},
		{Match: MatchPrefix, Pattern: "id", Type: "number"},
	})
	require.NoError(t, err)
	require.Len(t, rules, 2)

	typ, ok := rules.Lookup("idioma")
	assert.True(t, ok)
	assert.Equal(t, "string", typ)

	typ, ok = rules.Lookup("idPedido")
	assert.True(t, ok)
	assert.Equal(t, "number", typ)

	_, ok = rules.Lookup("nome")
	assert.False(t, ok)
}

func TestCompileRules_Error(t *testing.T) {
	_, err := CompileRules([]RuleSpec{
		{Match: MatchPrefix, Pattern: "id", Type: "number"},
		{Match: "bogus"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 1")
}

func TestDefaultRules(t *testing.T) {
	typ, ok := DefaultRules().Lookup("idEcommerce")
	assert.True(t, ok)
	assert.Equal(t, "number | string", typ)

	_, ok = DefaultRules().Lookup("webhooks")
	assert.False(t, ok)
}
