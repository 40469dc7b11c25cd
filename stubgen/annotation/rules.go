package annotation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule maps a parameter name predicate to a replacement raw type.
// Rules are consulted only for targets that no signal resolved.
type Rule struct {
	// Test reports whether the rule applies to the parameter name.
	Test func(name string) bool

	// Type is the raw annotation used when Test matches, e.g. "number | string".
	Type string

	// Desc describes the predicate for diagnostics.
	Desc string
}

// Rules is an ordered rule list. The first matching rule wins.
type Rules []Rule

// Lookup returns the replacement type of the first rule matching name.
func (rs Rules) Lookup(name string) (string, bool) {
	for _, r := range rs {
		if r.Test != nil && r.Test(name) {
			return r.Type, true
		}
	}
	return "", false
}

// PrefixRule returns a rule matching names that start with prefix.
func PrefixRule(prefix, typ string) Rule {
	return Rule{
		Test: func(name string) bool { return strings.HasPrefix(name, prefix) },
		Type: typ,
		Desc: fmt.Sprintf("prefix %q", prefix),
	}
}

// DefaultRules returns the rules applied when configuration supplies none:
// identifiers ("id", "idEcommerce", ...) accept either numbers or strings.
func DefaultRules() Rules {
	return Rules{PrefixRule("id", "number | string")}
}

// MatchKind selects how a RuleSpec pattern is compared against a parameter name.
type MatchKind string

const (
	MatchPrefix   MatchKind = "prefix"
	MatchSuffix   MatchKind = "suffix"
	MatchExact    MatchKind = "exact"
	MatchContains MatchKind = "contains"
	MatchRegex    MatchKind = "regex"
)

// RuleSpec is the declarative form of a Rule, as found in configuration files
// and on the command line.
type RuleSpec struct {
	Match   MatchKind `mapstructure:"match" schema:"match" validate:"required,oneof=prefix suffix exact contains regex"`
	Pattern string    `mapstructure:"pattern" schema:"pattern" validate:"required"`
	Type    string    `mapstructure:"type" schema:"type" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Compile validates the spec and builds its Rule.
func (s RuleSpec) Compile() (Rule, error) {
	if err := validate.Struct(s); err != nil {
		return Rule{}, fmt.Errorf("invalid rule %+v: %w", s, err)
	}

	pattern := s.Pattern
	r := Rule{Type: s.Type, Desc: fmt.Sprintf("%s %q", s.Match, pattern)}
	switch s.Match {
	case MatchPrefix:
		r.Test = func(name string) bool { return strings.HasPrefix(name, pattern) }
	case MatchSuffix:
		r.Test = func(name string) bool { return strings.HasSuffix(name, pattern) }
	case MatchExact:
		r.Test = func(name string) bool { return name == pattern }
	case MatchContains:
		r.Test = func(name string) bool { return strings.Contains(name, pattern) }
	case MatchRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid rule pattern %q: %w", pattern, err)
		}
		r.Test = re.MatchString
	}
	return r, nil
}

// CompileRules compiles specs in order.
func CompileRules(specs []RuleSpec) (Rules, error) {
	rules := make(Rules, 0, len(specs))
	for i, s := range specs {
		r, err := s.Compile()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}
