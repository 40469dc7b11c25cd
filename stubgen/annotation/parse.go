package annotation

import (
	"strings"

	"github.com/broady/stubgen/stubgen/ir"
)

// Parse converts a raw annotation string into a TypeDescriptor.
//
// The grammar is small and fixed:
//
//	T[]          array of T
//	Base<K, V>   map from K to V (Base is ignored)
//	array        open map (string keys, unknown values)
//	object       open map
//	string       string
//	int, float   number (so is "number")
//	bool         boolean (so is "boolean")
//	void         void
//	A|B          union of A and B
//
// Anything else, including "mixed" and the empty string, is unknown.
// Parse never fails. Unions inside element positions (e.g. "(A|B)[]") are
// not recognised.
func Parse(raw string) ir.TypeDescriptor {
	parts := strings.Split(raw, "|")
	if len(parts) == 1 {
		return parseMember(strings.TrimSpace(parts[0]))
	}

	members := make([]ir.TypeDescriptor, len(parts))
	for i, p := range parts {
		members[i] = parseMember(strings.TrimSpace(p))
	}
	return ir.Join(members...)
}

func parseMember(s string) ir.TypeDescriptor {
	if rest, ok := strings.CutSuffix(s, "[]"); ok {
		return ir.ArrayOf(parseMember(strings.TrimSpace(rest)))
	}

	if key, value, ok := splitTuple(s); ok {
		return ir.MapOf(parseMember(key), parseMember(value))
	}

	switch s {
	case "array", "object":
		return ir.OpenMap()
	case "string":
		return ir.String()
	case "int", "float", "number":
		return ir.Number()
	case "bool", "boolean":
		return ir.Boolean()
	case "void":
		return ir.Void()
	default:
		return ir.Unknown()
	}
}

// splitTuple splits "Base<K, V>" into its trimmed key and value.
// The key ends at the first comma after "<"; the value ends at the ">" that
// closes the first "<". It reports false if either delimiter is missing.
func splitTuple(s string) (key, value string, ok bool) {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return "", "", false
	}
	closing := matchAngle(s, open)
	if closing < 0 {
		return "", "", false
	}
	comma := strings.IndexByte(s[open:closing], ',')
	if comma < 0 {
		return "", "", false
	}
	comma += open
	return strings.TrimSpace(s[open+1 : comma]), strings.TrimSpace(s[comma+1 : closing]), true
}

// matchAngle returns the index of the '>' closing the '<' at s[open], or -1.
func matchAngle(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
