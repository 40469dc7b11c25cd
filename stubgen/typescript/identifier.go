package typescript

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypeScript reserved words from Appendix B.
var reservedWords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"implements": true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"interface":  true,
	"let":        true,
	"new":        true,
	"null":       true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"return":     true,
	"static":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"type":       true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
	"yield":      true,
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// needsQuoting returns true if name cannot be used as a bare property key.
// Reserved words are valid property keys.
func needsQuoting(name string) bool {
	if name == "" {
		return true
	}

	if unicode.IsDigit(rune(name[0])) {
		return true
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return true
		}
	}
	return false
}

// propertyKey returns name as an object literal key, quoted if necessary.
func propertyKey(name string) string {
	if needsQuoting(name) {
		return strconv.Quote(name)
	}
	return name
}

// sanitizeIdentifier makes a parameter or method name a valid TypeScript binding.
func sanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}

	var result strings.Builder

	if unicode.IsDigit(rune(name[0])) {
		result.WriteRune('_')
	}

	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}

	return escapeReservedWord(result.String())
}

// scope hands out distinct bindings within one declaration space.
// Names that sanitize to a taken binding get extra "_" suffixes, so
// "delete" and "delete_" declared together become "delete_" and "delete__".
type scope map[string]bool

// newScope returns a scope with the dispatcher global reserved, so no
// binding can shadow it.
func newScope() scope {
	return scope{dispatcher: true}
}

// bind returns a binding for name unused in s and marks it taken.
func (s scope) bind(name string) string {
	id := sanitizeIdentifier(name)
	for s[id] {
		id += "_"
	}
	s[id] = true
	return id
}

// upperFirst upper-cases the first letter of s.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
