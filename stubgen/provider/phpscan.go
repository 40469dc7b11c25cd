package provider

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/broady/stubgen/stubgen/annotation"
)

// phpLexer tokenizes PHP source well enough to find class members.
// Rules are tried in order.
var phpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "DocComment", Pattern: `/\*\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "Attr", Pattern: `#\[`},
	{Name: "Comment", Pattern: `/\*(?:[^*]|\*+[^*/])*\*+/|//[^\n]*|#[^\n]*`},
	{Name: "OpenTag", Pattern: `<\?php|<\?=`},
	{Name: "CloseTag", Pattern: `\?>`},
	{Name: "String", Pattern: `'(?:\\.|[^'\\])*'|"(?:\\.|[^"\\])*"`},
	{Name: "Variable", Pattern: `\$[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|\d[\d_]*(?:\.[\d_]*)?(?:[eE][+-]?\d+)?|\.\d[\d_]*(?:[eE][+-]?\d+)?`},
	{Name: "Ident", Pattern: `\\?[\p{L}_][\p{L}\p{N}_]*(?:\\[\p{L}_][\p{L}\p{N}_]*)*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "Arrow", Pattern: `=>|\?->|->`},
	{Name: "Punct", Pattern: `[{}()\[\];,=?:&|]`},
	{Name: "Other", Pattern: `.`},
})

var phpSymbols = phpLexer.Symbols()

// phpClass is the first class declared in a PHP file.
type phpClass struct {
	Name    string
	Line    int
	Methods []Method
}

// scanPHP returns the first class declared in the source, or nil if none.
// Only public methods declared directly in the class body are reported.
func scanPHP(filename string, r io.Reader) (*phpClass, error) {
	lex, err := phpLexer.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	skip := map[lexer.TokenType]bool{
		phpSymbols["Whitespace"]: true,
		phpSymbols["Comment"]:    true,
		lexer.EOF:                true,
	}
	toks := make([]lexer.Token, 0, len(all))
	for _, t := range all {
		if !skip[t.Type] {
			toks = append(toks, t)
		}
	}

	s := &phpScanner{toks: toks}
	return s.scan(), nil
}

type phpScanner struct {
	toks []lexer.Token
	pos  int
}

func (s *phpScanner) peek(off int) lexer.Token {
	if i := s.pos + off; i >= 0 && i < len(s.toks) {
		return s.toks[i]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (s *phpScanner) is(t lexer.Token, typ string, value string) bool {
	return t.Type == phpSymbols[typ] && (value == "" || t.Value == value)
}

func isKeyword(t lexer.Token, kw string) bool {
	return t.Type == phpSymbols["Ident"] && strings.EqualFold(t.Value, kw)
}

func (s *phpScanner) scan() *phpClass {
	var (
		class      *phpClass
		classDepth = -1
		depth      int
		doc        string
		visibility string
	)

	for ; s.pos < len(s.toks); s.pos++ {
		t := s.toks[s.pos]

		switch {
		case s.is(t, "DocComment", ""):
			doc = t.Value
			continue

		case s.is(t, "Attr", ""):
			s.skipBalanced("[", "]")
			continue

		case s.is(t, "Punct", "{"):
			depth++
			doc, visibility = "", ""
			continue

		case s.is(t, "Punct", "}"):
			depth--
			doc, visibility = "", ""
			if class != nil && depth == classDepth {
				return class
			}
			continue

		case s.is(t, "Punct", ";"):
			doc, visibility = "", ""
			continue
		}

		if class == nil {
			if isKeyword(t, "class") && !s.is(s.peek(-1), "DoubleColon", "") &&
				!isKeyword(s.peek(-1), "new") && s.is(s.peek(1), "Ident", "") {
				class = &phpClass{Name: s.peek(1).Value, Line: t.Pos.Line}
				classDepth = depth
				s.pos++
			}
			continue
		}

		if depth != classDepth+1 {
			continue
		}

		switch {
		case isKeyword(t, "public"), isKeyword(t, "protected"), isKeyword(t, "private"):
			visibility = strings.ToLower(t.Value)
		case isKeyword(t, "function"):
			m, ok := s.method(doc)
			if ok && (visibility == "" || visibility == "public") {
				class.Methods = append(class.Methods, m)
			}
			doc, visibility = "", ""
		}
	}
	return class
}

// method parses a method declaration starting at the "function" keyword.
// On return s.pos is at the token before the body "{" or at the ";".
func (s *phpScanner) method(doc string) (Method, bool) {
	s.pos++
	if s.is(s.peek(0), "Punct", "&") {
		s.pos++
	}
	name := s.peek(0)
	if name.Type != phpSymbols["Ident"] || !s.is(s.peek(1), "Punct", "(") {
		return Method{}, false
	}
	s.pos += 2

	start := s.pos
	s.pos--
	s.skipBalanced("(", ")")
	paramToks := s.toks[start:s.pos]

	m := Method{Name: name.Value}
	dc := annotation.ParseDocComment(doc)
	m.Doc = dc.Summary

	for _, group := range splitTopLevel(paramToks) {
		if p, ok := parseParam(group); ok {
			p.DocType = dc.Params[p.Name]
			m.Parameters = append(m.Parameters, p)
		}
	}

	m.Return.DocType = dc.Return
	if s.is(s.peek(1), "Punct", ":") {
		s.pos += 2
		var ret []lexer.Token
		for s.pos < len(s.toks) && !s.is(s.peek(0), "Punct", "{") && !s.is(s.peek(0), "Punct", ";") {
			ret = append(ret, s.peek(0))
			s.pos++
		}
		m.Return.Type = typeString(ret)
		s.pos--
	}
	return m, true
}

// skipBalanced advances from the opening token at s.pos to its matching
// closing token, leaving s.pos on it.
func (s *phpScanner) skipBalanced(open, closing string) {
	level := 0
	for ; s.pos < len(s.toks); s.pos++ {
		t := s.toks[s.pos]
		switch {
		case s.is(t, "Attr", "") && open == "[":
			level++
		case s.is(t, "Punct", open):
			level++
		case s.is(t, "Punct", closing):
			level--
			if level == 0 {
				return
			}
		}
	}
}

// splitTopLevel splits a parameter list at commas outside brackets.
func splitTopLevel(toks []lexer.Token) [][]lexer.Token {
	var (
		groups [][]lexer.Token
		cur    []lexer.Token
		level  int
	)
	for _, t := range toks {
		if t.Type == phpSymbols["Punct"] || t.Type == phpSymbols["Attr"] {
			switch t.Value {
			case "(", "[", "{", "#[":
				level++
			case ")", "]", "}":
				level--
			case ",":
				if level == 0 {
					groups = append(groups, cur)
					cur = nil
					continue
				}
			}
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

var paramModifiers = map[string]bool{
	"public":    true,
	"protected": true,
	"private":   true,
	"readonly":  true,
}

// parseParam parses one parameter: [attributes] [modifiers] [type] [&] [...] $name [= default].
func parseParam(toks []lexer.Token) (Parameter, bool) {
	toks = stripAttributes(toks)

	varAt := -1
	for i, t := range toks {
		if t.Type == phpSymbols["Variable"] {
			varAt = i
			break
		}
	}
	if varAt < 0 {
		return Parameter{}, false
	}

	p := Parameter{Name: strings.TrimPrefix(toks[varAt].Value, "$")}

	var typeToks []lexer.Token
	for i, t := range toks[:varAt] {
		switch {
		case t.Type == phpSymbols["Ident"] && paramModifiers[strings.ToLower(t.Value)]:
		case t.Type == phpSymbols["Ellipsis"]:
			p.Optional = true
		case t.Type == phpSymbols["Punct"] && t.Value == "&" && onlyEllipsis(toks[i+1:varAt]):
			// By-reference marker, not an intersection type.
		default:
			typeToks = append(typeToks, t)
		}
	}
	p.Type = typeString(typeToks)

	rest := toks[varAt+1:]
	if len(rest) > 0 && rest[0].Type == phpSymbols["Punct"] && rest[0].Value == "=" {
		p.Optional = true
		if v, ok := parseDefault(rest[1:]); ok {
			p.Default = &annotation.Literal{Value: v}
		}
	}
	return p, true
}

func onlyEllipsis(toks []lexer.Token) bool {
	for _, t := range toks {
		if t.Type != phpSymbols["Ellipsis"] {
			return false
		}
	}
	return true
}

func stripAttributes(toks []lexer.Token) []lexer.Token {
	out := toks[:0:0]
	level := 0
	for _, t := range toks {
		switch {
		case t.Type == phpSymbols["Attr"]:
			level++
			continue
		case level > 0 && t.Type == phpSymbols["Punct"] && t.Value == "[":
			level++
			continue
		case level > 0 && t.Type == phpSymbols["Punct"] && t.Value == "]":
			level--
			continue
		case level > 0:
			continue
		}
		out = append(out, t)
	}
	return out
}

// typeString joins type tokens into a raw annotation, dropping a leading
// nullable marker and leading namespace separators.
func typeString(toks []lexer.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(strings.TrimPrefix(t.Value, `\`))
	}
	return strings.TrimPrefix(b.String(), "?")
}

// parseDefault evaluates a constant default expression of a known shape.
// Expressions it cannot evaluate (constants, new, concatenation) report false.
func parseDefault(toks []lexer.Token) (any, bool) {
	if len(toks) == 0 {
		return nil, false
	}

	first := toks[0]
	switch {
	case len(toks) == 1 && first.Type == phpSymbols["Ident"]:
		switch strings.ToLower(first.Value) {
		case "true":
			return true, true
		case "false":
			return false, true
		case "null":
			return nil, true
		}
		return nil, false

	case len(toks) == 1 && first.Type == phpSymbols["String"]:
		return unquotePHP(first.Value), true

	case len(toks) == 1 && first.Type == phpSymbols["Number"]:
		n, ok := parseNumber(first.Value)
		return n, ok

	case len(toks) == 2 && first.Type == phpSymbols["Other"] && (first.Value == "-" || first.Value == "+") &&
		toks[1].Type == phpSymbols["Number"]:
		n, ok := parseNumber(toks[1].Value)
		if ok && first.Value == "-" {
			n = -n
		}
		return n, ok

	case first.Type == phpSymbols["Punct"] && first.Value == "[":
		return arrayLiteral(toks[1:]), true

	case isKeyword(first, "array") && len(toks) > 1 && toks[1].Type == phpSymbols["Punct"] && toks[1].Value == "(":
		return arrayLiteral(toks[2:]), true
	}
	return nil, false
}

// arrayLiteral returns an empty value of the literal's shape: a map if any
// top-level element has a key, a list otherwise.
func arrayLiteral(body []lexer.Token) any {
	level := 0
	for _, t := range body {
		switch {
		case t.Type == phpSymbols["Punct"] && (t.Value == "[" || t.Value == "("):
			level++
		case t.Type == phpSymbols["Punct"] && (t.Value == "]" || t.Value == ")"):
			level--
		case t.Type == phpSymbols["Arrow"] && t.Value == "=>" && level == 0:
			return map[string]any{}
		}
	}
	return []any{}
}

// parseNumber accepts PHP integer literals in any base (0x, 0b, 0o and
// legacy leading-zero octal) and decimal floats, including "1." and ".5".
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "_", "")
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(n), true
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

func unquotePHP(s string) string {
	if len(s) < 2 {
		return s
	}
	body := s[1 : len(s)-1]
	if s[0] == '\'' {
		return strings.NewReplacer(`\\`, `\`, `\'`, `'`).Replace(body)
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return body
}
