package annotation

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// DocComment holds the type information extracted from one doc comment.
type DocComment struct {
	// Params maps parameter names (without "$") to their documented raw type.
	Params map[string]string

	// Return is the documented raw return type, or "".
	Return string

	// Summary is the free text preceding the first tag.
	Summary string
}

// docLine is one tag line, e.g. "@param array $opcoes".
type docLine struct {
	Tag    string     `parser:"@Tag"`
	Fields []docField `parser:"@@*"`
}

type docField struct {
	Var  string `parser:"  @Var"`
	Word string `parser:"| @(Word | Tag)"`
}

var docLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Tag", Pattern: `@[a-zA-Z][\w-]*`},
	{Name: "Var", Pattern: `\$[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Word", Pattern: `[^\s]+`},
})

var docParser = participle.MustBuild[docLine](
	participle.Lexer(docLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseDocComment extracts @param and @return types from a doc comment.
//
// A @param line must carry exactly a type and a $name; a @return line must
// carry exactly a type. Other tag lines, malformed lines and lines with
// trailing descriptions are ignored. The first tag for a name wins.
func ParseDocComment(doc string) DocComment {
	dc := DocComment{Params: map[string]string{}}
	var (
		summary []string
		tagged  bool
	)

	for _, line := range strings.Split(doc, "\n") {
		line = cleanDocLine(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "@") {
			if !tagged {
				summary = append(summary, line)
			}
			continue
		}
		tagged = true

		dl, err := docParser.ParseString("", line)
		if err != nil {
			continue
		}
		switch dl.Tag {
		case "@param":
			if len(dl.Fields) != 2 || dl.Fields[0].Word == "" || dl.Fields[1].Var == "" {
				continue
			}
			name := strings.TrimPrefix(dl.Fields[1].Var, "$")
			if _, seen := dc.Params[name]; !seen {
				dc.Params[name] = dl.Fields[0].Word
			}
		case "@return":
			if len(dl.Fields) != 1 || dl.Fields[0].Word == "" {
				continue
			}
			if dc.Return == "" {
				dc.Return = dl.Fields[0].Word
			}
		}
	}

	dc.Summary = strings.Join(summary, " ")
	return dc
}

// cleanDocLine strips comment delimiters and the leading "*" of a doc line.
func cleanDocLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/**")
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "*")
	return strings.TrimSpace(line)
}
