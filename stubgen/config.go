package stubgen

import (
	"context"
	"time"

	"github.com/broady/stubgen/stubgen/annotation"
	"github.com/broady/stubgen/stubgen/provider"
	"github.com/broady/stubgen/stubgen/sink"
)

// Generator provides a fluent API for stub generation.
// Create with FromCommand, FromSource, FromFile or FromRecords and configure
// with method chaining.
//
// Example:
//
//	stubgen.FromCommand("php bin/reflect.php").
//	    Frontmatter("import { xajax } from '../xajax';").
//	    ToDir(ctx, "./assets/js/views")
type Generator struct {
	records []provider.Record // for FromRecords; bypasses the provider
	static  bool

	rules         annotation.Rules
	noDefaultRule bool
	cfg           Config
}

// FromCommand creates a Generator that runs a reflection command.
// An empty command means DefaultCommand.
func FromCommand(command string) *Generator {
	return &Generator{cfg: Config{Provider: ProviderCommand, Command: command}}
}

// FromSource creates a Generator that scans PHP sources under dir.
func FromSource(dir string) *Generator {
	return &Generator{cfg: Config{Provider: ProviderPHP, SourceDir: dir}}
}

// FromFile creates a Generator that reads a JSON or YAML signature document.
func FromFile(path string) *Generator {
	return &Generator{cfg: Config{Provider: ProviderFile, InputFile: path}}
}

// FromRecords creates a Generator for records that were already enumerated.
func FromRecords(records ...provider.Record) *Generator {
	return &Generator{records: records, static: true}
}

// WithRule adds a name fallback rule. Added rules take priority over the
// default rules, in the order they were added.
func (g *Generator) WithRule(r annotation.Rule) *Generator {
	g.rules = append(g.rules, r)
	return g
}

// WithoutDefaultRules drops annotation.DefaultRules from the rule list.
func (g *Generator) WithoutDefaultRules() *Generator {
	g.noDefaultRule = true
	return g
}

// Pattern restricts scanned file names, e.g. "*View.php".
func (g *Generator) Pattern(glob string) *Generator {
	g.cfg.Pattern = glob
	return g
}

// Dir sets the working directory of the reflection command.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.CommandDir = dir
	return g
}

// Timeout bounds the reflection command.
func (g *Generator) Timeout(d time.Duration) *Generator {
	g.cfg.Timeout = d
	return g
}

// Frontmatter adds content to the top of generated modules.
func (g *Generator) Frontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	return g
}

// UnknownType sets the token rendered for unresolved types.
// Valid values: "any" (default), "unknown".
func (g *Generator) UnknownType(token string) *Generator {
	g.cfg.UnknownType = token
	return g
}

// WithComments emits method doc summaries as JSDoc comments.
func (g *Generator) WithComments() *Generator {
	g.cfg.EmitComments = true
	return g
}

// Concurrency bounds how many records are rendered at once.
func (g *Generator) Concurrency(n int) *Generator {
	g.cfg.Concurrency = n
	return g
}

// ToDir generates files to the specified directory.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(ctx context.Context, dir string) (*GenerateResult, error) {
	g.cfg.OutDir = dir
	g.cfg.Sink = nil
	return g.run(ctx)
}

// ToSink generates files into s.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*GenerateResult, error) {
	g.cfg.Sink = s
	return g.run(ctx)
}

// Generate returns generated files in memory without writing to disk.
// Use ToDir() to write files to disk instead.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	return g.ToSink(ctx, sink.NewMemorySink())
}

func (g *Generator) run(ctx context.Context) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.Rules = g.ruleList()
	if g.static {
		return GenerateRecords(ctx, g.records, &cfg)
	}
	return Generate(ctx, &cfg)
}

func (g *Generator) ruleList() annotation.Rules {
	rules := make(annotation.Rules, 0, len(g.rules)+1)
	rules = append(rules, g.rules...)
	if !g.noDefaultRule {
		rules = append(rules, annotation.DefaultRules()...)
	}
	return rules
}
