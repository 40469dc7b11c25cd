// Package stubgen generates TypeScript remote-call stubs for PHP view classes.
//
// A run enumerates class records from a provider, resolves every parameter
// and return type from its annotation signals, and writes one module per
// record through a sink. Use Generate with a Config, or the fluent API:
//
//	res, err := stubgen.FromSource("src/Services/View").
//	    WithRule(annotation.PrefixRule("cod", "number")).
//	    ToDir(ctx, "assets/js/views")
package stubgen

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/broady/stubgen/internal/logger"
	"github.com/broady/stubgen/stubgen/annotation"
	"github.com/broady/stubgen/stubgen/ir"
	"github.com/broady/stubgen/stubgen/provider"
	"github.com/broady/stubgen/stubgen/sink"
	"github.com/broady/stubgen/stubgen/typescript"
)

// Provider names accepted by Config.Provider.
const (
	ProviderCommand = "command"
	ProviderPHP     = "php"
	ProviderFile    = "file"
)

// Defaults applied by Generate.
const (
	DefaultOutDir      = "assets/js/views"
	DefaultCommand     = "php .codegen/CreateViewsFront/setup.php"
	DefaultConcurrency = 4
)

// FileExtension is appended to a record path to form its output path.
const FileExtension = ".ts"

// Config holds the configuration for stub generation.
type Config struct {
	// OutDir is the directory where generated files will be written.
	// Ignored when Sink is set. Default: DefaultOutDir.
	OutDir string

	// Provider selects how class records are enumerated.
	// "command" (default) - runs Command and decodes its JSON output
	// "php" - scans PHP sources under SourceDir without running PHP
	// "file" - decodes the signature document at InputFile
	Provider string

	// Command is the reflection command line used by the command provider.
	// Default: DefaultCommand.
	Command string

	// CommandDir is the working directory of Command.
	CommandDir string

	// Timeout bounds the reflection command. Zero means the runner default.
	Timeout time.Duration

	// SourceDir is scanned by the php provider. Default: provider.DefaultSourceDir.
	SourceDir string

	// Pattern filters scanned file names, e.g. "*View.php".
	Pattern string

	// InputFile is the signature document read by the file provider.
	InputFile string

	// Rules are the name fallback rules, in priority order.
	// Nil means annotation.DefaultRules(); an empty non-nil slice disables them.
	Rules annotation.Rules

	// Frontmatter is written at the top of every generated module,
	// e.g. "import { xajax } from '../xajax';".
	Frontmatter string

	// UnknownType is the token rendered for unresolved types. Default: "any".
	UnknownType string

	// EmitComments writes each method's doc summary as a JSDoc comment.
	EmitComments bool

	// Concurrency bounds how many records are rendered at once.
	// Default: DefaultConcurrency.
	Concurrency int

	// Sink receives the generated files. Default: a FilesystemSink at OutDir.
	Sink sink.OutputSink
}

// OutputFile describes one generated module.
type OutputFile struct {
	// Path is the sink-relative output path, e.g. "Admin/UsuarioView.ts".
	Path string

	// Record is the class name the file was generated from.
	Record string

	// Methods is the number of stubs in the file.
	Methods int

	// Size is the content length in bytes.
	Size int

	// Content is the generated module.
	Content []byte
}

// GenerateResult summarizes a run.
type GenerateResult struct {
	// Files lists the generated files in record order.
	Files []OutputFile

	// Warnings lists the non-fatal problems found, in pipeline order.
	Warnings []ir.Warning
}

// Methods returns the total number of stubs generated.
func (r *GenerateResult) Methods() int {
	n := 0
	for _, f := range r.Files {
		n += f.Methods
	}
	return n
}

// Generate enumerates records with the configured provider and writes a stub
// module for each of them.
//
// A provider failure is not an error: it is reported as an
// enumeration_failed warning and the run completes with no files.
// Configuration and sink errors are returned.
func Generate(ctx context.Context, cfg *Config) (*GenerateResult, error) {
	cfg = applyConfigDefaults(cfg)

	p, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	enum, err := p.Records(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Logger.Debugw("enumeration failed", "provider", p.Name(), "error", err)
		enum = &provider.Result{Warnings: []ir.Warning{{
			Code:    ir.WarnEnumerationFailed,
			Message: err.Error(),
		}}}
	}
	logger.Logger.Infow("enumerated records",
		"provider", p.Name(),
		"records", len(enum.Records),
		"duration", time.Since(start))

	res, err := GenerateRecords(ctx, enum.Records, cfg)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(enum.Warnings, res.Warnings...)
	return res, nil
}

// NewProvider returns the provider selected by cfg.Provider.
func NewProvider(cfg *Config) (provider.Provider, error) {
	cfg = applyConfigDefaults(cfg)

	switch cfg.Provider {
	case ProviderCommand:
		return &provider.CommandProvider{
			Command: cfg.Command,
			Dir:     cfg.CommandDir,
			Timeout: cfg.Timeout,
		}, nil
	case ProviderPHP:
		return &provider.PHPProvider{Dir: cfg.SourceDir, Pattern: cfg.Pattern}, nil
	case ProviderFile:
		if cfg.InputFile == "" {
			return nil, fmt.Errorf("InputFile is required when using file provider")
		}
		return &provider.FileProvider{Path: cfg.InputFile}, nil
	default:
		return nil, fmt.Errorf("unknown provider: %q (expected %q, %q or %q)",
			cfg.Provider, ProviderCommand, ProviderPHP, ProviderFile)
	}
}

// job is one record scheduled for rendering.
type job struct {
	rec  provider.Record
	path string
}

// GenerateRecords writes a stub module for each record.
//
// Records whose output path is invalid, or collides with an earlier record's,
// are skipped with a warning. Records are rendered concurrently; the result
// lists files in record order regardless of completion order.
func GenerateRecords(ctx context.Context, records []provider.Record, cfg *Config) (*GenerateResult, error) {
	cfg = applyConfigDefaults(cfg)

	res := &GenerateResult{}
	jobs := make([]job, 0, len(records))
	seen := make(map[string]string, len(records))

	for _, rec := range records {
		path := rec.Path + FileExtension
		if err := sink.ValidatePath(path); err != nil {
			res.Warnings = append(res.Warnings, ir.Warning{
				Code:    ir.WarnInvalidPath,
				Message: fmt.Sprintf("%s: %v", path, err),
				Source:  rec.Source,
				Record:  rec.Name,
			})
			continue
		}
		if prev, dup := seen[path]; dup {
			res.Warnings = append(res.Warnings, ir.Warning{
				Code:    ir.WarnDuplicatePath,
				Message: fmt.Sprintf("%s already generated from %s", path, prev),
				Source:  rec.Source,
				Record:  rec.Name,
			})
			continue
		}
		seen[path] = rec.Name
		jobs = append(jobs, job{rec: rec, path: path})
	}

	emitter := typescript.NewEmitter(typescript.Config{
		UnknownType:  cfg.UnknownType,
		Frontmatter:  cfg.Frontmatter,
		EmitComments: cfg.EmitComments,
	})

	files := make([]OutputFile, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, j := range jobs {
		g.Go(func() error {
			class := BuildClass(j.rec, cfg.Rules)
			content := emitter.EmitModule(class)
			if err := cfg.Sink.WriteFile(gctx, j.path, content); err != nil {
				return fmt.Errorf("write %s: %w", j.path, err)
			}
			logger.Logger.Debugw("wrote stub module",
				"path", j.path,
				"record", class.Name,
				"methods", len(class.Methods),
				"bytes", len(content))
			files[i] = OutputFile{
				Path:    j.path,
				Record:  class.Name,
				Methods: len(class.Methods),
				Size:    len(content),
				Content: content,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Files = files
	logger.Logger.Infow("generated stubs",
		"files", len(res.Files),
		"methods", res.Methods(),
		"warnings", len(res.Warnings))
	return res, nil
}

// BuildClass resolves every remotely callable method of rec.
// The constructor and private methods are dropped; parameter and return
// types are resolved from their signals, falling back to rules by name.
func BuildClass(rec provider.Record, rules annotation.Rules) ir.ClassRecord {
	class := ir.ClassRecord{Name: rec.Name, Path: rec.Path}

	for _, m := range rec.Methods {
		params := make([]ir.Parameter, len(m.Parameters))
		for i, p := range m.Parameters {
			params[i] = ir.Parameter{
				Name:     p.Name,
				Optional: p.Optional,
				Type:     annotation.Parse(annotation.Resolve(p.Signals(), rules)),
			}
		}
		returns := annotation.Parse(annotation.Resolve(m.Return.Signals(), rules))

		sig, ok := ir.NewMethodSignature(rec.Path, m.Name, params, returns)
		if !ok {
			continue
		}
		sig.Doc = m.Doc
		class.Methods = append(class.Methods, sig)
	}
	return class
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Provider == "" {
		result.Provider = ProviderCommand
	}
	if result.Command == "" {
		result.Command = DefaultCommand
	}
	if result.OutDir == "" {
		result.OutDir = DefaultOutDir
	}
	if result.Rules == nil {
		result.Rules = annotation.DefaultRules()
	}
	if result.Concurrency <= 0 {
		result.Concurrency = DefaultConcurrency
	}
	if result.Sink == nil {
		result.Sink = sink.NewFilesystemSink(result.OutDir)
	}

	return &result
}
