// Package common holds the flags and output helpers shared by stubgen commands.
package common

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/broady/stubgen/internal/config"
	"github.com/broady/stubgen/internal/errors"
	"github.com/broady/stubgen/internal/logger"
	"github.com/broady/stubgen/stubgen"
	"github.com/broady/stubgen/stubgen/ir"
)

// Globals are flags accepted by every command.
type Globals struct {
	Config  string `help:"Config file (default: stubgen.toml or stubgen.yaml in the working directory)." short:"c" type:"path"`
	Verbose int    `help:"Increase log verbosity (-v, -vv)." short:"v" type:"counter"`
	LogJSON bool   `help:"Write logs as JSON." name:"log-json"`

	// Version is the running stubgen version, set by main.
	Version string `kong:"-"`
}

// GenFlags override configuration values for a generation run.
// Empty flags leave the configured value alone.
type GenFlags struct {
	Out         string   `help:"Output directory for generated stubs." short:"o"`
	Provider    string   `help:"Signature provider: command, php or file." short:"p"`
	Command     string   `help:"Reflection command printing the signature document."`
	Source      string   `help:"PHP source directory scanned by the php provider." short:"s"`
	Input       string   `help:"Signature document (.json, .yaml) read by the file provider." short:"i"`
	Pattern     string   `help:"File name glob for the php provider, e.g. '*View.php'."`
	Rule        []string `help:"Name fallback rule as a form, e.g. 'match=prefix&pattern=id&type=number|string'. Repeatable; takes priority over configured rules." short:"r"`
	UnknownType string   `help:"Token for unresolved types: any or unknown." name:"unknown-type"`
	Comments    bool     `help:"Emit method doc summaries as JSDoc comments."`
}

// Load reads the configuration, applies the flags and returns both the file
// configuration and the generator configuration built from it.
func (f *GenFlags) Load(g *Globals) (*config.Config, *stubgen.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.CheckVersion(g.Version); err != nil {
		return nil, nil, err
	}

	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	extra, err := config.ParseRuleFlags(f.Rule)
	if err != nil {
		return nil, nil, err
	}
	gc, err := cfg.Generator(extra)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gc, nil
}

func (f *GenFlags) apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.OutDir, f.Out)
	set(&cfg.Provider, f.Provider)
	set(&cfg.Command, f.Command)
	set(&cfg.SourceDir, f.Source)
	set(&cfg.InputFile, f.Input)
	set(&cfg.Pattern, f.Pattern)
	set(&cfg.UnknownType, f.UnknownType)
	if f.Comments {
		cfg.EmitComments = true
	}

	// A source or input flag alone selects its provider.
	if f.Provider == "" {
		switch {
		case f.Input != "":
			cfg.Provider = stubgen.ProviderFile
		case f.Source != "":
			cfg.Provider = stubgen.ProviderPHP
		}
	}
}

var (
	ok   = color.New(color.FgGreen).SprintFunc()
	warn = color.New(color.FgYellow, color.Bold).SprintFunc()
	bad  = color.New(color.FgRed, color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
)

// PrintWarnings writes one line per warning.
//
// With --log-json the warnings are logged as structured records instead,
// so the log stream stays machine-readable.
func PrintWarnings(w io.Writer, warnings []ir.Warning) {
	if logger.JSONOutput {
		for _, wr := range warnings {
			fields := []any{"code", wr.Code, "record", wr.Record, "member", wr.Member}
			if wr.Source != nil {
				fields = append(fields, "source", wr.Source.String())
			}
			logger.Logger.Warnw(wr.Message, fields...)
		}
		return
	}
	for _, wr := range warnings {
		line := wr.String()
		if wr.Record != "" {
			line += dim(" [" + wr.Record)
			if wr.Member != "" {
				line += dim("." + wr.Member)
			}
			line += dim("]")
		}
		fmt.Fprintf(w, "%s %s\n", warn("⚠"), line)
	}
}

// PrintFiles writes one line per generated file.
func PrintFiles(w io.Writer, files []stubgen.OutputFile) {
	for _, f := range files {
		fmt.Fprintf(w, "%s %s %s\n", ok("✓"), f.Path, dim(fmt.Sprintf("(%d stubs, %d bytes)", f.Methods, f.Size)))
	}
}

// PrintSummary writes the totals line of a run.
func PrintSummary(w io.Writer, res *stubgen.GenerateResult, outDir string) {
	fmt.Fprintf(w, "%s %d files, %d stubs in %s", ok("✓"), len(res.Files), res.Methods(), outDir)
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(w, ", %s", warn(fmt.Sprintf("%d warnings", n)))
	}
	fmt.Fprintln(w)
}

// PrintStale writes one line per output file that differs from disk.
func PrintStale(w io.Writer, paths []string) {
	for _, p := range paths {
		fmt.Fprintf(w, "%s %s %s\n", bad("✗"), p, dim("(out of date)"))
	}
}

// PrintUpToDate writes the closing line of a clean check.
func PrintUpToDate(w io.Writer) {
	fmt.Fprintf(w, "%s all stubs up to date\n", ok("✓"))
}

// PrintError writes err and its hints.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", bad("error:"), errors.UserMessage(err))
}
