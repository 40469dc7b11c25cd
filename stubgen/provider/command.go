package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/broady/stubgen/internal/runner"
)

// CommandProvider runs an external reflection command and decodes its
// standard output as a JSON signature document.
type CommandProvider struct {
	// Command is the shell-quoted command line.
	Command string

	// Dir is the working directory of the command.
	Dir string

	// Timeout bounds the run. Zero means runner.DefaultTimeout.
	Timeout time.Duration

	// Format of the command output. Empty means JSON.
	Format Format
}

// Name returns "command".
func (p *CommandProvider) Name() string { return "command" }

// Records runs the command once and decodes its output.
func (p *CommandProvider) Records(ctx context.Context) (*Result, error) {
	out, err := runner.Exec(ctx, runner.Options{
		Command: p.Command,
		Dir:     p.Dir,
		Timeout: p.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate signatures: %w", err)
	}

	format := p.Format
	if format == "" {
		format = FormatJSON
	}
	return Decode(out, format, "")
}
