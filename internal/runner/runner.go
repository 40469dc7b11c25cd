// Package runner executes the external reflection command that enumerates
// class signatures.
//
// The command is a single shell-quoted string (e.g.
// `php .codegen/CreateViewsFront/setup.php`). It is split into arguments,
// run without a shell, and its standard output is returned.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// DefaultTimeout bounds a single reflection run.
const DefaultTimeout = 60 * time.Second

// Options configures the runner.
type Options struct {
	// Command is the shell-quoted command line.
	Command string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Timeout bounds the run. Zero means DefaultTimeout.
	Timeout time.Duration

	// Env is appended to the current environment.
	Env []string
}

// Exec runs the command and returns its standard output.
// On failure the returned error includes the captured standard error.
func Exec(ctx context.Context, opts Options) ([]byte, error) {
	args, err := shellquote.Split(opts.Command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", opts.Command, err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return stdout.Bytes(), fmt.Errorf("run %s: timed out after %s", args[0], timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return stdout.Bytes(), fmt.Errorf("run %s: %w", args[0], err)
		}
		return stdout.Bytes(), fmt.Errorf("run %s: %w\n%s", args[0], err, msg)
	}
	return stdout.Bytes(), nil
}
