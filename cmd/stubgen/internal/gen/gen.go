package gen

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/broady/stubgen/cmd/stubgen/internal/common"
	"github.com/broady/stubgen/internal/config"
	"github.com/broady/stubgen/internal/errors"
	"github.com/broady/stubgen/internal/logger"
	"github.com/broady/stubgen/internal/watch"
	"github.com/broady/stubgen/stubgen"
)

type Cmd struct {
	common.GenFlags `embed:""`
	Watch bool `help:"Watch sources and regenerate on change." short:"w"`
	List  bool `help:"List every generated file." short:"l"`
}

func (c *Cmd) Run(g *common.Globals) error {
	cfg, gc, err := c.Load(g)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.generate(ctx, gc); err != nil {
		return err
	}
	if !c.Watch {
		return nil
	}

	paths := watchPaths(cfg)
	if len(paths) == 0 {
		return errors.WithHint(errors.New("nothing to watch"),
			"set source_dir, input_file or watch.paths in the config")
	}
	w, err := watch.New(paths, watch.Extensions(".php", ".json", ".yaml", ".yml"), cfg.Watch.Debounce)
	if err != nil {
		return errors.Wrap(err, "watch")
	}

	color.New(color.FgCyan).Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", strings.Join(paths, ", "))
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		logger.Logger.Infow("regenerating", "changed", changed)
		return c.generate(ctx, gc)
	})
}

func (c *Cmd) generate(ctx context.Context, gc *stubgen.Config) error {
	res, err := stubgen.Generate(ctx, gc)
	if err != nil {
		return errors.Wrap(err, "generate")
	}

	common.PrintWarnings(os.Stderr, res.Warnings)
	if c.List {
		common.PrintFiles(os.Stdout, res.Files)
	}
	common.PrintSummary(os.Stdout, res, gc.OutDir)
	return nil
}

// watchPaths returns the existing inputs of the configured provider plus
// any extra watch paths.
func watchPaths(cfg *config.Config) []string {
	var candidates []string
	switch cfg.Provider {
	case stubgen.ProviderFile:
		candidates = append(candidates, cfg.InputFile)
	default:
		// The reflection command reads the same sources the php provider scans.
		candidates = append(candidates, cfg.SourceDir)
	}
	candidates = append(candidates, cfg.Watch.Paths...)

	var paths []string
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			logger.Logger.Warnw("not watching missing path", "path", p)
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
