package check

import (
	"context"
	"os"

	"github.com/broady/stubgen/cmd/stubgen/internal/common"
	"github.com/broady/stubgen/internal/errors"
	"github.com/broady/stubgen/stubgen"
	"github.com/broady/stubgen/stubgen/sink"
)

type Cmd struct {
	common.GenFlags `embed:""`
	Strict bool `help:"Fail when generation reports warnings."`
}

func (c *Cmd) Run(g *common.Globals) error {
	_, gc, err := c.Load(g)
	if err != nil {
		return err
	}

	outDir := gc.OutDir
	gc.Sink = sink.NewMemorySink()
	res, err := stubgen.Generate(context.Background(), gc)
	if err != nil {
		return errors.Wrap(err, "check")
	}
	common.PrintWarnings(os.Stderr, res.Warnings)

	stale, err := Stale(sink.NewFilesystemSink(outDir), res.Files)
	if err != nil {
		return errors.Wrap(err, "check")
	}
	common.PrintStale(os.Stdout, stale)
	common.PrintSummary(os.Stdout, res, outDir)

	if len(stale) > 0 {
		return errors.WithHint(
			errors.Wrapf(errors.ErrStale, "%d of %d files in %s", len(stale), len(res.Files), outDir),
			"run stubgen gen")
	}
	if c.Strict && len(res.Warnings) > 0 {
		return errors.Wrapf(errors.ErrWarnings, "%d warnings", len(res.Warnings))
	}
	common.PrintUpToDate(os.Stdout)
	return nil
}

// Stale returns the paths of files whose on-disk content differs from the
// generated content, in order.
func Stale(fs *sink.FilesystemSink, files []stubgen.OutputFile) ([]string, error) {
	var stale []string
	for _, f := range files {
		current, err := fs.Current(f.Path, f.Content)
		if err != nil {
			return nil, err
		}
		if !current {
			stale = append(stale, f.Path)
		}
	}
	return stale, nil
}
