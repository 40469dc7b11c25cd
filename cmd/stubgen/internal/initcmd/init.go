package initcmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/broady/stubgen/cmd/stubgen/internal/common"
	"github.com/broady/stubgen/internal/config"
	"github.com/broady/stubgen/internal/errors"
)

type Cmd struct {
	Path  string `arg:"" optional:"" help:"File to write." default:"stubgen.toml" type:"path"`
	Force bool   `help:"Overwrite an existing file." short:"f"`
}

func (c *Cmd) Run(g *common.Globals) error {
	if _, err := os.Stat(c.Path); err == nil && !c.Force {
		return errors.WithHint(errors.Newf("%s already exists", c.Path), "pass --force to overwrite it")
	}

	var buf bytes.Buffer
	if err := config.WriteStarter(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(c.Path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	fmt.Printf("✓ wrote %s\n", c.Path)
	return nil
}
