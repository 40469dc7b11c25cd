package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/broady/stubgen/cmd/stubgen/internal/check"
	"github.com/broady/stubgen/cmd/stubgen/internal/common"
	"github.com/broady/stubgen/cmd/stubgen/internal/gen"
	"github.com/broady/stubgen/cmd/stubgen/internal/initcmd"
	"github.com/broady/stubgen/internal/logger"
)

type CLI struct {
	common.Globals

	Version VersionCmd  `cmd:"" help:"Print version information."`
	Gen     gen.Cmd     `cmd:"" help:"Generate TypeScript stubs for PHP view classes."`
	Check   check.Cmd   `cmd:"" help:"Report warnings and stale stubs without writing files."`
	Init    initcmd.Cmd `cmd:"" help:"Write a starter stubgen.toml."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	// Environment overrides (STUBGEN_*) may live in a local .env file.
	_ = godotenv.Load()

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stubgen"),
		kong.Description("Generate typed TypeScript remote-call stubs from PHP view classes."),
		kong.UsageOnError(),
	)

	if err := logger.Initialize(cli.Verbose, cli.LogJSON); err != nil {
		ctx.FatalIfErrorf(err)
	}
	defer logger.Cleanup()

	cli.Globals.Version = SemVer()
	if err := ctx.Run(&cli.Globals); err != nil {
		common.PrintError(os.Stderr, err)
		logger.Cleanup()
		os.Exit(1)
	}
}
