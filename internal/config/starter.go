package config

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/broady/stubgen/internal/errors"
	"github.com/broady/stubgen/stubgen"
)

const starterHeader = `# stubgen configuration.
#
# Name fallback rules apply to parameters no annotation resolved, in order,
# before the built-in "id" prefix rule (disable it with default_rules = false):
#
#   [[rules]]
#   match = "prefix"      # prefix, suffix, exact, contains or regex
#   pattern = "cod"
#   type = "number"

`

// starter is the TOML shape written by WriteStarter.
type starter struct {
	Provider     string       `toml:"provider"`
	Command      string       `toml:"command"`
	Timeout      string       `toml:"timeout"`
	SourceDir    string       `toml:"source_dir"`
	OutDir       string       `toml:"out_dir"`
	Frontmatter  string       `toml:"frontmatter"`
	UnknownType  string       `toml:"unknown_type"`
	EmitComments bool         `toml:"emit_comments"`
	Concurrency  int          `toml:"concurrency"`
	DefaultRules bool         `toml:"default_rules"`
	Watch        starterWatch `toml:"watch"`
}

type starterWatch struct {
	Debounce string `toml:"debounce"`
}

// WriteStarter writes a configuration file holding the default values.
func WriteStarter(w io.Writer) error {
	s := starter{
		Provider:     stubgen.ProviderCommand,
		Command:      stubgen.DefaultCommand,
		Timeout:      (60 * time.Second).String(),
		SourceDir:    "src/Services/View",
		OutDir:       stubgen.DefaultOutDir,
		UnknownType:  "any",
		Concurrency:  stubgen.DefaultConcurrency,
		DefaultRules: true,
		Watch:        starterWatch{Debounce: (300 * time.Millisecond).String()},
	}

	if _, err := io.WriteString(w, starterHeader); err != nil {
		return errors.Wrap(err, "write starter config")
	}
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return errors.Wrap(err, "encode starter config")
	}
	return nil
}
