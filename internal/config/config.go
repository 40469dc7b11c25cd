// Package config loads stubgen configuration from stubgen.toml or
// stubgen.yaml, STUBGEN_* environment variables and command-line rules.
package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/spf13/viper"

	"github.com/broady/stubgen/internal/errors"
	"github.com/broady/stubgen/stubgen"
	"github.com/broady/stubgen/stubgen/annotation"
)

// FileName is the config file base name searched in the working directory.
const FileName = "stubgen"

// EnvPrefix prefixes environment overrides, e.g. STUBGEN_OUT_DIR.
const EnvPrefix = "STUBGEN"

var (
	validate      = validator.New(validator.WithRequiredStructEnabled())
	schemaDecoder = schema.NewDecoder()
)

// Config is the on-disk configuration.
type Config struct {
	// RequiredVersion is a semver constraint the running stubgen must satisfy,
	// e.g. ">= 1.2, < 2".
	RequiredVersion string `mapstructure:"required_version"`

	Provider   string        `mapstructure:"provider" validate:"oneof=command php file"`
	Command    string        `mapstructure:"command" validate:"required_if=Provider command"`
	CommandDir string        `mapstructure:"command_dir"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
	SourceDir  string        `mapstructure:"source_dir" validate:"required_if=Provider php"`
	Pattern    string        `mapstructure:"pattern"`
	InputFile  string        `mapstructure:"input_file" validate:"required_if=Provider file"`

	OutDir       string `mapstructure:"out_dir" validate:"required"`
	Frontmatter  string `mapstructure:"frontmatter"`
	UnknownType  string `mapstructure:"unknown_type" validate:"oneof=any unknown"`
	EmitComments bool   `mapstructure:"emit_comments"`
	Concurrency  int    `mapstructure:"concurrency" validate:"gte=0"`

	// Rules are consulted in order before the default rules.
	Rules []annotation.RuleSpec `mapstructure:"rules" validate:"dive"`

	// DefaultRules appends annotation.DefaultRules after Rules.
	DefaultRules bool `mapstructure:"default_rules"`

	Watch WatchConfig `mapstructure:"watch"`

	// File is the config file that was read, or "" if none was found.
	File string `mapstructure:"-"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is how long to wait for changes to settle before regenerating.
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`

	// Paths are watched in addition to the provider's own inputs.
	Paths []string `mapstructure:"paths"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("required_version", "")
	v.SetDefault("provider", stubgen.ProviderCommand)
	v.SetDefault("command", stubgen.DefaultCommand)
	v.SetDefault("command_dir", "")
	v.SetDefault("timeout", 60*time.Second)
	v.SetDefault("source_dir", "src/Services/View")
	v.SetDefault("pattern", "")
	v.SetDefault("input_file", "")

	v.SetDefault("out_dir", stubgen.DefaultOutDir)
	v.SetDefault("frontmatter", "")
	v.SetDefault("unknown_type", "any")
	v.SetDefault("emit_comments", false)
	v.SetDefault("concurrency", stubgen.DefaultConcurrency)
	v.SetDefault("default_rules", true)

	v.SetDefault("watch.debounce", 300*time.Millisecond)
}

// Load reads the configuration file at path, or stubgen.{toml,yaml,yml,json}
// in the working directory when path is empty. A missing file is only an
// error when path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.WithHint(
				errors.Wrap(err, "read config"),
				"config files are TOML or YAML; see stubgen.example.toml")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", v.ConfigFileUsed())
	}
	cfg.File = v.ConfigFileUsed()
	return &cfg, nil
}

// Validate checks field constraints and the rule specs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WithHint(errors.Wrap(err, "invalid config"), c.hint())
	}
	if _, err := annotation.CompileRules(c.Rules); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func (c *Config) hint() string {
	if c.File == "" {
		return "set the value with a STUBGEN_* environment variable or a stubgen.toml file"
	}
	return "check " + c.File
}

// CheckVersion reports whether version satisfies RequiredVersion.
// Development builds ("dev", "") are never rejected.
func (c *Config) CheckVersion(version string) error {
	if c.RequiredVersion == "" || version == "" || version == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.RequiredVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid required_version %q", c.RequiredVersion)
	}
	current, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "invalid stubgen version %q", version)
	}
	if !constraint.Check(current) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrVersion, "stubgen %s does not satisfy %q", current, c.RequiredVersion),
			"install a stubgen version matching %s", c.RequiredVersion)
	}
	return nil
}

// Generator converts the configuration into a generator config.
// extra rules, typically from the command line, take priority over
// configured rules.
func (c *Config) Generator(extra []annotation.RuleSpec) (*stubgen.Config, error) {
	specs := make([]annotation.RuleSpec, 0, len(extra)+len(c.Rules))
	specs = append(specs, extra...)
	specs = append(specs, c.Rules...)

	rules, err := annotation.CompileRules(specs)
	if err != nil {
		return nil, errors.Wrap(err, "compile rules")
	}
	if c.DefaultRules {
		rules = append(rules, annotation.DefaultRules()...)
	}

	return &stubgen.Config{
		OutDir:       c.OutDir,
		Provider:     c.Provider,
		Command:      c.Command,
		CommandDir:   c.CommandDir,
		Timeout:      c.Timeout,
		SourceDir:    c.SourceDir,
		Pattern:      c.Pattern,
		InputFile:    c.InputFile,
		Rules:        rules,
		Frontmatter:  c.Frontmatter,
		UnknownType:  c.UnknownType,
		EmitComments: c.EmitComments,
		Concurrency:  c.Concurrency,
	}, nil
}

// ParseRuleFlag decodes a rule given as a URL-encoded form, e.g.
//
//	match=prefix&pattern=cod&type=number
//
// "|" need not be escaped; "+" decodes to a space.
func ParseRuleFlag(s string) (annotation.RuleSpec, error) {
	values, err := url.ParseQuery(s)
	if err != nil {
		return annotation.RuleSpec{}, errors.Wrapf(err, "parse rule %q", s)
	}

	var spec annotation.RuleSpec
	if err := schemaDecoder.Decode(&spec, values); err != nil {
		return annotation.RuleSpec{}, errors.Wrapf(err, "decode rule %q", s)
	}
	if _, err := spec.Compile(); err != nil {
		return annotation.RuleSpec{}, errors.WithHint(err,
			"rules look like match=prefix&pattern=id&type=number|string")
	}
	return spec, nil
}

// ParseRuleFlags decodes each rule flag in order.
func ParseRuleFlags(flags []string) ([]annotation.RuleSpec, error) {
	specs := make([]annotation.RuleSpec, 0, len(flags))
	for _, f := range flags {
		spec, err := ParseRuleFlag(f)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
