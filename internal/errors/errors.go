// Package errors provides error handling for stubgen commands.
//
// It re-exports github.com/cockroachdb/errors so that command and
// configuration errors carry stack traces and user-facing hints:
//
//	if err := cfg.Validate(); err != nil {
//	    return errors.WithHint(errors.Wrap(err, "load config"), "see stubgen.toml")
//	}
//
// Library packages under stubgen/ return plain fmt.Errorf errors.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing hints and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors for errors.Is checks.
var (
	// ErrStale is returned by the check command when generated files are out of date.
	ErrStale = New("generated stubs are stale")

	// ErrWarnings is returned in strict mode when generation produced warnings.
	ErrWarnings = New("generation reported warnings")

	// ErrVersion is returned when the config requires a different stubgen version.
	ErrVersion = New("unsupported stubgen version")
)

// UserMessage formats err followed by its hints, one per line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if hint := FlattenHints(err); hint != "" {
		msg += "\nhint: " + hint
	}
	return msg
}
