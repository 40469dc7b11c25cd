// Package logger holds the process-wide structured logger.
//
// Library packages log through Logger; the CLI replaces it with Initialize
// once flags are parsed. Until then Logger discards everything.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance.
	Logger *zap.SugaredLogger

	// JSONOutput reports whether Initialize selected JSON output.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger writing to stderr.
func Initialize(verbosity int, jsonOutput bool) error {
	return InitializeWriter(os.Stderr, verbosity, jsonOutput)
}

// InitializeWriter sets up the global logger writing to w.
// Verbosity is the -v count; see VerbosityToLevel.
func InitializeWriter(w io.Writer, verbosity int, jsonOutput bool) error {
	JSONOutput = jsonOutput
	level := zap.NewAtomicLevelAt(VerbosityToLevel(verbosity))

	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(minimalEncoderConfig())
	}

	Logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)).Sugar()
	return nil
}

// minimalEncoderConfig drops timestamps and callers for terminal output.
func minimalEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if os.Getenv("NO_COLOR") != "" {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return cfg
}

// Replace swaps the global logger and returns a function restoring the previous one.
// Tests use it with zaptest/observer.
func Replace(l *zap.Logger) (restore func()) {
	prev := Logger
	Logger = l.Sugar()
	return func() { Logger = prev }
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	_ = Logger.Sync()
}
