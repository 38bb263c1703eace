// Package logging builds the zap logger shared by the CLI and API client.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hackhub-labs/hackadmin/internal/branding"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Verbose bool
	// Format is "console" or "json". Empty reads HACKADMIN_LOG_FORMAT.
	Format string
	Output io.Writer
}

// New creates a logger writing to opts.Output (stderr by default). Without
// Verbose only warnings and errors are emitted so command output stays clean.
func New(opts Options) *zap.Logger {
	format := opts.Format
	if format == "" {
		format = os.Getenv(branding.EnvVar("LOG_FORMAT"))
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if strings.EqualFold(format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	level := zap.WarnLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
	return zap.New(core).Named(branding.CLIName())
}
