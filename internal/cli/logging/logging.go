// Package logging builds the zap logger the CLI hands to its commands.
// Library packages never log; they return errors and diagnostics instead.
package logging

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for consistent structured logging.
const (
	FieldRenderer = "renderer"
	FieldSource   = "source"
	FieldFile     = "file"
	FieldSize     = "size"
	FieldFormat   = "format"
	FieldProfile  = "profile"
	FieldCount    = "count"
)

// Options configure New.
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New returns a sugared logger writing to Output (stderr by default). JSON
// selects the production encoder; otherwise a compact console encoder is used.
func New(opts Options) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, errors.Wrap(err, "logging: level")
		}
		level = parsed
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		encoderConfig.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), level)
	return zap.New(core).Sugar().Named("comlinkgen"), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
