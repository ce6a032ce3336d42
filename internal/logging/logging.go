// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It is a no-op until Initialize is called so
// that packages can log from tests without setup.
var Logger = zap.NewNop().Sugar()

// Options selects the logger flavour.
type Options struct {
	Debug bool // Debug level instead of Info
	JSON  bool // production JSON encoder instead of console
}

// Initialize configures Logger. Console output goes to stderr so that
// stdout stays clean for inspect/analyze output.
func Initialize(opts Options) error {
	l, err := build(opts, os.Stderr)
	if err != nil {
		return err
	}
	Logger = l.Sugar()
	return nil
}

func build(opts Options, w io.Writer) (*zap.Logger, error) {
	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}

	if opts.JSON {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		return config.Build()
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
