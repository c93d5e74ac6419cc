package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger writing to w. Verbose lowers the level
// from info to debug. Timestamps are omitted so output is reproducible.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	conf := zap.NewDevelopmentEncoderConfig()
	conf.TimeKey = ""
	conf.CallerKey = ""

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(conf), zapcore.AddSync(w), level)
	return zap.New(core)
}
