// Package logger adapts zap to the ports.Logger interface. Output goes to
// stderr so it never interleaves with rendered responses on stdout.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/asknix/asknix/internal/ports"
)

// ZapLogger implements ports.Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a logger. Verbose mode lowers the level to debug; otherwise
// only warnings and errors surface.
func New(verbose bool) *ZapLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	built, err := cfg.Build()
	if err != nil {
		built = zap.NewNop()
	}
	return &ZapLogger{sugar: built.Sugar()}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, flatten(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, flatten(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, flatten(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	l.sugar.Errorw(msg, kv...)
}

// Sync flushes buffered entries. Called once on shutdown.
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}

func flatten(fields map[string]interface{}) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}

var _ ports.Logger = (*ZapLogger)(nil)
