// Package logger provides a zap-based application logger that stamps every
// entry with the service name and the trace id found in the context.
package logger

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the minimum severity a Logger writes.
type Level = zapcore.Level

// Supported levels.
const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// TraceIDFn extracts a trace id from a context, or "" when there is none.
type TraceIDFn func(ctx context.Context) string

// Logger writes structured JSON log entries.
type Logger struct {
	z         *zap.SugaredLogger
	traceIDFn TraceIDFn
}

// New constructs a Logger writing JSON to w.
func New(w io.Writer, minLevel Level, serviceName string, traceIDFn TraceIDFn) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), minLevel)
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(zap.String("service", serviceName))
	return &Logger{z: z.Sugar(), traceIDFn: traceIDFn}
}

// FileConfig describes a rotated log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Writer returns stdout, or stdout plus a rotated file when cfg.Path is set.
// The returned closer releases the file and is never nil.
func Writer(stdout io.Writer, cfg FileConfig) (io.Writer, func() error) {
	if cfg.Path == "" {
		return stdout, func() error { return nil }
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(stdout, lj), lj.Close
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level. Anything
// else yields LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

func (l *Logger) with(ctx context.Context, args []any) []any {
	if l.traceIDFn == nil || ctx == nil {
		return args
	}
	if id := l.traceIDFn(ctx); id != "" {
		return append(args, "trace_id", id)
	}
	return args
}

// Debug logs at debug level. args are alternating keys and values.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.z.Debugw(msg, l.with(ctx, args)...)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.z.Infow(msg, l.with(ctx, args)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.z.Warnw(msg, l.with(ctx, args)...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.z.Errorw(msg, l.with(ctx, args)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
