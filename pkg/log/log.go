package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is an alias for zap.Logger
type Logger = zap.Logger

var defaultLogger *Logger

// Convenience variables to match zap's field API
var (
	String  = zap.String
	Strings = zap.Strings
	Int     = zap.Int
	Int64   = zap.Int64
	Float64 = zap.Float64
	Bool    = zap.Bool
	Any     = zap.Any
)

func init() {
	l, err := New("development", false)
	if err != nil {
		l = zap.NewNop()
	}
	defaultLogger = l
}

// New builds a logger for the given mode ("production" or "development").
// Debug entries are only written when debug is set.
func New(mode string, debug bool) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	return cfg.Build()
}

// Package-level logging functions
func Info(msg string, fields ...zap.Field) {
	defaultLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	defaultLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	defaultLogger.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	defaultLogger.Debug(msg, fields...)
}

func Err(err error) zap.Field {
	return zap.Error(err)
}

func FilePath(path string) zap.Field {
	return zap.String("file_path", path)
}

func DirPath(path string) zap.Field {
	return zap.String("dir_path", path)
}

// WithPrefix returns a new logger named after the given component
func WithPrefix(prefix string) *Logger {
	return defaultLogger.Named(prefix)
}

func SetLogger(l *Logger) {
	defaultLogger = l
}

// Sync flushes buffered log entries.
func Sync() {
	_ = defaultLogger.Sync()
}
