// Package logger configures the zap logger shared by the server, the CLI and the form engine.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoder.
type Format string

const (
	// FormatConsole is a human-readable, colored line format.
	FormatConsole Format = "CONSOLE"
	// FormatJSON is structured JSON, one object per line.
	FormatJSON Format = "JSON"
)

var (
	initOnce sync.Once
	mu       sync.RWMutex
	base     *zap.Logger
)

// ParseLevel converts a level name to a zapcore.Level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseFormat converts a format name, defaulting to console.
func ParseFormat(format string) Format {
	if Format(strings.ToUpper(format)) == FormatJSON {
		return FormatJSON
	}
	return FormatConsole
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

// New creates a zap logger writing to stdout.
func New(level string, format Format) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if format == FormatJSON {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = timeEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core, zap.AddCaller())
}

// initialize builds the process logger from LOGGING_LEVEL and LOGGING_FORMAT.
// Only the first call has an effect.
func initialize() {
	initOnce.Do(func() {
		level := os.Getenv("LOGGING_LEVEL")
		format := ParseFormat(os.Getenv("LOGGING_FORMAT"))
		Set(New(level, format))
	})
}

// Set replaces the process logger, e.g. after the config file has been read.
func Set(l *zap.Logger) {
	mu.Lock()
	base = l
	mu.Unlock()
	zap.ReplaceGlobals(l)
}

// Get returns the process logger, initializing it from the environment if needed.
func Get() *zap.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l == nil {
		initialize()
		mu.RLock()
		l = base
		mu.RUnlock()
	}
	return l
}

// For returns a named sugared logger for a component.
func For(component string) *zap.SugaredLogger {
	return Get().Sugar().Named(component)
}

// Nop returns a logger that discards everything; tests use it.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Sync flushes buffered entries.
func Sync() error {
	return Get().Sync()
}
