// Package logger provides structured logging for b24docs.
//
// Logs are written by zap to stderr by default, because stdout carries the
// stdio MCP transport. The package keeps a single process-wide logger behind
// printf-style helpers; request-scoped loggers travel in a context.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Output formats accepted by Configure.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu         sync.RWMutex
	verbose    bool
	output     io.Writer = os.Stderr
	format               = FormatAuto
	configured           = zapcore.InfoLevel
	level                = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base                 = build()
)

// Configure sets the minimum level (debug, info, warn, error) and the
// output format (auto, console, json). Verbose mode still forces debug.
func Configure(levelName, formatName string) error {
	var lvl zapcore.Level
	if levelName == "" {
		levelName = "info"
	}
	if err := lvl.UnmarshalText([]byte(strings.ToLower(levelName))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	switch formatName {
	case "":
		formatName = FormatAuto
	case FormatAuto, FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", formatName)
	}

	mu.Lock()
	defer mu.Unlock()
	configured = lvl
	format = formatName
	applyLevel()
	base = build()
	return nil
}

// SetVerbose enables or disables verbose (debug) logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	applyLevel()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build()
}

// L returns the process-wide logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...any) {
	L().Sugar().Debugf(format, args...)
}

// Section logs a section header at debug level.
func Section(name string) {
	L().Sugar().Debugf("=== %s ===", name)
}

// Info logs a formatted message at info level.
func Info(format string, args ...any) {
	L().Sugar().Infof(format, args...)
}

// Warn logs a formatted message at warn level.
func Warn(format string, args ...any) {
	L().Sugar().Warnf(format, args...)
}

// Error logs a formatted message at error level.
func Error(format string, args ...any) {
	L().Sugar().Errorf(format, args...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}

// applyLevel must be called with mu held.
func applyLevel() {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(configured)
}

// build must be called with mu held (or during package init).
func build() *zap.Logger {
	var enc zapcore.Encoder
	if useConsole(format, output) {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(output)), level)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}

func useConsole(formatName string, w io.Writer) bool {
	switch formatName {
	case FormatConsole:
		return true
	case FormatJSON:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
