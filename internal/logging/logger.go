// Package logging provides categorized file logging for postdash.
// The TUI owns stdout, so logs go to <dir>/logs/postdash.log and only
// when debug mode is enabled; otherwise every call is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem so log lines can be filtered per concern.
type Category string

const (
	CategoryBoot    Category = "boot"    // startup, config, session bootstrap
	CategoryAuth    Category = "auth"    // login/register/logout
	CategoryAPI     Category = "api"     // HTTP calls and retries
	CategoryStore   Category = "store"   // post store mutations
	CategoryUI      Category = "ui"      // TUI lifecycle
	CategorySession Category = "session" // token persistence
)

var (
	mu      sync.RWMutex
	root    *zap.SugaredLogger
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Initialize sets up the zap logger under dir. With debug false the
// package stays silent; calling the helpers is always safe.
func Initialize(dir string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if !debug {
		root = zap.NewNop().Sugar()
		loggers = make(map[Category]*zap.SugaredLogger)
		return nil
	}

	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{filepath.Join(logsDir, "postdash.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	root = logger.Sugar()
	loggers = make(map[Category]*zap.SugaredLogger)
	return nil
}

// Get returns the logger for a category, creating it on first use.
func Get(cat Category) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		root = zap.NewNop().Sugar()
	}
	if l, ok := loggers[cat]; ok {
		return l
	}
	l := root.Named(string(cat))
	loggers[cat] = l
	return l
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if root != nil {
		_ = root.Sync()
	}
}

// Convenience helpers in the category-first style used throughout the
// codebase.

func BootInfo(format string, args ...interface{})  { Get(CategoryBoot).Infof(format, args...) }
func BootWarn(format string, args ...interface{})  { Get(CategoryBoot).Warnf(format, args...) }
func AuthDebug(format string, args ...interface{}) { Get(CategoryAuth).Debugf(format, args...) }
func AuthWarn(format string, args ...interface{})  { Get(CategoryAuth).Warnf(format, args...) }
func APIDebug(format string, args ...interface{})  { Get(CategoryAPI).Debugf(format, args...) }
func APIWarn(format string, args ...interface{})   { Get(CategoryAPI).Warnf(format, args...) }
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debugf(format, args...)
}
func UIDebug(format string, args ...interface{}) { Get(CategoryUI).Debugf(format, args...) }
func SessionWarn(format string, args ...interface{}) {
	Get(CategorySession).Warnf(format, args...)
}
