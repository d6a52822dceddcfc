// Package logging configures the process-wide slog loggers: an application
// logger on stdout/stderr or files, and an optional size-rotated audit
// logger for account opening events.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes how the application logger should behave.
type Config struct {
	Level       string      `json:"level,omitempty" mapstructure:"level"`
	Format      string      `json:"format,omitempty" mapstructure:"format"`
	OutputPaths []string    `json:"output_paths,omitempty" mapstructure:"output_paths"`
	Audit       AuditConfig `json:"audit,omitempty" mapstructure:"audit"`
}

// AuditConfig controls audit log output behaviour. Audit entries record
// account creation outcomes and are rotated by size.
type AuditConfig struct {
	Enabled    bool   `json:"enabled,omitempty" mapstructure:"enabled"`
	Path       string `json:"path,omitempty" mapstructure:"path"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" mapstructure:"max_size_mb"`
	MaxBackups int    `json:"max_backups,omitempty" mapstructure:"max_backups"`
	MaxAgeDays int    `json:"max_age_days,omitempty" mapstructure:"max_age_days"`
}

// DefaultConfig returns the default logging configuration: JSON on stdout at
// info level, audit disabled.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Level != "" {
		c.Level = source.Level
	}
	if source.Format != "" {
		c.Format = source.Format
	}
	if len(source.OutputPaths) > 0 {
		c.OutputPaths = source.OutputPaths
	}
	if source.Audit.Enabled {
		c.Audit = source.Audit
	}
}

var (
	mu          sync.Mutex
	appLogger   *slog.Logger
	auditLogger *slog.Logger
	closers     []io.Closer
)

// Init configures the global logger instances and installs the application
// logger as the slog default.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	handler, err := buildHandler(cfg.Format, cfg.OutputPaths, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	if err != nil {
		return err
	}
	appLogger = slog.New(handler)
	slog.SetDefault(appLogger)

	auditLogger = appLogger
	if cfg.Audit.Enabled {
		audit, err := buildAuditLogger(cfg.Audit)
		if err != nil {
			return err
		}
		auditLogger = audit
	}
	return nil
}

// L returns the application logger, initializing defaults on first use.
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if appLogger == nil {
		appLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return appLogger
}

// Audit returns the audit logger, falling back to the application logger
// when auditing is not configured.
func Audit() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if auditLogger != nil {
		return auditLogger
	}
	if appLogger == nil {
		appLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return appLogger
}

// Named returns a child logger with the provided component name.
func Named(name string) *slog.Logger {
	return L().WithGroup(name)
}

// Close flushes and closes any file-backed log outputs.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	var err error
	for _, closer := range closers {
		err = errors.Join(err, closer.Close())
	}
	closers = nil
	return err
}

func buildHandler(format string, outputs []string, opts *slog.HandlerOptions) (slog.Handler, error) {
	writers := make([]io.Writer, 0, len(outputs))
	if len(outputs) == 0 {
		writers = append(writers, os.Stdout)
	}
	for _, out := range outputs {
		writer, closer, err := openWriter(out)
		if err != nil {
			return nil, err
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		writers = append(writers, writer)
	}

	writer := writers[0]
	if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	}

	if strings.EqualFold(format, "text") {
		return slog.NewTextHandler(writer, opts), nil
	}
	return slog.NewJSONHandler(writer, opts), nil
}

func buildAuditLogger(cfg AuditConfig) (*slog.Logger, error) {
	if cfg.Path == "" {
		return nil, errors.New("audit log path cannot be empty when enabled")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 7
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 30
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	closers = append(closers, writer)
	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelInfo})), nil
}

func openWriter(path string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(path) {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		return file, file, nil
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
