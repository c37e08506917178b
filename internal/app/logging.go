package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log rotation limits.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 7
)

// ParseLogLevel parses debug, info, warn or error (any case).
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// DefaultLogPath returns ~/.config/quill/quill.log, falling back to the
// temp directory when the user's config directory is unknown.
func DefaultLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "quill", "quill.log")
}

// newLogger builds a JSON logger writing to a rotating file at path. Every
// record carries the session id. The screen belongs to the editor while
// it runs, so nothing is ever written to stderr.
func newLogger(path string, level slog.Level, session string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("session", session)
	return logger, writer, nil
}

// newSessionID returns a random id that ties together one run's log lines.
func newSessionID() string {
	return uuid.NewString()
}
