package config

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/core"
)

// Config is the complete set of editor settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	UI      UIConfig      `toml:"ui" yaml:"ui"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig holds text editing settings.
type EditorConfig struct {
	// TabWidth is the number of cells a tab is expanded to when drawn.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
	// ColumnMemory keeps the cursor column across vertical motion.
	ColumnMemory bool `toml:"column_memory" yaml:"column_memory"`
	// LineEnding forces "lf", "crlf" or "cr" on save. Empty keeps the
	// ending detected when the file was read.
	LineEnding string `toml:"line_ending" yaml:"line_ending"`
}

// UIConfig holds display settings.
type UIConfig struct {
	ShowLineNumbers  bool   `toml:"show_line_numbers" yaml:"show_line_numbers"`
	StatusForeground string `toml:"status_foreground" yaml:"status_foreground"`
	StatusBackground string `toml:"status_background" yaml:"status_background"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// File is the log file path. Empty selects the default under the
	// user's config directory.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth: 4,
		},
		UI: UIConfig{
			ShowLineNumbers:  true,
			StatusForeground: "#000000",
			StatusBackground: "#c0c0c0",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns the first failure as a
// *ValidationError.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return &ValidationError{Setting: "editor.tab_width", Value: c.Editor.TabWidth, Reason: "must be between 1 and 16"}
	}
	if c.Editor.LineEnding != "" {
		if _, ok := buffer.ParseLineEnding(c.Editor.LineEnding); !ok {
			return &ValidationError{Setting: "editor.line_ending", Value: c.Editor.LineEnding, Reason: "must be lf, crlf or cr"}
		}
	}
	colors := []struct{ setting, value string }{
		{"ui.status_foreground", c.UI.StatusForeground},
		{"ui.status_background", c.UI.StatusBackground},
	}
	for _, col := range colors {
		if _, err := core.ColorFromHex(col.value); err != nil {
			return &ValidationError{Setting: col.setting, Value: col.value, Reason: err.Error()}
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Setting: "logging.level", Value: c.Logging.Level, Reason: "must be debug, info, warn or error"}
	}
	return nil
}

// BufferOptions translates editor settings into buffer options.
func (c *Config) BufferOptions() []buffer.Option {
	opts := []buffer.Option{buffer.WithColumnMemory(c.Editor.ColumnMemory)}
	if le, ok := buffer.ParseLineEnding(c.Editor.LineEnding); ok {
		opts = append(opts, buffer.WithLineEnding(le))
	}
	return opts
}

// String returns a short summary for logs.
func (c *Config) String() string {
	return fmt.Sprintf("tab_width=%d column_memory=%t line_ending=%q log_level=%s",
		c.Editor.TabWidth, c.Editor.ColumnMemory, c.Editor.LineEnding, c.Logging.Level)
}
