package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads settings from environment variables.
//
// QUILL_EDITOR_TAB_WIDTH=8 sets editor.tab_width: the first segment after
// the prefix names the section and the rest, joined by underscores, names
// the setting.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
// The prefix should include the trailing underscore (e.g., "QUILL_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Load reads the environment and returns a settings map.
// Empty values are kept as empty strings.
func (l *EnvLoader) Load() map[string]any {
	settings := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		section, setting, ok := l.envToPath(name)
		if !ok {
			continue
		}

		sec, _ := settings[section].(map[string]any)
		if sec == nil {
			sec = make(map[string]any)
			settings[section] = sec
		}
		sec[setting] = parseValue(value)
	}

	return settings
}

// envToPath converts QUILL_EDITOR_TAB_WIDTH to ("editor", "tab_width").
func (l *EnvLoader) envToPath(env string) (section, setting string, ok bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok = strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return "", "", false
	}
	return section, setting, true
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	return s
}
