package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "QUILL_"

// DefaultPath returns ~/.config/quill/config.toml, or "" if the user's
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.toml")
}

// Load resolves defaults, the config file at path and QUILL_ environment
// variables into a validated Config. An empty path selects DefaultPath.
// A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	settings := make(map[string]any)
	if path != "" {
		fileSettings, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		settings = DeepMerge(settings, fileSettings)
	}

	envSettings := NewEnvLoader(EnvPrefix).Load()
	settings = DeepMerge(settings, envSettings)

	cfg := Default()
	if err := decode(settings, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads path into a settings map, choosing the decoder by
// extension. A missing file yields nil.
func loadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var settings map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", "":
		if err := toml.Unmarshal(data, &settings); err != nil {
			return nil, tomlParseError(path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	return settings, nil
}

// tomlParseError converts a go-toml decode error, keeping its position.
func tomlParseError(path string, err error) *ParseError {
	perr := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
		perr.Message = derr.Error()
	}
	return perr
}

// decode applies a merged settings map onto cfg. The map is re-encoded as
// TOML so both file formats and environment values share one set of
// struct tags.
func decode(settings map[string]any, cfg *Config) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: "<merged settings>", Message: err.Error(), Err: err}
	}
	return nil
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}

	return dst
}
