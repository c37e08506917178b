// Package config loads quill's settings.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← QUILL_EDITOR_TAB_WIDTH=8
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/quill/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file may be TOML or YAML; the format is chosen by extension
// (.toml, .yaml, .yml). A missing file is not an error.
//
// # Basic Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    var perr *config.ParseError
//	    if errors.As(err, &perr) {
//	        // report the broken file
//	    }
//	}
//	width := cfg.Editor.TabWidth
//
// # Live Reload
//
// Watcher reports writes to the config file so a running editor can call
// Load again:
//
//	w, err := config.NewWatcher(path, func() { reload() })
//	defer w.Close()
package config
