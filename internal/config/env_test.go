package config

import (
	"reflect"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("QUILL_")
	l.environ = func() []string {
		return []string{
			"HOME=/home/user",
			"QUILL_EDITOR_TAB_WIDTH=8",
			"QUILL_EDITOR_COLUMN_MEMORY=yes",
			"QUILL_UI_STATUS_BACKGROUND=#102030",
			"QUILL_LOGGING_FILE=",
			"QUILL_BROKEN",
			"QUILL_=x",
		}
	}

	want := map[string]any{
		"editor": map[string]any{
			"tab_width":     int64(8),
			"column_memory": true,
		},
		"ui": map[string]any{
			"status_background": "#102030",
		},
		"logging": map[string]any{
			"file": "",
		},
	}

	if got := l.Load(); !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %#v, want %#v", got, want)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"On", true},
		{"no", false},
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"4.5", "4.5"},
		{"#ffffff", "#ffffff"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tab_width": 4, "line_ending": "lf"},
		"ui":     map[string]any{"show_line_numbers": true},
	}
	src := map[string]any{
		"editor":  map[string]any{"tab_width": 8},
		"logging": map[string]any{"level": "debug"},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"editor":  map[string]any{"tab_width": 8, "line_ending": "lf"},
		"ui":      map[string]any{"show_line_numbers": true},
		"logging": map[string]any{"level": "debug"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge() = %#v, want %#v", got, want)
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %#v, want empty map", got)
	}
}
