package layout

import (
	"testing"

	"github.com/dshills/quill/internal/renderer/core"
)

func cellRunes(l *Line) string {
	runes := make([]rune, 0, len(l.Cells))
	for _, c := range l.Cells {
		if c.IsContinuation() {
			runes = append(runes, '_')
			continue
		}
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{4, 4},
		{8, 8},
		{0, DefaultTabWidth},
		{-1, DefaultTabWidth},
	}
	for _, tt := range tests {
		if got := NewEngine(tt.in).TabWidth(); got != tt.want {
			t.Errorf("NewEngine(%d).TabWidth() = %d, want %d", tt.in, got, tt.want)
		}
	}

	e := NewEngine(4)
	e.SetTabWidth(0)
	if e.TabWidth() != 1 {
		t.Errorf("expected minimum tab width 1, got %d", e.TabWidth())
	}
}

func TestEngine_Layout(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		tab   int
		cells string
	}{
		{"plain", "Hello", 4, "Hello"},
		{"empty", "", 4, ""},
		{"leading tab", "\tx", 4, "    x"},
		{"mid tab", "ab\tc", 4, "ab  c"},
		{"tab on stop", "abcd\te", 4, "abcd    e"},
		{"tab width two", "a\tb", 2, "a b"},
		{"wide rune", "a世b", 4, "a世_b"},
		{"control char", "a\x01b", 4, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewEngine(tt.tab).Layout(tt.text, core.DefaultStyle())
			if got := cellRunes(l); got != tt.cells {
				t.Errorf("cells = %q, want %q", got, tt.cells)
			}
			if l.Width() != len([]rune(tt.cells)) {
				t.Errorf("Width() = %d, want %d", l.Width(), len([]rune(tt.cells)))
			}
		})
	}
}

func TestLine_VisualColumn(t *testing.T) {
	l := NewEngine(4).Layout("a\t世b", core.DefaultStyle())
	// a=0, tab=1..3, 世=4..5, b=6

	tests := []struct {
		col  int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 6},
		{4, 7},
		{6, 9},
	}
	for _, tt := range tests {
		if got := l.VisualColumn(tt.col); got != tt.want {
			t.Errorf("VisualColumn(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestEngine_LayoutStyle(t *testing.T) {
	style := core.DefaultStyle().Bold()
	l := NewEngine(4).Layout("x\ty", style)
	for i, c := range l.Cells {
		if c.Style != style {
			t.Errorf("cell %d style = %+v, want %+v", i, c.Style, style)
		}
	}
}
