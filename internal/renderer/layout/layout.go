// Package layout turns a line of text into screen cells, expanding tabs
// and giving wide runes two columns.
package layout

import "github.com/dshills/quill/internal/renderer/core"

// DefaultTabWidth is used when a non-positive tab width is configured.
const DefaultTabWidth = 4

// Line is the visual layout of a single buffer line.
type Line struct {
	// Cells holds one entry per screen column. Wide runes are followed
	// by a continuation cell.
	Cells []core.Cell

	// bufferCols maps a rune column to the screen column it starts at.
	bufferCols []int
}

// Width returns the number of screen columns the line occupies.
func (l *Line) Width() int {
	return len(l.Cells)
}

// VisualColumn converts a rune column to a screen column. Columns past
// the end of the line extrapolate one screen column per rune.
func (l *Line) VisualColumn(col int) int {
	if col <= 0 {
		return 0
	}
	if col < len(l.bufferCols) {
		return l.bufferCols[col]
	}
	return len(l.Cells) + col - len(l.bufferCols)
}

// Engine computes line layouts.
type Engine struct {
	tabWidth int
}

// NewEngine creates a layout engine with the given tab width.
func NewEngine(tabWidth int) *Engine {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &Engine{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (e *Engine) TabWidth() int {
	return e.tabWidth
}

// SetTabWidth sets the tab width. Values below one are raised to one.
func (e *Engine) SetTabWidth(width int) {
	e.tabWidth = max(width, 1)
}

// Layout computes the cells for text drawn in style.
func (e *Engine) Layout(text string, style core.Style) *Line {
	l := &Line{
		Cells:      make([]core.Cell, 0, len(text)),
		bufferCols: make([]int, 0, len(text)),
	}

	for _, r := range text {
		visCol := len(l.Cells)
		l.bufferCols = append(l.bufferCols, visCol)

		if r == '\t' {
			for range e.tabWidth - visCol%e.tabWidth {
				l.Cells = append(l.Cells, core.Cell{Rune: ' ', Width: 1, Style: style})
			}
			continue
		}

		// Control characters take no columns.
		width := core.RuneWidth(r)
		if width == 0 {
			continue
		}

		l.Cells = append(l.Cells, core.Cell{Rune: r, Width: width, Style: style})
		if width == 2 {
			l.Cells = append(l.Cells, core.ContinuationCell())
		}
	}

	return l
}
