package renderer

import (
	"fmt"
	"sync"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/core"
	"github.com/dshills/quill/internal/renderer/layout"
)

// Document is the read-only view of a buffer the renderer draws.
// *buffer.Buffer satisfies it.
type Document interface {
	LineCount() int
	LineText(line int) string
	CursorPosition() buffer.Point
	CursorScreenOffset() int
	StatusText() string
	ByteSize() int64
}

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool
	TabWidth        int

	// Lines and columns kept between the cursor and the edge of the view.
	ScrollMarginV int
	ScrollMarginH int

	TextStyle   core.Style
	GutterStyle core.Style
	StatusStyle core.Style
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: true,
		TabWidth:        layout.DefaultTabWidth,
		ScrollMarginV:   3,
		ScrollMarginH:   8,
		TextStyle:       core.DefaultStyle(),
		GutterStyle:     core.DefaultStyle().Dim(),
		StatusStyle:     core.DefaultStyle().Reverse(),
	}
}

// Renderer draws a Document onto a backend. The last screen row is the
// status line; the rows above it show text.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	layout  *layout.Engine
	view    viewport

	width, height int
	gutterWidth   int
	message       string
	frameCount    uint64
}

// New creates a new renderer with the given backend and options.
func New(be backend.Backend, opts Options) *Renderer {
	r := &Renderer{
		backend: be,
		layout:  layout.NewEngine(opts.TabWidth),
	}
	r.applyOptions(opts)
	return r
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// SetOptions replaces the options. They apply from the next frame.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applyOptions(opts)
}

func (r *Renderer) applyOptions(opts Options) {
	r.opts = opts
	r.layout.SetTabWidth(opts.TabWidth)
	r.view.marginV = max(opts.ScrollMarginV, 0)
	r.view.marginH = max(opts.ScrollMarginH, 0)
}

// SetMessage sets the transient message shown on the status line.
// An empty string clears it.
func (r *Renderer) SetMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.message = msg
}

// Message returns the current status line message.
func (r *Renderer) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// Render draws one full frame of doc.
func (r *Renderer) Render(doc Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = r.backend.Size()
	r.backend.Clear()
	r.frameCount++

	if r.width <= 0 || r.height <= 0 {
		r.backend.HideCursor()
		r.backend.Show()
		return
	}

	textRows := r.height - 1
	r.gutterWidth = r.calculateGutterWidth(doc.LineCount())
	contentWidth := r.width - r.gutterWidth
	r.view.resize(contentWidth, textRows)

	pos := doc.CursorPosition()
	col := doc.CursorScreenOffset()
	visCol := r.layout.Layout(doc.LineText(pos.Line), r.opts.TextStyle).VisualColumn(col)
	r.view.reveal(pos.Line, visCol, doc.LineCount())

	for row := range textRows {
		r.renderLine(doc, r.view.top+row, row, contentWidth)
	}

	r.drawStatus(r.height-1, statusLine(doc, col, r.message, r.width))
	r.renderCursor(pos.Line, visCol, textRows)
	r.backend.Show()
}

// renderLine draws buffer line `line` at screen row `row`.
func (r *Renderer) renderLine(doc Document, line, row, contentWidth int) {
	exists := line < doc.LineCount()
	if r.gutterWidth > 0 {
		r.renderGutter(line, row, exists)
	}
	if !exists {
		return
	}

	l := r.layout.Layout(doc.LineText(line), r.opts.TextStyle)
	blank := core.NewStyledCell(' ', r.opts.TextStyle)

	for x := 0; x < contentWidth; x++ {
		visCol := r.view.left + x
		if visCol >= l.Width() {
			break
		}
		cell := l.Cells[visCol]
		switch {
		case cell.IsContinuation() && x == 0:
			// Left half scrolled off.
			cell = blank
		case cell.Width == 2 && x == contentWidth-1:
			// Right half would be clipped.
			cell = blank
		}
		r.backend.SetCell(r.gutterWidth+x, row, cell)
	}
}

// renderGutter draws the right-aligned line number, or "~" past the end
// of the document, followed by a blank separator column.
func (r *Renderer) renderGutter(line, row int, exists bool) {
	label := "~"
	if exists {
		label = fmt.Sprint(line + 1)
	}
	text := fmt.Sprintf("%*s ", r.gutterWidth-1, label)
	for x, ch := range []rune(text) {
		if x >= r.gutterWidth {
			break
		}
		r.backend.SetCell(x, row, core.NewStyledCell(ch, r.opts.GutterStyle))
	}
}

// renderCursor places the terminal cursor, hiding it when the cursor is
// outside the text area.
func (r *Renderer) renderCursor(line, visCol, textRows int) {
	row := line - r.view.top
	x := r.gutterWidth + visCol - r.view.left
	if row < 0 || row >= textRows || x < r.gutterWidth || x >= r.width {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(x, row)
}

// calculateGutterWidth returns the width of the line-number gutter
// including its separator, or 0 when it is disabled or would leave no
// room for text.
func (r *Renderer) calculateGutterWidth(lineCount int) int {
	if !r.opts.ShowLineNumbers {
		return 0
	}

	digits := 1
	for n := lineCount; n >= 10; n /= 10 {
		digits++
	}

	// Minimum 3 digits, plus separator
	width := max(digits, 3) + 1
	if width >= r.width {
		return 0
	}
	return width
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// GutterWidth returns the gutter width used by the last frame.
func (r *Renderer) GutterWidth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gutterWidth
}

// ScrollOffset returns the first visible line and screen column.
func (r *Renderer) ScrollOffset() (top, left int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view.top, r.view.left
}
