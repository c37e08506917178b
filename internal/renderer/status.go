package renderer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dshills/quill/internal/renderer/core"
)

// statusSeparator joins the sections of the status line.
const statusSeparator = " | "

// statusLine builds the text of the status row:
//
//	<status text> | Ln <line>, Col <col> | <size>[ | <message>]
//
// Line and column are one-based. The result is truncated to width.
func statusLine(doc Document, col int, message string, width int) string {
	pos := doc.CursorPosition()
	parts := []string{
		doc.StatusText(),
		fmt.Sprintf("Ln %d, Col %d", pos.Line+1, col+1),
		humanize.Bytes(uint64(doc.ByteSize())),
	}
	if message != "" {
		parts = append(parts, message)
	}
	return core.Truncate(" "+strings.Join(parts, statusSeparator), width)
}

// drawStatus fills row y with the status style and writes text into it.
func (r *Renderer) drawStatus(y int, text string) {
	x := 0
	for _, ch := range text {
		cell := core.NewStyledCell(ch, r.opts.StatusStyle)
		if cell.Width == 0 {
			continue
		}
		r.backend.SetCell(x, y, cell)
		x += cell.Width
		if cell.Width == 2 && x <= r.width {
			r.backend.SetCell(x-1, y, core.ContinuationCell())
		}
	}
	for ; x < r.width; x++ {
		r.backend.SetCell(x, y, core.NewStyledCell(' ', r.opts.StatusStyle))
	}
}
