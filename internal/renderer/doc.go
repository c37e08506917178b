// Package renderer draws a buffer onto a backend.
//
// Each frame lays out the visible lines (tab expansion, wide runes),
// draws an optional line-number gutter and a one-row status line, then
// places the terminal cursor. The view scrolls just enough to keep the
// cursor inside the configured margins.
//
//	be, _ := backend.NewTerminal()
//	r := renderer.New(be, renderer.DefaultOptions())
//	r.Render(buf)
package renderer
