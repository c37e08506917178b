// Package gapbuffer provides a mutable rune sequence backed by a gap buffer.
//
// A gap buffer keeps its contents in a single slice with an unused region
// (the gap) at the most recent edit point. Insertions and removals next to
// the gap cost O(1); moving the gap costs O(distance moved). Editors tend to
// cluster edits around the cursor, which keeps gap movement short.
//
// Basic usage:
//
//	g := gapbuffer.FromString("hello world")
//	_ = g.Insert(5, ',')         // "hello, world"
//	_, _ = g.Remove(0)           // "ello, world"
//	r, ok := g.At(0)             // 'e', true
//	text := g.String()           // "ello, world"
//
// Positions and lengths are measured in runes, not bytes.
//
// A GapBuffer is not safe for concurrent use.
package gapbuffer
