package renderer

// viewport tracks which part of the document is on screen.
type viewport struct {
	top, left     int
	width, height int
	marginV       int
	marginH       int
}

// resize sets the text area size.
func (v *viewport) resize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
}

// effectiveMargins shrinks the margins so they never cover more than half
// of the view.
func (v *viewport) effectiveMargins() (vertical, horizontal int) {
	vertical = min(v.marginV, max((v.height-1)/2, 0))
	horizontal = min(v.marginH, max((v.width-1)/2, 0))
	return vertical, horizontal
}

// reveal scrolls minimally so that line and screen column col are
// visible with the margins around them. The view never starts below the
// point where the last of lineCount lines reaches the bottom row. It
// reports whether the view moved.
func (v *viewport) reveal(line, col, lineCount int) bool {
	if v.height == 0 || v.width == 0 {
		return false
	}
	mv, mh := v.effectiveMargins()
	top, left := v.top, v.left

	switch {
	case line < top+mv:
		top = max(line-mv, 0)
	case line > top+v.height-1-mv:
		top = line - v.height + 1 + mv
	}
	top = min(top, max(lineCount-v.height, 0))

	switch {
	case col < left+mh:
		left = max(col-mh, 0)
	case col > left+v.width-1-mh:
		left = col - v.width + 1 + mh
	}

	moved := top != v.top || left != v.left
	v.top, v.left = top, left
	return moved
}
