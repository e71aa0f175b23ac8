// Package layout holds the rectangle arithmetic used to place the status bar,
// the board and the overlay. All functions accept unnormalized rectangles and
// never return one larger than their input.
package layout

import "image"

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalize(rect image.Rectangle) image.Rectangle {
	return rect.Canon()
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	return normalize(image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx))
}

// SplitHorizontal cuts rect into a top part topHeightPx high and the rest.
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top, bottom image.Rectangle) {
	rect = normalize(rect)
	y := rect.Min.Y + clamp(topHeightPx, 0, rect.Dy())
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, y), image.Rect(rect.Min.X, y, rect.Max.X, rect.Max.Y)
}

// AnchorBottomRight returns a widthPx x heightPx rectangle in the bottom-right
// corner of rect, clipped to rect.
func AnchorBottomRight(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = normalize(rect)
	w := clamp(widthPx, 0, rect.Dx())
	h := clamp(heightPx, 0, rect.Dy())
	return image.Rect(rect.Max.X-w, rect.Max.Y-h, rect.Max.X, rect.Max.Y)
}

// FitSquare returns the largest square that fits into rect, anchored at the top-left.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = normalize(rect)
	size := min(rect.Dx(), rect.Dy())
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+size, rect.Min.Y+size)
}

// CellSize returns the largest square cell edge (at least 1) such that
// cols x rows cells fit into rect.
func CellSize(rect image.Rectangle, cols, rows int) int {
	rect = normalize(rect)
	if cols <= 0 || rows <= 0 {
		return 1
	}
	return max(1, min(rect.Dx()/cols, rect.Dy()/rows))
}

// CellRect returns the rectangle of cell (col, row) in a grid of square
// cells of the given size anchored at the top-left of rect.
func CellRect(rect image.Rectangle, size, col, row int) image.Rectangle {
	rect = normalize(rect)
	x := rect.Min.X + col*size
	y := rect.Min.Y + row*size
	return image.Rect(x, y, x+size, y+size)
}
