// Package ui implements a small retained widget tree drawn onto an
// in-memory character surface. The surface is the rendering boundary of
// the engine: real windowing sits behind it and is out of scope here.
package ui

import "strings"

// Surface is a fixed-size grid of characters widgets draw into.
type Surface struct {
	width  int
	height int
	cells  [][]rune
}

// NewSurface creates a blank surface filled with spaces.
func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &Surface{width: width, height: height, cells: cells}
}

// Width returns the surface width in cells.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in cells.
func (s *Surface) Height() int { return s.height }

// Set writes one rune; out-of-bounds writes are dropped.
func (s *Surface) Set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y][x] = r
}

// At reads one rune; out-of-bounds reads return a space.
func (s *Surface) At(x, y int) rune {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return ' '
	}
	return s.cells[y][x]
}

// Text writes a string starting at (x, y), clipped to the surface.
func (s *Surface) Text(x, y int, text string) {
	for i, r := range []rune(text) {
		s.Set(x+i, y, r)
	}
}

// String renders the surface as newline-separated rows.
func (s *Surface) String() string {
	var sb strings.Builder
	for y, row := range s.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}
