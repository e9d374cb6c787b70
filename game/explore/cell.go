package explore

import "math"

// Cell is an integer grid coordinate. Cells are plain values: two cells are
// equal iff both coordinates match, so they can be used as map keys and set
// members directly.
type Cell struct {
	X int
	Y int
}

// Add returns the cell offset by the delta d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns the delta from o to c.
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// DistanceTo returns the Euclidean distance between the two cell centers.
func (c Cell) DistanceTo(o Cell) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// The four axis-aligned unit deltas. Movement is always 4-connected; the
// agent never proposes a diagonal step.
var (
	North = Cell{X: 0, Y: -1}
	South = Cell{X: 0, Y: 1}
	East  = Cell{X: 1, Y: 0}
	West  = Cell{X: -1, Y: 0}

	directions = []Cell{North, South, East, West}
)

// adjacent reports whether a and b are exactly one axis-aligned step apart.
func adjacent(a, b Cell) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Grid is the read-only view of a dungeon the explorer navigates. The
// explorer bounds-checks coordinates before calling IsWalkable, but
// implementations must still report false for out-of-bounds coordinates.
type Grid interface {
	Width() int
	Height() int
	IsWalkable(x, y int) bool
}
