package dungeon

import "math/rand"

// The labyrinth layout carves a uniform spanning tree over a coarse cell
// grid with Wilson's algorithm (loop-erased random walks), then renders
// each cell and each opened wall as floor tiles. Every cell ends up
// connected to every other by exactly one corridor, which makes dense,
// winding maps with no unreachable floor.

type labPos struct {
	row, col int
}

type labMove struct {
	from, to labPos
	dir      int
}

const (
	labNorth = iota
	labSouth
	labEast
	labWest
)

var labDeltas = [4]labPos{
	labNorth: {row: -1, col: 0},
	labSouth: {row: 1, col: 0},
	labEast:  {row: 0, col: 1},
	labWest:  {row: 0, col: -1},
}

// labCell tracks which of the four walls are still standing.
type labCell struct {
	walls [4]bool
}

type labyrinth struct {
	rows, cols int
	grid       [][]*labCell
	rng        *rand.Rand
}

func generateLabyrinth(cfg Config, rng *rand.Rand) *Dungeon {
	// Each coarse cell renders to a 2x2 block plus a shared wall ring, so
	// the tile map is (2*cols+1) x (2*rows+1). Even requested dimensions
	// round down by one tile.
	cols := (cfg.Width - 1) / 2
	rows := (cfg.Height - 1) / 2

	l := &labyrinth{rows: rows, cols: cols, rng: rng}
	l.grid = make([][]*labCell, rows)
	for r := range l.grid {
		l.grid[r] = make([]*labCell, cols)
		for c := range l.grid[r] {
			l.grid[r][c] = &labCell{walls: [4]bool{true, true, true, true}}
		}
	}
	l.carve()

	return l.render()
}

// carve runs Wilson's algorithm: repeated loop-erased random walks from
// unvisited cells into the visited region, opening walls along the way.
func (l *labyrinth) carve() {
	visited := make(map[labPos]struct{}, l.rows*l.cols)
	visited[l.randomPos()] = struct{}{}

	for len(visited) < l.rows*l.cols {
		for cell, move := range l.randomWalk(visited) {
			l.openWall(move)
			visited[cell] = struct{}{}
		}
	}
}

func (l *labyrinth) randomPos() labPos {
	return labPos{row: l.rng.Intn(l.rows), col: l.rng.Intn(l.cols)}
}

func (l *labyrinth) randomUnvisitedPos(visited map[labPos]struct{}) labPos {
	for {
		pos := l.randomPos()
		if _, seen := visited[pos]; !seen {
			return pos
		}
	}
}

// neighbors lists the in-bounds moves out of pos.
func (l *labyrinth) neighbors(pos labPos) []labMove {
	moves := make([]labMove, 0, 4)
	for dir, delta := range labDeltas {
		to := labPos{row: pos.row + delta.row, col: pos.col + delta.col}
		if to.row < 0 || to.row >= l.rows || to.col < 0 || to.col >= l.cols {
			continue
		}
		moves = append(moves, labMove{from: pos, to: to, dir: dir})
	}
	return moves
}

// randomWalk wanders from a random unvisited cell until it hits the visited
// region. Recording only the latest exit move per cell erases any loops the
// walk made.
func (l *labyrinth) randomWalk(visited map[labPos]struct{}) map[labPos]labMove {
	visits := make(map[labPos]labMove)
	cell := l.randomUnvisitedPos(visited)

	for {
		moves := l.neighbors(cell)
		next := moves[l.rng.Intn(len(moves))]
		visits[cell] = next
		if _, seen := visited[next.to]; seen {
			return visits
		}
		cell = next.to
	}
}

// openWall removes the wall between the two cells of a move, on both sides.
func (l *labyrinth) openWall(m labMove) {
	opposite := [4]int{labNorth: labSouth, labSouth: labNorth, labEast: labWest, labWest: labEast}
	l.grid[m.from.row][m.from.col].walls[m.dir] = false
	l.grid[m.to.row][m.to.col].walls[opposite[m.dir]] = false
}

// render expands the coarse cell grid into a tile map: every cell becomes a
// floor tile at odd coordinates and every opened wall becomes the floor
// tile between two cells.
func (l *labyrinth) render() *Dungeon {
	d := newSolid(2*l.cols+1, 2*l.rows+1)
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			x, y := 2*c+1, 2*r+1
			d.tiles[y][x] = TileFloor
			if !l.grid[r][c].walls[labEast] && c+1 < l.cols {
				d.tiles[y][x+1] = TileFloor
			}
			if !l.grid[r][c].walls[labSouth] && r+1 < l.rows {
				d.tiles[y+1][x] = TileFloor
			}
		}
	}
	return d
}
