// Package raycast renders a pseudo-3D overlay of a tile grid: for each
// screen column it casts a ray from the viewer and reports the first wall
// hit, which the presentation layer turns into vertical wall slices.
package raycast

import (
	"math"

	"github.com/abel-tefera/delve/game/explore"
)

// Hit describes the first wall a single ray ran into.
type Hit struct {
	// Dist is the perpendicular distance to the wall, fisheye-corrected so
	// flat walls render flat. MaxDist means the ray escaped.
	Dist float64

	// Side is 0 for an east/west wall face and 1 for north/south, letting
	// renderers shade the two orientations differently.
	Side int

	// TileX, TileY locate the wall tile that was hit; -1 when the ray
	// escaped the grid.
	TileX int
	TileY int
}

// View casts one ray per column across the field of view fov (radians)
// centered on facing, from the viewer position (x, y) in tile coordinates.
// Rays that leave the grid or travel maxDist without hitting a wall report
// a miss at maxDist.
func View(g explore.Grid, x, y, facing, fov float64, columns int, maxDist float64) []Hit {
	if g == nil || columns <= 0 {
		return nil
	}

	hits := make([]Hit, columns)
	for col := 0; col < columns; col++ {
		offset := 0.0
		if columns > 1 {
			offset = fov*float64(col)/float64(columns-1) - fov/2
		}
		angle := facing + offset
		hit := cast(g, x, y, angle, maxDist)
		// Project onto the view direction to avoid the fisheye bulge.
		if hit.TileX >= 0 {
			hit.Dist *= math.Cos(offset)
		}
		hits[col] = hit
	}
	return hits
}

// cast walks one ray through the tile grid with the DDA traversal: advance
// to whichever of the next vertical or horizontal grid line is closer, and
// stop on the first non-walkable tile.
func cast(g explore.Grid, x, y, angle, maxDist float64) Hit {
	rayX := math.Cos(angle)
	rayY := math.Sin(angle)

	tileX := int(math.Floor(x))
	tileY := int(math.Floor(y))

	// Distance the ray travels between two successive grid lines on each
	// axis.
	deltaX := math.Inf(1)
	if rayX != 0 {
		deltaX = math.Abs(1 / rayX)
	}
	deltaY := math.Inf(1)
	if rayY != 0 {
		deltaY = math.Abs(1 / rayY)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if rayX < 0 {
		stepX = -1
		sideX = (x - float64(tileX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(tileX) + 1 - x) * deltaX
	}
	if rayY < 0 {
		stepY = -1
		sideY = (y - float64(tileY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(tileY) + 1 - y) * deltaY
	}

	side := 0
	for {
		if sideX < sideY {
			sideX += deltaX
			tileX += stepX
			side = 0
		} else {
			sideY += deltaY
			tileY += stepY
			side = 1
		}

		var travelled float64
		if side == 0 {
			travelled = sideX - deltaX
		} else {
			travelled = sideY - deltaY
		}
		if travelled > maxDist {
			return Hit{Dist: maxDist, Side: side, TileX: -1, TileY: -1}
		}
		if tileX < 0 || tileY < 0 || tileX >= g.Width() || tileY >= g.Height() {
			return Hit{Dist: maxDist, Side: side, TileX: -1, TileY: -1}
		}
		if !g.IsWalkable(tileX, tileY) {
			return Hit{Dist: travelled, Side: side, TileX: tileX, TileY: tileY}
		}
	}
}
