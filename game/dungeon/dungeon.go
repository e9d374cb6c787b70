/*
Package dungeon generates and holds procedural dungeon maps.

A Dungeon is a rectangular tile grid satisfying the explore.Grid contract.
Two layout algorithms are provided: scattered rooms joined by L-shaped
corridors, and a labyrinth carved with Wilson's algorithm. Generation is
fully deterministic for a given seed.
*/
package dungeon

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/abel-tefera/delve/game/explore"
)

// Tile is a single map cell.
type Tile uint8

const (
	TileWall Tile = iota
	TileFloor
)

// Layout selects the generation algorithm.
type Layout string

const (
	LayoutRooms     Layout = "rooms"
	LayoutLabyrinth Layout = "labyrinth"
)

// Dimension limits. The upper bound keeps the explorer's linear reachable
// scans cheap.
const (
	minDimension = 5
	maxDimension = 256
)

// Generation errors.
var (
	ErrTooSmall      = errors.New("dungeon dimensions are too small")
	ErrTooLarge      = errors.New("dungeon dimensions are too large")
	ErrUnknownLayout = errors.New("unknown dungeon layout")
)

// Config holds dungeon generation parameters.
type Config struct {
	Width  int
	Height int
	Layout Layout
	Seed   int64 // generation seed; equal seeds produce equal dungeons

	// Room parameters, used by LayoutRooms only. Zero values select
	// defaults.
	MinRoomSize  int
	MaxRoomSize  int
	RoomAttempts int
}

// Dungeon is an immutable generated map.
type Dungeon struct {
	width  int
	height int
	tiles  [][]Tile // indexed [y][x]
}

// Generate builds a dungeon from the given configuration.
func Generate(cfg Config) (*Dungeon, error) {
	if cfg.Width < minDimension || cfg.Height < minDimension {
		return nil, ErrTooSmall
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, ErrTooLarge
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	switch cfg.Layout {
	case LayoutRooms, "":
		return generateRooms(cfg, rng), nil
	case LayoutLabyrinth:
		return generateLabyrinth(cfg, rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, cfg.Layout)
	}
}

func newSolid(width, height int) *Dungeon {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &Dungeon{width: width, height: height, tiles: tiles}
}

// Width returns the map width in tiles.
func (d *Dungeon) Width() int { return d.width }

// Height returns the map height in tiles.
func (d *Dungeon) Height() int { return d.height }

// IsWalkable reports whether the tile at (x, y) is floor. Out-of-bounds
// coordinates are never walkable.
func (d *Dungeon) IsWalkable(x, y int) bool {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return false
	}
	return d.tiles[y][x] == TileFloor
}

// Tile returns the tile at (x, y); out-of-bounds coordinates read as wall.
func (d *Dungeon) Tile(x, y int) Tile {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return TileWall
	}
	return d.tiles[y][x]
}

// FloorCount returns the number of floor tiles.
func (d *Dungeon) FloorCount() int {
	count := 0
	for _, row := range d.tiles {
		for _, t := range row {
			if t == TileFloor {
				count++
			}
		}
	}
	return count
}

// RandomFloor picks a uniformly random floor tile. The boolean is false
// when the map has no floor at all.
func (d *Dungeon) RandomFloor(rng *rand.Rand) (explore.Cell, bool) {
	total := d.FloorCount()
	if total == 0 {
		return explore.Cell{}, false
	}
	n := rng.Intn(total)
	for y, row := range d.tiles {
		for x, t := range row {
			if t != TileFloor {
				continue
			}
			if n == 0 {
				return explore.Cell{X: x, Y: y}, true
			}
			n--
		}
	}
	return explore.Cell{}, false
}

// String renders the map as ASCII art, one row per line.
func (d *Dungeon) String() string {
	var sb strings.Builder
	for y, row := range d.tiles {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, t := range row {
			if t == TileFloor {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
