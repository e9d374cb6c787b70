package dungeon

import (
	"math/rand"
	"testing"

	"github.com/abel-tefera/delve/game/explore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floodCount returns how many floor tiles are reachable 4-directionally
// from start.
func floodCount(d *Dungeon, start explore.Cell) int {
	seen := map[explore.Cell]struct{}{start: {}}
	queue := []explore.Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, delta := range []explore.Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
			n := c.Add(delta)
			if _, ok := seen[n]; ok {
				continue
			}
			if !d.IsWalkable(n.X, n.Y) {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return len(seen)
}

func TestGenerateValidatesDimensions(t *testing.T) {
	_, err := Generate(Config{Width: 3, Height: 40})
	assert.ErrorIs(t, err, ErrTooSmall)

	_, err = Generate(Config{Width: 40, Height: 1000})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Generate(Config{Width: 40, Height: 40, Layout: "caves"})
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, layout := range []Layout{LayoutRooms, LayoutLabyrinth} {
		cfg := Config{Width: 41, Height: 31, Layout: layout, Seed: 42}
		a, err := Generate(cfg)
		require.NoError(t, err)
		b, err := Generate(cfg)
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String(), "layout %s", layout)

		c, err := Generate(Config{Width: 41, Height: 31, Layout: layout, Seed: 43})
		require.NoError(t, err)
		assert.NotEqual(t, a.String(), c.String(), "layout %s ignored the seed", layout)
	}
}

func TestRoomsFloorIsConnected(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		d, err := Generate(Config{Width: 48, Height: 32, Layout: LayoutRooms, Seed: seed})
		require.NoError(t, err)

		start, ok := d.RandomFloor(rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		assert.Equal(t, d.FloorCount(), floodCount(d, start),
			"seed %d produced a disconnected floor", seed)
	}
}

func TestLabyrinthFloorIsConnected(t *testing.T) {
	d, err := Generate(Config{Width: 33, Height: 25, Layout: LayoutLabyrinth, Seed: 7})
	require.NoError(t, err)

	// 33x25 requested gives a 16x12 cell grid rendered to 33x25 tiles.
	assert.Equal(t, 33, d.Width())
	assert.Equal(t, 25, d.Height())

	start, ok := d.RandomFloor(rand.New(rand.NewSource(1)))
	require.True(t, ok)
	assert.Equal(t, d.FloorCount(), floodCount(d, start))

	// A spanning tree over n cells opens exactly n-1 walls.
	cells := 16 * 12
	assert.Equal(t, cells+(cells-1), d.FloorCount())
}

func TestBoundsAreNeverWalkable(t *testing.T) {
	d, err := Generate(Config{Width: 16, Height: 16, Seed: 3})
	require.NoError(t, err)

	assert.False(t, d.IsWalkable(-1, 0))
	assert.False(t, d.IsWalkable(0, -1))
	assert.False(t, d.IsWalkable(16, 0))
	assert.False(t, d.IsWalkable(0, 16))
	assert.Equal(t, TileWall, d.Tile(-5, -5))
}

func TestRandomFloorPicksWalkableTiles(t *testing.T) {
	d, err := Generate(Config{Width: 24, Height: 24, Seed: 11})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		c, ok := d.RandomFloor(rng)
		require.True(t, ok)
		assert.True(t, d.IsWalkable(c.X, c.Y))
	}
}
