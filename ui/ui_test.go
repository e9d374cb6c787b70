package ui

import (
	"strings"
	"testing"

	"github.com/abel-tefera/delve/game/explore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gridStub struct {
	rows []string
}

func (g *gridStub) Width() int {
	if len(g.rows) == 0 {
		return 0
	}
	return len(g.rows[0])
}

func (g *gridStub) Height() int { return len(g.rows) }

func (g *gridStub) IsWalkable(x, y int) bool {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= len(g.rows[y]) {
		return false
	}
	return g.rows[y][x] == '.'
}

func TestSurfaceClipsWrites(t *testing.T) {
	s := NewSurface(4, 2)
	s.Set(-1, 0, 'x')
	s.Set(0, 5, 'x')
	s.Text(2, 0, "abcdef") // runs off the right edge

	assert.Equal(t, "  ab\n    ", s.String())
	assert.Equal(t, ' ', s.At(99, 99))
}

func TestLabelAndGauge(t *testing.T) {
	s := NewSurface(12, 3)
	(&Label{Pos: Rect{X: 0, Y: 0}, Text: "delve"}).Draw(s)
	(&Gauge{Pos: Rect{X: 0, Y: 1, W: 12}, Title: "HP", Value: 5, Max: 10}).Draw(s)

	rows := strings.Split(s.String(), "\n")
	require.Len(t, rows, 3)
	assert.Equal(t, "delve       ", rows[0])
	// Half-full bar: 10 inner cells, 5 filled.
	assert.Equal(t, "[=====     ]", rows[1])
	assert.Equal(t, "HP 5/10     ", rows[2])
}

func TestGaugeClampsOverflow(t *testing.T) {
	s := NewSurface(7, 1)
	(&Gauge{Pos: Rect{X: 0, Y: 0, W: 7}, Value: 15, Max: 10}).Draw(s)
	assert.Equal(t, "[=====]", s.String())
}

func TestPanelDrawsBorderAndChildren(t *testing.T) {
	s := NewSurface(7, 3)
	p := &Panel{
		Pos: Rect{X: 0, Y: 0, W: 7, H: 3},
		Children: []Widget{
			&Label{Pos: Rect{X: 1, Y: 1}, Text: "hi"},
		},
	}
	p.Draw(s)

	assert.Equal(t, "+-----+\n|hi   |\n+-----+", s.String())
}

func TestMinimapMarksTrailAndPlayer(t *testing.T) {
	g := &gridStub{rows: []string{
		"####",
		"#..#",
		"####",
	}}
	s := NewSurface(4, 3)
	m := &Minimap{
		Pos:     Rect{X: 0, Y: 0, W: 4, H: 3},
		Grid:    g,
		Visited: map[explore.Cell]struct{}{{X: 1, Y: 1}: {}},
		Player:  explore.Cell{X: 2, Y: 1},
	}
	m.Draw(s)

	assert.Equal(t, "####\n#.@#\n####", s.String())
}
