package ui

import (
	"fmt"

	"github.com/abel-tefera/delve/game/explore"
)

// Rect is a widget's placement on the surface.
type Rect struct {
	X, Y, W, H int
}

// Widget is one node of the retained UI tree. The set of implementations
// is closed: Panel, Label, Gauge and Minimap.
type Widget interface {
	Bounds() Rect
	Draw(s *Surface)
}

// Label is a single line of text.
type Label struct {
	Pos  Rect
	Text string
}

func (l *Label) Bounds() Rect { return l.Pos }

func (l *Label) Draw(s *Surface) {
	s.Text(l.Pos.X, l.Pos.Y, l.Text)
}

// Gauge renders a bounded quantity as a bracketed bar, e.g. HP or
// exploration progress.
type Gauge struct {
	Pos   Rect
	Title string
	Value int
	Max   int
}

func (g *Gauge) Bounds() Rect { return g.Pos }

func (g *Gauge) Draw(s *Surface) {
	inner := g.Pos.W - 2
	if inner < 1 {
		return
	}
	filled := 0
	if g.Max > 0 {
		filled = inner * g.Value / g.Max
		if filled > inner {
			filled = inner
		}
		if filled < 0 {
			filled = 0
		}
	}

	s.Set(g.Pos.X, g.Pos.Y, '[')
	for i := 0; i < inner; i++ {
		r := ' '
		if i < filled {
			r = '='
		}
		s.Set(g.Pos.X+1+i, g.Pos.Y, r)
	}
	s.Set(g.Pos.X+1+inner, g.Pos.Y, ']')
	if g.Title != "" {
		s.Text(g.Pos.X, g.Pos.Y+1, fmt.Sprintf("%s %d/%d", g.Title, g.Value, g.Max))
	}
}

// Panel draws a box border and then its children, which position
// themselves in absolute surface coordinates.
type Panel struct {
	Pos      Rect
	Children []Widget
}

func (p *Panel) Bounds() Rect { return p.Pos }

func (p *Panel) Draw(s *Surface) {
	right := p.Pos.X + p.Pos.W - 1
	bottom := p.Pos.Y + p.Pos.H - 1
	for x := p.Pos.X; x <= right; x++ {
		s.Set(x, p.Pos.Y, '-')
		s.Set(x, bottom, '-')
	}
	for y := p.Pos.Y; y <= bottom; y++ {
		s.Set(p.Pos.X, y, '|')
		s.Set(right, y, '|')
	}
	s.Set(p.Pos.X, p.Pos.Y, '+')
	s.Set(right, p.Pos.Y, '+')
	s.Set(p.Pos.X, bottom, '+')
	s.Set(right, bottom, '+')

	for _, child := range p.Children {
		child.Draw(s)
	}
}

// Minimap draws the dungeon top-down with the explored trail and the
// player marker. One tile maps to one surface cell.
type Minimap struct {
	Pos     Rect
	Grid    explore.Grid
	Visited map[explore.Cell]struct{}
	Player  explore.Cell
}

func (m *Minimap) Bounds() Rect { return m.Pos }

func (m *Minimap) Draw(s *Surface) {
	if m.Grid == nil {
		return
	}
	w := m.Grid.Width()
	if w > m.Pos.W {
		w = m.Pos.W
	}
	h := m.Grid.Height()
	if h > m.Pos.H {
		h = m.Pos.H
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := '#'
			if m.Grid.IsWalkable(x, y) {
				r = ' '
				if _, seen := m.Visited[explore.Cell{X: x, Y: y}]; seen {
					r = '.'
				}
			}
			s.Set(m.Pos.X+x, m.Pos.Y+y, r)
		}
	}
	s.Set(m.Pos.X+m.Player.X, m.Pos.Y+m.Player.Y, '@')
}
