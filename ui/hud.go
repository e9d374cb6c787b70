package ui

import (
	"fmt"

	"github.com/abel-tefera/delve/game"
	"github.com/abel-tefera/delve/game/explore"
)

// BuildHUD assembles the standard in-game widget tree: a bordered minimap
// with the explored trail, HP and exploration gauges, and a status line.
func BuildHUD(snap game.Snapshot, grid explore.Grid, visited map[explore.Cell]struct{}) *Panel {
	mapW := snap.Width
	mapH := snap.Height
	statusY := mapH + 2

	return &Panel{
		Pos: Rect{X: 0, Y: 0, W: mapW + 2, H: mapH + 7},
		Children: []Widget{
			&Minimap{
				Pos:     Rect{X: 1, Y: 1, W: mapW, H: mapH},
				Grid:    grid,
				Visited: visited,
				Player:  snap.Player.Pos,
			},
			&Gauge{
				Pos:   Rect{X: 1, Y: statusY, W: mapW},
				Title: "HP",
				Value: snap.Player.HP,
				Max:   snap.Player.MaxHP,
			},
			&Gauge{
				Pos:   Rect{X: 1, Y: statusY + 2, W: mapW},
				Title: "Explored",
				Value: snap.Progress,
				Max:   100,
			},
			&Label{
				Pos:  Rect{X: 1, Y: statusY + 4, W: mapW},
				Text: fmt.Sprintf("turn %d  gold %d  %s", snap.Turn, snap.Player.Gold, snap.Status),
			},
		},
	}
}
