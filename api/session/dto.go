// Package sessionapi provides structures and utilities for managing
// dungeon-run sessions over HTTP.
package sessionapi

import (
	"github.com/abel-tefera/delve/game"
	"github.com/abel-tefera/delve/game/raycast"
)

// CreateResponse carries the new session's identity and its bearer token.
type CreateResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// StepRequest requests the simulation advance by Turns ticks.
type StepRequest struct {
	Turns int `json:"turns" binding:"required"`
}

// CommandRequest carries a player command. Kind is "move" or
// "toggle_autopilot"; Dir is required for moves and is one of
// "north", "south", "east", "west".
type CommandRequest struct {
	Kind string `json:"kind" binding:"required"`
	Dir  string `json:"dir"`
}

// CellDTO is a grid coordinate.
type CellDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerDTO mirrors the player for API consumers.
type PlayerDTO struct {
	Pos       CellDTO  `json:"pos"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"max_hp"`
	Attack    int      `json:"attack"`
	Shield    int      `json:"shield"`
	Gold      int      `json:"gold"`
	Inventory []string `json:"inventory"`
	Autopilot bool     `json:"autopilot"`
	Facing    float64  `json:"facing"`
}

// EnemyDTO mirrors one enemy for API consumers.
type EnemyDTO struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	Pos  CellDTO `json:"pos"`
	HP   int     `json:"hp"`
}

// ItemDTO mirrors one item for API consumers.
type ItemDTO struct {
	Kind string  `json:"kind"`
	Pos  CellDTO `json:"pos"`
}

// StateResponse is the full session snapshot.
type StateResponse struct {
	Turn     int64      `json:"turn"`
	Status   string     `json:"status"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Progress int        `json:"progress"`
	Player   PlayerDTO  `json:"player"`
	Enemies  []EnemyDTO `json:"enemies"`
	Items    []ItemDTO  `json:"items"`
}

// ExplorerResponse exposes the exploration agent's memory.
type ExplorerResponse struct {
	Progress  int       `json:"progress"`
	Hunting   bool      `json:"hunting"`
	Reachable []CellDTO `json:"reachable"`
	Visited   []CellDTO `json:"visited"`
}

// HitDTO is one raycast column.
type HitDTO struct {
	Dist  float64 `json:"dist"`
	Side  int     `json:"side"`
	TileX int     `json:"tile_x"`
	TileY int     `json:"tile_y"`
}

// ViewResponse carries the pseudo-3D column scan.
type ViewResponse struct {
	Columns []HitDTO `json:"columns"`
}

// RenderResponse carries the ASCII HUD.
type RenderResponse struct {
	Screen string `json:"screen"`
}

func newStateResponse(snap game.Snapshot) *StateResponse {
	resp := &StateResponse{
		Turn:     snap.Turn,
		Status:   snap.Status.String(),
		Width:    snap.Width,
		Height:   snap.Height,
		Progress: snap.Progress,
		Player: PlayerDTO{
			Pos:       CellDTO{X: snap.Player.Pos.X, Y: snap.Player.Pos.Y},
			HP:        snap.Player.HP,
			MaxHP:     snap.Player.MaxHP,
			Attack:    snap.Player.Attack,
			Shield:    snap.Player.Shield,
			Gold:      snap.Player.Gold,
			Autopilot: snap.Player.Autopilot,
			Facing:    snap.Player.Facing,
		},
	}
	for _, k := range snap.Player.Inventory {
		resp.Player.Inventory = append(resp.Player.Inventory, k.String())
	}
	for _, e := range snap.Enemies {
		resp.Enemies = append(resp.Enemies, EnemyDTO{
			ID:   e.ID,
			Kind: e.Kind.String(),
			Pos:  CellDTO{X: e.Pos.X, Y: e.Pos.Y},
			HP:   e.HP,
		})
	}
	for _, it := range snap.Items {
		resp.Items = append(resp.Items, ItemDTO{
			Kind: it.Kind.String(),
			Pos:  CellDTO{X: it.Pos.X, Y: it.Pos.Y},
		})
	}
	return resp
}

func newExplorerResponse(view game.ExplorerView) *ExplorerResponse {
	resp := &ExplorerResponse{
		Progress: view.Progress,
		Hunting:  view.Hunting,
	}
	for _, c := range view.Reachable {
		resp.Reachable = append(resp.Reachable, CellDTO{X: c.X, Y: c.Y})
	}
	for _, c := range view.Visited {
		resp.Visited = append(resp.Visited, CellDTO{X: c.X, Y: c.Y})
	}
	return resp
}

func newViewResponse(hits []raycast.Hit) *ViewResponse {
	resp := &ViewResponse{}
	for _, h := range hits {
		resp.Columns = append(resp.Columns, HitDTO{
			Dist:  h.Dist,
			Side:  h.Side,
			TileX: h.TileX,
			TileY: h.TileY,
		})
	}
	return resp
}
