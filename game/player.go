package game

import "github.com/abel-tefera/delve/game/explore"

// Player stat defaults.
const (
	playerMaxHP  = 30
	playerAttack = 4
)

// Player is the single controllable actor. With Autopilot enabled its
// moves come from the exploration agent instead of queued commands.
type Player struct {
	Pos       explore.Cell
	HP        int
	MaxHP     int
	Attack    int
	Shield    int // flat damage reduction from picked-up shields
	Gold      int
	Inventory []ItemKind
	Autopilot bool
}

// NewPlayer creates a player at the given spawn position with default
// stats and autopilot engaged.
func NewPlayer(spawn explore.Cell) *Player {
	return &Player{
		Pos:       spawn,
		HP:        playerMaxHP,
		MaxHP:     playerMaxHP,
		Attack:    playerAttack,
		Autopilot: true,
	}
}
