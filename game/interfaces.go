package game

import "github.com/abel-tefera/delve/game/explore"

// Mover is the autonomous exploration contract the player autopilot is
// driven through. The game asks for a move each turn, attempts it against
// the grid, and reports the outcome; it never reaches into the agent's
// internals beyond this interface.
type Mover interface {
	// GetNextMove returns the next relative move for the actor standing on
	// current, or the zero delta when there is no move this tick.
	GetNextMove(current explore.Cell, g explore.Grid) explore.Cell

	// OnMoveSuccessful reports that the last returned move was applied.
	OnMoveSuccessful()

	// OnMoveBlocked reports that the last returned move failed.
	OnMoveBlocked()

	// GetExplorationProgress returns visited coverage as a percentage.
	GetExplorationProgress() int

	// GetReachablePositions exposes the reachability snapshot for
	// visualization.
	GetReachablePositions() map[explore.Cell]struct{}

	// Hunting reports whether the agent is in its directed-pathfinding
	// phase.
	Hunting() bool

	// Facing returns the cosmetic facing angle in radians; UpdateFacing
	// eases it over elapsed wall time.
	Facing() float64
	UpdateFacing(dt float64)

	// Reset clears all exploration memory.
	Reset()
}
