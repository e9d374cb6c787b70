package i

import (
	"github.com/abel-tefera/delve/game"
	"github.com/abel-tefera/delve/game/raycast"
	"github.com/google/uuid"
)

// SessionManager owns the live game sessions behind the REST API.
type SessionManager interface {
	// Create starts a new dungeon run and returns its id together with a
	// session-scoped bearer token.
	Create() (uuid.UUID, string, error)

	// Snapshot returns the session's current state.
	Snapshot(id uuid.UUID) (game.Snapshot, error)

	// Advance steps the simulation by up to turns, returning the
	// resulting state.
	Advance(id uuid.UUID, turns int) (game.Snapshot, error)

	// Command applies a player command.
	Command(id uuid.UUID, cmd game.Command) error

	// Explorer returns the exploration agent's memory for visualization.
	Explorer(id uuid.UUID) (game.ExplorerView, error)

	// Render draws the session's HUD as ASCII art.
	Render(id uuid.UUID) (string, error)

	// View casts the pseudo-3D overlay from the player's position.
	View(id uuid.UUID, columns int) ([]raycast.Hit, error)

	// End discards a session.
	End(id uuid.UUID) error
}
