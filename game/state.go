package game

import "github.com/abel-tefera/delve/game/explore"

// Snapshot is a point-in-time copy of the simulation, safe to read after
// the lock is released.
type Snapshot struct {
	Turn     int64
	Status   Status
	Width    int
	Height   int
	Progress int
	Player   PlayerState
	Enemies  []EnemyState
	Items    []ItemState
}

// PlayerState mirrors the player for observers.
type PlayerState struct {
	Pos       explore.Cell
	HP        int
	MaxHP     int
	Attack    int
	Shield    int
	Gold      int
	Inventory []ItemKind
	Autopilot bool
	Facing    float64
}

// EnemyState mirrors one enemy for observers.
type EnemyState struct {
	ID   string
	Kind EnemyKind
	Pos  explore.Cell
	HP   int
}

// ItemState mirrors one item for observers.
type ItemState struct {
	Kind ItemKind
	Pos  explore.Cell
}

// ExplorerView exposes the exploration agent's memory for visualization:
// the reachability snapshot, the player's trail, and the agent phase.
type ExplorerView struct {
	Progress  int
	Hunting   bool
	Reachable []explore.Cell
	Visited   []explore.Cell
}

// Snapshot copies the current simulation state.
func (g *Game) Snapshot() Snapshot {
	g.RLock()
	defer g.RUnlock()

	snap := Snapshot{
		Turn:     g.turn,
		Status:   g.status,
		Width:    g.grid.Width(),
		Height:   g.grid.Height(),
		Progress: g.explorer.GetExplorationProgress(),
		Player: PlayerState{
			Pos:       g.player.Pos,
			HP:        g.player.HP,
			MaxHP:     g.player.MaxHP,
			Attack:    g.player.Attack,
			Shield:    g.player.Shield,
			Gold:      g.player.Gold,
			Inventory: append([]ItemKind(nil), g.player.Inventory...),
			Autopilot: g.player.Autopilot,
			Facing:    g.explorer.Facing(),
		},
	}
	for _, e := range g.enemies {
		snap.Enemies = append(snap.Enemies, EnemyState{
			ID:   e.ID.String(),
			Kind: e.Kind,
			Pos:  e.Pos,
			HP:   e.HP,
		})
	}
	for _, it := range g.items {
		snap.Items = append(snap.Items, ItemState{Kind: it.Kind, Pos: it.Pos})
	}
	return snap
}

// Explorer copies the agent's exploration memory.
func (g *Game) Explorer() ExplorerView {
	g.RLock()
	defer g.RUnlock()

	view := ExplorerView{
		Progress: g.explorer.GetExplorationProgress(),
		Hunting:  g.explorer.Hunting(),
	}
	for c := range g.explorer.GetReachablePositions() {
		view.Reachable = append(view.Reachable, c)
	}
	for c := range g.trail {
		view.Visited = append(view.Visited, c)
	}
	return view
}

// Grid exposes the game's map for read-only rendering helpers.
func (g *Game) Grid() explore.Grid {
	return g.grid
}

// Trail returns the set of cells the player has occupied. The map is
// shared; callers must not modify it.
func (g *Game) Trail() map[explore.Cell]struct{} {
	g.RLock()
	defer g.RUnlock()
	return g.trail
}
