// Package game runs the dungeon-crawl simulation: one player (usually on
// autopilot through the exploration agent), enemies, items and turn-paced
// combat over a walkable grid.
package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/abel-tefera/delve/game/explore"
)

// Game-related errors.
var (
	ErrNilGrid      = errors.New("game requires a grid")
	ErrNilExplorer  = errors.New("game requires an exploration agent")
	ErrInvalidSpawn = errors.New("spawn position is not walkable")
	ErrQueueFull    = errors.New("command queue is full")
)

const commandBuffer = 16

// Status is the run state of a game.
type Status uint8

const (
	// StatusExploring is the normal running state.
	StatusExploring Status = iota
	// StatusCleared means the dungeon is fully explored and looted.
	StatusCleared
	// StatusDead means the player died.
	StatusDead
)

// String returns the status wire name.
func (s Status) String() string {
	switch s {
	case StatusExploring:
		return "exploring"
	case StatusCleared:
		return "cleared"
	case StatusDead:
		return "dead"
	default:
		return "unknown"
	}
}

// CommandKind discriminates queued player commands.
type CommandKind uint8

const (
	// CommandMove requests a manual step in Dir, overriding autopilot for
	// one turn.
	CommandMove CommandKind = iota
	// CommandToggleAutopilot flips autopilot on or off.
	CommandToggleAutopilot
)

// Command is a queued player input.
type Command struct {
	Kind CommandKind
	Dir  explore.Cell
}

// Config assembles a game's collaborators.
type Config struct {
	Grid     explore.Grid
	Explorer Mover
	Spawn    explore.Cell
	Enemies  []*Enemy
	Items    []Item
	Seed     int64
}

// Game owns one dungeon run. All mutating access goes through the lock so
// snapshots can be taken while the run loop ticks.
type Game struct {
	grid     explore.Grid
	explorer Mover
	player   *Player
	enemies  []*Enemy
	items    []Item
	trail    map[explore.Cell]struct{} // cells the player has stood on
	turn     int64
	status   Status
	rng      *rand.Rand

	queued   *Command // next manual move, consumed by one turn
	commands chan Command
	stop     chan bool
	sync.RWMutex
}

// New creates a Game from the given configuration.
func New(cfg Config) (*Game, error) {
	if cfg.Grid == nil {
		return nil, ErrNilGrid
	}
	if cfg.Explorer == nil {
		return nil, ErrNilExplorer
	}
	if !cfg.Grid.IsWalkable(cfg.Spawn.X, cfg.Spawn.Y) {
		return nil, ErrInvalidSpawn
	}

	return &Game{
		grid:     cfg.Grid,
		explorer: cfg.Explorer,
		player:   NewPlayer(cfg.Spawn),
		enemies:  cfg.Enemies,
		items:    cfg.Items,
		trail:    map[explore.Cell]struct{}{cfg.Spawn: {}},
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		commands: make(chan Command, commandBuffer),
		stop:     make(chan bool, 1),
	}, nil
}

// Start runs the simulation loop until Stop is called, advancing one turn
// per tick and draining queued commands between turns.
func (g *Game) Start(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-g.stop:
			return
		case cmd := <-g.commands:
			g.handleCommand(cmd)
		case <-ticker.C:
			g.Step()
			g.UpdateFacing(tick.Seconds())
		}
	}
}

// Stop signals the run loop to exit.
func (g *Game) Stop() {
	select {
	case g.stop <- true:
	default:
	}
}

// Enqueue queues a player command for the run loop.
func (g *Game) Enqueue(cmd Command) error {
	select {
	case g.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Apply executes a command immediately. Callers stepping the game
// manually use this instead of the run-loop queue.
func (g *Game) Apply(cmd Command) {
	g.handleCommand(cmd)
}

// UpdateFacing eases the agent's facing angle toward its target by dt
// seconds.
func (g *Game) UpdateFacing(dt float64) {
	g.Lock()
	defer g.Unlock()
	g.explorer.UpdateFacing(dt)
}

func (g *Game) handleCommand(cmd Command) {
	g.Lock()
	defer g.Unlock()
	switch cmd.Kind {
	case CommandMove:
		c := cmd
		g.queued = &c
	case CommandToggleAutopilot:
		g.player.Autopilot = !g.player.Autopilot
	}
}

// Step advances the simulation by exactly one turn: player move or attack,
// pickups, then enemy moves and retaliation. It is a no-op once the game
// has ended.
func (g *Game) Step() {
	g.Lock()
	defer g.Unlock()

	if g.status != StatusExploring {
		return
	}
	g.turn++

	g.stepPlayer()
	g.pickUpItems()
	g.stepEnemies()

	if g.player.HP <= 0 {
		g.status = StatusDead
		return
	}
	if g.explorer.GetExplorationProgress() >= 100 && len(g.items) == 0 {
		g.status = StatusCleared
	}
}

// stepPlayer applies the queued manual move if any, otherwise asks the
// exploration agent. Outcomes of agent-directed moves are reported back
// through the Mover contract; manual moves are not.
func (g *Game) stepPlayer() {
	var dir explore.Cell
	auto := false

	switch {
	case g.queued != nil:
		dir = g.queued.Dir
		g.queued = nil
	case g.player.Autopilot:
		dir = g.explorer.GetNextMove(g.player.Pos, g.grid)
		auto = true
	}
	if dir == (explore.Cell{}) {
		return
	}

	dest := g.player.Pos.Add(dir)
	if target := g.enemyAt(dest); target != nil {
		g.attackEnemy(target)
		if auto {
			// The tile stays occupied, so from the agent's point of view
			// the move failed.
			g.explorer.OnMoveBlocked()
		}
		return
	}

	if g.grid.IsWalkable(dest.X, dest.Y) {
		g.player.Pos = dest
		g.trail[dest] = struct{}{}
		if auto {
			g.explorer.OnMoveSuccessful()
		}
		return
	}
	if auto {
		g.explorer.OnMoveBlocked()
	}
}

func (g *Game) pickUpItems() {
	for idx, it := range g.items {
		if it.Pos != g.player.Pos {
			continue
		}
		g.player.apply(it, g.rng)
		g.items = append(g.items[:idx], g.items[idx+1:]...)
		return
	}
}

func (g *Game) stepEnemies() {
	var playerDist map[explore.Cell]int
	for _, e := range g.enemies {
		if e.Kind == KindSkeleton {
			playerDist = floodDistances(g.grid, g.player.Pos, skeletonSight)
			break
		}
	}

	for _, e := range g.enemies {
		// Adjacent enemies strike instead of moving, wardens included.
		if adjacentCells(e.Pos, g.player.Pos) {
			g.attackPlayer(e)
			continue
		}

		d := e.nextMove(g.grid, playerDist, g.rng)
		if d == (explore.Cell{}) {
			continue
		}
		dest := e.Pos.Add(d)
		if dest == g.player.Pos || !g.grid.IsWalkable(dest.X, dest.Y) || g.enemyAt(dest) != nil {
			continue
		}
		e.Pos = dest
	}
}

func (g *Game) enemyAt(c explore.Cell) *Enemy {
	for _, e := range g.enemies {
		if e.Pos == c {
			return e
		}
	}
	return nil
}

func adjacentCells(a, b explore.Cell) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}
