/*
Package explore implements an autonomous dungeon explorer: a stateful agent
that incrementally maps a walkable grid one step at a time.

The agent wanders by default, preferring cells it has not occupied yet. When
it detects that it is looping over the same few cells it switches into a
directed hunt: it picks the nearest unvisited reachable cell, computes a
shortest walkable path to it with A*, and follows the path one step per
tick. Exploration is complete once every cell reachable from the starting
position has been visited; after that the agent keeps walking undirected.

The caller drives the agent through a narrow contract: ask for the next
move with GetNextMove, physically attempt it, and report the outcome with
OnMoveSuccessful or OnMoveBlocked. The agent never returns an error; every
degenerate condition degrades to the zero delta, meaning "no move this
tick".
*/
package explore

import (
	"math"
	"math/rand"
	"time"
)

// Default tuning values. All of these are heuristics carried over from play
// testing, not invariants; override them through Options.
const (
	defaultRecentWindow    = 6
	defaultLoopThreshold   = 4
	defaultMaxHuntAttempts = 3
	defaultWanderStepCap   = 8
	defaultPauseMinExits   = 2
	defaultPauseMinVisited = 20

	// turnRate is the angular easing rate for the cosmetic facing angle,
	// in radians per second.
	turnRate = 2 * math.Pi
)

// Options tunes the explorer's heuristics. The zero value of any field
// selects its default.
type Options struct {
	// RecentWindow is the capacity of the recent-positions queue used for
	// loop detection.
	RecentWindow int

	// LoopThreshold is how many times the current cell must appear in the
	// recent window before the agent considers itself stuck.
	LoopThreshold int

	// MaxHuntAttempts bounds directed-hunt retries before the agent falls
	// back to wandering.
	MaxHuntAttempts int

	// WanderStepCap is how many steps the agent keeps a wander direction
	// before picking a new one.
	WanderStepCap int

	// PauseMinExits and PauseMinVisited control the junction pause: while
	// wandering with no unvisited neighbor, the agent deliberately stands
	// still when more than PauseMinExits directions are walkable and more
	// than PauseMinVisited cells have been visited, letting loop detection
	// hand control to the hunt sooner.
	PauseMinExits   int
	PauseMinVisited int

	// Rand is the randomness source for wander decisions. Defaults to a
	// time-seeded source; inject a fixed seed for deterministic behavior.
	Rand *rand.Rand
}

// AutoExplorer explores a Grid cell by cell. It is not safe for concurrent
// use; exactly one caller is expected to drive it, one call at a time.
type AutoExplorer struct {
	opts Options
	rng  *rand.Rand

	visited   map[Cell]struct{} // cells physically occupied this session
	reachable map[Cell]struct{} // flood-fill snapshot from the starting cell
	scanned   bool              // reachable has been computed since the last reset
	complete  bool              // every reachable cell has been visited

	recent []Cell // bounded FIFO of recent positions, for loop detection

	dir     Cell // current wander direction, zero when unset
	steps   int  // successful steps taken in the current direction
	blocked bool // the last proposed move was reported blocked

	hunting      bool
	hasTarget    bool
	huntTarget   Cell
	huntPath     []Cell // cached A* path, consumed one step per tick
	huntAttempts int

	facing       float64 // cosmetic facing angle, radians
	facingTarget float64
}

// New creates an AutoExplorer. A nil opts selects all defaults. The
// options are copied; the caller's struct is never written to.
func New(opts *Options) *AutoExplorer {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.RecentWindow <= 0 {
		o.RecentWindow = defaultRecentWindow
	}
	if o.LoopThreshold <= 0 {
		o.LoopThreshold = defaultLoopThreshold
	}
	if o.MaxHuntAttempts <= 0 {
		o.MaxHuntAttempts = defaultMaxHuntAttempts
	}
	if o.WanderStepCap <= 0 {
		o.WanderStepCap = defaultWanderStepCap
	}
	if o.PauseMinExits <= 0 {
		o.PauseMinExits = defaultPauseMinExits
	}
	if o.PauseMinVisited <= 0 {
		o.PauseMinVisited = defaultPauseMinVisited
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &AutoExplorer{
		opts: o,
		rng:  o.Rand,
	}
	e.Reset()
	return e
}

// Reset clears all session state. Call it whenever the agent is attached to
// a new grid; the reachability snapshot is recomputed lazily on the next
// GetNextMove.
func (e *AutoExplorer) Reset() {
	e.visited = make(map[Cell]struct{})
	e.reachable = make(map[Cell]struct{})
	e.scanned = false
	e.complete = false
	e.recent = e.recent[:0]
	e.dir = Cell{}
	e.steps = 0
	e.blocked = false
	e.stopHunt()
}

// GetNextMove records the agent's current cell and returns the next move as
// one of the four axis-aligned unit deltas, or the zero delta when no legal
// move exists this tick. The caller must attempt the move and report the
// outcome through OnMoveSuccessful or OnMoveBlocked.
func (e *AutoExplorer) GetNextMove(current Cell, g Grid) Cell {
	if g == nil || g.Width() <= 0 || g.Height() <= 0 {
		return Cell{}
	}

	if !e.scanned {
		e.scanReachable(current, g)
	}

	// Bookkeeping: only reachable cells count as visited, which keeps the
	// visited set a subset of the reachability snapshot even on degenerate
	// starts.
	if _, ok := e.reachable[current]; ok {
		e.visited[current] = struct{}{}
	}
	e.pushRecent(current)

	if !e.hunting && e.isLooping(current) {
		e.hunting = true
		e.huntAttempts = 0
	}

	// A hunt that keeps failing is abandoned rather than retried forever.
	if e.hunting && e.huntAttempts >= e.opts.MaxHuntAttempts {
		e.stopHunt()
	}

	if !e.complete && len(e.reachable) > 0 && len(e.visited) >= len(e.reachable) {
		e.complete = true
		e.stopHunt()
	}

	var d Cell
	if e.hunting {
		d = e.huntMove(current, g)
	} else {
		d = e.wanderMove(current, g)
	}

	if d != (Cell{}) {
		e.facingTarget = math.Atan2(float64(d.Y), float64(d.X))
	}
	return d
}

// OnMoveSuccessful reports that the previously returned move was applied.
func (e *AutoExplorer) OnMoveSuccessful() {
	e.steps++
	e.blocked = false
}

// OnMoveBlocked reports that the previously returned move failed, forcing
// the agent to pick a new direction or hunt target on the next call.
func (e *AutoExplorer) OnMoveBlocked() {
	e.blocked = true
	e.steps = 0
	if e.hunting {
		e.huntPath = nil
		e.hasTarget = false
		e.huntAttempts++
	}
}

// GetExplorationProgress returns how much of the reachable map has been
// visited, as an integer percentage. An empty reachability snapshot yields 0.
func (e *AutoExplorer) GetExplorationProgress() int {
	if len(e.reachable) == 0 {
		return 0
	}
	p := 100 * len(e.visited) / len(e.reachable)
	if p > 100 {
		p = 100
	}
	return p
}

// GetReachablePositions returns the reachability snapshot computed on the
// first move after a reset. The returned set is shared for visualization;
// callers must not modify it.
func (e *AutoExplorer) GetReachablePositions() map[Cell]struct{} {
	return e.reachable
}

// Hunting reports whether the agent is in the directed-hunt phase.
func (e *AutoExplorer) Hunting() bool {
	return e.hunting
}

// Facing returns the cosmetic facing angle in radians. It eases toward the
// direction of the last commanded move and never influences movement.
func (e *AutoExplorer) Facing() float64 {
	return e.facing
}

// UpdateFacing advances the facing angle by dt seconds toward the angle of
// the last commanded direction.
func (e *AutoExplorer) UpdateFacing(dt float64) {
	diff := normalizeAngle(e.facingTarget - e.facing)
	step := turnRate * dt
	if math.Abs(diff) <= step {
		e.facing = e.facingTarget
		return
	}
	if diff > 0 {
		e.facing = normalizeAngle(e.facing + step)
	} else {
		e.facing = normalizeAngle(e.facing - step)
	}
}

// scanReachable flood-fills the 4-connected walkable region around start.
// The snapshot is what exploration completeness is measured against; cells
// walled off from start are permanently excluded.
func (e *AutoExplorer) scanReachable(start Cell, g Grid) {
	e.scanned = true
	if !walkable(g, start) {
		return
	}

	e.reachable[start] = struct{}{}
	queue := []Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			n := c.Add(d)
			if _, seen := e.reachable[n]; seen {
				continue
			}
			if !walkable(g, n) {
				continue
			}
			e.reachable[n] = struct{}{}
			queue = append(queue, n)
		}
	}
}

func (e *AutoExplorer) pushRecent(c Cell) {
	e.recent = append(e.recent, c)
	if len(e.recent) > e.opts.RecentWindow {
		e.recent = e.recent[1:]
	}
}

// isLooping reports whether the current cell keeps recurring in the recent
// window, the signal that undirected wandering has stalled.
func (e *AutoExplorer) isLooping(current Cell) bool {
	count := 0
	for _, c := range e.recent {
		if c == current {
			count++
		}
	}
	return count >= e.opts.LoopThreshold
}

func (e *AutoExplorer) stopHunt() {
	e.hunting = false
	e.hasTarget = false
	e.huntTarget = Cell{}
	e.huntPath = nil
	e.huntAttempts = 0
}

// huntMove follows the cached path toward the hunt target, acquiring a new
// target and path when none is active. A stale or blocked path is discarded
// and counts as a failed attempt.
func (e *AutoExplorer) huntMove(current Cell, g Grid) Cell {
	if e.hasTarget && current == e.huntTarget {
		// Target reached; hand control back to the wander phase.
		e.stopHunt()
		return e.wanderMove(current, g)
	}

	if len(e.huntPath) == 0 && !e.acquireTarget(current, g) {
		return Cell{}
	}

	next := e.huntPath[0]
	if !adjacent(current, next) || !walkable(g, next) {
		// The cached path no longer lines up with reality; restart the
		// hunt on the next tick.
		e.huntPath = nil
		e.hasTarget = false
		e.huntAttempts++
		return Cell{}
	}

	e.huntPath = e.huntPath[1:]
	return next.Sub(current)
}

// acquireTarget picks an unvisited reachable cell and computes a walkable
// path to it. Failures increment the hunt attempt counter.
func (e *AutoExplorer) acquireTarget(current Cell, g Grid) bool {
	target, ok := e.nearestUnvisited(current, g)
	if !ok {
		target, ok = e.furthestUnvisited(current)
	}
	if !ok {
		e.huntAttempts++
		return false
	}

	path := findPath(current, target, g)
	if len(path) == 0 {
		e.huntAttempts++
		return false
	}

	e.hasTarget = true
	e.huntTarget = target
	e.huntPath = path
	return true
}

// nearestUnvisited scans expanding square rings around current for an
// unvisited reachable cell, so the first hit is (near-)closest.
func (e *AutoExplorer) nearestUnvisited(current Cell, g Grid) (Cell, bool) {
	maxRadius := g.Width()
	if g.Height() > maxRadius {
		maxRadius = g.Height()
	}

	for r := 1; r <= maxRadius; r++ {
		for _, c := range ring(current, r) {
			if _, ok := e.reachable[c]; !ok {
				continue
			}
			if _, seen := e.visited[c]; seen {
				continue
			}
			return c, true
		}
	}
	return Cell{}, false
}

// furthestUnvisited linearly scans the reachability snapshot for the
// unvisited cell furthest from current. It backs up the ring search when a
// locally exhausted pocket hides the remaining cells behind walls.
func (e *AutoExplorer) furthestUnvisited(current Cell) (Cell, bool) {
	var best Cell
	bestDist := -1.0
	for c := range e.reachable {
		if _, seen := e.visited[c]; seen {
			continue
		}
		if d := current.DistanceTo(c); d > bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist >= 0
}

// ring returns the perimeter cells of the square ring at the given radius
// around center.
func ring(center Cell, radius int) []Cell {
	cells := make([]Cell, 0, 8*radius)
	for dx := -radius; dx <= radius; dx++ {
		cells = append(cells,
			Cell{X: center.X + dx, Y: center.Y - radius},
			Cell{X: center.X + dx, Y: center.Y + radius})
	}
	for dy := -radius + 1; dy <= radius-1; dy++ {
		cells = append(cells,
			Cell{X: center.X - radius, Y: center.Y + dy},
			Cell{X: center.X + radius, Y: center.Y + dy})
	}
	return cells
}

// wanderMove keeps walking the current direction until it is unset, capped
// out, or blocked, then picks a new one preferring unvisited neighbors.
func (e *AutoExplorer) wanderMove(current Cell, g Grid) Cell {
	needNew := e.dir == Cell{} || e.steps >= e.opts.WanderStepCap || e.blocked
	if !needNew {
		next := current.Add(e.dir)
		needNew = !walkable(g, next)
	}
	if !needNew {
		return e.dir
	}

	// A direction the caller just reported blocked is excluded from this
	// re-selection even if the grid claims it is walkable.
	var forbidden Cell
	if e.blocked {
		forbidden = e.dir
	}
	e.blocked = false
	e.steps = 0

	var open, fresh []Cell
	for _, d := range directions {
		if d == forbidden {
			continue
		}
		n := current.Add(d)
		if !walkable(g, n) {
			continue
		}
		open = append(open, d)
		if _, seen := e.visited[n]; !seen {
			fresh = append(fresh, d)
		}
	}

	switch {
	case len(fresh) > 0:
		e.dir = fresh[e.rng.Intn(len(fresh))]
	case len(open) == 0:
		e.dir = Cell{}
	case !e.complete && len(open) > e.opts.PauseMinExits && len(e.visited) > e.opts.PauseMinVisited:
		// Deliberate pause at a busy junction with nothing fresh nearby:
		// standing still feeds loop detection, which hands control to the
		// hunt sooner than greedy wandering would.
		e.dir = Cell{}
	default:
		e.dir = open[e.rng.Intn(len(open))]
	}
	return e.dir
}

func walkable(g Grid, c Cell) bool {
	if c.X < 0 || c.Y < 0 || c.X >= g.Width() || c.Y >= g.Height() {
		return false
	}
	return g.IsWalkable(c.X, c.Y)
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
