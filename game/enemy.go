package game

import (
	"math/rand"

	"github.com/abel-tefera/delve/game/explore"
	"github.com/google/uuid"
)

// EnemyKind is the closed set of enemy variants; per-kind behavior and
// stats are dispatched by switch.
type EnemyKind uint8

const (
	// KindRat drifts randomly and only fights when bumped into.
	KindRat EnemyKind = iota
	// KindSkeleton chases the player along the shortest walkable path once
	// it has line of sight range.
	KindSkeleton
	// KindWarden stands its ground and retaliates against adjacent players.
	KindWarden
)

// String returns the enemy kind's wire name.
func (k EnemyKind) String() string {
	switch k {
	case KindRat:
		return "rat"
	case KindSkeleton:
		return "skeleton"
	case KindWarden:
		return "warden"
	default:
		return "unknown"
	}
}

// skeletonSight is the maximum walking distance at which a skeleton starts
// chasing.
const skeletonSight = 12

// Enemy is a hostile actor.
type Enemy struct {
	ID     uuid.UUID
	Kind   EnemyKind
	Pos    explore.Cell
	HP     int
	Attack int
}

// NewEnemy creates an enemy of the given kind at pos with its kind's
// default stats.
func NewEnemy(kind EnemyKind, pos explore.Cell) *Enemy {
	e := &Enemy{ID: uuid.New(), Kind: kind, Pos: pos}
	switch kind {
	case KindRat:
		e.HP, e.Attack = 4, 1
	case KindSkeleton:
		e.HP, e.Attack = 8, 2
	case KindWarden:
		e.HP, e.Attack = 16, 4
	}
	return e
}

// nextMove decides the enemy's relative move for this turn. playerDist is
// the walking-distance field flooded out from the player, nil when no
// enemy needs it.
func (e *Enemy) nextMove(g explore.Grid, playerDist map[explore.Cell]int, rng *rand.Rand) explore.Cell {
	switch e.Kind {
	case KindSkeleton:
		if d, ok := playerDist[e.Pos]; ok && d <= skeletonSight {
			return chaseStep(e.Pos, g, playerDist)
		}
		return driftStep(e.Pos, g, rng)
	case KindRat:
		return driftStep(e.Pos, g, rng)
	default:
		// Wardens hold position.
		return explore.Cell{}
	}
}

// chaseStep picks the neighbor that shrinks the walking distance to the
// player the most.
func chaseStep(from explore.Cell, g explore.Grid, dist map[explore.Cell]int) explore.Cell {
	best := explore.Cell{}
	bestDist := -1
	for _, d := range []explore.Cell{explore.North, explore.South, explore.East, explore.West} {
		n := from.Add(d)
		if !g.IsWalkable(n.X, n.Y) {
			continue
		}
		nd, ok := dist[n]
		if !ok {
			continue
		}
		if bestDist == -1 || nd < bestDist {
			best = d
			bestDist = nd
		}
	}
	return best
}

// driftStep keeps wandering in a random walkable direction, or stands
// still when fully enclosed.
func driftStep(from explore.Cell, g explore.Grid, rng *rand.Rand) explore.Cell {
	var open []explore.Cell
	for _, d := range []explore.Cell{explore.North, explore.South, explore.East, explore.West} {
		n := from.Add(d)
		if g.IsWalkable(n.X, n.Y) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return explore.Cell{}
	}
	// Drifters idle half the time so they feel less frantic than the
	// player.
	if rng.Intn(2) == 0 {
		return explore.Cell{}
	}
	return open[rng.Intn(len(open))]
}

// floodDistances breadth-first floods walking distances outward from a
// cell, stopping past the given limit.
func floodDistances(g explore.Grid, from explore.Cell, limit int) map[explore.Cell]int {
	dist := map[explore.Cell]int{from: 0}
	queue := []explore.Cell{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if dist[c] >= limit {
			continue
		}
		for _, d := range []explore.Cell{explore.North, explore.South, explore.East, explore.West} {
			n := c.Add(d)
			if _, seen := dist[n]; seen {
				continue
			}
			if !g.IsWalkable(n.X, n.Y) {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return dist
}
