package game

import "math/rand"

// Combat is bump-based and turn-paced: walking into an occupied cell
// resolves an attack instead of a move, in both directions.

// rollDamage applies a small seeded variance of ±1 around base, never
// dropping below 1.
func rollDamage(base int, rng *rand.Rand) int {
	dmg := base + rng.Intn(3) - 1
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// attackEnemy resolves a player strike. Dead enemies are removed from the
// board and drop a small gold bounty.
func (g *Game) attackEnemy(target *Enemy) {
	target.HP -= rollDamage(g.player.Attack, g.rng)
	if target.HP > 0 {
		return
	}

	g.player.Gold += goldBaseValue / 2
	for idx, e := range g.enemies {
		if e.ID == target.ID {
			g.enemies = append(g.enemies[:idx], g.enemies[idx+1:]...)
			break
		}
	}
}

// attackPlayer resolves an enemy strike; shields soak a flat amount but a
// hit always costs at least one point.
func (g *Game) attackPlayer(e *Enemy) {
	dmg := rollDamage(e.Attack, g.rng) - g.player.Shield
	if dmg < 1 {
		dmg = 1
	}
	g.player.HP -= dmg
}
