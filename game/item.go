package game

import (
	"math/rand"

	"github.com/abel-tefera/delve/game/explore"
)

// ItemKind is the closed set of item variants. Effects are dispatched by
// switch in apply; adding a kind means extending the switch.
type ItemKind uint8

const (
	ItemPotion ItemKind = iota
	ItemSword
	ItemShield
	ItemGold
)

// String returns the item kind's wire name.
func (k ItemKind) String() string {
	switch k {
	case ItemPotion:
		return "potion"
	case ItemSword:
		return "sword"
	case ItemShield:
		return "shield"
	case ItemGold:
		return "gold"
	default:
		return "unknown"
	}
}

// Item is a pickup lying on a dungeon tile.
type Item struct {
	Kind ItemKind
	Pos  explore.Cell
}

// Item effect constants.
const (
	potionHeal    = 5
	swordBonus    = 2
	shieldBonus   = 1
	goldBaseValue = 10
	goldSpread    = 11 // gold pickups are worth goldBaseValue..goldBaseValue+goldSpread-1
)

// apply grants the item's effect to the player. Non-consumable kinds also
// land in the inventory.
func (p *Player) apply(it Item, rng *rand.Rand) {
	switch it.Kind {
	case ItemPotion:
		p.HP += potionHeal
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
	case ItemSword:
		p.Attack += swordBonus
		p.Inventory = append(p.Inventory, it.Kind)
	case ItemShield:
		p.Shield += shieldBonus
		p.Inventory = append(p.Inventory, it.Kind)
	case ItemGold:
		p.Gold += goldBaseValue + rng.Intn(goldSpread)
	}
}
