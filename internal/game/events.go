package game

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Location events fire probabilistically when a ship arrives on a cell.
// Odds and payouts are keyed by terrain type; hazard damage scales with the
// weather damage multiplier.

func rollLocationEvent(state *GameState, owner *Player, ship *Ship, rng *rand.Rand) (string, bool) {
	cell, ok := state.Grid.At(ship.Pos)
	if !ok {
		return "", false
	}

	switch cell.Type {
	case TerrainWater:
		if rng.Float64() < 0.10 {
			owner.Resources = owner.Resources.Add(Resources{Supplies: 2})
			return "found a drifting supply crate (+2 supplies)", true
		}
	case TerrainIsland:
		if rng.Float64() < 0.20 {
			owner.Resources = owner.Resources.Add(Resources{Gold: 3, Crew: 1})
			return "islanders offer tribute (+3 gold, +1 crew)", true
		}
	case TerrainPort:
		if ship.Health < ship.MaxHealth && rng.Float64() < 0.35 {
			before := ship.Health
			ship.heal(12)
			return fmt.Sprintf("shipwrights patch the hull (+%d health)", ship.Health-before), true
		}
		if rng.Float64() < 0.15 {
			owner.Resources = owner.Resources.Add(Resources{Gold: 4})
			return "harbor trade windfall (+4 gold)", true
		}
	case TerrainTreasure:
		if rng.Float64() < 0.30 {
			owner.Resources = owner.Resources.Add(Resources{Gold: 8, Rum: 1})
			return "unearthed a gold cache (+8 gold, +1 rum)", true
		}
	case TerrainStorm:
		if rng.Float64() < 0.40 {
			return hazardHit(ship, "battered by the storm", 5, 15, state.Weather, rng), true
		}
	case TerrainReef:
		if rng.Float64() < 0.30 {
			return hazardHit(ship, "hull scraped the reef", 4, 10, state.Weather, rng), true
		}
	case TerrainWhirlpool:
		if rng.Float64() < 0.50 {
			msg := hazardHit(ship, "dragged through the whirlpool", 8, 18, state.Weather, rng)
			if ship.Alive() && rng.Float64() < 0.25 {
				ship.Effects = append(ship.Effects, StatusEffect{
					Name:           "waterlogged",
					TurnsRemaining: 2,
					DamagePerTurn:  2,
					SpeedPenalty:   1,
				})
				msg += ", crew left waterlogged"
			}
			return msg, true
		}
	}

	return "", false
}

func hazardHit(ship *Ship, cause string, minDamage, maxDamage int, weather WeatherEffect, rng *rand.Rand) string {
	dmg := minDamage + rng.IntN(maxDamage-minDamage+1)
	dmg = int(math.Round(float64(dmg) * weather.DamageMult))
	if dmg < 1 {
		dmg = 1
	}
	destroyed := ship.damage(dmg)
	if destroyed {
		return fmt.Sprintf("%s for %d damage — ship lost", cause, dmg)
	}
	return fmt.Sprintf("%s for %d damage", cause, dmg)
}
