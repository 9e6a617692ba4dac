package game

import "math"

// Economy resolver: static yield tables, collection multipliers, and the
// comeback bonus. Pure and state-free so the AI can score with the exact
// numbers the processor pays out.

const (
	maxFleetSize = 10

	// maxComebackGold bounds the anti-snowball gold bonus. The comeback
	// mechanic is intentional; it silently boosts trailing players and
	// must not be "fixed" without product confirmation.
	maxComebackGold = 12
)

var terrainYields = map[TerrainType]Resources{
	TerrainWater:    {Supplies: 1},
	TerrainIsland:   {Gold: 1, Supplies: 2, Wood: 3},
	TerrainPort:     {Gold: 5, Crew: 2, Cannons: 1, Rum: 2},
	TerrainTreasure: {Gold: 10, Rum: 3},
	// Hazards yield nothing; holding one is purely positional.
	TerrainStorm:     {},
	TerrainReef:      {},
	TerrainWhirlpool: {},
}

func terrainYield(t TerrainType) Resources {
	return terrainYields[t]
}

// collectYield scales a cell's terrain yield by the collecting ship's
// per-type multiplier and the current weather.
func collectYield(cell TerrainCell, shipType ShipType, weather WeatherEffect) Resources {
	spec, ok := specFor(shipType)
	if !ok {
		return Resources{}
	}
	return cell.Yield.Scale(spec.CollectMult * weather.ResourceMult)
}

// comebackGold grants extra gold to a player whose territory and fleet trail
// the field average, bounded by maxComebackGold.
func comebackGold(state *GameState, playerID string) int {
	avgTerritory, avgFleet := fieldAverages(state)

	player, ok := state.playerByID(playerID)
	if !ok {
		return 0
	}

	deficit := (avgTerritory - float64(len(player.Territory))) +
		(avgFleet - float64(player.LivingShips()))
	if deficit <= 0 {
		return 0
	}

	bonus := int(math.Ceil(deficit * 2))
	if bonus > maxComebackGold {
		bonus = maxComebackGold
	}
	return bonus
}

// fieldAverages computes mean territory and living-fleet counts across
// players still in the match.
func fieldAverages(state *GameState) (territory, fleet float64) {
	count := 0
	for i := range state.Players {
		if !state.Players[i].Active {
			continue
		}
		territory += float64(len(state.Players[i].Territory))
		fleet += float64(state.Players[i].LivingShips())
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return territory / float64(count), fleet / float64(count)
}

// canBuildAt checks the spatial build rule: open water next to a port the
// builder owns.
func canBuildAt(grid Grid, playerID string, at Coordinate) (string, bool) {
	cell, ok := grid.At(at)
	if !ok {
		return "build site is out of bounds", false
	}
	if cell.Type != TerrainWater {
		return "ships can only be launched onto open water", false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			neighbor, ok := grid.At(Coordinate{X: at.X + dx, Y: at.Y + dy})
			if ok && neighbor.Type == TerrainPort && neighbor.Owner == playerID {
				return "", true
			}
		}
	}
	return "no friendly port adjacent to the build site", false
}

// effectiveMoveRange is the ship's speed after status penalties, scaled by
// weather; a ship that can act always has at least one step.
func effectiveMoveRange(ship Ship, weather WeatherEffect) int {
	speed := ship.Speed - ship.speedPenalty()
	scaled := int(float64(speed) * weather.MoveMult)
	if scaled < 1 {
		return 1
	}
	return scaled
}
