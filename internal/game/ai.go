package game

import (
	"fmt"
	"math"
	"math/rand/v2"
)

type AITier string

const (
	TierNovice       AITier = "novice"
	TierIntermediate AITier = "intermediate"
	TierVeteran      AITier = "veteran"
	TierAdmiral      AITier = "admiral"
)

func ValidTier(t AITier) bool {
	_, ok := tierProfiles[t]
	return ok
}

func AllTiers() []AITier {
	return []AITier{TierNovice, TierIntermediate, TierVeteran, TierAdmiral}
}

// tierProfile gates each candidate category with an acceptance probability.
// Weak tiers stay plausible-but-suboptimal without being scriptable; strong
// tiers converge toward always taking the best-scored option.
type tierProfile struct {
	ClaimGate      float64
	AttackGate     float64
	MoveGate       float64
	BuildGate      float64
	Aggressiveness float64
}

var tierProfiles = map[AITier]tierProfile{
	TierNovice:       {ClaimGate: 1.0, AttackGate: 0.4, MoveGate: 0.8, BuildGate: 0.5, Aggressiveness: 0.8},
	TierIntermediate: {ClaimGate: 0.9, AttackGate: 0.7, MoveGate: 0.85, BuildGate: 0.7, Aggressiveness: 1.0},
	TierVeteran:      {ClaimGate: 0.95, AttackGate: 0.85, MoveGate: 0.9, BuildGate: 0.85, Aggressiveness: 1.15},
	TierAdmiral:      {ClaimGate: 1.0, AttackGate: 0.95, MoveGate: 0.95, BuildGate: 0.95, Aggressiveness: 1.3},
}

type candidateCategory string

const (
	categoryClaim  candidateCategory = "claim"
	categoryAttack candidateCategory = "attack"
	categoryMove   candidateCategory = "move"
	categoryBuild  candidateCategory = "build"
)

type candidate struct {
	Category  candidateCategory
	Action    Action
	Score     float64
	Reasoning string
}

// Decision is the planner's verdict: either an action with its reasoning, or
// an explicit pass when nothing legal exists.
type Decision struct {
	Action    Action
	Reasoning string
	Score     float64
	Pass      bool
}

// Decide enumerates at most one best candidate per category using the same
// legality rules the action processor enforces, sorts them by score, then
// walks the list accepting the first candidate whose category passes the
// tier's random gate. The top candidate is the fallback, so the AI always
// acts when a legal action exists.
func Decide(state GameState, playerID string, rng *rand.Rand) Decision {
	player, ok := state.playerByID(playerID)
	if !ok || !player.Active || player.LivingShips() == 0 {
		return Decision{Pass: true, Reasoning: "no fleet left to command"}
	}

	tier := player.Tier
	if !ValidTier(tier) {
		tier = TierNovice
	}
	profile := tierProfiles[tier]

	losing := behindField(&state, player)
	lateGame := state.MaxTurns > 0 && state.TurnNumber*3 >= state.MaxTurns*2

	candidates := make([]candidate, 0, 4)
	if c, ok := bestClaim(&state, player); ok {
		candidates = append(candidates, c)
	}
	if c, ok := bestAttack(&state, player, profile, lateGame); ok {
		candidates = append(candidates, c)
	}
	if c, ok := bestMove(&state, player); ok {
		candidates = append(candidates, c)
	}
	if c, ok := bestBuild(&state, player, profile, losing); ok {
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return Decision{Pass: true, Reasoning: "no legal actions available"}
	}

	sortCandidates(candidates)

	for _, c := range candidates {
		if rng.Float64() < gateFor(profile, c.Category) {
			return Decision{Action: c.Action, Reasoning: c.Reasoning, Score: c.Score}
		}
	}

	top := candidates[0]
	return Decision{Action: top.Action, Reasoning: top.Reasoning + " (fallback)", Score: top.Score}
}

func gateFor(profile tierProfile, category candidateCategory) float64 {
	switch category {
	case categoryClaim:
		return profile.ClaimGate
	case categoryAttack:
		return profile.AttackGate
	case categoryMove:
		return profile.MoveGate
	case categoryBuild:
		return profile.BuildGate
	default:
		return 0
	}
}

func sortCandidates(candidates []candidate) {
	// Insertion sort keeps ties in insertion order so equal-scored
	// categories resolve deterministically.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].Score > candidates[j-1].Score; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
}

// behindField compares the player's territory+fleet standing to the field
// average: the same win/lose assessment the comeback bonus uses.
func behindField(state *GameState, player *Player) bool {
	avgTerritory, avgFleet := fieldAverages(state)
	standing := float64(len(player.Territory)) + float64(player.LivingShips())
	return standing < avgTerritory+avgFleet
}

func terrainDesirability(t TerrainType) float64 {
	switch t {
	case TerrainPort:
		return 10
	case TerrainTreasure:
		return 8
	case TerrainIsland:
		return 6
	case TerrainWater:
		return 3
	default:
		return 1
	}
}

func bestClaim(state *GameState, player *Player) (candidate, bool) {
	best := candidate{Category: categoryClaim, Score: math.Inf(-1)}
	found := false

	for i := range player.Ships {
		ship := &player.Ships[i]
		if !ship.Alive() {
			continue
		}
		cell, ok := state.Grid.At(ship.Pos)
		if !ok || cell.Owner == player.ID {
			continue
		}

		score := terrainDesirability(cell.Type) * 10
		reasoning := fmt.Sprintf("claim unclaimed %s territory", cell.Type)
		if cell.Owner == "" {
			score += 8
		} else {
			score += 4
			reasoning = fmt.Sprintf("seize enemy %s territory", cell.Type)
		}

		if score > best.Score {
			best = candidate{
				Category:  categoryClaim,
				Action:    ClaimTerritory{ShipID: ship.ID, At: ship.Pos},
				Score:     score,
				Reasoning: reasoning,
			}
			found = true
		}
	}

	return best, found
}

func bestAttack(state *GameState, player *Player, profile tierProfile, lateGame bool) (candidate, bool) {
	best := candidate{Category: categoryAttack, Score: math.Inf(-1)}
	found := false

	for i := range player.Ships {
		attacker := &player.Ships[i]
		if !attacker.Alive() {
			continue
		}
		for j := range state.Players {
			enemy := &state.Players[j]
			if enemy.ID == player.ID {
				continue
			}
			for k := range enemy.Ships {
				target := &enemy.Ships[k]
				if !target.Alive() || !withinAttackRange(attacker.Pos, target.Pos, attacker.Range) {
					continue
				}

				spec, _ := specFor(target.Type)
				score := float64(spec.TierValue)*8 + float64(100-target.Health)/4
				if lateGame {
					score += 10
				}
				score *= profile.Aggressiveness

				reasoning := fmt.Sprintf("attack %s's %s", enemy.Name, shipLabel(*target))
				if target.Health < 30 {
					reasoning = fmt.Sprintf("finish off %s's weakened %s", enemy.Name, shipLabel(*target))
				}

				if score > best.Score {
					best = candidate{
						Category:  categoryAttack,
						Action:    Attack{ShipID: attacker.ID, TargetShipID: target.ID},
						Score:     score,
						Reasoning: reasoning,
					}
					found = true
				}
			}
		}
	}

	return best, found
}

// bestMove steers the fastest available ship one legal hop toward the most
// valuable objective: unowned ports/treasure first, enemy ships otherwise.
func bestMove(state *GameState, player *Player) (candidate, bool) {
	best := candidate{Category: categoryMove, Score: math.Inf(-1)}
	found := false

	for i := range player.Ships {
		ship := &player.Ships[i]
		if !ship.Alive() {
			continue
		}

		target, value, ok := nearestObjective(state, player, ship.Pos)
		if !ok {
			continue
		}
		destination, ok := stepToward(state.Grid, ship.Pos, target, effectiveMoveRange(*ship, state.Weather))
		if !ok {
			continue
		}

		distance := ship.Pos.DistanceTo(target)
		score := 6 + value/2 - distance*0.5
		if score < 1 {
			score = 1
		}

		if score > best.Score {
			terrain := TerrainType("open sea")
			if cell, ok := state.Grid.At(target); ok {
				terrain = cell.Type
			}
			best = candidate{
				Category:  categoryMove,
				Action:    MoveShip{ShipID: ship.ID, To: destination},
				Score:     score,
				Reasoning: fmt.Sprintf("advance toward the %s at (%d,%d)", terrain, target.X, target.Y),
			}
			found = true
		}
	}

	return best, found
}

// nearestObjective picks the closest cell worth sailing to: an unowned port,
// treasure, or island, falling back to the nearest living enemy ship.
func nearestObjective(state *GameState, player *Player, from Coordinate) (Coordinate, float64, bool) {
	bestDist := math.Inf(1)
	var bestCoord Coordinate
	bestValue := 0.0
	found := false

	for y := 0; y < state.Grid.Size; y++ {
		for x := 0; x < state.Grid.Size; x++ {
			coord := Coordinate{X: x, Y: y}
			cell, _ := state.Grid.At(coord)
			if cell.Owner == player.ID {
				continue
			}
			switch cell.Type {
			case TerrainPort, TerrainTreasure, TerrainIsland:
			default:
				continue
			}
			if dist := from.DistanceTo(coord); dist > 0 && dist < bestDist {
				bestDist = dist
				bestCoord = coord
				bestValue = terrainDesirability(cell.Type)
				found = true
			}
		}
	}
	if found {
		return bestCoord, bestValue, true
	}

	for i := range state.Players {
		enemy := &state.Players[i]
		if enemy.ID == player.ID {
			continue
		}
		for j := range enemy.Ships {
			ship := &enemy.Ships[j]
			if !ship.Alive() {
				continue
			}
			if dist := from.DistanceTo(ship.Pos); dist > 0 && dist < bestDist {
				bestDist = dist
				bestCoord = ship.Pos
				bestValue = 4
				found = true
			}
		}
	}

	return bestCoord, bestValue, found
}

// stepToward clamps a straight-line step at the mover's range and slides it
// to the nearest navigable cell, so the resulting MoveShip always passes the
// processor's legality checks.
func stepToward(grid Grid, from, to Coordinate, moveRange int) (Coordinate, bool) {
	if moveRange < 1 || from == to {
		return Coordinate{}, false
	}

	step := Coordinate{
		X: from.X + clamp(to.X-from.X, -moveRange, moveRange),
		Y: from.Y + clamp(to.Y-from.Y, -moveRange, moveRange),
	}

	attempts := []Coordinate{
		step,
		{X: step.X, Y: from.Y},
		{X: from.X, Y: step.Y},
	}
	for _, dest := range attempts {
		if dest == from {
			continue
		}
		cell, ok := grid.At(dest)
		if ok && cell.Type.Navigable() {
			return dest, true
		}
	}
	return Coordinate{}, false
}

func bestBuild(state *GameState, player *Player, profile tierProfile, losing bool) (candidate, bool) {
	if player.LivingShips() >= maxFleetSize {
		return candidate{}, false
	}

	site, ok := findBuildSite(state.Grid, player.ID)
	if !ok {
		return candidate{}, false
	}

	// Strongest affordable hull; the cost tables make this a real tradeoff.
	types := []ShipType{ShipFlagship, ShipGalleon, ShipFrigate, ShipScout}
	for _, shipType := range types {
		spec := shipSpecs[shipType]
		if !player.Resources.CanAfford(spec.Cost) {
			continue
		}

		score := float64(spec.TierValue) * 6
		if losing {
			score += 4
		}
		score *= profile.Aggressiveness

		reasoning := fmt.Sprintf("build a %s to reinforce the fleet", spec.Name)
		if shipType == ShipFlagship {
			reasoning = "build a powerful flagship"
		}

		return candidate{
			Category:  categoryBuild,
			Action:    BuildShip{Type: shipType, At: site},
			Score:     score,
			Reasoning: reasoning,
		}, true
	}

	return candidate{}, false
}

// findBuildSite scans for open water adjacent to a port the player owns.
func findBuildSite(grid Grid, playerID string) (Coordinate, bool) {
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			cell, _ := grid.At(Coordinate{X: x, Y: y})
			if cell.Type != TerrainPort || cell.Owner != playerID {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					site := Coordinate{X: x + dx, Y: y + dy}
					if neighbor, ok := grid.At(site); ok && neighbor.Type == TerrainWater {
						return site, true
					}
				}
			}
		}
	}
	return Coordinate{}, false
}
