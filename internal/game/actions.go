package game

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type ActionKind string

const (
	ActionMoveShip         ActionKind = "move_ship"
	ActionAttack           ActionKind = "attack"
	ActionClaimTerritory   ActionKind = "claim_territory"
	ActionCollectResources ActionKind = "collect_resources"
	ActionBuildShip        ActionKind = "build_ship"
)

// Action is the tagged union of everything a player can do on their turn.
// Each kind carries typed fields, so payload-shape validation never happens
// at runtime.
type Action interface {
	Kind() ActionKind
}

type MoveShip struct {
	ShipID string     `json:"ship_id"`
	To     Coordinate `json:"to"`
}

func (MoveShip) Kind() ActionKind { return ActionMoveShip }

type Attack struct {
	ShipID       string `json:"ship_id"`
	TargetShipID string `json:"target_ship_id"`
}

func (Attack) Kind() ActionKind { return ActionAttack }

type ClaimTerritory struct {
	ShipID string     `json:"ship_id"`
	At     Coordinate `json:"at"`
}

func (ClaimTerritory) Kind() ActionKind { return ActionClaimTerritory }

type CollectResources struct {
	ShipID string `json:"ship_id"`
}

func (CollectResources) Kind() ActionKind { return ActionCollectResources }

type BuildShip struct {
	Type ShipType   `json:"type"`
	At   Coordinate `json:"at"`
}

func (BuildShip) Kind() ActionKind { return ActionBuildShip }

// ActionRequest is the envelope handed in by the intake layer. The engine
// validates the action itself; authenticating that PlayerID really issued
// the request is the collaborator's job.
type ActionRequest struct {
	ID        string
	GameID    string
	PlayerID  string
	Timestamp time.Time
	Action    Action
}

// ActionResult reports one processed action. On failure State is the prior
// state, untouched, so the caller may retry or discard freely.
type ActionResult struct {
	State   GameState
	Success bool
	Message string
}

func failure(prior GameState, format string, args ...any) ActionResult {
	return ActionResult{State: prior, Success: false, Message: fmt.Sprintf(format, args...)}
}

// Apply validates and executes a single action against state, returning the
// replacement state. Rule violations and stale references (unknown player or
// ship) are ordinary failed results, never errors: they arise benignly from
// stale client state.
func Apply(state GameState, req ActionRequest, rng *rand.Rand) ActionResult {
	if state.Status == StatusCompleted {
		return failure(state, "the game is already over")
	}
	if state.Status == StatusWaiting {
		return failure(state, "the game has not started yet")
	}
	if req.Action == nil {
		return failure(state, "no action supplied")
	}

	next := state.Clone()
	player, ok := next.playerByID(req.PlayerID)
	if !ok {
		return failure(state, "player %s is not in this game", req.PlayerID)
	}
	if !player.Active {
		return failure(state, "%s has been eliminated", player.Name)
	}

	switch action := req.Action.(type) {
	case MoveShip:
		return applyMove(state, next, player, action, rng)
	case Attack:
		return applyAttack(state, next, player, action, rng)
	case ClaimTerritory:
		return applyClaim(state, next, player, action)
	case CollectResources:
		return applyCollect(state, next, player, action)
	case BuildShip:
		return applyBuild(state, next, player, action)
	default:
		return failure(state, "unsupported action kind: %s", req.Action.Kind())
	}
}

func applyMove(prior GameState, next GameState, player *Player, action MoveShip, rng *rand.Rand) ActionResult {
	ship, ok := player.shipByID(action.ShipID)
	if !ok {
		return failure(prior, "ship %s not found in your fleet", action.ShipID)
	}
	if !ship.Alive() {
		return failure(prior, "that ship has been destroyed")
	}

	cell, ok := next.Grid.At(action.To)
	if !ok {
		return failure(prior, "destination (%d,%d) is off the map", action.To.X, action.To.Y)
	}
	if !cell.Type.Navigable() {
		return failure(prior, "ships cannot sail onto %s", cell.Type)
	}

	distance := ship.Pos.GridDistanceTo(action.To)
	if distance == 0 {
		return failure(prior, "the ship is already at (%d,%d)", action.To.X, action.To.Y)
	}
	if allowed := effectiveMoveRange(*ship, next.Weather); distance > allowed {
		return failure(prior, "destination is %d cells away; this ship can move %d", distance, allowed)
	}

	ship.Pos = action.To
	player.Momentum = 0
	player.MomentumHot = false

	message := fmt.Sprintf("%s sailed to (%d,%d)", shipLabel(*ship), action.To.X, action.To.Y)
	if eventMsg, fired := rollLocationEvent(&next, player, ship, rng); fired {
		message += " — " + eventMsg
		if !ship.Alive() && player.LivingShips() == 0 {
			player.Active = false
			next.logEvent("%s lost their last ship to the sea.", player.Name)
		}
	}

	next.logEvent("%s: %s", player.Name, message)
	return ActionResult{State: next, Success: true, Message: message}
}

func applyAttack(prior GameState, next GameState, player *Player, action Attack, rng *rand.Rand) ActionResult {
	attacker, ok := player.shipByID(action.ShipID)
	if !ok {
		if _, selfTarget := player.shipByID(action.TargetShipID); selfTarget {
			return failure(prior, "you cannot attack your own ship")
		}
		return failure(prior, "ship %s not found in your fleet", action.ShipID)
	}
	if !attacker.Alive() {
		return failure(prior, "that ship has been destroyed")
	}
	if _, selfTarget := player.shipByID(action.TargetShipID); selfTarget {
		return failure(prior, "you cannot attack your own ship")
	}

	defenderOwner, defender, ok := next.findEnemyShip(player.ID, action.TargetShipID)
	if !ok {
		return failure(prior, "target ship %s not found", action.TargetShipID)
	}
	if !defender.Alive() {
		return failure(prior, "the target has already been sunk")
	}
	if !withinAttackRange(attacker.Pos, defender.Pos, attacker.Range) {
		return failure(prior, "target is out of range")
	}

	dmg, critical := resolveDamage(*attacker, *defender, next.TurnNumber, player.Momentum, next.Weather, rng)
	sunk := defender.damage(dmg)

	// Attacking is the one action that feeds the streak instead of
	// resetting it.
	player.Momentum++
	player.MomentumHot = player.Momentum >= momentumStreak
	player.Score += dmg

	message := fmt.Sprintf("%s hit %s's %s for %d damage", shipLabel(*attacker), defenderOwner.Name, shipLabel(*defender), dmg)
	if critical {
		message += " (critical hit!)"
	}
	if player.MomentumHot {
		message += " — momentum is with you"
	}
	if sunk {
		spec, _ := specFor(defender.Type)
		player.Score += 25 * spec.TierValue
		message += fmt.Sprintf("; the %s went down", spec.Name)
		if defenderOwner.LivingShips() == 0 {
			defenderOwner.Active = false
			next.logEvent("%s's fleet has been wiped out.", defenderOwner.Name)
		}
	}

	next.logEvent("%s: %s", player.Name, message)
	return ActionResult{State: next, Success: true, Message: message}
}

func applyClaim(prior GameState, next GameState, player *Player, action ClaimTerritory) ActionResult {
	ship, ok := player.shipByID(action.ShipID)
	if !ok {
		return failure(prior, "ship %s not found in your fleet", action.ShipID)
	}
	if !ship.Alive() {
		return failure(prior, "that ship has been destroyed")
	}
	if ship.Pos != action.At {
		return failure(prior, "the ship must occupy (%d,%d) to claim it", action.At.X, action.At.Y)
	}

	cell, ok := next.Grid.cellAt(action.At)
	if !ok {
		return failure(prior, "coordinate (%d,%d) is off the map", action.At.X, action.At.Y)
	}
	if cell.Owner == player.ID {
		return failure(prior, "Territory already owned by you")
	}

	captured := cell.Owner != ""
	if captured {
		if prevOwner, ok := next.playerByID(cell.Owner); ok {
			prevOwner.Territory = removeCoordinate(prevOwner.Territory, action.At)
		}
		cell.Contested = true
	}
	cell.Owner = player.ID
	player.Territory = append(player.Territory, action.At)
	player.Score += 5
	player.Momentum = 0
	player.MomentumHot = false

	var message string
	if captured {
		message = fmt.Sprintf("captured enemy territory at (%d,%d)", action.At.X, action.At.Y)
	} else {
		message = fmt.Sprintf("claimed territory at (%d,%d)", action.At.X, action.At.Y)
	}
	next.logEvent("%s %s", player.Name, message)
	return ActionResult{State: next, Success: true, Message: message}
}

func applyCollect(prior GameState, next GameState, player *Player, action CollectResources) ActionResult {
	ship, ok := player.shipByID(action.ShipID)
	if !ok {
		return failure(prior, "ship %s not found in your fleet", action.ShipID)
	}
	if !ship.Alive() {
		return failure(prior, "that ship has been destroyed")
	}

	cell, ok := next.Grid.At(ship.Pos)
	if !ok {
		return failure(prior, "the ship is adrift off the map")
	}
	if cell.Owner != player.ID {
		return failure(prior, "you must own this territory to collect from it")
	}

	yield := collectYield(cell, ship.Type, next.Weather)
	bonus := comebackGold(&next, player.ID)
	yield.Gold += bonus

	player.Resources = player.Resources.Add(yield)
	player.Score++
	player.Momentum = 0
	player.MomentumHot = false

	message := fmt.Sprintf("collected %s from the %s", yield.String(), cell.Type)
	if bonus > 0 {
		message += fmt.Sprintf(" (including %d comeback gold)", bonus)
	}
	next.logEvent("%s %s", player.Name, message)
	return ActionResult{State: next, Success: true, Message: message}
}

func applyBuild(prior GameState, next GameState, player *Player, action BuildShip) ActionResult {
	spec, ok := specFor(action.Type)
	if !ok {
		return failure(prior, "unknown ship type: %s", action.Type)
	}
	if player.LivingShips() >= maxFleetSize {
		return failure(prior, "your fleet is at capacity (%d ships)", maxFleetSize)
	}
	if !player.Resources.CanAfford(spec.Cost) {
		return failure(prior, "insufficient resources to build a %s (needs %s)", spec.Name, spec.Cost.String())
	}
	if reason, ok := canBuildAt(next.Grid, player.ID, action.At); !ok {
		return failure(prior, "%s", reason)
	}

	player.Resources = player.Resources.Sub(spec.Cost)
	ship := newShip(newShipID(), action.Type, action.At)
	player.Ships = append(player.Ships, ship)
	player.Momentum = 0
	player.MomentumHot = false

	message := fmt.Sprintf("launched a new %s at (%d,%d)", spec.Name, action.At.X, action.At.Y)
	next.logEvent("%s %s", player.Name, message)
	return ActionResult{State: next, Success: true, Message: message}
}

func shipLabel(s Ship) string {
	spec, ok := specFor(s.Type)
	if !ok {
		return string(s.Type)
	}
	return spec.Name
}

func removeCoordinate(coords []Coordinate, target Coordinate) []Coordinate {
	out := coords[:0]
	for _, c := range coords {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}
