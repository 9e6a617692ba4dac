package game

import "testing"

func TestAdvanceRotatesAndWraps(t *testing.T) {
	state := testState()

	mid := Advance(state, subRNG(1, "turn"))
	if mid.Turn != 1 {
		t.Fatalf("expected the turn to pass to p2, got index %d", mid.Turn)
	}
	if mid.TurnNumber != 1 {
		t.Fatalf("turn number must not advance mid-cycle, got %d", mid.TurnNumber)
	}

	wrapped := Advance(mid, subRNG(1, "turn"))
	if wrapped.Turn != 0 {
		t.Fatalf("expected the turn to wrap back to p1, got index %d", wrapped.Turn)
	}
	if wrapped.TurnNumber != 2 {
		t.Fatalf("turn number should advance once per full cycle, got %d", wrapped.TurnNumber)
	}
}

func TestAdvanceSkipsEliminatedPlayers(t *testing.T) {
	state := testState()
	state.Players = append(state.Players, Player{
		ID: "p3", Name: "Mary", Resources: startingResources, Active: true,
		Ships: []Ship{newShip("p3-scout", ShipScout, Coordinate{X: 3, Y: 6})},
	})
	sinkFleet(&state.Players[1])

	next := Advance(state, subRNG(1, "turn"))
	if next.Turn != 2 {
		t.Fatalf("expected the turn to skip the sunk fleet to p3, got index %d", next.Turn)
	}
	if next.Players[1].Active {
		t.Fatalf("a player with no living ships must be deactivated")
	}
}

func TestAdvanceTicksStatusEffects(t *testing.T) {
	state := testState()
	player, _ := state.playerByID("p1")
	ship, _ := player.shipByID("p1-scout")
	ship.Effects = []StatusEffect{{
		Name: "waterlogged", TurnsRemaining: 2, DamagePerTurn: 2, SpeedPenalty: 1,
	}}

	once := Advance(state, subRNG(1, "turn"))
	p, _ := once.playerByID("p1")
	s, _ := p.shipByID("p1-scout")
	if s.Health != 98 {
		t.Fatalf("expected 2 effect damage, health = %d", s.Health)
	}
	if len(s.Effects) != 1 || s.Effects[0].TurnsRemaining != 1 {
		t.Fatalf("effect should have one turn left: %+v", s.Effects)
	}

	twice := Advance(once, subRNG(1, "turn"))
	p, _ = twice.playerByID("p1")
	s, _ = p.shipByID("p1-scout")
	if s.Health != 96 {
		t.Fatalf("expected 4 total effect damage, health = %d", s.Health)
	}
	if len(s.Effects) != 0 {
		t.Fatalf("effect should have expired: %+v", s.Effects)
	}
}

func TestAdvanceRegeneratesScanCharges(t *testing.T) {
	state := testState()
	player, _ := state.playerByID("p1")
	player.ScanCharges = 0

	next := Advance(state, subRNG(1, "turn"))
	p, _ := next.playerByID("p1")
	if p.ScanCharges != 1 {
		t.Fatalf("expected one regenerated scan charge, got %d", p.ScanCharges)
	}

	for i := 0; i < 10; i++ {
		next = Advance(next, subRNG(int64(i), "turn"))
	}
	p, _ = next.playerByID("p1")
	if p.ScanCharges != maxScanCharges {
		t.Fatalf("scan charges must cap at %d, got %d", maxScanCharges, p.ScanCharges)
	}
}

func TestAdvanceDoesNothingWhenNotActive(t *testing.T) {
	state := testState()
	state.Status = StatusCompleted
	next := Advance(state, subRNG(1, "turn"))
	if next.Turn != state.Turn || next.TurnNumber != state.TurnNumber {
		t.Fatalf("advance must be a no-op on a finished game")
	}
}

func TestAdvanceTicksWeatherOncePerCycle(t *testing.T) {
	state := testState()
	startDuration := state.Weather.Duration

	mid := Advance(state, subRNG(9, "turn"))
	if mid.Weather.Duration != startDuration {
		t.Fatalf("weather must not tick mid-cycle")
	}

	wrapped := Advance(mid, subRNG(9, "turn"))
	changed := wrapped.Weather.Duration != startDuration || wrapped.Weather.Type != state.Weather.Type
	if !changed {
		t.Fatalf("weather should tick on the cycle boundary")
	}
}
