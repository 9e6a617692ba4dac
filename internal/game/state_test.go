package game

import (
	"testing"
	"time"
)

// testGrid builds an all-water board with yields populated, so tests can
// paint exactly the terrain they need.
func testGrid(size int) Grid {
	cells := make([]TerrainCell, size*size)
	for i := range cells {
		cells[i] = TerrainCell{Type: TerrainWater, Yield: terrainYield(TerrainWater)}
	}
	return Grid{Size: size, Cells: cells}
}

func setTerrain(t *testing.T, g *Grid, at Coordinate, terrain TerrainType) {
	t.Helper()
	cell, ok := g.cellAt(at)
	if !ok {
		t.Fatalf("setTerrain: (%d,%d) out of bounds", at.X, at.Y)
	}
	cell.Type = terrain
	cell.Yield = terrainYield(terrain)
}

func claimCell(t *testing.T, state *GameState, playerID string, at Coordinate) {
	t.Helper()
	cell, ok := state.Grid.cellAt(at)
	if !ok {
		t.Fatalf("claimCell: (%d,%d) out of bounds", at.X, at.Y)
	}
	cell.Owner = playerID
	player, ok := state.playerByID(playerID)
	if !ok {
		t.Fatalf("claimCell: no player %s", playerID)
	}
	player.Territory = append(player.Territory, at)
}

// testState builds a two-player active match on an 8x8 water board with
// fleets in opposite corners.
func testState() GameState {
	state := GameState{
		ID:         "match-1",
		Turn:       0,
		TurnNumber: 1,
		Grid:       testGrid(8),
		Status:     StatusActive,
		Weather:    initialWeather(),
		MaxTurns:   100,
		Seed:       42,
	}
	state.Players = []Player{
		{
			ID: "p1", Name: "Anne", Resources: startingResources, Active: true,
			ScanCharges: startingScanCharges,
			Ships: []Ship{
				newShip("p1-scout", ShipScout, Coordinate{X: 1, Y: 1}),
				newShip("p1-frigate", ShipFrigate, Coordinate{X: 2, Y: 1}),
			},
		},
		{
			ID: "p2", Name: "Edward", Resources: startingResources, Active: true,
			ScanCharges: startingScanCharges,
			Ships: []Ship{
				newShip("p2-scout", ShipScout, Coordinate{X: 6, Y: 6}),
				newShip("p2-frigate", ShipFrigate, Coordinate{X: 5, Y: 6}),
			},
		},
	}
	return state
}

func sinkFleet(player *Player) {
	for i := range player.Ships {
		player.Ships[i].Health = 0
	}
}

func TestNewGameSetsUpFleetsAndResources(t *testing.T) {
	state, err := NewGame(GameConfig{
		Seed: 7,
		Players: []PlayerSetup{
			{ID: "p1", Name: "Anne"},
			{ID: "p2", Name: "Edward", AI: true, Tier: TierVeteran},
		},
	})
	if err != nil {
		t.Fatalf("NewGame returned error: %v", err)
	}

	if state.Status != StatusActive {
		t.Fatalf("expected active status with two players, got %s", state.Status)
	}
	if state.Grid.Size != defaultMapSize {
		t.Fatalf("expected default map size %d, got %d", defaultMapSize, state.Grid.Size)
	}
	if state.MaxTurns != defaultTurns {
		t.Fatalf("expected default turn limit %d, got %d", defaultTurns, state.MaxTurns)
	}

	for _, player := range state.Players {
		if player.Resources != startingResources {
			t.Errorf("%s: starting resources = %+v", player.ID, player.Resources)
		}
		if len(player.Ships) != 2 {
			t.Fatalf("%s: expected 2 starting ships, got %d", player.ID, len(player.Ships))
		}
		if player.Ships[0].Type != ShipScout || player.Ships[1].Type != ShipFrigate {
			t.Errorf("%s: expected scout+frigate, got %s+%s", player.ID, player.Ships[0].Type, player.Ships[1].Type)
		}
		for _, ship := range player.Ships {
			if ship.Health != ship.MaxHealth {
				t.Errorf("%s: ship %s not at full health", player.ID, ship.ID)
			}
			if !state.Grid.InBounds(ship.Pos) {
				t.Errorf("%s: ship %s spawned out of bounds at (%d,%d)", player.ID, ship.ID, ship.Pos.X, ship.Pos.Y)
			}
		}
		if !player.Ships[0].Pos.AdjacentTo(player.Ships[1].Pos) {
			t.Errorf("%s: frigate should spawn adjacent to the scout", player.ID)
		}
	}

	if state.Players[1].Tier != TierVeteran {
		t.Errorf("AI tier not carried over: %s", state.Players[1].Tier)
	}
}

func TestNewGameSinglePlayerWaits(t *testing.T) {
	state, err := NewGame(GameConfig{
		Seed:    7,
		Players: []PlayerSetup{{ID: "p1", Name: "Anne"}},
	})
	if err != nil {
		t.Fatalf("NewGame returned error: %v", err)
	}
	if state.Status != StatusWaiting {
		t.Fatalf("expected waiting status with one player, got %s", state.Status)
	}
}

func TestNewGameRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name string
		cfg  GameConfig
	}{
		{"no players", GameConfig{}},
		{"duplicate ids", GameConfig{Players: []PlayerSetup{{ID: "p1"}, {ID: "p1"}}}},
		{"too many players", GameConfig{Players: []PlayerSetup{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
		}}},
		{"bad tier", GameConfig{Players: []PlayerSetup{
			{ID: "p1"}, {ID: "p2", AI: true, Tier: "grandmaster"},
		}}},
		{"map too small", GameConfig{MapSize: 4, Players: []PlayerSetup{{ID: "p1"}, {ID: "p2"}}}},
		{"map too large", GameConfig{MapSize: 40, Players: []PlayerSetup{{ID: "p1"}, {ID: "p2"}}}},
	}
	for _, tc := range cases {
		if _, err := NewGame(tc.cfg); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestNewGameDeterministicForSeed(t *testing.T) {
	cfg := GameConfig{
		ID:   "fixed",
		Seed: 99,
		Players: []PlayerSetup{
			{ID: "p1", Name: "Anne"},
			{ID: "p2", Name: "Edward"},
		},
	}
	a, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame returned error: %v", err)
	}
	b, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame returned error: %v", err)
	}
	// Ship ids are random, so compare the deterministic parts.
	for i := range a.Grid.Cells {
		if a.Grid.Cells[i] != b.Grid.Cells[i] {
			t.Fatalf("grids diverge at cell %d for the same seed", i)
		}
	}
	for i := range a.Players {
		for j := range a.Players[i].Ships {
			if a.Players[i].Ships[j].Pos != b.Players[i].Ships[j].Pos {
				t.Fatalf("spawn positions diverge for the same seed")
			}
		}
	}
}

func TestCloneIsolation(t *testing.T) {
	state := testState()
	clone := state.Clone()

	clone.Players[0].Resources.Gold = 0
	clone.Players[0].Ships[0].Health = 1
	clone.Players[0].Territory = append(clone.Players[0].Territory, Coordinate{X: 3, Y: 3})
	cell, _ := clone.Grid.cellAt(Coordinate{X: 3, Y: 3})
	cell.Owner = "p1"
	clone.logEvent("clone-only event")

	if state.Players[0].Resources.Gold != startingResources.Gold {
		t.Errorf("clone mutation leaked into original resources")
	}
	if state.Players[0].Ships[0].Health != 100 {
		t.Errorf("clone mutation leaked into original ships")
	}
	if len(state.Players[0].Territory) != 0 {
		t.Errorf("clone mutation leaked into original territory")
	}
	if original, _ := state.Grid.At(Coordinate{X: 3, Y: 3}); original.Owner != "" {
		t.Errorf("clone mutation leaked into original grid")
	}
	if len(state.Events) != 0 {
		t.Errorf("clone mutation leaked into original event log")
	}
}

func TestEventLogCapped(t *testing.T) {
	state := testState()
	for i := 0; i < maxEventLog+20; i++ {
		state.logEvent("event %d", i)
	}
	if len(state.Events) != maxEventLog {
		t.Fatalf("expected log capped at %d, got %d", maxEventLog, len(state.Events))
	}
	if state.Events[len(state.Events)-1] != "event 69" {
		t.Errorf("newest event should survive the cap, got %q", state.Events[len(state.Events)-1])
	}
}

func TestRecordDecisionTime(t *testing.T) {
	state := testState()
	next := RecordDecisionTime(state, "p1", 1500*time.Millisecond)
	next = RecordDecisionTime(next, "p1", 500*time.Millisecond)

	player, _ := next.playerByID("p1")
	if player.Decisions != 2 || player.DecisionMillis != 2000 {
		t.Fatalf("expected 2 decisions over 2000ms, got %d over %dms", player.Decisions, player.DecisionMillis)
	}
	if original, _ := state.playerByID("p1"); original.Decisions != 0 {
		t.Errorf("RecordDecisionTime mutated the input state")
	}
}

func TestDigestStableAndSensitive(t *testing.T) {
	state := testState()
	if state.Digest() != state.Digest() {
		t.Fatalf("digest of an unchanged state should be stable")
	}
	mutated := state.Clone()
	mutated.Players[0].Resources.Gold++
	if state.Digest() == mutated.Digest() {
		t.Fatalf("digest should change when state changes")
	}
}
