package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	StatusWaiting   GameStatus = "waiting"
	StatusActive    GameStatus = "active"
	StatusCompleted GameStatus = "completed"
)

const (
	maxEventLog         = 50
	maxScanCharges      = 3
	startingScanCharges = 2
)

var startingResources = Resources{Gold: 100, Crew: 20, Cannons: 10, Supplies: 50, Wood: 60, Rum: 10}

type Player struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	AI          bool         `json:"ai,omitempty"`
	Tier        AITier       `json:"tier,omitempty"`
	Resources   Resources    `json:"resources"`
	Ships       []Ship       `json:"ships"`
	Territory   []Coordinate `json:"territory,omitempty"`
	Score       int          `json:"score"`
	Active      bool         `json:"active"`
	Momentum    int          `json:"momentum"`
	MomentumHot bool         `json:"momentum_hot,omitempty"`
	ScanCharges int          `json:"scan_charges"`

	// Behavioral counters feeding skill scoring; never consulted by rules.
	DecisionMillis int64 `json:"decision_millis,omitempty"`
	Decisions      int   `json:"decisions,omitempty"`
}

func (p *Player) shipByID(id string) (*Ship, bool) {
	for i := range p.Ships {
		if p.Ships[i].ID == id {
			return &p.Ships[i], true
		}
	}
	return nil, false
}

func (p Player) LivingShips() int {
	count := 0
	for i := range p.Ships {
		if p.Ships[i].Alive() {
			count++
		}
	}
	return count
}

func (p Player) FleetHealth() int {
	total := 0
	for i := range p.Ships {
		total += p.Ships[i].Health
	}
	return total
}

func (p Player) Clone() Player {
	out := p
	out.Ships = make([]Ship, len(p.Ships))
	for i := range p.Ships {
		out.Ships[i] = p.Ships[i].Clone()
	}
	if len(p.Territory) > 0 {
		out.Territory = make([]Coordinate, len(p.Territory))
		copy(out.Territory, p.Territory)
	}
	return out
}

// GameState is the complete, self-contained match state. It is never mutated
// in place: every processing step clones it, edits the clone, and returns it,
// so snapshots and speculative AI look-ahead need no coordination.
type GameState struct {
	ID         string        `json:"id"`
	Players    []Player      `json:"players"`
	Turn       int           `json:"turn"`
	TurnNumber int           `json:"turn_number"`
	Grid       Grid          `json:"grid"`
	Status     GameStatus    `json:"status"`
	Events     []string      `json:"events,omitempty"`
	Weather    WeatherEffect `json:"weather"`
	WinnerID   string        `json:"winner_id,omitempty"`
	MaxTurns   int           `json:"max_turns"`
	Seed       int64         `json:"seed"`
}

// NewGame builds the initial state: generated grid, corner starting fleets,
// and the fixed opening resource bundle. The roster is fixed for the life of
// the match; the game waits until at least minPlayers are present.
func NewGame(cfg GameConfig) (GameState, error) {
	if err := cfg.Validate(); err != nil {
		return GameState{}, err
	}

	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.MapSize == 0 {
		cfg.MapSize = defaultMapSize
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = defaultTurns
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	rng := subRNG(cfg.Seed, "setup")
	grid := GenerateGrid(cfg.MapSize, rng)

	state := GameState{
		ID:         cfg.ID,
		Players:    make([]Player, 0, len(cfg.Players)),
		Turn:       0,
		TurnNumber: 1,
		Grid:       grid,
		Status:     StatusWaiting,
		Weather:    initialWeather(),
		MaxTurns:   cfg.MaxTurns,
		Seed:       cfg.Seed,
	}

	for i, setup := range cfg.Players {
		tier := setup.Tier
		if setup.AI && tier == "" {
			tier = TierNovice
		}
		player := Player{
			ID:          setup.ID,
			Name:        setup.Name,
			AI:          setup.AI,
			Tier:        tier,
			Resources:   startingResources,
			Active:      true,
			ScanCharges: startingScanCharges,
		}
		scoutPos, frigatePos := startingPositions(cfg.MapSize, i, rng)
		player.Ships = []Ship{
			newShip(uuid.NewString(), ShipScout, scoutPos),
			newShip(uuid.NewString(), ShipFrigate, frigatePos),
		}
		state.Players = append(state.Players, player)
	}

	if len(state.Players) >= minPlayers {
		state.Status = StatusActive
	}

	state.logEvent("A new contest for the archipelago begins with %d captains.", len(state.Players))

	return state, nil
}

// startingPositions assigns each roster slot a corner region, offset 1-2
// cells inward so starting fleets never clip the board edge. The frigate
// spawns on the cell adjacent to the scout, toward the map center.
func startingPositions(size, slot int, rng *rand.Rand) (Coordinate, Coordinate) {
	offset := 1 + rng.IntN(2)
	near := offset
	far := size - 1 - offset

	var scout Coordinate
	towardCenterX := 1
	switch slot % 4 {
	case 0:
		scout = Coordinate{X: near, Y: near}
	case 1:
		scout = Coordinate{X: far, Y: near}
		towardCenterX = -1
	case 2:
		scout = Coordinate{X: near, Y: far}
	case 3:
		scout = Coordinate{X: far, Y: far}
		towardCenterX = -1
	}

	frigate := Coordinate{X: scout.X + towardCenterX, Y: scout.Y}
	return scout, frigate
}

func newShipID() string {
	return uuid.NewString()
}

func (s *GameState) playerByID(id string) (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// findEnemyShip locates a ship belonging to any player other than ownerID.
func (s *GameState) findEnemyShip(ownerID, shipID string) (*Player, *Ship, bool) {
	for i := range s.Players {
		if s.Players[i].ID == ownerID {
			continue
		}
		if ship, ok := s.Players[i].shipByID(shipID); ok {
			return &s.Players[i], ship, true
		}
	}
	return nil, nil, false
}

func (s *GameState) CurrentPlayer() (*Player, bool) {
	if s.Turn < 0 || s.Turn >= len(s.Players) {
		return nil, false
	}
	return &s.Players[s.Turn], true
}

func (s GameState) Clone() GameState {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i := range s.Players {
		out.Players[i] = s.Players[i].Clone()
	}
	out.Grid = s.Grid.Clone()
	if len(s.Events) > 0 {
		out.Events = make([]string, len(s.Events))
		copy(out.Events, s.Events)
	}
	return out
}

// logEvent appends to the rolling event log, dropping the oldest entries
// beyond maxEventLog.
func (s *GameState) logEvent(format string, args ...any) {
	s.Events = append(s.Events, fmt.Sprintf(format, args...))
	if len(s.Events) > maxEventLog {
		s.Events = s.Events[len(s.Events)-maxEventLog:]
	}
}

// RecordDecisionTime accumulates host-measured thinking time for a player.
// Purely a skill-scoring statistic; rules never read it.
func RecordDecisionTime(state GameState, playerID string, elapsed time.Duration) GameState {
	next := state.Clone()
	player, ok := next.playerByID(playerID)
	if !ok {
		return state
	}
	player.DecisionMillis += elapsed.Milliseconds()
	player.Decisions++
	return next
}
