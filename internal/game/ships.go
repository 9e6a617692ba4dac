package game

type ShipType string

const (
	ShipScout    ShipType = "scout"
	ShipFrigate  ShipType = "frigate"
	ShipGalleon  ShipType = "galleon"
	ShipFlagship ShipType = "flagship"
)

type shipSpec struct {
	Name            string
	MaxHealth       int
	Strength        float64
	Defense         int
	Speed           int
	Range           int
	CollectMult     float64
	TierValue       int
	Ability         string
	AbilityCooldown int
	AbilityCharges  int
	Cost            Resources
}

var shipSpecs = map[ShipType]shipSpec{
	ShipScout: {
		Name:            "Scout",
		MaxHealth:       100,
		Strength:        1.0,
		Defense:         2,
		Speed:           4,
		Range:           1,
		CollectMult:     1.0,
		TierValue:       1,
		Ability:         "spyglass",
		AbilityCooldown: 2,
		AbilityCharges:  2,
		Cost:            Resources{Gold: 50, Crew: 5, Cannons: 2, Supplies: 10, Wood: 30, Rum: 2},
	},
	ShipFrigate: {
		Name:            "Frigate",
		MaxHealth:       100,
		Strength:        1.5,
		Defense:         5,
		Speed:           3,
		Range:           2,
		CollectMult:     1.2,
		TierValue:       2,
		Ability:         "broadside",
		AbilityCooldown: 3,
		AbilityCharges:  2,
		Cost:            Resources{Gold: 120, Crew: 15, Cannons: 8, Supplies: 20, Wood: 80, Rum: 5},
	},
	ShipGalleon: {
		Name:            "Galleon",
		MaxHealth:       100,
		Strength:        2.2,
		Defense:         9,
		Speed:           2,
		Range:           2,
		CollectMult:     1.5,
		TierValue:       3,
		Ability:         "bulwark",
		AbilityCooldown: 3,
		AbilityCharges:  1,
		Cost:            Resources{Gold: 250, Crew: 30, Cannons: 16, Supplies: 40, Wood: 160, Rum: 12},
	},
	ShipFlagship: {
		Name:            "Flagship",
		MaxHealth:       100,
		Strength:        3.0,
		Defense:         14,
		Speed:           2,
		Range:           3,
		CollectMult:     1.8,
		TierValue:       4,
		Ability:         "rally",
		AbilityCooldown: 4,
		AbilityCharges:  1,
		Cost:            Resources{Gold: 500, Crew: 60, Cannons: 32, Supplies: 80, Wood: 300, Rum: 25},
	},
}

func specFor(t ShipType) (shipSpec, bool) {
	spec, ok := shipSpecs[t]
	return spec, ok
}

// ShipCost exposes the build cost table to collaborators (UI, planner).
func ShipCost(t ShipType) (Resources, bool) {
	spec, ok := shipSpecs[t]
	return spec.Cost, ok
}

func AllShipTypes() []ShipType {
	return []ShipType{ShipScout, ShipFrigate, ShipGalleon, ShipFlagship}
}

func ValidShipType(t ShipType) bool {
	_, ok := shipSpecs[t]
	return ok
}

// StatusEffect is a timed modifier ticked once per full turn cycle.
type StatusEffect struct {
	Name           string `json:"name"`
	TurnsRemaining int    `json:"turns_remaining"`
	DamagePerTurn  int    `json:"damage_per_turn,omitempty"`
	SpeedPenalty   int    `json:"speed_penalty,omitempty"`
}

type AbilityState struct {
	Name     string `json:"name"`
	Cooldown int    `json:"cooldown"`
	Charges  int    `json:"charges"`
}

type Ship struct {
	ID        string         `json:"id"`
	Type      ShipType       `json:"type"`
	Health    int            `json:"health"`
	MaxHealth int            `json:"max_health"`
	Attack    float64        `json:"attack"`
	Defense   int            `json:"defense"`
	Speed     int            `json:"speed"`
	Range     int            `json:"range"`
	Pos       Coordinate     `json:"pos"`
	Ability   AbilityState   `json:"ability"`
	Effects   []StatusEffect `json:"effects,omitempty"`
}

func newShip(id string, t ShipType, pos Coordinate) Ship {
	spec := shipSpecs[t]
	return Ship{
		ID:        id,
		Type:      t,
		Health:    spec.MaxHealth,
		MaxHealth: spec.MaxHealth,
		Attack:    spec.Strength,
		Defense:   spec.Defense,
		Speed:     spec.Speed,
		Range:     spec.Range,
		Pos:       pos,
		Ability: AbilityState{
			Name:    spec.Ability,
			Charges: spec.AbilityCharges,
		},
	}
}

// Alive reports whether the ship can still act. Destroyed ships stay in the
// roster for record-keeping but are excluded from movement, combat, and
// claiming.
func (s Ship) Alive() bool {
	return s.Health > 0
}

func (s Ship) speedPenalty() int {
	penalty := 0
	for _, effect := range s.Effects {
		if effect.TurnsRemaining > 0 {
			penalty += effect.SpeedPenalty
		}
	}
	return penalty
}

// damage applies n points of hull damage, clamping at zero, and reports
// whether the ship was destroyed by this hit.
func (s *Ship) damage(n int) bool {
	if n < 0 {
		n = 0
	}
	wasAlive := s.Alive()
	s.Health = clamp(s.Health-n, 0, s.MaxHealth)
	return wasAlive && s.Health == 0
}

func (s *Ship) heal(n int) {
	s.Health = clamp(s.Health+n, 0, s.MaxHealth)
}

func (s Ship) Clone() Ship {
	out := s
	if len(s.Effects) > 0 {
		out.Effects = make([]StatusEffect, len(s.Effects))
		copy(out.Effects, s.Effects)
	}
	return out
}
