package game

import (
	"fmt"
)

const (
	minPlayers     = 2
	maxPlayers     = 4
	minMapSize     = 6
	maxMapSize     = 24
	defaultMapSize = 10
	defaultTurns   = 100
)

type PlayerSetup struct {
	ID   string
	Name string
	AI   bool
	Tier AITier
}

// GameConfig describes one match. Zero values resolve to engine defaults in
// NewGame; Validate only rejects settings that cannot be defaulted away.
type GameConfig struct {
	ID       string
	MapSize  int
	MaxTurns int
	Seed     int64
	Players  []PlayerSetup
}

func (c GameConfig) Validate() error {
	if len(c.Players) < 1 {
		return fmt.Errorf("at least one player required")
	}
	if len(c.Players) > maxPlayers {
		return fmt.Errorf("player count must be at most %d, got %d", maxPlayers, len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	for _, player := range c.Players {
		if player.ID == "" {
			return fmt.Errorf("player id must not be empty")
		}
		if seen[player.ID] {
			return fmt.Errorf("duplicate player id: %s", player.ID)
		}
		seen[player.ID] = true
		if player.AI && player.Tier != "" && !ValidTier(player.Tier) {
			return fmt.Errorf("invalid AI tier for player %s: %s", player.ID, player.Tier)
		}
	}

	if c.MapSize != 0 && (c.MapSize < minMapSize || c.MapSize > maxMapSize) {
		return fmt.Errorf("map size must be between %d and %d, got %d", minMapSize, maxMapSize, c.MapSize)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("max turns must not be negative, got %d", c.MaxTurns)
	}

	return nil
}
