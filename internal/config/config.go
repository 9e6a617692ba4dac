// Package config loads match setup files. A match file is YAML describing
// the board, the turn limit, and the roster; anything omitted falls back to
// the engine defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/broadside-games/armada/internal/game"
)

type Player struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	AI   bool   `yaml:"ai"`
	Tier string `yaml:"tier"`
}

type Match struct {
	MapSize   int      `yaml:"map_size"`
	MaxTurns  int      `yaml:"max_turns"`
	Seed      int64    `yaml:"seed"`
	AIDelayMS int      `yaml:"ai_delay_ms"`
	Players   []Player `yaml:"players"`
}

// Default is the out-of-the-box match: a human captain against a veteran.
func Default() Match {
	return Match{
		AIDelayMS: 600,
		Players: []Player{
			{ID: "player", Name: "Captain"},
			{ID: "rival", Name: "Rival Admiral", AI: true, Tier: string(game.TierVeteran)},
		},
	}
}

// Load reads a match file and fills gaps from the defaults. A missing path
// returns the defaults untouched.
func Load(path string) (Match, error) {
	m := Default()
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read match file: %w", err)
	}
	loaded := Match{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return m, fmt.Errorf("parse match file %s: %w", path, err)
	}

	if loaded.MapSize != 0 {
		m.MapSize = loaded.MapSize
	}
	if loaded.MaxTurns != 0 {
		m.MaxTurns = loaded.MaxTurns
	}
	if loaded.Seed != 0 {
		m.Seed = loaded.Seed
	}
	if loaded.AIDelayMS != 0 {
		m.AIDelayMS = loaded.AIDelayMS
	}
	if len(loaded.Players) > 0 {
		m.Players = loaded.Players
	}

	if err := m.validate(); err != nil {
		return Default(), err
	}
	return m, nil
}

func (m Match) validate() error {
	for i, p := range m.Players {
		if p.ID == "" {
			return fmt.Errorf("player %d: id is required", i+1)
		}
		if p.AI && p.Tier != "" && !game.ValidTier(game.AITier(p.Tier)) {
			return fmt.Errorf("player %s: unknown tier %q", p.ID, p.Tier)
		}
	}
	return nil
}

// GameConfig converts the match file into the engine's setup type; the
// engine re-validates and applies its own defaults.
func (m Match) GameConfig() game.GameConfig {
	players := make([]game.PlayerSetup, 0, len(m.Players))
	for _, p := range m.Players {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		players = append(players, game.PlayerSetup{
			ID:   p.ID,
			Name: name,
			AI:   p.AI,
			Tier: game.AITier(p.Tier),
		})
	}
	return game.GameConfig{
		MapSize:  m.MapSize,
		MaxTurns: m.MaxTurns,
		Seed:     m.Seed,
		Players:  players,
	}
}
