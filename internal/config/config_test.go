package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/broadside-games/armada/internal/game"
)

func writeMatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write match file: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(m.Players) != 2 {
		t.Fatalf("default roster should have 2 players, got %d", len(m.Players))
	}
	if !m.Players[1].AI {
		t.Fatalf("default rival should be AI controlled")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeMatchFile(t, `
map_size: 14
max_turns: 60
seed: 1234
ai_delay_ms: 100
players:
  - id: anne
    name: Anne Bonny
  - id: edward
    name: Edward Teach
    ai: true
    tier: admiral
  - id: mary
    name: Mary Read
    ai: true
    tier: novice
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if m.MapSize != 14 || m.MaxTurns != 60 || m.Seed != 1234 || m.AIDelayMS != 100 {
		t.Fatalf("overrides not applied: %+v", m)
	}
	if len(m.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(m.Players))
	}

	cfg := m.GameConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("converted config invalid: %v", err)
	}
	if cfg.Players[1].Tier != game.TierAdmiral {
		t.Fatalf("tier not carried: %s", cfg.Players[1].Tier)
	}
}

func TestLoadRejectsUnknownTier(t *testing.T) {
	path := writeMatchFile(t, `
players:
  - id: anne
  - id: edward
    ai: true
    tier: legendary
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unknown tier")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestGameConfigNameFallback(t *testing.T) {
	m := Match{Players: []Player{{ID: "solo"}}}
	cfg := m.GameConfig()
	if cfg.Players[0].Name != "solo" {
		t.Fatalf("expected the id to stand in for a missing name, got %q", cfg.Players[0].Name)
	}
}
