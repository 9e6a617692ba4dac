package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/broadside-games/armada/internal/config"
	"github.com/broadside-games/armada/internal/game"
	"github.com/broadside-games/armada/internal/tui"
)

// version and commit are injected at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var (
		showVersion bool
		matchFile   string
		mapSize     int
		maxTurns    int
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&matchFile, "match", "", "path to a match YAML file")
	flag.IntVar(&mapSize, "size", 0, "map size (overrides the match file)")
	flag.IntVar(&maxTurns, "turns", 0, "turn limit (overrides the match file)")
	flag.Int64Var(&seed, "seed", 0, "world seed (overrides the match file)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Armada %s (%s)\n", version, commit)
		return
	}

	match, err := config.Load(matchFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if mapSize != 0 {
		match.MapSize = mapSize
	}
	if maxTurns != 0 {
		match.MaxTurns = maxTurns
	}
	if seed != 0 {
		match.Seed = seed
	}

	state, err := game.NewGame(match.GameConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	delay := time.Duration(match.AIDelayMS) * time.Millisecond
	if err := tui.Run(state, delay); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
