// armada-sim runs headless AI-versus-AI matches for balance work: it plays
// a batch of seeded games, optionally records replays, and prints win rates
// per tier along with match length statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/broadside-games/armada/internal/config"
	"github.com/broadside-games/armada/internal/game"
	"github.com/broadside-games/armada/internal/replay"
)

func main() {
	var (
		matchFile  string
		games      int
		seed       int64
		replayDir  string
		actionsPer float64
		verbose    bool
	)

	flag.StringVar(&matchFile, "match", "", "path to a match YAML file")
	flag.IntVar(&games, "games", 10, "number of matches to simulate")
	flag.Int64Var(&seed, "seed", 1, "base seed; match n uses seed+n")
	flag.StringVar(&replayDir, "replays", "", "directory to write replay files into")
	flag.Float64Var(&actionsPer, "rate", 0, "throttle to this many actions per second (0 = unlimited)")
	flag.BoolVar(&verbose, "v", false, "log every match result")
	flag.Parse()

	match, err := config.Load(matchFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	roster := match.GameConfig()
	for i := range roster.Players {
		roster.Players[i].AI = true
		if roster.Players[i].Tier == "" {
			roster.Players[i].Tier = game.TierIntermediate
		}
	}

	var limiter *rate.Limiter
	if actionsPer > 0 {
		limiter = rate.NewLimiter(rate.Limit(actionsPer), 1)
	}

	report := newReport()
	start := time.Now()
	for n := 0; n < games; n++ {
		cfg := roster
		cfg.Seed = seed + int64(n)
		outcome, turns, err := runMatch(cfg, limiter, replayPath(replayDir, n))
		if err != nil {
			fmt.Fprintf(os.Stderr, "match %d: %v\n", n, err)
			os.Exit(1)
		}
		report.record(cfg, outcome, turns)
		if verbose {
			fmt.Printf("match %d (seed %d): %s after %d turns\n", n, cfg.Seed, describeOutcome(cfg, outcome), turns)
		}
	}

	report.print(os.Stdout, time.Since(start))
}

func replayPath(dir string, n int) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fmt.Sprintf("match-%04d.replay", n))
}

// runMatch plays one full game: every seat decides, acts, and the turn
// advances until a terminal condition fires or the turn limit is hit.
func runMatch(cfg game.GameConfig, limiter *rate.Limiter, replayFile string) (game.Outcome, int, error) {
	state, err := game.NewGame(cfg)
	if err != nil {
		return game.Outcome{}, 0, err
	}

	var rec *replay.Recorder
	if replayFile != "" {
		rec, err = replay.NewRecorder(replayFile)
		if err != nil {
			return game.Outcome{}, 0, err
		}
		defer rec.Close()
		if err := rec.Record(replay.Frame{Turn: state.TurnNumber, Kind: replay.FrameStart, Digest: state.Digest()}); err != nil {
			return game.Outcome{}, 0, err
		}
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)>>1|1))
	ctx := context.Background()

	// Hard cap well past the turn limit, in case every seat passes forever.
	for steps := 0; steps < cfg.MaxTurns*len(state.Players)*2+100; steps++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return game.Outcome{}, 0, err
			}
		}

		current, ok := state.CurrentPlayer()
		if !ok {
			break
		}

		thinkStart := time.Now()
		decision := game.Decide(state, current.ID, rng)
		state = game.RecordDecisionTime(state, current.ID, time.Since(thinkStart))

		if !decision.Pass {
			result := game.Apply(state, game.ActionRequest{
				GameID:    state.ID,
				PlayerID:  current.ID,
				Timestamp: time.Now(),
				Action:    decision.Action,
			}, rng)
			if result.Success {
				state = result.State
			}
			if rec != nil {
				if err := rec.Record(replay.Frame{
					Turn:    state.TurnNumber,
					Actor:   current.ID,
					Kind:    replay.FrameAction,
					Action:  string(decision.Action.Kind()),
					Message: result.Message,
					Digest:  state.Digest(),
				}); err != nil {
					return game.Outcome{}, 0, err
				}
			}
		}

		state = game.Advance(state, rng)
		if rec != nil {
			if err := rec.Record(replay.Frame{Turn: state.TurnNumber, Kind: replay.FrameAdvance, Digest: state.Digest()}); err != nil {
				return game.Outcome{}, 0, err
			}
		}

		if outcome := game.EvaluateOutcome(state); outcome.Over {
			state = game.Conclude(state, outcome)
			if rec != nil {
				if err := rec.Record(replay.Frame{Turn: state.TurnNumber, Kind: replay.FrameEnd, Message: outcome.Reason, Digest: state.Digest()}); err != nil {
					return game.Outcome{}, 0, err
				}
			}
			return outcome, state.TurnNumber, nil
		}
	}

	return game.Outcome{Over: true, Draw: true, Reason: "simulation step cap"}, state.TurnNumber, nil
}

func describeOutcome(cfg game.GameConfig, outcome game.Outcome) string {
	if outcome.Draw {
		return fmt.Sprintf("draw (%s)", outcome.Reason)
	}
	for _, p := range cfg.Players {
		if p.ID == outcome.WinnerID {
			return fmt.Sprintf("%s [%s] wins (%s)", p.Name, p.Tier, outcome.Reason)
		}
	}
	return fmt.Sprintf("%s wins (%s)", outcome.WinnerID, outcome.Reason)
}

type report struct {
	games      int
	draws      int
	winsByID   map[string]int
	tierByID   map[string]game.AITier
	reasons    map[string]int
	totalTurns int
}

func newReport() *report {
	return &report{
		winsByID: make(map[string]int),
		tierByID: make(map[string]game.AITier),
		reasons:  make(map[string]int),
	}
}

func (r *report) record(cfg game.GameConfig, outcome game.Outcome, turns int) {
	r.games++
	r.totalTurns += turns
	r.reasons[outcome.Reason]++
	for _, p := range cfg.Players {
		r.tierByID[p.ID] = p.Tier
	}
	if outcome.Draw {
		r.draws++
		return
	}
	r.winsByID[outcome.WinnerID]++
}

func (r *report) print(w *os.File, elapsed time.Duration) {
	if r.games == 0 {
		fmt.Fprintln(w, "no matches played")
		return
	}
	fmt.Fprintf(w, "\n%d matches in %s, avg length %.1f turns\n", r.games, elapsed.Round(time.Millisecond), float64(r.totalTurns)/float64(r.games))
	for id, tier := range r.tierByID {
		wins := r.winsByID[id]
		fmt.Fprintf(w, "  %-12s %-12s %3d wins (%.0f%%)\n", id, tier, wins, 100*float64(wins)/float64(r.games))
	}
	if r.draws > 0 {
		fmt.Fprintf(w, "  %-12s %-12s %3d (%.0f%%)\n", "draws", "", r.draws, 100*float64(r.draws)/float64(r.games))
	}
	fmt.Fprintln(w, "endings:")
	for reason, count := range r.reasons {
		fmt.Fprintf(w, "  %3d × %s\n", count, reason)
	}
}
