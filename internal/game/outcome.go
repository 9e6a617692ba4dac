package game

import "math"

// dominationShare is the fraction of all claimed territory one player must
// hold (while keeping a living ship) to win outright.
const dominationShare = 0.75

type Outcome struct {
	Over     bool
	Draw     bool
	WinnerID string
	Reason   string
}

// EvaluateOutcome checks the terminal conditions in order: last fleet
// standing, mutual destruction, turn limit (decided by weighted score), and
// territorial domination. Callers run it after every processed turn.
func EvaluateOutcome(state GameState) Outcome {
	if state.Status == StatusCompleted {
		return Outcome{Over: true, WinnerID: state.WinnerID, Draw: state.WinnerID == "", Reason: "already completed"}
	}
	if state.Status != StatusActive {
		return Outcome{}
	}

	survivors := make([]*Player, 0, len(state.Players))
	for i := range state.Players {
		if state.Players[i].LivingShips() > 0 {
			survivors = append(survivors, &state.Players[i])
		}
	}

	switch len(survivors) {
	case 0:
		return Outcome{Over: true, Draw: true, Reason: "mutual destruction"}
	case 1:
		return Outcome{Over: true, WinnerID: survivors[0].ID, Reason: "last fleet standing"}
	}

	if state.TurnNumber >= state.MaxTurns {
		winner := ""
		best := math.Inf(-1)
		for i := range state.Players {
			score := matchScore(state, state.Players[i])
			if score > best {
				best = score
				winner = state.Players[i].ID
			}
		}
		return Outcome{Over: true, WinnerID: winner, Reason: "turn limit reached"}
	}

	claimed := state.Grid.OwnedCellCounts()
	total := 0
	for _, n := range claimed {
		total += n
	}
	if total > 0 {
		for _, survivor := range survivors {
			if float64(claimed[survivor.ID]) >= float64(total)*dominationShare {
				return Outcome{Over: true, WinnerID: survivor.ID, Reason: "territorial domination"}
			}
		}
	}

	return Outcome{}
}

// matchScore is the turn-limit tiebreak: live ships, aggregate hull,
// territory, and stockpile value, with military strength re-weighted upward
// as the match ages and a catch-up term for players trailing the field.
func matchScore(state GameState, player Player) float64 {
	live := player.LivingShips()
	military := float64(live*80 + player.FleetHealth())
	militaryWeight := 1.0
	if state.MaxTurns > 0 {
		militaryWeight += math.Min(1.0, float64(state.TurnNumber)/float64(state.MaxTurns))
	}

	score := military*militaryWeight +
		float64(len(player.Territory)*45) +
		float64(player.Resources.Value())/4 +
		float64(player.Score)/2

	avgTerritory, avgFleet := fieldAverages(&state)
	standing := float64(len(player.Territory)) + float64(live)
	if avg := avgTerritory + avgFleet; standing < avg {
		score += (avg - standing) * 30
	}

	return score
}

// Conclude stamps a decided outcome onto the state, moving it to completed.
func Conclude(state GameState, outcome Outcome) GameState {
	if !outcome.Over {
		return state
	}
	next := state.Clone()
	next.Status = StatusCompleted
	next.WinnerID = outcome.WinnerID
	if outcome.Draw {
		next.logEvent("The match ends in a draw: %s.", outcome.Reason)
	} else if winner, ok := next.playerByID(outcome.WinnerID); ok {
		next.logEvent("%s wins: %s.", winner.Name, outcome.Reason)
	}
	return next
}
