package game

import "math/rand/v2"

// Advance moves the turn pointer to the next player who still has a living
// ship, ticking per-player upkeep on the way. The turn counter increments
// and weather ticks exactly once per full roster wrap. If the scan comes
// back around to the current player, they are the only fleet left and the
// caller's terminal check will close the match.
func Advance(state GameState, rng *rand.Rand) GameState {
	next := state.Clone()
	if next.Status != StatusActive {
		return next
	}

	for i := range next.Players {
		player := &next.Players[i]
		player.ScanCharges = clamp(player.ScanCharges+1, 0, maxScanCharges)
		player.MomentumHot = false
		tickFleet(player)
		if player.Active && player.LivingShips() == 0 {
			player.Active = false
			next.logEvent("%s has no ships left and is out of the fight.", player.Name)
		}
	}

	roster := len(next.Players)
	wrapped := false
	for step := 1; step <= roster; step++ {
		idx := (next.Turn + step) % roster
		candidate := next.Players[idx]
		if !candidate.Active || candidate.LivingShips() == 0 {
			continue
		}
		if next.Turn+step >= roster {
			wrapped = true
		}
		next.Turn = idx
		break
	}

	if wrapped {
		next.TurnNumber++
		next.Weather = tickWeather(next.Weather, rng)
		next.logEvent("Turn %d begins; the weather is %s.", next.TurnNumber, next.Weather.Type)
	}

	return next
}

// tickFleet advances ability cooldowns and timed status effects for every
// living ship; destroyed hulls stay frozen for the record.
func tickFleet(player *Player) {
	for i := range player.Ships {
		ship := &player.Ships[i]
		if !ship.Alive() {
			continue
		}
		if ship.Ability.Cooldown > 0 {
			ship.Ability.Cooldown--
		}

		remaining := ship.Effects[:0]
		for _, effect := range ship.Effects {
			if effect.TurnsRemaining <= 0 {
				continue
			}
			if effect.DamagePerTurn > 0 {
				ship.damage(effect.DamagePerTurn)
			}
			effect.TurnsRemaining--
			if effect.TurnsRemaining > 0 {
				remaining = append(remaining, effect)
			}
		}
		if len(remaining) == 0 {
			ship.Effects = nil
		} else {
			ship.Effects = remaining
		}
	}
}
