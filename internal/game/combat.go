package game

import (
	"math"
	"math/rand/v2"
)

// Combat resolver: pure functions shared by the action processor and the AI
// planner so scoring and execution never diverge.

const (
	// momentumStreak is the consecutive-attack count at which the bonus
	// kicks in. Momentum is an intentional balance mechanic; do not tune
	// without product confirmation.
	momentumStreak     = 2
	momentumMultiplier = 1.25

	criticalChance     = 0.10
	criticalMultiplier = 1.5

	// attackRangeSlack lets every integer range tier reach its full
	// diagonal, e.g. range 1 covers all 8 neighbors.
	attackRangeSlack = 1.5
)

func withinAttackRange(attacker, target Coordinate, weaponRange int) bool {
	return attacker.DistanceTo(target) <= float64(weaponRange)*attackRangeSlack
}

// baseDamage is the deterministic core of the damage formula, floored at 1
// so a legal attack always lands something regardless of defense magnitude.
func baseDamage(attacker, defender Ship) float64 {
	dmg := attacker.Attack*20*(float64(attacker.Health)/100) -
		float64(defender.Defense)*(defender.Attack/10)
	if dmg < 1 {
		return 1
	}
	return dmg
}

// combatVariance swings each hit by ±10% and ramps damage up as the match
// ages, capped at +30%, so late games close out rather than stalemate.
func combatVariance(turnNumber int, rng *rand.Rand) float64 {
	swing := 0.9 + rng.Float64()*0.2
	ramp := 1 + math.Min(0.3, float64(turnNumber)*0.005)
	return swing * ramp
}

// resolveDamage applies variance, momentum, the critical roll, and the
// weather damage multiplier to the base formula. Returns the final hull
// damage (never below 1) and whether the hit was critical.
func resolveDamage(attacker, defender Ship, turnNumber, attackerMomentum int, weather WeatherEffect, rng *rand.Rand) (int, bool) {
	dmg := baseDamage(attacker, defender)
	dmg *= combatVariance(turnNumber, rng)
	if attackerMomentum >= momentumStreak {
		dmg *= momentumMultiplier
	}
	critical := rng.Float64() < criticalChance
	if critical {
		dmg *= criticalMultiplier
	}
	dmg *= weather.DamageMult

	final := int(math.Round(dmg))
	if final < 1 {
		final = 1
	}
	return final, critical
}
