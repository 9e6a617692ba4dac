package game

import "math/rand/v2"

type WeatherType string

const (
	WeatherCalm       WeatherType = "calm"
	WeatherTradeWinds WeatherType = "trade_winds"
	WeatherStorm      WeatherType = "storm"
	WeatherFog        WeatherType = "fog"
)

// WeatherEffect carries the multipliers applied by movement, collection, and
// combat resolution. The turn controller only rolls and ticks it.
type WeatherEffect struct {
	Type         WeatherType `json:"type"`
	Duration     int         `json:"duration"`
	MoveMult     float64     `json:"move_mult"`
	ResourceMult float64     `json:"resource_mult"`
	DamageMult   float64     `json:"damage_mult"`
}

var weatherEffects = map[WeatherType]WeatherEffect{
	WeatherCalm:       {Type: WeatherCalm, MoveMult: 1.0, ResourceMult: 1.0, DamageMult: 1.0},
	WeatherTradeWinds: {Type: WeatherTradeWinds, MoveMult: 1.25, ResourceMult: 1.1, DamageMult: 1.0},
	WeatherStorm:      {Type: WeatherStorm, MoveMult: 0.75, ResourceMult: 0.9, DamageMult: 1.15},
	WeatherFog:        {Type: WeatherFog, MoveMult: 0.9, ResourceMult: 1.0, DamageMult: 0.85},
}

var weatherTypes = []WeatherType{WeatherCalm, WeatherTradeWinds, WeatherStorm, WeatherFog}

func initialWeather() WeatherEffect {
	w := weatherEffects[WeatherCalm]
	w.Duration = 3
	return w
}

func rollWeather(rng *rand.Rand) WeatherEffect {
	w := weatherEffects[weatherTypes[rng.IntN(len(weatherTypes))]]
	w.Duration = 2 + rng.IntN(3)
	return w
}

// tickWeather decrements the current effect and re-rolls on expiry, or early
// with a 15% chance regardless of remaining duration.
func tickWeather(current WeatherEffect, rng *rand.Rand) WeatherEffect {
	current.Duration--
	if current.Duration <= 0 || rng.Float64() < 0.15 {
		return rollWeather(rng)
	}
	return current
}
