package game

import (
	"fmt"
	"math"
	"strings"
)

// Resources is the fixed tuple of stockpile counters. All counters stay
// non-negative; affordability is checked before any debit.
type Resources struct {
	Gold     int `json:"gold"`
	Crew     int `json:"crew"`
	Cannons  int `json:"cannons"`
	Supplies int `json:"supplies"`
	Wood     int `json:"wood"`
	Rum      int `json:"rum"`
}

func (r Resources) CanAfford(cost Resources) bool {
	return r.Gold >= cost.Gold &&
		r.Crew >= cost.Crew &&
		r.Cannons >= cost.Cannons &&
		r.Supplies >= cost.Supplies &&
		r.Wood >= cost.Wood &&
		r.Rum >= cost.Rum
}

func (r Resources) Add(other Resources) Resources {
	return Resources{
		Gold:     r.Gold + other.Gold,
		Crew:     r.Crew + other.Crew,
		Cannons:  r.Cannons + other.Cannons,
		Supplies: r.Supplies + other.Supplies,
		Wood:     r.Wood + other.Wood,
		Rum:      r.Rum + other.Rum,
	}
}

// Sub debits cost from r. Callers must check CanAfford first; results are
// clamped at zero as a last line of defense for the non-negativity invariant.
func (r Resources) Sub(cost Resources) Resources {
	return Resources{
		Gold:     maxInt(0, r.Gold-cost.Gold),
		Crew:     maxInt(0, r.Crew-cost.Crew),
		Cannons:  maxInt(0, r.Cannons-cost.Cannons),
		Supplies: maxInt(0, r.Supplies-cost.Supplies),
		Wood:     maxInt(0, r.Wood-cost.Wood),
		Rum:      maxInt(0, r.Rum-cost.Rum),
	}
}

func (r Resources) Scale(mult float64) Resources {
	return Resources{
		Gold:     scaleCounter(r.Gold, mult),
		Crew:     scaleCounter(r.Crew, mult),
		Cannons:  scaleCounter(r.Cannons, mult),
		Supplies: scaleCounter(r.Supplies, mult),
		Wood:     scaleCounter(r.Wood, mult),
		Rum:      scaleCounter(r.Rum, mult),
	}
}

func (r Resources) IsZero() bool {
	return r == Resources{}
}

// Value is the weighted worth of a stockpile used by end-of-game scoring and
// AI standing assessment.
func (r Resources) Value() int {
	return r.Gold + 2*r.Crew + 3*r.Cannons + r.Supplies + r.Wood + 2*r.Rum
}

func (r Resources) String() string {
	parts := make([]string, 0, 6)
	appendPart := func(n int, label string) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	appendPart(r.Gold, "gold")
	appendPart(r.Crew, "crew")
	appendPart(r.Cannons, "cannons")
	appendPart(r.Supplies, "supplies")
	appendPart(r.Wood, "wood")
	appendPart(r.Rum, "rum")
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

func scaleCounter(n int, mult float64) int {
	if n == 0 {
		return 0
	}
	scaled := int(math.Round(float64(n) * mult))
	if scaled < 0 {
		return 0
	}
	return scaled
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
