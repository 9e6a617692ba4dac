package game

import "math"

type TerrainType string

const (
	TerrainWater     TerrainType = "water"
	TerrainIsland    TerrainType = "island"
	TerrainPort      TerrainType = "port"
	TerrainTreasure  TerrainType = "treasure"
	TerrainStorm     TerrainType = "storm"
	TerrainReef      TerrainType = "reef"
	TerrainWhirlpool TerrainType = "whirlpool"
)

func (t TerrainType) IsHazard() bool {
	switch t {
	case TerrainStorm, TerrainReef, TerrainWhirlpool:
		return true
	default:
		return false
	}
}

// Navigable reports whether ships may enter the terrain. Hazard tiles are
// passable but risky; entry damage is resolved by location events, not here.
func (t TerrainType) Navigable() bool {
	switch t {
	case TerrainWater, TerrainIsland, TerrainPort, TerrainTreasure,
		TerrainStorm, TerrainReef, TerrainWhirlpool:
		return true
	default:
		return false
	}
}

type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo is the Euclidean distance, used for attack range and treasure
// isolation checks.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// GridDistanceTo is the Chebyshev distance, used for movement where diagonal
// steps cost the same as orthogonal ones.
func (c Coordinate) GridDistanceTo(other Coordinate) int {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func (c Coordinate) AdjacentTo(other Coordinate) bool {
	return c != other && c.GridDistanceTo(other) <= 1
}

type TerrainCell struct {
	Type      TerrainType `json:"type"`
	Owner     string      `json:"owner,omitempty"`
	Yield     Resources   `json:"yield"`
	Contested bool        `json:"contested,omitempty"`
}

// Grid is a fixed-size square board stored as a flat slice; (x, y) maps to
// index y*Size+x.
type Grid struct {
	Size  int           `json:"size"`
	Cells []TerrainCell `json:"cells"`
}

func (g Grid) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.Size || y >= g.Size {
		return 0, false
	}
	idx := y*g.Size + x
	if idx >= len(g.Cells) {
		return 0, false
	}
	return idx, true
}

func (g Grid) InBounds(c Coordinate) bool {
	_, ok := g.index(c.X, c.Y)
	return ok
}

func (g Grid) At(c Coordinate) (TerrainCell, bool) {
	idx, ok := g.index(c.X, c.Y)
	if !ok {
		return TerrainCell{}, false
	}
	return g.Cells[idx], true
}

// cellAt returns a mutable pointer into the grid. Callers must only use it
// on a cloned state.
func (g *Grid) cellAt(c Coordinate) (*TerrainCell, bool) {
	idx, ok := g.index(c.X, c.Y)
	if !ok {
		return nil, false
	}
	return &g.Cells[idx], true
}

func (g Grid) Clone() Grid {
	cells := make([]TerrainCell, len(g.Cells))
	copy(cells, g.Cells)
	return Grid{Size: g.Size, Cells: cells}
}

// OwnedCellCounts tallies claimed cells per owner, used by the domination
// terminal check.
func (g Grid) OwnedCellCounts() map[string]int {
	counts := make(map[string]int)
	for i := range g.Cells {
		if g.Cells[i].Owner != "" {
			counts[g.Cells[i].Owner]++
		}
	}
	return counts
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(number, min, max int) int {
	if number < min {
		return min
	}

	if number > max {
		return max
	}

	return number
}
