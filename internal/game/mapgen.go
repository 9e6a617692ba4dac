package game

import "math/rand/v2"

// Map generation tuning. Placement shortfalls are accepted silently: a
// playable map always beats exact quota satisfaction.
const (
	mapEdgeMargin       = 2
	minSeedSpacing      = 3.0
	seedAttemptBudget   = 20
	treasureTarget      = 3
	treasureMinSeedDist = 2.5
	treasureAttempts    = 50
	hazardFraction      = 0.15
)

// GenerateGrid produces an organic terrain layout: clustered islands with
// ports on their shores, isolated treasure in open water, and hazards
// scattered over what remains plain water.
func GenerateGrid(size int, rng *rand.Rand) Grid {
	grid, _ := generateGrid(size, rng)
	return grid
}

func generateGrid(size int, rng *rand.Rand) (Grid, []Coordinate) {
	if size < mapEdgeMargin*2+2 {
		size = mapEdgeMargin*2 + 2
	}

	cells := make([]TerrainCell, size*size)
	for i := range cells {
		cells[i] = TerrainCell{Type: TerrainWater}
	}
	grid := Grid{Size: size, Cells: cells}

	seeds := placeIslandSeeds(&grid, size/3+1, rng)
	growIslands(&grid, seeds, rng)
	placeTreasure(&grid, seeds, rng)
	placeHazards(&grid, rng)

	for i := range grid.Cells {
		grid.Cells[i].Yield = terrainYield(grid.Cells[i].Type)
	}

	return grid, seeds
}

// placeIslandSeeds rejection-samples island centers, keeping each at least
// minSeedSpacing from the others and mapEdgeMargin cells off the edge. A
// failed seed ends placement; fewer seeds is a degraded outcome, not an
// error.
func placeIslandSeeds(grid *Grid, want int, rng *rand.Rand) []Coordinate {
	span := grid.Size - 2*mapEdgeMargin
	seeds := make([]Coordinate, 0, want)

	for len(seeds) < want {
		placed := false
		for attempt := 0; attempt < seedAttemptBudget; attempt++ {
			candidate := Coordinate{
				X: mapEdgeMargin + rng.IntN(span),
				Y: mapEdgeMargin + rng.IntN(span),
			}
			if tooCloseToSeeds(candidate, seeds) {
				continue
			}
			seeds = append(seeds, candidate)
			placed = true
			break
		}
		if !placed {
			break
		}
	}

	return seeds
}

func tooCloseToSeeds(c Coordinate, seeds []Coordinate) bool {
	for _, seed := range seeds {
		if c.DistanceTo(seed) < minSeedSpacing {
			return true
		}
	}
	return false
}

// growIslands marks each seed as island and rolls its 8 neighbors
// independently: 40% island, 30% port, else left as water.
func growIslands(grid *Grid, seeds []Coordinate, rng *rand.Rand) {
	for _, seed := range seeds {
		cell, _ := grid.cellAt(seed)
		cell.Type = TerrainIsland

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				neighbor, ok := grid.cellAt(Coordinate{X: seed.X + dx, Y: seed.Y + dy})
				if !ok || neighbor.Type != TerrainWater {
					continue
				}
				switch roll := rng.Float64(); {
				case roll < 0.40:
					neighbor.Type = TerrainIsland
				case roll < 0.70:
					neighbor.Type = TerrainPort
				}
			}
		}
	}
}

// placeTreasure drops up to treasureTarget treasure cells in open water,
// each farther than treasureMinSeedDist from every island seed.
func placeTreasure(grid *Grid, seeds []Coordinate, rng *rand.Rand) {
	for placed := 0; placed < treasureTarget; placed++ {
		found := false
		for attempt := 0; attempt < treasureAttempts; attempt++ {
			candidate := Coordinate{X: rng.IntN(grid.Size), Y: rng.IntN(grid.Size)}
			cell, _ := grid.cellAt(candidate)
			if cell.Type != TerrainWater {
				continue
			}
			if !isolatedFromSeeds(candidate, seeds) {
				continue
			}
			cell.Type = TerrainTreasure
			found = true
			break
		}
		if !found {
			break
		}
	}
}

func isolatedFromSeeds(c Coordinate, seeds []Coordinate) bool {
	for _, seed := range seeds {
		if c.DistanceTo(seed) <= treasureMinSeedDist {
			return false
		}
	}
	return true
}

// placeHazards converts roughly hazardFraction of the board to hazards, only
// ever touching cells that are still plain water.
func placeHazards(grid *Grid, rng *rand.Rand) {
	target := int(float64(grid.Size*grid.Size) * hazardFraction)
	budget := target * 8

	placed := 0
	for attempt := 0; attempt < budget && placed < target; attempt++ {
		idx := rng.IntN(len(grid.Cells))
		if grid.Cells[idx].Type != TerrainWater {
			continue
		}
		switch roll := rng.Float64(); {
		case roll < 0.40:
			grid.Cells[idx].Type = TerrainStorm
		case roll < 0.70:
			grid.Cells[idx].Type = TerrainReef
		default:
			grid.Cells[idx].Type = TerrainWhirlpool
		}
		placed++
	}
}
