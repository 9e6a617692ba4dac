package game

import "testing"

func TestGenerateGridDimensions(t *testing.T) {
	for _, size := range []int{6, 10, 16, 24} {
		grid := GenerateGrid(size, subRNG(1, "mapgen"))
		if grid.Size != size {
			t.Fatalf("size %d: grid.Size = %d", size, grid.Size)
		}
		if len(grid.Cells) != size*size {
			t.Fatalf("size %d: expected %d cells, got %d", size, size*size, len(grid.Cells))
		}
		for i, cell := range grid.Cells {
			switch cell.Type {
			case TerrainWater, TerrainIsland, TerrainPort, TerrainTreasure,
				TerrainStorm, TerrainReef, TerrainWhirlpool:
			default:
				t.Fatalf("size %d: cell %d has unknown terrain %q", size, i, cell.Type)
			}
		}
	}
}

func TestGenerateGridSeedPlacement(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		_, seeds := generateGrid(10, subRNG(seed, "mapgen"))
		for i, a := range seeds {
			if a.X < mapEdgeMargin || a.Y < mapEdgeMargin ||
				a.X >= 10-mapEdgeMargin || a.Y >= 10-mapEdgeMargin {
				t.Errorf("seed %d: island seed (%d,%d) too close to the edge", seed, a.X, a.Y)
			}
			for _, b := range seeds[i+1:] {
				if a.DistanceTo(b) < minSeedSpacing {
					t.Errorf("seed %d: island seeds (%d,%d) and (%d,%d) closer than %.1f",
						seed, a.X, a.Y, b.X, b.Y, minSeedSpacing)
				}
			}
		}
	}
}

func TestGenerateGridTreasureIsolated(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		grid, seeds := generateGrid(10, subRNG(seed, "mapgen"))
		for y := 0; y < grid.Size; y++ {
			for x := 0; x < grid.Size; x++ {
				cell, _ := grid.At(Coordinate{X: x, Y: y})
				if cell.Type != TerrainTreasure {
					continue
				}
				for _, s := range seeds {
					if (Coordinate{X: x, Y: y}).DistanceTo(s) <= treasureMinSeedDist {
						t.Errorf("seed %d: treasure at (%d,%d) within %.1f of island seed (%d,%d)",
							seed, x, y, treasureMinSeedDist, s.X, s.Y)
					}
				}
			}
		}
	}
}

func TestGenerateGridHazardBudget(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		grid := GenerateGrid(12, subRNG(seed, "mapgen"))
		hazards := 0
		for _, cell := range grid.Cells {
			if cell.Type.IsHazard() {
				hazards++
			}
		}
		limit := int(float64(len(grid.Cells)) * hazardFraction)
		if hazards > limit {
			t.Errorf("seed %d: %d hazard cells exceeds budget %d", seed, hazards, limit)
		}
	}
}

func TestGenerateGridYieldsMatchTerrain(t *testing.T) {
	grid := GenerateGrid(10, subRNG(3, "mapgen"))
	for i, cell := range grid.Cells {
		if cell.Yield != terrainYield(cell.Type) {
			t.Fatalf("cell %d: yield %+v does not match %s terrain", i, cell.Yield, cell.Type)
		}
	}
}

func TestGenerateGridDeterministic(t *testing.T) {
	a := GenerateGrid(10, subRNG(5, "mapgen"))
	b := GenerateGrid(10, subRNG(5, "mapgen"))
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("same seed produced diverging grids at cell %d", i)
		}
	}
}

func TestGenerateGridClampsTinySizes(t *testing.T) {
	grid := GenerateGrid(2, subRNG(1, "mapgen"))
	want := mapEdgeMargin*2 + 2
	if grid.Size != want {
		t.Fatalf("expected tiny sizes clamped to %d, got %d", want, grid.Size)
	}
}

func TestGenerateGridTreasureCount(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		grid := GenerateGrid(10, subRNG(seed, "mapgen"))
		count := 0
		for _, cell := range grid.Cells {
			if cell.Type == TerrainTreasure {
				count++
			}
		}
		if count != treasureTarget {
			t.Errorf("seed %d: %d treasure cells, want %d", seed, count, treasureTarget)
		}
	}
}

func TestPlaceHazardsOnlyConvertsWater(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := subRNG(seed, "mapgen")
		size := 10
		cells := make([]TerrainCell, size*size)
		for i := range cells {
			cells[i] = TerrainCell{Type: TerrainWater}
		}
		grid := Grid{Size: size, Cells: cells}
		seeds := placeIslandSeeds(&grid, size/3+1, rng)
		growIslands(&grid, seeds, rng)
		placeTreasure(&grid, seeds, rng)

		before := make([]TerrainType, len(grid.Cells))
		for i, cell := range grid.Cells {
			before[i] = cell.Type
		}
		placeHazards(&grid, rng)
		for i, cell := range grid.Cells {
			if before[i] != TerrainWater && cell.Type != before[i] {
				t.Errorf("seed %d: hazard pass rewrote cell %d from %q to %q",
					seed, i, before[i], cell.Type)
			}
		}
	}
}
