package grid

import "math/rand"

// PlaceMines seeds count mines, never on (excludeR, excludeC), and computes
// adjacency counts. Sparse boards use rejection sampling over the whole grid;
// when mines would fill more than half of the candidate cells the candidates
// are shuffled instead so placement always finishes in one pass.
// It returns false if mines were already placed.
func (g *Grid) PlaceMines(rng *rand.Rand, excludeR, excludeC, count int) bool {
	if g.placed {
		return false
	}
	total := g.rows * g.cols
	if count > total-1 {
		count = total - 1
	}
	if count < 0 {
		count = 0
	}

	if count*2 > total-1 {
		g.shuffleMines(rng, excludeR, excludeC, count)
	} else {
		placed := 0
		for placed < count {
			r := rng.Intn(g.rows)
			c := rng.Intn(g.cols)
			if g.cells[r][c].mine || (r == excludeR && c == excludeC) {
				continue
			}
			g.cells[r][c].mine = true
			placed++
		}
	}

	g.mines = count
	g.placed = true
	g.ComputeNeighborCounts()
	return true
}

func (g *Grid) shuffleMines(rng *rand.Rand, excludeR, excludeC, count int) {
	candidates := make([]Position, 0, g.rows*g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if r == excludeR && c == excludeC {
				continue
			}
			candidates = append(candidates, Position{r, c})
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates[:count] {
		g.cells[p.Row][p.Col].mine = true
	}
}

// PlaceMinesAt places mines on exactly the given positions. Out of bounds and
// duplicate positions are ignored.
func (g *Grid) PlaceMinesAt(positions ...Position) bool {
	if g.placed {
		return false
	}
	for _, p := range positions {
		if !g.InBounds(p.Row, p.Col) || g.cells[p.Row][p.Col].mine {
			continue
		}
		g.cells[p.Row][p.Col].mine = true
		g.mines++
	}
	g.placed = true
	g.ComputeNeighborCounts()
	return true
}

// ComputeNeighborCounts sets every non-mine cell's adjacency count.
func (g *Grid) ComputeNeighborCounts() {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].mine {
				continue
			}
			count := 0
			g.around(r, c, func(nr, nc int) {
				if g.cells[nr][nc].mine {
					count++
				}
			})
			g.cells[r][c].adjacent = count
		}
	}
}
