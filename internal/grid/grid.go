// Package grid holds the Minesweeper cell matrix and the algorithms that
// operate on it: mine placement, adjacency counting and flood-fill reveal.
// It has no notion of game state or rendering.
package grid

import "strings"

// Position addresses a cell by row and column.
type Position struct {
	Row, Col int
}

// Cell is a read-only copy of one square of the grid.
type Cell struct {
	Position
	Mine      bool
	Revealed  bool
	Flagged   bool
	Exploded  bool
	WrongFlag bool
	Adjacent  int
}

type cell struct {
	mine      bool
	revealed  bool
	flagged   bool
	exploded  bool
	wrongFlag bool
	adjacent  int
}

// Grid is a rows x cols matrix of cells.
type Grid struct {
	rows, cols  int
	cells       [][]cell
	mines       int
	placed      bool
	revealedCnt int
	flagsCnt    int
}

// New returns a grid with every cell in its default state.
func New(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols}
	g.cells = make([][]cell, rows)
	for r := range g.cells {
		g.cells[r] = make([]cell, cols)
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// MineCount is the number of mines placed so far.
func (g *Grid) MineCount() int { return g.mines }

// Placed reports whether mines have been placed.
func (g *Grid) Placed() bool { return g.placed }

// RevealedCount counts revealed non-mine cells.
func (g *Grid) RevealedCount() int { return g.revealedCnt }

// FlagCount counts currently flagged cells.
func (g *Grid) FlagCount() int { return g.flagsCnt }

func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && c >= 0 && r < g.rows && c < g.cols
}

// CellAt returns a copy of the cell at (r, c). Out of bounds positions
// yield the zero Cell.
func (g *Grid) CellAt(r, c int) Cell {
	if !g.InBounds(r, c) {
		return Cell{}
	}
	return g.export(r, c)
}

// ForEachCell calls fn for every cell in row-major order.
func (g *Grid) ForEachCell(fn func(Cell)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			fn(g.export(r, c))
		}
	}
}

// Neighbors returns the in-bounds Chebyshev neighbors of (r, c).
func (g *Grid) Neighbors(r, c int) []Position {
	out := make([]Position, 0, 8)
	g.around(r, c, func(nr, nc int) {
		out = append(out, Position{nr, nc})
	})
	return out
}

// ToggleFlag flips the flag on an unrevealed cell. It returns false when the
// cell is revealed or out of bounds.
func (g *Grid) ToggleFlag(r, c int) bool {
	if !g.InBounds(r, c) {
		return false
	}
	cl := &g.cells[r][c]
	if cl.revealed {
		return false
	}
	cl.flagged = !cl.flagged
	if cl.flagged {
		g.flagsCnt++
	} else {
		g.flagsCnt--
	}
	return true
}

func (g *Grid) export(r, c int) Cell {
	cl := g.cells[r][c]
	return Cell{
		Position:  Position{r, c},
		Mine:      cl.mine,
		Revealed:  cl.revealed,
		Flagged:   cl.flagged,
		Exploded:  cl.exploded,
		WrongFlag: cl.wrongFlag,
		Adjacent:  cl.adjacent,
	}
}

func (g *Grid) around(r, c int, fn func(nr, nc int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if g.InBounds(nr, nc) {
				fn(nr, nc)
			}
		}
	}
}

// String renders the grid as seen by the player: '-' hidden, 'F' flagged,
// '*' mine, '.' empty, digits for numbered cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cl := g.cells[r][c]
			switch {
			case cl.revealed && cl.mine:
				sb.WriteByte('*')
			case cl.revealed && cl.adjacent == 0:
				sb.WriteByte('.')
			case cl.revealed:
				sb.WriteByte(byte('0' + cl.adjacent))
			case cl.flagged:
				sb.WriteByte('F')
			default:
				sb.WriteByte('-')
			}
		}
		if r < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
