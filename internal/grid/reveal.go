package grid

import "github.com/gammazero/deque"

// RevealResult lists the cells a reveal uncovered, in expansion order.
type RevealResult struct {
	Cells []Position
}

// Reveal flood-fills from (r, c). Numbered cells stop the expansion, empty
// cells push all their neighbors. Already revealed or flagged cells are
// skipped when dequeued. Callers must not invoke it on a mine.
func (g *Grid) Reveal(r, c int) RevealResult {
	var res RevealResult
	if !g.InBounds(r, c) {
		return res
	}

	var queue deque.Deque[Position]
	queue.PushBack(Position{r, c})
	for queue.Len() > 0 {
		p := queue.PopFront()
		cl := &g.cells[p.Row][p.Col]
		if cl.revealed || cl.flagged {
			continue
		}
		cl.revealed = true
		g.revealedCnt++
		res.Cells = append(res.Cells, p)

		if cl.adjacent > 0 {
			continue
		}
		for _, n := range g.Neighbors(p.Row, p.Col) {
			if nb := g.cells[n.Row][n.Col]; !nb.revealed && !nb.flagged {
				queue.PushBack(n)
			}
		}
	}
	return res
}

// MarkExploded records the mine the player stepped on.
func (g *Grid) MarkExploded(r, c int) {
	if g.InBounds(r, c) {
		g.cells[r][c].exploded = true
	}
}

// RevealMines uncovers every unflagged mine and marks flags placed on safe
// cells. Correctly flagged mines stay hidden under their flag, so no cell is
// ever both revealed and flagged.
func (g *Grid) RevealMines() {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cl := &g.cells[r][c]
			if cl.mine && !cl.flagged {
				cl.revealed = true
			}
			if cl.flagged && !cl.mine {
				cl.wrongFlag = true
			}
		}
	}
}
