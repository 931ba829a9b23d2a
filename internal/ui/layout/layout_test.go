package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/04pril/minesweeper-miniapp/internal/game"
)

func TestGameSize(t *testing.T) {
	w, h := ForMode(game.Expert).Size()
	assert.Equal(t, 30*CellSize+2*OuterPadding, w)
	assert.Equal(t, TopPanelHeight+16*CellSize+OuterPadding+ToolbarHeight, h)

	w, _ = ForMode(game.Beginner).Size()
	assert.Equal(t, MinWidth, w, "narrow boards are padded out")
}

func TestCellAtRoundTrip(t *testing.T) {
	for _, m := range game.Modes() {
		g := ForMode(m)
		for _, rc := range [][2]int{{0, 0}, {m.Rows - 1, m.Cols - 1}, {m.Rows / 2, 3}} {
			x, y := g.CellOrigin(rc[0], rc[1])
			r, c, ok := g.CellAt(x+CellSize/2, y+CellSize/2)
			require.True(t, ok, m.Name)
			assert.Equal(t, rc, [2]int{r, c}, m.Name)
		}
	}
}

func TestCellAtOutsideBoard(t *testing.T) {
	g := ForMode(game.Beginner)
	x0, y0 := g.BoardOrigin()

	_, _, ok := g.CellAt(x0-1, y0)
	assert.False(t, ok)
	_, _, ok = g.CellAt(x0, y0-1)
	assert.False(t, ok)
	_, _, ok = g.CellAt(x0+9*CellSize, y0)
	assert.False(t, ok)
	_, _, ok = g.CellAt(x0, y0+9*CellSize)
	assert.False(t, ok)
}

func TestButtonsDoNotOverlapBoardOrEachOther(t *testing.T) {
	g := ForMode(game.Beginner)
	_, y0 := g.BoardOrigin()
	boardBottom := y0 + g.Rows*CellSize

	prevRight := -1
	for b := ButtonBack; b < numButtons; b++ {
		r := g.Button(b)
		assert.Greater(t, r.Min.Y, boardBottom, b.Label())
		assert.Greater(t, r.Min.X, prevRight, b.Label())
		prevRight = r.Max.X

		got, ok := g.ButtonAt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
		require.True(t, ok)
		assert.Equal(t, b, got)
	}
}

func TestFaceBetweenCounters(t *testing.T) {
	g := ForMode(game.Beginner)
	mx, _ := g.MineCounter()
	tx, _ := g.Timer()
	f := g.Face()
	assert.Less(t, mx+3*18, f.Min.X)
	assert.Less(t, f.Max.X, tx)
}

func TestModeButtons(t *testing.T) {
	n := len(game.Modes())
	_, h := MenuSize(n)
	last := ModeButton(n - 1)
	assert.Less(t, last.Max.Y, h)

	i, ok := ModeButtonAt(n, MenuWidth/2, ModeButton(1).Min.Y+5)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = ModeButtonAt(n, MenuWidth/2, 5)
	assert.False(t, ok)
}

func TestTouchClassify(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tap := Touch{X: 10, Y: 10, LastX: 12, LastY: 9, At: start}

	assert.Equal(t, GestureTap, tap.Classify(start.Add(100*time.Millisecond)))
	assert.Equal(t, GestureLongPress, tap.Classify(start.Add(TouchLongPressDur)))

	drag := Touch{X: 10, Y: 10, LastX: 10 + TouchMoveSlopPx + 1, LastY: 10, At: start}
	assert.Equal(t, GestureNone, drag.Classify(start.Add(time.Second)))
}
