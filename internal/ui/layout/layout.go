// Package layout holds the pixel geometry of the game and menu screens so
// hit testing can be checked without a window.
package layout

import (
	"image"

	"github.com/04pril/minesweeper-miniapp/internal/game"
)

const (
	CellSize       = 24
	OuterPadding   = 12
	TopPanelHeight = 68
	ToolbarHeight  = 36
	MinWidth       = 264

	MenuWidth      = 300
	menuTitle      = 70
	menuButtonH    = 48
	menuButtonGap  = 12
	menuBottomPad  = 40
	toolbarButtonH = 24
)

// Button identifies a toolbar control on the game screen.
type Button int

const (
	ButtonBack Button = iota
	ButtonFlag
	ButtonTheme
	ButtonVibration
	numButtons
)

var buttonLabels = [numButtons]string{"Back", "Flag", "Theme", "Vib"}

func (b Button) Label() string { return buttonLabels[b] }

// Game is the geometry of the game screen for one board size.
type Game struct {
	Rows, Cols int
}

func ForMode(m game.Mode) Game { return Game{Rows: m.Rows, Cols: m.Cols} }

// Size is the logical screen size.
func (g Game) Size() (int, int) {
	w := max(g.Cols*CellSize+OuterPadding*2, MinWidth)
	h := TopPanelHeight + g.Rows*CellSize + OuterPadding + ToolbarHeight
	return w, h
}

// BoardOrigin is the top-left pixel of cell (0, 0). Boards narrower than
// MinWidth are centred.
func (g Game) BoardOrigin() (int, int) {
	w, _ := g.Size()
	return (w - g.Cols*CellSize) / 2, TopPanelHeight
}

func (g Game) CellOrigin(r, c int) (int, int) {
	x, y := g.BoardOrigin()
	return x + c*CellSize, y + r*CellSize
}

// CellAt maps a pointer position to a cell.
func (g Game) CellAt(px, py int) (r, c int, ok bool) {
	x0, y0 := g.BoardOrigin()
	if px < x0 || py < y0 {
		return 0, 0, false
	}
	c = (px - x0) / CellSize
	r = (py - y0) / CellSize
	if r >= g.Rows || c >= g.Cols {
		return 0, 0, false
	}
	return r, c, true
}

// Face is the reset button between the two counters.
func (g Game) Face() image.Rectangle {
	w, _ := g.Size()
	const size = 28
	x := w/2 - size/2
	return image.Rect(x, 20, x+size, 20+size)
}

// MineCounter and Timer are the origins of the two seven-segment displays.
func (g Game) MineCounter() (int, int) { return OuterPadding + 10, 20 }

func (g Game) Timer() (int, int) {
	w, _ := g.Size()
	return w - OuterPadding - 10 - 58, 20
}

// Button returns the rectangle of toolbar button b.
func (g Game) Button(b Button) image.Rectangle {
	w, h := g.Size()
	inner := w - OuterPadding*2
	bw := (inner - int(numButtons-1)*6) / int(numButtons)
	x := OuterPadding + int(b)*(bw+6)
	y := h - ToolbarHeight + (ToolbarHeight-toolbarButtonH)/2
	return image.Rect(x, y, x+bw, y+toolbarButtonH)
}

// ButtonAt reports which toolbar button contains the point.
func (g Game) ButtonAt(px, py int) (Button, bool) {
	for b := ButtonBack; b < numButtons; b++ {
		if Contains(g.Button(b), px, py) {
			return b, true
		}
	}
	return 0, false
}

// MenuSize is the logical size of the mode-select screen.
func MenuSize(modes int) (int, int) {
	return MenuWidth, menuTitle + modes*(menuButtonH+menuButtonGap) + menuBottomPad
}

// ModeButton is the i-th mode button on the menu.
func ModeButton(i int) image.Rectangle {
	y := menuTitle + i*(menuButtonH+menuButtonGap)
	return image.Rect(OuterPadding*2, y, MenuWidth-OuterPadding*2, y+menuButtonH)
}

// ModeButtonAt reports which of n mode buttons contains the point.
func ModeButtonAt(n, px, py int) (int, bool) {
	for i := 0; i < n; i++ {
		if Contains(ModeButton(i), px, py) {
			return i, true
		}
	}
	return 0, false
}

// Contains is inclusive on all edges.
func Contains(r image.Rectangle, x, y int) bool {
	return x >= r.Min.X && x <= r.Max.X && y >= r.Min.Y && y <= r.Max.Y
}
