package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/04pril/minesweeper-miniapp/internal/grid"
	"github.com/04pril/minesweeper-miniapp/internal/ui/layout"
)

var fontMain font.Face = basicfont.Face7x13

// drawCell paints one board cell at pixel origin (px, py).
func drawCell(screen *ebiten.Image, c grid.Cell, px, py int, th theme) {
	if c.Revealed {
		ebitenutil.DrawRect(screen, float64(px), float64(py), layout.CellSize, layout.CellSize, th.CellRevealed)
		vector.StrokeRect(screen, float32(px), float32(py), layout.CellSize, layout.CellSize, 1, th.CellGrid, false)

		if c.Mine {
			mineColor := th.Mine
			if c.Exploded {
				ebitenutil.DrawRect(screen, float64(px), float64(py), layout.CellSize, layout.CellSize, color.RGBA{210, 40, 40, 255})
				mineColor = color.RGBA{0, 0, 0, 255}
			}
			vector.DrawFilledCircle(screen, float32(px+layout.CellSize/2), float32(py+layout.CellSize/2), 6, mineColor, false)
			return
		}
		if c.Adjacent > 0 {
			drawTextCentered(screen, fmt.Sprint(c.Adjacent), px, py+5, layout.CellSize, th.number(c.Adjacent))
		}
		return
	}

	drawRaisedRect(screen, px, py, layout.CellSize, layout.CellSize, th)
	if c.Flagged {
		drawFlag(screen, px, py, th)
	}
	if c.WrongFlag {
		vector.StrokeLine(screen, float32(px+4), float32(py+4), float32(px+layout.CellSize-4), float32(py+layout.CellSize-4), 2, th.WrongFlag, false)
		vector.StrokeLine(screen, float32(px+layout.CellSize-4), float32(py+4), float32(px+4), float32(py+layout.CellSize-4), 2, th.WrongFlag, false)
	}
}

func drawFlag(screen *ebiten.Image, px, py int, th theme) {
	vector.DrawFilledRect(screen, float32(px+11), float32(py+6), 2, 12, th.CellText, false)
	vector.StrokeLine(screen, float32(px+11), float32(py+6), float32(px+5), float32(py+10), 1.5, th.Flag, false)
	vector.StrokeLine(screen, float32(px+5), float32(py+10), float32(px+11), float32(py+14), 1.5, th.Flag, false)
	vector.StrokeLine(screen, float32(px+11), float32(py+6), float32(px+11), float32(py+14), 1.5, th.Flag, false)
	vector.DrawFilledRect(screen, float32(px+8), float32(py+8), 3, 4, th.Flag, false)
	vector.DrawFilledRect(screen, float32(px+7), float32(py+17), 9, 2, th.CellText, false)
}

// drawButton draws a raised button with a centred label. Active buttons use
// the accent colour for their text.
func drawButton(screen *ebiten.Image, r image.Rectangle, label string, active bool, th theme) {
	drawRaisedRect(screen, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), th)
	clr := th.HeaderText
	if active {
		clr = th.Accent
	}
	drawTextCentered(screen, label, r.Min.X, r.Min.Y+(r.Dy()-13)/2, r.Dx(), clr)
}

func drawBanner(screen *ebiten.Image, lines []string, th theme) {
	w := screen.Bounds().Dx()
	bw := min(220, w-8)
	bh := 14 + 16*len(lines)
	x := (w - bw) / 2
	ebitenutil.DrawRect(screen, float64(x), 14, float64(bw), float64(bh), th.Overlay)
	for i, ln := range lines {
		drawTextCentered(screen, ln, x, 20+i*16, bw, th.Accent)
	}
}

func drawRaisedRect(screen *ebiten.Image, x, y, w, h int, th theme) {
	ebitenutil.DrawRect(screen, float64(x), float64(y), float64(w), float64(h), th.CellHidden)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x+w), float32(y), 2, th.Light, false)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x), float32(y+h), 2, th.Light, false)
	vector.StrokeLine(screen, float32(x+w), float32(y), float32(x+w), float32(y+h), 2, th.Dark, false)
	vector.StrokeLine(screen, float32(x), float32(y+h), float32(x+w), float32(y+h), 2, th.Dark, false)
}

func drawSunkenRect(screen *ebiten.Image, x, y, w, h int, th theme) {
	ebitenutil.DrawRect(screen, float64(x), float64(y), float64(w), float64(h), th.Panel)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x+w), float32(y), 2, th.Dark, false)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x), float32(y+h), 2, th.Dark, false)
	vector.StrokeLine(screen, float32(x+w), float32(y), float32(x+w), float32(y+h), 2, th.Light, false)
	vector.StrokeLine(screen, float32(x), float32(y+h), float32(x+w), float32(y+h), 2, th.Light, false)
}

func drawTextCentered(screen *ebiten.Image, s string, x, y, w int, clr color.Color) {
	b := text.BoundString(fontMain, s)
	text.Draw(screen, s, fontMain, x+(w-b.Dx())/2, y+13, clr)
}

// drawDigital draws a counter in seven-segment style. Negative values show a
// leading minus; values wider than digits saturate.
func drawDigital(screen *ebiten.Image, x, y, value, digits int, clr color.Color) {
	ebitenutil.DrawRect(screen, float64(x-3), float64(y-3), float64(digits*18+6), 28, color.RGBA{20, 20, 20, 255})
	for i, d := range digitsOf(value, digits) {
		drawSevenSegDigit(screen, x+i*18, y, d, clr)
	}
}

// digitsOf splits value into digits cells, -1 marking a minus sign.
func digitsOf(value, digits int) []int {
	n := value
	neg := n < 0
	if neg {
		n = -n
	}
	limit := int(math.Pow10(digits)) - 1
	if neg {
		limit = int(math.Pow10(digits-1)) - 1
	}
	if n > limit {
		n = limit
	}

	out := make([]int, digits)
	for i := digits - 1; i >= 0; i-- {
		out[i] = n % 10
		n /= 10
	}
	if neg {
		out[0] = -1
	}
	return out
}

// segment masks a..g, bits 6..0
var segmentMasks = []int{
	0b1111110,
	0b0110000,
	0b1101101,
	0b1111001,
	0b0110011,
	0b1011011,
	0b1011111,
	0b1110000,
	0b1111111,
	0b1111011,
}

func drawSevenSegDigit(screen *ebiten.Image, x, y, d int, clr color.Color) {
	mask := 0
	switch {
	case d >= 0 && d <= 9:
		mask = segmentMasks[d]
	case d == -1:
		mask = 0b0000001
	}

	off := color.RGBA{60, 20, 20, 255}
	seg := func(on bool, rx, ry, rw, rh float64) {
		var c color.Color = off
		if on {
			c = clr
		}
		ebitenutil.DrawRect(screen, float64(x)+rx, float64(y)+ry, rw, rh, c)
	}

	seg(mask&0b1000000 != 0, 3, 0, 10, 2)  // a
	seg(mask&0b0100000 != 0, 13, 2, 2, 9)  // b
	seg(mask&0b0010000 != 0, 13, 13, 2, 9) // c
	seg(mask&0b0001000 != 0, 3, 22, 10, 2) // d
	seg(mask&0b0000100 != 0, 1, 13, 2, 9)  // e
	seg(mask&0b0000010 != 0, 1, 2, 2, 9)   // f
	seg(mask&0b0000001 != 0, 3, 11, 10, 2) // g
}
