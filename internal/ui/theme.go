package ui

import (
	"image/color"

	"github.com/04pril/minesweeper-miniapp/internal/prefs"
)

type theme struct {
	Name           string
	BG             color.Color
	Panel          color.Color
	Light          color.Color
	Dark           color.Color
	CellHidden     color.Color
	CellRevealed   color.Color
	CellGrid       color.Color
	CellText       color.Color
	Mine           color.Color
	Flag           color.Color
	WrongFlag      color.Color
	Accent         color.Color
	Overlay        color.Color
	Digit          color.Color
	HeaderText     color.Color
	HeaderTextSoft color.Color
	One            color.Color
}

var themes = map[string]theme{
	prefs.ThemeClassic: {
		Name:           "Classic",
		BG:             rgb(192, 192, 192),
		Panel:          rgb(192, 192, 192),
		Light:          rgb(255, 255, 255),
		Dark:           rgb(128, 128, 128),
		CellHidden:     rgb(192, 192, 192),
		CellRevealed:   rgb(214, 214, 214),
		CellGrid:       rgb(155, 155, 155),
		CellText:       rgb(15, 15, 15),
		Mine:           rgb(10, 10, 10),
		Flag:           rgb(210, 32, 32),
		WrongFlag:      rgb(180, 0, 0),
		Accent:         rgb(32, 128, 255),
		Overlay:        color.RGBA{0, 0, 0, 120},
		Digit:          rgb(215, 40, 40),
		HeaderText:     rgb(12, 12, 12),
		HeaderTextSoft: rgb(30, 30, 30),
		One:            rgb(25, 25, 220),
	},
	prefs.ThemeDark: {
		Name:           "Dark",
		BG:             rgb(34, 36, 42),
		Panel:          rgb(48, 51, 60),
		Light:          rgb(78, 82, 93),
		Dark:           rgb(18, 20, 26),
		CellHidden:     rgb(62, 66, 78),
		CellRevealed:   rgb(86, 90, 102),
		CellGrid:       rgb(30, 33, 41),
		CellText:       rgb(242, 242, 245),
		Mine:           rgb(245, 245, 245),
		Flag:           rgb(255, 88, 88),
		WrongFlag:      rgb(255, 25, 25),
		Accent:         rgb(107, 199, 255),
		Overlay:        color.RGBA{0, 0, 0, 140},
		Digit:          rgb(255, 98, 98),
		HeaderText:     rgb(245, 245, 245),
		HeaderTextSoft: rgb(215, 215, 225),
		One:            rgb(120, 170, 255),
	},
}

func themeFor(name string) theme {
	if th, ok := themes[name]; ok {
		return th
	}
	return themes[prefs.ThemeClassic]
}

// numberColors is indexed by adjacency; 1 comes from the theme.
var numberColors = []color.Color{
	color.RGBA{},
	nil,
	rgb(0, 130, 0),
	rgb(210, 20, 20),
	rgb(0, 0, 135),
	rgb(130, 0, 0),
	rgb(0, 128, 128),
	rgb(0, 0, 0),
	rgb(110, 110, 110),
}

func (th theme) number(n int) color.Color {
	if n == 1 {
		return th.One
	}
	return numberColors[n]
}

func rgb(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
