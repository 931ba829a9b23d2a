// Package ui is the ebiten front end. It forwards pointer, touch and key
// input to a game.Session and draws whatever the session's board says; it
// never changes game state any other way.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/04pril/minesweeper-miniapp/internal/game"
	"github.com/04pril/minesweeper-miniapp/internal/grid"
	"github.com/04pril/minesweeper-miniapp/internal/prefs"
	"github.com/04pril/minesweeper-miniapp/internal/report"
	"github.com/04pril/minesweeper-miniapp/internal/textview"
	"github.com/04pril/minesweeper-miniapp/internal/ui/layout"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
)

// App implements ebiten.Game.
type App struct {
	session  *game.Session
	settings *prefs.Settings
	stats    *report.StatsCache
	log      logrus.FieldLogger
	modes    []game.Mode

	screen     screen
	geo        layout.Game
	touches    map[ebiten.TouchID]layout.Touch
	lastStatus game.Status
	newBest    bool

	// cells opened by the last click, outlined for a few frames
	flash       []grid.Position
	flashFrames int
}

const flashFrames = 12

// NewApp opens on the mode-select screen. stats may be nil.
func NewApp(s *game.Session, settings *prefs.Settings, stats *report.StatsCache, log logrus.FieldLogger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	a := &App{
		session:  s,
		settings: settings,
		stats:    stats,
		log:      log,
		modes:    game.Modes(),
		touches:  map[ebiten.TouchID]layout.Touch{},
	}
	a.resizeWindow()
	return a
}

// Start skips the menu and begins a game in mode m.
func (a *App) Start(m game.Mode) {
	a.session.SelectMode(m)
	a.geo = layout.ForMode(m)
	a.screen = screenGame
	a.lastStatus = a.session.Status()
	a.newBest = false
	a.resizeWindow()
}

func (a *App) back() {
	a.session.Leave()
	a.flashFrames = 0
	a.screen = screenMenu
	a.resizeWindow()
}

func (a *App) resizeWindow() {
	w, h := a.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	caption := "Minesweeper"
	if a.screen == screenGame {
		caption = fmt.Sprintf("Minesweeper - %s", title(a.session.Mode().Name))
	}
	ebiten.SetWindowTitle(caption)
}

func (a *App) Layout(_, _ int) (int, int) {
	if a.screen == screenGame {
		return a.geo.Size()
	}
	return layout.MenuSize(len(a.modes))
}

func (a *App) Update() error {
	a.session.Pump()
	if a.flashFrames > 0 {
		a.flashFrames--
	}
	a.handleKeys()

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.primaryAt(mx, my)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.secondaryAt(mx, my)
	}
	a.handleTouch(time.Now())

	a.observeStatus()
	return nil
}

func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.settings.ToggleTheme()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		a.settings.ToggleVibration()
	}
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if i < len(a.modes) && inpututil.IsKeyJustPressed(k) {
			a.Start(a.modes[i])
		}
	}
	if a.screen != screenGame {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.session.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.session.SetFlagMode(!a.session.FlagMode())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.back()
	}
}

// primaryAt handles a left click or tap.
func (a *App) primaryAt(x, y int) {
	if a.screen == screenMenu {
		if i, ok := layout.ModeButtonAt(len(a.modes), x, y); ok {
			a.Start(a.modes[i])
		}
		return
	}

	if layout.Contains(a.geo.Face(), x, y) {
		a.session.Reset()
		return
	}
	if b, ok := a.geo.ButtonAt(x, y); ok {
		a.press(b)
		return
	}
	if r, c, ok := a.geo.CellAt(x, y); ok {
		if m := a.session.PrimaryClick(r, c); m.Changed {
			a.flash = m.Revealed
			a.flashFrames = flashFrames
		}
	}
}

// secondaryAt handles a right click or long press.
func (a *App) secondaryAt(x, y int) {
	if a.screen != screenGame {
		return
	}
	if r, c, ok := a.geo.CellAt(x, y); ok {
		a.session.ToggleFlag(r, c)
	}
}

func (a *App) press(b layout.Button) {
	switch b {
	case layout.ButtonBack:
		a.back()
	case layout.ButtonFlag:
		a.session.SetFlagMode(!a.session.FlagMode())
	case layout.ButtonTheme:
		a.settings.ToggleTheme()
	case layout.ButtonVibration:
		a.settings.ToggleVibration()
	}
}

func (a *App) handleTouch(now time.Time) {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.touches[id] = layout.Touch{X: x, Y: y, LastX: x, LastY: y, At: now}
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		t, ok := a.touches[id]
		if !ok {
			continue
		}
		t.LastX, t.LastY = ebiten.TouchPosition(id)
		a.touches[id] = t
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		t, ok := a.touches[id]
		if !ok {
			continue
		}
		delete(a.touches, id)

		switch t.Classify(now) {
		case layout.GestureTap:
			a.primaryAt(t.LastX, t.LastY)
		case layout.GestureLongPress:
			a.secondaryAt(t.LastX, t.LastY)
		}
	}
}

// observeStatus notices the transition into a terminal state once per game.
func (a *App) observeStatus() {
	st := a.session.Status()
	if st == a.lastStatus {
		return
	}
	a.lastStatus = st
	a.newBest = false
	if !st.Terminal() {
		return
	}

	if st == game.Won && a.stats != nil {
		a.newBest = a.stats.IsNewBest(a.session.Mode().Name, a.session.Elapsed())
	}
	textview.LogFinalBoard(a.log, a.session, logrus.Fields{"new_best": a.newBest})
}

func (a *App) Draw(screen *ebiten.Image) {
	th := themeFor(a.settings.Theme())
	screen.Fill(th.BG)
	if a.screen == screenMenu {
		a.drawMenu(screen, th)
		return
	}
	a.drawGame(screen, th)
}

func (a *App) drawMenu(screen *ebiten.Image, th theme) {
	w, h := a.Layout(0, 0)
	drawTextCentered(screen, "MINESWEEPER", 0, 16, w, th.HeaderText)

	sub := "Pick a difficulty"
	if a.stats != nil {
		if st := a.stats.Get(); st != nil {
			sub = fmt.Sprintf("Games: %d  Streak: %d (best %d)", st.TotalGames, st.CurrentStreak, st.BestStreak)
		}
	}
	drawTextCentered(screen, sub, 0, 36, w, th.HeaderTextSoft)

	for i, m := range a.modes {
		r := layout.ModeButton(i)
		drawRaisedRect(screen, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), th)
		label := fmt.Sprintf("%d. %s  %dx%d / %d", i+1, title(m.Name), m.Cols, m.Rows, m.Mines)
		text.Draw(screen, label, fontMain, r.Min.X+10, r.Min.Y+19, th.CellText)

		banner := "No record yet"
		if a.stats != nil {
			if b := a.stats.Banner(m.Name); b != "" {
				banner = b
			}
		}
		text.Draw(screen, banner, fontMain, r.Min.X+10, r.Min.Y+37, th.Accent)
	}

	vib := "off"
	if a.settings.VibrationEnabled() {
		vib = "on"
	}
	footer := fmt.Sprintf("T: theme (%s)  V: vibration (%s)", themeFor(a.settings.Theme()).Name, vib)
	drawTextCentered(screen, footer, 0, h-28, w, th.HeaderTextSoft)
}

func (a *App) drawGame(screen *ebiten.Image, th theme) {
	w, _ := a.Layout(0, 0)
	m := a.session.Mode()
	b := a.session.Board()
	if b == nil {
		return
	}

	drawRaisedRect(screen, layout.OuterPadding-2, 10, w-(layout.OuterPadding-2)*2, layout.TopPanelHeight-18, th)
	ebitenutil.DrawRect(screen, float64(layout.OuterPadding+4), 16, float64(w-layout.OuterPadding*2-8), 40, th.Panel)

	mx, my := a.geo.MineCounter()
	drawDigital(screen, mx, my, a.session.MinesRemaining(), 3, th.Digit)
	tx, ty := a.geo.Timer()
	drawDigital(screen, tx, ty, a.session.Elapsed(), 3, th.Digit)

	face := a.geo.Face()
	drawRaisedRect(screen, face.Min.X, face.Min.Y, face.Dx(), face.Dy(), th)
	drawTextCentered(screen, faceFor(a.session.Status()), face.Min.X, face.Min.Y+6, face.Dx(), th.HeaderText)

	bx, by := a.geo.BoardOrigin()
	drawSunkenRect(screen, bx-2, by-2, m.Cols*layout.CellSize+4, m.Rows*layout.CellSize+4, th)
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			px, py := a.geo.CellOrigin(r, c)
			drawCell(screen, b.CellAt(r, c), px, py, th)
		}
	}
	if a.flashFrames > 0 {
		for _, p := range a.flash {
			px, py := a.geo.CellOrigin(p.Row, p.Col)
			vector.StrokeRect(screen, float32(px+1), float32(py+1), layout.CellSize-2, layout.CellSize-2, 1, th.Accent, false)
		}
	}

	info := fmt.Sprintf("%s %dx%d/%d  clicks %d  flags %d",
		title(m.Name), m.Cols, m.Rows, m.Mines, a.session.ClickCount(), a.session.FlagCount())
	text.Draw(screen, info, fontMain, layout.OuterPadding, 10, th.HeaderTextSoft)

	for btn := layout.ButtonBack; btn <= layout.ButtonVibration; btn++ {
		active := false
		switch btn {
		case layout.ButtonFlag:
			active = a.session.FlagMode()
		case layout.ButtonVibration:
			active = a.settings.VibrationEnabled()
		}
		drawButton(screen, a.geo.Button(btn), btn.Label(), active, th)
	}

	switch a.session.Status() {
	case game.Won:
		lines := []string{fmt.Sprintf("YOU WIN! %ds", a.session.Elapsed())}
		if a.newBest {
			lines = append(lines, "NEW BEST!")
		}
		drawBanner(screen, lines, th)
	case game.Lost:
		drawBanner(screen, []string{"BOOM!"}, th)
	}
}

func faceFor(st game.Status) string {
	switch st {
	case game.Lost:
		return "X("
	case game.Won:
		return "B)"
	default:
		return ":)"
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
