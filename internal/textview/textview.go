// Package textview renders stats and board snapshots for the terminal.
package textview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/04pril/minesweeper-miniapp/internal/game"
	"github.com/04pril/minesweeper-miniapp/internal/grid"
	"github.com/04pril/minesweeper-miniapp/internal/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Width(14)
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("248")).Padding(0, 1)
	hiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	mineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	boomStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")).Bold(true)
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	numStyles   = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("41")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// RenderStats lays out the player's totals and the per-mode records for
// modes, in that order.
func RenderStats(st *report.Stats, modes []game.Mode) string {
	if st == nil {
		return boxStyle.Render(mutedStyle.Render("No stats yet"))
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Player %d", st.UserID)),
		row("Games", fmt.Sprint(st.TotalGames)),
		row("Streak", fmt.Sprintf("%d (best %d)", st.CurrentStreak, st.BestStreak)),
		"",
	}
	for _, m := range modes {
		ms := st.Modes[m.Name]
		best := "-"
		if ms.BestTime != nil {
			best = fmt.Sprintf("%ds", *ms.BestTime)
		}
		lines = append(lines, row(m.Name, fmt.Sprintf("best %s  wins %d", best, ms.Wins)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func cellGlyph(c grid.Cell) string {
	switch {
	case c.Exploded:
		return boomStyle.Render("*")
	case c.WrongFlag:
		return flagStyle.Render("x")
	case c.Flagged:
		return flagStyle.Render("F")
	case !c.Revealed:
		return hiddenStyle.Render("-")
	case c.Mine:
		return mineStyle.Render("*")
	case c.Adjacent == 0:
		return mutedStyle.Render(".")
	default:
		return numStyles[c.Adjacent-1].Render(fmt.Sprint(c.Adjacent))
	}
}

// RenderBoard draws the session's board with a status line underneath.
func RenderBoard(s *game.Session) string {
	b := s.Board()
	if b == nil {
		return mutedStyle.Render("no game")
	}

	var sb strings.Builder
	for r := 0; r < b.Rows(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.Cols(); c++ {
			sb.WriteString(cellGlyph(b.CellAt(r, c)))
		}
	}

	status := fmt.Sprintf("%s  mines %d  time %ds  clicks %d  flags %d",
		s.Status(), s.MinesRemaining(), s.Elapsed(), s.ClickCount(), s.FlagCount())
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Mode().Name),
		boardStyle.Render(sb.String()),
		mutedStyle.Render(status),
	)
}

var medals = []string{"1st", "2nd", "3rd"}

func place(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return fmt.Sprintf("%d.", rank)
}

// RenderLeaderboard lists the top fastest winners of each board. Boards
// without winners are left out.
func RenderLeaderboard(boards []*report.Leaderboard, top int) string {
	lines := []string{titleStyle.Render("Leaderboard")}
	for _, lb := range boards {
		if lb == nil || len(lb.Entries) == 0 {
			continue
		}
		lines = append(lines, valueStyle.Render(title(lb.Mode)))
		for i, e := range lb.Entries {
			if top > 0 && i >= top {
				break
			}
			lines = append(lines, row(place(e.Rank), fmt.Sprintf("%s  %ds", e.Name, e.BestTime)))
		}
		lines = append(lines, "")
	}
	if len(lines) == 1 {
		return boxStyle.Render(mutedStyle.Render("No games played yet! Be the first to set a record."))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines[:len(lines)-1]...))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func debugEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	default:
		return true
	}
}

// LogFinalBoard writes the finished board at debug level. The board is only
// rendered when debug logging is on.
func LogFinalBoard(log logrus.FieldLogger, s *game.Session, fields logrus.Fields) {
	if !debugEnabled(log) {
		return
	}
	log.WithFields(fields).WithField("session", s.ID()).Debugf("final board\n%s", RenderBoard(s))
}
