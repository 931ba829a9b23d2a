package game

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/04pril/minesweeper-miniapp/internal/grid"
	"github.com/04pril/minesweeper-miniapp/internal/host"
)

type recordingReporter struct {
	results []Result
}

func (r *recordingReporter) Submit(res Result) { r.results = append(r.results, res) }

type recordingHaptics struct {
	events []host.Feedback
	err    error
}

func (h *recordingHaptics) NotificationOccurred(f host.Feedback) error {
	h.events = append(h.events, f)
	return h.err
}

type fixture struct {
	s        *Session
	clock    *clock.Mock
	reporter *recordingReporter
	haptics  *recordingHaptics
}

func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	f := &fixture{
		clock:    clock.NewMock(),
		reporter: &recordingReporter{},
		haptics:  &recordingHaptics{},
	}
	f.s = NewSession(
		WithClock(f.clock),
		WithSeed(seed),
		WithReporter(f.reporter),
		WithHaptics(f.haptics),
		WithLogger(quiet),
	)
	return f
}

// startedFixture returns a session whose first click at (r, c) left the game
// in progress, trying seeds until one does.
func startedFixture(t *testing.T, m Mode, r, c int) *fixture {
	t.Helper()
	for seed := int64(1); seed < 100; seed++ {
		f := newFixture(t, seed)
		f.s.SelectMode(m)
		f.s.PrimaryClick(r, c)
		if f.s.Status() == InProgress {
			return f
		}
	}
	t.Fatal("no seed left the game in progress")
	return nil
}

func (f *fixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.clock.Add(time.Second)
		f.s.Pump()
	}
}

func findCell(b Board, match func(grid.Cell) bool) (grid.Cell, bool) {
	var found grid.Cell
	ok := false
	b.ForEachCell(func(c grid.Cell) {
		if !ok && match(c) {
			found, ok = c, true
		}
	})
	return found, ok
}

func TestModesTable(t *testing.T) {
	for _, m := range Modes() {
		assert.Less(t, m.Mines, m.Rows*m.Cols, m.Name)
		got, ok := ModeByName(m.Name)
		require.True(t, ok)
		assert.Equal(t, m, got)
	}
	assert.Equal(t, Mode{"expert", 16, 30, 99}, Expert)
	_, ok := ModeByName("custom")
	assert.False(t, ok)
}

func TestNewSessionNotStarted(t *testing.T) {
	f := newFixture(t, 1)
	assert.Equal(t, NotStarted, f.s.Status())
	assert.Nil(t, f.s.Board())

	m := f.s.PrimaryClick(0, 0)
	assert.False(t, m.Changed)
	assert.False(t, f.s.ToggleFlag(0, 0))
}

func TestSelectModeArms(t *testing.T) {
	f := newFixture(t, 1)
	f.s.SelectMode(Intermediate)

	assert.Equal(t, Armed, f.s.Status())
	require.NotNil(t, f.s.Board())
	assert.Equal(t, 16, f.s.Board().Rows())
	assert.Equal(t, 40, f.s.MinesRemaining())
	assert.False(t, f.s.TimerRunning())
	assert.NotEmpty(t, f.s.ID())

	_, mined := findCell(f.s.Board(), func(c grid.Cell) bool { return c.Mine })
	assert.False(t, mined, "mines must not exist before the first reveal")
}

func TestFirstClickPlacesMinesAndStartsTimer(t *testing.T) {
	f := newFixture(t, 3)
	f.s.SelectMode(Beginner)

	m := f.s.PrimaryClick(4, 4)
	require.True(t, m.Changed)
	assert.NotEqual(t, Armed, f.s.Status())

	b := f.s.Board()
	assert.False(t, b.CellAt(4, 4).Mine)
	assert.True(t, b.CellAt(4, 4).Revealed)

	mines := 0
	b.ForEachCell(func(c grid.Cell) {
		if c.Mine {
			mines++
		}
	})
	assert.Equal(t, 10, mines)

	if f.s.Status() == InProgress {
		assert.True(t, f.s.TimerRunning())
	}
	if b.CellAt(4, 4).Adjacent == 0 {
		assert.Greater(t, len(m.Revealed), 1)
	}
}

func TestFirstClickNeverLoses(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		f := newFixture(t, seed)
		f.s.SelectMode(Expert)
		f.s.PrimaryClick(int(seed)%16, int(seed)%30)
		assert.NotEqual(t, Lost, f.s.Status(), "seed %d", seed)
	}
}

func TestTimerTicksOnlyWhileInProgress(t *testing.T) {
	f := newFixture(t, 5)
	f.s.SelectMode(Expert)

	f.tick(2)
	assert.Zero(t, f.s.Elapsed(), "armed sessions do not tick")

	f.s.PrimaryClick(0, 0)
	require.Equal(t, InProgress, f.s.Status())
	f.tick(3)
	assert.Equal(t, 3, f.s.Elapsed())

	f.s.Leave()
	assert.False(t, f.s.TimerRunning())
	f.tick(2)
	assert.Equal(t, 3, f.s.Elapsed(), "value is retained after leaving")
}

func TestOnTickIgnoredWhenStopped(t *testing.T) {
	f := newFixture(t, 5)
	f.s.SelectMode(Beginner)
	f.s.OnTick()
	assert.Zero(t, f.s.Elapsed())
}

func TestClickMineLoses(t *testing.T) {
	f := startedFixture(t, Beginner, 0, 0)
	f.tick(4)

	mine, ok := findCell(f.s.Board(), func(c grid.Cell) bool { return c.Mine })
	require.True(t, ok)

	m := f.s.PrimaryClick(mine.Row, mine.Col)
	assert.True(t, m.Changed)
	assert.Equal(t, Lost, f.s.Status())
	assert.False(t, f.s.TimerRunning())

	f.s.Board().ForEachCell(func(c grid.Cell) {
		if c.Mine {
			assert.True(t, c.Revealed || c.Flagged, "mine %v", c.Position)
		}
	})
	assert.True(t, f.s.Board().CellAt(mine.Row, mine.Col).Exploded)

	require.Len(t, f.reporter.results, 1)
	res := f.reporter.results[0]
	assert.False(t, res.Win)
	assert.Equal(t, 4, res.Score)
	assert.Equal(t, Beginner, res.Mode)
	assert.Equal(t, f.s.ID(), res.SessionID)
	assert.Equal(t, []host.Feedback{host.FeedbackError}, f.haptics.events)

	f.tick(3)
	assert.Equal(t, 4, f.s.Elapsed(), "no ticks after the game is over")
	assert.Equal(t, 4, res.Score)
}

func TestRevealAllSafeCellsWins(t *testing.T) {
	f := startedFixture(t, Beginner, 4, 4)
	f.tick(7)

	f.s.Board().ForEachCell(func(c grid.Cell) {
		if !c.Mine && f.s.Status() == InProgress {
			f.s.PrimaryClick(c.Row, c.Col)
		}
	})

	require.Equal(t, Won, f.s.Status())
	assert.False(t, f.s.TimerRunning())
	require.Len(t, f.reporter.results, 1)
	assert.True(t, f.reporter.results[0].Win)
	assert.Equal(t, 7, f.reporter.results[0].Score)
	assert.Equal(t, f.s.Elapsed(), f.reporter.results[0].Score)
	assert.Equal(t, []host.Feedback{host.FeedbackSuccess}, f.haptics.events)
	assert.Zero(t, f.s.FlagCount(), "winning does not require flags")
}

func TestWinIgnoresFlags(t *testing.T) {
	f := startedFixture(t, Beginner, 4, 4)

	// flag every mine: still in progress until safe cells are revealed
	f.s.Board().ForEachCell(func(c grid.Cell) {
		if c.Mine {
			require.True(t, f.s.ToggleFlag(c.Row, c.Col))
		}
	})
	assert.Equal(t, InProgress, f.s.Status())
	assert.Equal(t, 0, f.s.MinesRemaining())
}

func TestTerminalIsSticky(t *testing.T) {
	f := startedFixture(t, Beginner, 0, 0)
	mine, _ := findCell(f.s.Board(), func(c grid.Cell) bool { return c.Mine })
	f.s.PrimaryClick(mine.Row, mine.Col)
	require.Equal(t, Lost, f.s.Status())

	before := f.s.Board().String()
	hidden, ok := findCell(f.s.Board(), func(c grid.Cell) bool { return !c.Revealed })
	require.True(t, ok)

	assert.False(t, f.s.PrimaryClick(hidden.Row, hidden.Col).Changed)
	assert.False(t, f.s.ToggleFlag(hidden.Row, hidden.Col))
	f.s.SetFlagMode(true)
	assert.False(t, f.s.PrimaryClick(hidden.Row, hidden.Col).Changed)
	assert.Equal(t, before, f.s.Board().String())
	assert.Equal(t, Lost, f.s.Status())
}

func TestResultReportedAtMostOnce(t *testing.T) {
	f := startedFixture(t, Beginner, 0, 0)
	mine, _ := findCell(f.s.Board(), func(c grid.Cell) bool { return c.Mine })
	f.s.PrimaryClick(mine.Row, mine.Col)

	f.s.report()
	f.s.report()
	f.s.PrimaryClick(mine.Row, mine.Col)

	assert.True(t, f.s.ResultReported())
	assert.Len(t, f.reporter.results, 1)
}

func TestReportNotBeforeTerminal(t *testing.T) {
	f := newFixture(t, 1)
	f.s.SelectMode(Beginner)
	f.s.report()
	assert.False(t, f.s.ResultReported())
	assert.Empty(t, f.reporter.results)
}

func TestFlaggedCellClickIsNoop(t *testing.T) {
	f := startedFixture(t, Beginner, 0, 0)
	target, ok := findCell(f.s.Board(), func(c grid.Cell) bool { return !c.Revealed })
	require.True(t, ok)

	require.True(t, f.s.ToggleFlag(target.Row, target.Col))
	clicks := f.s.ClickCount()
	m := f.s.PrimaryClick(target.Row, target.Col)

	assert.False(t, m.Changed)
	c := f.s.Board().CellAt(target.Row, target.Col)
	assert.True(t, c.Flagged)
	assert.False(t, c.Revealed)
	assert.Equal(t, InProgress, f.s.Status())
	assert.Equal(t, clicks, f.s.ClickCount())
}

func TestFlagBeforeFirstRevealThenClickIt(t *testing.T) {
	f := newFixture(t, 2)
	f.s.SelectMode(Beginner)
	require.True(t, f.s.ToggleFlag(4, 4))

	m := f.s.PrimaryClick(4, 4)
	assert.True(t, m.Changed, "the first click still arms the board")
	assert.Equal(t, InProgress, f.s.Status())
	assert.True(t, f.s.TimerRunning())
	c := f.s.Board().CellAt(4, 4)
	assert.True(t, c.Flagged)
	assert.False(t, c.Revealed)
	assert.False(t, c.Mine)
}

func TestFlagModeTogglesInsteadOfRevealing(t *testing.T) {
	f := newFixture(t, 2)
	f.s.SelectMode(Beginner)
	f.s.SetFlagMode(true)
	require.True(t, f.s.FlagMode())

	m := f.s.PrimaryClick(3, 3)
	assert.True(t, m.Changed)
	assert.Equal(t, Armed, f.s.Status(), "flag mode does not arm the board")
	assert.True(t, f.s.Board().CellAt(3, 3).Flagged)
	assert.Equal(t, 9, f.s.MinesRemaining())

	f.s.PrimaryClick(3, 3)
	assert.False(t, f.s.Board().CellAt(3, 3).Flagged)
	assert.Equal(t, 10, f.s.MinesRemaining())
}

func TestMinesRemainingCanGoNegative(t *testing.T) {
	f := newFixture(t, 2)
	f.s.SelectMode(Beginner)

	flagged := 0
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			require.True(t, f.s.ToggleFlag(r, c))
			flagged++
		}
	}
	unflagged := 0
	for c := 0; c < 2; c++ {
		require.True(t, f.s.ToggleFlag(0, c))
		unflagged++
	}

	assert.Equal(t, 10-(flagged-unflagged), f.s.MinesRemaining())
	assert.Equal(t, -3, f.s.MinesRemaining())
	assert.Equal(t, flagged-unflagged, f.s.FlagCount())
}

func TestToggleFlagOnRevealedIsNoop(t *testing.T) {
	f := newFixture(t, 4)
	f.s.SelectMode(Beginner)
	f.s.PrimaryClick(4, 4)

	assert.False(t, f.s.ToggleFlag(4, 4))
	assert.False(t, f.s.Board().CellAt(4, 4).Flagged)
	assert.Equal(t, 10, f.s.MinesRemaining())
}

func TestResetRebuildsBoard(t *testing.T) {
	f := newFixture(t, 6)
	f.s.SelectMode(Beginner)
	oldID := f.s.ID()
	f.s.ToggleFlag(1, 1)
	f.s.PrimaryClick(4, 4)
	f.tick(2)

	f.s.Reset()
	assert.Equal(t, Armed, f.s.Status())
	assert.NotEqual(t, oldID, f.s.ID())
	assert.Zero(t, f.s.Elapsed())
	assert.Zero(t, f.s.ClickCount())
	assert.Zero(t, f.s.FlagCount())
	assert.False(t, f.s.TimerRunning())
	assert.False(t, f.s.ResultReported())

	f.tick(2)
	assert.Zero(t, f.s.Elapsed())
}

func TestSelectModeStopsTimer(t *testing.T) {
	f := newFixture(t, 6)
	f.s.SelectMode(Beginner)
	f.s.PrimaryClick(4, 4)
	f.s.SelectMode(Expert)

	assert.Equal(t, Armed, f.s.Status())
	assert.Equal(t, Expert, f.s.Mode())
	assert.Equal(t, 30, f.s.Board().Cols())
	assert.False(t, f.s.TimerRunning())
}

func TestHapticsErrorIgnored(t *testing.T) {
	f := startedFixture(t, Beginner, 0, 0)
	f.haptics.err = errors.New("no vibrator")
	mine, _ := findCell(f.s.Board(), func(c grid.Cell) bool { return c.Mine })
	f.s.PrimaryClick(mine.Row, mine.Col)

	assert.Equal(t, Lost, f.s.Status())
	assert.Len(t, f.reporter.results, 1)
}

func TestClickCountCountsPerformedReveals(t *testing.T) {
	f := newFixture(t, 7)
	f.s.SelectMode(Expert)
	f.s.PrimaryClick(0, 0)
	require.Equal(t, 1, f.s.ClickCount())

	f.s.PrimaryClick(0, 0)
	assert.Equal(t, 1, f.s.ClickCount(), "revealed cell clicks are ignored")
	f.s.PrimaryClick(-1, 0)
	assert.Equal(t, 1, f.s.ClickCount())
}
