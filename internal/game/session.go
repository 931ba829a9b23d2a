// Package game is the Minesweeper state machine: it owns one board at a
// time, the timer, the counters and the single result report per game.
package game

import (
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/04pril/minesweeper-miniapp/internal/grid"
	"github.com/04pril/minesweeper-miniapp/internal/host"
)

// Result is the outcome of a finished game.
type Result struct {
	SessionID string
	Win       bool
	Score     int // elapsed seconds at the terminal transition
	Mode      Mode
}

// Reporter receives the result of each finished game. Submit must not block
// and must not call back into the Session.
type Reporter interface {
	Submit(r Result)
}

// Move describes what a primary click did.
type Move struct {
	Changed  bool
	Revealed []grid.Position
	Status   Status
}

// Session is one player's game. It is not safe for concurrent use: every
// method must be called from the same input loop.
type Session struct {
	id       string
	mode     Mode
	board    *grid.Grid
	status   Status
	elapsed  int
	clicks   int
	flagMode bool
	reported bool

	timer    *Timer
	rng      *rand.Rand
	reporter Reporter
	haptics  host.Haptics
	log      logrus.FieldLogger
}

// Option configures a Session.
type Option func(*Session)

// WithClock drives the timer from c.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.timer = NewTimer(c) }
}

// WithRand sets the source used for mine placement.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed is WithRand with a fresh source seeded by seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithReporter(r Reporter) Option {
	return func(s *Session) { s.reporter = r }
}

func WithHaptics(h host.Haptics) Option {
	return func(s *Session) { s.haptics = h }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession returns a session in the NotStarted state.
func NewSession(opts ...Option) *Session {
	s := &Session{status: NotStarted}
	for _, o := range opts {
		o(s)
	}
	if s.timer == nil {
		s.timer = NewTimer(clock.New())
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.haptics == nil {
		s.haptics = host.Nop{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// SelectMode builds a fresh board for m and arms the session.
func (s *Session) SelectMode(m Mode) {
	s.mode = m
	s.rebuild()
}

// Reset arms a fresh board for the current mode.
func (s *Session) Reset() {
	if s.status == NotStarted {
		return
	}
	s.rebuild()
}

func (s *Session) rebuild() {
	s.timer.Stop()
	s.id = uuid.NewString()
	s.board = grid.New(s.mode.Rows, s.mode.Cols)
	s.status = Armed
	s.elapsed = 0
	s.clicks = 0
	s.reported = false
	s.logger().WithFields(logrus.Fields{
		"rows":  s.mode.Rows,
		"cols":  s.mode.Cols,
		"mines": s.mode.Mines,
	}).Debug("board armed")
}

// Leave stops the timer when the player goes back to the menu. The session
// keeps its board and counters.
func (s *Session) Leave() {
	s.timer.Stop()
}

// SetFlagMode switches primary clicks between revealing and flagging.
func (s *Session) SetFlagMode(on bool) { s.flagMode = on }

func (s *Session) FlagMode() bool { return s.flagMode }

// PrimaryClick handles a tap or left click on (r, c).
func (s *Session) PrimaryClick(r, c int) Move {
	if s.board == nil || s.status.Terminal() || !s.board.InBounds(r, c) {
		return Move{Status: s.status}
	}
	if s.flagMode {
		changed := s.ToggleFlag(r, c)
		return Move{Changed: changed, Status: s.status}
	}

	started := false
	if s.status == Armed {
		s.board.PlaceMines(s.rng, r, c, s.mode.Mines)
		s.timer.Start()
		s.status = InProgress
		started = true
		s.logger().WithFields(logrus.Fields{"row": r, "col": c}).Debug("mines placed")
	}

	cl := s.board.CellAt(r, c)
	if cl.Flagged || cl.Revealed {
		return Move{Changed: started, Status: s.status}
	}
	s.clicks++

	if cl.Mine {
		s.board.MarkExploded(r, c)
		s.board.RevealMines()
		s.finish(false)
		return Move{Changed: true, Revealed: []grid.Position{cl.Position}, Status: s.status}
	}

	res := s.board.Reveal(r, c)
	if s.board.RevealedCount() == s.mode.SafeCells() {
		s.finish(true)
	}
	return Move{Changed: true, Revealed: res.Cells, Status: s.status}
}

// ToggleFlag flips the flag on (r, c). It is a no-op on revealed cells and
// after the game has ended.
func (s *Session) ToggleFlag(r, c int) bool {
	if s.board == nil || s.status == NotStarted || s.status.Terminal() {
		return false
	}
	return s.board.ToggleFlag(r, c)
}

// OnTick advances the clock by one second while the game is running.
func (s *Session) OnTick() {
	if s.status != InProgress || !s.timer.Running() {
		return
	}
	s.elapsed++
}

// Pump applies every tick the timer has delivered so far without blocking.
func (s *Session) Pump() {
	for {
		select {
		case <-s.timer.C():
			s.OnTick()
		default:
			return
		}
	}
}

func (s *Session) finish(win bool) {
	s.timer.Stop()
	feedback := host.FeedbackError
	if win {
		s.status = Won
		feedback = host.FeedbackSuccess
	} else {
		s.status = Lost
	}
	s.logger().WithFields(logrus.Fields{
		"status":  s.status,
		"elapsed": s.elapsed,
		"clicks":  s.clicks,
	}).Info("game over")

	if err := s.haptics.NotificationOccurred(feedback); err != nil {
		s.logger().WithError(err).Debug("haptic feedback unavailable")
	}
	s.report()
}

// report hands the result to the reporter at most once per game.
func (s *Session) report() {
	if s.reported || !s.status.Terminal() {
		return
	}
	s.reported = true
	if s.reporter == nil {
		return
	}
	s.reporter.Submit(Result{
		SessionID: s.id,
		Win:       s.status == Won,
		Score:     s.elapsed,
		Mode:      s.mode,
	})
}

func (s *Session) logger() logrus.FieldLogger {
	return s.log.WithFields(logrus.Fields{"session": s.id, "mode": s.mode.Name})
}

func (s *Session) ID() string { return s.id }
func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Status() Status { return s.status }
func (s *Session) Elapsed() int { return s.elapsed }
func (s *Session) ClickCount() int { return s.clicks }
func (s *Session) ResultReported() bool { return s.reported }
func (s *Session) TimerRunning() bool { return s.timer.Running() }

// Board is the read-only side of the grid handed to renderers.
type Board interface {
	Rows() int
	Cols() int
	InBounds(r, c int) bool
	CellAt(r, c int) grid.Cell
	ForEachCell(fn func(grid.Cell))
	String() string
}

// Board returns the current board, or nil before a mode is selected.
func (s *Session) Board() Board {
	if s.board == nil {
		return nil
	}
	return s.board
}

// FlagCount is the number of flags currently on the board.
func (s *Session) FlagCount() int {
	if s.board == nil {
		return 0
	}
	return s.board.FlagCount()
}

// MinesRemaining is the mine counter display; it goes negative when the
// player places more flags than there are mines.
func (s *Session) MinesRemaining() int {
	return s.mode.Mines - s.FlagCount()
}
