package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/04pril/minesweeper-miniapp/internal/game"
	"github.com/04pril/minesweeper-miniapp/internal/host"
)

// Submitter sends one result payload.
type Submitter interface {
	SubmitResult(ctx context.Context, p Payload) error
}

// Reporter turns finished games into result submissions. Submit satisfies
// game.Reporter; Send is the synchronous form for callers that want the
// outcome.
type Reporter struct {
	submitter Submitter
	container host.Container
	cache     *StatsCache
	metrics   *Metrics
	timeout   time.Duration
	log       logrus.FieldLogger

	wg sync.WaitGroup
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

func WithMetrics(m *Metrics) ReporterOption {
	return func(r *Reporter) { r.metrics = m }
}

func WithTimeout(d time.Duration) ReporterOption {
	return func(r *Reporter) { r.timeout = d }
}

func WithReporterLogger(l logrus.FieldLogger) ReporterOption {
	return func(r *Reporter) { r.log = l }
}

// NewReporter builds a reporter. cache may be nil when no stats banner is
// shown.
func NewReporter(s Submitter, c host.Container, cache *StatsCache, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		submitter: s,
		container: c,
		cache:     cache,
		timeout:   defaultTimeout,
	}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(nil)
	}
	return r
}

// Payload builds the request body for res.
func (r *Reporter) Payload(res game.Result) (Payload, error) {
	if r.container == nil {
		return Payload{}, ErrNoUser
	}
	user, ok := r.container.User()
	if !ok {
		return Payload{}, ErrNoUser
	}
	if m, known := game.ModeByName(res.Mode.Name); !known || m != res.Mode {
		return Payload{}, fmt.Errorf("%w: %s %dx%d/%d", ErrModeMismatch, res.Mode.Name, res.Mode.Rows, res.Mode.Cols, res.Mode.Mines)
	}
	return Payload{
		InitData:  r.container.InitData(),
		UserID:    user.ID,
		FirstName: user.FirstName,
		Username:  user.Username,
		Score:     res.Score,
		IsWin:     res.Win,
		GameMode:  res.Mode.Name,
		Rows:      res.Mode.Rows,
		Cols:      res.Mode.Cols,
		Mines:     res.Mode.Mines,
	}, nil
}

// Send submits res and returns the outcome.
func (r *Reporter) Send(ctx context.Context, res game.Result) error {
	p, err := r.Payload(res)
	if err != nil {
		return err
	}
	if err := r.submitter.SubmitResult(ctx, p); err != nil {
		r.metrics.SubmitErrors.Inc()
		return err
	}
	return nil
}

// Submit sends res in the background and refreshes the stats cache once the
// request has finished, whatever its outcome. Failures are logged only.
func (r *Reporter) Submit(res game.Result) {
	r.metrics.Results.WithLabelValues(res.Mode.Name, outcome(res.Win)).Inc()

	log := r.log.WithFields(logrus.Fields{
		"session": res.SessionID,
		"mode":    res.Mode.Name,
		"win":     res.Win,
		"score":   res.Score,
	})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		switch err := r.Send(ctx, res); {
		case errors.Is(err, ErrNoUser):
			log.Debug("no player identity, result not sent")
			return
		case err != nil:
			log.WithError(err).Warn("result submission failed")
		default:
			log.Info("result submitted")
		}

		if r.cache == nil {
			return
		}
		// the submission may have used up its deadline
		rctx, rcancel := context.WithTimeout(context.Background(), r.timeout)
		defer rcancel()
		_ = r.cache.Refresh(rctx)
	}()
}

// Wait blocks until every background submission has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
