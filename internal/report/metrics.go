package report

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts finished games and failed submissions.
type Metrics struct {
	Results      *prometheus.CounterVec
	SubmitErrors prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minesweeper_results_total",
			Help: "Finished games by mode and outcome.",
		}, []string{"mode", "outcome"}),
		SubmitErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minesweeper_result_submit_errors_total",
			Help: "Result submissions that failed or were rejected.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Results, m.SubmitErrors)
	}
	return m
}

func outcome(win bool) string {
	if win {
		return "win"
	}
	return "loss"
}
