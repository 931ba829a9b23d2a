package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/04pril/minesweeper-miniapp/internal/game"
	"github.com/04pril/minesweeper-miniapp/internal/host"
	"github.com/04pril/minesweeper-miniapp/internal/prefs"
	"github.com/04pril/minesweeper-miniapp/internal/report"
	"github.com/04pril/minesweeper-miniapp/internal/ui"
)

var (
	playMode    string
	metricsAddr string
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Open the game window",
		Long: `Open the game window on the difficulty menu, or straight into a game.

Examples:
  minesweeper play
  minesweeper play --mode expert
  minesweeper play --metrics-addr :9100`,
		RunE: runPlay,
	}

	playCmd.Flags().StringVarP(&playMode, "mode", "m", "", "Start directly in beginner, intermediate or expert")
	playCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	var start *game.Mode
	if playMode != "" {
		m, ok := game.ModeByName(playMode)
		if !ok {
			return fmt.Errorf("unknown mode %q", playMode)
		}
		start = &m
	}

	client, err := report.NewClient(cfg.APIBase, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if metricsAddr != "" {
		srv := serveMetrics(metricsAddr, reg)
		defer srv.Close()
	}

	container := cfg.Container()
	cache := report.NewStatsCache(client, cfg.UserID, log)
	reporter := report.NewReporter(client, container, cache,
		report.WithMetrics(report.NewMetrics(reg)),
		report.WithTimeout(cfg.Timeout),
		report.WithReporterLogger(log),
	)

	settings := prefs.NewSettings(prefs.NewStore(cfg.PrefsPath), log)
	session := game.NewSession(
		game.WithReporter(reporter),
		game.WithHaptics(host.Toggle{Inner: ui.Vibrator{}, Enabled: settings.VibrationEnabled}),
		game.WithLogger(log),
	)

	container.Ready()
	container.Expand()
	log.WithField("initialized", container.Initialized()).Debug("host handshake sent")
	if _, ok := container.User(); ok {
		go func() {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()
			_ = cache.Refresh(ctx)
		}()
	} else {
		log.Info("no player id configured, results will not be reported")
	}

	app := ui.NewApp(session, settings, cache, log)
	if start != nil {
		app.Start(*start)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	err = ebiten.RunGame(app)

	session.Leave()
	reporter.Wait()
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
	return srv
}
