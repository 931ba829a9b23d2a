package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/04pril/minesweeper-miniapp/internal/game"
	"github.com/04pril/minesweeper-miniapp/internal/report"
	"github.com/04pril/minesweeper-miniapp/internal/textview"
)

func init() {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the configured player's stats",
		RunE:  runStats,
	}
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	client, err := report.NewClient(cfg.APIBase, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	cache := report.NewStatsCache(client, cfg.UserID, log)
	if err := cache.Refresh(ctx); err != nil {
		if errors.Is(err, report.ErrNoUser) {
			return fmt.Errorf("set MINESWEEPER_USER_ID to look up stats: %w", err)
		}
		return fmt.Errorf("fetch stats: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), textview.RenderStats(cache.Get(), game.Modes()))
	return nil
}
