package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/04pril/minesweeper-miniapp/internal/game"
	"github.com/04pril/minesweeper-miniapp/internal/report"
	"github.com/04pril/minesweeper-miniapp/internal/textview"
)

var (
	boardMode string
	boardTop  int
)

func init() {
	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the fastest wins per difficulty",
		Long: `Print the fastest wins for every difficulty, or just one.

Examples:
  minesweeper leaderboard
  minesweeper leaderboard --mode expert --top 10`,
		RunE: runLeaderboard,
	}

	leaderboardCmd.Flags().StringVarP(&boardMode, "mode", "m", "", "Only show beginner, intermediate or expert")
	leaderboardCmd.Flags().IntVar(&boardTop, "top", 5, "Number of players listed per difficulty")

	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	modes := game.Modes()
	if boardMode != "" {
		m, ok := game.ModeByName(boardMode)
		if !ok {
			return fmt.Errorf("unknown mode %q", boardMode)
		}
		modes = []game.Mode{m}
	}

	client, err := report.NewClient(cfg.APIBase, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	boards := make([]*report.Leaderboard, 0, len(modes))
	for _, m := range modes {
		b, err := client.FetchLeaderboard(ctx, m.Name)
		if err != nil {
			return fmt.Errorf("fetch %s leaderboard: %w", m.Name, err)
		}
		boards = append(boards, b)
	}

	fmt.Fprintln(cmd.OutOrStdout(), textview.RenderLeaderboard(boards, boardTop))
	return nil
}
