package cmd

import (
	"fmt"

	"puzzle-leaderboard/feature/leaderboard"
	"puzzle-leaderboard/feature/leaderboard/models"

	"github.com/spf13/cobra"
)

// showCmd prints a stored board.
var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Print the stored leaderboard for a date (YYYY-MM-DD, default most recent)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := leaderboard.NewService(a.store, nil, nil, 0, a.logger)

		var board *leaderboard.Board
		if len(args) == 1 {
			date, perr := models.ParseDate(args[0])
			if perr != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], perr)
			}
			board, err = svc.ByDate(ctx, date)
		} else {
			board, err = svc.Latest(ctx)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), board.Message)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}
