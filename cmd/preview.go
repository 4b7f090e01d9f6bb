package cmd

import (
	"fmt"

	"puzzle-leaderboard/feature/leaderboard"

	"github.com/spf13/cobra"
)

// previewCmd fetches the live leaderboard and prints it without touching the database or Discord.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch and print the current leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		snap, err := a.scraper.Fetch(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), leaderboard.Render(snap.Date(), snap.Scores()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)
}
