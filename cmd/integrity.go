package cmd

import (
	"encoding/json"
	"fmt"

	"puzzle-leaderboard/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the results table and the page archive",
	Long: `Compares the results table with its model and checks that the archive bucket exists.
With --fix the table is migrated and the bucket is created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()
		logg := a.logger

		svc := integrity.NewService(a.storage, a.cfg.Storage, logg, a.db)
		report := make(map[string]any)

		logg.Info("Checking results table schema...", zap.String("driver", a.cfg.Database.Driver))
		schema, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if !schema.Matched && fixFlag {
			if err := svc.FixSchema(ctx); err != nil {
				return err
			}
			if schema, err = svc.CheckSchema(); err != nil {
				return fmt.Errorf("schema check failed: %w", err)
			}
		}
		if schema.Matched {
			logg.Info("Schema matches the model.")
		} else {
			for table, tbl := range schema.Tables {
				if tbl.Status == "ok" {
					continue
				}
				logg.Warn("Schema mismatch",
					zap.String("table", table),
					zap.Strings("missing", tbl.MissingColumns),
					zap.Strings("types", tbl.TypeMismatches),
					zap.Strings("keys", tbl.KeyMismatches),
				)
			}
		}
		report["schema"] = schema

		if a.storage == nil {
			logg.Info("Storage is disabled, skipping archive check.")
		} else {
			archive, err := svc.CheckArchive(ctx)
			if err != nil {
				return fmt.Errorf("archive check failed: %w", err)
			}
			if !archive.Exists && fixFlag {
				if err := svc.FixArchive(ctx); err != nil {
					return err
				}
				archive.Exists = true
			}
			if !archive.Exists {
				logg.Warn("Archive bucket is missing, run with --fix to create it", zap.String("bucket", archive.Bucket))
			}
			report["archive"] = archive
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate the table and create the bucket")
}
