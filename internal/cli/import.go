package cli

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-analytics/internal/app"
	"github.com/riskibarqy/match-analytics/internal/config"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/postgres"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var dbURL string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a dataset and load it into postgres",
		Long: `Validate a dataset and bulk-insert it into postgres inside one transaction.
Nothing is written when any record is rejected. Reads DB_URL unless --db-url is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(opts.datasetPath)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "load config")
			}
			if v := strings.TrimSpace(dbURL); v != "" {
				cfg.DBURL = v
			}
			if cfg.DBURL == "" {
				return errors.New("DB_URL is required")
			}

			logger := opts.logger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()

			db, err := app.OpenDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := postgres.Import(cmd.Context(), db, ds)
			if err != nil {
				return err
			}
			logger.Info("dataset imported", "matches", counts.Matches, "events", counts.Events)

			out := cmd.OutOrStdout()
			t := newTable(out)
			t.Header("TABLE", "ROWS")
			appendCounts(t, counts)
			t.Render()
			fmt.Fprintln(out, "\nimport committed")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbURL, "db-url", "", "postgres URL (overrides DB_URL)")
	return cmd
}
