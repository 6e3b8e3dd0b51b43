// Package cli implements analyticsctl, the offline companion of the API:
// dataset validation, postgres import and migrations, and quick looks at
// predictions and pass networks without running the server.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-analytics/internal/infrastructure/dataset"
	"github.com/riskibarqy/match-analytics/internal/platform/logging"
)

type rootOptions struct {
	datasetPath string
	logLevel    string
}

// NewRootCommand builds the analyticsctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "analyticsctl",
		Short:         "Match analytics tooling",
		Long:          "Validate and import match datasets, run migrations, and inspect predictions and pass networks.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "path to a dataset JSON file (defaults to the built-in seed)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newValidateCommand(opts),
		newPredictCommand(opts),
		newNetworkCommand(opts),
		newImportCommand(opts),
		NewMigrateCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) logger(w io.Writer) *logging.Logger {
	level := logging.LevelWarn
	switch o.logLevel {
	case "debug":
		level = logging.LevelDebug
	case "info":
		level = logging.LevelInfo
	case "error":
		level = logging.LevelError
	}
	return logging.NewJSONWriter(level, w)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func appendCounts(t *tablewriter.Table, c dataset.Counts) {
	t.Append("competitions", strconv.Itoa(c.Competitions))
	t.Append("seasons", strconv.Itoa(c.Seasons))
	t.Append("teams", strconv.Itoa(c.Teams))
	t.Append("players", strconv.Itoa(c.Players))
	t.Append("matches", strconv.Itoa(c.Matches))
	t.Append("appearances", strconv.Itoa(c.Appearances))
	t.Append("events", strconv.Itoa(c.Events))
}

func pct(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
