package cli

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-analytics/internal/infrastructure/dataset"
)

const maxListedProblems = 20

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a dataset file",
		Long: `Decode and validate a dataset file. Prints record counts per entity and
the first rejected records. Exits non-zero when anything is rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.datasetPath == "" {
				return errors.New("--dataset is required")
			}
			ds, err := dataset.ReadFile(opts.datasetPath)
			if err != nil {
				return err
			}
			report := dataset.Validate(ds)

			out := cmd.OutOrStdout()
			counts := ds.Counts()
			t := newTable(out)
			t.Header("ENTITY", "RECORDS")
			appendCounts(t, counts)
			t.Render()

			if report.OK() {
				fmt.Fprintln(out, "\ndataset ok")
				return nil
			}

			fmt.Fprintf(out, "\n%d rejected record(s)\n\n", len(report.Problems))
			pt := newTable(out)
			pt.Header("#", "ENTITY", "ID", "PROBLEM")
			for i, p := range report.Problems {
				if i == maxListedProblems {
					break
				}
				pt.Append(strconv.Itoa(i+1), p.Entity, p.ID, p.Err.Error())
			}
			pt.Render()
			return report.Err()
		},
	}
}
