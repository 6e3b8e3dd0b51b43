package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPredictCommand(opts *rootOptions) *cobra.Command {
	var (
		scope        scopeFlags
		team1, team2 string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print win/draw/loss probabilities for a pairing",
		Long:  "Run the matchup predictor for team1 (home) against team2 (away) and print the probability table and key drivers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := scope.scope()
			if err != nil {
				return err
			}
			svc, err := loadServices(opts.datasetPath)
			if err != nil {
				return err
			}
			res, err := svc.matchups.Predict(cmd.Context(), s, team1, team2)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := res.Result
			fmt.Fprintf(out, "\n%s (home) vs %s (away), form window %d\n\n", res.Home.Name, res.Away.Name, res.FormWindow)

			t := newTable(out)
			t.Header("OUTCOME", "PROBABILITY")
			t.Append(res.Home.Name+" win", pct(r.HomeWin))
			t.Append("draw", pct(r.Draw))
			t.Append(res.Away.Name+" win", pct(r.AwayWin))
			t.Render()

			fmt.Fprintf(out, "\nexpected goals: %.2f - %.2f\n\n", r.LambdaHome, r.LambdaAway)

			if len(r.KeyDrivers) > 0 {
				dt := newTable(out)
				dt.Header("DRIVER", "CONTRIBUTION")
				for _, d := range r.KeyDrivers {
					dt.Append(d.Name, fmt.Sprintf("%+.3f", d.Contribution))
				}
				dt.Render()
			}

			if len(r.TopScores) > 0 {
				fmt.Fprintln(out)
				st := newTable(out)
				st.Header("SCORE", "PROBABILITY")
				for _, sc := range r.TopScores {
					st.Append(fmt.Sprintf("%d-%d", sc.Home, sc.Away), pct(sc.Probability))
				}
				st.Render()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team1, "team1", "", "home team ID")
	cmd.Flags().StringVar(&team2, "team2", "", "away team ID")
	cmd.Flags().StringVar(&scope.competitionID, "competition", "", "competition ID")
	cmd.Flags().StringVar(&scope.seasonID, "season", "", "season ID")
	_ = cmd.MarkFlagRequired("team1")
	_ = cmd.MarkFlagRequired("team2")
	return cmd
}
