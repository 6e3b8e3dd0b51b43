package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

func newNetworkCommand(opts *rootOptions) *cobra.Command {
	var (
		scope   scopeFlags
		teamID  string
		matchID string
	)

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Print a team's pass network",
		Long:  "Build the pass network of a team for one match, or for every finished match in scope when --match is omitted.",
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

			out := cmd.OutOrStdout()
			res, err := svc.tactical.PassNetwork(cmd.Context(), s, teamID, matchID)
			if analytics.IsEmptyResult(err) {
				fmt.Fprintf(out, "no completed passes for %s\n", teamID)
				return nil
			}
			if err != nil {
				return err
			}

			nw := res.Network
			t := newTable(out)
			t.Header("PLAYER", "X", "Y", "PASSES", "RECEIVED", "BETWEENNESS", "EIGENVECTOR")
			for _, n := range nw.Nodes {
				name := res.PlayerNames[n.PlayerID]
				if name == "" {
					name = n.PlayerID
				}
				t.Append(
					name,
					strconv.FormatFloat(n.X, 'f', 1, 64),
					strconv.FormatFloat(n.Y, 'f', 1, 64),
					strconv.Itoa(n.PassCount),
					strconv.Itoa(n.PassesReceived),
					strconv.FormatFloat(n.Betweenness, 'f', 3, 64),
					strconv.FormatFloat(n.Eigenvector, 'f', 3, 64),
				)
			}
			t.Render()

			fmt.Fprintf(out, "\nmatches: %d  passes: %d  edges: %d  density: %.3f",
				res.MatchesAnalyzed, nw.Metrics.TotalPasses, nw.Metrics.Edges, nw.Metrics.Density)
			if v, ok := nw.Metrics.AvgShortestPath.Get(); ok {
				fmt.Fprintf(out, "  avg shortest path: %.2f", v)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "team ID")
	cmd.Flags().StringVar(&matchID, "match", "", "match ID (all finished matches when empty)")
	cmd.Flags().StringVar(&scope.competitionID, "competition", "", "competition ID")
	cmd.Flags().StringVar(&scope.seasonID, "season", "", "season ID")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}
