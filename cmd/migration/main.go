package main

import (
	"fmt"
	"os"

	"github.com/riskibarqy/match-analytics/internal/cli"
)

// Same command tree as `analyticsctl migrate`.
func main() {
	cmd := cli.NewMigrateCommand()
	cmd.Use = "migration"
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
