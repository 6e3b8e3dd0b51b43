package main

import "github.com/riskibarqy/match-analytics/internal/cli"

func main() {
	cli.Execute()
}
