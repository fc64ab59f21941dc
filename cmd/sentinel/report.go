package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"PortfolioSentinel/internal/report"
)

type reportCmd struct {
	output    string
	style     string
	noSummary bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "analyse holdings once and write the HTML report" }
func (*reportCmd) Usage() string {
	return `report [-output <file>] [-style dark|light|notty] [-no-summary]

  Fetches holdings, computes indicators and research for every position and
  writes the HTML report. A summary table is printed to stdout afterwards.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "output", "", "Report path (defaults to REPORT_PATH)")
	f.StringVar(&c.style, "style", report.StyleDark, "Terminal style of the summary")
	f.BoolVar(&c.noSummary, "no-summary", false, "Do not print the summary table")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	path := c.output
	if path == "" {
		path = a.cfg.Report.Path
	}
	r, err := a.run(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !c.noSummary {
		if err := report.PrintSummary(os.Stdout, r, c.style); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing summary: %v\n", err)
		}
	}
	return subcommands.ExitSuccess
}
