package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list accounts, positions and resolved symbols" }
func (*holdingsCmd) Usage() string {
	return `holdings

  Prints every account with its positions and the symbol that will be used
  to fetch price history.
`
}

func (*holdingsCmd) SetFlags(*flag.FlagSet) {}

func (*holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	provider := a.holdings()
	accounts, err := provider.Accounts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting holdings from %s: %v\n", provider.Name(), err)
		return subcommands.ExitFailure
	}

	res := a.resolver()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tTYPE\tSYMBOL\tRESOLVED\tQUANTITY\tNAME")
	for _, acct := range accounts {
		for _, p := range acct.Positions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				acct.ID, acct.Type, p.Symbol, res.Resolve(p), p.Quantity.String(), p.DisplayName())
		}
	}
	if err := w.Flush(); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
