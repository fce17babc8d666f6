package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	gnucash "github.com/mrader1248/gnucash-tools"
)

type historyCmd struct {
	account string
	series  string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display an account's value history" }
func (*historyCmd) Usage() string {
	return `history -a <account> [-series quantity|balance|total]

  Displays the selected value history of a single account, one
  tab-separated date/value pair per line. "total" aggregates the account
  and all its descendants in the base currency.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account name (full colon-joined name or own name)")
	f.StringVar(&c.series, "series", "total", "series to report: quantity, balance or total")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-a must be provided")
		return subcommands.ExitUsageError
	}

	book, err := LoadBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	account := book.FindAccount(c.account)
	if account == nil {
		fmt.Fprintf(os.Stderr, "no account named %q\n", c.account)
		return subcommands.ExitFailure
	}

	var h *gnucash.ValueHistory
	switch c.series {
	case "quantity":
		h = account.QuantityHistory()
	case "balance":
		h, err = account.BalanceHistory()
	case "total":
		h, err = account.TotalBalanceHistory()
	default:
		fmt.Fprintf(os.Stderr, "unknown series %q\n", c.series)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing %s history: %v\n", c.series, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Date\tValue\n")
	for on, v := range h.Points() {
		fmt.Printf("%s\t%s\n", on, v)
	}
	return subcommands.ExitSuccess
}
