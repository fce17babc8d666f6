package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mrader1248/gnucash-tools/date"
)

type statementCmd struct {
	from string
	to   string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "print transactions as balanced statements" }
func (*statementCmd) Usage() string {
	return `statement [-from <date>] [-to <date>]

  Prints every transaction in the (inclusive) date range as a two-column
  balanced statement.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "first date to include (2006-01-02)")
	f.StringVar(&c.to, "to", "", "last date to include (2006-01-02)")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r date.Range
	var err error
	if c.from != "" {
		if r.From, err = date.Parse(c.from); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if r.To, err = date.Parse(c.to); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	book, err := LoadBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, tx := range book.TransactionsIn(r) {
		fmt.Println(tx.Statement())
		fmt.Println()
	}
	return subcommands.ExitSuccess
}
