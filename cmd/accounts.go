package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts of the ledger" }
func (*accountsCmd) Usage() string {
	return `accounts

  Lists all accounts with their type and commodity.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Account\tType\tCommodity\n")
	for _, a := range book.Accounts() {
		name := a.FullName()
		if name == "" {
			name = a.Name()
		}
		fmt.Printf("%s\t%s\t%s\n", name, a.Type(), a.CommodityID())
	}
	return subcommands.ExitSuccess
}
