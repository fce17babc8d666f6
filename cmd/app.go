// Package cmd implements the CLI application to inspect a GnuCash ledger.
package cmd

import (
	"flag"

	"github.com/google/subcommands"

	gnucash "github.com/mrader1248/gnucash-tools"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountsCmd{}, "book")
	c.Register(&statementCmd{}, "book")
	c.Register(&historyCmd{}, "histories")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.gnucash", "path to the gzip-compressed GnuCash ledger file")

// LoadBook loads the application's ledger file into a Book.
func LoadBook() (*gnucash.Book, error) {
	return gnucash.Load(*ledgerFile)
}
