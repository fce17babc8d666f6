package gnucash

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mrader1248/gnucash-tools/date"
)

var eurID = CommodityID{Space: "CURRENCY", Symbol: "EUR"}

// newTestBook creates an EUR book that already knows the EUR commodity.
func newTestBook(t *testing.T) *Book {
	t.Helper()
	book := NewBook("EUR")
	book.AddCommodity(NewCommodity(eurID, "Euro"))
	return book
}

// addAccount creates and registers an account; parent may be nil.
func addAccount(t *testing.T, book *Book, name string, typ AccountType, parent *Account, commodityID CommodityID) *Account {
	t.Helper()
	var parentID *uuid.UUID
	if parent != nil {
		id := parent.ID()
		parentID = &id
	}
	a := NewAccount(uuid.New(), name, typ, parentID, commodityID)
	if err := book.AddAccount(a); err != nil {
		t.Fatalf("AddAccount(%s) error = %v", name, err)
	}
	return a
}

// addTransfer books a balanced two-position transaction moving amount from
// one account to the other, with quantity equal to value on both legs.
func addTransfer(t *testing.T, book *Book, on string, from, to *Account, amount int64) *Transaction {
	t.Helper()
	v := decimal.NewFromInt(amount)
	tx, err := NewTransaction(uuid.New(), date.MustParse(on), "transfer", []*Position{
		NewPosition(from.ID(), v.Neg(), v.Neg()),
		NewPosition(to.ID(), v, v),
	})
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	if err := book.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	return tx
}
