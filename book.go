package gnucash

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mrader1248/gnucash-tools/date"
)

// DefaultBaseCurrency is the reporting currency used by Load.
const DefaultBaseCurrency = "EUR"

// Book is the aggregate root owning all accounts, commodities and
// transactions of a ledger. Entities navigate to each other by id through
// the book; it is the single authority for cross-references. A book is
// populated once, in order (commodities, prices, accounts, transactions),
// and read-only afterwards.
type Book struct {
	baseCurrency string

	accounts     []*Account
	accountsByID map[uuid.UUID]*Account

	commodities     []*Commodity
	commoditiesByID map[CommodityID]*Commodity

	transactions []*Transaction
}

// NewBook creates an empty book reporting in the given currency.
func NewBook(baseCurrency string) *Book {
	return &Book{
		baseCurrency:    baseCurrency,
		accountsByID:    make(map[uuid.UUID]*Account),
		commoditiesByID: make(map[CommodityID]*Commodity),
	}
}

// BaseCurrency returns the ISO code of the book's reporting currency.
func (b *Book) BaseCurrency() string { return b.baseCurrency }

// BaseCommodityID returns the commodity id of the reporting currency.
func (b *Book) BaseCommodityID() CommodityID {
	return CommodityID{Space: "CURRENCY", Symbol: b.baseCurrency}
}

// AddCommodity adds a commodity to the book. A commodity with the same id
// replaces the earlier one.
func (b *Book) AddCommodity(c *Commodity) {
	c.book = b
	if _, seen := b.commoditiesByID[c.id]; !seen {
		b.commodities = append(b.commodities, c)
	}
	b.commoditiesByID[c.id] = c
}

// AddAccount adds an account to the book. The account's commodity must
// already be known; duplicate account ids are an integrity error.
func (b *Book) AddAccount(a *Account) error {
	if _, seen := b.accountsByID[a.id]; seen {
		return &IntegrityError{Reason: fmt.Sprintf("account %s already added to book", a.id)}
	}
	if _, ok := b.commoditiesByID[a.commodityID]; !ok {
		return &UnknownRefError{Kind: "commodity", ID: a.commodityID.String()}
	}
	a.book = b
	b.accounts = append(b.accounts, a)
	b.accountsByID[a.id] = a
	return nil
}

// AddTransaction adds a transaction to the book. Every position must
// reference an account already in the book.
func (b *Book) AddTransaction(t *Transaction) error {
	for _, p := range t.positions {
		if _, ok := b.accountsByID[p.accountID]; !ok {
			return &UnknownRefError{Kind: "account", ID: p.accountID.String()}
		}
	}
	t.book = b
	b.transactions = append(b.transactions, t)
	return nil
}

// Account returns the account with the given id, or nil if unknown.
func (b *Book) Account(id uuid.UUID) *Account { return b.accountsByID[id] }

// Commodity returns the commodity with the given id, or nil if unknown.
func (b *Book) Commodity(id CommodityID) *Commodity { return b.commoditiesByID[id] }

// Accounts returns all accounts in the order they were added.
func (b *Book) Accounts() []*Account { return b.accounts }

// Commodities returns all commodities in the order they were added.
func (b *Book) Commodities() []*Commodity { return b.commodities }

// Transactions returns all transactions in file order.
func (b *Book) Transactions() []*Transaction { return b.transactions }

// TransactionsIn returns the transactions whose date falls within the range,
// boundaries included.
func (b *Book) TransactionsIn(r date.Range) []*Transaction {
	var txs []*Transaction
	for _, t := range b.transactions {
		if r.Contains(t.date) {
			txs = append(txs, t)
		}
	}
	return txs
}

// FindAccount returns the first account whose full name or own name matches,
// or nil if there is none.
func (b *Book) FindAccount(name string) *Account {
	for _, a := range b.accounts {
		if a.FullName() == name {
			return a
		}
	}
	for _, a := range b.accounts {
		if a.name == name {
			return a
		}
	}
	return nil
}

// RootAccounts returns the accounts without a parent.
func (b *Book) RootAccounts() []*Account {
	var roots []*Account
	for _, a := range b.accounts {
		if a.parentID == nil {
			roots = append(roots, a)
		}
	}
	return roots
}
