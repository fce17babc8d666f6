package gnucash

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AccountType classifies an account. The set is closed: wire names outside
// it are rejected at parse time.
type AccountType int

const (
	Root AccountType = iota
	Equity
	Asset
	Bank
	Receivable
	Liability
	Income
	Expense
	Stock
)

var accountTypeNames = map[AccountType]string{
	Root:       "ROOT",
	Equity:     "EQUITY",
	Asset:      "ASSET",
	Bank:       "BANK",
	Receivable: "RECEIVABLE",
	Liability:  "LIABILITY",
	Income:     "INCOME",
	Expense:    "EXPENSE",
	Stock:      "STOCK",
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseAccountType parses the wire-format name of an account type.
// Unknown names are an error, never a default.
func ParseAccountType(name string) (AccountType, error) {
	for t, n := range accountTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown account type %q", name)
}

// Account is a node of the account tree. Parent and children are not stored
// as direct references; they are resolved by id through the owning book,
// which is the single source of truth.
type Account struct {
	id          uuid.UUID
	name        string
	typ         AccountType
	parentID    *uuid.UUID // nil only for a root account
	commodityID CommodityID
	book        *Book // non-owning, set by Book.AddAccount
}

// NewAccount creates an account. parentID is nil for a root account.
func NewAccount(id uuid.UUID, name string, typ AccountType, parentID *uuid.UUID, commodityID CommodityID) *Account {
	return &Account{id: id, name: name, typ: typ, parentID: parentID, commodityID: commodityID}
}

// ID returns the account's unique id.
func (a *Account) ID() uuid.UUID { return a.id }

// Name returns the account's own name.
func (a *Account) Name() string { return a.name }

// Type returns the account's type.
func (a *Account) Type() AccountType { return a.typ }

// CommodityID returns the id of the commodity the account is denominated in.
func (a *Account) CommodityID() CommodityID { return a.commodityID }

// Commodity returns the commodity the account is denominated in.
func (a *Account) Commodity() *Commodity { return a.book.Commodity(a.commodityID) }

// Parent returns the parent account, or nil for a root account.
func (a *Account) Parent() *Account {
	if a.parentID == nil {
		return nil
	}
	return a.book.Account(*a.parentID)
}

// Children returns the direct child accounts.
func (a *Account) Children() []*Account {
	var children []*Account
	for _, x := range a.book.Accounts() {
		if x.parentID != nil && *x.parentID == a.id {
			children = append(children, x)
		}
	}
	return children
}

// Transactions returns all transactions that touch this account.
func (a *Account) Transactions() []*Transaction {
	var txs []*Transaction
	for _, tx := range a.book.Transactions() {
		for _, p := range tx.Positions() {
			if p.accountID == a.id {
				txs = append(txs, tx)
				break
			}
		}
	}
	return txs
}

// FullName returns the colon-joined path of account names from the root,
// omitting root accounts themselves.
func (a *Account) FullName() string {
	var names []string
	for x := a; x != nil && x.typ != Root; x = x.Parent() {
		names = append(names, x.name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(names[i])
		if i > 0 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

func (a *Account) String() string {
	return fmt.Sprintf("Account %s (%s, %s)", a.name, a.id, a.typ)
}

// QuantityChanges returns the net change of the account's commodity quantity
// per date: positions on the same date are summed.
func (a *Account) QuantityChanges() *ValueHistory {
	h := NewValueHistory()
	for _, tx := range a.Transactions() {
		for _, p := range tx.Positions() {
			if p.accountID == a.id {
				h.PutAdd(tx.Date(), p.Quantity())
			}
		}
	}
	return h
}

// QuantityHistory returns the running quantity held in the account over time.
func (a *Account) QuantityHistory() *ValueHistory {
	return a.QuantityChanges().BalanceFromChanges()
}

// BalanceHistory returns the account's balance over time in the book's base
// currency. For an account already denominated in the base currency this is
// the quantity history itself; otherwise quantity and commodity price are
// combined with step-function lookups on every date either series records,
// from the first quantity date onward. A missing price for a required date
// is an error: there is no silent substitution.
func (a *Account) BalanceHistory() (*ValueHistory, error) {
	qty := a.QuantityHistory()
	if qty.Len() == 0 {
		return qty, nil
	}
	if a.commodityID == a.book.BaseCommodityID() {
		return qty, nil
	}

	prices := a.Commodity().Prices()
	first, _ := qty.First()
	k, _ := prices.search(first)

	h := NewValueHistory()
	for _, on := range mergeDays(qty.days, prices.days[k:]) {
		price, err := prices.At(on)
		if err != nil {
			return nil, fmt.Errorf("account %s: no price for %s on %s: %w",
				a.name, a.commodityID, on, err)
		}
		h.Put(on, qty.at(on).Mul(price))
	}
	return h, nil
}

// BalanceChanges returns the per-date delta of the account's base-currency
// balance, covering both quantity changes and price movement.
func (a *Account) BalanceChanges() (*ValueHistory, error) {
	h, err := a.BalanceHistory()
	if err != nil {
		return nil, err
	}
	return h.ChangesFromBalance(), nil
}

// TotalBalanceChanges returns the account's balance changes combined with
// those of all its descendants. Every leaf is already converted to the base
// currency by BalanceHistory, so changes add up pointwise; a date missing in
// one series counts as zero.
func (a *Account) TotalBalanceChanges() (*ValueHistory, error) {
	h, err := a.BalanceChanges()
	if err != nil {
		return nil, err
	}
	for _, child := range a.Children() {
		ch, err := child.TotalBalanceChanges()
		if err != nil {
			return nil, err
		}
		for on, v := range ch.Points() {
			h.PutAdd(on, v)
		}
	}
	return h, nil
}

// TotalBalanceHistory returns the running base-currency balance of the
// account tree rooted at this account.
func (a *Account) TotalBalanceHistory() (*ValueHistory, error) {
	h, err := a.TotalBalanceChanges()
	if err != nil {
		return nil, err
	}
	return h.BalanceFromChanges(), nil
}
