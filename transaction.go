package gnucash

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mrader1248/gnucash-tools/date"
)

// Position is one leg of a double-entry transaction. Value is the signed
// amount in the book's base currency; Quantity is the signed amount in the
// account's own commodity. The two differ when the account is not
// denominated in the base currency, e.g. stock lots.
type Position struct {
	accountID uuid.UUID
	value     decimal.Decimal
	quantity  decimal.Decimal
	tx        *Transaction // non-owning, set by NewTransaction
}

// NewPosition creates a position for the given account.
func NewPosition(accountID uuid.UUID, value, quantity decimal.Decimal) *Position {
	return &Position{accountID: accountID, value: value, quantity: quantity}
}

// AccountID returns the id of the account this position books against.
func (p *Position) AccountID() uuid.UUID { return p.accountID }

// Value returns the signed amount in the book's base currency.
func (p *Position) Value() decimal.Decimal { return p.value }

// Quantity returns the signed amount in the account's commodity.
func (p *Position) Quantity() decimal.Decimal { return p.quantity }

// Transaction returns the transaction this position belongs to.
func (p *Position) Transaction() *Transaction { return p.tx }

// Account returns the account this position books against.
func (p *Position) Account() *Account { return p.tx.book.Account(p.accountID) }

// Transaction is a dated double-entry record of one or more positions.
type Transaction struct {
	id          uuid.UUID
	date        date.Date
	description string
	positions   []*Position
	book        *Book // non-owning, set by Book.AddTransaction
}

// NewTransaction creates a transaction and enforces the double-entry
// invariant: the position values must sum to zero. A violation is a fatal
// data-integrity error.
func NewTransaction(id uuid.UUID, on date.Date, description string, positions []*Position) (*Transaction, error) {
	sum := decimal.Zero
	for _, p := range positions {
		sum = sum.Add(p.value)
	}
	if !sum.IsZero() {
		return nil, &IntegrityError{
			Reason: fmt.Sprintf("transaction %s: position values sum to %s, want 0", id, sum),
		}
	}
	t := &Transaction{id: id, date: on, description: description, positions: positions}
	for _, p := range positions {
		p.tx = t
	}
	return t, nil
}

// ID returns the transaction's unique id.
func (t *Transaction) ID() uuid.UUID { return t.id }

// Date returns the posting date.
func (t *Transaction) Date() date.Date { return t.date }

// Description returns the transaction's description.
func (t *Transaction) Description() string { return t.description }

// Positions returns the transaction's positions in file order.
func (t *Transaction) Positions() []*Position { return t.positions }

// Statement renders the transaction as a two-column balanced statement:
// positions with non-negative values on the left, negative ones (negated) on
// the right, with account names and right-aligned amounts equalized per
// column.
func (t *Transaction) Statement() string {
	var debits, credits []*Position
	for _, p := range t.positions {
		if p.value.IsNegative() {
			credits = append(credits, p)
		} else {
			debits = append(debits, p)
		}
	}

	left := t.formatColumn(debits, false)
	right := t.formatColumn(credits, true)
	for len(left) < len(right) {
		left = append(left, strings.Repeat(" ", runeLen(left[0])))
	}
	for len(right) < len(left) {
		right = append(right, strings.Repeat(" ", runeLen(right[0])))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Transaction %s\n%s %s\n", t.id, t.date, t.description)
	b.WriteString(strings.Repeat("-", runeLen(left[0])+runeLen(right[0])+3))
	for i := range left {
		fmt.Fprintf(&b, "\n%s | %s", left[i], right[i])
	}
	return b.String()
}

// formatColumn renders one side of the statement with equalized widths:
// account names padded right, amounts padded left.
func (t *Transaction) formatColumn(positions []*Position, negate bool) []string {
	if len(positions) == 0 {
		return []string{""}
	}
	names := make([]string, 0, len(positions))
	amounts := make([]string, 0, len(positions))
	for _, p := range positions {
		v := p.value
		if negate {
			v = v.Neg()
		}
		names = append(names, p.Account().Name())
		amounts = append(amounts, formatAmount(v, t.book.BaseCurrency()))
	}
	nameWidth := maxRuneLen(names)
	amountWidth := maxRuneLen(amounts)
	lines := make([]string, 0, len(positions))
	for i := range positions {
		lines = append(lines, padRight(names[i], nameWidth)+" "+padLeft(amounts[i], amountWidth))
	}
	return lines
}

// Column widths are counted in runes, not bytes, so that currency symbols
// keep the columns aligned in monospace output.

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func maxRuneLen(strs []string) int {
	max := 0
	for _, s := range strs {
		if n := runeLen(s); n > max {
			max = n
		}
	}
	return max
}

func padRight(s string, width int) string { return s + strings.Repeat(" ", width-runeLen(s)) }

func padLeft(s string, width int) string { return strings.Repeat(" ", width-runeLen(s)) + s }

// formatAmount formats a decimal amount through the currency's own
// formatter (symbol, grouping, decimal places).
func formatAmount(v decimal.Decimal, currency string) string {
	cur := *money.New(0, currency).Currency()
	return cur.Formatter().Format(v.Shift(int32(cur.Fraction)).IntPart())
}
