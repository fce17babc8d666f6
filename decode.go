package gnucash

import (
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mrader1248/gnucash-tools/date"
)

// Shadow structs for decoding the GnuCash XML book. Fields carry no XML
// namespace, so elements are matched on their local name whatever prefix the
// file declares (gnc:, act:, trn:, ...).

type xmlRoot struct {
	Book xmlBook `xml:"book"`
}

type xmlBook struct {
	Commodities  []xmlCommodity   `xml:"commodity"`
	Prices       []xmlPrice       `xml:"pricedb>price"`
	Accounts     []xmlAccount     `xml:"account"`
	Transactions []xmlTransaction `xml:"transaction"`
}

type xmlCommodity struct {
	Space  string `xml:"space"`
	Symbol string `xml:"id"`
	Name   string `xml:"name"`
}

type xmlPrice struct {
	Commodity xmlCommodity `xml:"commodity"`
	Time      string       `xml:"time>date"`
	Value     string       `xml:"value"`
}

type xmlAccount struct {
	ID        string       `xml:"id"`
	Name      string       `xml:"name"`
	Type      string       `xml:"type"`
	Parent    string       `xml:"parent"`
	Commodity xmlCommodity `xml:"commodity"`
}

type xmlTransaction struct {
	ID          string     `xml:"id"`
	DatePosted  string     `xml:"date-posted>date"`
	Description string     `xml:"description"`
	Splits      []xmlSplit `xml:"splits>split"`
}

type xmlSplit struct {
	Account  string `xml:"account"`
	Value    string `xml:"value"`
	Quantity string `xml:"quantity"`
}

// malformed builds a MalformedLedgerError for the given element.
func malformed(element, format string, args ...any) error {
	return &MalformedLedgerError{Element: element, Reason: fmt.Sprintf(format, args...)}
}

// Load reads, decompresses and decodes a gzip-compressed GnuCash XML ledger.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a gzip-compressed GnuCash XML ledger from r into a Book.
// It fails fast on the first structural error; a partial book is never
// returned.
func Decode(r io.Reader) (*Book, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ledger is not valid gzip: %w", err)
	}
	defer zr.Close()

	var root xmlRoot
	if err := xml.NewDecoder(zr).Decode(&root); err != nil {
		return nil, fmt.Errorf("cannot decode ledger XML: %w", err)
	}
	return buildBook(&root.Book)
}

// buildBook populates a Book from the decoded document. The order matters:
// commodities first, then prices, then accounts, then transactions, because
// each step resolves ids created by an earlier one.
func buildBook(x *xmlBook) (*Book, error) {
	book := NewBook(DefaultBaseCurrency)

	for _, xc := range x.Commodities {
		id, err := xc.commodityID()
		if err != nil {
			return nil, err
		}
		book.AddCommodity(NewCommodity(id, xc.Name))
	}

	for _, xp := range x.Prices {
		if err := addPrice(book, xp); err != nil {
			return nil, err
		}
	}

	for _, xa := range x.Accounts {
		a, err := xa.account()
		if err != nil {
			return nil, err
		}
		if err := book.AddAccount(a); err != nil {
			return nil, err
		}
	}

	for _, xt := range x.Transactions {
		t, err := xt.transaction()
		if err != nil {
			return nil, err
		}
		if err := book.AddTransaction(t); err != nil {
			return nil, err
		}
	}

	return book, nil
}

func (xc xmlCommodity) commodityID() (CommodityID, error) {
	if xc.Space == "" || xc.Symbol == "" {
		return CommodityID{}, malformed("commodity", "missing <space> or <id>")
	}
	return CommodityID{Space: xc.Space, Symbol: xc.Symbol}, nil
}

func addPrice(book *Book, xp xmlPrice) error {
	id, err := xp.Commodity.commodityID()
	if err != nil {
		return err
	}
	c := book.Commodity(id)
	if c == nil {
		return &UnknownRefError{Kind: "commodity", ID: id.String()}
	}
	on, err := date.ParseStamp(xp.Time)
	if err != nil {
		return malformed("price", "bad <time>: %v", err)
	}
	v, err := parseRational(xp.Value)
	if err != nil {
		return malformed("price", "bad <value>: %v", err)
	}
	c.Prices().Put(on, v)
	return nil
}

func (xa xmlAccount) account() (*Account, error) {
	id, err := uuid.Parse(xa.ID)
	if err != nil {
		return nil, malformed("account", "bad <id> %q: %v", xa.ID, err)
	}
	if xa.Name == "" {
		return nil, malformed("account", "%s: missing <name>", id)
	}
	typ, err := ParseAccountType(xa.Type)
	if err != nil {
		return nil, malformed("account", "%s: %v", id, err)
	}
	var parentID *uuid.UUID
	if xa.Parent != "" {
		pid, err := uuid.Parse(xa.Parent)
		if err != nil {
			return nil, malformed("account", "%s: bad <parent> %q: %v", id, xa.Parent, err)
		}
		parentID = &pid
	}
	commodityID, err := xa.Commodity.commodityID()
	if err != nil {
		return nil, malformed("account", "%s: %v", id, err)
	}
	return NewAccount(id, xa.Name, typ, parentID, commodityID), nil
}

func (xt xmlTransaction) transaction() (*Transaction, error) {
	id, err := uuid.Parse(xt.ID)
	if err != nil {
		return nil, malformed("transaction", "bad <id> %q: %v", xt.ID, err)
	}
	on, err := date.ParseStamp(xt.DatePosted)
	if err != nil {
		return nil, malformed("transaction", "%s: bad <date-posted>: %v", id, err)
	}
	positions := make([]*Position, 0, len(xt.Splits))
	for _, xs := range xt.Splits {
		accountID, err := uuid.Parse(xs.Account)
		if err != nil {
			return nil, malformed("split", "transaction %s: bad <account> %q: %v", id, xs.Account, err)
		}
		value, err := parseRational(xs.Value)
		if err != nil {
			return nil, malformed("split", "transaction %s: bad <value>: %v", id, err)
		}
		quantity, err := parseRational(xs.Quantity)
		if err != nil {
			return nil, malformed("split", "transaction %s: bad <quantity>: %v", id, err)
		}
		positions = append(positions, NewPosition(accountID, value, quantity))
	}
	return NewTransaction(id, on, xt.Description, positions)
}

// parseRational parses a GnuCash rational string such as "-5000/100" into an
// exact decimal. Going through big.Rat keeps the value exact; binary floats
// are never involved.
func parseRational(s string) (decimal.Decimal, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("invalid rational %q", s)
	}
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.Div(den), nil
}
