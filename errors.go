package gnucash

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by history lookups when the history is empty or the
// query date precedes the first recorded point. Callers test for it with
// errors.Is.
var ErrNoData = errors.New("no data")

// MalformedLedgerError reports a structural problem in the ledger file: a
// required element or attribute is missing, or its text cannot be parsed.
// The loader aborts on the first one; partial books are never returned.
type MalformedLedgerError struct {
	Element string // local name of the offending element
	Reason  string
}

func (e *MalformedLedgerError) Error() string {
	return fmt.Sprintf("malformed ledger: <%s>: %s", e.Element, e.Reason)
}

// IntegrityError reports a violation of the book's data invariants, such as
// a transaction whose position values do not sum to zero or a duplicate
// account id. It is not recoverable.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string { return "integrity error: " + e.Reason }

// UnknownRefError reports a reference to an account or commodity id that is
// not present in the book, meaning the source file references an entity that
// is missing or parsed out of order.
type UnknownRefError struct {
	Kind string // "account" or "commodity"
	ID   string
}

func (e *UnknownRefError) Error() string {
	return fmt.Sprintf("unknown %s reference %q", e.Kind, e.ID)
}
