// Package gnucash reads a compressed GnuCash XML ledger into an in-memory
// book of accounts, commodities and transactions, and derives per-account
// value histories from it.
//
// The core functionalities include:
//   - Ledger Loading: decoding the gzip-compressed XML book into a fully
//     cross-referenced object graph, validated on the way in (double-entry
//     zero-sum, closed account-type set, resolvable references).
//   - Value Histories: a sparse, date-indexed, piecewise-constant time
//     series with step-function lookup, prefix-sum and first-difference
//     transforms, and a union-merge addition.
//   - Derived Balances: on-demand per-account quantity and base-currency
//     balance histories, aggregated recursively over the account tree with
//     commodity prices applied at each leaf.
//
// The book is immutable after loading; every derived history is a pure
// function of the loaded state. This package is the foundation for the
// `gct` command-line tool.
package gnucash
