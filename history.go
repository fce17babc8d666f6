package gnucash

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mrader1248/gnucash-tools/date"
)

// ValueHistory stores a chronological series of decimal values, each
// associated with a specific date. Dates are unique and the series is always
// sorted, so the history describes a step function: the value on any day is
// the most recently recorded value on or before it.
type ValueHistory struct {
	days   []date.Date
	values []decimal.Decimal
}

// NewValueHistory creates an empty history.
func NewValueHistory() *ValueHistory { return &ValueHistory{} }

// Len returns the number of points in the history.
func (h *ValueHistory) Len() int { return len(h.days) }

// First returns the earliest date and value in the history.
// It must not be called on an empty history.
func (h *ValueHistory) First() (date.Date, decimal.Decimal) { return h.days[0], h.values[0] }

// Last returns the latest date and value in the history.
// It must not be called on an empty history.
func (h *ValueHistory) Last() (date.Date, decimal.Decimal) {
	last := len(h.days) - 1
	return h.days[last], h.values[last]
}

// search locates on in the sorted day slice.
func (h *ValueHistory) search(on date.Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, on, date.Date.Compare)
}

// At returns the value on a given day, or the most recent value before it.
// It returns an error wrapping ErrNoData if the history is empty or the day
// precedes the first recorded point.
func (h *ValueHistory) At(on date.Date) (decimal.Decimal, error) {
	if h.Len() == 0 {
		return decimal.Decimal{}, fmt.Errorf("empty history: %w", ErrNoData)
	}
	i, found := h.search(on)
	if found {
		return h.values[i], nil
	}
	// i is the insertion point; the step function's value is the entry just
	// before it.
	if i == 0 {
		return decimal.Decimal{}, fmt.Errorf(
			"no value on or before %s; history ranges from %s to %s: %w",
			on, h.days[0], h.days[len(h.days)-1], ErrNoData)
	}
	return h.values[i-1], nil
}

// at is like At for callers that guarantee on is not before the first point.
func (h *ValueHistory) at(on date.Date) decimal.Decimal {
	v, err := h.At(on)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// Put adds a point to the history, keeping it sorted.
// An existing value at that date is overwritten.
func (h *ValueHistory) Put(on date.Date, v decimal.Decimal) *ValueHistory {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// PutAdd adds a point to the history, keeping it sorted.
// An existing value at that date is added to.
func (h *ValueHistory) PutAdd(on date.Date, v decimal.Decimal) *ValueHistory {
	i, found := h.search(on)
	if found {
		h.values[i] = h.values[i].Add(v)
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Contains reports whether a point exists at exactly that date.
func (h *ValueHistory) Contains(on date.Date) bool {
	_, found := h.search(on)
	return found
}

// Points returns an iterator over all date/value pairs in chronological order.
func (h *ValueHistory) Points() iter.Seq2[date.Date, decimal.Decimal] {
	return func(yield func(date.Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// BalanceFromChanges treats the series as per-date deltas and returns the
// running cumulative sum over the same dates.
func (h *ValueHistory) BalanceFromChanges() *ValueHistory {
	r := &ValueHistory{
		days:   slices.Clone(h.days),
		values: make([]decimal.Decimal, len(h.values)),
	}
	sum := decimal.Zero
	for i, v := range h.values {
		sum = sum.Add(v)
		r.values[i] = sum
	}
	return r
}

// ChangesFromBalance is the inverse of BalanceFromChanges: the first point
// keeps its value and each subsequent point becomes the difference from its
// predecessor. An empty history yields an empty history.
func (h *ValueHistory) ChangesFromBalance() *ValueHistory {
	if h.Len() == 0 {
		return h
	}
	r := &ValueHistory{
		days:   slices.Clone(h.days),
		values: make([]decimal.Decimal, len(h.values)),
	}
	r.values[0] = h.values[0]
	for i := 1; i < len(h.values); i++ {
		r.values[i] = h.values[i].Sub(h.values[i-1])
	}
	return r
}

// Add returns the pointwise sum of two histories, with step-function lookup
// semantics: the result's dates are the union of both inputs' dates from the
// later series' first date onward, preceded verbatim by the earlier series'
// points before that threshold. Adding an empty history returns the other
// operand unchanged. Add is commutative.
func (h *ValueHistory) Add(other *ValueHistory) *ValueHistory {
	if h.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return h
	}
	start, _ := other.First()
	if first, _ := h.First(); first.After(start) {
		return other.Add(h)
	}

	// Points of h strictly before other's start are kept as they are.
	k, _ := h.search(start)
	r := &ValueHistory{
		days:   slices.Clone(h.days[:k]),
		values: slices.Clone(h.values[:k]),
	}

	// From other's start onward both histories are defined, so each union
	// date gets the sum of both step-function values.
	for _, on := range mergeDays(h.days[k:], other.days) {
		r.days = append(r.days, on)
		r.values = append(r.values, h.at(on).Add(other.at(on)))
	}
	return r
}

// mergeDays merges two sorted day slices into one sorted slice without
// duplicates.
func mergeDays(a, b []date.Date) []date.Date {
	merged := make([]date.Date, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b):
			merged = append(merged, a[i])
			i++
		case i == len(a):
			merged = append(merged, b[j])
			j++
		default:
			switch c := a[i].Compare(b[j]); {
			case c < 0:
				merged = append(merged, a[i])
				i++
			case c > 0:
				merged = append(merged, b[j])
				j++
			default:
				merged = append(merged, a[i])
				i, j = i+1, j+1
			}
		}
	}
	return merged
}

// String renders the history one "date value" pair per line.
func (h *ValueHistory) String() string {
	var b strings.Builder
	for i, on := range h.days {
		fmt.Fprintf(&b, "%s %s\n", on, h.values[i])
	}
	return b.String()
}
