package date

// Range represents an inclusive range of dates. A zero From or To leaves
// that side of the range unbounded.
type Range struct{ From, To Date }

// Contains returns true if the date is included in the range (boundaries included).
func (r Range) Contains(d Date) bool {
	if r.From != (Date{}) && d.Before(r.From) {
		return false
	}
	if r.To != (Date{}) && d.After(r.To) {
		return false
	}
	return true
}
