package tax

import "strconv"

// Entry pairs a province name with its combined sales tax rate in
// basis points (Ontario 13% = 1300).
type Entry struct {
	Province string
	RateBps  int
}

// Table is the read-only province tax reference data. It is built once
// at startup and shared across requests without locking.
type Table struct {
	entries []Entry
	byName  map[string]int
}

// New builds a Table from the provided entries.
func New(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for _, e := range t.entries {
		t.byName[e.Province] = e.RateBps
	}
	return t
}

// DefaultTable returns the table of the thirteen Canadian provinces and
// territories with their combined sales tax rates.
func DefaultTable() *Table {
	return New([]Entry{
		{Province: "Alberta", RateBps: 500},
		{Province: "British Columbia", RateBps: 1200},
		{Province: "Manitoba", RateBps: 1200},
		{Province: "New Brunswick", RateBps: 1500},
		{Province: "Newfoundland and Labrador", RateBps: 1500},
		{Province: "Northwest Territories", RateBps: 500},
		{Province: "Nova Scotia", RateBps: 1500},
		{Province: "Nunavut", RateBps: 500},
		{Province: "Ontario", RateBps: 1300},
		{Province: "Prince Edward Island", RateBps: 1500},
		{Province: "Quebec", RateBps: 1490},
		{Province: "Saskatchewan", RateBps: 1100},
		{Province: "Yukon", RateBps: 500},
	})
}

// Rate returns the tax rate in basis points for the given province.
// The match is case-sensitive and exact.
func (t *Table) Rate(province string) (int, bool) {
	bps, ok := t.byName[province]
	return bps, ok
}

// Contains reports whether the province is a known table entry.
func (t *Table) Contains(province string) bool {
	_, ok := t.byName[province]
	return ok
}

// Entries returns a copy of the table entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// PercentString renders a basis-point rate as a display percentage,
// trimming trailing zeros ("1300" -> "13", "1490" -> "14.9").
func PercentString(bps int) string {
	return strconv.FormatFloat(float64(bps)/100, 'f', -1, 64)
}
