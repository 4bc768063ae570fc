// Package seatmap models the fixed rectangular seat grid of a
// screen: seat labels, premium rows, per-seat pricing and the
// selection state a customer builds up before checkout.  It is pure
// state; nothing here touches the database.
package seatmap

import (
	"strconv"
	"strings"
)

// Grid describes the seat layout of a screen: an ordered list of
// row letters, a fixed number of seats per row and the subset of
// rows priced at the premium rate.
type Grid struct {
	rows        []string
	seatsPerRow int
	premium     map[string]bool
}

// NewGrid builds a grid from explicit geometry.  Row letters are
// normalized to upper case.  Premium rows not present in rows are
// ignored.
func NewGrid(rows []string, seatsPerRow int, premiumRows []string) Grid {
	g := Grid{
		rows:        make([]string, 0, len(rows)),
		seatsPerRow: seatsPerRow,
		premium:     make(map[string]bool, len(premiumRows)),
	}
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		g.rows = append(g.rows, r)
		present[r] = true
	}
	for _, r := range premiumRows {
		r = strings.ToUpper(strings.TrimSpace(r))
		if present[r] {
			g.premium[r] = true
		}
	}
	return g
}

// DefaultGrid is the standard screen layout: rows A–J, twelve seats
// per row, with the first three rows premium.
func DefaultGrid() Grid {
	return NewGrid(
		[]string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		12,
		[]string{"A", "B", "C"},
	)
}

// CompactGrid is the smaller screen layout used by single-price
// screens: rows A–H, twelve seats per row, no premium rows.
func CompactGrid() Grid {
	return NewGrid(
		[]string{"A", "B", "C", "D", "E", "F", "G", "H"},
		12,
		nil,
	)
}

// Rows returns the ordered row letters.
func (g Grid) Rows() []string {
	out := make([]string, len(g.rows))
	copy(out, g.rows)
	return out
}

// SeatsPerRow returns the number of seats in each row.
func (g Grid) SeatsPerRow() int { return g.seatsPerRow }

// Capacity returns the total number of seats on the grid.
func (g Grid) Capacity() int { return len(g.rows) * g.seatsPerRow }

// PremiumRows returns the row letters priced at the premium rate,
// in grid order.
func (g Grid) PremiumRows() []string {
	out := make([]string, 0, len(g.premium))
	for _, r := range g.rows {
		if g.premium[r] {
			out = append(out, r)
		}
	}
	return out
}

// Label builds the seat label for a row letter and 1-based seat
// number, e.g. Label("B", 7) == "B7".
func Label(row string, n int) string {
	return strings.ToUpper(row) + strconv.Itoa(n)
}

// SplitLabel parses a seat label into its row letters and 1-based
// seat number.  It returns ok=false for malformed labels.
func SplitLabel(label string) (row string, n int, ok bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	i := 0
	for i < len(label) && label[i] >= 'A' && label[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(label) {
		return "", 0, false
	}
	num, err := strconv.Atoi(label[i:])
	if err != nil || num < 1 {
		return "", 0, false
	}
	return label[:i], num, true
}

// Contains reports whether the label names a seat on this grid.
func (g Grid) Contains(label string) bool {
	row, n, ok := SplitLabel(label)
	if !ok || n > g.seatsPerRow {
		return false
	}
	for _, r := range g.rows {
		if r == row {
			return true
		}
	}
	return false
}

// IsPremium reports whether the label's row is a premium row.
func (g Grid) IsPremium(label string) bool {
	row, _, ok := SplitLabel(label)
	return ok && g.premium[row]
}

// PriceFor returns the price of a single seat: the premium rate
// when the seat sits in a premium row and a premium price is
// configured, otherwise the standard rate.
func (g Grid) PriceFor(label string, standard uint32, premium *uint32) uint32 {
	if g.IsPremium(label) && premium != nil && *premium > 0 {
		return *premium
	}
	return standard
}
