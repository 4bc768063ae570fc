package seatmap

// CapacityPolicy decides what Toggle does when a new seat is picked
// while the selection is already at its target size.
type CapacityPolicy int

const (
	// EvictOldest replaces the oldest pick with the new one (the
	// behaviour of the targeted "select exactly N seats" flow).
	EvictOldest CapacityPolicy = iota
	// Reject ignores the new pick (the behaviour of the capped
	// "up to N seats" flow).
	Reject
)

// Selection tracks the seats a customer has picked for one
// showtime.  Toggling a seat that is already booked by anyone else
// is always a silent no-op; so is toggling a label that is not on
// the grid.
type Selection struct {
	grid   Grid
	target int
	policy CapacityPolicy
	booked map[string]bool
	picks  []string
}

// NewSelection creates a selection for the given grid.  target is
// the number of seats the customer is expected to pick; booked is
// the set of labels already taken by other bookings for the same
// showtime.
func NewSelection(grid Grid, target int, policy CapacityPolicy, booked []string) *Selection {
	s := &Selection{
		grid:   grid,
		target: target,
		policy: policy,
		booked: make(map[string]bool, len(booked)),
	}
	for _, b := range booked {
		if row, n, ok := SplitLabel(b); ok {
			s.booked[Label(row, n)] = true
		}
	}
	return s
}

// Toggle flips the selection state of a seat label.
//
// Booked seats and labels outside the grid are ignored.  A selected
// seat is deselected.  An unselected seat is added while the
// selection is under target; at capacity the policy decides whether
// the oldest pick is evicted or the new pick is dropped.
func (s *Selection) Toggle(label string) {
	row, n, ok := SplitLabel(label)
	if !ok {
		return
	}
	label = Label(row, n)
	if s.booked[label] || !s.grid.Contains(label) {
		return
	}
	for i, p := range s.picks {
		if p == label {
			s.picks = append(s.picks[:i], s.picks[i+1:]...)
			return
		}
	}
	if s.target > 0 && len(s.picks) >= s.target {
		if s.policy == Reject {
			return
		}
		s.picks = append(s.picks[1:], label)
		return
	}
	s.picks = append(s.picks, label)
}

// Seats returns the current picks in selection order.
func (s *Selection) Seats() []string {
	out := make([]string, len(s.picks))
	copy(out, s.picks)
	return out
}

// Count returns the number of selected seats.
func (s *Selection) Count() int { return len(s.picks) }

// Complete reports whether the selection has reached its target.
func (s *Selection) Complete() bool { return s.target > 0 && len(s.picks) == s.target }

// Total sums the per-seat price over the current picks using the
// grid's premium-row lookup.
func (s *Selection) Total(standard uint32, premium *uint32) uint32 {
	return Total(s.grid, s.picks, standard, premium)
}

// Total sums the per-seat price over the given labels: premium rate
// for premium rows when configured, standard rate otherwise.
func Total(grid Grid, seats []string, standard uint32, premium *uint32) uint32 {
	var total uint32
	for _, label := range seats {
		total += grid.PriceFor(label, standard, premium)
	}
	return total
}
