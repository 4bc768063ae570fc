package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleSelectAndDeselect(t *testing.T) {
	s := NewSelection(DefaultGrid(), 3, EvictOldest, nil)

	s.Toggle("A1")
	s.Toggle("A2")
	assert.Equal(t, []string{"A1", "A2"}, s.Seats())
	assert.False(t, s.Complete())

	s.Toggle("A1")
	assert.Equal(t, []string{"A2"}, s.Seats())
	assert.Equal(t, 1, s.Count())
}

func TestToggleBookedSeatIsNoOp(t *testing.T) {
	s := NewSelection(DefaultGrid(), 2, EvictOldest, []string{"B5"})

	s.Toggle("B5")
	s.Toggle("B5")
	s.Toggle("b5")
	assert.Empty(t, s.Seats())
}

func TestToggleOffGridIsNoOp(t *testing.T) {
	s := NewSelection(DefaultGrid(), 2, EvictOldest, nil)

	s.Toggle("K1")
	s.Toggle("A13")
	s.Toggle("??")
	assert.Empty(t, s.Seats())
}

func TestToggleEvictsOldestAtTarget(t *testing.T) {
	s := NewSelection(DefaultGrid(), 2, EvictOldest, nil)

	s.Toggle("A1")
	s.Toggle("A2")
	s.Toggle("A3")
	assert.Equal(t, []string{"A2", "A3"}, s.Seats())
	assert.True(t, s.Complete())

	s.Toggle("A4")
	assert.Equal(t, []string{"A3", "A4"}, s.Seats())
}

func TestToggleRejectsAtTarget(t *testing.T) {
	s := NewSelection(CompactGrid(), 2, Reject, nil)

	s.Toggle("A1")
	s.Toggle("A2")
	s.Toggle("A3")
	assert.Equal(t, []string{"A1", "A2"}, s.Seats())

	// Deselecting reopens a slot.
	s.Toggle("A1")
	s.Toggle("A3")
	assert.Equal(t, []string{"A2", "A3"}, s.Seats())
}

func TestSelectionTotal(t *testing.T) {
	premium := uint32(350)
	s := NewSelection(DefaultGrid(), 3, EvictOldest, nil)

	s.Toggle("A1") // premium row
	s.Toggle("A2") // premium row
	s.Toggle("D5") // standard row
	assert.Equal(t, uint32(350+350+200), s.Total(200, &premium))
	assert.Equal(t, uint32(600), s.Total(200, nil))
}
