package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGridGeometry(t *testing.T) {
	g := DefaultGrid()
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}, g.Rows())
	assert.Equal(t, 12, g.SeatsPerRow())
	assert.Equal(t, 120, g.Capacity())
	assert.Equal(t, []string{"A", "B", "C"}, g.PremiumRows())
}

func TestCompactGridGeometry(t *testing.T) {
	g := CompactGrid()
	assert.Equal(t, 96, g.Capacity())
	assert.Empty(t, g.PremiumRows())
}

func TestNewGridNormalizes(t *testing.T) {
	g := NewGrid([]string{" a", "b ", ""}, 4, []string{"B", "Z"})
	assert.Equal(t, []string{"A", "B"}, g.Rows())
	// Z is not a row, so only B survives as premium.
	assert.Equal(t, []string{"B"}, g.PremiumRows())
}

func TestSplitLabel(t *testing.T) {
	row, n, ok := SplitLabel("b7")
	assert.True(t, ok)
	assert.Equal(t, "B", row)
	assert.Equal(t, 7, n)

	for _, bad := range []string{"", "7", "B", "B0", "B-1", "Bx"} {
		_, _, ok := SplitLabel(bad)
		assert.False(t, ok, "label %q should not parse", bad)
	}
}

func TestContains(t *testing.T) {
	g := DefaultGrid()
	assert.True(t, g.Contains("A1"))
	assert.True(t, g.Contains("j12"))
	assert.False(t, g.Contains("J13"))
	assert.False(t, g.Contains("K1"))
	assert.False(t, g.Contains("garbage"))
}

func TestPriceFor(t *testing.T) {
	g := DefaultGrid()
	premium := uint32(350)

	assert.Equal(t, uint32(350), g.PriceFor("A1", 200, &premium))
	assert.Equal(t, uint32(200), g.PriceFor("D5", 200, &premium))
	// No premium price configured: premium rows fall back to standard.
	assert.Equal(t, uint32(200), g.PriceFor("A1", 200, nil))
	zero := uint32(0)
	assert.Equal(t, uint32(200), g.PriceFor("A1", 200, &zero))
}
