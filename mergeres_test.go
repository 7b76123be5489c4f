package xldiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeResolver(t *testing.T) {
	g := newMemGrid("S")
	g.merge("S", Rect{MinRow: 2, MinCol: 2, MaxRow: 3, MaxCol: 3})
	g.set("S", 2, 2, "top")
	g.setStyle("S", 2, 2, fillStyle("FFCC00"))
	m := NewMergeResolver(g)

	r, ok := m.RangeAt("S", 3, 3)
	require.True(t, ok)
	assert.Equal(t, Rect{MinRow: 2, MinCol: 2, MaxRow: 3, MaxCol: 3}, r)
	_, ok = m.RangeAt("S", 1, 1)
	assert.False(t, ok)

	row, col := m.Canonical("S", 3, 2)
	assert.Equal(t, [2]int{2, 2}, [2]int{row, col})

	// unmerged cells are their own canonical coordinate
	row, col = m.Canonical("S", 5, 7)
	assert.Equal(t, [2]int{5, 7}, [2]int{row, col})

	assert.Equal(t, "top", m.EffectiveValue("S", 3, 3))
	assert.Equal(t, "FFCC00", m.EffectiveStyle("S", 2, 3).Fill.Start.RGB)
	assert.Equal(t, "", m.EffectiveValue("S", 1, 1))
}
