package xldiff

// MergeResolver maps coordinates to the top-left of their merged range,
// per grid. The sample and target grids each get their own resolver
// because a cell may be merged on one side only.
type MergeResolver struct {
	grid   GridAccessor
	ranges map[string][]Rect // sheet → merged ranges, filled lazily
}

// NewMergeResolver creates a resolver over one grid.
func NewMergeResolver(grid GridAccessor) *MergeResolver {
	return &MergeResolver{grid: grid, ranges: make(map[string][]Rect)}
}

func (m *MergeResolver) rangesFor(sheet string) []Rect {
	if rs, ok := m.ranges[sheet]; ok {
		return rs
	}
	rs := m.grid.MergedRanges(sheet)
	m.ranges[sheet] = rs
	return rs
}

// RangeAt returns the merged range containing (row, col), if any.
func (m *MergeResolver) RangeAt(sheet string, row, col int) (Rect, bool) {
	for _, r := range m.rangesFor(sheet) {
		if r.Contains(row, col) {
			return r, true
		}
	}
	return Rect{}, false
}

// Canonical returns the top-left coordinate of the merged range
// containing (row, col), or (row, col) itself when unmerged.
func (m *MergeResolver) Canonical(sheet string, row, col int) (int, int) {
	if r, ok := m.RangeAt(sheet, row, col); ok {
		return r.MinRow, r.MinCol
	}
	return row, col
}

// EffectiveValue reads the value at the canonical coordinate, so every
// cell of a merged range reports the range's value.
func (m *MergeResolver) EffectiveValue(sheet string, row, col int) string {
	r, c := m.Canonical(sheet, row, col)
	return m.grid.CellValue(sheet, r, c)
}

// EffectiveStyle reads the style snapshot at the canonical coordinate.
func (m *MergeResolver) EffectiveStyle(sheet string, row, col int) CellStyle {
	r, c := m.Canonical(sheet, row, col)
	return m.grid.CellStyle(sheet, r, c)
}
