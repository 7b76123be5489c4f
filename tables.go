package xldiff

// DetectTables finds bordered rectangular regions on one sheet. Cells are
// scanned in row-major order; when an unvisited cell carries any border
// side the region grows greedily: rows extend downward while any cell in
// the current column span of the next row has a border, then columns
// extend rightward while any cell in the grown row span has a border.
//
// This is axis-aligned growth, not a connected-component flood fill. It
// can over-merge staggered border blocks and under-merge irregular tables
// sharing only partial border lines; downstream region union absorbs most
// of that, and the behavior is kept as-is.
func DetectTables(grid GridAccessor, sheet string) []Rect {
	maxRow, maxCol := grid.Bounds(sheet)
	visited := make(map[[2]int]bool)
	var tables []Rect

	hasBorder := func(row, col int) bool {
		return grid.CellStyle(sheet, row, col).Border.Any()
	}

	for i := 1; i <= maxRow; i++ {
		for j := 1; j <= maxCol; j++ {
			if visited[[2]int{i, j}] {
				continue
			}
			if !hasBorder(i, j) {
				continue
			}

			endRow := i
			for endRow+1 <= maxRow && anyBorderInRow(hasBorder, endRow+1, j, maxCol) {
				endRow++
			}
			endCol := j
			for endCol+1 <= maxCol && anyBorderInCol(hasBorder, endCol+1, i, endRow) {
				endCol++
			}

			for r := i; r <= endRow; r++ {
				for c := j; c <= endCol; c++ {
					visited[[2]int{r, c}] = true
				}
			}
			tables = append(tables, Rect{MinRow: i, MinCol: j, MaxRow: endRow, MaxCol: endCol})
		}
	}
	return tables
}

func anyBorderInRow(hasBorder func(int, int) bool, row, fromCol, toCol int) bool {
	for c := fromCol; c <= toCol; c++ {
		if hasBorder(row, c) {
			return true
		}
	}
	return false
}

func anyBorderInCol(hasBorder func(int, int) bool, col, fromRow, toRow int) bool {
	for r := fromRow; r <= toRow; r++ {
		if hasBorder(r, col) {
			return true
		}
	}
	return false
}

// MergeRegions unions rectangles that overlap or touch with zero gap
// until no pair merges. Quadratic per iteration, which is fine for the
// handful of tables a sheet carries.
func MergeRegions(rects []Rect) []Rect {
	out := make([]Rect, len(rects))
	copy(out, rects)

	changed := true
	for changed && len(out) > 1 {
		changed = false
		merged := make([]Rect, 0, len(out))
		used := make([]bool, len(out))
		for i := range out {
			if used[i] {
				continue
			}
			current := out[i]
			for j := i + 1; j < len(out); j++ {
				if used[j] {
					continue
				}
				if rectsTouch(current, out[j]) {
					current = current.Union(out[j])
					used[j] = true
					changed = true
				}
			}
			merged = append(merged, current)
			used[i] = true
		}
		out = merged
	}
	return out
}

// rectsTouch reports whether two rectangles overlap or are adjacent with
// no full empty row or column between them.
func rectsTouch(a, b Rect) bool {
	if a.MaxRow < b.MinRow-1 {
		return false
	}
	if b.MaxRow < a.MinRow-1 {
		return false
	}
	if a.MaxCol < b.MinCol-1 {
		return false
	}
	if b.MaxCol < a.MinCol-1 {
		return false
	}
	return true
}
