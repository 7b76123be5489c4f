package xldiff

// memGrid is an in-memory GridAccessor for tests. It keeps values,
// style snapshots, and merged ranges per sheet and tracks bounds as
// cells are set.
type memGrid struct {
	names  []string
	values map[string]map[[2]int]string
	styles map[string]map[[2]int]CellStyle
	merged map[string][]Rect
	bounds map[string][2]int
}

func newMemGrid(sheets ...string) *memGrid {
	g := &memGrid{
		values: make(map[string]map[[2]int]string),
		styles: make(map[string]map[[2]int]CellStyle),
		merged: make(map[string][]Rect),
		bounds: make(map[string][2]int),
	}
	for _, s := range sheets {
		g.addSheet(s)
	}
	return g
}

func (g *memGrid) addSheet(name string) {
	g.names = append(g.names, name)
	g.values[name] = make(map[[2]int]string)
	g.styles[name] = make(map[[2]int]CellStyle)
}

func (g *memGrid) set(sheet string, row, col int, val string) {
	g.values[sheet][[2]int{row, col}] = val
	g.grow(sheet, row, col)
}

func (g *memGrid) setStyle(sheet string, row, col int, st CellStyle) {
	g.styles[sheet][[2]int{row, col}] = st
	g.grow(sheet, row, col)
}

func (g *memGrid) merge(sheet string, r Rect) {
	g.merged[sheet] = append(g.merged[sheet], r)
	g.grow(sheet, r.MaxRow, r.MaxCol)
}

func (g *memGrid) grow(sheet string, row, col int) {
	b := g.bounds[sheet]
	if row > b[0] {
		b[0] = row
	}
	if col > b[1] {
		b[1] = col
	}
	g.bounds[sheet] = b
}

func (g *memGrid) SheetNames() []string { return g.names }

func (g *memGrid) HasSheet(name string) bool {
	_, ok := g.values[name]
	return ok
}

func (g *memGrid) Bounds(sheet string) (int, int) {
	b := g.bounds[sheet]
	return b[0], b[1]
}

func (g *memGrid) CellValue(sheet string, row, col int) string {
	return g.values[sheet][[2]int{row, col}]
}

func (g *memGrid) CellStyle(sheet string, row, col int) CellStyle {
	return g.styles[sheet][[2]int{row, col}]
}

func (g *memGrid) MergedRanges(sheet string) []Rect {
	return g.merged[sheet]
}

// thinBorders is the bordered style used to mark table cells in tests.
func thinBorders() CellStyle {
	side := BorderSide{Style: 1, Color: "000000"}
	return CellStyle{Border: BorderInfo{Left: side, Right: side, Top: side, Bottom: side}}
}

// setTable writes a bordered rectangular block of values, row-major from
// the rectangle's top-left.
func (g *memGrid) setTable(sheet string, rect Rect, rows [][]string) {
	for r := rect.MinRow; r <= rect.MaxRow; r++ {
		for c := rect.MinCol; c <= rect.MaxCol; c++ {
			g.setStyle(sheet, r, c, thinBorders())
			i, j := r-rect.MinRow, c-rect.MinCol
			if i < len(rows) && j < len(rows[i]) && rows[i][j] != "" {
				g.set(sheet, r, c, rows[i][j])
			}
		}
	}
}

func fillStyle(rgb string) CellStyle {
	return CellStyle{Fill: FillInfo{Start: ColorRef{RGB: rgb}}}
}
