package xldiff

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GridAccessor is the read-only capability the engine needs from a
// workbook: per-cell value and style, merged ranges, and sheet bounds.
// Implementations must be safe for the whole duration of one comparison
// run; the engine never mutates them.
type GridAccessor interface {
	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string
	// HasSheet reports whether the named sheet exists.
	HasSheet(name string) bool
	// Bounds returns the maximum populated row and column of a sheet.
	Bounds(sheet string) (maxRow, maxCol int)
	// CellValue returns the stringified value at (row, col), or "" when
	// the cell is absent or cannot be read.
	CellValue(sheet string, row, col int) string
	// CellStyle returns the style snapshot at (row, col). Lookup
	// failures yield a zero snapshot with a diagnostic fill color.
	CellStyle(sheet string, row, col int) CellStyle
	// MergedRanges returns the merged rectangles of a sheet.
	MergedRanges(sheet string) []Rect
}

// ExcelizeGrid implements GridAccessor over an excelize workbook. Style
// snapshots are cached per style ID since workbooks reuse a small number
// of styles across many cells.
type ExcelizeGrid struct {
	file       *excelize.File
	sheets     map[string]bool
	bounds     map[string][2]int
	merged     map[string][]Rect
	styleCache map[int]CellStyle
}

// OpenGrid opens an xlsx file as a GridAccessor.
func OpenGrid(path string) (*ExcelizeGrid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	return NewExcelizeGrid(f)
}

// NewExcelizeGrid wraps an already-open excelize file.
func NewExcelizeGrid(f *excelize.File) (*ExcelizeGrid, error) {
	g := &ExcelizeGrid{
		file:       f,
		sheets:     make(map[string]bool),
		bounds:     make(map[string][2]int),
		merged:     make(map[string][]Rect),
		styleCache: make(map[int]CellStyle),
	}
	for _, name := range f.GetSheetList() {
		g.sheets[name] = true
		if err := g.readSheetShape(name); err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
	}
	return g, nil
}

// readSheetShape computes bounds and merged ranges for one sheet.
func (g *ExcelizeGrid) readSheetShape(name string) error {
	rows, err := g.file.GetRows(name)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	maxRow := len(rows)
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	// GetRows trims cells that carry only styles. The worksheet dimension
	// still covers them, and border-only regions must stay inside the
	// bounds to be detectable.
	if dim, err := g.file.GetSheetDimension(name); err == nil && dim != "" {
		if r, err := ParseRect(dim); err == nil {
			if r.MaxRow > maxRow {
				maxRow = r.MaxRow
			}
			if r.MaxCol > maxCol {
				maxCol = r.MaxCol
			}
		}
	}

	merges, err := g.file.GetMergeCells(name)
	if err != nil {
		return fmt.Errorf("read merged cells: %w", err)
	}
	for _, mc := range merges {
		start, err := ParseCellRef(mc.GetStartAxis())
		if err != nil {
			continue
		}
		end, err := ParseCellRef(mc.GetEndAxis())
		if err != nil {
			continue
		}
		r := NewRect(start.Row, start.Col, end.Row, end.Col)
		g.merged[name] = append(g.merged[name], r)
		if r.MaxRow > maxRow {
			maxRow = r.MaxRow
		}
		if r.MaxCol > maxCol {
			maxCol = r.MaxCol
		}
	}

	g.bounds[name] = [2]int{maxRow, maxCol}
	return nil
}

// SheetNames returns the sheet names in workbook order.
func (g *ExcelizeGrid) SheetNames() []string {
	return g.file.GetSheetList()
}

// HasSheet reports whether the named sheet exists.
func (g *ExcelizeGrid) HasSheet(name string) bool {
	return g.sheets[name]
}

// Bounds returns the maximum populated row and column of a sheet.
func (g *ExcelizeGrid) Bounds(sheet string) (maxRow, maxCol int) {
	b := g.bounds[sheet]
	return b[0], b[1]
}

// CellValue returns the stringified value at (row, col). Read failures
// are cell-scoped: they yield "" rather than aborting the run.
func (g *ExcelizeGrid) CellValue(sheet string, row, col int) string {
	v, err := g.file.GetCellValue(sheet, NewCellRef("", row, col).CellName())
	if err != nil {
		return ""
	}
	return v
}

// CellStyle returns the style snapshot at (row, col).
func (g *ExcelizeGrid) CellStyle(sheet string, row, col int) CellStyle {
	styleID, err := g.file.GetCellStyle(sheet, NewCellRef("", row, col).CellName())
	if err != nil {
		return CellStyle{Fill: FillInfo{Start: ColorRef{Err: err.Error()}}}
	}
	if cached, ok := g.styleCache[styleID]; ok {
		return cached
	}
	st, err := g.file.GetStyle(styleID)
	if err != nil || st == nil {
		snap := CellStyle{}
		if err != nil {
			snap.Fill.Start.Err = err.Error()
		}
		g.styleCache[styleID] = snap
		return snap
	}
	snap := snapshotStyle(st)
	g.styleCache[styleID] = snap
	return snap
}

// MergedRanges returns the merged rectangles of a sheet.
func (g *ExcelizeGrid) MergedRanges(sheet string) []Rect {
	return g.merged[sheet]
}

// Close closes the underlying excelize file.
func (g *ExcelizeGrid) Close() error {
	return g.file.Close()
}

// snapshotStyle converts an excelize style into the comparator's snapshot.
func snapshotStyle(st *excelize.Style) CellStyle {
	var snap CellStyle

	if st.Font != nil {
		snap.Font = FontInfo{
			Name:      st.Font.Family,
			Size:      st.Font.Size,
			Bold:      st.Font.Bold,
			Italic:    st.Font.Italic,
			Underline: st.Font.Underline,
		}
	}
	if st.Alignment != nil {
		snap.Alignment = AlignInfo{
			Horizontal: st.Alignment.Horizontal,
			Vertical:   st.Alignment.Vertical,
		}
	}
	if len(st.Fill.Color) > 0 {
		snap.Fill.Start.RGB = st.Fill.Color[0]
	}
	for _, b := range st.Border {
		side := BorderSide{Style: b.Style, Color: b.Color}
		switch b.Type {
		case "left":
			snap.Border.Left = side
		case "right":
			snap.Border.Right = side
		case "top":
			snap.Border.Top = side
		case "bottom":
			snap.Border.Bottom = side
		}
	}
	return snap
}
