package xldiff

import (
	"fmt"
	"strings"
)

// CellRef identifies a single cell. Row and Col are 1-based, matching the
// coordinates excelize and the report output use.
type CellRef struct {
	Sheet string // sheet name (empty = current sheet)
	Row   int
	Col   int
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// CellName returns just the cell part like "A1" without sheet name.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + fmt.Sprintf("%d", c.Row)
}

// String formats the CellRef as "Sheet1!A1" or "A1" if no sheet.
func (c CellRef) String() string {
	if c.Sheet != "" {
		return c.Sheet + "!" + c.CellName()
	}
	return c.CellName()
}

// ParseCellRef parses a cell reference string like "A1", "Sheet1!B5", or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	var sheet string
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}

	cellPart = strings.ReplaceAll(cellPart, "$", "")
	i := 0
	for i < len(cellPart) && isAlpha(cellPart[i]) {
		i++
	}
	if i == 0 || i == len(cellPart) {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	col, err := NameToCol(cellPart[:i])
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}

	row := 0
	for _, ch := range cellPart[i:] {
		if ch < '0' || ch > '9' {
			return CellRef{}, fmt.Errorf("invalid row in cell reference: %q", s)
		}
		row = row*10 + int(ch-'0')
	}
	if row < 1 {
		return CellRef{}, fmt.Errorf("invalid row number in cell reference: %q", s)
	}

	return CellRef{Sheet: sheet, Row: row, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ColToName converts a 1-based column index to a column name.
// 1→"A", 26→"Z", 27→"AA", 703→"AAA"
func ColToName(col int) string {
	result := ""
	for col > 0 {
		col-- // adjust for 0-indexed letter
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 1-based column index.
// "A"→1, "Z"→26, "AA"→27
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col, nil
}

// Rect is an inclusive rectangle of cells with 1-based bounds.
type Rect struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// NewRect creates a Rect, normalizing swapped bounds.
func NewRect(minRow, minCol, maxRow, maxCol int) Rect {
	if maxRow < minRow {
		minRow, maxRow = maxRow, minRow
	}
	if maxCol < minCol {
		minCol, maxCol = maxCol, minCol
	}
	return Rect{MinRow: minRow, MinCol: minCol, MaxRow: maxRow, MaxCol: maxCol}
}

// ParseRect parses a range string like "A1:B5" or a single cell like "C3"
// into inclusive bounds.
func ParseRect(s string) (Rect, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)

	first, err := ParseCellRef(parts[0])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if len(parts) == 1 {
		return NewRect(first.Row, first.Col, first.Row, first.Col), nil
	}

	last, err := ParseCellRef(parts[1])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return NewRect(first.Row, first.Col, last.Row, last.Col), nil
}

// Contains returns true if (row, col) lies within the rectangle.
func (r Rect) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// Union returns the bounding rectangle of r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinRow: min(r.MinRow, o.MinRow),
		MinCol: min(r.MinCol, o.MinCol),
		MaxRow: max(r.MaxRow, o.MaxRow),
		MaxCol: max(r.MaxCol, o.MaxCol),
	}
}

// String formats the Rect as "A1:C5".
func (r Rect) String() string {
	return NewCellRef("", r.MinRow, r.MinCol).CellName() + ":" + NewCellRef("", r.MaxRow, r.MaxCol).CellName()
}

// SafeSheetName sanitizes a string for use as an Excel sheet name.
// It replaces forbidden characters ([]*?/\:) with underscore and truncates to 31 chars.
func SafeSheetName(name string) string {
	forbidden := []rune{'/', '\\', ':', '*', '?', '[', ']'}
	runes := []rune(name)
	for i, r := range runes {
		for _, f := range forbidden {
			if r == f {
				runes[i] = '_'
				break
			}
		}
	}
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}
