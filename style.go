package xldiff

import (
	"fmt"
	"strconv"
	"strings"
)

// FontInfo is the font facet of a cell style snapshot.
type FontInfo struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline string
}

// String renders the font the way it appears in issue records.
func (f FontInfo) String() string {
	return fmt.Sprintf("%s %s Bold:%v Italic:%v Underline:%s",
		safeStr(f.Name), formatSize(f.Size), f.Bold, f.Italic, safeStr(f.Underline))
}

func formatSize(size float64) string {
	if size == 0 {
		return absentValue
	}
	return strconv.FormatFloat(size, 'g', -1, 64)
}

// AlignInfo is the alignment facet of a cell style snapshot.
type AlignInfo struct {
	Horizontal string
	Vertical   string
}

func (a AlignInfo) String() string {
	return fmt.Sprintf("H:%s V:%s", safeStr(a.Horizontal), safeStr(a.Vertical))
}

// ColorRef is a raw color reference as read from a grid: a direct RGB
// value, a palette index, a theme index, or an uninterpreted raw form.
// The zero value means "no color". NormalizeColor turns it into a
// NormalizedColor.
type ColorRef struct {
	RGB     string
	Indexed *int
	Theme   *int
	Raw     string
	Err     string // non-empty when the style could not be interpreted
}

// FillInfo is the fill facet of a cell style snapshot. Only the start
// (foreground) color participates in comparison.
type FillInfo struct {
	Start ColorRef
}

// BorderSide describes one edge of a cell border. Style follows the
// numeric border style indexes used by xlsx (0 = no border).
type BorderSide struct {
	Style int
	Color string
}

// BorderInfo is the border facet of a cell style snapshot.
type BorderInfo struct {
	Left, Right, Top, Bottom BorderSide
}

// Any reports whether any side carries a border.
func (b BorderInfo) Any() bool {
	return b.Left.Style != 0 || b.Right.Style != 0 || b.Top.Style != 0 || b.Bottom.Style != 0
}

// String renders the border descriptor structurally so that equal
// descriptors always render identically.
func (b BorderInfo) String() string {
	var sb strings.Builder
	for _, s := range []struct {
		name string
		side BorderSide
	}{{"left", b.Left}, {"right", b.Right}, {"top", b.Top}, {"bottom", b.Bottom}} {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if s.side.Style == 0 {
			sb.WriteString(s.name + ":none")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:%d", s.name, s.side.Style))
		if s.side.Color != "" {
			sb.WriteString("/" + s.side.Color)
		}
	}
	return sb.String()
}

// CellStyle is a read-only snapshot of the style facets the comparator
// inspects. The zero value is the default (unstyled) cell.
type CellStyle struct {
	Font      FontInfo
	Alignment AlignInfo
	Fill      FillInfo
	Border    BorderInfo
}
