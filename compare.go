package xldiff

import "fmt"

// absentValue is the sentinel an absent cell value stringifies to. It is
// distinct from any real content the comparator produces on its own.
const absentValue = "None"

// safeStr maps the empty (absent) form to the sentinel.
func safeStr(s string) string {
	if s == "" {
		return absentValue
	}
	return s
}

// IssueType classifies one mismatch.
type IssueType int

const (
	IssueValue IssueType = iota
	IssueFont
	IssueAlignment
	IssueFill
	IssueBorder
	IssueMissingInTarget
	IssueMissingInSample
)

// String returns the report label for the issue type.
func (t IssueType) String() string {
	switch t {
	case IssueValue:
		return "Value Mismatch"
	case IssueFont:
		return "Font Mismatch"
	case IssueAlignment:
		return "Alignment Mismatch"
	case IssueFill:
		return "Fill Mismatch"
	case IssueBorder:
		return "Border Mismatch"
	case IssueMissingInTarget:
		return "Missing in report"
	case IssueMissingInSample:
		return "Missing in sample"
	default:
		return fmt.Sprintf("IssueType(%d)", int(t))
	}
}

// Issue is one typed mismatch between a resolved cell pair, carrying the
// string form of each side.
type Issue struct {
	Type   IssueType
	Sample string
	Target string
}

// CompareCells compares one resolved cell pair: the stringified values
// plus the four style facets. Each facet yields at most one issue, so a
// pair produces zero to five issues.
func CompareCells(sampleStyle, targetStyle CellStyle, sampleVal, targetVal string) []Issue {
	var issues []Issue

	if safeStr(sampleVal) != safeStr(targetVal) {
		issues = append(issues, Issue{
			Type:   IssueValue,
			Sample: safeStr(sampleVal),
			Target: safeStr(targetVal),
		})
	}

	if is, ok := compareFonts(sampleStyle.Font, targetStyle.Font); ok {
		issues = append(issues, is)
	}
	if is, ok := compareAlignment(sampleStyle.Alignment, targetStyle.Alignment); ok {
		issues = append(issues, is)
	}
	if is, ok := compareFill(sampleStyle.Fill, targetStyle.Fill); ok {
		issues = append(issues, is)
	}
	if is, ok := compareBorder(sampleStyle.Border, targetStyle.Border); ok {
		issues = append(issues, is)
	}
	return issues
}

func compareFonts(a, b FontInfo) (Issue, bool) {
	if a.Name == b.Name && a.Bold == b.Bold && a.Italic == b.Italic &&
		a.Underline == b.Underline && a.Size == b.Size {
		return Issue{}, false
	}
	return Issue{Type: IssueFont, Sample: a.String(), Target: b.String()}, true
}

func compareAlignment(a, b AlignInfo) (Issue, bool) {
	if safeStr(a.Horizontal) == safeStr(b.Horizontal) && safeStr(a.Vertical) == safeStr(b.Vertical) {
		return Issue{}, false
	}
	return Issue{Type: IssueAlignment, Sample: a.String(), Target: b.String()}, true
}

func compareFill(a, b FillInfo) (Issue, bool) {
	na := NormalizeColor(a.Start)
	nb := NormalizeColor(b.Start)
	if na == nb {
		return Issue{}, false
	}
	return Issue{
		Type:   IssueFill,
		Sample: "ColorCode: " + na.String(),
		Target: "ColorCode: " + nb.String(),
	}, true
}

func compareBorder(a, b BorderInfo) (Issue, bool) {
	if a == b {
		return Issue{}, false
	}
	return Issue{Type: IssueBorder, Sample: a.String(), Target: b.String()}, true
}
