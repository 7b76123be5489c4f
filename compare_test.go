package xldiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCells_Equal(t *testing.T) {
	assert.Empty(t, CompareCells(CellStyle{}, CellStyle{}, "same", "same"))
	assert.Empty(t, CompareCells(thinBorders(), thinBorders(), "", ""))
}

func TestCompareCells_Value(t *testing.T) {
	issues := CompareCells(CellStyle{}, CellStyle{}, "", "x")
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Type: IssueValue, Sample: "None", Target: "x"}, issues[0])
}

func TestCompareCells_Font(t *testing.T) {
	a := CellStyle{Font: FontInfo{Name: "Arial", Size: 11, Bold: true}}
	issues := CompareCells(a, CellStyle{}, "v", "v")
	require.Len(t, issues, 1)
	assert.Equal(t, IssueFont, issues[0].Type)
	assert.Equal(t, "Arial 11 Bold:true Italic:false Underline:None", issues[0].Sample)
	assert.Equal(t, "None None Bold:false Italic:false Underline:None", issues[0].Target)
}

func TestCompareCells_Alignment(t *testing.T) {
	a := CellStyle{Alignment: AlignInfo{Horizontal: "left"}}
	issues := CompareCells(a, CellStyle{}, "v", "v")
	require.Len(t, issues, 1)
	assert.Equal(t, IssueAlignment, issues[0].Type)
	assert.Equal(t, "H:left V:None", issues[0].Sample)
	assert.Equal(t, "H:None V:None", issues[0].Target)
}

func TestCompareCells_FillNormalized(t *testing.T) {
	// case differences in the hex form are not a mismatch
	assert.Empty(t, CompareCells(fillStyle("ff0000"), fillStyle("FF0000"), "v", "v"))

	issues := CompareCells(fillStyle("FF0000"), fillStyle("00FF00"), "v", "v")
	require.Len(t, issues, 1)
	assert.Equal(t, IssueFill, issues[0].Type)
	assert.Equal(t, "ColorCode: FF0000", issues[0].Sample)
	assert.Equal(t, "ColorCode: 00FF00", issues[0].Target)
}

func TestCompareCells_Border(t *testing.T) {
	issues := CompareCells(thinBorders(), CellStyle{}, "v", "v")
	require.Len(t, issues, 1)
	assert.Equal(t, IssueBorder, issues[0].Type)
	assert.Equal(t, "left:1/000000 right:1/000000 top:1/000000 bottom:1/000000", issues[0].Sample)
	assert.Equal(t, "left:none right:none top:none bottom:none", issues[0].Target)
}

func TestCompareCells_AllFacets(t *testing.T) {
	a := CellStyle{
		Font:      FontInfo{Name: "Arial", Size: 11},
		Alignment: AlignInfo{Horizontal: "left", Vertical: "top"},
		Fill:      FillInfo{Start: ColorRef{RGB: "FF0000"}},
		Border:    thinBorders().Border,
	}
	issues := CompareCells(a, CellStyle{}, "1", "2")
	require.Len(t, issues, 5)
	assert.Equal(t, IssueValue, issues[0].Type)
	assert.Equal(t, IssueFont, issues[1].Type)
	assert.Equal(t, IssueAlignment, issues[2].Type)
	assert.Equal(t, IssueFill, issues[3].Type)
	assert.Equal(t, IssueBorder, issues[4].Type)
}

func TestIssueTypeString(t *testing.T) {
	assert.Equal(t, "Value Mismatch", IssueValue.String())
	assert.Equal(t, "Font Mismatch", IssueFont.String())
	assert.Equal(t, "Alignment Mismatch", IssueAlignment.String())
	assert.Equal(t, "Fill Mismatch", IssueFill.String())
	assert.Equal(t, "Border Mismatch", IssueBorder.String())
	assert.Equal(t, "Missing in report", IssueMissingInTarget.String())
	assert.Equal(t, "Missing in sample", IssueMissingInSample.String())
}
