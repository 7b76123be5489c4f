package xldiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runEngine(t *testing.T, sample, target *memGrid, cfg IgnoreConfig) *Report {
	t.Helper()
	rep, err := NewEngine(sample, target, cfg).Run()
	require.NoError(t, err)
	return rep
}

// keyValueGrids builds the canonical key/value scenario: a key in A1 and
// the value two columns to the right, differing between the sides.
func keyValueGrids() (*memGrid, *memGrid) {
	sample := newMemGrid("KV")
	sample.set("KV", 1, 1, "Status")
	sample.set("KV", 1, 3, "OK")

	target := newMemGrid("KV")
	target.set("KV", 1, 1, "Status")
	target.set("KV", 1, 3, "FAIL")
	return sample, target
}

func TestEngine_IdenticalGrids(t *testing.T) {
	build := func() *memGrid {
		g := newMemGrid("Data")
		g.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 3, MaxCol: 3}, [][]string{
			{"", "Qty", "Price"},
			{"Widget", "5", "10"},
			{"Gadget", "2", "20"},
		})
		g.set("Data", 5, 1, "Status")
		g.set("Data", 5, 3, "OK")
		g.setStyle("Data", 5, 3, fillStyle("FFCC00"))
		g.merge("Data", Rect{MinRow: 7, MinCol: 1, MaxRow: 7, MaxCol: 2})
		g.set("Data", 7, 1, "merged note")
		return g
	}

	rep := runEngine(t, build(), build(), IgnoreConfig{})
	require.Len(t, rep.Sheets, 1)
	assert.Empty(t, rep.Sheets[0].Issues)
	assert.Empty(t, rep.Sheets[0].Ignored)
	require.Len(t, rep.Summary, 1)
	assert.Equal(t, SummaryEntry{Sheet: "Data"}, rep.Summary[0])
}

func TestEngine_TableHeaderAlignment(t *testing.T) {
	sample := newMemGrid("Data")
	sample.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 3, MaxCol: 3}, [][]string{
		{"", "Qty", "Price"},
		{"Widget", "5", "10"},
		{"Gadget", "2", "20"},
	})
	target := newMemGrid("Data")
	target.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 3, MaxCol: 3}, [][]string{
		{"", "Amount", "Price"},
		{"Widget", "5", "10"},
		{"Gadget", "2", "20"},
	})

	rep := runEngine(t, sample, target, IgnoreConfig{})
	require.Len(t, rep.Sheets, 1)
	issues := rep.Sheets[0].Issues
	require.Len(t, issues, 2)

	assert.Equal(t, IssueRecord{
		Cell: "B1", ColumnKey: "Qty", Type: IssueMissingInTarget, Sample: "Qty",
	}, issues[0])
	assert.Equal(t, IssueRecord{
		Cell: "B1", ColumnKey: "Amount", Type: IssueMissingInSample, Target: "Amount",
	}, issues[1])

	assert.Equal(t, 2, rep.Summary[0].IssueCount)
	assert.Equal(t, 0, rep.Summary[0].IgnoredCount)
}

func TestEngine_TableValueMismatch(t *testing.T) {
	sample := newMemGrid("Data")
	sample.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 3, MaxCol: 3}, [][]string{
		{"", "Qty", "Price"},
		{"Widget", "5", "10"},
		{"Gadget", "2", "20"},
	})
	target := newMemGrid("Data")
	target.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 3, MaxCol: 3}, [][]string{
		{"", "Qty", "Price"},
		{"Widget", "5", "12"},
		{"Gadget", "2", "20"},
	})

	rep := runEngine(t, sample, target, IgnoreConfig{})
	issues := rep.Sheets[0].Issues
	require.Len(t, issues, 1)
	assert.Equal(t, IssueRecord{
		Cell: "C2", RowKey: "Widget", ColumnKey: "Price",
		Type: IssueValue, Sample: "10", Target: "12",
	}, issues[0])
}

func TestEngine_TableHeaderCaseInsensitive(t *testing.T) {
	sample := newMemGrid("Data")
	sample.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}, [][]string{
		{"", "Total Cost"},
		{"Item", "5"},
	})
	target := newMemGrid("Data")
	target.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}, [][]string{
		{"", "total cost"},
		{"Item", "5"},
	})

	rep := runEngine(t, sample, target, IgnoreConfig{})
	assert.Empty(t, rep.Sheets[0].Issues)
}

func TestEngine_KeyValueScan(t *testing.T) {
	sample, target := keyValueGrids()

	rep := runEngine(t, sample, target, IgnoreConfig{})
	issues := rep.Sheets[0].Issues
	require.Len(t, issues, 1)
	assert.Equal(t, IssueRecord{
		Cell: "C1", RowKey: "Status", ColumnKey: "OK",
		Type: IssueValue, Sample: "OK", Target: "FAIL",
	}, issues[0])
}

func TestEngine_TargetOnlyKey(t *testing.T) {
	// the key exists on the target side only; the second sweep finds it
	sample := newMemGrid("KV")
	sample.set("KV", 2, 2, "42")
	target := newMemGrid("KV")
	target.set("KV", 2, 1, "Count")
	target.set("KV", 2, 2, "43")

	rep := runEngine(t, sample, target, IgnoreConfig{})
	issues := rep.Sheets[0].Issues
	require.Len(t, issues, 2)
	// fallback reports the key cell itself, the key sweep its value
	assert.Equal(t, IssueRecord{
		Cell: "B2", RowKey: "Count", ColumnKey: "42",
		Type: IssueValue, Sample: "42", Target: "43",
	}, issues[0])
	assert.Equal(t, IssueRecord{
		Cell: "A2", Type: IssueValue, Sample: "None", Target: "Count",
	}, issues[1])
}

func TestEngine_SymmetricMerge(t *testing.T) {
	sample := newMemGrid("S")
	sample.merge("S", Rect{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 2})
	sample.set("S", 1, 1, "X")
	target := newMemGrid("S")
	target.merge("S", Rect{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 2})
	target.set("S", 1, 1, "Y")

	rep := runEngine(t, sample, target, IgnoreConfig{})
	issues := rep.Sheets[0].Issues
	require.Len(t, issues, 1)
	assert.Equal(t, IssueRecord{
		Cell: "A1", Type: IssueValue, Sample: "X", Target: "Y",
	}, issues[0])
}

func TestEngine_SheetPresence(t *testing.T) {
	sample := newMemGrid("A", "B")
	sample.set("A", 1, 1, "x")
	target := newMemGrid("A", "C")
	target.set("A", 1, 1, "x")

	rep := runEngine(t, sample, target, IgnoreConfig{})

	require.Len(t, rep.Summary, 3)
	assert.Equal(t, SummaryEntry{Sheet: "A"}, rep.Summary[0])
	assert.Equal(t, SummaryEntry{Sheet: "B", Presence: PresenceMissingInTarget}, rep.Summary[1])
	assert.Equal(t, SummaryEntry{Sheet: "C", Presence: PresenceMissingInSample}, rep.Summary[2])

	// one-sided sheets get no detail report
	require.Len(t, rep.Sheets, 1)
	assert.Equal(t, "A", rep.Sheets[0].Sheet)
}

func TestEngine_IgnoredColorRoutesToIgnoredBucket(t *testing.T) {
	sample, target := keyValueGrids()
	sample.setStyle("KV", 1, 3, fillStyle("00FF00"))
	target.setStyle("KV", 1, 3, fillStyle("00FF00"))

	rep := runEngine(t, sample, target, IgnoreConfig{IgnoredColors: []string{"FF00FF00"}})
	assert.Empty(t, rep.Sheets[0].Issues)
	require.Len(t, rep.Sheets[0].Ignored, 1)
	assert.Equal(t, IssueValue, rep.Sheets[0].Ignored[0].Type)
	assert.Equal(t, 0, rep.Summary[0].IssueCount)
	assert.Equal(t, 1, rep.Summary[0].IgnoredCount)
}

func TestEngine_ForceIncludeBeatsIgnoredColor(t *testing.T) {
	sample, target := keyValueGrids()
	sample.setStyle("KV", 1, 3, fillStyle("00FF00"))
	target.setStyle("KV", 1, 3, fillStyle("00FF00"))

	rep := runEngine(t, sample, target, IgnoreConfig{
		IgnoredColors:      []string{"FF00FF00"},
		ForceIncludeRanges: []string{"C1"},
	})
	require.Len(t, rep.Sheets[0].Issues, 1)
	assert.Empty(t, rep.Sheets[0].Ignored)
}

func TestEngine_IgnoredRangeInTable(t *testing.T) {
	sample := newMemGrid("Data")
	sample.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 3}, [][]string{
		{"", "Qty", "Price"},
		{"Widget", "5", "10"},
	})
	target := newMemGrid("Data")
	target.setTable("Data", Rect{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 3}, [][]string{
		{"", "Qty", "Price"},
		{"Widget", "5", "12"},
	})

	rep := runEngine(t, sample, target, IgnoreConfig{IgnoredRanges: []string{"C2"}})
	assert.Empty(t, rep.Sheets[0].Issues)
	require.Len(t, rep.Sheets[0].Ignored, 1)
	assert.Equal(t, "C2", rep.Sheets[0].Ignored[0].Cell)
}

func TestEngine_ExprRule(t *testing.T) {
	sample, target := keyValueGrids()

	rep := runEngine(t, sample, target, IgnoreConfig{IgnoreExpr: `sampleValue == "OK"`})
	assert.Empty(t, rep.Sheets[0].Issues)
	assert.Len(t, rep.Sheets[0].Ignored, 1)
}

func TestEngine_NilGrids(t *testing.T) {
	_, err := NewEngine(nil, nil, IgnoreConfig{}).Run()
	assert.Error(t, err)
}
