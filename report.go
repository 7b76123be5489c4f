package xldiff

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"
)

// Presence notes for sheets that exist on one side only.
const (
	PresenceMissingInSample = "Missing In Sample"
	PresenceMissingInTarget = "Missing In Target"
)

// IssueRecord is one reported mismatch, located by coordinate and tagged
// with the row key and column key it was found under.
type IssueRecord struct {
	Cell      string
	RowKey    string
	ColumnKey string
	Type      IssueType
	Sample    string
	Target    string
}

// SheetReport accumulates the ordered issue records of one sheet, with
// ignored issues kept in a separately counted bucket.
type SheetReport struct {
	Sheet   string
	Issues  []IssueRecord
	Ignored []IssueRecord
}

// route appends a record to the bucket its classification selects.
func (r *SheetReport) route(rec IssueRecord, cls Classification) {
	if cls == ClassIgnored {
		r.Ignored = append(r.Ignored, rec)
		return
	}
	r.Issues = append(r.Issues, rec)
}

// SummaryEntry is one summary row: a sheet's presence status and counts.
type SummaryEntry struct {
	Sheet        string
	Presence     string // empty when present on both sides
	IssueCount   int
	IgnoredCount int
}

// Report is the full comparison result: one detail report per sheet
// present on both sides, and one summary row per sheet in processing
// order.
type Report struct {
	Sheets  []*SheetReport
	Summary []SummaryEntry
}

var detailColumns = []any{"Cell", "Name", "Column Name", "Issue Type", "Sample Value", "Generated Value"}

// WriteSummary renders the summary index as a console table.
func (r *Report) WriteSummary(w io.Writer) error {
	table := tablewriter.NewTable(w)
	table.Header("Sheet", "Presence", "Issues", "Ignored")
	for _, e := range r.Summary {
		if err := table.Append([]string{e.Sheet, e.Presence, strconv.Itoa(e.IssueCount), strconv.Itoa(e.IgnoredCount)}); err != nil {
			return fmt.Errorf("append summary row for %q: %w", e.Sheet, err)
		}
	}
	return table.Render()
}

// WriteWorkbook renders the report as an xlsx workbook: a Summary sheet
// with in-workbook hyperlinks, then one detail sheet per compared sheet,
// ignored issues under a marked block at the bottom.
func (r *Report) WriteWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	st, err := newReportStyles(f)
	if err != nil {
		return fmt.Errorf("build report styles: %w", err)
	}

	// Sanitized names can collide with each other or with the summary
	// sheet; resolve them up front so the links match the detail sheets.
	used := map[string]bool{summarySheet: true}
	detailNames := make(map[string]string, len(r.Sheets))
	for _, rep := range r.Sheets {
		name := uniqueSheetName(rep.Sheet, used)
		used[name] = true
		detailNames[rep.Sheet] = name
	}

	if err := writeRow(f, summarySheet, 1, st.header,
		"Sheet Name", "Hyperlink", "Missing Details", "Issue Count", "Ignored Issues Count"); err != nil {
		return err
	}
	for i, e := range r.Summary {
		row := i + 2
		linkName, ok := detailNames[e.Sheet]
		if !ok {
			linkName = SafeSheetName(e.Sheet)
		}
		if err := writeRow(f, summarySheet, row, st.data,
			e.Sheet, linkName, e.Presence, e.IssueCount, e.IgnoredCount); err != nil {
			return err
		}
		linkCell := "B" + strconv.Itoa(row)
		if err := f.SetCellHyperLink(summarySheet, linkCell, sheetLinkTarget(linkName), "Location"); err != nil {
			return fmt.Errorf("link summary row for %q: %w", e.Sheet, err)
		}
		if err := f.SetCellStyle(summarySheet, linkCell, linkCell, st.link); err != nil {
			return fmt.Errorf("style summary link for %q: %w", e.Sheet, err)
		}
	}

	for _, rep := range r.Sheets {
		if err := writeDetailSheet(f, rep, detailNames[rep.Sheet], st); err != nil {
			return fmt.Errorf("write detail sheet %q: %w", rep.Sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %q: %w", path, err)
	}
	return nil
}

type reportStyles struct {
	header int
	data   int
	link   int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Aptos Narrow", Size: 12, Bold: true, Color: "000000"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"ADD8E6"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return reportStyles{}, err
	}

	data, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Aptos Narrow", Size: 11, Color: "000000"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top"},
		Border:    thin,
	})
	if err != nil {
		return reportStyles{}, err
	}

	link, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Aptos Narrow", Size: 11, Color: "0000FF", Underline: "single"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top"},
		Border:    thin,
	})
	if err != nil {
		return reportStyles{}, err
	}

	return reportStyles{header: header, data: data, link: link}, nil
}

// uniqueSheetName sanitizes a sheet name and disambiguates it against the
// already-used names with a numeric suffix, keeping the 31-char limit.
func uniqueSheetName(base string, used map[string]bool) string {
	name := SafeSheetName(base)
	if !used[name] {
		return name
	}
	for i := 1; ; i++ {
		suffix := strconv.Itoa(i)
		cand := []rune(name)
		if len(cand)+len(suffix) > 31 {
			cand = cand[:31-len(suffix)]
		}
		if c := string(cand) + suffix; !used[c] {
			return c
		}
	}
}

func writeDetailSheet(f *excelize.File, rep *SheetReport, name string, st reportStyles) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	if err := writeRow(f, name, 1, st.header, detailColumns...); err != nil {
		return err
	}
	row := 2
	for _, rec := range rep.Issues {
		if err := writeRecord(f, name, row, st.data, rec); err != nil {
			return err
		}
		row++
	}

	if len(rep.Ignored) > 0 {
		row++ // blank separator row
		if err := writeRow(f, name, row, st.header, "***Columns To Be Ignored***"); err != nil {
			return err
		}
		row++
		if err := writeRow(f, name, row, st.header, detailColumns...); err != nil {
			return err
		}
		row++
		for _, rec := range rep.Ignored {
			if err := writeRecord(f, name, row, st.data, rec); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeRecord(f *excelize.File, sheet string, row, style int, rec IssueRecord) error {
	return writeRow(f, sheet, row, style,
		rec.Cell, rec.RowKey, rec.ColumnKey, rec.Type.String(), rec.Sample, rec.Target)
}

func writeRow(f *excelize.File, sheet string, row, style int, values ...any) error {
	start := "A" + strconv.Itoa(row)
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}
	end := ColToName(len(values)) + strconv.Itoa(row)
	return f.SetCellStyle(sheet, start, end, style)
}

var plainSheetName = regexp.MustCompile(`^[A-Za-z_]+$`)

// sheetLinkTarget builds an in-workbook hyperlink target, quoting sheet
// names that need it.
func sheetLinkTarget(sheet string) string {
	if plainSheetName.MatchString(sheet) {
		return sheet + "!A1"
	}
	return "'" + sheet + "'!A1"
}
