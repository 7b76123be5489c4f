package xldiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Engine drives one full comparison run: sample-side sheets in their
// original order, then target-only sheets, each compared with the three
// scan passes. The run is single-threaded and deterministic.
type Engine struct {
	sample GridAccessor
	target GridAccessor
	cfg    IgnoreConfig
	log    *logrus.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress and skipped-rule warnings.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an engine over the two grids and one immutable ignore
// configuration.
func NewEngine(sample, target GridAccessor, cfg IgnoreConfig, opts ...Option) *Engine {
	e := &Engine{sample: sample, target: target, cfg: cfg, log: discardLogger()}
	for _, o := range opts {
		o(e)
	}
	return e
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Run compares every sheet and returns the aggregated report. Sheets
// present on one side only get a summary entry and no detail report.
// Cell-scoped failures never abort the run.
func (e *Engine) Run() (*Report, error) {
	if e.sample == nil || e.target == nil {
		return nil, fmt.Errorf("both a sample and a target grid are required")
	}

	sampleRes := NewMergeResolver(e.sample)
	targetRes := NewMergeResolver(e.target)
	policy := NewIgnorePolicy(e.cfg, sampleRes, targetRes, e.log)

	report := &Report{}
	for _, name := range orderedSheets(e.sample, e.target) {
		if !e.target.HasSheet(name) {
			report.Summary = append(report.Summary, SummaryEntry{Sheet: name, Presence: PresenceMissingInTarget})
			continue
		}
		if !e.sample.HasSheet(name) {
			report.Summary = append(report.Summary, SummaryEntry{Sheet: name, Presence: PresenceMissingInSample})
			continue
		}

		e.log.WithField("sheet", name).Debug("comparing sheet")
		d := &sheetDiff{
			engine:    e,
			sheet:     name,
			sampleRes: sampleRes,
			targetRes: targetRes,
			policy:    policy,
			guard:     NewDedupGuard(),
			rep:       &SheetReport{Sheet: name},
			kvDone:    make(map[[2]int]bool),
		}
		d.run()

		report.Sheets = append(report.Sheets, d.rep)
		report.Summary = append(report.Summary, SummaryEntry{
			Sheet:        name,
			IssueCount:   len(d.rep.Issues),
			IgnoredCount: len(d.rep.Ignored),
		})
		e.log.WithFields(logrus.Fields{
			"sheet":   name,
			"issues":  len(d.rep.Issues),
			"ignored": len(d.rep.Ignored),
		}).Debug("sheet compared")
	}
	return report, nil
}

// orderedSheets fixes the processing order: sample sheets first, then
// target-only sheets, both in their original order.
func orderedSheets(sample, target GridAccessor) []string {
	names := append([]string{}, sample.SheetNames()...)
	for _, n := range target.SheetNames() {
		if !sample.HasSheet(n) {
			names = append(names, n)
		}
	}
	return names
}

// sheetDiff holds the per-sheet comparison state: one dedup guard and one
// report shared by all three passes, discarded when the sheet is done.
type sheetDiff struct {
	engine    *Engine
	sheet     string
	sampleRes *MergeResolver
	targetRes *MergeResolver
	policy    *IgnorePolicy
	guard     *DedupGuard
	rep       *SheetReport

	tableCells     map[[2]int]bool
	kvDone         map[[2]int]bool
	maxRow, maxCol int
}

func (d *sheetDiff) run() {
	sr, sc := d.engine.sample.Bounds(d.sheet)
	tr, tc := d.engine.target.Bounds(d.sheet)
	d.maxRow = max(sr, tr)
	d.maxCol = max(sc, tc)

	regions := MergeRegions(append(
		DetectTables(d.engine.sample, d.sheet),
		DetectTables(d.engine.target, d.sheet)...,
	))
	d.tableCells = make(map[[2]int]bool)
	for _, reg := range regions {
		for r := reg.MinRow; r <= reg.MaxRow; r++ {
			for c := reg.MinCol; c <= reg.MaxCol; c++ {
				d.tableCells[[2]int{r, c}] = true
			}
		}
	}

	d.tablePass(regions)
	d.keyValuePass()
	d.fallbackPass()
}

// canonicalPair resolves the merged top-left on each side independently.
func (d *sheetDiff) canonicalPair(row, sampleCol, targetCol int) CanonicalPair {
	sr, sc := d.sampleRes.Canonical(d.sheet, row, sampleCol)
	tr, tc := d.targetRes.Canonical(d.sheet, row, targetCol)
	return CanonicalPair{SampleRow: sr, SampleCol: sc, TargetRow: tr, TargetCol: tc}
}

// isTopLeft reports whether (row, col) is the canonical coordinate on at
// least one side. Raw scans only evaluate such positions, so a merge that
// exists on one sheet only cannot swallow a region entirely.
func (d *sheetDiff) isTopLeft(row, col int) bool {
	sr, sc := d.sampleRes.Canonical(d.sheet, row, col)
	if row == sr && col == sc {
		return true
	}
	tr, tc := d.targetRes.Canonical(d.sheet, row, col)
	return row == tr && col == tc
}

// compareClaimed compares an already-claimed coordinate pair and routes
// the resulting issues by the ignore policy's classification.
func (d *sheetDiff) compareClaimed(row, sampleCol, targetCol int, pair CanonicalPair, rowKey, colKey string) {
	cls := d.policy.Classify(d.sheet, row, sampleCol, targetCol)

	sVal := d.sampleRes.EffectiveValue(d.sheet, row, sampleCol)
	tVal := d.targetRes.EffectiveValue(d.sheet, row, targetCol)
	sSt := d.engine.sample.CellStyle(d.sheet, pair.SampleRow, pair.SampleCol)
	tSt := d.engine.target.CellStyle(d.sheet, pair.TargetRow, pair.TargetCol)

	coord := NewCellRef("", row, sampleCol).CellName()
	for _, is := range CompareCells(sSt, tSt, sVal, tVal) {
		d.rep.route(IssueRecord{
			Cell:      coord,
			RowKey:    rowKey,
			ColumnKey: colKey,
			Type:      is.Type,
			Sample:    is.Sample,
			Target:    is.Target,
		}, cls)
	}
}

// tablePass aligns headers per region and compares the data rows of every
// paired column.
func (d *sheetDiff) tablePass(regions []Rect) {
	for _, reg := range regions {
		sampleIdx := NewHeaderIndex()
		targetIdx := NewHeaderIndex()
		// The leading column holds row labels, not headers.
		for c := reg.MinCol + 1; c <= reg.MaxCol; c++ {
			sampleIdx.Add(d.sampleRes.EffectiveValue(d.sheet, reg.MinRow, c), c)
			targetIdx.Add(d.targetRes.EffectiveValue(d.sheet, reg.MinRow, c), c)
		}

		pairs, missingInTarget, missingInSample := PairHeaders(sampleIdx, targetIdx)

		for _, p := range pairs {
			if strings.EqualFold(p.Sample, p.Target) {
				continue
			}
			d.rep.route(IssueRecord{
				Cell:      NewCellRef("", reg.MinRow, sampleIdx.Col(p.Sample)).CellName(),
				RowKey:    "Header",
				ColumnKey: p.Sample,
				Type:      IssueValue,
				Sample:    p.Sample,
				Target:    p.Target,
			}, ClassNormal)
		}
		for _, h := range missingInTarget {
			d.rep.route(IssueRecord{
				Cell:      NewCellRef("", reg.MinRow, sampleIdx.Col(h)).CellName(),
				ColumnKey: h,
				Type:      IssueMissingInTarget,
				Sample:    h,
			}, ClassNormal)
		}
		for _, h := range missingInSample {
			d.rep.route(IssueRecord{
				Cell:      NewCellRef("", reg.MinRow, targetIdx.Col(h)).CellName(),
				ColumnKey: h,
				Type:      IssueMissingInSample,
				Target:    h,
			}, ClassNormal)
		}

		for r := reg.MinRow + 1; r <= reg.MaxRow; r++ {
			rowKey := d.sampleRes.EffectiveValue(d.sheet, r, reg.MinCol)
			if rowKey == "" {
				rowKey = d.targetRes.EffectiveValue(d.sheet, r, reg.MinCol)
			}
			for _, p := range pairs {
				cs := sampleIdx.Col(p.Sample)
				ci := targetIdx.Col(p.Target)
				pair := d.canonicalPair(r, cs, ci)
				if !d.guard.TryClaim(pair) {
					continue
				}
				d.compareClaimed(r, cs, ci, pair, rowKey, p.Sample)
			}
		}
	}
}

// looksLikeKey reports whether a stringified value reads like a row
// label: non-empty, longer than one character, not purely numeric, and
// not starting with an opening parenthesis.
func looksLikeKey(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "(") {
		return false
	}
	if isDigits(text) {
		return false
	}
	return len([]rune(text)) > 1
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// keyValuePass scans the non-table cells for key candidates, sample side
// first then target side, and compares each key's associated value cell.
// The shared guard makes the second sweep contribute only what the first
// could not see.
func (d *sheetDiff) keyValuePass() {
	sources := []*MergeResolver{d.sampleRes, d.targetRes}
	for _, src := range sources {
		for r := 1; r <= d.maxRow; r++ {
			for c := 1; c <= d.maxCol; c++ {
				pos := [2]int{r, c}
				if d.tableCells[pos] || d.kvDone[pos] {
					continue
				}
				key := src.EffectiveValue(d.sheet, r, c)
				if !looksLikeKey(key) {
					continue
				}
				d.scanKeyValue(src, r, c, key)
				d.kvDone[pos] = true
			}
		}
	}
}

// scanKeyValue walks rightward from a key candidate to the first
// non-ignored cell with content on either side and compares it as the
// key's value. The scan stops at table cells; cells empty on both sides
// are claimed and passed over.
func (d *sheetDiff) scanKeyValue(src *MergeResolver, r, c int, key string) {
	for cc := c + 1; cc <= d.maxCol; cc++ {
		if d.tableCells[[2]int{r, cc}] {
			return
		}
		if d.policy.InIgnoredRange(r, cc) {
			continue
		}

		pair := d.canonicalPair(r, cc, cc)
		if d.guard.Claimed(pair) {
			continue
		}
		if !d.isTopLeft(r, cc) {
			continue
		}
		d.guard.TryClaim(pair)

		sVal := d.sampleRes.EffectiveValue(d.sheet, r, cc)
		tVal := d.targetRes.EffectiveValue(d.sheet, r, cc)
		if sVal == "" && tVal == "" {
			continue
		}

		d.compareClaimed(r, cc, cc, pair, key, safeStr(sVal))
		d.kvDone[[2]int{r, cc}] = true
		return
	}
}

// fallbackPass sweeps every remaining cell outside tables and ignored
// ranges and compares the ones whose effective values differ, with empty
// row/column labels. It catches isolated values in far columns that the
// key/value scan cannot reach.
func (d *sheetDiff) fallbackPass() {
	for r := 1; r <= d.maxRow; r++ {
		for c := 1; c <= d.maxCol; c++ {
			if d.tableCells[[2]int{r, c}] {
				continue
			}
			if d.policy.InIgnoredRange(r, c) {
				continue
			}
			sVal := d.sampleRes.EffectiveValue(d.sheet, r, c)
			tVal := d.targetRes.EffectiveValue(d.sheet, r, c)
			if safeStr(sVal) == safeStr(tVal) {
				continue
			}
			if !d.isTopLeft(r, c) {
				continue
			}
			pair := d.canonicalPair(r, c, c)
			if !d.guard.TryClaim(pair) {
				continue
			}
			d.compareClaimed(r, c, c, pair, "", "")
		}
	}
}
