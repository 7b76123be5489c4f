// Package xldiff compares two versions of a workbook (a "sample" and a
// generated "target") and produces a structured diff report: per-sheet
// lists of value and presentation mismatches plus a summary index.
//
// The engine detects bordered table regions on both sides, unions them,
// aligns column headers with exact-then-fuzzy matching, and compares the
// remaining cells with key/value and fallback scans. Merged cells are
// resolved to their top-left coordinate and every logical comparison is
// deduplicated across all scan passes. Ignore rules (colors, ranges, an
// optional expression) route issues to a secondary bucket; force-include
// ranges override them.
package xldiff
