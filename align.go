package xldiff

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// headerMatchThreshold is the minimum fuzzy similarity for pairing two
// headers that do not match exactly. Scores must be strictly above it.
const headerMatchThreshold = 0.72

// HeaderIndex is an ordered header-text → column-index map built by
// scanning a table's header row left to right.
type HeaderIndex struct {
	texts []string
	cols  map[string]int
}

// NewHeaderIndex creates an empty index.
func NewHeaderIndex() *HeaderIndex {
	return &HeaderIndex{cols: make(map[string]int)}
}

// Add records a header at a column. Blank headers are skipped; a repeated
// text keeps its original position but takes the new column.
func (h *HeaderIndex) Add(text string, col int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if _, ok := h.cols[text]; !ok {
		h.texts = append(h.texts, text)
	}
	h.cols[text] = col
}

// Headers returns the header texts in left-to-right order.
func (h *HeaderIndex) Headers() []string { return h.texts }

// Col returns the column index of a header text.
func (h *HeaderIndex) Col(text string) int { return h.cols[text] }

// Has reports whether the header text is present.
func (h *HeaderIndex) Has(text string) bool {
	_, ok := h.cols[text]
	return ok
}

// Len returns the number of headers.
func (h *HeaderIndex) Len() int { return len(h.texts) }

// HeaderPair is one aligned (sample, target) header pair.
type HeaderPair struct {
	Sample string
	Target string
}

// HeaderSimilarity computes a normalized [0,1] similarity between two
// header strings: case-insensitive, trimmed, edit-distance-based.
func HeaderSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// PairHeaders aligns two header indexes order-preservingly. An exact pass
// locks identical texts first; a fuzzy pass then greedily pairs each
// remaining sample header with the best unused target header scoring
// strictly above the threshold. First-come sample order wins ties; there
// is no global re-optimization. Pairs come back sorted by the sample
// header's original column order, together with the unmatched headers of
// each side.
func PairHeaders(sample, target *HeaderIndex) (pairs []HeaderPair, missingInTarget, missingInSample []string) {
	usedTarget := make(map[string]bool)
	pairedSample := make(map[string]bool)

	for _, s := range sample.Headers() {
		if target.Has(s) && !usedTarget[s] {
			pairs = append(pairs, HeaderPair{Sample: s, Target: s})
			usedTarget[s] = true
			pairedSample[s] = true
		}
	}

	for _, s := range sample.Headers() {
		if pairedSample[s] {
			continue
		}
		best := ""
		bestScore := headerMatchThreshold
		for _, t := range target.Headers() {
			if usedTarget[t] {
				continue
			}
			if score := HeaderSimilarity(s, t); score > bestScore {
				bestScore = score
				best = t
			}
		}
		if best != "" {
			pairs = append(pairs, HeaderPair{Sample: s, Target: best})
			usedTarget[best] = true
			pairedSample[s] = true
		}
	}

	order := make(map[string]int, sample.Len())
	for i, s := range sample.Headers() {
		order[s] = i
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return order[pairs[i].Sample] < order[pairs[j].Sample]
	})

	for _, s := range sample.Headers() {
		if !pairedSample[s] {
			missingInTarget = append(missingInTarget, s)
		}
	}
	for _, t := range target.Headers() {
		if !usedTarget[t] {
			missingInSample = append(missingInSample, t)
		}
	}
	return pairs, missingInTarget, missingInSample
}
