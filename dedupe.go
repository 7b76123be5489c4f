package xldiff

// CanonicalPair is the identity a logical cell comparison is deduplicated
// under: the canonical (merged top-left) coordinate on each side. Two raw
// coordinate pairs with the same CanonicalPair are compared at most once.
type CanonicalPair struct {
	SampleRow, SampleCol int
	TargetRow, TargetCol int
}

// DedupGuard is the sheet-scoped set of already-claimed canonical pairs.
// One guard is shared by reference across all scan passes of a sheet and
// discarded with it.
type DedupGuard struct {
	seen map[CanonicalPair]struct{}
}

// NewDedupGuard creates an empty guard.
func NewDedupGuard() *DedupGuard {
	return &DedupGuard{seen: make(map[CanonicalPair]struct{})}
}

// TryClaim claims a pair. It returns false when the pair was already
// claimed, else records it and returns true.
func (g *DedupGuard) TryClaim(p CanonicalPair) bool {
	if _, ok := g.seen[p]; ok {
		return false
	}
	g.seen[p] = struct{}{}
	return true
}

// Claimed reports whether a pair has been claimed.
func (g *DedupGuard) Claimed(p CanonicalPair) bool {
	_, ok := g.seen[p]
	return ok
}

// Len returns the number of claimed pairs.
func (g *DedupGuard) Len() int { return len(g.seen) }
