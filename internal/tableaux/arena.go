package tableaux

import "sync"

// Arena tracks the bump-allocated working set of a single reasoning
// invocation: nodes, class expressions, blocking constraints, and
// arena-local strings. Go's garbage collector means the "bump allocator"
// here is bookkeeping rather than a raw memory arena, but the contract
// spec.md asks for is preserved exactly: O(1) allocation accounting and a
// single ResetAll that invalidates everything in one step, rather than
// per-object deallocation.
type Arena struct {
	mu sync.Mutex

	nodeCount, edgeCount, exprCount, constraintCount int
	nodeBytes, edgeBytes, exprBytes, constraintBytes  uint64

	strings map[string]string

	highWaterBytes uint64
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{strings: make(map[string]string)}
}

// InternString returns the arena-local canonical copy of s.
func (a *Arena) InternString(s string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if v, ok := a.strings[s]; ok {
		return v
	}
	a.strings[s] = s
	return s
}

func (a *Arena) total() uint64 {
	return a.nodeBytes + a.edgeBytes + a.exprBytes + a.constraintBytes
}

// RecordNode, RecordEdge, RecordExpression, and RecordConstraint account
// for one allocation of the given estimated size in their respective
// category, and refresh the high-water mark across all categories.
func (a *Arena) RecordNode(bytes uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nodeCount++
	a.nodeBytes += bytes
	a.refreshHighWaterLocked()
}

func (a *Arena) RecordEdge(bytes uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.edgeCount++
	a.edgeBytes += bytes
	a.refreshHighWaterLocked()
}

func (a *Arena) RecordExpression(bytes uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.exprCount++
	a.exprBytes += bytes
	a.refreshHighWaterLocked()
}

func (a *Arena) RecordConstraint(bytes uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.constraintCount++
	a.constraintBytes += bytes
	a.refreshHighWaterLocked()
}

func (a *Arena) refreshHighWaterLocked() {
	if t := a.total(); t > a.highWaterBytes {
		a.highWaterBytes = t
	}
}

// ResetAll rewinds every category in one step. All previously allocated
// handles become invalid; the caller must not reuse a reasoner that
// outlives its arena's reset.
func (a *Arena) ResetAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nodeCount, a.edgeCount, a.exprCount, a.constraintCount = 0, 0, 0, 0
	a.nodeBytes, a.edgeBytes, a.exprBytes, a.constraintBytes = 0, 0, 0, 0
	a.strings = make(map[string]string)
}

// Stats reports allocation counts, byte totals per category, and the
// high-water mark observed across the arena's lifetime (persists across
// ResetAll, since it describes peak usage, not current usage).
type Stats struct {
	NodeCount, EdgeCount, ExpressionCount, ConstraintCount int
	TotalBytes                                             uint64
	HighWaterBytes                                         uint64
}

func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{
		NodeCount:       a.nodeCount,
		EdgeCount:       a.edgeCount,
		ExpressionCount: a.exprCount,
		ConstraintCount: a.constraintCount,
		TotalBytes:      a.total(),
		HighWaterBytes:  a.highWaterBytes,
	}
}
