package tableaux

import (
	"strconv"
	"sync"

	"owlreasoner/internal/ontology"
)

// ChoicePointID identifies a non-deterministic branch introduced by a
// disjunction rule. IDs are assigned by a monotonic counter, so the
// numerically largest ID among a set is also the most recently created —
// the "maximal" choice point spec.md asks the dependency manager to
// return on clash.
type ChoicePointID int

// DependencySet is the set of choice points whose current branch
// entails a fact. An empty set marks a fact entailed unconditionally by
// the ontology (spec.md invariant 6).
type DependencySet map[ChoicePointID]bool

// NewDependencySet builds a DependencySet from the given choice points.
func NewDependencySet(ids ...ChoicePointID) DependencySet {
	s := make(DependencySet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Union returns a new set containing every id in d or other.
func (d DependencySet) Union(other DependencySet) DependencySet {
	out := make(DependencySet, len(d)+len(other))
	for id := range d {
		out[id] = true
	}
	for id := range other {
		out[id] = true
	}
	return out
}

// IsEmpty reports whether the set has no choice points.
func (d DependencySet) IsEmpty() bool { return len(d) == 0 }

// Max returns the largest (most recent) choice point id in the set.
func (d DependencySet) Max() (ChoicePointID, bool) {
	first := true
	var max ChoicePointID
	for id := range d {
		if first || id > max {
			max = id
			first = false
		}
	}
	return max, !first
}

// ChoicePoint records one non-deterministic branch: the node it was
// created on, the remaining untried alternatives, the graph change-log
// position to roll back to, and the dependency context active when it
// was created.
type ChoicePoint struct {
	ID                    ChoicePointID
	NodeID                NodeId
	RemainingAlternatives []ontology.ClassExpression
	ChangeLogCheckpoint   int
	Dependencies          DependencySet
}

// DependencyManager tracks, for every fact placed on a tableaux node,
// the dependency set that justifies it, and maintains the stack of open
// choice points for dependency-directed backtracking.
type DependencyManager struct {
	mu       sync.Mutex
	nextID   ChoicePointID
	stack    []*ChoicePoint
	factDeps map[string]DependencySet
}

// NewDependencyManager creates an empty manager.
func NewDependencyManager() *DependencyManager {
	return &DependencyManager{factDeps: make(map[string]DependencySet)}
}

func factKey(node NodeId, conceptKey string) string {
	return strconv.Itoa(int(node)) + "|" + conceptKey
}

// PushChoicePoint records a new disjunction branch and returns it.
func (d *DependencyManager) PushChoicePoint(node NodeId, alternatives []ontology.ClassExpression, checkpoint int, deps DependencySet) *ChoicePoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	cp := &ChoicePoint{
		ID:                    d.nextID,
		NodeID:                node,
		RemainingAlternatives: alternatives,
		ChangeLogCheckpoint:   checkpoint,
		Dependencies:          deps,
	}
	d.stack = append(d.stack, cp)
	return cp
}

// PopAbove discards every choice point created after (but not including)
// target, leaving target as the current top.
func (d *DependencyManager) PopAbove(target ChoicePointID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.stack) > 0 && d.stack[len(d.stack)-1].ID != target {
		d.stack = d.stack[:len(d.stack)-1]
	}
}

// Current returns the most recently pushed, still-open choice point.
func (d *DependencyManager) Current() *ChoicePoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

// ByID returns the choice point with the given id, if still open.
func (d *DependencyManager) ByID(id ChoicePointID) (*ChoicePoint, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, cp := range d.stack {
		if cp.ID == id {
			return cp, true
		}
	}
	return nil, false
}

// Pop removes and returns the current choice point, if any.
func (d *DependencyManager) Pop() *ChoicePoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.stack) == 0 {
		return nil
	}
	cp := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	return cp
}

// RecordFact associates deps with the fact (node, conceptKey).
func (d *DependencyManager) RecordFact(node NodeId, conceptKey string, deps DependencySet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.factDeps[factKey(node, conceptKey)] = deps
}

// FactDependencies returns the dependency set recorded for (node,
// conceptKey), if any.
func (d *DependencyManager) FactDependencies(node NodeId, conceptKey string) (DependencySet, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	deps, ok := d.factDeps[factKey(node, conceptKey)]
	return deps, ok
}

// Clear empties the manager's stack and fact index.
func (d *DependencyManager) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stack = nil
	d.factDeps = make(map[string]DependencySet)
	d.nextID = 0
}
