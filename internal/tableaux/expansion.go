package tableaux

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/rules"
)

// Priority orders rule application; lower fires first.
type Priority int

const (
	PrioritySubClassAxiom Priority = 1
	PriorityConjunction   Priority = 2
	PriorityExistential   Priority = 3
	PriorityUniversal     Priority = 4
	PriorityDisjunction   Priority = 5
	PriorityDataRange     Priority = 6
	PriorityNominal       Priority = 7
)

type task struct {
	node     NodeId
	expr     ontology.ClassExpression
	priority Priority
	seq      int
}

// taskQueue is a priority queue with FIFO tie-break within a priority, per
// spec.md §4.8.
type taskQueue struct {
	tasks []task
	seq   int
}

func (q *taskQueue) push(node NodeId, expr ontology.ClassExpression, pr Priority) {
	q.seq++
	q.tasks = append(q.tasks, task{node: node, expr: expr, priority: pr, seq: q.seq})
}

func (q *taskQueue) pop() (task, bool) {
	if len(q.tasks) == 0 {
		return task{}, false
	}
	best := 0
	for i := 1; i < len(q.tasks); i++ {
		if q.tasks[i].priority < q.tasks[best].priority ||
			(q.tasks[i].priority == q.tasks[best].priority && q.tasks[i].seq < q.tasks[best].seq) {
			best = i
		}
	}
	t := q.tasks[best]
	q.tasks = append(q.tasks[:best], q.tasks[best+1:]...)
	return t, true
}

// Clash is the normal (non-error) return value produced when a tableau
// node's label set contradicts itself. It is explicitly not part of the
// error taxonomy: clashes drive backtracking, they don't abort the
// invocation.
type Clash struct {
	Dependencies DependencySet
	Reason       string
}

// Kind enumerates the ways an expansion invocation can end abnormally.
type Kind string

const (
	KindTimeout        Kind = "timeout"
	KindCancelled      Kind = "cancelled"
	KindDepthExhausted Kind = "depth_exhausted"
	KindInternal       Kind = "internal"
)

// Error reports an abnormal (not clash, not plain consistent/inconsistent)
// end to an expansion invocation.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("tableaux: %s: %s", e.Kind, e.Message) }

// Result is the outcome of a complete expansion invocation.
type Result struct {
	Consistent bool
	Clash      *Clash
}

// Engine drives priority-ordered rule application over a Graph until
// exhaustion, a cap, a clash that exhausts every choice point, or
// cancellation.
type Engine struct {
	graph   *Graph
	arena   *Arena
	deps    *DependencyManager
	ruleSet *rules.RuleSet

	bottomIRI        iri.IRI
	maxDepth         int
	pairwiseBlocking bool

	irreflexiveProps    []iri.IRI
	functionalDataProps map[string]bool

	appliedRules map[string]bool
	queue        taskQueue

	logger *zap.Logger
}

// PropertyCharacteristics names an object property and the
// characteristics (spec.md §3) declared for it; the engine only consults
// Irreflexive, which is the one characteristic that contributes directly
// to clash detection rather than to rule expansion.
type PropertyCharacteristics struct {
	Property        iri.IRI
	Characteristics map[ontology.ObjectPropertyCharacteristic]bool
}

// Config bundles the per-ontology lookups the engine needs beyond the
// rule set itself.
type Config struct {
	BottomIRI           iri.IRI
	MaxDepth            int
	PairwiseBlocking    bool
	PropCharacteristics []PropertyCharacteristics
	FunctionalDataProps map[string]bool
	Logger              *zap.Logger
}

// NewEngine constructs an expansion engine bound to graph, arena, and deps
// for a single reasoning invocation.
func NewEngine(graph *Graph, arena *Arena, deps *DependencyManager, ruleSet *rules.RuleSet, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 1000
	}
	var irreflexive []iri.IRI
	for _, pc := range cfg.PropCharacteristics {
		if pc.Characteristics[ontology.Irreflexive] {
			irreflexive = append(irreflexive, pc.Property)
		}
	}
	return &Engine{
		graph:               graph,
		arena:               arena,
		deps:                deps,
		ruleSet:             ruleSet,
		bottomIRI:           cfg.BottomIRI,
		maxDepth:            maxDepth,
		pairwiseBlocking:    cfg.PairwiseBlocking,
		irreflexiveProps:    irreflexive,
		functionalDataProps: cfg.FunctionalDataProps,
		appliedRules:        make(map[string]bool),
		logger:              logger.Named("tableaux"),
	}
}

// Run seeds start with initial, queues every concept already on start's
// label, and expands until a verdict is reached.
func (e *Engine) Run(ctx context.Context, start NodeId, initial ontology.ClassExpression) (*Result, error) {
	e.Seed(start, initial)
	e.enqueueNodeLabels(start)
	return e.RunQueue(ctx)
}

// Seed adds c to node's label and enqueues it for expansion, without
// running the engine. Used to seed multiple nodes (e.g. one per named
// individual in an ABox consistency check) before a single RunQueue call
// drains all of them together.
func (e *Engine) Seed(node NodeId, c ontology.ClassExpression) {
	if e.graph.AddConcept(node, c) {
		e.enqueueConcept(node, c)
	}
}

// RunQueue drains the task queue (whatever Run or Seed has populated)
// until a verdict is reached.
func (e *Engine) RunQueue(ctx context.Context) (*Result, error) {
	steps := 0
	for {
		select {
		case <-ctx.Done():
			kind := KindCancelled
			if ctx.Err() == context.DeadlineExceeded {
				kind = KindTimeout
			}
			return nil, &Error{Kind: kind, Message: ctx.Err().Error()}
		default:
		}

		if clash := e.checkAllClashes(); clash != nil {
			res, err := e.handleClash(clash)
			if res != nil || err != nil {
				return res, err
			}
			continue
		}

		t, ok := e.queue.pop()
		if !ok {
			return &Result{Consistent: true}, nil
		}

		steps++
		if steps > e.maxDepth {
			return nil, &Error{Kind: KindDepthExhausted, Message: "expansion exceeded max_depth"}
		}

		if e.isBlocked(t.node) {
			continue
		}

		e.applyRule(t)
	}
}

func (e *Engine) ruleKey(node NodeId, rule Priority, exprKey string) string {
	return fmt.Sprintf("%d|%d|%s", node, rule, exprKey)
}

func (e *Engine) alreadyApplied(node NodeId, rule Priority, exprKey string) bool {
	return e.appliedRules[e.ruleKey(node, rule, exprKey)]
}

func (e *Engine) markApplied(node NodeId, rule Priority, exprKey string) {
	e.appliedRules[e.ruleKey(node, rule, exprKey)] = true
}

// enqueueNodeLabels enqueues a task for every concept currently on node,
// at the priority appropriate to its shape.
func (e *Engine) enqueueNodeLabels(node NodeId) {
	for _, c := range e.graph.Node(node).Concepts() {
		e.enqueueConcept(node, c)
	}
}

func (e *Engine) enqueueConcept(node NodeId, c ontology.ClassExpression) {
	switch c.(type) {
	case ontology.ClassName:
		e.queue.push(node, c, PrioritySubClassAxiom)
	case ontology.ObjectIntersectionOf:
		e.queue.push(node, c, PriorityConjunction)
	case ontology.ObjectSomeValuesFrom:
		e.queue.push(node, c, PriorityExistential)
	case ontology.ObjectAllValuesFrom:
		e.queue.push(node, c, PriorityUniversal)
	case ontology.ObjectUnionOf:
		e.queue.push(node, c, PriorityDisjunction)
	case ontology.DataSomeValuesFrom, ontology.DataAllValuesFrom, ontology.DataHasValue, ontology.DataCardinality:
		e.queue.push(node, c, PriorityDataRange)
	case ontology.ObjectOneOf:
		e.queue.push(node, c, PriorityNominal)
	}
}

func (e *Engine) applyRule(t task) {
	switch t.priority {
	case PrioritySubClassAxiom:
		e.applySubClassAxiom(t)
	case PriorityConjunction:
		e.applyConjunction(t)
	case PriorityExistential:
		e.applyExistential(t)
	case PriorityUniversal:
		e.applyUniversal(t)
	case PriorityDisjunction:
		e.applyDisjunction(t)
	case PriorityDataRange:
		e.applyDataRange(t)
	case PriorityNominal:
		e.applyNominal(t)
	}
}

// applySubClassAxiom: node has class A, ruleset has A⊑B or A≡{...}; add
// the entailed expression to the same node.
func (e *Engine) applySubClassAxiom(t task) {
	name, ok := t.expr.(ontology.ClassName)
	if !ok {
		return
	}
	if e.alreadyApplied(t.node, PrioritySubClassAxiom, name.Key()) {
		return
	}
	e.markApplied(t.node, PrioritySubClassAxiom, name.Key())

	for _, ax := range e.ruleSet.SubClassRules {
		if sub, ok := ax.Sub.(ontology.ClassName); ok && sub.IRI.Equal(name.IRI) {
			e.addConceptAndEnqueue(t.node, ax.Super)
		}
	}
	for _, ax := range e.ruleSet.EquivalenceRules {
		mentions := false
		for _, c := range ax.Classes {
			if cn, ok := c.(ontology.ClassName); ok && cn.IRI.Equal(name.IRI) {
				mentions = true
				break
			}
		}
		if !mentions {
			continue
		}
		for _, c := range ax.Classes {
			e.addConceptAndEnqueue(t.node, c)
		}
	}
}

func (e *Engine) applyConjunction(t task) {
	conj, ok := t.expr.(ontology.ObjectIntersectionOf)
	if !ok {
		return
	}
	for _, operand := range conj.Operands {
		e.addConceptAndEnqueue(t.node, operand)
	}
}

func (e *Engine) addConceptAndEnqueue(node NodeId, c ontology.ClassExpression) {
	if e.graph.AddConcept(node, c) {
		e.deps.RecordFact(node, c.Key(), NewDependencySet())
		e.enqueueConcept(node, c)
	}
}

// applyExistential: node has ∃R.C. Reuse an R-successor already entailing
// C; otherwise create one, add the edge, add C, and propagate ∀R labels
// from the current node.
func (e *Engine) applyExistential(t task) {
	ex, ok := t.expr.(ontology.ObjectSomeValuesFrom)
	if !ok {
		return
	}
	if e.alreadyApplied(t.node, PriorityExistential, ex.Key()) {
		return
	}
	e.markApplied(t.node, PriorityExistential, ex.Key())

	base, inverted := ontology.ResolvePropertyDirection(ex.Property)

	var candidates []NodeId
	if inverted {
		candidates = e.graph.Predecessors(t.node, base.IRI)
	} else {
		candidates = e.graph.Successors(t.node, base.IRI)
	}
	for _, succ := range candidates {
		if e.graph.ContainsConcept(succ, ex.Filler) {
			return
		}
	}

	succ := e.graph.AddSuccessorNode(t.node)
	e.arena.RecordNode(64)
	if inverted {
		e.graph.AddEdge(succ, base.IRI, t.node)
	} else {
		e.graph.AddEdge(t.node, base.IRI, succ)
	}
	e.arena.RecordEdge(32)

	e.addConceptAndEnqueue(succ, ex.Filler)
	e.propagateUniversalToSuccessor(t.node, succ, base, inverted)
}

// propagateUniversalToSuccessor copies every ∀R.D on node down to succ
// when the new edge satisfies R (respecting direction), so the successor
// doesn't miss a universal restriction it should already carry.
func (e *Engine) propagateUniversalToSuccessor(node, succ NodeId, base ontology.NamedObjectProperty, inverted bool) {
	for _, c := range e.graph.Node(node).Concepts() {
		uni, ok := c.(ontology.ObjectAllValuesFrom)
		if !ok {
			continue
		}
		ubase, uinverted := ontology.ResolvePropertyDirection(uni.Property)
		if !ubase.IRI.Equal(base.IRI) || uinverted != inverted {
			continue
		}
		e.addConceptAndEnqueue(succ, uni.Filler)
	}
}

// applyUniversal: node has ∀R.C; add C to every R-successor (or
// R-predecessor, if R is inverse) lacking it.
func (e *Engine) applyUniversal(t task) {
	uni, ok := t.expr.(ontology.ObjectAllValuesFrom)
	if !ok {
		return
	}
	base, inverted := ontology.ResolvePropertyDirection(uni.Property)

	var neighbors []NodeId
	if inverted {
		neighbors = e.graph.Predecessors(t.node, base.IRI)
	} else {
		neighbors = e.graph.Successors(t.node, base.IRI)
	}
	for _, n := range neighbors {
		e.addConceptAndEnqueue(n, uni.Filler)
	}
}

// applyDisjunction: node has C1⊔...⊔Cn. Create a choice point and try C1
// first; remaining disjuncts are recorded as alternatives for backtracking.
func (e *Engine) applyDisjunction(t task) {
	disj, ok := t.expr.(ontology.ObjectUnionOf)
	if !ok || len(disj.Operands) == 0 {
		return
	}
	if e.alreadyApplied(t.node, PriorityDisjunction, disj.Key()) {
		return
	}
	e.markApplied(t.node, PriorityDisjunction, disj.Key())

	checkpoint := e.graph.Checkpoint()
	first, rest := disj.Operands[0], disj.Operands[1:]
	cp := e.deps.PushChoicePoint(t.node, rest, checkpoint, NewDependencySet())
	e.assertDisjunct(t.node, first, cp.ID)
}

func (e *Engine) assertDisjunct(node NodeId, c ontology.ClassExpression, cpID ChoicePointID) {
	if e.graph.AddConcept(node, c) {
		e.deps.RecordFact(node, c.Key(), NewDependencySet(cpID))
		e.enqueueConcept(node, c)
	}
}

// applyDataRange handles the subset of data-property restrictions
// spec.md §9 asks to treat as placeholders: direct Functional-property
// contradictions are detected (see checkFunctionalDataClash); anything else is
// accepted as satisfiable without further expansion.
func (e *Engine) applyDataRange(t task) {
	// No expansion beyond clash detection; see checkAllClashes.
}

// applyNominal performs no expansion: an ObjectOneOf label stays on its
// node as is. No node is created for or identified with the individuals
// it lists, and nodes that denote the same individual are not merged.
func (e *Engine) applyNominal(t task) {
	// Individuals get nodes only from the reasoner's ABox construction
	// (class and property assertions), never from an ObjectOneOf here.
}

// isBlocked reports whether node's concept-label set is subsumed by an
// ancestor's, per the configured blocking strategy.
func (e *Engine) isBlocked(node NodeId) bool {
	ancestors := e.graph.Ancestors(node)
	nodeLabels := labelKeySet(e.graph.Node(node))
	for _, anc := range ancestors {
		ancLabels := labelKeySet(e.graph.Node(anc))
		if e.pairwiseBlocking {
			if setsEqual(nodeLabels, ancLabels) {
				return true
			}
		} else {
			if isSubset(nodeLabels, ancLabels) {
				return true
			}
		}
	}
	return false
}

func labelKeySet(n *Node) map[string]bool {
	out := make(map[string]bool, n.Len())
	for _, c := range n.Concepts() {
		out[c.Key()] = true
	}
	return out
}

func isSubset(a, b map[string]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func setsEqual(a, b map[string]bool) bool {
	return len(a) == len(b) && isSubset(a, b)
}

// checkAllClashes scans every node for a contradiction. It returns the
// first clash found; callers loop, so multiple clashes are found across
// iterations as backtracking proceeds.
func (e *Engine) checkAllClashes() *Clash {
	for id := NodeId(0); int(id) < e.graph.NodeCount(); id++ {
		if clash := e.checkNodeClash(id); clash != nil {
			return clash
		}
	}
	return nil
}

func (e *Engine) checkNodeClash(node NodeId) *Clash {
	n := e.graph.Node(node)
	concepts := n.Concepts()

	if !e.bottomIRI.IsZero() {
		for _, c := range concepts {
			if cn, ok := c.(ontology.ClassName); ok && cn.IRI.Equal(e.bottomIRI) {
				return e.nodeClash(node, "node asserts the bottom class")
			}
		}
	}

	for _, c := range concepts {
		comp, ok := c.(ontology.ObjectComplementOf)
		if !ok {
			continue
		}
		if n.ContainsConcept(comp.Operand) {
			return e.nodeClash(node, "node asserts C and its complement: "+comp.Operand.Key())
		}
	}

	if clash := e.checkDisjointClassesClash(node, concepts); clash != nil {
		return clash
	}

	if clash := e.checkCardinalityClash(node, concepts); clash != nil {
		return clash
	}

	if clash := e.checkIrreflexiveClash(node); clash != nil {
		return clash
	}

	if clash := e.checkFunctionalDataClash(node, concepts); clash != nil {
		return clash
	}

	return nil
}

func (e *Engine) nodeClash(node NodeId, reason string) *Clash {
	deps := NewDependencySet()
	for _, c := range e.graph.Node(node).Concepts() {
		if d, ok := e.deps.FactDependencies(node, c.Key()); ok {
			deps = deps.Union(d)
		}
	}
	return &Clash{Dependencies: deps, Reason: reason}
}

func (e *Engine) checkDisjointClassesClash(node NodeId, concepts []ontology.ClassExpression) *Clash {
	present := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		present[c.Key()] = true
	}
	for _, ax := range e.ruleSet.DisjointnessRules {
		count := 0
		for _, c := range ax.Classes {
			if present[c.Key()] {
				count++
			}
		}
		if count >= 2 {
			return e.nodeClash(node, "node asserts two pairwise-disjoint classes")
		}
	}
	return nil
}

func (e *Engine) checkCardinalityClash(node NodeId, concepts []ontology.ClassExpression) *Clash {
	for _, c := range concepts {
		card, ok := c.(ontology.ObjectCardinality)
		if !ok || card.Kind != ontology.CardMax {
			continue
		}
		base, inverted := ontology.ResolvePropertyDirection(card.Property)
		var neighbors []NodeId
		if inverted {
			neighbors = e.graph.Predecessors(node, base.IRI)
		} else {
			neighbors = e.graph.Successors(node, base.IRI)
		}
		if len(neighbors) > card.N {
			return e.nodeClash(node, "node violates cardinality restriction "+card.Key())
		}
	}
	return nil
}

func (e *Engine) checkIrreflexiveClash(node NodeId) *Clash {
	for _, prop := range e.irreflexiveProps {
		for _, succ := range e.graph.Successors(node, prop) {
			if succ == node {
				return e.nodeClash(node, "node asserts an irreflexive self-loop on "+prop.String())
			}
		}
	}
	return nil
}

func (e *Engine) checkFunctionalDataClash(node NodeId, concepts []ontology.ClassExpression) *Clash {
	seen := make(map[string]string) // property -> first literal lexical seen
	for _, c := range concepts {
		hv, ok := c.(ontology.DataHasValue)
		if !ok {
			continue
		}
		propStr := hv.Property.String()
		if !e.functionalDataProps[propStr] {
			continue
		}
		if prior, exists := seen[propStr]; exists && prior != hv.Literal.Lexical {
			return e.nodeClash(node, "node asserts two distinct values for functional data property "+propStr)
		}
		seen[propStr] = hv.Literal.Lexical
	}
	return nil
}

// handleClash consults the dependency manager for the maximal choice
// point supporting the clash, rolls the graph back to that point, and
// advances to the next untried alternative. If no choice point supports
// the clash (an empty dependency set), the ontology is globally
// inconsistent and the clash is returned as the final verdict.
func (e *Engine) handleClash(clash *Clash) (*Result, error) {
	target, ok := clash.Dependencies.Max()
	if !ok {
		return &Result{Consistent: false, Clash: clash}, nil
	}

	cp, ok := e.deps.ByID(target)
	if !ok {
		return &Result{Consistent: false, Clash: clash}, nil
	}

	e.graph.RollbackTo(cp.ChangeLogCheckpoint)
	e.deps.PopAbove(target)

	if len(cp.RemainingAlternatives) == 0 {
		e.deps.Pop()
		// Every alternative of this disjunction clashed: the disjunction
		// itself is a contradiction under cp.Dependencies (the context the
		// choice point was created in, which no longer includes cp itself).
		// Escalate rather than letting the loop rediscover a clash whose
		// concept RollbackTo just erased.
		exhausted := &Clash{
			Dependencies: cp.Dependencies,
			Reason:       fmt.Sprintf("every alternative of the disjunction on node %d led to a clash", cp.NodeID),
		}
		if exhausted.Dependencies.IsEmpty() {
			return &Result{Consistent: false, Clash: exhausted}, nil
		}
		return e.handleClash(exhausted)
	}

	next, rest := cp.RemainingAlternatives[0], cp.RemainingAlternatives[1:]
	e.deps.Pop()
	newCP := e.deps.PushChoicePoint(cp.NodeID, rest, cp.ChangeLogCheckpoint, cp.Dependencies)
	e.assertDisjunct(cp.NodeID, next, newCP.ID)
	e.enqueueNodeLabels(cp.NodeID)

	return nil, nil
}
