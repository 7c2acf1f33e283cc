// Package closure materializes the transitive subclass/equivalence/
// disjointness/instance closure of an ontology's named-class structural
// axioms with a small Datalog program, evaluated by internal/mangle.
//
// This is a cache layer, not a decision procedure: the tableaux engine in
// internal/tableaux remains the only authoritative satisfiability check.
// Closure gives the reasoner facade a cheap pre-pass for the common case
// (a named-class axiom hierarchy that is already a DAG) so classify() does
// not need to run one tableau per class pair; any answer drawn from here
// must still be safe for the facade to double-check for class expressions
// that mix axiom-asserted and anonymous superclasses.
package closure

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/logging"
	"owlreasoner/internal/mangle"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/rules"
)

// schema declares the closure program. Classes and individuals are
// represented as interned /number IDs, not as Mangle name constants,
// because IRIs contain characters (':', '/', '#') that are not safe to
// assume are valid inside a Mangle /name literal; numbers sidestep the
// question entirely.
const schema = `
Decl sub_class_of(X, Y) bound [/number, /number].
Decl equivalent_class(X, Y) bound [/number, /number].
Decl disjoint_with(X, Y) bound [/number, /number] descr [mode("-", "-")].
Decl instance_of(X, Y) bound [/number, /number] descr [mode("-", "-")].
Decl ancestor_class(X, Y) bound [/number, /number] descr [mode("-", "-")].
Decl same_class(X, Y) bound [/number, /number] descr [mode("-", "-")].

ancestor_class(X, Y) :- sub_class_of(X, Y).
ancestor_class(X, Y) :- equivalent_class(X, Y).
ancestor_class(X, Y) :- equivalent_class(Y, X).
ancestor_class(X, Z) :- ancestor_class(X, Y), ancestor_class(Y, Z).

same_class(X, Y) :- ancestor_class(X, Y), ancestor_class(Y, X).

disjoint_with(X, Y) :- disjoint_with(Y, X).
disjoint_with(X, Y) :- disjoint_with(A, B), ancestor_class(X, A), ancestor_class(Y, B).

instance_of(I, C) :- instance_of(I, D), ancestor_class(D, C).
`

// Closure holds the Datalog-backed classification cache for one ontology.
// It is rebuilt from scratch on every Classify call; callers that mutate
// the ontology between reasoning calls must call Classify again before
// trusting its answers.
type Closure struct {
	mu     sync.RWMutex
	engine *mangle.Engine
	logger *zap.Logger

	idOf map[string]int64
	iris map[int64]iri.IRI
	next int64
}

// New builds a Closure with its schema already loaded. Logger may be nil.
func New(logger *zap.Logger) (*Closure, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine, err := mangle.NewEngine(mangle.Config{FactLimit: 1_000_000, AutoEval: false})
	if err != nil {
		return nil, fmt.Errorf("closure: creating mangle engine: %w", err)
	}
	if err := engine.LoadSchemaString(schema); err != nil {
		return nil, fmt.Errorf("closure: loading classification schema: %w", err)
	}
	return &Closure{
		engine: engine,
		logger: logger.Named(string(logging.CategoryClosure)),
		idOf:   make(map[string]int64),
		iris:   make(map[int64]iri.IRI),
	}, nil
}

func (c *Closure) idFor(i iri.IRI) int64 {
	key := i.String()
	if id, ok := c.idOf[key]; ok {
		return id
	}
	id := c.next
	c.next++
	c.idOf[key] = id
	c.iris[id] = i
	return id
}

func (c *Closure) irisOf(id int64) (iri.IRI, bool) {
	i, ok := c.iris[id]
	return i, ok
}

// Classify discards any previously materialized facts and rebuilds the
// closure from the named-class subset of rs and the ontology's class
// assertions. Axioms over anonymous class expressions are skipped here;
// the tableaux engine is the authority for those.
func (c *Closure) Classify(o *ontology.Ontology, rs *rules.RuleSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.Clear()
	c.idOf = make(map[string]int64)
	c.iris = make(map[int64]iri.IRI)
	c.next = 0

	var facts []mangle.Fact

	for _, ax := range rs.SubClassRules {
		sub, subOK := ax.Sub.(ontology.ClassName)
		super, superOK := ax.Super.(ontology.ClassName)
		if !subOK || !superOK {
			continue
		}
		facts = append(facts, mangle.Fact{
			Predicate: "sub_class_of",
			Args:      []interface{}{c.idFor(sub.IRI), c.idFor(super.IRI)},
		})
	}

	for _, ax := range rs.EquivalenceRules {
		var names []iri.IRI
		for _, ce := range ax.Classes {
			if cn, ok := ce.(ontology.ClassName); ok {
				names = append(names, cn.IRI)
			}
		}
		for i := 0; i < len(names); i++ {
			for j := 0; j < len(names); j++ {
				if i == j {
					continue
				}
				facts = append(facts, mangle.Fact{
					Predicate: "equivalent_class",
					Args:      []interface{}{c.idFor(names[i]), c.idFor(names[j])},
				})
			}
		}
	}

	for _, ax := range rs.DisjointnessRules {
		var names []iri.IRI
		for _, ce := range ax.Classes {
			if cn, ok := ce.(ontology.ClassName); ok {
				names = append(names, cn.IRI)
			}
		}
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				facts = append(facts, mangle.Fact{
					Predicate: "disjoint_with",
					Args:      []interface{}{c.idFor(names[i]), c.idFor(names[j])},
				})
			}
		}
	}

	for _, ax := range o.AxiomsOfKind(ontology.AxiomClassAssertion) {
		ca, ok := ax.(ontology.ClassAssertion)
		if !ok {
			continue
		}
		ind, indOK := ca.Individual.(ontology.NamedIndividual)
		class, classOK := ca.Class.(ontology.ClassName)
		if !indOK || !classOK {
			continue
		}
		facts = append(facts, mangle.Fact{
			Predicate: "instance_of",
			Args:      []interface{}{c.idFor(ind.IRI), c.idFor(class.IRI)},
		})
	}

	if len(facts) == 0 {
		return nil
	}
	if err := c.engine.AddFacts(facts); err != nil {
		return fmt.Errorf("closure: asserting facts: %w", err)
	}
	if err := c.engine.RecomputeRules(); err != nil {
		return fmt.Errorf("closure: evaluating rules: %w", err)
	}
	c.logger.Debug("classified", zap.Int("facts", len(facts)))
	return nil
}

// GetSuperclasses returns every named class the closure proved class is a
// (possibly indirect) subclass of.
func (c *Closure) GetSuperclasses(class iri.IRI) ([]iri.IRI, error) {
	return c.queryAncestor(class, true)
}

// GetSubclasses returns every named class the closure proved is a
// (possibly indirect) subclass of class.
func (c *Closure) GetSubclasses(class iri.IRI) ([]iri.IRI, error) {
	return c.queryAncestor(class, false)
}

func (c *Closure) queryAncestor(class iri.IRI, superclasses bool) ([]iri.IRI, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, known := c.idOf[class.String()]
	if !known {
		return nil, nil
	}

	facts, err := c.engine.GetFacts("ancestor_class")
	if err != nil {
		return nil, fmt.Errorf("closure: querying ancestor_class: %w", err)
	}

	var out []iri.IRI
	for _, f := range facts {
		x, xOK := toID(f.Args[0])
		y, yOK := toID(f.Args[1])
		if !xOK || !yOK {
			continue
		}
		var match int64
		if superclasses {
			if x != id {
				continue
			}
			match = y
		} else {
			if y != id {
				continue
			}
			match = x
		}
		if found, ok := c.irisOf(match); ok {
			out = append(out, found)
		}
	}
	return out, nil
}

// GetEquivalentClasses returns every named class the closure proved
// mutually entails class (ancestor_class holds in both directions),
// excluding class itself.
func (c *Closure) GetEquivalentClasses(class iri.IRI) ([]iri.IRI, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, known := c.idOf[class.String()]
	if !known {
		return nil, nil
	}

	facts, err := c.engine.GetFacts("same_class")
	if err != nil {
		return nil, fmt.Errorf("closure: querying same_class: %w", err)
	}

	var out []iri.IRI
	for _, f := range facts {
		x, xOK := toID(f.Args[0])
		y, yOK := toID(f.Args[1])
		if !xOK || !yOK || x != id || y == id {
			continue
		}
		if found, ok := c.irisOf(y); ok {
			out = append(out, found)
		}
	}
	return out, nil
}

// GetDisjointClasses returns every named class the closure proved is
// disjoint with class, propagated down both hierarchies.
func (c *Closure) GetDisjointClasses(class iri.IRI) ([]iri.IRI, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, known := c.idOf[class.String()]
	if !known {
		return nil, nil
	}

	facts, err := c.engine.GetFacts("disjoint_with")
	if err != nil {
		return nil, fmt.Errorf("closure: querying disjoint_with: %w", err)
	}

	var out []iri.IRI
	for _, f := range facts {
		x, xOK := toID(f.Args[0])
		y, yOK := toID(f.Args[1])
		if !xOK || !yOK || x != id {
			continue
		}
		if found, ok := c.irisOf(y); ok {
			out = append(out, found)
		}
	}
	return out, nil
}

// GetInstances returns every named individual the closure proved is an
// instance of class, directly or via a subclass.
func (c *Closure) GetInstances(class iri.IRI) ([]iri.IRI, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, known := c.idOf[class.String()]
	if !known {
		return nil, nil
	}

	facts, err := c.engine.GetFacts("instance_of")
	if err != nil {
		return nil, fmt.Errorf("closure: querying instance_of: %w", err)
	}

	var out []iri.IRI
	for _, f := range facts {
		ind, indOK := toID(f.Args[0])
		cls, clsOK := toID(f.Args[1])
		if !indOK || !clsOK || cls != id {
			continue
		}
		if found, ok := c.irisOf(ind); ok {
			out = append(out, found)
		}
	}
	return out, nil
}

// AreDisjoint reports whether the closure proved a and b disjoint.
func (c *Closure) AreDisjoint(a, b iri.IRI) (bool, error) {
	disjoint, err := c.GetDisjointClasses(a)
	if err != nil {
		return false, err
	}
	for _, d := range disjoint {
		if d.Equal(b) {
			return true, nil
		}
	}
	return false, nil
}

// IsSubclassOf reports whether the closure proved sub an ancestor-closed
// subclass of super (reflexive-transitive, via named-class axioms only).
func (c *Closure) IsSubclassOf(sub, super iri.IRI) (bool, error) {
	if sub.Equal(super) {
		return true, nil
	}
	supers, err := c.GetSuperclasses(sub)
	if err != nil {
		return false, err
	}
	for _, s := range supers {
		if s.Equal(super) {
			return true, nil
		}
	}
	return false, nil
}

// Trace explains why predicate(sub, super) holds (or doesn't) by tracing
// its derivation through the Datalog program, down to the EDB facts that
// fed it. predicate is one of "ancestor_class", "disjoint_with", or
// "same_class". The tracer is given an ArgResolver over this closure's ID
// table, so every fact in the returned tree already reads in IRIs — the
// caller never sees the internal integer ID mapping.
func (c *Closure) Trace(ctx context.Context, predicate string, sub, super iri.IRI) (*mangle.DerivationTrace, error) {
	c.mu.RLock()
	subID, subOK := c.idOf[sub.String()]
	superID, superOK := c.idOf[super.String()]
	c.mu.RUnlock()
	if !subOK || !superOK {
		return nil, fmt.Errorf("closure: unknown class in trace query")
	}

	tracer := mangle.NewProofTreeTracer(c.engine).WithArgResolver(c.resolveArgToIRI)
	tracer.IndexRules()

	query := fmt.Sprintf("%s(%d, %d)", predicate, subID, superID)
	trace, err := tracer.TraceQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("closure: tracing %s: %w", query, err)
	}
	return trace, nil
}

// resolveArgToIRI is a mangle.ArgResolver over this closure's ID table: it
// turns one of this closure's interned integer class/individual IDs back
// into the IRI string it was minted from.
func (c *Closure) resolveArgToIRI(arg interface{}) (string, bool) {
	id, ok := toID(arg)
	if !ok {
		return "", false
	}
	c.mu.RLock()
	found, ok := c.irisOf(id)
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	return found.String(), true
}

func toID(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
