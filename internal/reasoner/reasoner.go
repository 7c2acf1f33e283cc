// Package reasoner is the facade orchestrating consistency, satisfiability,
// classification, and instance retrieval over one ontology: it extracts
// the rule index, drives the tableaux expansion engine per query, consults
// the Datalog closure as a cache for named-class queries, and memoizes
// verdicts behind a bounded answer cache.
package reasoner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"owlreasoner/internal/cache"
	"owlreasoner/internal/closure"
	"owlreasoner/internal/config"
	"owlreasoner/internal/iri"
	"owlreasoner/internal/mangle"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/rules"
	"owlreasoner/internal/tableaux"
)

// Reasoner is safe for concurrent use: each query builds its own tableau
// (graph, arena, dependency manager) so no two invocations share mutable
// tableaux state, matching the "owned by exactly one reasoning invocation"
// contract the arena manager documents.
type Reasoner struct {
	ontology *ontology.Ontology
	cfg      *config.ReasonerConfig
	logger   *zap.Logger

	rules               *rules.RuleSet
	closure             *closure.Closure
	bottomIRI           iri.IRI
	pairwiseBlocking    bool
	propChars           []tableaux.PropertyCharacteristics
	functionalDataProps map[string]bool

	cache *cache.LRU[string, bool]
}

// New builds a Reasoner over o. logger may be nil (a no-op logger is used).
// cfg may be nil (config.DefaultReasonerConfig() is used). The rule index
// and classification closure are built immediately; call Classify again
// after mutating o.
func New(o *ontology.Ontology, in *iri.Interner, cfg *config.ReasonerConfig, logger *zap.Logger) (*Reasoner, error) {
	if cfg == nil {
		cfg = config.DefaultReasonerConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bottom, err := in.Intern(iri.NamespaceOWL + "Nothing")
	if err != nil {
		return nil, fmt.Errorf("reasoner: interning owl:Nothing: %w", err)
	}

	cl, err := closure.New(logger)
	if err != nil {
		return nil, fmt.Errorf("reasoner: building closure: %w", err)
	}

	r := &Reasoner{
		ontology:            o,
		cfg:                 cfg,
		logger:              logger.Named("reasoner"),
		rules:               rules.Extract(o),
		closure:             cl,
		bottomIRI:           bottom,
		pairwiseBlocking:    needsPairwiseBlocking(o),
		propChars:           propertyCharacteristics(o),
		functionalDataProps: functionalDataProperties(o),
		cache:               cache.NewLRU[string, bool](cfg.ResultCacheSize),
	}
	if err := r.Classify(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

// Classify rebuilds the rule index and Datalog closure from the current
// state of the ontology, and clears the answer cache. Call this after
// mutating the ontology the Reasoner was built over.
func (r *Reasoner) Classify(ctx context.Context) error {
	r.rules = rules.Extract(r.ontology)
	r.pairwiseBlocking = needsPairwiseBlocking(r.ontology)
	r.propChars = propertyCharacteristics(r.ontology)
	r.functionalDataProps = functionalDataProperties(r.ontology)
	if err := r.closure.Classify(r.ontology, r.rules); err != nil {
		return &Error{Kind: KindInternal, Op: "Classify", Err: err}
	}
	r.cache.Clear()
	return nil
}

func (r *Reasoner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.cfg.Timeout)
}

func (r *Reasoner) wrapTableauxErr(op string, err error) error {
	var te *tableaux.Error
	if errors.As(err, &te) {
		switch te.Kind {
		case tableaux.KindTimeout:
			return &Error{Kind: KindTimeout, Op: op, Err: err}
		case tableaux.KindCancelled:
			return &Error{Kind: KindCancelled, Op: op, Err: err}
		case tableaux.KindDepthExhausted:
			return &Error{Kind: KindDepthExhausted, Op: op, Err: err}
		default:
			return &Error{Kind: KindInternal, Op: op, Err: err}
		}
	}
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// IsClassSatisfiable reports whether c has a model under the current
// ontology, per spec.md's "run is_consistent on the ontology augmented
// with ClassAssertion(fresh, C)".
func (r *Reasoner) IsClassSatisfiable(ctx context.Context, c ontology.ClassExpression) (bool, error) {
	key := "sat:" + c.Key()
	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	seed := r.buildABox()
	fresh := seed.graph.AddNode()
	seed.engine.Seed(fresh, c)

	res, err := seed.engine.RunQueue(ctx)
	if err != nil {
		return false, r.wrapTableauxErr("IsClassSatisfiable", err)
	}
	r.cache.Put(key, res.Consistent)
	return res.Consistent, nil
}

// IsConsistent reports whether the ontology's ABox (every named
// individual's class memberships and object property assertions) has a
// model.
func (r *Reasoner) IsConsistent(ctx context.Context) (bool, error) {
	const key = "consistent"
	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	seed := r.buildABox()
	res, err := seed.engine.RunQueue(ctx)
	if err != nil {
		return false, r.wrapTableauxErr("IsConsistent", err)
	}
	r.cache.Put(key, res.Consistent)
	return res.Consistent, nil
}

// IsSubclassOf reports whether sub is entailed to be a subclass of super.
// The Datalog closure answers the common case (both ends of an explicit,
// acyclic named-class hierarchy) from its precomputed ancestor_class
// facts; otherwise it falls back to the
// authoritative tableaux test of whether sub ⊓ ¬super is unsatisfiable.
func (r *Reasoner) IsSubclassOf(ctx context.Context, sub, super iri.IRI) (bool, error) {
	if sub.Equal(super) {
		return true, nil
	}
	fast, err := r.closure.IsSubclassOf(sub, super)
	if err != nil {
		return false, &Error{Kind: KindInternal, Op: "IsSubclassOf", Err: err}
	}
	if fast {
		return true, nil
	}

	probe := ontology.ObjectIntersectionOf{Operands: []ontology.ClassExpression{
		ontology.ClassName{IRI: sub},
		ontology.ObjectComplementOf{Operand: ontology.ClassName{IRI: super}},
	}}
	sat, err := r.IsClassSatisfiable(ctx, probe)
	if err != nil {
		return false, err
	}
	return !sat, nil
}

// AreDisjointClasses reports whether a and b are entailed disjoint.
func (r *Reasoner) AreDisjointClasses(ctx context.Context, a, b iri.IRI) (bool, error) {
	fast, err := r.closure.AreDisjoint(a, b)
	if err != nil {
		return false, &Error{Kind: KindInternal, Op: "AreDisjointClasses", Err: err}
	}
	if fast {
		return true, nil
	}

	probe := ontology.ObjectIntersectionOf{Operands: []ontology.ClassExpression{
		ontology.ClassName{IRI: a},
		ontology.ClassName{IRI: b},
	}}
	sat, err := r.IsClassSatisfiable(ctx, probe)
	if err != nil {
		return false, err
	}
	return !sat, nil
}

// GetSubclasses, GetSuperclasses, GetEquivalentClasses, and
// GetDisjointClasses answer purely from the Datalog closure, which is
// built from SubClassOf, EquivalentClasses and DisjointClasses axioms
// between named classes. They do not run the tableaux test, so a relation
// that only the tableaux fallback of IsSubclassOf/AreDisjointClasses can
// prove is not returned.

func (r *Reasoner) GetSubclasses(class iri.IRI) ([]iri.IRI, error) {
	out, err := r.closure.GetSubclasses(class)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Op: "GetSubclasses", Err: err}
	}
	return out, nil
}

func (r *Reasoner) GetSuperclasses(class iri.IRI) ([]iri.IRI, error) {
	out, err := r.closure.GetSuperclasses(class)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Op: "GetSuperclasses", Err: err}
	}
	return out, nil
}

func (r *Reasoner) GetEquivalentClasses(class iri.IRI) ([]iri.IRI, error) {
	out, err := r.closure.GetEquivalentClasses(class)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Op: "GetEquivalentClasses", Err: err}
	}
	return out, nil
}

func (r *Reasoner) GetDisjointClasses(class iri.IRI) ([]iri.IRI, error) {
	out, err := r.closure.GetDisjointClasses(class)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Op: "GetDisjointClasses", Err: err}
	}
	return out, nil
}

// GetInstances returns every named individual entailed to be an instance
// of class: every individual the closure already proved (via explicit
// ClassAssertion plus subclass closure), plus, for the rest, every
// individual a for which ClassAssertion(a, ¬class) is entailed
// inconsistent — spec.md's defining algorithm, run only where the cheap
// closure pre-pass didn't already settle the question.
func (r *Reasoner) GetInstances(ctx context.Context, class iri.IRI) ([]iri.IRI, error) {
	fast, err := r.closure.GetInstances(class)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Op: "GetInstances", Err: err}
	}
	settled := make(map[string]bool, len(fast))
	out := append([]iri.IRI(nil), fast...)
	for _, i := range fast {
		settled[i.String()] = true
	}

	var unsettled []iri.IRI
	consider := func(i iri.IRI) {
		if !settled[i.String()] {
			settled[i.String()] = true
			unsettled = append(unsettled, i)
		}
	}
	for _, ind := range r.ontology.NamedIndividuals() {
		consider(ind.IRI)
	}
	// Individuals named only in a ClassAssertion still get an ABox node.
	for _, ax := range r.ontology.AxiomsOfKind(ontology.AxiomClassAssertion) {
		if ni, ok := ax.(ontology.ClassAssertion).Individual.(ontology.NamedIndividual); ok {
			consider(ni.IRI)
		}
	}

	if !r.cfg.EnableParallel || len(unsettled) < 2 {
		for _, id := range unsettled {
			isInstance, err := r.probeInstance(ctx, id, class)
			if err != nil {
				return nil, err
			}
			if isInstance {
				out = append(out, id)
			}
		}
		return out, nil
	}

	probed, err := r.probeInstancesParallel(ctx, unsettled, class)
	if err != nil {
		return nil, err
	}
	out = append(out, probed...)
	return out, nil
}

// probeInstancesParallel probes each unsettled individual's membership in
// class concurrently, bounded by ParallelWorkers, the way the teacher's
// intelligence gatherer fans out independent collectors with errgroup. The
// first probe error cancels the rest via the group's derived context.
func (r *Reasoner) probeInstancesParallel(ctx context.Context, candidates []iri.IRI, class iri.IRI) ([]iri.IRI, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.cfg.ParallelWorkers)

	var mu sync.Mutex
	var out []iri.IRI
	for _, id := range candidates {
		id := id
		eg.Go(func() error {
			isInstance, err := r.probeInstance(egCtx, id, class)
			if err != nil {
				return err
			}
			if isInstance {
				mu.Lock()
				out = append(out, id)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Explain traces why the closure's entailment predicate (one of
// "ancestor_class" for subclass/superclass, "disjoint_with", or
// "same_class" for equivalence) holds between a and b, down to the base
// axioms that fed it. This only explains closure-level, named-class
// entailments; it cannot explain a verdict the closure didn't settle and
// the tableaux fallback proved instead.
func (r *Reasoner) Explain(ctx context.Context, predicate string, a, b iri.IRI) (*mangle.DerivationTrace, error) {
	trace, err := r.closure.Trace(ctx, predicate, a, b)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Op: "Explain", Err: err}
	}
	return trace, nil
}

func (r *Reasoner) probeInstance(ctx context.Context, individual, class iri.IRI) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	seed := r.buildABox()
	node, ok := r.individualNode(seed, individual)
	if !ok {
		return false, nil
	}
	seed.engine.Seed(node, ontology.ObjectComplementOf{Operand: ontology.ClassName{IRI: class}})

	res, err := seed.engine.RunQueue(ctx)
	if err != nil {
		return false, r.wrapTableauxErr("GetInstances", err)
	}
	return !res.Consistent, nil
}
