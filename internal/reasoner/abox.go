package reasoner

import (
	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/tableaux"
)

// propertyCharacteristics collects every object property's declared
// characteristics into the shape Config.PropCharacteristics wants.
func propertyCharacteristics(o *ontology.Ontology) []tableaux.PropertyCharacteristics {
	var out []tableaux.PropertyCharacteristics
	for _, p := range o.ObjectProperties() {
		chars := make(map[ontology.ObjectPropertyCharacteristic]bool)
		any := false
		for c := ontology.Functional; c <= ontology.Irreflexive; c++ {
			if p.HasCharacteristic(c) {
				chars[c] = true
				any = true
			}
		}
		if any {
			out = append(out, tableaux.PropertyCharacteristics{Property: p.IRI, Characteristics: chars})
		}
	}
	return out
}

// functionalDataProperties returns the set of data property IRIs (as
// strings, matching Config.FunctionalDataProps's key shape) declared
// functional.
func functionalDataProperties(o *ontology.Ontology) map[string]bool {
	out := make(map[string]bool)
	for _, p := range o.DataProperties() {
		if p.HasCharacteristic(ontology.DataFunctional) {
			out[p.IRI.String()] = true
		}
	}
	return out
}

// needsPairwiseBlocking implements SPEC_FULL.md §9 OQ4: pairwise
// (equality) blocking when a SubClassOf, EquivalentClasses,
// DisjointClasses or ClassAssertion axiom has a class expression that
// classExpressionNeedsPairwise flags, or a SubObjectPropertyOf,
// InverseObjectProperties, EquivalentObjectProperties,
// DisjointObjectProperties or ObjectPropertyAssertion axiom uses an
// inverse property; subset blocking (cheaper) otherwise. Other axiom
// kinds are not inspected.
func needsPairwiseBlocking(o *ontology.Ontology) bool {
	for _, ax := range o.Axioms() {
		for _, ce := range axiomClassExpressions(ax) {
			if classExpressionNeedsPairwise(ce) {
				return true
			}
		}
		for _, pe := range axiomPropertyExpressions(ax) {
			if _, inverted := ontology.ResolvePropertyDirection(pe); inverted {
				return true
			}
		}
	}
	return false
}

func axiomClassExpressions(ax ontology.Axiom) []ontology.ClassExpression {
	switch a := ax.(type) {
	case ontology.SubClassOf:
		return []ontology.ClassExpression{a.Sub, a.Super}
	case ontology.EquivalentClasses:
		return a.Classes
	case ontology.DisjointClasses:
		return a.Classes
	case ontology.ClassAssertion:
		return []ontology.ClassExpression{a.Class}
	default:
		return nil
	}
}

func axiomPropertyExpressions(ax ontology.Axiom) []ontology.ObjectPropertyExpression {
	switch a := ax.(type) {
	case ontology.SubObjectPropertyOf:
		return []ontology.ObjectPropertyExpression{a.Sub, a.Super}
	case ontology.InverseObjectProperties:
		return []ontology.ObjectPropertyExpression{a.First, a.Second}
	case ontology.EquivalentObjectProperties:
		return a.Properties
	case ontology.DisjointObjectProperties:
		return a.Properties
	case ontology.ObjectPropertyAssertion:
		return []ontology.ObjectPropertyExpression{a.Property}
	default:
		return nil
	}
}

func classExpressionNeedsPairwise(ce ontology.ClassExpression) bool {
	switch c := ce.(type) {
	case ontology.ObjectCardinality:
		return true
	case ontology.ObjectIntersectionOf:
		return anyNeedsPairwise(c.Operands)
	case ontology.ObjectUnionOf:
		return anyNeedsPairwise(c.Operands)
	case ontology.ObjectComplementOf:
		return classExpressionNeedsPairwise(c.Operand)
	case ontology.ObjectSomeValuesFrom:
		if _, inverted := ontology.ResolvePropertyDirection(c.Property); inverted {
			return true
		}
		return classExpressionNeedsPairwise(c.Filler)
	case ontology.ObjectAllValuesFrom:
		if _, inverted := ontology.ResolvePropertyDirection(c.Property); inverted {
			return true
		}
		return classExpressionNeedsPairwise(c.Filler)
	case ontology.ObjectHasValue:
		_, inverted := ontology.ResolvePropertyDirection(c.Property)
		return inverted
	case ontology.ObjectHasSelf:
		_, inverted := ontology.ResolvePropertyDirection(c.Property)
		return inverted
	default:
		return false
	}
}

func anyNeedsPairwise(ces []ontology.ClassExpression) bool {
	for _, c := range ces {
		if classExpressionNeedsPairwise(c) {
			return true
		}
	}
	return false
}

// aboxSeed is one freshly built, unrun tableau covering every named
// individual's asserted class memberships and object property
// assertions. Callers seed additional concepts (e.g. a probe for
// is_class_satisfiable or get_instances) before draining it with
// engine.RunQueue.
type aboxSeed struct {
	graph  *tableaux.Graph
	engine *tableaux.Engine
	nodes  map[string]tableaux.NodeId
}

func (r *Reasoner) buildABox() *aboxSeed {
	o := r.ontology
	graph := tableaux.NewGraph()
	arena := tableaux.NewArena()
	deps := tableaux.NewDependencyManager()

	cfg := tableaux.Config{
		BottomIRI:           r.bottomIRI,
		MaxDepth:            r.cfg.MaxDepth,
		PairwiseBlocking:    r.pairwiseBlocking,
		PropCharacteristics: r.propChars,
		FunctionalDataProps: r.functionalDataProps,
		Logger:              r.logger,
	}
	engine := tableaux.NewEngine(graph, arena, deps, r.rules, cfg)

	seed := &aboxSeed{graph: graph, engine: engine, nodes: make(map[string]tableaux.NodeId)}

	nodeFor := func(key string) tableaux.NodeId {
		if id, ok := seed.nodes[key]; ok {
			return id
		}
		id := graph.AddNode()
		seed.nodes[key] = id
		return id
	}

	for _, ind := range o.NamedIndividuals() {
		nodeFor(ind.IRI.String())
	}

	for _, ax := range o.AxiomsOfKind(ontology.AxiomClassAssertion) {
		ca := ax.(ontology.ClassAssertion)
		ni, ok := ca.Individual.(ontology.NamedIndividual)
		if !ok {
			continue
		}
		engine.Seed(nodeFor(ni.IRI.String()), ca.Class)
	}

	for _, ax := range o.AxiomsOfKind(ontology.AxiomObjectPropertyAssertion) {
		pa := ax.(ontology.ObjectPropertyAssertion)
		subj, subjOK := pa.Subject.(ontology.NamedIndividual)
		obj, objOK := pa.Object.(ontology.NamedIndividual)
		if !subjOK || !objOK {
			continue
		}
		base, inverted := ontology.ResolvePropertyDirection(pa.Property)
		from, to := nodeFor(subj.IRI.String()), nodeFor(obj.IRI.String())
		if inverted {
			from, to = to, from
		}
		graph.AddEdge(from, base.IRI, to)
	}

	return seed
}

func (r *Reasoner) individualNode(seed *aboxSeed, i iri.IRI) (tableaux.NodeId, bool) {
	id, ok := seed.nodes[i.String()]
	return id, ok
}
