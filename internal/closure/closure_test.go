package closure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/rules"
)

func mustIntern(t *testing.T, in *iri.Interner, s string) iri.IRI {
	t.Helper()
	v, err := in.Intern(s)
	require.NoError(t, err)
	return v
}

func TestClassifyMaterializesTransitiveSubclassClosure(t *testing.T) {
	in := iri.New(0)
	dog := mustIntern(t, in, "http://example.org/Dog")
	mammal := mustIntern(t, in, "http://example.org/Mammal")
	animal := mustIntern(t, in, "http://example.org/Animal")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: dog}, Super: ontology.ClassName{IRI: mammal}}))
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: mammal}, Super: ontology.ClassName{IRI: animal}}))

	cl, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, cl.Classify(o, rules.Extract(o)))

	supers, err := cl.GetSuperclasses(dog)
	require.NoError(t, err)
	assert.Contains(t, supers, mammal)
	assert.Contains(t, supers, animal)

	subs, err := cl.GetSubclasses(animal)
	require.NoError(t, err)
	assert.Contains(t, subs, dog)
	assert.Contains(t, subs, mammal)

	ok, err := cl.IsSubclassOf(dog, animal)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClassifyMaterializesEquivalentClasses(t *testing.T) {
	in := iri.New(0)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.EquivalentClasses{
		Classes: []ontology.ClassExpression{ontology.ClassName{IRI: a}, ontology.ClassName{IRI: b}},
	}))

	cl, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, cl.Classify(o, rules.Extract(o)))

	eq, err := cl.GetEquivalentClasses(a)
	require.NoError(t, err)
	assert.Contains(t, eq, b)
}

func TestClassifyPropagatesDisjointnessDownSubclassHierarchy(t *testing.T) {
	in := iri.New(0)
	bird := mustIntern(t, in, "http://example.org/Bird")
	mammal := mustIntern(t, in, "http://example.org/Mammal")
	dog := mustIntern(t, in, "http://example.org/Dog")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: dog}, Super: ontology.ClassName{IRI: mammal}}))
	require.NoError(t, o.AddAxiom(ontology.DisjointClasses{
		Classes: []ontology.ClassExpression{ontology.ClassName{IRI: bird}, ontology.ClassName{IRI: mammal}},
	}))

	cl, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, cl.Classify(o, rules.Extract(o)))

	disjoint, err := cl.AreDisjoint(dog, bird)
	require.NoError(t, err)
	assert.True(t, disjoint)
}

func TestClassifyMaterializesInstanceClosure(t *testing.T) {
	in := iri.New(0)
	dog := mustIntern(t, in, "http://example.org/Dog")
	animal := mustIntern(t, in, "http://example.org/Animal")
	rex := mustIntern(t, in, "http://example.org/Rex")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: dog}, Super: ontology.ClassName{IRI: animal}}))
	require.NoError(t, o.AddAxiom(ontology.ClassAssertion{Individual: ontology.NamedIndividual{IRI: rex}, Class: ontology.ClassName{IRI: dog}}))

	cl, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, cl.Classify(o, rules.Extract(o)))

	instances, err := cl.GetInstances(animal)
	require.NoError(t, err)
	assert.Contains(t, instances, rex)
}

func TestClassifyIsIdempotentAcrossRepeatedCalls(t *testing.T) {
	in := iri.New(0)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: a}, Super: ontology.ClassName{IRI: b}}))

	cl, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, cl.Classify(o, rules.Extract(o)))
	require.NoError(t, cl.Classify(o, rules.Extract(o)))

	supers, err := cl.GetSuperclasses(a)
	require.NoError(t, err)
	assert.Len(t, supers, 1)
}

func TestTraceExplainsAncestorClassThroughTransitivity(t *testing.T) {
	in := iri.New(0)
	dog := mustIntern(t, in, "http://example.org/Dog")
	mammal := mustIntern(t, in, "http://example.org/Mammal")
	animal := mustIntern(t, in, "http://example.org/Animal")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: dog}, Super: ontology.ClassName{IRI: mammal}}))
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: mammal}, Super: ontology.ClassName{IRI: animal}}))

	cl, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, cl.Classify(o, rules.Extract(o)))

	trace, err := cl.Trace(context.Background(), "ancestor_class", dog, animal)
	require.NoError(t, err)
	require.NotEmpty(t, trace.RootNodes)

	root := trace.RootNodes[0]
	assert.Equal(t, "ancestor_class", root.Fact.Predicate)
	assert.Equal(t, dog.String(), root.Fact.Args[0])
	assert.Equal(t, animal.String(), root.Fact.Args[1])
}

func TestTraceRejectsUnknownClass(t *testing.T) {
	in := iri.New(0)
	known := mustIntern(t, in, "http://example.org/Known")

	cl, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, cl.Classify(ontology.New(false), rules.Extract(ontology.New(false))))

	_, err = cl.Trace(context.Background(), "ancestor_class", known, known)
	assert.Error(t, err)
}
