package reasoner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owlreasoner/internal/config"
	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
)

func mustIntern(t *testing.T, in *iri.Interner, s string) iri.IRI {
	t.Helper()
	v, err := in.Intern(s)
	require.NoError(t, err)
	return v
}

func newTestReasoner(t *testing.T, o *ontology.Ontology, in *iri.Interner) *Reasoner {
	t.Helper()
	r, err := New(o, in, config.DefaultReasonerConfig(), nil)
	require.NoError(t, err)
	return r
}

func TestEmptyOntologyIsConsistent(t *testing.T) {
	in := iri.New(0)
	o := ontology.New(false)
	r := newTestReasoner(t, o, in)

	ok, err := r.IsConsistent(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubclassOfViaNamedHierarchy(t *testing.T) {
	in := iri.New(0)
	parent := mustIntern(t, in, "http://example.org/Parent")
	person := mustIntern(t, in, "http://example.org/Person")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: parent}, Super: ontology.ClassName{IRI: person}}))

	r := newTestReasoner(t, o, in)

	ok, err := r.IsSubclassOf(context.Background(), parent, person)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsSubclassOf(context.Background(), person, parent)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsClassSatisfiableDetectsComplementClash(t *testing.T) {
	in := iri.New(0)
	a := mustIntern(t, in, "http://example.org/A")

	o := ontology.New(false)
	r := newTestReasoner(t, o, in)

	unsat := ontology.ObjectIntersectionOf{Operands: []ontology.ClassExpression{
		ontology.ClassName{IRI: a},
		ontology.ObjectComplementOf{Operand: ontology.ClassName{IRI: a}},
	}}

	ok, err := r.IsClassSatisfiable(context.Background(), unsat)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAreDisjointClassesViaExplicitAxiom(t *testing.T) {
	in := iri.New(0)
	cat := mustIntern(t, in, "http://example.org/Cat")
	dog := mustIntern(t, in, "http://example.org/Dog")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.DisjointClasses{
		Classes: []ontology.ClassExpression{ontology.ClassName{IRI: cat}, ontology.ClassName{IRI: dog}},
	}))

	r := newTestReasoner(t, o, in)

	ok, err := r.AreDisjointClasses(context.Background(), cat, dog)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetInstancesCombinesClosureAndProbe(t *testing.T) {
	in := iri.New(0)
	dog := mustIntern(t, in, "http://example.org/Dog")
	animal := mustIntern(t, in, "http://example.org/Animal")
	rex := mustIntern(t, in, "http://example.org/Rex")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: dog}, Super: ontology.ClassName{IRI: animal}}))
	require.NoError(t, o.AddAxiom(ontology.ClassAssertion{Individual: ontology.NamedIndividual{IRI: rex}, Class: ontology.ClassName{IRI: dog}}))

	r := newTestReasoner(t, o, in)

	instances, err := r.GetInstances(context.Background(), animal)
	require.NoError(t, err)
	assert.Contains(t, instances, rex)
}

func TestGetInstancesProbesUnsettledIndividualsInParallel(t *testing.T) {
	in := iri.New(0)
	dog := mustIntern(t, in, "http://example.org/Dog")

	// Each individual is asserted into an anonymous intersection rather than
	// the named class directly, so the closure's EDB extraction (which only
	// tracks ClassAssertion against a bare ClassName) never settles them and
	// every one falls through to the tableaux probe.
	o := ontology.New(false)
	individuals := make([]iri.IRI, 5)
	for i := range individuals {
		ind := mustIntern(t, in, fmt.Sprintf("http://example.org/Dog%d", i))
		individuals[i] = ind
		require.NoError(t, o.AddAxiom(ontology.ClassAssertion{
			Individual: ontology.NamedIndividual{IRI: ind},
			Class: ontology.ObjectIntersectionOf{Operands: []ontology.ClassExpression{
				ontology.ClassName{IRI: dog},
				ontology.ClassName{IRI: dog},
			}},
		}))
	}

	cfg := config.DefaultReasonerConfig()
	cfg.EnableParallel = true
	cfg.ParallelWorkers = 2
	r, err := New(o, in, cfg, nil)
	require.NoError(t, err)

	instances, err := r.GetInstances(context.Background(), dog)
	require.NoError(t, err)
	for _, ind := range individuals {
		assert.Contains(t, instances, ind)
	}
}

func TestClassifyRefreshesAfterOntologyMutation(t *testing.T) {
	in := iri.New(0)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")

	o := ontology.New(false)
	r := newTestReasoner(t, o, in)

	subs, err := r.GetSuperclasses(a)
	require.NoError(t, err)
	assert.Empty(t, subs)

	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: a}, Super: ontology.ClassName{IRI: b}}))
	require.NoError(t, r.Classify(context.Background()))

	subs, err = r.GetSuperclasses(a)
	require.NoError(t, err)
	assert.Contains(t, subs, b)
}

func TestExplainTracesAncestorClassDerivation(t *testing.T) {
	in := iri.New(0)
	dog := mustIntern(t, in, "http://example.org/Dog")
	animal := mustIntern(t, in, "http://example.org/Animal")

	o := ontology.New(false)
	require.NoError(t, o.AddAxiom(ontology.SubClassOf{Sub: ontology.ClassName{IRI: dog}, Super: ontology.ClassName{IRI: animal}}))

	r := newTestReasoner(t, o, in)

	trace, err := r.Explain(context.Background(), "ancestor_class", dog, animal)
	require.NoError(t, err)
	require.NotEmpty(t, trace.RootNodes)
	assert.Equal(t, dog.String(), trace.RootNodes[0].Fact.Args[0])
}

func TestContextCancellationSurfacesAsCancelledError(t *testing.T) {
	in := iri.New(0)
	o := ontology.New(false)
	r := newTestReasoner(t, o, in)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.IsClassSatisfiable(ctx, ontology.ClassName{})
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindCancelled, rerr.Kind)
}
