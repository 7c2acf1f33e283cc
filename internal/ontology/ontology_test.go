package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owlreasoner/internal/iri"
)

func mustIntern(t *testing.T, in *iri.Interner, s string) iri.IRI {
	t.Helper()
	i, err := in.Intern(s)
	require.NoError(t, err)
	return i
}

func TestAddEntityIsIdempotent(t *testing.T) {
	in := iri.New(0)
	o := New(false)
	personIRI := mustIntern(t, in, "http://example.org/Person")

	require.NoError(t, o.AddClass(&Class{IRI: personIRI}))
	require.NoError(t, o.AddClass(&Class{IRI: personIRI}))

	assert.Len(t, o.Classes(), 1)
}

func TestAddAxiomIsIdempotent(t *testing.T) {
	in := iri.New(0)
	o := New(false)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")
	ax := SubClassOf{Sub: ClassName{IRI: a}, Super: ClassName{IRI: b}}

	require.NoError(t, o.AddAxiom(ax))
	require.NoError(t, o.AddAxiom(ax))

	assert.Equal(t, 1, o.AxiomCount())
	assert.Len(t, o.SubClassAxioms(), 1)
}

func TestStrictModeRejectsUndeclaredEntity(t *testing.T) {
	in := iri.New(0)
	o := New(true)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")

	err := o.AddAxiom(SubClassOf{Sub: ClassName{IRI: a}, Super: ClassName{IRI: b}})
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestStrictModeAdmitsDeclaredEntity(t *testing.T) {
	in := iri.New(0)
	o := New(true)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")
	require.NoError(t, o.AddClass(&Class{IRI: a}))
	require.NoError(t, o.AddClass(&Class{IRI: b}))

	err := o.AddAxiom(SubClassOf{Sub: ClassName{IRI: a}, Super: ClassName{IRI: b}})
	require.NoError(t, err)
}

func TestNonStrictModeAdmitsUndeclaredEntity(t *testing.T) {
	in := iri.New(0)
	o := New(false)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")

	err := o.AddAxiom(SubClassOf{Sub: ClassName{IRI: a}, Super: ClassName{IRI: b}})
	require.NoError(t, err)
}

func TestReflexiveSubClassOfAAIsAdmitted(t *testing.T) {
	in := iri.New(0)
	o := New(false)
	a := mustIntern(t, in, "http://example.org/A")

	err := o.AddAxiom(SubClassOf{Sub: ClassName{IRI: a}, Super: ClassName{IRI: a}})
	require.NoError(t, err)
	assert.Len(t, o.SubClassAxioms(), 1)
}

func TestAxiomsOfKindIndexesByKind(t *testing.T) {
	in := iri.New(0)
	o := New(false)
	a := mustIntern(t, in, "http://example.org/A")
	b := mustIntern(t, in, "http://example.org/B")

	require.NoError(t, o.AddAxiom(SubClassOf{Sub: ClassName{IRI: a}, Super: ClassName{IRI: b}}))
	require.NoError(t, o.AddAxiom(DisjointClasses{Classes: []ClassExpression{ClassName{IRI: a}, ClassName{IRI: b}}}))

	assert.Len(t, o.AxiomsOfKind(AxiomSubClassOf), 1)
	assert.Len(t, o.AxiomsOfKind(AxiomDisjointClasses), 1)
	assert.Equal(t, 2, o.AxiomCount())
}

func TestImports(t *testing.T) {
	in := iri.New(0)
	o := New(false)
	dep := mustIntern(t, in, "http://example.org/dep.owl")
	o.AddImport(dep)
	assert.Len(t, o.Imports(), 1)
}
