package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
)

func TestExtractCollectsStructuralAxioms(t *testing.T) {
	in := iri.New(0)
	o := ontology.New(false)

	a, err := in.Intern("http://example.org/A")
	require.NoError(t, err)
	b, err := in.Intern("http://example.org/B")
	require.NoError(t, err)

	require.NoError(t, o.AddAxiom(ontology.SubClassOf{
		Sub: ontology.ClassName{IRI: a}, Super: ontology.ClassName{IRI: b},
	}))
	require.NoError(t, o.AddAxiom(ontology.DisjointClasses{
		Classes: []ontology.ClassExpression{ontology.ClassName{IRI: a}, ontology.ClassName{IRI: b}},
	}))

	rs := Extract(o)
	assert.Len(t, rs.SubClassRules, 1)
	assert.Len(t, rs.DisjointnessRules, 1)
	assert.Empty(t, rs.EquivalenceRules)
	assert.Empty(t, rs.PropertyRules)
}

func TestClearEmptiesAllSlices(t *testing.T) {
	rs := &RuleSet{SubClassRules: []ontology.SubClassOf{{}}}
	rs.Clear()
	assert.Nil(t, rs.SubClassRules)
}
