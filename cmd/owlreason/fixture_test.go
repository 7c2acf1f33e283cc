package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixture = `
# a toy pet taxonomy
class ex:Animal
class ex:Mammal
class ex:Dog
class ex:Bird
objectproperty ex:hasParent transitive
individual ex:Rex

subclassof ex:Dog ex:Mammal
subclassof ex:Mammal ex:Animal
disjointclasses ex:Mammal ex:Bird
classassertion ex:Rex ex:Dog
objectpropertyassertion ex:hasParent ex:Rex ex:Rex
`

func TestParseOntologyBuildsEntitiesAndAxioms(t *testing.T) {
	o, in, err := parseOntology(strings.NewReader(sampleFixture))
	require.NoError(t, err)

	assert.Len(t, o.Classes(), 4)
	assert.Len(t, o.ObjectProperties(), 1)
	assert.Len(t, o.NamedIndividuals(), 1)
	assert.Equal(t, 5, o.AxiomCount())

	dog, ok := in.Lookup("http://example.org/Dog")
	require.True(t, ok)
	_, found := o.GetClass(dog)
	assert.True(t, found)
}

func TestParseOntologyExpandsExPrefix(t *testing.T) {
	_, in, err := parseOntology(strings.NewReader("class ex:Thing\n"))
	require.NoError(t, err)
	_, ok := in.Lookup("http://example.org/Thing")
	assert.True(t, ok)
}

func TestParseOntologyRejectsUnknownDirective(t *testing.T) {
	_, _, err := parseOntology(strings.NewReader("bogus ex:Thing\n"))
	assert.Error(t, err)
}

func TestParseOntologySkipsBlankLinesAndComments(t *testing.T) {
	o, _, err := parseOntology(strings.NewReader("\n# comment\n\nclass ex:A\n"))
	require.NoError(t, err)
	assert.Len(t, o.Classes(), 1)
}
