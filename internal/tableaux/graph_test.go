package tableaux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
)

func mustIRI(t *testing.T, s string) iri.IRI {
	t.Helper()
	in := iri.New(0)
	v, err := in.Intern(s)
	require.NoError(t, err)
	return v
}

func TestGraphAddConceptIsIdempotent(t *testing.T) {
	g := NewGraph()
	c := ontology.ClassName{IRI: mustIRI(t, "http://example.org/A")}
	assert.True(t, g.AddConcept(g.Root(), c))
	assert.False(t, g.AddConcept(g.Root(), c))
	assert.Len(t, g.Node(g.Root()).Concepts(), 1)
}

func TestGraphPromotesNodeStorageBeyondSmallCapacity(t *testing.T) {
	g := NewGraph()
	for i := 0; i < smallNodeCapacity+3; i++ {
		c := ontology.ClassName{IRI: mustIRI(t, "http://example.org/C"+string(rune('A'+i)))}
		g.AddConcept(g.Root(), c)
	}
	assert.Equal(t, smallNodeCapacity+3, g.Node(g.Root()).Len())
}

func TestGraphSuccessorsAndAncestors(t *testing.T) {
	g := NewGraph()
	prop := mustIRI(t, "http://example.org/hasChild")
	child := g.AddSuccessorNode(g.Root())
	g.AddEdge(g.Root(), prop, child)

	assert.Equal(t, []NodeId{child}, g.Successors(g.Root(), prop))
	assert.Equal(t, []NodeId{g.Root()}, g.Ancestors(child))
}

func TestGraphPredecessorsScansEdges(t *testing.T) {
	g := NewGraph()
	prop := mustIRI(t, "http://example.org/hasChild")
	child := g.AddSuccessorNode(g.Root())
	g.AddEdge(g.Root(), prop, child)

	assert.Equal(t, []NodeId{g.Root()}, g.Predecessors(child, prop))
}

func TestGraphRollbackUndoesNodesEdgesAndConcepts(t *testing.T) {
	g := NewGraph()
	prop := mustIRI(t, "http://example.org/hasChild")
	cp := g.Checkpoint()

	c := ontology.ClassName{IRI: mustIRI(t, "http://example.org/A")}
	g.AddConcept(g.Root(), c)
	child := g.AddSuccessorNode(g.Root())
	g.AddEdge(g.Root(), prop, child)

	require.Equal(t, 2, g.NodeCount())
	require.True(t, g.ContainsConcept(g.Root(), c))

	g.RollbackTo(cp)

	assert.Equal(t, 1, g.NodeCount())
	assert.False(t, g.ContainsConcept(g.Root(), c))
	assert.Empty(t, g.Successors(g.Root(), prop))
}

func TestGraphClearResetsToFreshRoot(t *testing.T) {
	g := NewGraph()
	g.AddSuccessorNode(g.Root())
	g.Clear()
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, NodeId(0), g.Root())
}
