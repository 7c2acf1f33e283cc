package iri

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternIsCanonical(t *testing.T) {
	in := New(0)
	a, err := in.Intern("http://example.org/Person")
	require.NoError(t, err)
	b, err := in.Intern("http://example.org/Person")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestInternRejectsEmpty(t *testing.T) {
	in := New(0)
	_, err := in.Intern("")
	require.Error(t, err)
	var creationErr *CreationError
	assert.ErrorAs(t, err, &creationErr)
}

func TestLookupMiss(t *testing.T) {
	in := New(0)
	_, ok := in.Lookup("http://example.org/Missing")
	assert.False(t, ok)
}

func TestLocalNameAndNamespace(t *testing.T) {
	in := New(0)
	i, err := in.Intern("http://example.org/onto#Person")
	require.NoError(t, err)
	assert.Equal(t, "Person", i.LocalName())
	assert.Equal(t, "http://example.org/onto#", i.Namespace())
}

func TestWellKnownNamespaces(t *testing.T) {
	in := New(0)
	owlThing, _ := in.Intern(NamespaceOWL + "Thing")
	assert.True(t, owlThing.IsOWL())
	assert.False(t, owlThing.IsRDF())

	xsdInt, _ := in.Intern(NamespaceXSD + "integer")
	assert.True(t, xsdInt.IsXSD())
}

func TestBoundedEviction(t *testing.T) {
	in := New(2)
	a, _ := in.Intern("a")
	_, _ = in.Intern("b")
	_, _ = in.Intern("c") // evicts "a"

	_, ok := in.Lookup("a")
	assert.False(t, ok, "least-recently-inserted entry should be evicted")

	stats := in.Stats()
	assert.Equal(t, uint64(1), stats.Evictions)
	assert.Equal(t, 2, stats.Size)

	// a's old handle remains structurally valid even though no longer canonical.
	assert.Equal(t, "a", a.String())
}

func TestClearResetsEntries(t *testing.T) {
	in := New(0)
	_, _ = in.Intern("x")
	in.Clear()
	_, ok := in.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, in.Stats().Size)
}

func TestConcurrentInternIsSafe(t *testing.T) {
	in := New(0)
	var wg sync.WaitGroup
	results := make([]IRI, 100)
	for n := 0; n < 100; n++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			v, err := in.Intern("http://example.org/Shared")
			require.NoError(t, err)
			results[idx] = v
		}(n)
	}
	wg.Wait()
	for _, r := range results {
		assert.True(t, r.Equal(results[0]))
	}
}
