package tableaux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencySetMaxReturnsMostRecent(t *testing.T) {
	d := NewDependencySet(1, 3, 2)
	max, ok := d.Max()
	require.True(t, ok)
	assert.Equal(t, ChoicePointID(3), max)
}

func TestDependencySetMaxEmptyIsFalse(t *testing.T) {
	_, ok := NewDependencySet().Max()
	assert.False(t, ok)
}

func TestDependencySetUnion(t *testing.T) {
	a := NewDependencySet(1)
	b := NewDependencySet(2)
	u := a.Union(b)
	assert.True(t, u[1])
	assert.True(t, u[2])
}

func TestPushChoicePointAssignsMonotonicIDs(t *testing.T) {
	d := NewDependencyManager()
	cp1 := d.PushChoicePoint(0, nil, 0, NewDependencySet())
	cp2 := d.PushChoicePoint(0, nil, 0, NewDependencySet())
	assert.Less(t, cp1.ID, cp2.ID)
}

func TestPopAboveDiscardsNewerChoicePoints(t *testing.T) {
	d := NewDependencyManager()
	cp1 := d.PushChoicePoint(0, nil, 0, NewDependencySet())
	d.PushChoicePoint(0, nil, 0, NewDependencySet())
	d.PushChoicePoint(0, nil, 0, NewDependencySet())

	d.PopAbove(cp1.ID)

	assert.Equal(t, cp1, d.Current())
}

func TestRecordFactAndFactDependencies(t *testing.T) {
	d := NewDependencyManager()
	deps := NewDependencySet(1)
	d.RecordFact(5, "A", deps)

	got, ok := d.FactDependencies(5, "A")
	require.True(t, ok)
	assert.Equal(t, deps, got)

	_, ok = d.FactDependencies(5, "B")
	assert.False(t, ok)
}

func TestClearEmptiesStackAndFactIndex(t *testing.T) {
	d := NewDependencyManager()
	d.PushChoicePoint(0, nil, 0, NewDependencySet())
	d.RecordFact(0, "A", NewDependencySet())

	d.Clear()

	assert.Nil(t, d.Current())
	_, ok := d.FactDependencies(0, "A")
	assert.False(t, ok)
}
