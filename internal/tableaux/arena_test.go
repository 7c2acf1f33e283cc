package tableaux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaRecordsCountsAndBytes(t *testing.T) {
	a := NewArena()
	a.RecordNode(64)
	a.RecordEdge(32)
	a.RecordExpression(16)
	a.RecordConstraint(8)

	stats := a.Stats()
	assert.Equal(t, 1, stats.NodeCount)
	assert.Equal(t, 1, stats.EdgeCount)
	assert.Equal(t, 1, stats.ExpressionCount)
	assert.Equal(t, 1, stats.ConstraintCount)
	assert.Equal(t, uint64(120), stats.TotalBytes)
	assert.Equal(t, uint64(120), stats.HighWaterBytes)
}

func TestArenaInternStringDeduplicates(t *testing.T) {
	a := NewArena()
	s1 := a.InternString("http://example.org/A")
	s2 := a.InternString("http://example.org/A")
	assert.Equal(t, s1, s2)
}

func TestArenaResetAllRewindsCountsButKeepsHighWaterMark(t *testing.T) {
	a := NewArena()
	a.RecordNode(100)
	a.ResetAll()

	stats := a.Stats()
	assert.Equal(t, 0, stats.NodeCount)
	assert.Equal(t, uint64(0), stats.TotalBytes)
	assert.Equal(t, uint64(100), stats.HighWaterBytes)
}
