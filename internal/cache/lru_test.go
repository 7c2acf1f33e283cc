package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // touch a, making b the least recently used
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRUUnboundedWhenCapacityZero(t *testing.T) {
	c := NewLRU[int, int](0)
	for i := 0; i < 1000; i++ {
		c.Put(i, i*i)
	}
	assert.Equal(t, 1000, c.Len())
}

func TestLRUPeekDoesNotAffectRecency(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Peek("a")
	c.Put("c", 3) // should still evict "a" since Peek didn't promote it

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestLRUForceCleanupClearsAll(t *testing.T) {
	c := NewLRU[string, int](10)
	c.Put("a", 1)
	c.Put("b", 2)
	c.ForceCleanup()
	assert.Equal(t, 0, c.Len())
}

func TestMonitorTriggersCleanupUnderPressure(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewLRU[string, int](10)
	c.Put("a", 1)

	mon := NewMonitor(MonitorConfig{
		MaxBytes:          1, // force pressure > threshold regardless of real RSS
		PressureThreshold: 0.0000001,
		CheckPeriod:       time.Hour,
	}, nil)
	mon.Register(c)
	mon.ForceCheck()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(1), mon.Stats().CleanupCount)
	assert.Equal(t, uint64(1), mon.Stats().PressureEventCount)
}

func TestMonitorStartStopIsClean(t *testing.T) {
	defer goleak.VerifyNone(t)

	mon := NewMonitor(MonitorConfig{CheckPeriod: time.Millisecond}, nil)
	mon.Start()
	time.Sleep(5 * time.Millisecond)
	mon.Stop()
}
