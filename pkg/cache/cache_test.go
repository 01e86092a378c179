package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory_RoundTrip(t *testing.T) {
	c := NewMemory(5*time.Minute, 100)

	_, ok := c.Get("call:1")
	assert.False(t, ok)

	c.Set("call:1", "rendered")
	got, ok := c.Get("call:1")
	assert.True(t, ok)
	assert.Equal(t, "rendered", got)
}

func TestMemory_ExpiredEntryIsRemovedOnGet(t *testing.T) {
	now := time.Now()
	c := NewMemory(5*time.Minute, 100).WithClock(func() time.Time { return now })

	c.Set("call:1", "rendered")

	now = now.Add(5*time.Minute + time.Second)

	_, ok := c.Get("call:1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_GetDoesNotExtendTTL(t *testing.T) {
	now := time.Now()
	c := NewMemory(5*time.Minute, 100).WithClock(func() time.Time { return now })

	c.Set("call:1", "rendered")

	now = now.Add(4 * time.Minute)
	_, ok := c.Get("call:1")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("call:1")
	assert.False(t, ok)
}

func TestMemory_CapacityEvictsOldestInserted(t *testing.T) {
	c := NewMemory(5*time.Minute, 100)

	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("call:%d", i), "v")
	}

	// Touching the oldest entry must not protect it: eviction is by
	// insertion order, not last access.
	_, ok := c.Get("call:0")
	assert.True(t, ok)

	c.Set("call:100", "v")

	assert.Equal(t, 100, c.Len())
	_, ok = c.Get("call:0")
	assert.False(t, ok)
	_, ok = c.Get("call:1")
	assert.True(t, ok)
	_, ok = c.Get("call:100")
	assert.True(t, ok)
}

func TestMemory_OverwriteKeepsInsertionSlot(t *testing.T) {
	c := NewMemory(5*time.Minute, 3)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	// Re-setting "a" keeps it the oldest-inserted entry
	c.Set("a", "updated")
	c.Set("d", "4")

	_, ok := c.Get("a")
	assert.False(t, ok)
	got, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", got)
}
