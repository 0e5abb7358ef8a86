package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get returns the value", func(t *testing.T) {
		c := NewMemoryCache(10)
		c.Set(ctx, "member:id:1", `{"id":1}`, time.Minute)

		got, ok := c.Get(ctx, "member:id:1")
		assert.True(t, ok)
		assert.Equal(t, `{"id":1}`, got)
	})

	t.Run("missing key reports a miss", func(t *testing.T) {
		c := NewMemoryCache(10)
		_, ok := c.Get(ctx, "member:id:404")
		assert.False(t, ok)
	})

	t.Run("expired entries are dropped on read", func(t *testing.T) {
		c := NewMemoryCache(10)
		c.Set(ctx, "member:id:1", `{"id":1}`, time.Nanosecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "member:id:1")
		assert.False(t, ok)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		c := NewMemoryCache(10)
		c.Set(ctx, "member:id:1", `{"id":1}`, time.Minute)
		c.Delete(ctx, "member:id:1")

		_, ok := c.Get(ctx, "member:id:1")
		assert.False(t, ok)
	})

	t.Run("delete of a missing key is a no-op", func(t *testing.T) {
		c := NewMemoryCache(10)
		c.Delete(ctx, "member:id:404")
	})

	t.Run("clear drops everything", func(t *testing.T) {
		c := NewMemoryCache(10)
		c.Set(ctx, "a", "1", time.Minute)
		c.Set(ctx, "b", "2", time.Minute)
		c.Clear(ctx)

		_, okA := c.Get(ctx, "a")
		_, okB := c.Get(ctx, "b")
		assert.False(t, okA)
		assert.False(t, okB)
	})

	t.Run("non-positive ttl deletes instead of storing", func(t *testing.T) {
		c := NewMemoryCache(10)
		c.Set(ctx, "member:id:1", `{"id":1}`, time.Minute)
		c.Set(ctx, "member:id:1", `{"id":1}`, 0)

		_, ok := c.Get(ctx, "member:id:1")
		assert.False(t, ok)
	})

	t.Run("a full cache sweeps expired entries before admitting", func(t *testing.T) {
		c := NewMemoryCache(3).(*MemoryCache)
		c.Set(ctx, "a", "1", time.Nanosecond)
		c.Set(ctx, "b", "2", time.Nanosecond)
		c.Set(ctx, "c", "3", time.Minute)
		time.Sleep(5 * time.Millisecond)

		c.Set(ctx, "d", "4", time.Minute)

		_, okC := c.Get(ctx, "c")
		_, okD := c.Get(ctx, "d")
		assert.True(t, okC)
		assert.True(t, okD)
		assert.LessOrEqual(t, c.Len(), 3)
	})

	t.Run("a full cache with live entries refuses new keys", func(t *testing.T) {
		c := NewMemoryCache(3).(*MemoryCache)
		for i := 0; i < 3; i++ {
			c.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Minute)
		}

		c.Set(ctx, "overflow", "v", time.Minute)

		_, ok := c.Get(ctx, "overflow")
		assert.False(t, ok)
		assert.Equal(t, 3, c.Len())
	})
}
