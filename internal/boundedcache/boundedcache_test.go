// Copyright 2024-2025 CardinalHQ, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package boundedcache

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbounded(t *testing.T) {
	c := NewUnbounded[int]()

	_, ok := c.Get("a")
	assert.False(t, ok)

	for i := range 1000 {
		c.Put(fmt.Sprintf("k%d", i), i)
	}
	assert.Equal(t, 1000, c.Len())

	v, ok := c.Get("k0")
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	c.Put("k0", 42)
	v, _ = c.Get("k0")
	assert.Equal(t, 42, v)
	assert.Equal(t, 1000, c.Len())

	c.Delete("k0")
	_, ok = c.Get("k0")
	assert.False(t, ok)
	assert.Equal(t, 999, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
}

func TestUnboundedSnapshotIsCopy(t *testing.T) {
	c := NewUnbounded[string]()
	c.Put("a", "1")
	c.Put("b", "2")

	snap := c.Snapshot()
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, snap)

	c.Put("c", "3")
	c.Delete("a")
	assert.Len(t, snap, 2)
	assert.Equal(t, "1", snap["a"])
}

func TestNewLRU(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
		disabled bool
	}{
		{"negative", -1, true, false},
		{"zero", 0, false, true},
		{"one", 1, false, false},
		{"many", 1000, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewLRU[int](tt.capacity)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isDisabled := c.(disabledCache[int])
			assert.Equal(t, tt.disabled, isDisabled)
		})
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	evictions := 0
	c, err := NewLRU[int](3, WithEvictCallback(func() { evictions++ }))
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	assert.Equal(t, 0, evictions)

	// touch "a" so "b" becomes the oldest
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("d", 4)
	assert.Equal(t, 1, evictions)
	assert.Equal(t, 3, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok)
	for _, k := range []string{"a", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, k)
	}
}

func TestLRUOverwriteDoesNotEvict(t *testing.T) {
	evictions := 0
	c, err := NewLRU[int](2, WithEvictCallback(func() { evictions++ }))
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)
	c.Put("b", 20)
	assert.Equal(t, 0, evictions)
	assert.Equal(t, map[string]int{"a": 10, "b": 20}, c.Snapshot())
}

func TestLRUDeleteAndClearDoNotCountAsEvictions(t *testing.T) {
	evictions := 0
	c, err := NewLRU[int](4, WithEvictCallback(func() { evictions++ }))
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Delete("a")
	assert.Equal(t, 1, c.Len())
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, evictions)
}

func TestLRUNeverExceedsCapacity(t *testing.T) {
	const capacity = 100
	evictions := 0
	c, err := NewLRU[int](capacity, WithEvictCallback(func() { evictions++ }))
	require.NoError(t, err)

	for i := range 10 * capacity {
		c.Put(fmt.Sprintf("k%d", i), i)
		assert.LessOrEqual(t, c.Len(), capacity)
	}
	assert.Equal(t, capacity, c.Len())
	assert.Equal(t, 9*capacity, evictions)

	keys := c.Keys()
	sort.Strings(keys)
	assert.Len(t, keys, capacity)
	_, ok := c.Get(fmt.Sprintf("k%d", 10*capacity-1))
	assert.True(t, ok)
}

func TestDisabled(t *testing.T) {
	c, err := NewLRU[string](0, WithEvictCallback(func() { t.Fatal("disabled cache evicted") }))
	require.NoError(t, err)

	c.Put("a", "1")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
	assert.Empty(t, c.Snapshot())
	c.Delete("a")
	c.Clear()
}

func TestConcurrentAccess(t *testing.T) {
	lru, err := NewLRU[int](64)
	require.NoError(t, err)
	caches := map[string]Cache[int]{
		"unbounded": NewUnbounded[int](),
		"lru":       lru,
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for w := range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range 500 {
						k := fmt.Sprintf("w%d-%d", w, i%100)
						c.Put(k, i)
						c.Get(k)
						if i%7 == 0 {
							c.Delete(k)
						}
						if i%50 == 0 {
							c.Snapshot()
						}
					}
				}()
			}
			wg.Wait()
			assert.LessOrEqual(t, c.Len(), 800)
		})
	}
}
