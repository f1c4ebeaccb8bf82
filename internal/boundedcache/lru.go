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
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

type lruCache[V any] struct {
	sync.Mutex
	lru     *simplelru.LRU[string, V]
	onEvict func()
}

var _ Cache[int] = (*lruCache[int])(nil)

// NewLRU creates a cache holding at most capacity entries.  A capacity of
// 0 returns a disabled cache; a negative capacity is an error.
func NewLRU[V any](capacity int, opts ...Option) (Cache[V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("boundedcache: capacity must be >= 0, got %d", capacity)
	}
	if capacity == 0 {
		return newDisabled[V](), nil
	}

	o := newOptions(opts)
	// Evictions are reported from Put, not from the simplelru callback,
	// which also fires on Remove and Purge.
	l, err := simplelru.NewLRU[string, V](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &lruCache[V]{
		lru:     l,
		onEvict: o.onEvict,
	}, nil
}

func (c *lruCache[V]) Get(key string) (V, bool) {
	c.Lock()
	defer c.Unlock()
	return c.lru.Get(key)
}

func (c *lruCache[V]) Put(key string, value V) {
	c.Lock()
	evicted := c.lru.Add(key, value)
	c.Unlock()

	if evicted && c.onEvict != nil {
		c.onEvict()
	}
}

func (c *lruCache[V]) Delete(key string) {
	c.Lock()
	defer c.Unlock()
	c.lru.Remove(key)
}

func (c *lruCache[V]) Keys() []string {
	c.Lock()
	defer c.Unlock()
	return c.lru.Keys()
}

func (c *lruCache[V]) Snapshot() map[string]V {
	c.Lock()
	defer c.Unlock()
	snapshot := make(map[string]V, c.lru.Len())
	for _, k := range c.lru.Keys() {
		if v, ok := c.lru.Peek(k); ok {
			snapshot[k] = v
		}
	}
	return snapshot
}

func (c *lruCache[V]) Clear() {
	c.Lock()
	defer c.Unlock()
	c.lru.Purge()
}

func (c *lruCache[V]) Len() int {
	c.Lock()
	defer c.Unlock()
	return c.lru.Len()
}
