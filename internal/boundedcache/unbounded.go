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
	"maps"
	"sync"
)

type unboundedCache[V any] struct {
	sync.Mutex
	items map[string]V
}

var _ Cache[int] = (*unboundedCache[int])(nil)

// NewUnbounded creates a cache that never evicts.
func NewUnbounded[V any]() Cache[V] {
	return &unboundedCache[V]{
		items: make(map[string]V),
	}
}

func (c *unboundedCache[V]) Get(key string) (V, bool) {
	c.Lock()
	defer c.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *unboundedCache[V]) Put(key string, value V) {
	c.Lock()
	defer c.Unlock()
	c.items[key] = value
}

func (c *unboundedCache[V]) Delete(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.items, key)
}

func (c *unboundedCache[V]) Keys() []string {
	c.Lock()
	defer c.Unlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}

func (c *unboundedCache[V]) Snapshot() map[string]V {
	c.Lock()
	defer c.Unlock()
	return maps.Clone(c.items)
}

func (c *unboundedCache[V]) Clear() {
	c.Lock()
	defer c.Unlock()
	c.items = make(map[string]V)
}

func (c *unboundedCache[V]) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.items)
}
