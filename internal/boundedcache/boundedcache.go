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

// Package boundedcache provides in-memory key-value maps with an optional
// entry limit.
//
// Three variants share the Cache interface and are chosen when the cache is
// created:
//
//   - NewUnbounded never evicts.  Use it for data that exists nowhere else.
//   - NewLRU holds at most capacity entries and evicts the least recently
//     used one when a Put goes over.  Get counts as a use.
//   - NewLRU with a capacity of 0 returns a disabled cache that accepts and
//     drops every write.
//
// Only data that can be re-read from somewhere else should live in a cache
// that evicts.
package boundedcache

// Cache maps string keys to values.  All variants are concurrent-safe.
type Cache[V any] interface {
	// Get returns the value for key, and whether it was present.
	Get(key string) (V, bool)

	// Put inserts or overwrites the value for key.  A capacity-bound cache
	// that goes over its limit evicts one least recently used entry.
	Put(key string, value V)

	// Delete forgets key entirely.
	Delete(key string)

	// Keys returns the keys currently held, in no particular order.
	Keys() []string

	// Snapshot returns a copy of every key-value pair currently held.
	Snapshot() map[string]V

	// Clear removes all entries.
	Clear()

	// Len returns the number of entries held.
	Len() int
}
