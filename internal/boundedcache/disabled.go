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

// disabledCache holds nothing.
type disabledCache[V any] struct{}

var _ Cache[int] = disabledCache[int]{}

func newDisabled[V any]() Cache[V] {
	return disabledCache[V]{}
}

func (disabledCache[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

func (disabledCache[V]) Put(string, V)          {}
func (disabledCache[V]) Delete(string)          {}
func (disabledCache[V]) Keys() []string         { return nil }
func (disabledCache[V]) Snapshot() map[string]V { return map[string]V{} }
func (disabledCache[V]) Clear()                 {}
func (disabledCache[V]) Len() int               { return 0 }
