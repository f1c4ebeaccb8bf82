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

package datasource

// DataSource is a key-value store that uses []byte as keys and values.
// Keys and values are opaque and compared by exact byte equality.
// Implementations must be concurrent-safe.
type DataSource interface {
	// Name returns a human readable name for the store.
	Name() string

	// Init prepares the store for use.  Calling Init on an already
	// initialized store does nothing.
	Init() error

	// IsAlive reports whether the store is open and usable.
	IsAlive() bool

	// Close releases the store.  Closing a closed store does nothing.
	Close() error

	// Get retrieves the value for the given key.
	// If the key does not exist, found is false and err is nil.
	// The returned slice must be treated as read-only.
	Get(key []byte) (value []byte, found bool, err error)

	// Put sets the value for the given key, overwriting any prior value.
	Put(key []byte, value []byte) error

	// Delete deletes the value for the given key.
	// If the key does not exist, it does nothing.
	Delete(key []byte) error

	// Keys returns every live key, sorted by bytes.Compare.
	Keys() ([][]byte, error)

	// UpdateBatch applies every entry of the batch as one write.
	// Tombstone entries delete their key.
	UpdateBatch(batch Batch) error
}
