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

package memds

import (
	"bytes"
	"sync"

	"github.com/cardinalhq/statecache/pkg/datasource"
)

// MemoryDataSource is an in-memory key-value store.
// Values are copied on the way in, so callers may reuse their buffers.
type MemoryDataSource struct {
	sync.Mutex
	name        string
	kvs         map[string][]byte
	closed      bool
	batchWrites int
}

var _ datasource.DataSource = (*MemoryDataSource)(nil)

// New creates a new MemoryDataSource.
func New(name string) *MemoryDataSource {
	return &MemoryDataSource{
		name: name,
		kvs:  make(map[string][]byte),
	}
}

func (m *MemoryDataSource) Name() string {
	return m.name
}

// Init reopens a closed store.  Its contents survive a Close/Init cycle,
// which lets tests stand in for a durable store.
func (m *MemoryDataSource) Init() error {
	m.Lock()
	defer m.Unlock()
	m.closed = false
	return nil
}

func (m *MemoryDataSource) IsAlive() bool {
	m.Lock()
	defer m.Unlock()
	return !m.closed
}

func (m *MemoryDataSource) Close() error {
	m.Lock()
	defer m.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryDataSource) Get(key []byte) ([]byte, bool, error) {
	if err := datasource.ValidateKey(key); err != nil {
		return nil, false, err
	}
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return nil, false, datasource.ErrClosed
	}
	value, ok := m.kvs[string(key)]
	return value, ok, nil
}

func (m *MemoryDataSource) Put(key []byte, value []byte) error {
	if err := datasource.ValidatePut(key, value); err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return datasource.ErrClosed
	}
	m.kvs[string(key)] = bytes.Clone(value)
	return nil
}

func (m *MemoryDataSource) Delete(key []byte) error {
	if err := datasource.ValidateKey(key); err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return datasource.ErrClosed
	}
	delete(m.kvs, string(key))
	return nil
}

func (m *MemoryDataSource) Keys() ([][]byte, error) {
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return nil, datasource.ErrClosed
	}
	keys := make([][]byte, 0, len(m.kvs))
	for k := range m.kvs {
		keys = append(keys, []byte(k))
	}
	return datasource.SortKeys(keys), nil
}

func (m *MemoryDataSource) UpdateBatch(batch datasource.Batch) error {
	if err := datasource.ValidateBatch(batch); err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return datasource.ErrClosed
	}
	for k, v := range batch {
		if v.Deleted {
			delete(m.kvs, k)
			continue
		}
		m.kvs[k] = bytes.Clone(v.Data)
	}
	m.batchWrites++
	return nil
}

// BatchWrites returns how many batches have been applied.
func (m *MemoryDataSource) BatchWrites() int {
	m.Lock()
	defer m.Unlock()
	return m.batchWrites
}

// Len returns the number of stored keys.
func (m *MemoryDataSource) Len() int {
	m.Lock()
	defer m.Unlock()
	return len(m.kvs)
}

// Wipe removes all keys.  Used mostly for testing.
func (m *MemoryDataSource) Wipe() error {
	m.Lock()
	defer m.Unlock()
	m.kvs = make(map[string][]byte)
	return nil
}
