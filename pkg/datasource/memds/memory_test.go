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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/statecache/pkg/datasource"
)

func TestMemoryDataSource_GetPut(t *testing.T) {
	m := New("test")
	assert.Equal(t, "test", m.Name())
	assert.True(t, m.IsAlive())

	v, found, err := m.Get([]byte("key"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)

	value := []byte("value")
	require.NoError(t, m.Put([]byte("key"), value))
	value[0] = 'X'

	v, found, err = m.Get([]byte("key"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("value"), v)
}

func TestMemoryDataSource_EmptyValueIsPresent(t *testing.T) {
	m := New("test")
	require.NoError(t, m.Put([]byte("key"), []byte{}))

	v, found, err := m.Get([]byte("key"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, v, 0)
}

func TestMemoryDataSource_Delete(t *testing.T) {
	m := New("test")
	require.NoError(t, m.Put([]byte("key"), []byte("value")))
	require.NoError(t, m.Delete([]byte("key")))
	require.NoError(t, m.Delete([]byte("missing")))

	_, found, err := m.Get([]byte("key"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryDataSource_InvalidArguments(t *testing.T) {
	m := New("test")
	assert.ErrorIs(t, m.Put(nil, []byte("v")), datasource.ErrInvalidArgument)
	assert.ErrorIs(t, m.Put([]byte("k"), nil), datasource.ErrInvalidArgument)
	assert.ErrorIs(t, m.Delete(nil), datasource.ErrInvalidArgument)
	assert.ErrorIs(t, m.UpdateBatch(datasource.Batch{"": datasource.Tombstone}), datasource.ErrInvalidArgument)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryDataSource_UpdateBatch(t *testing.T) {
	m := New("test")
	require.NoError(t, m.Put([]byte("a"), []byte("1")))

	batch := datasource.Batch{}
	batch.Delete([]byte("a"))
	batch.Put([]byte("b"), []byte("2"))
	batch.Put([]byte("c"), []byte("3"))
	require.NoError(t, m.UpdateBatch(batch))
	assert.Equal(t, 1, m.BatchWrites())

	keys, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("b"), []byte("c")}, keys)
}

func TestMemoryDataSource_Closed(t *testing.T) {
	m := New("test")
	require.NoError(t, m.Put([]byte("a"), []byte("1")))
	require.NoError(t, m.Close())
	assert.False(t, m.IsAlive())

	_, _, err := m.Get([]byte("a"))
	assert.ErrorIs(t, err, datasource.ErrClosed)
	assert.ErrorIs(t, m.Put([]byte("a"), []byte("2")), datasource.ErrClosed)
	assert.ErrorIs(t, m.UpdateBatch(datasource.Batch{}), datasource.ErrClosed)
	_, err = m.Keys()
	assert.ErrorIs(t, err, datasource.ErrClosed)

	require.NoError(t, m.Init())
	v, found, err := m.Get([]byte("a"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("1"), v)
}

func TestMemoryDataSource_Wipe(t *testing.T) {
	m := New("test")
	require.NoError(t, m.Put([]byte("a"), []byte("1")))
	require.NoError(t, m.Wipe())
	assert.Equal(t, 0, m.Len())
}
