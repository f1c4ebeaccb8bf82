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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{"same bytes", NewValue([]byte("a")), NewValue([]byte("a")), true},
		{"different bytes", NewValue([]byte("a")), NewValue([]byte("b")), false},
		{"both tombstones", Tombstone, Tombstone, true},
		{"tombstone vs empty", Tombstone, NewValue([]byte{}), false},
		{"empty vs nil payload", NewValue(nil), NewValue([]byte{}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestNewValue_NilIsEmptyNotTombstone(t *testing.T) {
	v := NewValue(nil)
	assert.False(t, v.Deleted)
	assert.NotNil(t, v.Data)
	assert.Len(t, v.Data, 0)
}

func TestValue_Clone(t *testing.T) {
	data := []byte("abc")
	v := NewValue(data)
	c := v.Clone()
	data[0] = 'x'
	assert.Equal(t, []byte("abc"), c.Data)

	assert.True(t, Tombstone.Clone().Deleted)
}

func TestBatch(t *testing.T) {
	b := Batch{}
	b.Put([]byte("a"), []byte("1"))
	b.Delete([]byte("b"))
	b.Put([]byte("c"), []byte{})

	assert.Len(t, b, 3)
	assert.Equal(t, 1, b.Tombstones())
	assert.True(t, b["b"].Deleted)
	assert.False(t, b["c"].Deleted)
	require.NoError(t, ValidateBatch(b))
}

func TestValidation(t *testing.T) {
	assert.ErrorIs(t, ValidateKey(nil), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateKey([]byte{}), ErrInvalidArgument)
	assert.NoError(t, ValidateKey([]byte("k")))

	assert.ErrorIs(t, ValidatePut([]byte("k"), nil), ErrInvalidArgument)
	assert.ErrorIs(t, ValidatePut(nil, []byte("v")), ErrInvalidArgument)
	assert.NoError(t, ValidatePut([]byte("k"), []byte{}))

	assert.ErrorIs(t, ValidateBatch(Batch{"": NewValue([]byte("v"))}), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateBatch(Batch{"k": {}}), ErrInvalidArgument)
	assert.NoError(t, ValidateBatch(Batch{"k": Tombstone}))
}

func TestSortKeys(t *testing.T) {
	keys := [][]byte{[]byte("b"), []byte("a"), {0x00}, []byte("ab")}
	assert.Equal(t, [][]byte{{0x00}, []byte("a"), []byte("ab"), []byte("b")}, SortKeys(keys))
}
