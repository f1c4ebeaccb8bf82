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
	"bytes"
	"fmt"
	"slices"
)

// Value is either a payload or the absence marker.  A tombstone is
// distinct from an empty payload: Value{Data: []byte{}} is a live, empty
// value, while Tombstone means "no value".
type Value struct {
	Data    []byte
	Deleted bool
}

// Tombstone is the one absence marker used throughout the module.
var Tombstone = Value{Deleted: true}

// NewValue wraps data as a live value.  A nil data is stored as an empty
// payload, never as a tombstone.
func NewValue(data []byte) Value {
	if data == nil {
		data = []byte{}
	}
	return Value{Data: data}
}

// Clone returns a copy that shares no memory with v.
func (v Value) Clone() Value {
	if v.Deleted {
		return Tombstone
	}
	return NewValue(bytes.Clone(v.Data))
}

// Equal reports whether both values are tombstones, or both carry
// byte-identical payloads.
func (v Value) Equal(o Value) bool {
	if v.Deleted || o.Deleted {
		return v.Deleted == o.Deleted
	}
	return bytes.Equal(v.Data, o.Data)
}

// Batch maps string(key) to the value to write.  A Tombstone entry deletes
// the key.
type Batch map[string]Value

// Put adds a live value to the batch.
func (b Batch) Put(key []byte, value []byte) {
	b[string(key)] = NewValue(value)
}

// Delete adds a tombstone to the batch.
func (b Batch) Delete(key []byte) {
	b[string(key)] = Tombstone
}

// Tombstones returns how many entries of the batch are deletions.
func (b Batch) Tombstones() int {
	n := 0
	for _, v := range b {
		if v.Deleted {
			n++
		}
	}
	return n
}

// ValidateKey checks that key is present.
func ValidateKey(key []byte) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: key is required", ErrInvalidArgument)
	}
	return nil
}

// ValidatePut checks the arguments of a Put call.
func ValidatePut(key []byte, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("%w: value is required", ErrInvalidArgument)
	}
	return nil
}

// ValidateBatch checks every entry of a batch without modifying it.
func ValidateBatch(batch Batch) error {
	for k, v := range batch {
		if k == "" {
			return fmt.Errorf("%w: batch contains an empty key", ErrInvalidArgument)
		}
		if !v.Deleted && v.Data == nil {
			return fmt.Errorf("%w: batch value for key %x is required", ErrInvalidArgument, k)
		}
	}
	return nil
}

// SortKeys sorts keys in place by bytes.Compare and returns them.
func SortKeys(keys [][]byte) [][]byte {
	slices.SortFunc(keys, bytes.Compare)
	return keys
}
