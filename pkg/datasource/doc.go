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

// Package datasource defines the key-value contract shared by the durable
// stores (memds, badgerds, pebbleds) and the write-back cache layered on top
// of them (cachingds).
//
// Because the cache implements the same DataSource interface as the stores
// it wraps, the trie/repository layer can use either one without knowing
// which it holds.
//
// Deletions travel through a Batch as the Tombstone value.  Tombstone is the
// single absence marker in this module; a zero-length payload is a live value.
package datasource
