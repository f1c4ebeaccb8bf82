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

// Package cachingds layers a write-back cache over a datasource.DataSource.
//
// Two caches sit in front of the backing store.  The committed cache is
// bounded and holds values known to match the store, including cached
// absence from read-through misses.  The uncommitted cache is unbounded and
// holds every Put, Delete and UpdateBatch entry until Flush writes them to
// the store as a single batch.  A key is never in both caches at once.
//
// All methods are safe for concurrent use.  Get, Put, Delete and
// UpdateBatch may interleave freely; a Get racing a Put on the same key
// returns either value.  Flush and Close exclude every other operation for
// the duration of the batch write.  A read-through miss reads the store
// without holding the lock and only caches the result if no write to that
// key and no flush happened in the meantime.
//
// Values are copied on the way in and on the way out; callers may reuse or
// modify their buffers.
//
// A failed Flush leaves the uncommitted cache as it was so the same writes
// can be retried.  The backing store may have applied part of the batch;
// retrying converges on the same state.
package cachingds
