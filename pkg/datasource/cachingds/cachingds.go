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

package cachingds

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cardinalhq/statecache/internal/boundedcache"
	"github.com/cardinalhq/statecache/pkg/datasource"
)

const nameSuffix = "-with-uncommitted-cache"

type CachingDataSource struct {
	mu sync.RWMutex

	base        datasource.DataSource
	committed   boundedcache.Cache[datasource.Value]
	uncommitted boundedcache.Cache[datasource.Value]

	// generation is bumped by every successful flush.
	generation uint64
	closed     bool

	name      string
	logger    *zap.Logger
	telemetry *cacheTelemetry
}

var _ datasource.DataSource = (*CachingDataSource)(nil)

// New wraps base with a committed cache holding at most cacheSize entries.
// A cacheSize of 0 disables the committed cache; pending writes are still
// cached until Flush.
func New(base datasource.DataSource, cacheSize int, opts ...Option) (*CachingDataSource, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: backing store is required", datasource.ErrInvalidArgument)
	}
	o := newOptions(opts)

	name := base.Name() + nameSuffix
	telemetry, err := newCacheTelemetry(o.meterProvider, name)
	if err != nil {
		return nil, err
	}

	committed, err := boundedcache.NewLRU[datasource.Value](cacheSize,
		boundedcache.WithEvictCallback(func() { telemetry.record(triggerEviction) }))
	if err != nil {
		return nil, err
	}

	return &CachingDataSource{
		base:        base,
		committed:   committed,
		uncommitted: boundedcache.NewUnbounded[datasource.Value](),
		name:        name,
		logger:      o.logger.Named("cachingds").With(zap.String("datasource", name)),
		telemetry:   telemetry,
	}, nil
}

func (c *CachingDataSource) Name() string {
	return c.name
}

// Init initializes the backing store and reopens a closed cache.
func (c *CachingDataSource) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.base.Init(); err != nil {
		return fmt.Errorf("%s: init: %w", c.name, err)
	}
	if c.closed {
		c.logger.Info("Reopened")
	}
	c.closed = false
	return nil
}

func (c *CachingDataSource) IsAlive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.base.IsAlive()
}

// Close flushes pending writes, then closes the backing store and clears
// both caches.  If the flush fails nothing is closed or cleared and the
// flush error is returned, so Close can be called again.
func (c *CachingDataSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	if err := c.flushLocked(); err != nil {
		return err
	}

	err := c.base.Close()
	c.committed.Clear()
	c.uncommitted.Clear()
	c.closed = true
	if err != nil {
		c.logger.Error("Backing store close failed", zap.Error(err))
		return fmt.Errorf("%s: close: %w", c.name, err)
	}
	c.logger.Info("Closed")
	return nil
}

// Get looks in the committed cache, then the uncommitted cache, then the
// backing store.  A store read is cached in the committed cache, absence
// included.  The returned slice is a copy the caller owns.
func (c *CachingDataSource) Get(key []byte) ([]byte, bool, error) {
	if err := datasource.ValidateKey(key); err != nil {
		return nil, false, err
	}
	k := string(key)

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, false, datasource.ErrClosed
	}
	if v, ok := c.committed.Get(k); ok {
		c.mu.RUnlock()
		c.telemetry.record(triggerCommittedHit)
		return bytes.Clone(v.Data), !v.Deleted, nil
	}
	if v, ok := c.uncommitted.Get(k); ok {
		c.mu.RUnlock()
		c.telemetry.record(triggerUncommittedHit)
		return bytes.Clone(v.Data), !v.Deleted, nil
	}
	generation := c.generation
	c.mu.RUnlock()

	c.telemetry.record(triggerMiss)
	data, found, err := c.base.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("%s: get: %w", c.name, err)
	}
	value := datasource.Tombstone
	if found {
		value = datasource.NewValue(bytes.Clone(data))
	}

	c.mu.Lock()
	c.installLocked(k, value, generation)
	c.mu.Unlock()

	return bytes.Clone(value.Data), found, nil
}

// installLocked caches a value read from the backing store unless the key
// was written, or a flush ran, after the read started.
func (c *CachingDataSource) installLocked(k string, value datasource.Value, generation uint64) {
	if c.closed || c.generation != generation {
		return
	}
	if _, pending := c.uncommitted.Get(k); pending {
		return
	}
	if _, cached := c.committed.Get(k); cached {
		return
	}
	c.committed.Put(k, value)
}

// Put records a pending write.  Writing the value the committed cache
// already holds does nothing.
func (c *CachingDataSource) Put(key []byte, value []byte) error {
	if err := datasource.ValidatePut(key, value); err != nil {
		return err
	}
	k := string(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return datasource.ErrClosed
	}

	if v, ok := c.committed.Get(k); ok && v.Equal(datasource.NewValue(value)) {
		return nil
	}
	c.committed.Delete(k)
	c.uncommitted.Put(k, datasource.NewValue(bytes.Clone(value)))
	return nil
}

// Delete records a pending delete.  The tombstone is kept even if the key
// was never seen, since the backing store may still hold it.
func (c *CachingDataSource) Delete(key []byte) error {
	if err := datasource.ValidateKey(key); err != nil {
		return err
	}
	k := string(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return datasource.ErrClosed
	}

	c.committed.Delete(k)
	c.uncommitted.Put(k, datasource.Tombstone)
	return nil
}

// Keys merges the backing store's keys with both caches, later layers
// overriding earlier ones.  Tombstones and cached absence remove a key;
// any other value, including an empty one, adds it.
func (c *CachingDataSource) Keys() ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, datasource.ErrClosed
	}

	baseKeys, err := c.base.Keys()
	if err != nil {
		return nil, fmt.Errorf("%s: keys: %w", c.name, err)
	}

	live := make(map[string]struct{}, len(baseKeys))
	for _, k := range baseKeys {
		live[string(k)] = struct{}{}
	}
	for _, layer := range []map[string]datasource.Value{c.committed.Snapshot(), c.uncommitted.Snapshot()} {
		for k, v := range layer {
			if v.Deleted {
				delete(live, k)
				continue
			}
			live[k] = struct{}{}
		}
	}

	keys := make([][]byte, 0, len(live))
	for k := range live {
		keys = append(keys, []byte(k))
	}
	return datasource.SortKeys(keys), nil
}

// UpdateBatch records every entry of the batch as pending, overwriting
// earlier pending entries for the same keys.  Nothing is written to the
// backing store until Flush.
func (c *CachingDataSource) UpdateBatch(batch datasource.Batch) error {
	if err := datasource.ValidateBatch(batch); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return datasource.ErrClosed
	}

	for k, v := range batch {
		c.committed.Delete(k)
		c.uncommitted.Put(k, v.Clone())
	}
	return nil
}

// Flush writes every pending entry to the backing store as one batch and
// moves the written values into the committed cache.
func (c *CachingDataSource) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return datasource.ErrClosed
	}
	return c.flushLocked()
}

func (c *CachingDataSource) flushLocked() error {
	pending := datasource.Batch(c.uncommitted.Snapshot())
	if len(pending) == 0 {
		return nil
	}

	start := time.Now()
	if err := c.base.UpdateBatch(pending); err != nil {
		c.telemetry.record(triggerFlushError)
		c.logger.Error("Flush failed, pending writes kept",
			zap.Int("entries", len(pending)),
			zap.Error(err))
		return fmt.Errorf("%s: flush %d entries: %w", c.name, len(pending), err)
	}
	elapsed := time.Since(start)

	for k, v := range pending {
		if v.Deleted {
			c.committed.Delete(k)
			continue
		}
		c.committed.Put(k, v)
	}
	c.uncommitted.Clear()
	c.generation++

	c.telemetry.recordFlush(len(pending), elapsed)
	c.logger.Debug("Flushed",
		zap.Int("entries", len(pending)),
		zap.Int("tombstones", pending.Tombstones()),
		zap.Duration("elapsed", elapsed))
	return nil
}

// PendingLen returns the number of entries waiting for the next Flush.
func (c *CachingDataSource) PendingLen() int {
	return c.uncommitted.Len()
}

// CommittedLen returns the number of entries in the committed cache.
func (c *CachingDataSource) CommittedLen() int {
	return c.committed.Len()
}
