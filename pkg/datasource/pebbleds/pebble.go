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

package pebbleds

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/cardinalhq/statecache/pkg/datasource"
)

// PebbleDataSource provides a key-value store based on cockroachdb/pebble.
type PebbleDataSource struct {
	sync.RWMutex
	name   string
	db     *pebble.DB
	closed bool
}

var _ datasource.DataSource = (*PebbleDataSource)(nil)

type options struct {
	fs         vfs.FS
	disableWAL bool
}

type Option func(*options)

// WithFS opens the database on fs instead of the OS filesystem.
// vfs.NewMem() gives a throwaway in-memory database.
func WithFS(fs vfs.FS) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithDisableWAL turns off pebble's write-ahead log.  Writes that have not
// reached an sstable are lost on a crash.
func WithDisableWAL(disable bool) Option {
	return func(o *options) {
		o.disableWAL = disable
	}
}

// Open opens (creating if needed) a pebble database in dir.
func Open(name string, dir string, opts ...Option) (*PebbleDataSource, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	popts := &pebble.Options{
		FS:         o.fs,
		DisableWAL: o.disableWAL,
	}
	popts.EnsureDefaults()

	if o.fs == nil {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("pebbleds %s: mkdir: %w", name, err)
		}
	}

	db, err := pebble.Open(dir, popts)
	if err != nil {
		return nil, fmt.Errorf("pebbleds %s: open: %w", name, err)
	}
	return &PebbleDataSource{
		name: name,
		db:   db,
	}, nil
}

func (p *PebbleDataSource) Name() string {
	return p.name
}

func (p *PebbleDataSource) Init() error {
	p.RLock()
	defer p.RUnlock()
	if p.closed {
		return fmt.Errorf("pebbleds %s: %w", p.name, datasource.ErrClosed)
	}
	return nil
}

func (p *PebbleDataSource) IsAlive() bool {
	p.RLock()
	defer p.RUnlock()
	return !p.closed
}

func (p *PebbleDataSource) Close() error {
	p.Lock()
	defer p.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}

func (p *PebbleDataSource) Get(key []byte) ([]byte, bool, error) {
	if err := datasource.ValidateKey(key); err != nil {
		return nil, false, err
	}
	p.RLock()
	defer p.RUnlock()
	if p.closed {
		return nil, false, datasource.ErrClosed
	}

	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("pebbleds %s: get: %w", p.name, err)
	}
	defer func() {
		_ = closer.Close()
	}()

	dest := make([]byte, len(val))
	copy(dest, val)

	return dest, true, nil
}

func (p *PebbleDataSource) Put(key []byte, value []byte) error {
	if err := datasource.ValidatePut(key, value); err != nil {
		return err
	}
	p.RLock()
	defer p.RUnlock()
	if p.closed {
		return datasource.ErrClosed
	}
	if err := p.db.Set(key, value, pebble.Sync); err != nil {
		return fmt.Errorf("pebbleds %s: put: %w", p.name, err)
	}
	return nil
}

func (p *PebbleDataSource) Delete(key []byte) error {
	if err := datasource.ValidateKey(key); err != nil {
		return err
	}
	p.RLock()
	defer p.RUnlock()
	if p.closed {
		return datasource.ErrClosed
	}
	if err := p.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("pebbleds %s: delete: %w", p.name, err)
	}
	return nil
}

func (p *PebbleDataSource) Keys() ([][]byte, error) {
	p.RLock()
	defer p.RUnlock()
	if p.closed {
		return nil, datasource.ErrClosed
	}

	iterator := p.db.NewIter(nil)
	defer func() {
		_ = iterator.Close()
	}()

	var keys [][]byte
	for valid := iterator.First(); valid; valid = iterator.Next() {
		k := iterator.Key()
		key := make([]byte, len(k))
		copy(key, k)
		keys = append(keys, key)
	}
	if err := iterator.Error(); err != nil {
		return nil, fmt.Errorf("pebbleds %s: keys: %w", p.name, err)
	}
	return keys, nil
}

// UpdateBatch commits the whole batch atomically.
func (p *PebbleDataSource) UpdateBatch(batch datasource.Batch) error {
	if err := datasource.ValidateBatch(batch); err != nil {
		return err
	}
	p.RLock()
	defer p.RUnlock()
	if p.closed {
		return datasource.ErrClosed
	}

	b := p.db.NewBatch()
	defer func() {
		_ = b.Close()
	}()

	for k, v := range batch {
		var err error
		if v.Deleted {
			err = b.Delete([]byte(k), nil)
		} else {
			err = b.Set([]byte(k), v.Data, nil)
		}
		if err != nil {
			return fmt.Errorf("pebbleds %s: update batch: %w", p.name, err)
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("pebbleds %s: update batch: %w", p.name, err)
	}
	return nil
}
