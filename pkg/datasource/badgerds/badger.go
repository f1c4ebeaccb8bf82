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

package badgerds

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/cardinalhq/statecache/pkg/datasource"
)

const (
	conflictRetryInterval = 10 * time.Millisecond
	conflictMaxRetries    = 10
)

type BadgerDataSource struct {
	name   string
	db     *badger.DB
	logger *zap.Logger

	// commit is swapped in tests to simulate conflicts.
	commit func(txn *badger.Txn) error
}

var _ datasource.DataSource = (*BadgerDataSource)(nil)

// New wraps an already opened badger database.
func New(name string, db *badger.DB, logger *zap.Logger) *BadgerDataSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BadgerDataSource{
		name:   name,
		db:     db,
		logger: logger.Named("badgerds"),
		commit: (*badger.Txn).Commit,
	}
}

// Open opens (creating if needed) a badger database in dir.
func Open(name string, dir string, opts ...Option) (*BadgerDataSource, error) {
	o := newOptions(opts)

	bopts := badger.DefaultOptions(dir).
		WithInMemory(o.inMemory).
		WithSyncWrites(o.syncWrites).
		WithLogger(newBadgerLogger(o.logger))
	if o.inMemory {
		bopts = bopts.WithDir("").WithValueDir("")
	} else if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("badgerds %s: mkdir: %w", name, err)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("badgerds %s: open: %w", name, err)
	}
	return New(name, db, o.logger), nil
}

func (b *BadgerDataSource) Name() string {
	return b.name
}

func (b *BadgerDataSource) Init() error {
	if b.db.IsClosed() {
		return fmt.Errorf("badgerds %s: %w", b.name, datasource.ErrClosed)
	}
	return nil
}

func (b *BadgerDataSource) IsAlive() bool {
	return !b.db.IsClosed()
}

func (b *BadgerDataSource) Close() error {
	if b.db.IsClosed() {
		return nil
	}
	return b.db.Close()
}

func (b *BadgerDataSource) Get(key []byte) ([]byte, bool, error) {
	if err := datasource.ValidateKey(key); err != nil {
		return nil, false, err
	}
	if b.db.IsClosed() {
		return nil, false, datasource.ErrClosed
	}
	var value []byte
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("badgerds %s: get: %w", b.name, err)
	}
	if found && value == nil {
		value = []byte{}
	}
	return value, found, nil
}

func (b *BadgerDataSource) Put(key []byte, value []byte) error {
	if err := datasource.ValidatePut(key, value); err != nil {
		return err
	}
	batch := datasource.Batch{}
	batch.Put(key, value)
	return b.UpdateBatch(batch)
}

func (b *BadgerDataSource) Delete(key []byte) error {
	if err := datasource.ValidateKey(key); err != nil {
		return err
	}
	batch := datasource.Batch{}
	batch.Delete(key)
	return b.UpdateBatch(batch)
}

func (b *BadgerDataSource) Keys() ([][]byte, error) {
	if b.db.IsClosed() {
		return nil, datasource.ErrClosed
	}
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badgerds %s: keys: %w", b.name, err)
	}
	// badger iterates in key order already.
	return keys, nil
}

// UpdateBatch writes the batch in a single transaction when it fits.
// A batch too large for one transaction is split across several; if a
// later one fails, the earlier ones stay applied.
func (b *BadgerDataSource) UpdateBatch(batch datasource.Batch) error {
	if err := datasource.ValidateBatch(batch); err != nil {
		return err
	}
	if b.db.IsClosed() {
		return datasource.ErrClosed
	}

	keys := make([]string, 0, len(batch))
	for k := range batch {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for len(keys) > 0 {
		applied, err := b.applyTxn(batch, keys)
		if err != nil {
			return fmt.Errorf("badgerds %s: update batch: %w", b.name, err)
		}
		if applied < len(keys) {
			b.logger.Debug("Batch split across transactions",
				zap.Int("applied", applied),
				zap.Int("remaining", len(keys)-applied))
		}
		keys = keys[applied:]
	}
	return nil
}

// applyTxn writes as many of keys as fit in one transaction and returns
// how many were committed.  Conflicting commits are retried.
func (b *BadgerDataSource) applyTxn(batch datasource.Batch, keys []string) (int, error) {
	var applied int
	err := backoff.Retry(func() error {
		applied = 0
		txn := b.db.NewTransaction(true)
		defer txn.Discard()

		for _, k := range keys {
			v := batch[k]
			var err error
			if v.Deleted {
				err = txn.Delete([]byte(k))
			} else {
				err = txn.Set([]byte(k), v.Data)
			}
			if errors.Is(err, badger.ErrTxnTooBig) && applied > 0 {
				break
			}
			if err != nil {
				return backoff.Permanent(err)
			}
			applied++
		}

		err := b.commit(txn)
		if err != nil {
			if errors.Is(err, badger.ErrConflict) {
				return err // retry
			}
			return backoff.Permanent(err)
		}
		return nil
	},
		backoff.WithMaxRetries(backoff.NewConstantBackOff(conflictRetryInterval), conflictMaxRetries),
	)
	return applied, err
}

// Maintain runs value log garbage collection.
func (b *BadgerDataSource) Maintain() error {
	if b.db.Opts().InMemory {
		return nil
	}
	err := b.db.RunValueLogGC(0.5)
	if err != nil && errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Wipe removes all keys.  Used mostly for testing.
func (b *BadgerDataSource) Wipe() error {
	return b.db.DropAll()
}
