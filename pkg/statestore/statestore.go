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

// Package statestore opens a configured backing store, wrapped in the
// write-back cache.
package statestore

import (
	"fmt"
	"path/filepath"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cardinalhq/statecache/pkg/datasource"
	"github.com/cardinalhq/statecache/pkg/datasource/badgerds"
	"github.com/cardinalhq/statecache/pkg/datasource/cachingds"
	"github.com/cardinalhq/statecache/pkg/datasource/memds"
	"github.com/cardinalhq/statecache/pkg/datasource/pebbleds"
)

// Open builds the backing store named by cfg under Directory/Name and
// initializes it.  A non-zero CacheSize wraps the store in a
// cachingds.CachingDataSource; the caller must Close the result to flush.
// opts only apply to the pebble backend.
func Open(cfg *Config, logger *zap.Logger, mp metric.MeterProvider, opts ...pebbleds.Option) (datasource.DataSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := openBackend(cfg, logger, opts)
	if err != nil {
		return nil, err
	}

	ds := base
	if cfg.CacheSize != 0 {
		ds, err = cachingds.New(base, cfg.CacheSize,
			cachingds.WithLogger(logger),
			cachingds.WithMeterProvider(mp))
		if err != nil {
			return nil, multierr.Append(err, base.Close())
		}
	}

	if err := ds.Init(); err != nil {
		return nil, multierr.Append(err, base.Close())
	}
	logger.Info("Opened state store",
		zap.String("backend", cfg.Backend),
		zap.String("datasource", ds.Name()),
		zap.Int("cacheSize", cfg.CacheSize))
	return ds, nil
}

func openBackend(cfg *Config, logger *zap.Logger, pebbleOpts []pebbleds.Option) (datasource.DataSource, error) {
	dir := filepath.Join(cfg.Directory, cfg.Name)
	switch cfg.Backend {
	case BackendMemory:
		return memds.New(cfg.Name), nil
	case BackendBadger:
		ds, err := badgerds.Open(cfg.Name, dir,
			badgerds.WithInMemory(cfg.Badger.InMemory),
			badgerds.WithSyncWrites(cfg.Badger.SyncWrites),
			badgerds.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return ds, nil
	case BackendPebble:
		opts := append([]pebbleds.Option{pebbleds.WithDisableWAL(cfg.Pebble.DisableWAL)}, pebbleOpts...)
		ds, err := pebbleds.Open(cfg.Name, dir, opts...)
		if err != nil {
			return nil, err
		}
		return ds, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
