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

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"

	"github.com/cardinalhq/statecache/internal/dlogger"
	"github.com/cardinalhq/statecache/pkg/datasource"
	"github.com/cardinalhq/statecache/pkg/statestore"
)

var errNotFound = errors.New("key not found")

// NewRootCommand builds the statecache command tree.
func NewRootCommand() *cobra.Command {
	p := &params{}

	root := &cobra.Command{
		Use:   "statecache",
		Short: "Inspect and exercise a cached state store",
		Long: `statecache opens a badger, pebble or in-memory key-value store behind the
write-back state cache and runs a single operation against it.  Writes are
flushed to the store when the command exits.`,
		SilenceUsage: true,
	}
	addRootFlags(root, p)

	root.AddCommand(
		newGetCommand(p),
		newPutCommand(p),
		newDeleteCommand(p),
		newKeysCommand(p),
		newBenchCommand(p),
		newMaintainCommand(p),
	)
	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// withStore opens the configured store, runs fn and closes the store,
// which flushes any pending writes.
func (p *params) withStore(cmd *cobra.Command, mp metric.MeterProvider, fn func(ds datasource.DataSource) error) (err error) {
	cfg, err := p.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger, err := dlogger.GetLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ds, err := statestore.Open(cfg, logger, mp)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(ds))

	return fn(ds)
}
