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
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/cardinalhq/statecache/pkg/datasource"
)

const benchKeySize = 32

type flusher interface {
	Flush() error
}

func newBenchCommand(p *params) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Write random account-sized keys and time the flush",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.bench.count <= 0 || p.bench.valueSize < 0 {
				return errors.New("count must be > 0 and value-size >= 0")
			}

			reader := sdkmetric.NewManualReader()
			mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
			defer func() { _ = mp.Shutdown(context.Background()) }()

			out := cmd.OutOrStdout()
			err := p.withStore(cmd, mp, func(ds datasource.DataSource) error {
				return runBench(out, ds, p.bench.count, p.bench.valueSize)
			})
			if err != nil {
				return err
			}
			return printMetrics(out, reader)
		},
	}
	addBenchFlags(cmd, p)
	return cmd
}

func runBench(out io.Writer, ds datasource.DataSource, count int, valueSize int) error {
	value := make([]byte, valueSize)
	if _, err := rand.Read(value); err != nil {
		return err
	}

	start := time.Now()
	key := make([]byte, benchKeySize)
	for range count {
		if _, err := rand.Read(key); err != nil {
			return err
		}
		if err := ds.Put(key, value); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	fmt.Fprintf(out, "put %d keys in %s (%.0f keys/s)\n",
		count, elapsed, float64(count)/elapsed.Seconds())

	if f, ok := ds.(flusher); ok {
		start = time.Now()
		if err := f.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "flushed in %s\n", time.Since(start))
	}
	return nil
}

func printMetrics(out io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		return err
	}

	lines := []string{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			total := int64(0)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			lines = append(lines, fmt.Sprintf("%s %d", m.Name, total))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return nil
}
