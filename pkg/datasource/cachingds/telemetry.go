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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/cardinalhq/statecache/pkg/datasource/cachingds"

type trigger int

const (
	triggerCommittedHit trigger = iota
	triggerUncommittedHit
	triggerMiss
	triggerEviction
	triggerFlushError
)

type cacheTelemetry struct {
	ctx  context.Context
	attr metric.MeasurementOption

	committedHits   metric.Int64Counter
	uncommittedHits metric.Int64Counter
	misses          metric.Int64Counter
	evictions       metric.Int64Counter
	flushes         metric.Int64Counter
	flushEntries    metric.Int64Counter
	flushErrors     metric.Int64Counter
	flushDuration   metric.Float64Histogram
}

func newCacheTelemetry(mp metric.MeterProvider, name string) (*cacheTelemetry, error) {
	meter := mp.Meter(meterName)

	ct := &cacheTelemetry{
		ctx:  context.Background(),
		attr: metric.WithAttributes(attribute.String("datasource", name)),
	}

	counters := []struct {
		dest        *metric.Int64Counter
		name        string
		description string
	}{
		{&ct.committedHits, "statecache.committed.hits", "Reads answered by the committed cache"},
		{&ct.uncommittedHits, "statecache.uncommitted.hits", "Reads answered by the uncommitted cache"},
		{&ct.misses, "statecache.misses", "Reads that went to the backing store"},
		{&ct.evictions, "statecache.evictions", "Committed cache entries evicted for capacity"},
		{&ct.flushes, "statecache.flushes", "Successful flushes to the backing store"},
		{&ct.flushEntries, "statecache.flush.entries", "Entries written to the backing store by flushes"},
		{&ct.flushErrors, "statecache.flush.errors", "Flushes rejected by the backing store"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(
			c.name,
			metric.WithDescription(c.description),
			metric.WithUnit("1"),
		)
		if err != nil {
			return nil, err
		}
		*c.dest = counter
	}

	histogram, err := meter.Float64Histogram(
		"statecache.flush.duration",
		metric.WithDescription("Time spent writing a flush batch to the backing store"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	ct.flushDuration = histogram

	return ct, nil
}

func (ct *cacheTelemetry) record(trigger trigger) {
	var counter metric.Int64Counter
	switch trigger {
	case triggerCommittedHit:
		counter = ct.committedHits
	case triggerUncommittedHit:
		counter = ct.uncommittedHits
	case triggerMiss:
		counter = ct.misses
	case triggerEviction:
		counter = ct.evictions
	case triggerFlushError:
		counter = ct.flushErrors
	default:
		return
	}
	counter.Add(ct.ctx, 1, ct.attr)
}

func (ct *cacheTelemetry) recordFlush(entries int, elapsed time.Duration) {
	ct.flushes.Add(ct.ctx, 1, ct.attr)
	ct.flushEntries.Add(ct.ctx, int64(entries), ct.attr)
	ct.flushDuration.Record(ct.ctx, float64(elapsed)/float64(time.Millisecond), ct.attr)
}
