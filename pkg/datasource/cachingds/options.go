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
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

type Options struct {
	logger        *zap.Logger
	meterProvider metric.MeterProvider
}

type Option interface {
	apply(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) apply(o *Options) {
	f(o)
}

func newOptions(opts []Option) *Options {
	o := &Options{
		logger:        zap.NewNop(),
		meterProvider: noop.NewMeterProvider(),
	}
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}

// WithLogger sets the logger.  A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(o *Options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	})
}

// WithMeterProvider sets where cache metrics are reported.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return optionFunc(func(o *Options) {
		if mp == nil {
			mp = noop.NewMeterProvider()
		}
		o.meterProvider = mp
	})
}
