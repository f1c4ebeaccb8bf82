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
	"strings"

	"go.uber.org/zap"
)

type options struct {
	inMemory   bool
	syncWrites bool
	logger     *zap.Logger
}

type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}

// WithInMemory keeps all data in memory; nothing is written to dir.
func WithInMemory(inMemory bool) Option {
	return optionFunc(func(o *options) {
		o.inMemory = inMemory
	})
}

// WithSyncWrites makes every commit fsync before returning.
func WithSyncWrites(syncWrites bool) Option {
	return optionFunc(func(o *options) {
		o.syncWrites = syncWrites
	})
}

func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// badgerLogger routes badger's internal logging to zap.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func newBadgerLogger(logger *zap.Logger) *badgerLogger {
	return &badgerLogger{sugar: logger.Named("badger").Sugar()}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.sugar.Warnf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(strings.TrimSpace(format), args...)
}
