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

// Package dlogger builds zap loggers from a level name.
package dlogger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	// LogLevelNone turns logging off.
	LogLevelNone = "none"
)

// ParseLevel checks a level name.  LogLevelNone is accepted and returned
// as zapcore.InvalidLevel.
func ParseLevel(logLevel string) (zapcore.Level, error) {
	if logLevel == LogLevelNone {
		return zapcore.InvalidLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return zapcore.InvalidLevel, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	return lvl, nil
}

// GetLogger returns a production zap logger writing to stderr at the given
// level.
func GetLogger(logLevel string) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	return zapConfig.Build()
}
