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

package dlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
		enabled zapcore.Level
	}{
		{LogLevelDebug, false, zapcore.DebugLevel},
		{LogLevelInfo, false, zapcore.InfoLevel},
		{LogLevelWarn, false, zapcore.WarnLevel},
		{LogLevelError, false, zapcore.ErrorLevel},
		{"bogus", true, zapcore.InvalidLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := GetLogger(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestGetLoggerNone(t *testing.T) {
	logger, err := GetLogger(LogLevelNone)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.FatalLevel))

	_, err = ParseLevel(LogLevelNone)
	assert.NoError(t, err)
}
