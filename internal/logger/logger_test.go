// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), tt.verbosity)
	}
}

func TestInitializeWriter(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		json      bool
		wantInfo  bool
	}{
		{"quiet console", VerbosityUser, false, false},
		{"verbose console", VerbosityInfo, false, true},
		{"verbose json", VerbosityDebug, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, InitializeWriter(&buf, tt.verbosity, tt.json))
			t.Cleanup(func() { require.NoError(t, InitializeWriter(&bytes.Buffer{}, VerbosityUser, false)) })
			assert.Equal(t, tt.json, JSONOutput)

			Logger.Infow("generated", FieldCount, 3)
			_ = Logger.Sync()
			if !tt.wantInfo {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), "generated")
			if tt.json {
				assert.Contains(t, buf.String(), `"count":3`)
			}
		})
	}
}
