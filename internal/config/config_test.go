// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "zodgen.yaml")

	cfg := Config{
		Version:     1,
		Input:       "schemas/graph.yaml",
		InputFormat: InputGraph,
		Output:      "models.ts",
		NamingStyle: "pascal-case-schema",
		EmitInfer:   true,
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestConfig_LoadDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "zodgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\ninput: in.yaml\noutput: out.ts\n"), 0o600))

	loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "default", loaded.NamingStyle)
	assert.False(t, loaded.EmitInfer)
	assert.Equal(t, InputAuto, loaded.InputFormat)
}

func TestConfig_LoadEnvOverrides(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "zodgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\ninput: in.yaml\noutput: out.ts\n"), 0o600))

	t.Setenv("ZODGEN_OUTPUT", "gen/models.ts")
	t.Setenv("ZODGEN_NAMING_STYLE", "camel-case")
	t.Setenv("ZODGEN_EMIT_INFER", "true")

	loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "in.yaml", loaded.Input)
	assert.Equal(t, "gen/models.ts", loaded.Output)
	assert.Equal(t, "camel-case", loaded.NamingStyle)
	assert.True(t, loaded.EmitInfer)
}

func TestConfig_LoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "zodgen.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Version: 1, Input: "in.yaml", Output: "out.ts"}
	with := func(mut func(*Config)) Config {
		c := valid
		mut(&c)
		return c
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg:  valid,
		},
		{
			name: "valid with every option",
			cfg: with(func(c *Config) {
				c.InputFormat = InputJSONSchema
				c.NamingStyle = "camel-case"
				c.EmitInfer = true
			}),
		},
		{
			name:    "unsupported version",
			cfg:     with(func(c *Config) { c.Version = 99 }),
			wantErr: "unsupported config version",
		},
		{
			name:    "missing input",
			cfg:     with(func(c *Config) { c.Input = "" }),
			wantErr: "input is required",
		},
		{
			name:    "missing output",
			cfg:     with(func(c *Config) { c.Output = "" }),
			wantErr: "output is required",
		},
		{
			name:    "unknown input format",
			cfg:     with(func(c *Config) { c.InputFormat = "protobuf" }),
			wantErr: "unknown input format",
		},
		{
			name:    "unknown naming style",
			cfg:     with(func(c *Config) { c.NamingStyle = "kebab" }),
			wantErr: "kebab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
