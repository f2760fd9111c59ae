// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/zodgen/internal/config"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

const graphDoc = `
models:
  - name: Pet
    properties:
      - {name: name, type: string}
`

const jsonSchemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {"name": {"type": "string"}}
}`

func TestLoadDir_GraphDocument(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		ConfigFileName:      "version: 1\ninput: schemas/pets.yaml\noutput: gen/pets.ts\n",
		"schemas/pets.yaml": graphDoc,
	})

	ctx, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)

	sc := From(ctx)
	require.NotNil(t, sc)
	assert.Equal(t, config.InputGraph, sc.Format)
	assert.Equal(t, filepath.Join(dir, "schemas", "pets.yaml"), sc.InputPath)
	assert.Equal(t, filepath.Join(dir, "gen", "pets.ts"), sc.OutputPath())
	_, ok := sc.Graph.Lookup("Pet")
	assert.True(t, ok)
}

func TestLoadDir_JSONSchema(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		ConfigFileName:   "version: 1\ninput: pet-store.json\noutput: out.ts\n",
		"pet-store.json": jsonSchemaDoc,
	})

	ctx, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)

	sc := From(ctx)
	assert.Equal(t, config.InputJSONSchema, sc.Format)
	_, ok := sc.Graph.Lookup("PetStore")
	assert.True(t, ok)
}

func TestLoadDir_ExplicitFormat(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		ConfigFileName: "version: 1\ninput: in.yaml\ninputFormat: jsonschema\noutput: out.ts\n",
		"in.yaml":      "properties:\n  a: {type: string}\n",
	})
	ctx, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, config.InputJSONSchema, From(ctx).Format)
}

func TestLoadDir_Errors(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		target error
	}{
		{
			name:   "no config",
			files:  map[string]string{},
			target: ErrNotInitialized,
		},
		{
			name:   "bad version",
			files:  map[string]string{ConfigFileName: "version: 7\ninput: a.yaml\noutput: a.ts\n"},
			target: ErrInvalidConfig,
		},
		{
			name:   "unparseable config",
			files:  map[string]string{ConfigFileName: "version: [\n"},
			target: ErrInvalidConfig,
		},
		{
			name:   "missing input",
			files:  map[string]string{ConfigFileName: "version: 1\ninput: gone.yaml\noutput: a.ts\n"},
			target: ErrInputNotFound,
		},
		{
			name: "broken input",
			files: map[string]string{
				ConfigFileName: "version: 1\ninput: in.yaml\noutput: a.ts\n",
				"in.yaml":      "models:\n  - name: A\n    properties:\n      - {name: b, type: Missing}\n",
			},
			target: ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)
			_, err := LoadDir(context.Background(), dir)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), err.Error())
		})
	}
}

func TestReload(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		ConfigFileName: "version: 1\ninput: in.yaml\noutput: out.ts\n",
		"in.yaml":      graphDoc,
	})
	ctx, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	sc := From(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.yaml"), []byte("enums:\n  - name: Kind\n    members: [{name: a}]\n"), 0o600))
	require.NoError(t, sc.Reload())
	_, ok := sc.Graph.Lookup("Kind")
	assert.True(t, ok)
	_, ok = sc.Graph.Lookup("Pet")
	assert.False(t, ok)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want config.InputFormat
	}{
		{"graph document", graphDoc, config.InputGraph},
		{"json schema", jsonSchemaDoc, config.InputJSONSchema},
		{"defs only", "$defs:\n  A: {type: string}\n", config.InputJSONSchema},
		{"empty", "", config.InputGraph},
		{"not a mapping", "- a\n- b\n", config.InputGraph},
		{"invalid", "{{", config.InputGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat([]byte(tt.data)))
		})
	}
}

func TestFrom_Empty(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}
