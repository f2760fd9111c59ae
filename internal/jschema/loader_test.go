// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_YAML(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	schema, err := loader.LoadFile("simple.yaml")
	require.NoError(t, err)
	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "name")
	assert.Contains(t, schema.Properties, "age")
	require.NotNil(t, schema.Properties["name"].MinLength)
	assert.Equal(t, 1, *schema.Properties["name"].MinLength)
}

func TestLoadFile_JSON(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	schema, err := loader.LoadFile("simple.json")
	require.NoError(t, err)
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"name", "age"}, loader.Order().Properties(schema))
}

func TestLoadFile_NotFound(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	_, err := loader.LoadFile("nonexistent.yaml")
	require.Error(t, err)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"invalid.yaml": &fstest.MapFile{Data: []byte("{{invalid yaml")},
	}
	loader := NewLoader(fsys)
	_, err := loader.LoadFile("invalid.yaml")
	require.Error(t, err)
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"invalid.json": &fstest.MapFile{Data: []byte("{invalid json}")},
	}
	loader := NewLoader(fsys)
	_, err := loader.LoadFile("invalid.json")
	require.Error(t, err)
}

func TestResolveRefs_FileRefs(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	schema, err := loader.LoadFile("petstore.yaml")
	require.NoError(t, err)
	assert.Equal(t, "./owner.yaml", schema.Properties["owner"].Ref)

	require.NoError(t, loader.ResolveRefs(schema, "."))

	owner := schema.Properties["owner"]
	assert.Empty(t, owner.Ref)
	assert.Equal(t, "object", owner.Type)
	assert.Equal(t, []string{"email", "address"}, loader.Order().Properties(owner))

	address := owner.Properties["address"]
	assert.Empty(t, address.Ref)
	assert.Equal(t, []string{"zip", "street"}, loader.Order().Properties(address))

	assert.Equal(t, "#/$defs/Pet", schema.Properties["pets"].Items.Ref, "internal refs are left alone")
}

func TestResolveRefs_CircularFileRef(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	schema, err := loader.LoadFile("loop.yaml")
	require.NoError(t, err)
	err = loader.ResolveRefs(schema, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular file reference")
}

func TestResolveRefs_MissingFile(t *testing.T) {
	fsys := fstest.MapFS{
		"root.yaml": &fstest.MapFile{Data: []byte("type: object\nproperties:\n  a:\n    $ref: ./missing.yaml\n")},
	}
	loader := NewLoader(fsys)
	schema, err := loader.LoadFile("root.yaml")
	require.NoError(t, err)
	require.Error(t, loader.ResolveRefs(schema, "."))
}
