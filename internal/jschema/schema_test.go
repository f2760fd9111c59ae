// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Format
	}{
		{"yaml extension", "schema.yaml", YAML},
		{"yml extension", "schema.yml", YAML},
		{"json extension", "schema.json", JSON},
		{"no extension", "schema", JSON},
		{"path with yaml", "/path/to/schema.yaml", YAML},
		{"uppercase YAML", "schema.YAML", JSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestIsFileRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{"relative file ref", "./other.yaml", true},
		{"parent file ref", "../other.yaml", true},
		{"simple file ref", "other.yaml", true},
		{"internal ref", "#/$defs/address", false},
		{"empty string", "", false},
		{"hash only", "#", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFileRef(tt.ref))
		})
	}
}

func TestIsInternalRef(t *testing.T) {
	assert.True(t, IsInternalRef("#/$defs/address"))
	assert.True(t, IsInternalRef("#/definitions/item"))
	assert.False(t, IsInternalRef("./other.yaml"))
	assert.False(t, IsInternalRef(""))
}

func TestDefName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"#/$defs/Pet", "Pet"},
		{"#/definitions/Pet", "Pet"},
		{"#/$defs/a~1b", "a/b"},
		{"#/$defs/a~0b", "a~b"},
		{"#/$defs/Pet/properties/id", ""},
		{"#/components/schemas/Pet", ""},
		{"#/$defs/", ""},
		{"./pet.yaml", ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, DefName(tt.ref))
		})
	}
}

func TestExtractKeyOrder(t *testing.T) {
	data := []byte(`
$defs:
  Zebra:
    type: object
    properties:
      z: {type: string}
      a: {type: string}
  Apple:
    type: string
definitions:
  Mango:
    type: string
properties:
  second: {type: string}
  first:
    type: object
    properties:
      y: {type: string}
      b: {type: string}
  list:
    type: array
    items:
      type: object
      properties:
        k2: {type: string}
        k1: {type: string}
`)
	schema, err := decode(data, YAML)
	require.NoError(t, err)
	order, err := ExtractKeyOrder(data, schema)
	require.NoError(t, err)

	assert.Equal(t, []string{"second", "first", "list"}, order.Properties(schema))
	assert.Equal(t, []string{"y", "b"}, order.Properties(schema.Properties["first"]))
	assert.Equal(t, []string{"k2", "k1"}, order.Properties(schema.Properties["list"].Items))
	assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, order.Defs(schema))
	assert.Equal(t, []string{"z", "a"}, order.Properties(schema.Defs["Zebra"]))
}

func TestOrder_FallsBackToSorted(t *testing.T) {
	s := &Schema{Properties: map[string]*Schema{"b": {}, "a": {}, "c": {}}}
	var o *Order
	assert.Equal(t, []string{"a", "b", "c"}, o.Properties(s))

	o = newOrder()
	o.props[s] = []string{"c", "gone"}
	assert.Equal(t, []string{"c", "a", "b"}, o.Properties(s))
}

func TestTraverse(t *testing.T) {
	leaf := &Schema{Type: "string"}
	root := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"b": leaf,
			"a": {Type: "array", Items: &Schema{Type: "integer"}},
		},
		AnyOf: []*Schema{leaf},
		Defs:  map[string]*Schema{"D": {Type: "boolean"}},
	}

	var types []string
	for s := range Traverse(root, nil) {
		types = append(types, s.Type)
	}
	assert.Equal(t, []string{"object", "array", "integer", "string", "boolean"}, types)
}

func TestTraverse_FollowsRefsAndStops(t *testing.T) {
	target := &Schema{Type: "string"}
	root := &Schema{Properties: map[string]*Schema{"x": {Ref: "#/$defs/T"}}}
	resolver := func(ref string) *Schema {
		if ref == "#/$defs/T" {
			return target
		}
		return nil
	}

	var seen []*Schema
	for s := range Traverse(root, resolver) {
		seen = append(seen, s)
	}
	assert.Contains(t, seen, target)

	var count int
	for range Traverse(root, resolver) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
