// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package graph

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Graph {
	t.Helper()
	g, err := Parse([]byte(src))
	require.NoError(t, err)
	return g
}

func lookup(t *testing.T, g *Graph, name string) *Node {
	t.Helper()
	n, ok := g.Lookup(name)
	require.True(t, ok, "missing %s", name)
	return n
}

func TestLoadFile_YAML(t *testing.T) {
	g, err := NewLoader(os.DirFS("testdata")).LoadFile("pets.yaml")
	require.NoError(t, err)

	var names []string
	for _, n := range g.Declarations() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"petName", "Pet", "Dog", "Kind", "Animal"}, names)

	pet := lookup(t, g, "Pet")
	require.Len(t, pet.Properties, 4)
	assert.Same(t, lookup(t, g, "petName"), pet.Properties[0].Type)
	assert.True(t, pet.Properties[1].Optional)
	assert.True(t, pet.Properties[1].Decorators.MinValue.IsZero())
	assert.True(t, IsArrayShaped(pet.Properties[2].Type))
	require.NotNil(t, pet.Properties[2].Default)
	assert.Equal(t, ValueArray, pet.Properties[2].Default.Kind)
	assert.Same(t, lookup(t, g, "Kind"), pet.Properties[3].Type)

	dog := lookup(t, g, "Dog")
	assert.Same(t, pet, dog.Base)
	assert.Equal(t, ValueBoolean, dog.Properties[0].Default.Kind)

	petName := lookup(t, g, "petName")
	assert.Equal(t, "The name of a pet", petName.Decorators.Doc)
	assert.Equal(t, int64(64), *petName.Decorators.MaxLength)
	assert.Same(t, g.Builtin("string"), petName.Base)

	animal := lookup(t, g, "Animal")
	require.NotNil(t, animal.Discriminator)
	assert.Equal(t, DefaultDiscriminator(), *animal.Discriminator)
	assert.Equal(t, "dog", animal.Variants[0].Name)
	assert.Same(t, dog, animal.Variants[0].Type)

	kind := lookup(t, g, "Kind")
	require.Len(t, kind.Members, 2)
	assert.Equal(t, "dog", kind.Members[0].Literal.Str)
	assert.Same(t, kind, kind.Members[0].Parent)
}

func TestLoadFile_JSON(t *testing.T) {
	g, err := NewLoader(os.DirFS("testdata")).LoadFile("pets.json")
	require.NoError(t, err)

	pet := lookup(t, g, "Pet")
	def := pet.Properties[1].Default
	require.NotNil(t, def)
	assert.Equal(t, ValueNumeric, def.Kind)
	s, ok := def.Num.IntString()
	require.True(t, ok)
	assert.Equal(t, "18446744073709551615", s)
}

func TestLoadFile_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml":   &fstest.MapFile{Data: []byte("{{invalid yaml")},
		"typo.yaml":  &fstest.MapFile{Data: []byte("modles: []")},
		"graph.toml": &fstest.MapFile{Data: []byte("")},
	}
	loader := NewLoader(fsys)

	_, err := loader.LoadFile("bad.yaml")
	require.Error(t, err)
	_, err = loader.LoadFile("typo.yaml")
	require.Error(t, err)
	_, err = loader.LoadFile("graph.toml")
	require.Error(t, err)
	_, err = loader.LoadFile("missing.yaml")
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	g := mustParse(t, "")
	assert.Empty(t, g.Declarations())
}

func TestLink_TypeRefs(t *testing.T) {
	g := mustParse(t, `
enums:
  - name: Color
    members:
      - name: Red
      - name: Blue
        value: 2
models:
  - name: M
    properties:
      - name: lit
        type: {literal: hi}
      - name: num
        type: {literal: 123}
      - name: flag
        type: {literal: true}
      - name: rec
        type: {record: int32}
      - name: either
        type: {union: [string, "null"]}
      - name: pair
        type: {tuple: [string, M]}
      - name: inline
        type:
          object:
            - name: a
              type: string
      - name: red
        type: {member: Color.Red}
`)
	m := lookup(t, g, "M")
	props := map[string]*Node{}
	for _, p := range m.Properties {
		props[p.Name] = p.Type
	}

	assert.Equal(t, KindString, props["lit"].Kind)
	assert.Equal(t, "hi", props["lit"].Literal.Str)
	assert.Equal(t, KindNumber, props["num"].Kind)
	assert.Equal(t, "123", props["num"].Literal.Num.String())
	assert.Equal(t, KindBoolean, props["flag"].Kind)
	assert.True(t, IsRecordShaped(props["rec"]))
	assert.Same(t, g.Builtin("int32"), props["rec"].Indexer.Value)

	require.Len(t, props["either"].Variants, 2)
	assert.Same(t, g.Builtin("null"), props["either"].Variants[1].Type)
	assert.Empty(t, props["either"].Name)

	assert.Equal(t, KindTuple, props["pair"].Kind)
	assert.Same(t, m, props["pair"].Elements[1])

	assert.Equal(t, KindModel, props["inline"].Kind)
	assert.Empty(t, props["inline"].Name)
	assert.Len(t, props["inline"].Properties, 1)

	color := lookup(t, g, "Color")
	assert.Same(t, color.Members[0], props["red"])
	assert.Nil(t, color.Members[0].Literal)
	assert.Equal(t, "2", color.Members[1].Literal.Num.String())
}

func TestLink_Is(t *testing.T) {
	g := mustParse(t, `
models:
  - name: Tags
    is: {array: string}
    maxItems: 5
  - name: Dict
    is: {record: string}
  - name: Copy
    is: Source
    properties:
      - name: extra
        type: string
  - name: Source
    properties:
      - name: id
        type: string
`)
	assert.True(t, IsArrayShaped(lookup(t, g, "Tags")))
	assert.Equal(t, int64(5), *lookup(t, g, "Tags").Decorators.MaxItems)
	assert.True(t, IsRecordShaped(lookup(t, g, "Dict")))

	cp := lookup(t, g, "Copy")
	require.Len(t, cp.Properties, 2)
	assert.Equal(t, "id", cp.Properties[0].Name)
	assert.Equal(t, "extra", cp.Properties[1].Name)
}

func TestLink_Discriminator(t *testing.T) {
	g := mustParse(t, `
unions:
  - name: Custom
    discriminated: {property: type, envelope: none}
    variants:
      - name: a
        type: string
  - name: Off
    discriminated: false
    variants:
      - type: string
`)
	custom := lookup(t, g, "Custom")
	require.NotNil(t, custom.Discriminator)
	assert.Equal(t, Discriminator{Property: "type", Envelope: EnvelopeNone, EnvelopeProperty: "value"}, *custom.Discriminator)
	assert.Nil(t, lookup(t, g, "Off").Discriminator)
}

func TestLink_Encoding(t *testing.T) {
	g := mustParse(t, `
scalars:
  - name: ts
    extends: utcDateTime
    encode: {encoding: unixTimestamp}
  - name: wire
    extends: utcDateTime
    encode: {encoding: rfc7231, type: string}
`)
	ts := lookup(t, g, "ts")
	require.NotNil(t, ts.Encoding)
	assert.Equal(t, "unixTimestamp", ts.Encoding.Name)
	assert.Same(t, g.Builtin("int32"), ts.Encoding.Type)
	assert.Same(t, g.Builtin("string"), lookup(t, g, "wire").Encoding.Type)
}

func TestLink_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
	}{
		{
			name:   "unknown type",
			src:    "models: [{name: M, properties: [{name: a, type: Missing}]}]",
			target: ErrUnknownType,
		},
		{
			name:   "duplicate across kinds",
			src:    "models: [{name: X}]\nenums: [{name: X, members: []}]",
			target: ErrDuplicateName,
		},
		{
			name:   "scalar base cycle",
			src:    "scalars: [{name: a, extends: b}, {name: b, extends: a}]",
			target: ErrBaseCycle,
		},
		{
			name:   "model base cycle",
			src:    "models: [{name: A, extends: B}, {name: B, extends: A}]",
			target: ErrBaseCycle,
		},
		{
			name:   "is cycle",
			src:    "models: [{name: A, is: B}, {name: B, is: A}]",
			target: ErrBaseCycle,
		},
		{
			name:   "unknown member",
			src:    "enums: [{name: E, members: [{name: A}]}]\nmodels: [{name: M, properties: [{name: a, type: {member: E.B}}]}]",
			target: ErrUnknownType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLink_InvalidShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"scalar extends model", "models: [{name: M}]\nscalars: [{name: s, extends: M}]"},
		{"model extends scalar", "models: [{name: M, extends: string}]"},
		{"empty type ref", "models: [{name: M, properties: [{name: a, type: {}}]}]"},
		{"null literal", "models: [{name: M, properties: [{name: a, type: {literal: null}}]}]"},
		{"unnamed discriminated variant", "unions: [{name: U, discriminated: true, variants: [{type: string}]}]"},
		{"bad member ref", "enums: [{name: E, members: []}]\nmodels: [{name: M, properties: [{name: a, type: {member: E}}]}]"},
		{"bad number", "models: [{name: M, properties: [{name: a, type: int8, minValue: abc}]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
		})
	}
}

func TestDecode_UnknownKeys(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "property flag",
			src:     "models: [{name: M, properties: [{name: p, type: string, optinal: true}]}]",
			wantErr: "field optinal not found in type graph.PropertyDecl",
		},
		{
			name:    "property decorator",
			src:     "models: [{name: M, properties: [{name: p, type: string, maxLenght: 3}]}]",
			wantErr: "field maxLenght not found in type graph.PropertyDecl",
		},
		{
			name:    "discriminator setting",
			src:     "unions: [{name: U, discriminated: {envelop: none}, variants: [{name: a, type: string}]}]",
			wantErr: "field envelop not found in type graph.DiscriminatorDecl",
		},
		{
			name:    "type mapping",
			src:     "models: [{name: M, properties: [{name: p, type: {aray: string}}]}]",
			wantErr: "field aray not found in type graph.TypeRef",
		},
		{
			name:    "nested object property",
			src:     "models: [{name: M, properties: [{name: p, type: {object: [{name: q, type: string, dflt: 1}]}}]}]",
			wantErr: "field dflt not found in type graph.PropertyDecl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	doc, err := Decode([]byte("models: [{name: M, properties: [{name: p, type: string, optional: true, maxLength: 3, doc: d}]}]"))
	require.NoError(t, err)
	p := doc.Models[0].Properties[0]
	assert.True(t, p.Optional)
	assert.Equal(t, int64(3), *p.MaxLength)
}

func TestLink_UnknownEnvelope(t *testing.T) {
	for _, envelope := range []string{"Object", "nonе", "wrapped"} {
		t.Run(envelope, func(t *testing.T) {
			src := "unions: [{name: U, discriminated: {envelope: " + envelope + "}, variants: [{name: a, type: string}]}]"
			_, err := Parse([]byte(src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown envelope")
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestValue_Decode(t *testing.T) {
	g := mustParse(t, `
models:
  - name: M
    properties:
      - name: when
        type: utcDateTime
        default: {fromISO: "2024-01-01T00:00:00Z"}
      - name: call
        type: utcDateTime
        default: {scalar: utcDateTime, constructor: now}
      - name: obj
        type: string
        default: {a: 1}
      - name: none
        type: string
        default: null
`)
	props := lookup(t, g, "M").Properties

	when := props[0].Default
	assert.Equal(t, ValueScalar, when.Kind)
	assert.Equal(t, "fromISO", when.Constructor)
	assert.Equal(t, []Value{StringValue("2024-01-01T00:00:00Z")}, when.Args)

	assert.Equal(t, "now", props[1].Default.Constructor)
	assert.Equal(t, ValueObject, props[2].Default.Kind)
	require.NotNil(t, props[3].Default)
	assert.Equal(t, ValueNull, props[3].Default.Kind)
}
