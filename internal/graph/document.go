// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package graph

import (
	"reflect"

	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a schema graph.
type Document struct {
	Scalars []ScalarDecl `yaml:"scalars,omitempty"`
	Models  []ModelDecl  `yaml:"models,omitempty"`
	Enums   []EnumDecl   `yaml:"enums,omitempty"`
	Unions  []UnionDecl  `yaml:"unions,omitempty"`
}

// ScalarDecl declares a named scalar.
type ScalarDecl struct {
	Name       string        `yaml:"name"`
	Extends    string        `yaml:"extends,omitempty"`
	Encode     *EncodingDecl `yaml:"encode,omitempty"`
	Decorators `yaml:",inline"`
}

// EncodingDecl attaches a wire encoding to a scalar.
type EncodingDecl struct {
	Encoding string `yaml:"encoding"`
	Type     string `yaml:"type,omitempty"`
}

// ModelDecl declares a named model.
type ModelDecl struct {
	Name       string         `yaml:"name"`
	Extends    *TypeRef       `yaml:"extends,omitempty"`
	Is         *TypeRef       `yaml:"is,omitempty"`
	Properties []PropertyDecl `yaml:"properties,omitempty"`
	Decorators `yaml:",inline"`
}

// PropertyDecl declares a model property.
type PropertyDecl struct {
	Name       string  `yaml:"name"`
	Type       TypeRef `yaml:"type"`
	Optional   bool    `yaml:"optional,omitempty"`
	Default    *Value  `yaml:"default,omitempty"`
	Decorators `yaml:",inline"`
}

// UnmarshalYAML decodes a property. An explicit `default: null` is kept as
// a null value rather than dropped.
func (p *PropertyDecl) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, reflect.TypeFor[PropertyDecl]()); err != nil {
		return err
	}
	type plain PropertyDecl
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "default" {
			continue
		}
		var v Value
		if err := v.UnmarshalYAML(node.Content[i+1]); err != nil {
			return err
		}
		p.Default = &v
	}
	return nil
}

// EnumDecl declares a named enum.
type EnumDecl struct {
	Name    string           `yaml:"name"`
	Doc     string           `yaml:"doc,omitempty"`
	Members []EnumMemberDecl `yaml:"members"`
}

// EnumMemberDecl declares an enum member with an optional value.
type EnumMemberDecl struct {
	Name  string `yaml:"name"`
	Value *Value `yaml:"value,omitempty"`
}

// UnionDecl declares a named union.
type UnionDecl struct {
	Name          string             `yaml:"name"`
	Doc           string             `yaml:"doc,omitempty"`
	Discriminated *DiscriminatorDecl `yaml:"discriminated,omitempty"`
	Variants      []VariantDecl      `yaml:"variants"`
}

// VariantDecl declares a union variant. Unnamed variants are allowed in
// plain unions.
type VariantDecl struct {
	Name string  `yaml:"name,omitempty"`
	Type TypeRef `yaml:"type"`
}

// DiscriminatorDecl is either `true` (defaults) or a mapping overriding the
// discriminator settings.
type DiscriminatorDecl struct {
	Property         string `yaml:"property,omitempty"`
	Envelope         string `yaml:"envelope,omitempty"`
	EnvelopeProperty string `yaml:"envelopeProperty,omitempty"`
	disabled         bool
}

// UnmarshalYAML accepts a boolean or a settings mapping.
func (d *DiscriminatorDecl) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var on bool
		if err := node.Decode(&on); err != nil {
			return err
		}
		d.disabled = !on
		return nil
	}
	if err := checkKeys(node, reflect.TypeFor[DiscriminatorDecl]()); err != nil {
		return err
	}
	type plain DiscriminatorDecl
	return node.Decode((*plain)(d))
}

// resolve fills unset settings with the defaults.
func (d *DiscriminatorDecl) resolve() *Discriminator {
	if d == nil || d.disabled {
		return nil
	}
	out := DefaultDiscriminator()
	if d.Property != "" {
		out.Property = d.Property
	}
	if d.Envelope != "" {
		out.Envelope = d.Envelope
	}
	if d.EnvelopeProperty != "" {
		out.EnvelopeProperty = d.EnvelopeProperty
	}
	return &out
}

// TypeRef is a reference to a type. A bare string names a declaration or a
// std type; the mapping forms build anonymous types.
type TypeRef struct {
	Name    string         `yaml:"-"`
	Array   *TypeRef       `yaml:"array,omitempty"`
	Record  *TypeRef       `yaml:"record,omitempty"`
	Literal *Value         `yaml:"literal,omitempty"`
	Union   []TypeRef      `yaml:"union,omitempty"`
	Tuple   []TypeRef      `yaml:"tuple,omitempty"`
	Object  []PropertyDecl `yaml:"object,omitempty"`
	Member  string         `yaml:"member,omitempty"`
}

// Named returns a TypeRef naming a declaration.
func Named(name string) TypeRef { return TypeRef{Name: name} }

// UnmarshalYAML accepts a type name or a type mapping.
func (t *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Name = node.Value
		return nil
	}
	if err := checkKeys(node, reflect.TypeFor[TypeRef]()); err != nil {
		return err
	}
	type plain TypeRef
	return node.Decode((*plain)(t))
}
