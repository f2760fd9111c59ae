// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema loads JSON Schema files and imports them into graph
// documents.
package jschema

import (
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Schema is a JSON Schema node.
type Schema = jsonschema.Schema

// Format is a schema file encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatFromPath picks the encoding from the file extension. Anything that
// is not .yaml or .yml is treated as JSON.
func FormatFromPath(filePath string) Format {
	switch path.Ext(filePath) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

const (
	defsPrefix        = "#/$defs/"
	definitionsPrefix = "#/definitions/"
)

// IsFileRef reports whether ref points at another file.
func IsFileRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "#")
}

// IsInternalRef reports whether ref points into the current document.
func IsInternalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// DefName returns the definition name targeted by an internal $defs or
// definitions ref, or "" for any other ref.
func DefName(ref string) string {
	for _, prefix := range []string{defsPrefix, definitionsPrefix} {
		if name, ok := strings.CutPrefix(ref, prefix); ok && name != "" && !strings.Contains(name, "/") {
			return unescapePointer(name)
		}
	}
	return ""
}

func unescapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

// Order records the source order of property and definition keys. Go maps
// lose it, and generated code follows it.
type Order struct {
	props map[*Schema][]string
	defs  map[*Schema][]string
}

func newOrder() *Order {
	return &Order{props: make(map[*Schema][]string), defs: make(map[*Schema][]string)}
}

// Properties returns the property names of s in source order. Names the
// source order does not cover are appended sorted.
func (o *Order) Properties(s *Schema) []string {
	var known []string
	if o != nil {
		known = o.props[s]
	}
	return ordered(known, s.Properties)
}

// Defs returns the $defs and definitions names of s in source order.
func (o *Order) Defs(s *Schema) []string {
	var known []string
	if o != nil {
		known = o.defs[s]
	}
	return ordered(known, defsOf(s))
}

// alias makes dst share the recorded order of src.
func (o *Order) alias(dst, src *Schema) {
	if p, ok := o.props[src]; ok {
		o.props[dst] = p
	}
	if d, ok := o.defs[src]; ok {
		o.defs[dst] = d
	}
}

func ordered(known []string, m map[string]*Schema) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range known {
		if _, ok := m[k]; ok && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// defsOf merges $defs and definitions. $defs wins on a name clash.
func defsOf(s *Schema) map[string]*Schema {
	if len(s.Definitions) == 0 {
		return s.Defs
	}
	out := make(map[string]*Schema, len(s.Defs)+len(s.Definitions))
	maps.Copy(out, s.Definitions)
	maps.Copy(out, s.Defs)
	return out
}

// ExtractKeyOrder walks the source document alongside the decoded schema
// and records the key order of every properties, $defs and definitions
// mapping. JSON input works too since it parses as YAML.
func ExtractKeyOrder(data []byte, schema *Schema) (*Order, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	o := newOrder()
	if len(doc.Content) > 0 {
		o.walk(doc.Content[0], schema)
	}
	return o, nil
}

func (o *Order) walk(node *yaml.Node, s *Schema) {
	if s == nil || node == nil {
		return
	}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "properties":
			o.props[s] = keysOf(val)
			o.walkMap(val, s.Properties)
		case "$defs":
			o.defs[s] = append(o.defs[s], keysOf(val)...)
			o.walkMap(val, s.Defs)
		case "definitions":
			o.defs[s] = append(o.defs[s], keysOf(val)...)
			o.walkMap(val, s.Definitions)
		case "patternProperties":
			o.walkMap(val, s.PatternProperties)
		case "dependentSchemas":
			o.walkMap(val, s.DependentSchemas)
		case "items":
			o.walk(val, s.Items)
		case "additionalProperties":
			o.walk(val, s.AdditionalProperties)
		case "additionalItems":
			o.walk(val, s.AdditionalItems)
		case "not":
			o.walk(val, s.Not)
		case "if":
			o.walk(val, s.If)
		case "then":
			o.walk(val, s.Then)
		case "else":
			o.walk(val, s.Else)
		case "prefixItems":
			o.walkList(val, s.PrefixItems)
		case "allOf":
			o.walkList(val, s.AllOf)
		case "anyOf":
			o.walkList(val, s.AnyOf)
		case "oneOf":
			o.walkList(val, s.OneOf)
		}
	}
}

func (o *Order) walkMap(node *yaml.Node, m map[string]*Schema) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		o.walk(node.Content[i+1], m[node.Content[i].Value])
	}
}

func (o *Order) walkList(node *yaml.Node, list []*Schema) {
	if node.Kind != yaml.SequenceNode {
		return
	}
	for i, item := range node.Content {
		if i < len(list) {
			o.walk(item, list[i])
		}
	}
}

func keysOf(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
