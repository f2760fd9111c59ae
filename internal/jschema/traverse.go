// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"maps"
	"slices"
)

// RefResolver resolves $ref strings to schemas.
// Return nil if the ref cannot be resolved.
type RefResolver func(ref string) *Schema

// Traverse returns an iterator over all schemas in the tree, parents before
// children. Each schema is yielded once even when the tree is cyclic.
// If resolver is provided, it follows $ref links to their targets.
func Traverse(schema *Schema, resolver RefResolver) iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		visited := make(map[*Schema]struct{})
		traverseWithVisited(schema, resolver, yield, visited)
	}
}

func traverseWithVisited(schema *Schema, resolver RefResolver, yield func(*Schema) bool, visited map[*Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(schema) {
		return false
	}

	if schema.Ref != "" && resolver != nil {
		if resolved := resolver(schema.Ref); resolved != nil {
			if !traverseWithVisited(resolved, resolver, yield, visited) {
				return false
			}
		}
	}

	for _, child := range children(schema) {
		if !traverseWithVisited(child, resolver, yield, visited) {
			return false
		}
	}
	return true
}

// children lists the direct subschemas of s. Map-valued keywords are
// visited in key order so traversal is deterministic.
func children(s *Schema) []*Schema {
	var out []*Schema
	addMap := func(m map[string]*Schema) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			out = append(out, m[k])
		}
	}

	addMap(s.Properties)
	addMap(s.PatternProperties)
	out = append(out, s.AdditionalProperties, s.PropertyNames, s.UnevaluatedProperties)

	out = append(out, s.Items)
	out = append(out, s.PrefixItems...)
	out = append(out, s.AdditionalItems, s.Contains, s.UnevaluatedItems)

	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	out = append(out, s.Not, s.If, s.Then, s.Else)

	addMap(s.DependentSchemas)
	out = append(out, s.ContentSchema)
	addMap(s.Defs)
	addMap(s.Definitions)
	return out
}
