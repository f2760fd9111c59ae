// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/dacolabs/zodgen/internal/graph"
)

// IsDeclaration reports whether n gets its own top-level declaration when
// it is named. Built-in Array and Record models never do.
func IsDeclaration(n *graph.Node) bool {
	switch n.Kind {
	case graph.KindNamespace, graph.KindInterface, graph.KindOperation,
		graph.KindEnumMember, graph.KindUnionVariant:
		return false
	case graph.KindModel:
		if n.BuiltIn && (n.Name == "Array" || n.Name == "Record") {
			return false
		}
		return n.Name != ""
	case graph.KindUnion:
		return n.Name != ""
	case graph.KindEnum, graph.KindScalar:
		return true
	default:
		return false
	}
}

// IsRecord reports whether n is a string-keyed record model.
func IsRecord(n *graph.Node) bool {
	return graph.IsRecordShaped(n)
}

// ShouldReference reports whether uses of n refer to its declaration
// instead of inlining it. Built-ins and nodes whose override opts out of
// declaration are always inlined.
func (b *Builder) ShouldReference(n *graph.Node) bool {
	if !IsDeclaration(n) || n.BuiltIn {
		return false
	}
	if opts, ok := b.registry.Lookup(n); ok && opts.NoDeclaration {
		return false
	}
	return true
}
