// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/dacolabs/zodgen/internal/graph"
)

// scalarBase picks the base schema from the scalar's std ancestor.
// Unknown scalars fall back to z.any().
func (b *Builder) scalarBase(n *graph.Node) []Expr {
	std := graph.StdBase(n)
	if std == nil {
		return z(call("any"))
	}
	switch std.Name {
	case "boolean":
		return z(call("boolean"))
	case "string":
		return z(call("string"))
	case "url":
		return z(call("string"), call("url"))
	case "int8", "int16", "int32", "uint8", "uint16", "uint32", "safeint":
		return z(call("number"), call("int"))
	case "int64", "uint64", "integer":
		return z(call("bigint"))
	case "float32", "float64", "float", "decimal", "decimal128", "numeric":
		return z(call("number"))
	case "bytes":
		return z(call("any"))
	case "plainDate":
		return z(Ident{Name: "coerce"}, call("date"))
	case "plainTime":
		return z(call("string"), call("time"))
	case "utcDateTime", "offsetDateTime":
		if c := encodedCarrier(n); c != nil {
			return b.scalarBase(c)
		}
		if enc := encodingOf(n); enc != nil && enc.Name == "rfc3339" {
			return z(call("string"), call("datetime"))
		}
		return z(Ident{Name: "coerce"}, call("date"))
	case "duration":
		if c := encodedCarrier(n); c != nil {
			return b.scalarBase(c)
		}
		return z(call("string"), call("duration"))
	default:
		return z(call("any"))
	}
}

// encodingOf returns the nearest encoding on the base chain of n.
func encodingOf(n *graph.Node) *graph.Encoding {
	for cur := n; cur != nil; cur = cur.Base {
		if cur.Encoding != nil {
			return cur.Encoding
		}
	}
	return nil
}

// encodedCarrier returns the type a date-time or duration scalar is
// rendered as on the wire, or nil when it keeps its own rendering.
func encodedCarrier(n *graph.Node) *graph.Node {
	std := graph.StdBase(n)
	if std == nil {
		return nil
	}
	enc := encodingOf(n)
	if enc == nil || enc.Type == nil {
		return nil
	}
	switch std.Name {
	case "utcDateTime", "offsetDateTime":
		if enc.Name == "rfc3339" {
			return nil
		}
		return enc.Type
	case "duration":
		if enc.Name == "ISO8601" {
			return nil
		}
		return enc.Type
	default:
		return nil
	}
}

// isBigint reports whether values of n are rendered as bigint literals.
func isBigint(n *graph.Node) bool {
	if n == nil {
		return false
	}
	if graph.IsArrayShaped(n) {
		return isBigint(n.Indexer.Value)
	}
	if c := encodedCarrier(n); c != nil {
		n = c
	}
	std := graph.StdBase(n)
	if std == nil {
		return false
	}
	switch std.Name {
	case "int64", "uint64", "integer":
		return true
	default:
		return false
	}
}
