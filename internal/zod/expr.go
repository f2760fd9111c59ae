// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/dacolabs/zodgen/internal/graph"
)

// Expr is a node of a generated zod expression. The render package turns
// expressions into TypeScript source.
type Expr interface {
	expr()
}

// Ident is a bare identifier such as `z`.
type Ident struct {
	Name string
}

// Call is a call `Name(Args...)`. Inside a Chain it is a method call.
type Call struct {
	Name string
	Args []Expr
}

// Chain joins its parts with `.`, e.g. z.number().int().gte(0).
type Chain struct {
	Parts []Expr
}

// Ref refers to the declaration emitted for Node. Its identifier is chosen
// at render time.
type Ref struct {
	Node *graph.Node
}

// Lazy is a deferred reference, rendered as `z.lazy(() => Name)`.
type Lazy struct {
	Target *graph.Node
}

// Object is an object literal with properties in order.
type Object struct {
	Props []Prop
}

// Prop is a single object literal property.
type Prop struct {
	Name  string
	Value Expr
}

// Array is an array literal.
type Array struct {
	Elems []Expr
}

// Raw is pre-rendered source text, used for literal values.
type Raw struct {
	Text string
}

func (Ident) expr()  {}
func (Call) expr()   {}
func (Chain) expr()  {}
func (Ref) expr()    {}
func (Lazy) expr()   {}
func (Object) expr() {}
func (Array) expr()  {}
func (Raw) expr()    {}

var zIdent = Ident{Name: "z"}

func call(name string, args ...Expr) Call {
	return Call{Name: name, Args: args}
}

// z builds a chain rooted at the zod namespace.
func z(parts ...Expr) []Expr {
	return append([]Expr{zIdent}, parts...)
}

// chain flattens groups of parts into one Chain. Nested chains are spliced
// in place.
func chain(groups ...[]Expr) Expr {
	var parts []Expr
	for _, g := range groups {
		for _, p := range g {
			if c, ok := p.(Chain); ok {
				parts = append(parts, c.Parts...)
				continue
			}
			parts = append(parts, p)
		}
	}
	if len(parts) == 1 {
		if _, ok := parts[0].(Call); !ok {
			return parts[0]
		}
	}
	return Chain{Parts: parts}
}
