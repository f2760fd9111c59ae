// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package graph

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknownType indicates a type reference that names no declaration.
	ErrUnknownType = errors.New("unknown type")

	// ErrDuplicateName indicates two declarations share a name.
	ErrDuplicateName = errors.New("duplicate declaration")

	// ErrBaseCycle indicates a scalar or model that extends itself.
	ErrBaseCycle = errors.New("cyclic base chain")
)

// stdScalars lists the built-in scalars as name/base pairs. Bases appear
// before the scalars that extend them.
var stdScalars = [][2]string{
	{"boolean", ""},
	{"string", ""},
	{"url", "string"},
	{"bytes", ""},
	{"numeric", ""},
	{"integer", "numeric"},
	{"int64", "integer"},
	{"int32", "int64"},
	{"int16", "int32"},
	{"int8", "int16"},
	{"safeint", "int64"},
	{"uint64", "integer"},
	{"uint32", "uint64"},
	{"uint16", "uint32"},
	{"uint8", "uint16"},
	{"float", "numeric"},
	{"float64", "float"},
	{"float32", "float64"},
	{"decimal", "numeric"},
	{"decimal128", "decimal"},
	{"plainDate", ""},
	{"plainTime", ""},
	{"utcDateTime", ""},
	{"offsetDateTime", ""},
	{"duration", ""},
}

var intrinsics = []string{"null", "never", "unknown", "void"}

// Graph is a linked schema graph: the std library plus the user
// declarations in document order.
type Graph struct {
	std    map[string]*Node
	byName map[string]*Node
	decls  []*Node
}

// New returns a graph holding only the std library.
func New() *Graph {
	g := &Graph{
		std:    make(map[string]*Node),
		byName: make(map[string]*Node),
	}
	for _, s := range stdScalars {
		n := &Node{Kind: KindScalar, Name: s[0], BuiltIn: true}
		if s[1] != "" {
			n.Base = g.std[s[1]]
		}
		g.std[n.Name] = n
	}
	for _, name := range intrinsics {
		g.std[name] = &Node{Kind: KindIntrinsic, Name: name, BuiltIn: true}
	}
	return g
}

// Builtin returns the std-library node with the given name, or nil.
func (g *Graph) Builtin(name string) *Node {
	return g.std[name]
}

// Lookup resolves a name against the user declarations first and the std
// library second.
func (g *Graph) Lookup(name string) (*Node, bool) {
	if n, ok := g.byName[name]; ok {
		return n, true
	}
	n, ok := g.std[name]
	return n, ok
}

// Declarations returns the user declarations in document order.
func (g *Graph) Declarations() []*Node {
	return g.decls
}

// Add registers a named user declaration.
func (g *Graph) Add(n *Node) error {
	if n.Name == "" {
		return errors.New("declaration has no name")
	}
	if _, ok := g.byName[n.Name]; ok {
		return errors.Wrapf(ErrDuplicateName, "%s", n.Name)
	}
	if _, ok := g.std[n.Name]; ok {
		return errors.WithHint(errors.Wrapf(ErrDuplicateName, "%s", n.Name),
			"the name is taken by a built-in type")
	}
	g.byName[n.Name] = n
	g.decls = append(g.decls, n)
	return nil
}

// ArrayOf returns a built-in array model over elem.
func (g *Graph) ArrayOf(elem *Node) *Node {
	return &Node{Kind: KindModel, Name: "Array", BuiltIn: true, Indexer: &Indexer{Value: elem}}
}

// RecordOf returns a built-in string-keyed record model over value.
func (g *Graph) RecordOf(value *Node) *Node {
	return &Node{Kind: KindModel, Name: "Record", BuiltIn: true, Indexer: &Indexer{Key: g.std["string"], Value: value}}
}

// checkBases reports the first declaration whose base chain loops.
func (g *Graph) checkBases() error {
	for _, n := range g.decls {
		seen := make(map[*Node]bool)
		for cur := n; cur != nil; cur = cur.Base {
			if seen[cur] {
				return errors.Wrapf(ErrBaseCycle, "%s", n.Name)
			}
			seen[cur] = true
		}
	}
	return nil
}
