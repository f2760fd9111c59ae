// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/cockroachdb/errors"

	"github.com/dacolabs/zodgen/internal/graph"
)

// Declaration is one top-level schema of the emitted file.
type Declaration struct {
	Node *graph.Node
	Name string
	Expr Expr

	// Group is the index of the cycle set the declaration belongs to.
	Group int

	// Cyclic is set when the declaration takes part in a reference cycle.
	Cyclic bool
}

// Emitter plans the declarations of a graph.
type Emitter struct {
	registry *Registry
}

// NewEmitter returns an Emitter applying the overrides in reg, which may
// be nil.
func NewEmitter(reg *Registry) *Emitter {
	return &Emitter{registry: reg}
}

// Plan builds every referenceable declaration of g, dependencies first.
// The first failing declaration aborts the plan.
func (e *Emitter) Plan(g *graph.Graph) ([]Declaration, error) {
	b := NewBuilder(e.registry)

	var nodes []*graph.Node
	for _, n := range g.Declarations() {
		if b.ShouldReference(n) {
			nodes = append(nodes, n)
		}
	}

	var decls []Declaration
	for i, set := range cycleSets(nodes) {
		group := orderBases(set.nodes)
		for _, n := range group {
			b.pending[n] = true
		}
		for _, n := range group {
			x, err := b.Declare(n)
			if err != nil {
				return nil, errors.Wrapf(err, "%s %s", n.Kind, n.Name)
			}
			delete(b.pending, n)
			decls = append(decls, Declaration{Node: n, Name: n.Name, Expr: x, Group: i, Cyclic: set.cyclic})
		}
	}
	return decls, nil
}
