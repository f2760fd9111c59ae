// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/dacolabs/zodgen/internal/graph"
)

// EmitFunc produces a replacement expression for an overridden node.
type EmitFunc func(c *Context) (Expr, error)

// Options configures the override for a node or kind.
type Options struct {
	// Declare replaces the right-hand side of the node's declaration.
	Declare EmitFunc

	// Reference replaces the expression emitted where the node is used.
	Reference EmitFunc

	// NoDeclaration inlines the node at every use instead of declaring it.
	NoDeclaration bool
}

// Registry maps nodes and kinds to overrides. Build it before planning;
// it is read-only while a plan runs.
type Registry struct {
	nodes map[*graph.Node]Options
	kinds map[graph.Kind]Options
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[*graph.Node]Options),
		kinds: make(map[graph.Kind]Options),
	}
}

// ForNode registers an override for a single node.
func (r *Registry) ForNode(n *graph.Node, opts Options) *Registry {
	r.nodes[n] = opts
	return r
}

// ForKind registers an override for every node of a kind.
func (r *Registry) ForKind(k graph.Kind, opts Options) *Registry {
	r.kinds[k] = opts
	return r
}

// Lookup finds the override for n. An exact node entry wins; scalars
// without one inherit the entry of their nearest user-declared ancestor;
// the kind entry comes last. A nil registry has no entries.
func (r *Registry) Lookup(n *graph.Node) (Options, bool) {
	if r == nil || n == nil {
		return Options{}, false
	}
	if opts, ok := r.nodes[n]; ok {
		return opts, true
	}
	if n.Kind == graph.KindScalar {
		for anc := n.Base; anc != nil && !anc.BuiltIn; anc = anc.Base {
			if opts, ok := r.nodes[anc]; ok {
				return opts, true
			}
		}
	}
	opts, ok := r.kinds[n.Kind]
	return opts, ok
}

// Context is handed to overrides. The fragments of the default rendering
// are computed only when asked for.
type Context struct {
	// Node is the overridden node.
	Node *graph.Node

	// Member is the property when the override runs for a field.
	Member *graph.Node

	b     *Builder
	def   func() (Expr, error)
	parts *schemaParts
}

func (b *Builder) newContext(n, member *graph.Node, def func() (Expr, error)) *Context {
	return &Context{Node: n, Member: member, b: b, def: def}
}

// Default returns the expression that would be emitted without the
// override.
func (c *Context) Default() (Expr, error) {
	return c.def()
}

// BaseSchema returns the base fragment, e.g. z.string() or a reference.
func (c *Context) BaseSchema() ([]Expr, error) {
	p, err := c.load()
	if err != nil {
		return nil, err
	}
	return p.base, nil
}

// Constraints returns the constraint fragment, e.g. .min(1).max(5).
func (c *Context) Constraints() ([]Expr, error) {
	p, err := c.load()
	if err != nil {
		return nil, err
	}
	return p.constraints, nil
}

// Description returns the describe fragment, if any.
func (c *Context) Description() ([]Expr, error) {
	p, err := c.load()
	if err != nil {
		return nil, err
	}
	return p.description, nil
}

// MemberParts returns the optional and default calls of a field. It is
// empty outside of field sites.
func (c *Context) MemberParts() ([]Expr, error) {
	p, err := c.load()
	if err != nil {
		return nil, err
	}
	return p.member, nil
}

func (c *Context) load() (*schemaParts, error) {
	if c.parts != nil {
		return c.parts, nil
	}
	var (
		p   schemaParts
		err error
	)
	if c.Member != nil {
		p, err = c.b.fieldParts(c.Member)
	} else {
		p, err = c.b.inlineParts(c.Node)
	}
	if err != nil {
		return nil, err
	}
	c.parts = &p
	return c.parts, nil
}
