// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package zod translates schema graph nodes into zod expressions.
package zod

import (
	"github.com/cockroachdb/errors"

	"github.com/dacolabs/zodgen/internal/graph"
)

var (
	// ErrUnsupportedValue indicates a default or literal value that has no
	// zod rendering.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnknownConstraint indicates a constraint without a zod method.
	ErrUnknownConstraint = errors.New("unknown constraint name")

	// ErrRecursiveInline indicates a type that contains itself but has no
	// declaration to refer back to.
	ErrRecursiveInline = errors.New("recursive type cannot be inlined")
)

// Builder builds zod expressions for graph nodes.
type Builder struct {
	registry *Registry

	// pending holds the nodes of the group being declared that are not
	// declared yet. References to them are deferred with z.lazy.
	pending map[*graph.Node]bool

	// expanding holds the nodes whose base schema is being built.
	expanding map[*graph.Node]bool
}

// NewBuilder returns a Builder applying the overrides in reg, which may be
// nil.
func NewBuilder(reg *Registry) *Builder {
	return &Builder{
		registry:  reg,
		pending:   make(map[*graph.Node]bool),
		expanding: make(map[*graph.Node]bool),
	}
}

// schemaParts are the fragments of a chain in emission order.
type schemaParts struct {
	base        []Expr
	constraints []Expr
	member      []Expr
	description []Expr
}

func (p schemaParts) expr() Expr {
	return chain(p.base, p.constraints, p.member, p.description)
}

// Schema builds the full expression for n, inlining it even when n is
// declarable. Reference overrides apply. Model properties build their
// field expression.
func (b *Builder) Schema(n *graph.Node) (Expr, error) {
	if n.Kind == graph.KindModelProperty {
		return b.field(n)
	}
	return b.withReference(n, func() (Expr, error) { return b.inline(n) })
}

// Declare builds the right-hand side of the declaration of n. Declare
// overrides apply.
func (b *Builder) Declare(n *graph.Node) (Expr, error) {
	def := func() (Expr, error) { return b.inline(n) }
	if opts, ok := b.registry.Lookup(n); ok && opts.Declare != nil {
		return opts.Declare(b.newContext(n, nil, def))
	}
	return def()
}

// nested builds the expression for n used inside another expression.
func (b *Builder) nested(n *graph.Node) (Expr, error) {
	return b.withReference(n, func() (Expr, error) {
		if b.ShouldReference(n) {
			return b.ref(n), nil
		}
		return b.inline(n)
	})
}

func (b *Builder) withReference(n *graph.Node, def func() (Expr, error)) (Expr, error) {
	if opts, ok := b.registry.Lookup(n); ok && opts.Reference != nil {
		return opts.Reference(b.newContext(n, nil, def))
	}
	return def()
}

func (b *Builder) ref(n *graph.Node) Expr {
	if b.pending[n] {
		return Lazy{Target: n}
	}
	return Ref{Node: n}
}

func (b *Builder) inline(n *graph.Node) (Expr, error) {
	p, err := b.inlineParts(n)
	if err != nil {
		return nil, err
	}
	return p.expr(), nil
}

func (b *Builder) inlineParts(n *graph.Node) (schemaParts, error) {
	if n.Kind == graph.KindModelProperty {
		return b.fieldParts(n)
	}
	base, err := b.baseSchema(n)
	if err != nil {
		return schemaParts{}, err
	}
	cons, err := b.constraints(n, nil, true)
	if err != nil {
		return schemaParts{}, err
	}
	return schemaParts{base: base, constraints: cons, description: describe(describeSources(n))}, nil
}

// baseSchema dispatches on the node kind. A node reached again while its
// own schema is being built is an error.
func (b *Builder) baseSchema(n *graph.Node) ([]Expr, error) {
	if b.expanding[n] {
		return nil, errors.WithHint(errors.Wrapf(ErrRecursiveInline, "%s %s", n.Kind, n.Name),
			"recursive types need a declaration; drop the NoDeclaration override")
	}
	b.expanding[n] = true
	defer delete(b.expanding, n)

	switch n.Kind {
	case graph.KindIntrinsic:
		return intrinsicBase(n), nil
	case graph.KindString, graph.KindNumber, graph.KindBoolean:
		lit, err := b.literal(n.Literal)
		if err != nil {
			return nil, err
		}
		return z(call("literal", lit)), nil
	case graph.KindScalar:
		return b.scalarBase(n), nil
	case graph.KindModel:
		return b.modelBase(n)
	case graph.KindUnion:
		return b.unionBase(n)
	case graph.KindEnum:
		return b.enumBase(n)
	case graph.KindEnumMember:
		return z(call("literal", memberLiteral(n))), nil
	case graph.KindTuple:
		return b.tupleBase(n)
	case graph.KindModelProperty:
		return b.baseSchema(n.Type)
	default:
		return z(call("any")), nil
	}
}

func intrinsicBase(n *graph.Node) []Expr {
	switch n.Name {
	case "null", "never", "unknown", "void":
		return z(call(n.Name))
	default:
		return z(call("any"))
	}
}

func (b *Builder) literal(v *graph.Value) (Expr, error) {
	if v == nil {
		return nil, errors.Wrap(ErrUnsupportedValue, "literal has no value")
	}
	switch v.Kind {
	case graph.ValueString, graph.ValueNumeric, graph.ValueBoolean:
		return b.value(*v, false)
	default:
		return nil, errors.Wrap(ErrUnsupportedValue, "literal types must be strings, numbers or booleans")
	}
}

func (b *Builder) tupleBase(n *graph.Node) ([]Expr, error) {
	elems := make([]Expr, 0, len(n.Elements))
	for _, e := range n.Elements {
		x, err := b.nested(e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, x)
	}
	return z(call("tuple", Array{Elems: elems})), nil
}
