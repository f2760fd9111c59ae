// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/dacolabs/zodgen/internal/graph"
)

func (b *Builder) unionBase(u *graph.Node) ([]Expr, error) {
	if u.Discriminator == nil {
		elems, err := b.variants(u, func(v *graph.Node) (Expr, error) { return b.nested(v.Type) })
		if err != nil {
			return nil, err
		}
		return z(call("union", Array{Elems: elems})), nil
	}

	d := *u.Discriminator
	elems, err := b.variants(u, func(v *graph.Node) (Expr, error) {
		if d.Envelope == graph.EnvelopeNone {
			return b.nested(v.Type)
		}
		return b.inline(envelope(d, v))
	})
	if err != nil {
		return nil, err
	}
	return z(call("discriminatedUnion", Raw{Text: Quote(d.Property)}, Array{Elems: elems})), nil
}

func (b *Builder) variants(u *graph.Node, build func(*graph.Node) (Expr, error)) ([]Expr, error) {
	elems := make([]Expr, 0, len(u.Variants))
	for _, v := range u.Variants {
		x, err := build(v)
		if err != nil {
			return nil, err
		}
		elems = append(elems, x)
	}
	return elems, nil
}

// envelope wraps a variant payload in an anonymous model carrying the tag.
func envelope(d graph.Discriminator, v *graph.Node) *graph.Node {
	tag := graph.StringValue(v.Name)
	return &graph.Node{
		Kind: graph.KindModel,
		Properties: []*graph.Node{
			{Kind: graph.KindModelProperty, Name: d.Property, Type: &graph.Node{Kind: graph.KindString, Literal: &tag}},
			{Kind: graph.KindModelProperty, Name: d.EnvelopeProperty, Type: v.Type},
		},
	}
}

// enumBase builds z.enum over the member values. Declare overrides on the
// members replace single values.
func (b *Builder) enumBase(e *graph.Node) ([]Expr, error) {
	elems := make([]Expr, 0, len(e.Members))
	for _, m := range e.Members {
		member := m
		def := func() (Expr, error) { return memberLiteral(member), nil }
		if opts, ok := b.registry.Lookup(member); ok && opts.Declare != nil {
			x, err := opts.Declare(b.newContext(member, nil, def))
			if err != nil {
				return nil, err
			}
			elems = append(elems, x)
			continue
		}
		elems = append(elems, memberLiteral(member))
	}
	return z(call("enum", Array{Elems: elems})), nil
}
