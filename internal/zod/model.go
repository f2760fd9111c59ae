// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/dacolabs/zodgen/internal/graph"
)

// modelBase builds arrays, records, objects and their combinations. A
// referenced base model is merged; any other base is flattened into the
// model's own shape.
func (b *Builder) modelBase(m *graph.Node) ([]Expr, error) {
	if graph.IsArrayShaped(m) {
		elem, err := b.nested(m.Indexer.Value)
		if err != nil {
			return nil, err
		}
		return z(call("array", elem)), nil
	}

	props, indexer := b.shapeOf(m)

	var record []Expr
	if indexer != nil {
		key, err := b.nested(indexer.Key)
		if err != nil {
			return nil, err
		}
		value, err := b.nested(indexer.Value)
		if err != nil {
			return nil, err
		}
		record = z(call("record", key, value))
	}

	var shape []Expr
	switch {
	case len(props) > 0:
		obj, err := b.object(props)
		if err != nil {
			return nil, err
		}
		shape = z(call("object", obj))
		if record != nil {
			shape = z(call("intersection", chain(shape), chain(record)))
		}
	case record != nil:
		shape = record
	default:
		shape = z(call("object", Object{}))
	}

	if m.Base != nil && b.ShouldReference(m.Base) {
		return []Expr{Ref{Node: m.Base}, call("merge", chain(shape))}, nil
	}
	return shape, nil
}

// shapeOf collects the properties and record indexer of m, flattening
// bases that are not referenced.
func (b *Builder) shapeOf(m *graph.Node) ([]*graph.Node, *graph.Indexer) {
	var (
		props   []*graph.Node
		indexer *graph.Indexer
	)
	if m.Base != nil && !b.ShouldReference(m.Base) {
		props, indexer = b.shapeOf(m.Base)
	}
	props = append(props, m.Properties...)
	if IsRecord(m) {
		indexer = m.Indexer
	}
	return props, indexer
}

func (b *Builder) object(props []*graph.Node) (Object, error) {
	obj := Object{Props: make([]Prop, 0, len(props))}
	for _, p := range props {
		x, err := b.field(p)
		if err != nil {
			return Object{}, err
		}
		obj.Props = append(obj.Props, Prop{Name: p.Name, Value: x})
	}
	return obj, nil
}

// field builds the value of a model property. A declare override on the
// property wins over a reference override on its type; either replaces
// the whole field chain.
func (b *Builder) field(prop *graph.Node) (Expr, error) {
	def := func() (Expr, error) {
		p, err := b.fieldParts(prop)
		if err != nil {
			return nil, err
		}
		return p.expr(), nil
	}
	if opts, ok := b.registry.Lookup(prop); ok && opts.Declare != nil {
		return opts.Declare(b.newContext(prop, prop, def))
	}
	if opts, ok := b.registry.Lookup(prop.Type); ok && opts.Reference != nil {
		return opts.Reference(b.newContext(prop.Type, prop, def))
	}
	return def()
}

func (b *Builder) fieldParts(prop *graph.Node) (schemaParts, error) {
	t := prop.Type
	var (
		p   schemaParts
		err error
	)
	if b.ShouldReference(t) {
		p.base = []Expr{b.ref(t)}
		p.constraints, err = b.constraints(t, prop, false)
		p.description = describe([]*graph.Node{prop})
	} else {
		p.base, err = b.baseSchema(t)
		if err == nil {
			p.constraints, err = b.constraints(t, prop, true)
		}
		p.description = describe(append([]*graph.Node{prop}, describeSources(t)...))
	}
	if err != nil {
		return schemaParts{}, err
	}
	p.member, err = b.memberParts(prop)
	if err != nil {
		return schemaParts{}, err
	}
	return p, nil
}

func (b *Builder) memberParts(prop *graph.Node) ([]Expr, error) {
	var out []Expr
	if prop.Optional {
		out = append(out, call("optional"))
	}
	if prop.Default != nil {
		v, err := b.value(*prop.Default, isBigint(prop.Type))
		if err != nil {
			return nil, err
		}
		out = append(out, call("default", v))
	}
	return out, nil
}
