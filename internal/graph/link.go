// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package graph

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const unknownTypeHint = "declare it under scalars, models, enums or unions, or use a built-in type name"

// Link resolves a document into a graph. Names are registered first, then
// bodies are linked, so declarations may reference each other in any order.
func Link(doc *Document) (*Graph, error) {
	l := &linker{g: New(), models: make(map[*Node]ModelDecl)}
	if err := l.declare(doc); err != nil {
		return nil, err
	}
	if err := l.link(doc); err != nil {
		return nil, err
	}
	if err := l.expandIs(); err != nil {
		return nil, err
	}
	if err := l.g.checkBases(); err != nil {
		return nil, err
	}
	return l.g, nil
}

type linker struct {
	g      *Graph
	models map[*Node]ModelDecl
	done   map[*Node]bool
}

func (l *linker) declare(doc *Document) error {
	for _, s := range doc.Scalars {
		if err := l.g.Add(&Node{Kind: KindScalar, Name: s.Name}); err != nil {
			return err
		}
	}
	for _, m := range doc.Models {
		if err := l.g.Add(&Node{Kind: KindModel, Name: m.Name}); err != nil {
			return err
		}
	}
	for _, e := range doc.Enums {
		if err := l.g.Add(&Node{Kind: KindEnum, Name: e.Name}); err != nil {
			return err
		}
	}
	for _, u := range doc.Unions {
		if err := l.g.Add(&Node{Kind: KindUnion, Name: u.Name}); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) link(doc *Document) error {
	for _, s := range doc.Scalars {
		if err := l.linkScalar(s); err != nil {
			return errors.Wrapf(err, "scalar %s", s.Name)
		}
	}
	for _, e := range doc.Enums {
		n := l.g.byName[e.Name]
		n.Decorators.Doc = e.Doc
		for _, m := range e.Members {
			n.Members = append(n.Members, &Node{Kind: KindEnumMember, Name: m.Name, Parent: n, Literal: m.Value})
		}
	}
	for _, m := range doc.Models {
		if err := l.linkModel(m); err != nil {
			return errors.Wrapf(err, "model %s", m.Name)
		}
	}
	for _, u := range doc.Unions {
		if err := l.linkUnion(u); err != nil {
			return errors.Wrapf(err, "union %s", u.Name)
		}
	}
	return nil
}

func (l *linker) linkScalar(s ScalarDecl) error {
	n := l.g.byName[s.Name]
	n.Decorators = s.Decorators
	if s.Extends != "" {
		base, err := l.named(s.Extends)
		if err != nil {
			return err
		}
		if base.Kind != KindScalar {
			return errors.Newf("cannot extend %s %s", strings.ToLower(base.Kind.String()), s.Extends)
		}
		n.Base = base
	}
	if s.Encode != nil {
		enc := &Encoding{Name: s.Encode.Encoding}
		typeName := s.Encode.Type
		if typeName == "" {
			typeName = defaultEncodingType(enc.Name)
		}
		t, err := l.named(typeName)
		if err != nil {
			return errors.Wrap(err, "encoding")
		}
		enc.Type = t
		n.Encoding = enc
	}
	return nil
}

func defaultEncodingType(encoding string) string {
	switch encoding {
	case "unixTimestamp", "seconds":
		return "int32"
	default:
		return "string"
	}
}

func (l *linker) linkModel(m ModelDecl) error {
	n := l.g.byName[m.Name]
	n.Decorators = m.Decorators
	if m.Extends != nil {
		base, err := l.resolve(*m.Extends)
		if err != nil {
			return errors.Wrap(err, "extends")
		}
		if base.Kind != KindModel {
			return errors.Newf("cannot extend %s", strings.ToLower(base.Kind.String()))
		}
		n.Base = base
	}
	props, err := l.properties(m.Properties)
	if err != nil {
		return err
	}
	n.Properties = props
	if m.Is != nil {
		l.models[n] = m
	}
	return nil
}

func (l *linker) properties(decls []PropertyDecl) ([]*Node, error) {
	props := make([]*Node, 0, len(decls))
	for _, p := range decls {
		t, err := l.resolve(p.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "property %s", p.Name)
		}
		props = append(props, &Node{
			Kind:       KindModelProperty,
			Name:       p.Name,
			Type:       t,
			Optional:   p.Optional,
			Default:    p.Default,
			Decorators: p.Decorators,
		})
	}
	return props, nil
}

// expandIs applies `is` clauses. Array and record forms become the model's
// indexer; naming another model copies its shape in front of the model's
// own properties.
func (l *linker) expandIs() error {
	l.done = make(map[*Node]bool)
	for _, n := range l.g.decls {
		if err := l.expand(n, nil); err != nil {
			return errors.Wrapf(err, "model %s", n.Name)
		}
	}
	return nil
}

func (l *linker) expand(n *Node, visiting map[*Node]bool) error {
	m, ok := l.models[n]
	if !ok || l.done[n] {
		return nil
	}
	if visiting == nil {
		visiting = make(map[*Node]bool)
	}
	if visiting[n] {
		return errors.Wrap(ErrBaseCycle, "is")
	}
	visiting[n] = true

	src, err := l.resolve(*m.Is)
	if err != nil {
		return errors.Wrap(err, "is")
	}
	if src.Kind != KindModel {
		return errors.Newf("is: %s is not a model", src.Name)
	}
	if err := l.expand(src, visiting); err != nil {
		return err
	}
	n.Indexer = src.Indexer
	if n.Base == nil {
		n.Base = src.Base
	}
	n.Properties = append(append([]*Node(nil), src.Properties...), n.Properties...)
	l.done[n] = true
	return nil
}

func (l *linker) linkUnion(u UnionDecl) error {
	n := l.g.byName[u.Name]
	n.Decorators.Doc = u.Doc
	n.Discriminator = u.Discriminated.resolve()
	if d := n.Discriminator; d != nil && d.Envelope != EnvelopeObject && d.Envelope != EnvelopeNone {
		return errors.WithHintf(errors.Newf("unknown envelope %q", d.Envelope),
			"use %q or %q", EnvelopeObject, EnvelopeNone)
	}
	for i, v := range u.Variants {
		t, err := l.resolve(v.Type)
		if err != nil {
			return errors.Wrapf(err, "variant %d", i)
		}
		if n.Discriminator != nil && v.Name == "" {
			return errors.WithHint(errors.Newf("variant %d has no name", i),
				"discriminated unions tag each variant with its name")
		}
		n.Variants = append(n.Variants, &Node{Kind: KindUnionVariant, Name: v.Name, Type: t})
	}
	return nil
}

func (l *linker) named(name string) (*Node, error) {
	n, ok := l.g.Lookup(name)
	if !ok {
		return nil, errors.WithHint(errors.Wrapf(ErrUnknownType, "%q", name), unknownTypeHint)
	}
	return n, nil
}

// resolve turns a type reference into a node, building anonymous nodes for
// the mapping forms.
func (l *linker) resolve(t TypeRef) (*Node, error) {
	switch {
	case t.Name != "":
		return l.named(t.Name)
	case t.Array != nil:
		elem, err := l.resolve(*t.Array)
		if err != nil {
			return nil, err
		}
		return l.g.ArrayOf(elem), nil
	case t.Record != nil:
		value, err := l.resolve(*t.Record)
		if err != nil {
			return nil, err
		}
		return l.g.RecordOf(value), nil
	case t.Literal != nil:
		return literalNode(*t.Literal)
	case t.Union != nil:
		n := &Node{Kind: KindUnion}
		for _, v := range t.Union {
			vt, err := l.resolve(v)
			if err != nil {
				return nil, err
			}
			n.Variants = append(n.Variants, &Node{Kind: KindUnionVariant, Type: vt})
		}
		return n, nil
	case t.Tuple != nil:
		n := &Node{Kind: KindTuple}
		for _, e := range t.Tuple {
			et, err := l.resolve(e)
			if err != nil {
				return nil, err
			}
			n.Elements = append(n.Elements, et)
		}
		return n, nil
	case t.Object != nil:
		props, err := l.properties(t.Object)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindModel, Properties: props}, nil
	case t.Member != "":
		return l.member(t.Member)
	default:
		return nil, errors.New("empty type reference")
	}
}

func (l *linker) member(ref string) (*Node, error) {
	enumName, memberName, ok := strings.Cut(ref, ".")
	if !ok {
		return nil, errors.Newf("member reference %q must be Enum.Member", ref)
	}
	e, err := l.named(enumName)
	if err != nil {
		return nil, err
	}
	for _, m := range e.Members {
		if m.Name == memberName {
			return m, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownType, "%q", ref)
}

// literalNode builds a literal type node from a value.
func literalNode(v Value) (*Node, error) {
	switch v.Kind {
	case ValueString:
		return &Node{Kind: KindString, Literal: &v}, nil
	case ValueNumeric:
		return &Node{Kind: KindNumber, Literal: &v}, nil
	case ValueBoolean:
		return &Node{Kind: KindBoolean, Literal: &v}, nil
	default:
		return nil, errors.New("literal types must be strings, numbers or booleans")
	}
}
