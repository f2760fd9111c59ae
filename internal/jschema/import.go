// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"path"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/go-openapi/inflect"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dacolabs/zodgen/internal/graph"
)

var (
	// ErrUnsupportedRef indicates a $ref that does not name a local definition.
	ErrUnsupportedRef = errors.New("unsupported $ref")

	// ErrUnsupportedSchema indicates a schema shape with no graph equivalent.
	ErrUnsupportedSchema = errors.New("unsupported schema")
)

// RootName derives the declaration name of a root schema from its file name.
func RootName(filePath string) string {
	base := path.Base(filePath)
	return ToPascalCase(strings.TrimSuffix(base, path.Ext(base)))
}

// ToPascalCase joins the alphanumeric runs of s, capitalizing each.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(inflect.Capitalize(p))
	}
	return b.String()
}

// Import converts a schema into a graph document. Each definition becomes a
// declaration in source order. The root becomes a model named rootName when
// it describes an object. External file refs must be resolved beforehand.
func Import(root *Schema, order *Order, rootName string) (*graph.Document, error) {
	im := &importer{
		order: order,
		defs:  defsOf(root),
		doc:   &graph.Document{},
		used:  make(map[string]bool),
	}
	names := order.Defs(root)
	for _, name := range names {
		im.used[name] = true
	}
	for _, name := range names {
		if err := im.declare(name, im.defs[name]); err != nil {
			return nil, errors.Wrapf(err, "$defs/%s", name)
		}
	}
	if isObject(root) {
		if rootName == "" {
			rootName = "Root"
		}
		if err := im.declare(im.unique(rootName), root); err != nil {
			return nil, errors.Wrapf(err, "%s", rootName)
		}
	}
	return im.doc, nil
}

type importer struct {
	order *Order
	defs  map[string]*Schema
	doc   *graph.Document
	used  map[string]bool
}

// unique returns name, or name with the first free numeric suffix.
func (im *importer) unique(name string) string {
	candidate := name
	for i := 2; im.used[candidate]; i++ {
		candidate = name + strconv.Itoa(i)
	}
	im.used[candidate] = true
	return candidate
}

func (im *importer) declare(name string, s *Schema) error {
	switch {
	case s.Ref != "":
		return im.declareAlias(name, s)
	case s.Const != nil || len(s.Enum) > 0:
		return im.declareEnum(name, s)
	case len(s.AnyOf) > 0 || len(s.OneOf) > 0 || len(s.Types) > 0:
		variants, err := im.variants(name, s)
		if err != nil {
			return err
		}
		u := graph.UnionDecl{Name: name, Doc: s.Description}
		for _, v := range variants {
			u.Variants = append(u.Variants, graph.VariantDecl{Type: v})
		}
		im.doc.Unions = append(im.doc.Unions, u)
		return nil
	case isArray(s):
		t, dec, err := im.typeRef(name, s)
		if err != nil {
			return err
		}
		if t.Tuple != nil {
			im.doc.Unions = append(im.doc.Unions, graph.UnionDecl{Name: name, Doc: s.Description,
				Variants: []graph.VariantDecl{{Type: t}}})
			return nil
		}
		dec.Doc = s.Description
		im.doc.Models = append(im.doc.Models, graph.ModelDecl{Name: name, Is: &t, Decorators: dec})
		return nil
	case isObject(s) || len(s.AllOf) > 0:
		m, err := im.model(name, s)
		if err != nil {
			return err
		}
		im.doc.Models = append(im.doc.Models, m)
		return nil
	}
	if base := stdType(s); base != "" && base != "unknown" {
		dec := constraintsOf(s)
		dec.Doc = s.Description
		im.doc.Scalars = append(im.doc.Scalars, graph.ScalarDecl{Name: name, Extends: base, Decorators: dec})
		return nil
	}
	return errors.WithHint(errors.Wrap(ErrUnsupportedSchema, "no type"),
		"give the definition a type, an enum or a $ref")
}

// declareAlias declares name as a copy of the definition s refers to.
func (im *importer) declareAlias(name string, s *Schema) error {
	target, _, err := im.typeRef(name, s)
	if err != nil {
		return err
	}
	switch t := im.defs[target.Name]; {
	case isObject(t) && t.Ref == "":
		im.doc.Models = append(im.doc.Models, graph.ModelDecl{Name: name, Is: &target,
			Decorators: graph.Decorators{Doc: s.Description}})
	case t.Ref == "" && stdType(t) != "" && stdType(t) != "unknown" && !isArray(t):
		dec := constraintsOf(s)
		dec.Doc = s.Description
		im.doc.Scalars = append(im.doc.Scalars, graph.ScalarDecl{Name: name, Extends: target.Name, Decorators: dec})
	default:
		im.doc.Unions = append(im.doc.Unions, graph.UnionDecl{Name: name, Doc: s.Description,
			Variants: []graph.VariantDecl{{Type: target}}})
	}
	return nil
}

// declareEnum declares an enum when every value is a string, or every value
// is a number, and a union of literals otherwise.
func (im *importer) declareEnum(name string, s *Schema) error {
	values, err := enumValues(s)
	if err != nil {
		return err
	}
	kind := values[0].Kind
	same := kind == graph.ValueString || kind == graph.ValueNumeric
	for _, v := range values {
		same = same && v.Kind == kind
	}
	if !same {
		u := graph.UnionDecl{Name: name, Doc: s.Description}
		for _, v := range values {
			u.Variants = append(u.Variants, graph.VariantDecl{Type: graph.TypeRef{Literal: &v}})
		}
		im.doc.Unions = append(im.doc.Unions, u)
		return nil
	}
	e := graph.EnumDecl{Name: name, Doc: s.Description}
	for _, v := range values {
		if v.Kind == graph.ValueString {
			e.Members = append(e.Members, graph.EnumMemberDecl{Name: v.Str})
			continue
		}
		e.Members = append(e.Members, graph.EnumMemberDecl{Name: "v" + v.Num.String(), Value: &v})
	}
	im.doc.Enums = append(im.doc.Enums, e)
	return nil
}

func (im *importer) model(name string, s *Schema) (graph.ModelDecl, error) {
	m := graph.ModelDecl{Name: name, Decorators: graph.Decorators{Doc: s.Description}}
	for _, part := range s.AllOf {
		switch {
		case part.Ref != "":
			if m.Extends != nil {
				return m, errors.WithHint(errors.Wrap(ErrUnsupportedSchema, "allOf with more than one $ref"),
					"a model extends at most one base")
			}
			base, _, err := im.typeRef(name, part)
			if err != nil {
				return m, err
			}
			m.Extends = &base
		case isObject(part):
			props, err := im.properties(name, part)
			if err != nil {
				return m, err
			}
			m.Properties = append(m.Properties, props...)
		default:
			return m, errors.Wrap(ErrUnsupportedSchema, "allOf member is neither a $ref nor an object")
		}
	}
	props, err := im.properties(name, s)
	if err != nil {
		return m, err
	}
	m.Properties = append(m.Properties, props...)

	if ap := s.AdditionalProperties; ap != nil && !isFalse(ap) {
		value, err := im.inlineRef(name+"Value", ap)
		if err != nil {
			return m, err
		}
		m.Is = &graph.TypeRef{Record: &value}
	}
	return m, nil
}

func (im *importer) properties(owner string, s *Schema) ([]graph.PropertyDecl, error) {
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	var out []graph.PropertyDecl
	for _, key := range im.order.Properties(s) {
		ps := s.Properties[key]
		t, dec, err := im.typeRef(owner+ToPascalCase(key), ps)
		if err != nil {
			return nil, errors.Wrapf(err, "property %s", key)
		}
		dec.Doc = ps.Description
		p := graph.PropertyDecl{Name: key, Type: t, Optional: !required[key], Decorators: dec}
		if len(ps.Default) > 0 {
			v, err := decodeValue(ps.Default)
			if err != nil {
				return nil, errors.Wrapf(err, "property %s default", key)
			}
			p.Default = &v
		}
		out = append(out, p)
	}
	return out, nil
}

// inlineRef is typeRef for positions that cannot carry decorators. A schema
// with constraints is hoisted into its own declaration named after hint.
func (im *importer) inlineRef(hint string, s *Schema) (graph.TypeRef, error) {
	t, dec, err := im.typeRef(hint, s)
	if err != nil {
		return t, err
	}
	if dec == (graph.Decorators{}) {
		return t, nil
	}
	return im.hoist(hint, s)
}

func (im *importer) hoist(hint string, s *Schema) (graph.TypeRef, error) {
	name := im.unique(hint)
	if err := im.declare(name, s); err != nil {
		return graph.TypeRef{}, err
	}
	return graph.TypeRef{Name: name}, nil
}

// typeRef maps s to a type reference. The returned decorators hold the
// constraints of s that the reference itself cannot express.
func (im *importer) typeRef(hint string, s *Schema) (graph.TypeRef, graph.Decorators, error) {
	switch {
	case s.Ref != "":
		name := DefName(s.Ref)
		if name == "" {
			return graph.TypeRef{}, graph.Decorators{}, errors.WithHint(errors.Wrapf(ErrUnsupportedRef, "%q", s.Ref),
				"only #/$defs/... and #/definitions/... refs are supported")
		}
		if _, ok := im.defs[name]; !ok {
			return graph.TypeRef{}, graph.Decorators{}, errors.Wrapf(ErrUnsupportedRef, "%q names no definition", s.Ref)
		}
		return graph.TypeRef{Name: name}, constraintsOf(s), nil

	case s.Const != nil || len(s.Enum) > 0:
		values, err := enumValues(s)
		if err != nil {
			return graph.TypeRef{}, graph.Decorators{}, err
		}
		if len(values) == 1 {
			return graph.TypeRef{Literal: &values[0]}, graph.Decorators{}, nil
		}
		var u []graph.TypeRef
		for _, v := range values {
			u = append(u, graph.TypeRef{Literal: &v})
		}
		return graph.TypeRef{Union: u}, graph.Decorators{}, nil

	case len(s.AnyOf) > 0 || len(s.OneOf) > 0 || len(s.Types) > 0:
		variants, err := im.variants(hint, s)
		if err != nil {
			return graph.TypeRef{}, graph.Decorators{}, err
		}
		if len(variants) == 1 {
			return variants[0], graph.Decorators{}, nil
		}
		return graph.TypeRef{Union: variants}, graph.Decorators{}, nil

	case len(s.AllOf) == 1 && !isObject(s):
		return im.typeRef(hint, s.AllOf[0])

	case len(s.AllOf) > 0:
		t, err := im.hoist(hint, s)
		return t, graph.Decorators{}, err

	case isArray(s):
		dec := graph.Decorators{MinItems: int64Ptr(s.MinItems), MaxItems: int64Ptr(s.MaxItems)}
		if len(s.PrefixItems) > 0 {
			var elems []graph.TypeRef
			for i, item := range s.PrefixItems {
				e, err := im.inlineRef(hint+"Item"+strconv.Itoa(i), item)
				if err != nil {
					return graph.TypeRef{}, graph.Decorators{}, err
				}
				elems = append(elems, e)
			}
			return graph.TypeRef{Tuple: elems}, graph.Decorators{}, nil
		}
		elem := graph.TypeRef{Name: "unknown"}
		if s.Items != nil {
			var err error
			if elem, err = im.inlineRef(hint+"Item", s.Items); err != nil {
				return graph.TypeRef{}, graph.Decorators{}, err
			}
		}
		return graph.TypeRef{Array: &elem}, dec, nil

	case isObject(s):
		ap := s.AdditionalProperties
		hasAP := ap != nil && !isFalse(ap)
		switch {
		case len(s.Properties) == 0 && hasAP:
			value, err := im.inlineRef(hint+"Value", ap)
			if err != nil {
				return graph.TypeRef{}, graph.Decorators{}, err
			}
			return graph.TypeRef{Record: &value}, graph.Decorators{}, nil
		case hasAP:
			t, err := im.hoist(hint, s)
			return t, graph.Decorators{}, err
		}
		props, err := im.properties(hint, s)
		if err != nil {
			return graph.TypeRef{}, graph.Decorators{}, err
		}
		if props == nil {
			props = []graph.PropertyDecl{}
		}
		return graph.TypeRef{Object: props}, graph.Decorators{}, nil
	}
	return graph.TypeRef{Name: stdType(s)}, constraintsOf(s), nil
}

// variants maps anyOf, oneOf and type lists to union variants.
func (im *importer) variants(hint string, s *Schema) ([]graph.TypeRef, error) {
	var out []graph.TypeRef
	for _, group := range [][]*Schema{s.AnyOf, s.OneOf} {
		for _, v := range group {
			t, err := im.inlineRef(hint+"Variant"+strconv.Itoa(len(out)), v)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	for _, typ := range s.Types {
		if typ == "null" {
			out = append(out, graph.TypeRef{Name: "null"})
			continue
		}
		one := *s
		one.Types = nil
		one.Type = typ
		one.Description = ""
		t, err := im.inlineRef(hint+ToPascalCase(typ), &one)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// stdType maps a primitive schema type to a std scalar or intrinsic name.
func stdType(s *Schema) string {
	switch s.Type {
	case "string":
		return "string"
	case "boolean":
		return "boolean"
	case "null":
		return "null"
	case "integer":
		switch s.Format {
		case "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64":
			return s.Format
		}
		return "safeint"
	case "number":
		if s.Format == "float" {
			return "float32"
		}
		return "float64"
	}
	return "unknown"
}

// constraintsOf collects the validation keywords of s as decorators.
func constraintsOf(s *Schema) graph.Decorators {
	d := graph.Decorators{
		MinLength:         int64Ptr(s.MinLength),
		MaxLength:         int64Ptr(s.MaxLength),
		MinItems:          int64Ptr(s.MinItems),
		MaxItems:          int64Ptr(s.MaxItems),
		MinValue:          numberPtr(s.Minimum),
		MinValueExclusive: numberPtr(s.ExclusiveMinimum),
		MaxValue:          numberPtr(s.Maximum),
		MaxValueExclusive: numberPtr(s.ExclusiveMaximum),
		Pattern:           s.Pattern,
	}
	if s.Type == "string" {
		d.Format = s.Format
	}
	return d
}

func enumValues(s *Schema) ([]graph.Value, error) {
	raw := s.Enum
	if s.Const != nil {
		raw = []any{*s.Const}
	}
	out := make([]graph.Value, 0, len(raw))
	for _, x := range raw {
		data, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(data)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeValue parses a JSON value into a graph value.
func decodeValue(data []byte) (graph.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return graph.Value{}, err
	}
	if len(node.Content) == 0 {
		return graph.Value{}, errors.New("empty value")
	}
	var v graph.Value
	if err := v.UnmarshalYAML(node.Content[0]); err != nil {
		return graph.Value{}, err
	}
	return v, nil
}

func isObject(s *Schema) bool {
	return s.Type == "object" || (s.Type == "" && len(s.Types) == 0 && len(s.Properties) > 0)
}

func isArray(s *Schema) bool {
	return s.Type == "array" || (s.Type == "" && len(s.Types) == 0 && (s.Items != nil || len(s.PrefixItems) > 0))
}

// isFalse reports whether s is the boolean schema false.
func isFalse(s *Schema) bool {
	return reflect.DeepEqual(s, &Schema{Not: &Schema{}})
}

func int64Ptr(p *int) *int64 {
	if p == nil {
		return nil
	}
	v := int64(*p)
	return &v
}

func numberPtr(p *float64) *graph.Number {
	if p == nil {
		return nil
	}
	n := graph.NumberFromFloat(*p)
	if !n.Valid() {
		return nil
	}
	return &n
}
