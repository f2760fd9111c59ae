// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package graph models the typed schema graph that zodgen translates.
//
// A graph is produced by an upstream compiler and handed to zodgen either as
// a graph document (YAML or JSON) or as a JSON Schema imported by the
// jschema package. Nodes are shared: the same *Node may be reachable from
// many places and may take part in cycles.
package graph

// Kind discriminates the node variants of the graph.
type Kind int

// Node kinds.
const (
	KindIntrinsic Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindScalar
	KindModel
	KindUnion
	KindEnum
	KindEnumMember
	KindTuple
	KindModelProperty
	KindUnionVariant
	KindNamespace
	KindInterface
	KindOperation
)

var kindNames = map[Kind]string{
	KindIntrinsic:     "Intrinsic",
	KindString:        "String",
	KindNumber:        "Number",
	KindBoolean:       "Boolean",
	KindScalar:        "Scalar",
	KindModel:         "Model",
	KindUnion:         "Union",
	KindEnum:          "Enum",
	KindEnumMember:    "EnumMember",
	KindTuple:         "Tuple",
	KindModelProperty: "ModelProperty",
	KindUnionVariant:  "UnionVariant",
	KindNamespace:     "Namespace",
	KindInterface:     "Interface",
	KindOperation:     "Operation",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Indexer describes the element shape of array- and record-like models.
// A nil Key means the model is array-shaped.
type Indexer struct {
	Key   *Node
	Value *Node
}

// Encoding is the wire encoding attached to a scalar (e.g. a date-time
// serialized as a unix timestamp).
type Encoding struct {
	Name string
	Type *Node
}

// Discriminator configures a discriminated union.
type Discriminator struct {
	Property         string
	Envelope         string
	EnvelopeProperty string
}

// Envelope styles for discriminated unions.
const (
	EnvelopeObject = "object"
	EnvelopeNone   = "none"
)

// DefaultDiscriminator returns the discriminator settings used when a union
// is marked discriminated without further options.
func DefaultDiscriminator() Discriminator {
	return Discriminator{
		Property:         "kind",
		Envelope:         EnvelopeObject,
		EnvelopeProperty: "value",
	}
}

// Decorators holds the constraint and documentation annotations of a node.
// Unset fields are nil or empty.
type Decorators struct {
	Doc               string  `yaml:"doc,omitempty"`
	MinLength         *int64  `yaml:"minLength,omitempty"`
	MaxLength         *int64  `yaml:"maxLength,omitempty"`
	MinItems          *int64  `yaml:"minItems,omitempty"`
	MaxItems          *int64  `yaml:"maxItems,omitempty"`
	MinValue          *Number `yaml:"minValue,omitempty"`
	MinValueExclusive *Number `yaml:"minValueExclusive,omitempty"`
	MaxValue          *Number `yaml:"maxValue,omitempty"`
	MaxValueExclusive *Number `yaml:"maxValueExclusive,omitempty"`
	Pattern           string  `yaml:"pattern,omitempty"`
	Format            string  `yaml:"format,omitempty"`
}

// Node is a single vertex of the schema graph. Which fields are meaningful
// depends on Kind.
type Node struct {
	Kind    Kind
	Name    string
	BuiltIn bool

	// Base is the parent scalar or model.
	Base *Node

	// Properties are the ordered ModelProperty nodes of a model.
	Properties []*Node
	Indexer    *Indexer

	// Variants are the UnionVariant nodes of a union.
	Variants      []*Node
	Discriminator *Discriminator

	// Members are the EnumMember nodes of an enum; Parent links a member
	// back to its enum.
	Members []*Node
	Parent  *Node

	// Elements are the tuple element types.
	Elements []*Node

	// Type is the target of a ModelProperty or UnionVariant.
	Type     *Node
	Optional bool
	Default  *Value

	// Literal is the value of String, Number and Boolean literal nodes and
	// of enum members that declare one.
	Literal *Value

	Decorators Decorators
	Encoding   *Encoding
}

// StdBase returns the first built-in scalar on the base chain of n,
// including n itself. It returns nil for non-scalars and for scalars with no
// built-in ancestor.
func StdBase(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Base {
		if cur.Kind != KindScalar {
			return nil
		}
		if cur.BuiltIn {
			return cur
		}
	}
	return nil
}

// Extends reports whether n or one of its ancestors is the built-in scalar
// with the given name.
func Extends(n *Node, name string) bool {
	for cur := n; cur != nil; cur = cur.Base {
		if cur.BuiltIn && cur.Name == name {
			return true
		}
	}
	return false
}

// BaseChain returns n followed by its ancestors, most derived first.
func BaseChain(n *Node) []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.Base {
		chain = append(chain, cur)
	}
	return chain
}

// IsArrayShaped reports whether n is a model with an integer-keyed indexer.
func IsArrayShaped(n *Node) bool {
	return n != nil && n.Kind == KindModel && n.Indexer != nil && n.Indexer.Key == nil
}

// IsRecordShaped reports whether n is a model whose indexer key is the
// built-in string scalar.
func IsRecordShaped(n *Node) bool {
	if n == nil || n.Kind != KindModel || n.Indexer == nil || n.Indexer.Key == nil {
		return false
	}
	key := n.Indexer.Key
	return key.BuiltIn && key.Kind == KindScalar && key.Name == "string"
}
