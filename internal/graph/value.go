// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package graph

import (
	"math"
	"math/big"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Number is an exact numeric value that remembers how it was written.
// The zero value is not a valid number.
type Number struct {
	rat  *big.Rat
	text string
}

// ParseNumber parses a decimal, exponent or prefixed integer literal.
func ParseNumber(s string) (Number, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Number{}, errors.Newf("invalid number %q", s)
	}
	return Number{rat: r, text: s}, nil
}

// MustParseNumber is like ParseNumber but panics on malformed input. It is
// meant for constants.
func MustParseNumber(s string) Number {
	n, err := ParseNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

// NumberFromInt returns the Number for v.
func NumberFromInt(v int64) Number {
	return Number{rat: new(big.Rat).SetInt64(v), text: strconv.FormatInt(v, 10)}
}

// NumberFromFloat returns the Number for f rendered the way JavaScript
// prints numbers. NaN and infinities are not representable and yield an
// invalid Number.
func NumberFromFloat(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	r, _ := new(big.Rat).SetString(formatFloat(f))
	return Number{rat: r, text: formatFloat(f)}
}

func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Valid reports whether n holds a value.
func (n Number) Valid() bool { return n.rat != nil }

// Cmp compares n and o.
func (n Number) Cmp(o Number) int { return n.rat.Cmp(o.rat) }

// IsZero reports whether n equals zero.
func (n Number) IsZero() bool { return n.rat != nil && n.rat.Sign() == 0 }

// IsInt reports whether n is an integer.
func (n Number) IsInt() bool { return n.rat != nil && n.rat.IsInt() }

// IntString returns the canonical decimal form of an integral n.
func (n Number) IntString() (string, bool) {
	if !n.IsInt() {
		return "", false
	}
	return n.rat.Num().String(), true
}

// String returns the source text of n.
func (n Number) String() string { return n.text }

// UnmarshalYAML decodes a numeric scalar keeping full precision.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: expected a number", node.Line)
	}
	parsed, err := ParseNumber(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*n = parsed
	return nil
}

// MinNumber returns the smaller of a and b, treating nil as absent.
func MinNumber(a, b *Number) *Number {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Cmp(*a) < 0:
		return b
	default:
		return a
	}
}

// MaxNumber returns the larger of a and b, treating nil as absent.
func MaxNumber(a, b *Number) *Number {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Cmp(*a) > 0:
		return b
	default:
		return a
	}
}

// ValueKind discriminates Value variants.
type ValueKind int

// Value kinds.
const (
	ValueString ValueKind = iota
	ValueNumeric
	ValueBoolean
	ValueNull
	ValueArray
	ValueScalar
	ValueObject
)

// Value is a literal value used for defaults, literal types and enum
// members.
type Value struct {
	Kind  ValueKind
	Str   string
	Num   Number
	Bool  bool
	Items []Value

	// Scalar constructor call, e.g. utcDateTime.fromISO("...").
	Scalar      string
	Constructor string
	Args        []Value
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumericValue returns a numeric Value.
func NumericValue(n Number) Value { return Value{Kind: ValueNumeric, Num: n} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

// NullValue returns the null Value.
func NullValue() Value { return Value{Kind: ValueNull} }

// UnmarshalYAML decodes a value. Scalars map to string, numeric, boolean
// and null values by their YAML tag, sequences to arrays, and mappings to
// scalar constructor calls. Other mappings decode to object values, which
// the translator rejects.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return v.decodeScalar(node)
	case yaml.SequenceNode:
		items := make([]Value, len(node.Content))
		for i, item := range node.Content {
			if err := items[i].UnmarshalYAML(item); err != nil {
				return err
			}
		}
		*v = Value{Kind: ValueArray, Items: items}
		return nil
	case yaml.MappingNode:
		var call struct {
			FromISO     *string `yaml:"fromISO"`
			Scalar      string  `yaml:"scalar"`
			Constructor string  `yaml:"constructor"`
			Args        []Value `yaml:"args"`
		}
		if err := node.Decode(&call); err != nil {
			return err
		}
		switch {
		case call.FromISO != nil:
			*v = Value{Kind: ValueScalar, Scalar: call.Scalar, Constructor: "fromISO", Args: []Value{StringValue(*call.FromISO)}}
		case call.Constructor != "":
			*v = Value{Kind: ValueScalar, Scalar: call.Scalar, Constructor: call.Constructor, Args: call.Args}
		default:
			*v = Value{Kind: ValueObject}
		}
		return nil
	case yaml.AliasNode:
		return v.UnmarshalYAML(node.Alias)
	default:
		return errors.Newf("line %d: unsupported value", node.Line)
	}
}

func (v *Value) decodeScalar(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		*v = NullValue()
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case "!!int", "!!float":
		n, err := ParseNumber(node.Value)
		if err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		*v = NumericValue(n)
	default:
		*v = StringValue(node.Value)
	}
	return nil
}
