// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dacolabs/zodgen/internal/graph"
)

// bounds is a set of numeric limits. At most one of min/minExclusive and
// one of max/maxExclusive survive reconciliation.
type bounds struct {
	min          *graph.Number
	minExclusive *graph.Number
	max          *graph.Number
	maxExclusive *graph.Number
	safe         bool
}

func num(s string) *graph.Number {
	n := graph.MustParseNumber(s)
	return &n
}

// intrinsicBounds are the ranges implied by the std numeric types.
var intrinsicBounds = map[string]bounds{
	"int8":    {min: num("-128"), max: num("127")},
	"int16":   {min: num("-32768"), max: num("32767")},
	"int32":   {min: num("-2147483648"), max: num("2147483647")},
	"int64":   {min: num("-9223372036854775808"), max: num("9223372036854775807")},
	"uint8":   {min: num("0"), max: num("255")},
	"uint16":  {min: num("0"), max: num("65535")},
	"uint32":  {min: num("0"), max: num("4294967295")},
	"uint64":  {min: num("0"), max: num("18446744073709551615")},
	"float32": {min: num("-3.4028235e+38"), max: num("3.4028235e+38")},
	"safeint": {safe: true},
}

// constraintMethods maps bound names to zod methods.
var constraintMethods = map[string]string{
	"min":          "gte",
	"max":          "lte",
	"minExclusive": "gt",
	"maxExclusive": "lt",
}

func constraintMethod(name string) (string, error) {
	m, ok := constraintMethods[name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownConstraint, "%q", name)
	}
	return m, nil
}

// formatMethods maps format names that are not zod method names.
var formatMethods = map[string]string{
	"date-time": "datetime",
	"uri":       "url",
	"ipv4":      "ip",
	"ipv6":      "ip",
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// constraintSources lists the nodes whose decorators apply to t, most
// specific first. Referenced types only contribute the member.
func constraintSources(t, member *graph.Node, inline bool) []*graph.Node {
	var sources []*graph.Node
	if member != nil {
		sources = append(sources, member)
	}
	if inline {
		sources = append(sources, graph.BaseChain(t)...)
	}
	return sources
}

// constraints builds the constraint fragment for t selected by its
// underlying class. inline is false when t is emitted as a reference, in
// which case the declaration already carries t's own constraints.
func (b *Builder) constraints(t, member *graph.Node, inline bool) ([]Expr, error) {
	sources := constraintSources(t, member, inline)
	switch {
	case t.Kind == graph.KindScalar:
		if c := encodedCarrier(t); c != nil {
			if !inline || !graph.Extends(c, "numeric") {
				return nil, nil
			}
			return numericConstraints(nil, intrinsicBounds[graph.StdBase(c).Name], isBigint(c))
		}
		switch {
		case graph.Extends(t, "numeric"):
			var intrinsic bounds
			if inline {
				intrinsic = intrinsicBounds[graph.StdBase(t).Name]
			}
			return numericConstraints(sources, intrinsic, isBigint(t))
		case graph.Extends(t, "string"):
			return stringConstraints(sources), nil
		}
	case graph.IsArrayShaped(t):
		return arrayConstraints(sources), nil
	}
	return nil, nil
}

// decoratorBounds narrows the numeric decorators of all sources.
func decoratorBounds(sources []*graph.Node) bounds {
	var d bounds
	for _, s := range sources {
		dec := s.Decorators
		d.min = graph.MaxNumber(d.min, dec.MinValue)
		d.minExclusive = graph.MaxNumber(d.minExclusive, dec.MinValueExclusive)
		d.max = graph.MinNumber(d.max, dec.MaxValue)
		d.maxExclusive = graph.MinNumber(d.maxExclusive, dec.MaxValueExclusive)
	}
	return d
}

// reconcile merges decorator bounds with the intrinsic range of the type,
// keeping the tighter bound on each side.
func reconcile(intrinsic, d bounds) bounds {
	if d.min != nil && d.minExclusive != nil {
		if d.minExclusive.Cmp(*d.min) > 0 {
			d.min = nil
		} else {
			d.minExclusive = nil
		}
	}
	if d.max != nil && d.maxExclusive != nil {
		if d.maxExclusive.Cmp(*d.max) < 0 {
			d.max = nil
		} else {
			d.maxExclusive = nil
		}
	}

	out := bounds{safe: intrinsic.safe, minExclusive: d.minExclusive, maxExclusive: d.maxExclusive}

	switch {
	case intrinsic.min == nil:
		out.min = d.min
	case d.min != nil:
		if intrinsic.min.Cmp(*d.min) > 0 {
			out.min = intrinsic.min
		} else {
			out.min = d.min
		}
	case d.minExclusive != nil:
		if intrinsic.min.Cmp(*d.minExclusive) > 0 {
			out.min = intrinsic.min
			out.minExclusive = nil
		}
	default:
		out.min = intrinsic.min
	}

	switch {
	case intrinsic.max == nil:
		out.max = d.max
	case d.max != nil:
		if intrinsic.max.Cmp(*d.max) < 0 {
			out.max = intrinsic.max
		} else {
			out.max = d.max
		}
	case d.maxExclusive != nil:
		if intrinsic.max.Cmp(*d.maxExclusive) < 0 {
			out.max = intrinsic.max
			out.maxExclusive = nil
		}
	default:
		out.max = intrinsic.max
	}
	return out
}

func numericConstraints(sources []*graph.Node, intrinsic bounds, bigint bool) ([]Expr, error) {
	final := reconcile(intrinsic, decoratorBounds(sources))

	var out []Expr
	if final.safe {
		out = append(out, call("safe"))
	}
	slots := []struct {
		name string
		v    *graph.Number
	}{
		{"min", final.min},
		{"minExclusive", final.minExclusive},
		{"max", final.max},
		{"maxExclusive", final.maxExclusive},
	}
	for _, s := range slots {
		if s.v == nil {
			continue
		}
		if s.name == "min" && s.v.IsZero() {
			out = append(out, call("nonnegative"))
			continue
		}
		method, err := constraintMethod(s.name)
		if err != nil {
			return nil, err
		}
		out = append(out, call(method, Raw{Text: numberText(*s.v, bigint)}))
	}
	return out, nil
}

func stringConstraints(sources []*graph.Node) []Expr {
	var (
		minLen, maxLen  *int64
		pattern, format string
	)
	for _, s := range sources {
		dec := s.Decorators
		minLen = maxInt(minLen, dec.MinLength)
		maxLen = minInt(maxLen, dec.MaxLength)
		if pattern == "" {
			pattern = dec.Pattern
		}
		if format == "" {
			format = dec.Format
		}
	}

	var out []Expr
	if minLen != nil && *minLen != 0 {
		out = append(out, call("min", intRaw(*minLen)))
	}
	if maxLen != nil {
		out = append(out, call("max", intRaw(*maxLen)))
	}
	if pattern != "" {
		out = append(out, call("regex", Raw{Text: regexLiteral(pattern)}))
	}
	if method := formatMethod(format); method != "" {
		out = append(out, call(method))
	}
	return out
}

// formatMethod returns the zod method for a string format, or "" when the
// format has no usable method name.
func formatMethod(format string) string {
	if m, ok := formatMethods[format]; ok {
		return m
	}
	if identRe.MatchString(format) {
		return format
	}
	return ""
}

func regexLiteral(pattern string) string {
	var sb strings.Builder
	sb.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '/':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('/')
	return sb.String()
}

func arrayConstraints(sources []*graph.Node) []Expr {
	var minItems, maxItems *int64
	for _, s := range sources {
		minItems = maxInt(minItems, s.Decorators.MinItems)
		maxItems = minInt(maxItems, s.Decorators.MaxItems)
	}
	var out []Expr
	if minItems != nil && *minItems > 0 {
		out = append(out, call("min", intRaw(*minItems)))
	}
	if maxItems != nil && *maxItems > 0 {
		out = append(out, call("max", intRaw(*maxItems)))
	}
	return out
}

func minInt(a, b *int64) *int64 {
	if a == nil || (b != nil && *b < *a) {
		return b
	}
	return a
}

func maxInt(a, b *int64) *int64 {
	if a == nil || (b != nil && *b > *a) {
		return b
	}
	return a
}

// describeSources lists the nodes whose doc may describe n. Scalars
// inherit docs from user-declared ancestors.
func describeSources(n *graph.Node) []*graph.Node {
	if n.Kind == graph.KindScalar {
		return graph.BaseChain(n)
	}
	return []*graph.Node{n}
}

var newlines = regexp.MustCompile(`\s*\n\s*`)

// describe returns the describe call for the first documented
// user-declared source.
func describe(sources []*graph.Node) []Expr {
	for _, s := range sources {
		if s == nil || s.BuiltIn {
			continue
		}
		doc := strings.TrimSpace(newlines.ReplaceAllString(s.Decorators.Doc, " "))
		if doc != "" {
			return []Expr{call("describe", Raw{Text: Quote(doc)})}
		}
	}
	return nil
}
