// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dacolabs/zodgen/internal/graph"
)

// value renders a literal value. Integers get the bigint suffix when
// bigint is set.
func (b *Builder) value(v graph.Value, bigint bool) (Expr, error) {
	switch v.Kind {
	case graph.ValueString:
		return Raw{Text: Quote(v.Str)}, nil
	case graph.ValueNumeric:
		return Raw{Text: numberText(v.Num, bigint)}, nil
	case graph.ValueBoolean:
		return Raw{Text: strconv.FormatBool(v.Bool)}, nil
	case graph.ValueNull:
		return Raw{Text: "null"}, nil
	case graph.ValueArray:
		elems := make([]Expr, 0, len(v.Items))
		for _, item := range v.Items {
			x, err := b.value(item, bigint)
			if err != nil {
				return nil, err
			}
			elems = append(elems, x)
		}
		return Array{Elems: elems}, nil
	case graph.ValueScalar:
		if v.Constructor == "fromISO" && len(v.Args) == 1 && v.Args[0].Kind == graph.ValueString {
			return Raw{Text: Quote(v.Args[0].Str)}, nil
		}
		return nil, errors.Wrapf(ErrUnsupportedValue, "unsupported scalar constructor %q", v.Constructor)
	default:
		return nil, errors.Wrap(ErrUnsupportedValue, "unsupported default value kind")
	}
}

func numberText(n graph.Number, bigint bool) string {
	if bigint {
		if s, ok := n.IntString(); ok {
			return s + "n"
		}
	}
	return n.String()
}

func intRaw(v int64) Raw {
	return Raw{Text: strconv.FormatInt(v, 10)}
}

// memberLiteral renders an enum member's value, or its name when it has
// none.
func memberLiteral(m *graph.Node) Expr {
	if m.Literal == nil {
		return Raw{Text: Quote(m.Name)}
	}
	switch m.Literal.Kind {
	case graph.ValueNumeric:
		return Raw{Text: m.Literal.Num.String()}
	case graph.ValueString:
		return Raw{Text: Quote(m.Literal.Str)}
	default:
		return Raw{Text: Quote(m.Name)}
	}
}

// Quote renders s as a double-quoted TypeScript string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			sb.WriteString(`\u`)
			sb.WriteString(strconv.FormatInt(int64(r), 16))
		default:
			if r < 0x20 {
				sb.WriteString(`\u00`)
				if r < 0x10 {
					sb.WriteByte('0')
				}
				sb.WriteString(strconv.FormatInt(int64(r), 16))
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
