// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package render serializes planned zod declarations into a TypeScript
// module.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dacolabs/zodgen/internal/zod"
)

// maxInlineWidth is the widest array literal kept on one line.
const maxInlineWidth = 80

const indentUnit = "  "

// Options configures file rendering.
type Options struct {
	Naming NamingStyle

	// EmitInfer adds a `z.infer` type alias after each declaration.
	EmitInfer bool
}

// Source renders a complete module for decls.
func Source(decls []zod.Declaration, opts Options) []byte {
	namer := NewNamer(opts.Naming)
	ids := make([]string, len(decls))
	for i, d := range decls {
		ids[i] = namer.Declare(d.Node)
	}
	// Type aliases live in the type namespace and keep the node name.
	types := NewNamer(NamingDefault)

	p := &printer{names: namer}
	var buf bytes.Buffer
	buf.WriteString("import { z } from \"zod\";\n")
	for i, d := range decls {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "export const %s = %s;\n", ids[i], p.expr(d.Expr, 0))
		if opts.EmitInfer {
			fmt.Fprintf(&buf, "export type %s = z.infer<typeof %s>;\n", types.Declare(d.Node), ids[i])
		}
	}
	return buf.Bytes()
}

// Expression renders a single expression. References resolve through
// names.
func Expression(e zod.Expr, names *Namer) string {
	return (&printer{names: names}).expr(e, 0)
}

type printer struct {
	names *Namer
}

func pad(indent int) string {
	return strings.Repeat(indentUnit, indent)
}

func (p *printer) expr(e zod.Expr, indent int) string {
	switch x := e.(type) {
	case zod.Ident:
		return x.Name
	case zod.Raw:
		return x.Text
	case zod.Ref:
		return p.names.Name(x.Node)
	case zod.Lazy:
		return "z.lazy(() => " + p.names.Name(x.Target) + ")"
	case zod.Call:
		return x.Name + p.args(x.Args, indent)
	case zod.Chain:
		parts := make([]string, len(x.Parts))
		for i, part := range x.Parts {
			parts[i] = p.expr(part, indent)
		}
		return strings.Join(parts, ".")
	case zod.Object:
		return p.object(x, indent)
	case zod.Array:
		return p.array(x, indent)
	default:
		return ""
	}
}

// args keeps arguments on one line unless several arguments are given and
// one of them spans lines.
func (p *printer) args(args []zod.Expr, indent int) string {
	out := make([]string, len(args))
	multiline := false
	for i, a := range args {
		out[i] = p.expr(a, indent)
		multiline = multiline || strings.Contains(out[i], "\n")
	}
	if !multiline || len(args) < 2 {
		return "(" + strings.Join(out, ", ") + ")"
	}
	for i, a := range args {
		out[i] = p.expr(a, indent+1)
	}
	inner := pad(indent + 1)
	return "(\n" + inner + strings.Join(out, ",\n"+inner) + "\n" + pad(indent) + ")"
}

func (p *printer) object(o zod.Object, indent int) string {
	if len(o.Props) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, prop := range o.Props {
		sb.WriteString(pad(indent + 1))
		sb.WriteString(propertyKey(prop.Name))
		sb.WriteString(": ")
		sb.WriteString(p.expr(prop.Value, indent+1))
		sb.WriteString(",\n")
	}
	sb.WriteString(pad(indent))
	sb.WriteString("}")
	return sb.String()
}

func (p *printer) array(a zod.Array, indent int) string {
	if len(a.Elems) == 0 {
		return "[]"
	}
	elems := make([]string, len(a.Elems))
	multiline := false
	for i, e := range a.Elems {
		elems[i] = p.expr(e, indent+1)
		multiline = multiline || strings.Contains(elems[i], "\n")
	}
	if single := "[" + strings.Join(elems, ", ") + "]"; !multiline && len(pad(indent))+len(single) <= maxInlineWidth {
		return single
	}
	inner := pad(indent + 1)
	return "[\n" + inner + strings.Join(elems, ",\n"+inner) + "\n" + pad(indent) + "]"
}

func propertyKey(name string) string {
	if identRe.MatchString(name) {
		return name
	}
	return zod.Quote(name)
}
