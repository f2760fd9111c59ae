// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-openapi/inflect"

	"github.com/dacolabs/zodgen/internal/graph"
)

// NamingStyle selects how declaration identifiers are derived from node
// names.
type NamingStyle string

// Naming styles.
const (
	NamingDefault          NamingStyle = "default"
	NamingPascalCaseSchema NamingStyle = "pascal-case-schema"
	NamingCamelCase        NamingStyle = "camel-case"
)

// NamingStyles lists the accepted styles.
var NamingStyles = []NamingStyle{NamingDefault, NamingPascalCaseSchema, NamingCamelCase}

// ParseNamingStyle validates s. The empty string selects the default.
func ParseNamingStyle(s string) (NamingStyle, error) {
	if s == "" {
		return NamingDefault, nil
	}
	for _, style := range NamingStyles {
		if string(style) == s {
			return style, nil
		}
	}
	return "", errors.WithHint(errors.Newf("unknown naming style %q", s),
		fmt.Sprintf("use one of %s", joinStyles()))
}

func joinStyles() string {
	names := make([]string, len(NamingStyles))
	for i, s := range NamingStyles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Apply formats name in the style. The result is a valid identifier.
func (s NamingStyle) Apply(name string) string {
	switch s {
	case NamingPascalCaseSchema:
		name = inflect.Camelize(name) + "Schema"
	case NamingCamelCase:
		name = inflect.CamelizeDownFirst(name)
	}
	return Identifier(name)
}

var (
	invalidIdentChars = regexp.MustCompile(`[^A-Za-z0-9_$]`)
	identRe           = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

var reservedWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		await break case catch class const continue debugger default delete do
		else enum export extends false finally for function if implements import
		in instanceof interface let new null package private protected public
		return static super switch this throw true try typeof var void while
		with yield z`) {
		reservedWords[w] = true
	}
}

// Identifier turns name into a valid TypeScript identifier. Reserved words
// and the zod namespace get a trailing underscore.
func Identifier(name string) string {
	id := invalidIdentChars.ReplaceAllString(name, "_")
	if id == "" || (id[0] >= '0' && id[0] <= '9') {
		id = "_" + id
	}
	if reservedWords[id] {
		id += "_"
	}
	return id
}

// Namer assigns identifiers to declared nodes.
type Namer struct {
	style NamingStyle
	names map[*graph.Node]string
	used  map[string]bool
}

// NewNamer returns a Namer using style.
func NewNamer(style NamingStyle) *Namer {
	return &Namer{
		style: style,
		names: make(map[*graph.Node]string),
		used:  make(map[string]bool),
	}
}

// Declare assigns a unique identifier to n. Colliding names get a numeric
// suffix starting at 2.
func (nm *Namer) Declare(n *graph.Node) string {
	if id, ok := nm.names[n]; ok {
		return id
	}
	base := nm.style.Apply(n.Name)
	id := base
	for i := 2; nm.used[id]; i++ {
		id = base + strconv.Itoa(i)
	}
	nm.used[id] = true
	nm.names[n] = id
	return id
}

// Name returns the identifier of n. Nodes that were never declared are
// named by the style alone.
func (nm *Namer) Name(n *graph.Node) string {
	if id, ok := nm.names[n]; ok {
		return id
	}
	return nm.style.Apply(n.Name)
}
