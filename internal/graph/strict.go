// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package graph

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// checkKeys rejects mapping keys that t does not declare. Custom
// unmarshalers decode through Node.Decode, which does not carry the
// document decoder's KnownFields setting.
func checkKeys(node *yaml.Node, t reflect.Type) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	known := make(map[string]bool)
	collectKeys(t, known)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		if !known[k.Value] {
			return errors.Newf("line %d: field %s not found in type %s", k.Line, k.Value, t)
		}
	}
	return nil
}

func collectKeys(t reflect.Type, known map[string]bool) {
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("yaml")
		name, opts, _ := strings.Cut(tag, ",")
		switch {
		case name == "-":
		case strings.Contains(opts, "inline"):
			collectKeys(f.Type, known)
		case !f.IsExported():
		case name == "":
			known[strings.ToLower(f.Name)] = true
		default:
			known[name] = true
		}
	}
}
