// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"io"
	"io/fs"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// decode parses a schema file. YAML is converted to JSON first since the
// schema type only knows how to decode JSON.
func decode(data []byte, format Format) (*Schema, error) {
	if format == YAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "convert yaml to json")
		}
		data = converted
	}
	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys  fs.FS
	order *Order
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, order: newOrder()}
}

// Order returns the key order recorded for every schema loaded so far.
func (l *Loader) Order() *Order {
	return l.order
}

// LoadFile loads and parses a schema file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Schema, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	schema, err := decode(data, FormatFromPath(filePath))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filePath)
	}
	order, err := ExtractKeyOrder(data, schema)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filePath)
	}
	for s, keys := range order.props {
		l.order.props[s] = keys
	}
	for s, keys := range order.defs {
		l.order.defs[s] = keys
	}
	return schema, nil
}

// ResolveRefs resolves all external file $refs in the schema tree in-place.
// It recursively loads referenced schemas and replaces the ref with the loaded content.
// Internal refs (starting with #/) are left unchanged.
func (l *Loader) ResolveRefs(schema *Schema, basePath string) error {
	return l.resolveRefs(schema, basePath, nil)
}

func (l *Loader) resolveRefs(schema *Schema, basePath string, stack []string) error {
	for s := range Traverse(schema, nil) {
		if !IsFileRef(s.Ref) {
			continue
		}
		refPath := path.Join(basePath, s.Ref)
		for _, p := range stack {
			if p == refPath {
				return errors.WithHint(errors.Newf("%s: circular file reference", refPath),
					"move the shared schema under $defs and reference it with #/$defs/...")
			}
		}
		loaded, err := l.LoadFile(refPath)
		if err != nil {
			return err
		}
		newBase := path.Dir(refPath)
		if err := l.resolveRefs(loaded, newBase, append(stack, refPath)); err != nil {
			return err
		}
		*s = *loaded
		l.order.alias(s, loaded)
	}
	return nil
}
