// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package graph

import (
	"bytes"
	"io"
	"io/fs"
	"path"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Parse decodes a graph document and links it. JSON documents are accepted
// as well since JSON is a subset of YAML.
func Parse(data []byte) (*Graph, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Link(doc)
}

// Decode decodes a graph document without linking it. Unknown keys are
// rejected.
func Decode(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, errors.Wrap(err, "decode graph document")
	}
	return &doc, nil
}

// Loader loads graph documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and links a graph document. Only .yaml, .yml and .json
// files are accepted.
func (l *Loader) LoadFile(filePath string) (*Graph, error) {
	switch path.Ext(filePath) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, errors.WithHint(errors.Newf("%s: format not supported", filePath),
			"graph documents must be .yaml, .yml or .json files")
	}

	data, err := fs.ReadFile(l.fsys, filePath)
	if err != nil {
		return nil, err
	}

	g, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filePath)
	}
	return g, nil
}
