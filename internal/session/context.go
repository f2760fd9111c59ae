// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/dacolabs/zodgen/internal/config"
	"github.com/dacolabs/zodgen/internal/graph"
	"github.com/dacolabs/zodgen/internal/jschema"
	"github.com/dacolabs/zodgen/internal/logger"
)

var (
	// ErrNotInitialized indicates no zodgen.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a zodgen project (zodgen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates the input file referenced by config doesn't exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInvalidInput indicates the input file exists but couldn't be loaded.
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigFileName is the name of the zodgen configuration file.
const ConfigFileName = "zodgen.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the project configuration and the linked schema graph.
type Context struct {
	Config *config.Config

	// Dir is the project directory holding zodgen.yaml.
	Dir string

	// InputPath is the absolute path of the input file.
	InputPath string

	// Format is the detected or configured input format.
	Format config.InputFormat

	Graph *graph.Graph
}

// OutputPath returns the absolute path of the generated file.
func (c *Context) OutputPath() string {
	return resolve(c.Dir, c.Config.Output)
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the zodgen Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current directory")
	}
	return LoadDir(ctx, cwd)
}

// LoadDir is Load for an explicit project directory.
func LoadDir(ctx context.Context, dir string) (context.Context, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, errors.WithHint(ErrNotInitialized, "run 'zodgen init' to create one")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, ErrInvalidConfig.Error()), ErrInvalidConfig)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, errors.Mark(errors.Wrap(validateErr, ErrInvalidConfig.Error()), ErrInvalidConfig)
	}

	sc := &Context{Config: cfg, Dir: dir, InputPath: resolve(dir, cfg.Input)}
	if err := sc.Reload(); err != nil {
		return nil, err
	}
	return context.WithValue(ctx, contextKey{}, sc), nil
}

// Reload reads the input file again and replaces Graph.
func (c *Context) Reload() error {
	data, err := os.ReadFile(c.InputPath)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "%s", ErrInputNotFound.Error()), ErrInputNotFound)
	}

	c.Format = c.Config.InputFormat
	if c.Format == config.InputAuto {
		c.Format = DetectFormat(data)
	}

	g, err := loadInput(c.InputPath, c.Format)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "%s %s", ErrInvalidInput.Error(), filepath.Base(c.InputPath)), ErrInvalidInput)
	}
	c.Graph = g
	logger.Logger.Debugw("Loaded input",
		logger.FieldInput, c.InputPath,
		logger.FieldFormat, string(c.Format),
		logger.FieldCount, len(g.Declarations()))
	return nil
}

func loadInput(inputPath string, format config.InputFormat) (*graph.Graph, error) {
	fsys := os.DirFS(filepath.Dir(inputPath))
	name := filepath.Base(inputPath)

	if format == config.InputGraph {
		return graph.NewLoader(fsys).LoadFile(name)
	}

	loader := jschema.NewLoader(fsys)
	schema, err := loader.LoadFile(name)
	if err != nil {
		return nil, err
	}
	if err := loader.ResolveRefs(schema, "."); err != nil {
		return nil, err
	}
	doc, err := jschema.Import(schema, loader.Order(), jschema.RootName(name))
	if err != nil {
		return nil, err
	}
	return graph.Link(doc)
}

// jsonSchemaKeys are top-level keys that only a JSON Schema carries.
var jsonSchemaKeys = map[string]bool{
	"$schema":     true,
	"$id":         true,
	"$defs":       true,
	"$ref":        true,
	"definitions": true,
	"properties":  true,
	"type":        true,
	"allOf":       true,
	"anyOf":       true,
	"oneOf":       true,
}

// DetectFormat guesses the input format from the top-level keys of data.
// Anything that does not look like a JSON Schema is read as a graph document.
func DetectFormat(data []byte) config.InputFormat {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil || len(doc.Content) == 0 {
		return config.InputGraph
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return config.InputGraph
	}
	for i := 0; i < len(root.Content); i += 2 {
		if jsonSchemaKeys[root.Content[i].Value] {
			return config.InputJSONSchema
		}
	}
	return config.InputGraph
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// From extracts the zodgen Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sc, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sc
	}
	return nil
}
