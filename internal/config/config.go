// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles zodgen project configuration.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dacolabs/zodgen/internal/render"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// EnvPrefix prefixes the environment variables that override config keys.
const EnvPrefix = "ZODGEN"

// InputFormat names the kind of document the input file holds.
type InputFormat string

const (
	// InputAuto detects the format from the file contents.
	InputAuto InputFormat = ""
	// InputGraph is a schema graph document.
	InputGraph InputFormat = "graph"
	// InputJSONSchema is a JSON Schema file.
	InputJSONSchema InputFormat = "jsonschema"
)

// Config represents the zodgen.yaml project configuration file.
type Config struct {
	Version     int         `yaml:"version" mapstructure:"version"`
	Input       string      `yaml:"input" mapstructure:"input"`
	InputFormat InputFormat `yaml:"inputFormat,omitempty" mapstructure:"inputFormat"`
	Output      string      `yaml:"output" mapstructure:"output"`
	NamingStyle string      `yaml:"namingStyle,omitempty" mapstructure:"namingStyle"`
	EmitInfer   bool        `yaml:"emitInfer,omitempty" mapstructure:"emitInfer"`
}

// envKeys maps config keys to their override variables.
var envKeys = map[string]string{
	"input":       EnvPrefix + "_INPUT",
	"inputFormat": EnvPrefix + "_INPUT_FORMAT",
	"output":      EnvPrefix + "_OUTPUT",
	"namingStyle": EnvPrefix + "_NAMING_STYLE",
	"emitInfer":   EnvPrefix + "_EMIT_INFER",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault("namingStyle", string(render.NamingDefault))
	v.SetDefault("emitInfer", false)
	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}
	return v
}

// Load reads a Config from a file path. Environment variables prefixed with
// ZODGEN_ override the values in the file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.Newf("unsupported config version %d", c.Version)
	}
	if c.Input == "" {
		return errors.WithHint(errors.New("input is required"), "set input to a graph document or JSON Schema file")
	}
	if c.Output == "" {
		return errors.WithHint(errors.New("output is required"), "set output to the TypeScript file to generate")
	}
	switch c.InputFormat {
	case InputAuto, InputGraph, InputJSONSchema:
	default:
		return errors.WithHintf(errors.Newf("unknown input format %q", c.InputFormat),
			"use %q or %q, or leave it empty to detect", InputGraph, InputJSONSchema)
	}
	if _, err := render.ParseNamingStyle(c.NamingStyle); err != nil {
		return err
	}
	return nil
}
