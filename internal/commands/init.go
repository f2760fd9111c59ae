// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dacolabs/zodgen/internal/config"
	"github.com/dacolabs/zodgen/internal/prompts"
	"github.com/dacolabs/zodgen/internal/session"
)

type initOptions struct {
	prompts.InitAnswers
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new zodgen project",
		Long:  `Initialize a new zodgen project with a zodgen.yaml configuration file.`,
		Example: `  # Interactive mode
  zodgen init

  # Non-interactive
  zodgen init --input schemas/graph.yaml --output src/schemas.ts --non-interactive
  zodgen init --input api.schema.json --naming-style pascal-case-schema --emit-infer --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Input schema file")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "Input format (graph or jsonschema, detected when empty)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "schemas.ts", "Generated TypeScript file")
	cmd.Flags().StringVar(&opts.NamingStyle, "naming-style", "default", "Declaration naming style (default, pascal-case-schema, camel-case)")
	cmd.Flags().BoolVar(&opts.EmitInfer, "emit-infer", false, "Emit z.infer type aliases")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --input)")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get current directory")
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.Newf("%s already exists; project already initialized", session.ConfigFileName)
	}

	if opts.nonInteractive {
		if opts.Input == "" {
			return errors.New("non-interactive mode requires --input")
		}
	} else if err := prompts.RunInitForm(&opts.InitAnswers); err != nil {
		return err
	}

	cfg := config.Config{
		Version:     config.CurrentConfigVersion,
		Input:       opts.Input,
		InputFormat: config.InputFormat(opts.InputFormat),
		Output:      opts.Output,
		NamingStyle: opts.NamingStyle,
		EmitInfer:   opts.EmitInfer,
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if err := cfg.Save(cfgPath); err != nil {
		return errors.Wrapf(err, "failed to write %s", session.ConfigFileName)
	}

	fields := []prompts.ResultField{
		{Label: "Input", Value: cfg.Input},
		{Label: "Output", Value: cfg.Output},
		{Label: "Naming style", Value: cfg.NamingStyle},
		{Label: "Emit infer", Value: strconv.FormatBool(cfg.EmitInfer)},
	}
	inputPath := cfg.Input
	if !filepath.IsAbs(inputPath) {
		inputPath = filepath.Join(cwd, inputPath)
	}
	if _, err := os.Stat(inputPath); err != nil {
		prompts.PrintWarning(cmd.OutOrStdout(), "input file does not exist yet: "+cfg.Input)
	}
	prompts.PrintResult(cmd.OutOrStdout(), fields, "Initialization completed")
	return nil
}
