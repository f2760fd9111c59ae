// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/zodgen/internal/logger"
	"github.com/dacolabs/zodgen/internal/version"
)

type rootOptions struct {
	verbose int
	logJSON bool
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "zodgen",
		Short: "Generate zod schemas from a typed schema graph",
		Long: `zodgen translates a schema graph (models, scalars, enums, unions) or a
JSON Schema file into TypeScript source built on zod.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(opts.verbose, opts.logJSON)
		},
	}
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON lines")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
