// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dacolabs/zodgen/internal/logger"
	"github.com/dacolabs/zodgen/internal/prompts"
	"github.com/dacolabs/zodgen/internal/render"
	"github.com/dacolabs/zodgen/internal/session"
	"github.com/dacolabs/zodgen/internal/zod"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

type generateOptions struct {
	output      string
	namingStyle string
	emitInfer   bool
	watch       bool
	debounce    time.Duration
}

// settings are the effective render settings after flags override config.
type settings struct {
	output    string
	naming    render.NamingStyle
	emitInfer bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the zod schema file",
		Long: `Generate TypeScript zod schemas for every declaration in the input.

Flags override the values in zodgen.yaml. Use --output - to print to stdout.`,
		Example: `  # Generate using zodgen.yaml
  zodgen generate

  # Override output and naming
  zodgen generate --output src/models.ts --naming-style pascal-case-schema --emit-infer

  # Regenerate on every input change
  zodgen generate --watch`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, - for stdout")
	cmd.Flags().StringVar(&opts.namingStyle, "naming-style", "", "Declaration naming style (default, pascal-case-schema, camel-case)")
	cmd.Flags().BoolVar(&opts.emitInfer, "emit-infer", false, "Emit z.infer type aliases")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when the input changes")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 200*time.Millisecond, "Quiet period before regenerating in watch mode")

	return cmd
}

// resolveSettings applies the flags that were set on top of the config.
func resolveSettings(cmd *cobra.Command, sc *session.Context, output, namingStyle string, emitInfer bool) (settings, error) {
	s := settings{output: sc.OutputPath(), emitInfer: sc.Config.EmitInfer}
	if cmd.Flags().Changed("output") {
		s.output = output
		if output != stdoutPath && !filepath.IsAbs(output) {
			s.output = filepath.Join(sc.Dir, output)
		}
	}
	if cmd.Flags().Changed("emit-infer") {
		s.emitInfer = emitInfer
	}

	style := sc.Config.NamingStyle
	if cmd.Flags().Changed("naming-style") {
		style = namingStyle
	}
	naming, err := render.ParseNamingStyle(style)
	if err != nil {
		return s, err
	}
	s.naming = naming
	return s, nil
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	sc, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, sc, opts.output, opts.namingStyle, opts.emitInfer)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := generateOnce(out, sc, s); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	if s.output == stdoutPath {
		return errors.WithHint(errors.New("--watch needs an output file"), "drop --output - or pass a file path")
	}

	w, err := newWatcher(filepath.Dir(sc.InputPath))
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck

	logger.Logger.Infow("Watching for changes", logger.FieldInput, sc.InputPath)
	return w.Run(cmd.Context(), opts.debounce, func() error {
		if err := sc.Reload(); err != nil {
			return err
		}
		return generateOnce(out, sc, s)
	})
}

// generateOnce plans and renders the current graph and writes the result.
func generateOnce(out io.Writer, sc *session.Context, s settings) error {
	start := time.Now()
	decls, err := zod.NewEmitter(nil).Plan(sc.Graph)
	if err != nil {
		return err
	}
	src := render.Source(decls, render.Options{Naming: s.naming, EmitInfer: s.emitInfer})

	if s.output == stdoutPath {
		_, err := out.Write(src)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.output), 0o750); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	if err := os.WriteFile(s.output, src, 0o644); err != nil { //nolint:gosec // generated source is meant to be readable
		return errors.Wrap(err, "failed to write output")
	}

	logger.Logger.Infow("Generated",
		logger.FieldOutput, s.output,
		logger.FieldCount, len(decls),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	rel, err := filepath.Rel(sc.Dir, s.output)
	if err != nil {
		rel = s.output
	}
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Input", Value: filepath.Base(sc.InputPath)},
		{Label: "Output", Value: rel},
		{Label: "Declarations", Value: strconv.Itoa(len(decls))},
	}, "")
	return nil
}
