// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"

	"github.com/dacolabs/zodgen/internal/render"
)

// InitAnswers holds the values collected by the init form.
type InitAnswers struct {
	Input       string
	InputFormat string
	Output      string
	NamingStyle string
	EmitInfer   bool
}

// RunInitForm runs the interactive form for the init command. Fields that
// already hold a value are shown pre-filled.
func RunInitForm(a *InitAnswers) error {
	styles := make([]huh.Option[string], 0, len(render.NamingStyles))
	for _, s := range render.NamingStyles {
		styles = append(styles, huh.NewOption(string(s), string(s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Input schema").
				Description("A schema graph document or a JSON Schema file").
				Placeholder("schemas/graph.yaml").
				Validate(requiredValidator("input")).
				Value(&a.Input),
			huh.NewSelect[string]().
				Title("Input format").
				Options(
					huh.NewOption("Detect from contents", ""),
					huh.NewOption("Schema graph document", "graph"),
					huh.NewOption("JSON Schema", "jsonschema"),
				).
				Value(&a.InputFormat),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output file").
				Placeholder("src/schemas.ts").
				Validate(requiredValidator("output")).
				Value(&a.Output),
			huh.NewSelect[string]().
				Title("Naming style").
				Options(styles...).
				Value(&a.NamingStyle),
			huh.NewConfirm().
				Title("Emit z.infer type aliases?").
				Value(&a.EmitInfer),
		),
	).WithTheme(Theme()).Run()
}
