// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dacolabs/zodgen/internal/logger"
	"github.com/dacolabs/zodgen/internal/session"
	"github.com/dacolabs/zodgen/internal/zod"
)

type planOptions struct {
	json bool
}

// planEntry is one row of the emission plan.
type planEntry struct {
	Group  int    `json:"group"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Cyclic bool   `json:"cyclic"`
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	cyclicStyle = cellStyle.Foreground(lipgloss.Color("#f9ca24"))
)

func newPlanCmd() *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the declaration order",
		Long: `Show the declarations that generate would emit, in order.

Declarations are grouped by reference cycle. Cyclic groups are flagged.`,
		Example: `  zodgen plan
  zodgen plan --json`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the plan as JSON")

	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions) error {
	sc, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	decls, err := zod.NewEmitter(nil).Plan(sc.Graph)
	if err != nil {
		return err
	}

	entries := planEntries(decls)
	groups, cyclic := 0, 0
	for i, e := range entries {
		if i == 0 || e.Group != entries[i-1].Group {
			groups++
		}
		if e.Cyclic {
			cyclic++
		}
	}
	logger.Logger.Debugw("Planned",
		logger.FieldCount, len(entries),
		logger.FieldGroups, groups,
		logger.FieldCyclic, cyclic)

	if opts.json {
		return printPlanJSON(cmd.OutOrStdout(), entries)
	}
	printPlanTable(cmd.OutOrStdout(), entries)
	return nil
}

func planEntries(decls []zod.Declaration) []planEntry {
	entries := make([]planEntry, 0, len(decls))
	for _, d := range decls {
		entries = append(entries, planEntry{
			Group:  d.Group,
			Name:   d.Name,
			Kind:   d.Node.Kind.String(),
			Cyclic: d.Cyclic,
		})
	}
	return entries
}

func printPlanJSON(w io.Writer, entries []planEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printPlanTable(w io.Writer, entries []planEntry) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("GROUP", "NAME", "KIND", "CYCLIC").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case entries[row].Cyclic:
				return cyclicStyle
			default:
				return cellStyle
			}
		})
	for _, e := range entries {
		cyclic := ""
		if e.Cyclic {
			cyclic = "yes"
		}
		t.Row(strconv.Itoa(e.Group), e.Name, e.Kind, cyclic)
	}
	_, _ = fmt.Fprintln(w, t.Render())
}
