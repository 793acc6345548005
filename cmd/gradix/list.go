package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/preview"
	"github.com/alexisbeaulieu97/gradix/internal/render"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved gradients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, rootFlags *rootFlags, opts *listOptions) error {
	return withAppContext(cmd, rootFlags, "list", func(app *AppContext) error {
		gradients, err := app.Service().List()
		if err != nil {
			return newCommandError("list", "loading saved gradients", err, "Check the store path in your config is readable.")
		}

		if opts.jsonOutput {
			return renderListJSON(cmd, gradients)
		}
		if len(gradients) == 0 {
			return renderEmptyList(cmd)
		}
		return renderListTable(cmd, gradients)
	})
}

func renderEmptyList(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), "No gradients saved yet.")
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'gradix save <gradient-file>' or 'gradix random --save' to add one.")
	return nil
}

func renderListTable(cmd *cobra.Command, gradients []gradient.Gradient) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tDIRECTION\tSTOPS")

	useColor := supportsUnicode(cmd.OutOrStdout())

	for _, g := range gradients {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			g.ID,
			valueOrFallback(g.Name, "(no name)"),
			direction(g),
			formatStops(g.ColorStops, useColor),
		)
	}

	return writer.Flush()
}

type listJSONPayload struct {
	Count     int                 `json:"count"`
	Gradients []gradient.Gradient `json:"gradients"`
}

func renderListJSON(cmd *cobra.Command, gradients []gradient.Gradient) error {
	if gradients == nil {
		gradients = []gradient.Gradient{}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(listJSONPayload{Count: len(gradients), Gradients: gradients})
}

func direction(g gradient.Gradient) string {
	if g.UseAngle {
		return fmt.Sprintf("%ddeg", g.Angle)
	}
	return render.DefaultDirection
}

func formatStops(stops []gradient.ColorStop, useColor bool) string {
	parts := make([]string, len(stops))
	for i, stop := range gradient.SortedStops(gradient.Gradient{ColorStops: stops}) {
		if useColor {
			parts[i] = preview.Chip(stop.Color, stop.Color)
			continue
		}
		parts[i] = stop.Color
	}
	return strings.Join(parts, " ")
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
