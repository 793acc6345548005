package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
	"github.com/alexisbeaulieu97/gradix/internal/render"
)

type showOptions struct {
	document string
}

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <gradient-id>",
		Short: "Show a saved gradient with its CSS and React Native code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootFlags, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.document, "document", "", "Print the stored document instead: json or yaml")

	return cmd
}

func runShow(cmd *cobra.Command, rootFlags *rootFlags, id string, opts *showOptions) error {
	return withAppContext(cmd, rootFlags, "show", func(app *AppContext) error {
		g, err := app.Service().Load(id)
		if err != nil {
			return newCommandError("show", fmt.Sprintf("looking up gradient %q", id), err, "Run 'gradix list' to view saved gradients.")
		}

		out := cmd.OutOrStdout()

		if opts.document != "" {
			format, err := codec.ParseFormat(opts.document)
			if err != nil {
				return newCommandError("show", "parsing --document", err, "Use json or yaml.")
			}
			data, err := codec.Encode(g, format)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		renderOpts := app.Config.RenderOptions()
		css, err := render.Stylesheet(g, renderOpts)
		if err != nil {
			return newCommandError("show", "rendering CSS", err, "Re-save the gradient with at least two stops.")
		}
		rn, err := render.ReactNative(g, renderOpts)
		if err != nil {
			return newCommandError("show", "rendering React Native code", err, "Re-save the gradient with at least two stops.")
		}

		fmt.Fprintf(out, "Gradient: %s\n", valueOrFallback(g.Name, "(no name)"))
		fmt.Fprintf(out, "ID: %s\n", g.ID)
		fmt.Fprintf(out, "Direction: %s\n", direction(g))
		fmt.Fprintln(out, "\nStops:")
		for _, stop := range g.ColorStops {
			fmt.Fprintf(out, "  %s  %3d%%  opacity %.2f\n", stop.Color, int(stop.Position*100+0.5), stop.Opacity)
		}
		fmt.Fprintf(out, "\nCSS:\n  %s\n", css)
		fmt.Fprintf(out, "\nReact Native:\n%s\n", indent(rn, "  "))
		return nil
	})
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
