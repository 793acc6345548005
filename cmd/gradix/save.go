package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
)

type saveOptions struct {
	name string
	id   string
}

func newSaveCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &saveOptions{}

	cmd := &cobra.Command{
		Use:   "save <gradient-file>",
		Short: "Save a gradient document to the store",
		Long: "Save reads a JSON or YAML gradient document and stores it. A document without an ID\n" +
			"gets a new one; saving an existing ID replaces that gradient.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, rootFlags, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Override the gradient name")
	cmd.Flags().StringVar(&opts.id, "id", "", "Override the gradient ID")

	return cmd
}

func runSave(cmd *cobra.Command, rootFlags *rootFlags, path string, opts *saveOptions) error {
	g, err := codec.DecodeFile(path)
	if err != nil {
		return newCommandError("save", fmt.Sprintf("reading %s", path), err, "Check the document is valid JSON or YAML with at least two colorStops.")
	}
	if opts.name != "" {
		g = g.WithName(opts.name)
	}
	if opts.id != "" {
		g = g.WithID(opts.id)
	}

	return withAppContext(cmd, rootFlags, "save", func(app *AppContext) error {
		saved, err := app.Service().Save(g)
		if err != nil {
			return newCommandError("save", "storing the gradient", err, "Check the store path in your config is writable.")
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved gradient '%s' as %s\n", saved.Name, saved.ID)
		return nil
	})
}
