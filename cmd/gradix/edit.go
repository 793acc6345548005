package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
	"github.com/alexisbeaulieu97/gradix/internal/tui/editor"
)

type editOptions struct {
	id   string
	file string
}

func newEditCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive gradient editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "Start from the saved gradient with this ID")
	cmd.Flags().StringVar(&opts.file, "file", "", "Start from a gradient document")
	cmd.MarkFlagsMutuallyExclusive("id", "file")

	return cmd
}

func runEdit(cmd *cobra.Command, rootFlags *rootFlags, opts *editOptions) error {
	if !isTerminal(cmd.InOrStdin()) {
		return newCommandError("edit", "starting the editor", errors.New("stdin is not a terminal"), "Run 'gradix edit' from an interactive terminal.")
	}

	return withAppContext(cmd, rootFlags, "edit", func(app *AppContext) error {
		status := &editor.StatusLine{}
		// The alternate screen owns the terminal, so notifications go to the
		// status line only.
		svc := studio.NewService(app.Store, studio.WithNotifier(status))

		start := gradient.Default()
		switch {
		case opts.id != "":
			g, err := svc.Load(opts.id)
			if err != nil {
				return newCommandError("edit", fmt.Sprintf("looking up gradient %q", opts.id), err, "Run 'gradix list' to view saved gradients.")
			}
			start = g
		case opts.file != "":
			g, err := codec.DecodeFile(opts.file)
			if err != nil {
				return newCommandError("edit", fmt.Sprintf("reading %s", opts.file), err, "Check the document is valid JSON or YAML with at least two colorStops.")
			}
			start = g
		}

		model := editor.New(svc, status, start, app.Config.RenderOptions())
		program := tea.NewProgram(model,
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
			tea.WithAltScreen(),
		)
		if _, err := program.Run(); err != nil {
			return newCommandError("edit", "running the editor", err, "Try resizing the terminal or re-running the command.")
		}
		return nil
	})
}
