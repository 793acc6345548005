package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type removeOptions struct {
	force bool
}

func newRemoveCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &removeOptions{}

	cmd := &cobra.Command{
		Use:   "remove <gradient-id>",
		Short: "Remove a saved gradient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, rootFlags, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Remove without confirmation")

	return cmd
}

func runRemove(cmd *cobra.Command, rootFlags *rootFlags, id string, opts *removeOptions) error {
	if strings.TrimSpace(id) == "" {
		return newCommandError("remove", "validating gradient ID", errors.New("gradient ID cannot be empty"), "Provide the ID of the gradient you wish to remove.")
	}

	return withAppContext(cmd, rootFlags, "remove", func(app *AppContext) error {
		svc := app.Service()

		g, err := svc.Load(id)
		if err != nil {
			return newCommandError("remove", fmt.Sprintf("looking up gradient %q", id), err, "Run 'gradix list' to view saved gradients.")
		}

		if !opts.force {
			confirmed, err := confirm(cmd, "remove", fmt.Sprintf("Remove gradient '%s' (%s)? [y/N]: ", id, valueOrFallback(g.Name, "no name")))
			if err != nil {
				return err
			}
			if !confirmed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := svc.Delete(id); err != nil {
			return newCommandError("remove", fmt.Sprintf("removing gradient %q", id), err, "Check the store path in your config is writable.")
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed gradient '%s'\n", id)
		return nil
	})
}

func confirm(cmd *cobra.Command, operation, prompt string) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError(operation, "prompting for confirmation", errors.New("not a terminal"), "Use --force when running in non-interactive environments.")
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(reader any) bool {
	if file, ok := reader.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
