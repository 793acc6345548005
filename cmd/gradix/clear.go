package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type clearOptions struct {
	force bool
}

func newClearCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &clearOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every saved gradient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Clear without confirmation")

	return cmd
}

func runClear(cmd *cobra.Command, rootFlags *rootFlags, opts *clearOptions) error {
	return withAppContext(cmd, rootFlags, "clear", func(app *AppContext) error {
		svc := app.Service()

		gradients, err := svc.List()
		if err != nil {
			return newCommandError("clear", "loading saved gradients", err, "Check the store path in your config is readable.")
		}
		if len(gradients) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No gradients saved yet.")
			return nil
		}

		if !opts.force {
			confirmed, err := confirm(cmd, "clear", fmt.Sprintf("Remove all %d saved gradients? [y/N]: ", len(gradients)))
			if err != nil {
				return err
			}
			if !confirmed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := svc.Clear(); err != nil {
			return newCommandError("clear", "removing saved gradients", err, "Check the store path in your config is writable.")
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d gradients\n", len(gradients))
		return nil
	})
}
