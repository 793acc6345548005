package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "gradix",
		Short:         "gradix composes linear gradients and renders them as CSS or React Native code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a gradix config file (defaults to $GRADIX_CONFIG)")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newRandomCmd(flags))
	cmd.AddCommand(newSaveCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newRemoveCmd(flags))
	cmd.AddCommand(newClearCmd(flags))
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newEditCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
