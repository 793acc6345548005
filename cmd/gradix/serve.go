package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/server"
)

type serveOptions struct {
	addr     string
	basePath string
}

func newServeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved gradients over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (defaults to the config value)")
	cmd.Flags().StringVar(&opts.basePath, "base-path", "", "Route prefix (defaults to the config value)")

	return cmd
}

func runServe(cmd *cobra.Command, rootFlags *rootFlags, opts *serveOptions) error {
	return withAppContext(cmd, rootFlags, "serve", func(app *AppContext) error {
		addr := app.Config.Server.Addr
		if opts.addr != "" {
			addr = opts.addr
		}
		basePath := app.Config.Server.BasePath
		if cmd.Flags().Changed("base-path") {
			basePath = opts.basePath
		}

		router := server.NewRouter(app.Store, server.Options{
			BasePath: basePath,
			Logger:   app.Log,
			Random:   app.Config.Random,
			Render:   app.Config.RenderOptions(),
		})

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.Serve(ctx, addr, router, app.Log); err != nil {
			return newCommandError("serve", "running the HTTP server", err, "Check that the address is free or pass a different --addr.")
		}
		return nil
	})
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
