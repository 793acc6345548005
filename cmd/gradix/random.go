package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
	"github.com/alexisbeaulieu97/gradix/internal/random"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

type randomOptions struct {
	seed       uint64
	minStops   int
	maxStops   int
	opacity    bool
	save       bool
	name       string
	format     string
	jsonOutput bool
}

func newRandomCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &randomOptions{}

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random gradient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRandom(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed the generator for reproducible output")
	cmd.Flags().IntVar(&opts.minStops, "min-stops", 0, "Fewest stops to generate (defaults to the config value)")
	cmd.Flags().IntVar(&opts.maxStops, "max-stops", 0, "Most stops to generate (defaults to the config value)")
	cmd.Flags().BoolVar(&opts.opacity, "random-opacity", false, "Give stops a random opacity between 0.7 and 1")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the generated gradient")
	cmd.Flags().StringVar(&opts.name, "name", "", "Name used when saving")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatCSS), "Output format: css, react-native or svg")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the gradient document as JSON")

	return cmd
}

func runRandom(cmd *cobra.Command, rootFlags *rootFlags, opts *randomOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return newCommandError("random", "parsing --format", err, "Use one of css, react-native or svg.")
	}

	return withAppContext(cmd, rootFlags, "random", func(app *AppContext) error {
		genOpts := app.Config.Random
		if cmd.Flags().Changed("min-stops") {
			genOpts.MinStops = opts.minStops
		}
		if cmd.Flags().Changed("max-stops") {
			genOpts.MaxStops = opts.maxStops
		}
		if cmd.Flags().Changed("random-opacity") {
			genOpts.RandomOpacity = opts.opacity
		}

		gen := random.New(nil, genOpts)
		if cmd.Flags().Changed("seed") {
			gen = random.NewSeeded(opts.seed, genOpts)
		}

		svc := app.Service(studio.WithGenerator(gen))
		g, err := svc.Random()
		if err != nil {
			return newCommandError("random", "generating a gradient", err, "Check that --min-stops is at least 2 and not above --max-stops.")
		}

		if opts.save {
			if opts.name != "" {
				g = g.WithName(opts.name)
			}
			if g, err = svc.Save(g); err != nil {
				return newCommandError("random", "saving the gradient", err, "Check the store path in your config is writable.")
			}
		}

		if opts.jsonOutput {
			data, err := codec.Encode(g, codec.FormatJSON)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		code, err := render.Render(g, format, app.Config.RenderOptions())
		if err != nil {
			return newCommandError("random", "rendering the gradient", err, "Retry with a different --seed.")
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		if opts.save {
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Saved as %s (%s)\n", g.ID, g.Name)
		}
		return nil
	})
}
