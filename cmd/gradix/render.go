package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/preview"
	"github.com/alexisbeaulieu97/gradix/internal/render"
)

const swatchWidth = 40

type renderOptions struct {
	id          string
	format      string
	colorFormat string
	locations   bool
	output      string
	width       int
	height      int
}

func newRenderCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [gradient-file]",
		Short: "Render a gradient document or saved gradient as code",
		Long: "Render reads a JSON or YAML gradient document, or a saved gradient selected with --id,\n" +
			"and prints it as a CSS linear-gradient, a React Native LinearGradient or an SVG image.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, rootFlags, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "Render the saved gradient with this ID")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatCSS), "Output format: css, react-native or svg")
	cmd.Flags().StringVar(&opts.colorFormat, "color-format", "", "Color notation: hex or rgba (defaults to the config value)")
	cmd.Flags().BoolVar(&opts.locations, "locations", false, "Include the locations prop in React Native output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().IntVar(&opts.width, "width", render.DefaultSVGWidth, "SVG width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", render.DefaultSVGHeight, "SVG height in pixels")

	return cmd
}

func runRender(cmd *cobra.Command, rootFlags *rootFlags, path string, opts *renderOptions) error {
	if (path == "") == (strings.TrimSpace(opts.id) == "") {
		return newCommandError("render", "selecting the gradient", errors.New("expected a gradient file or --id"), "Pass exactly one of a gradient file or --id <saved-id>.")
	}

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return newCommandError("render", "parsing --format", err, "Use one of css, react-native or svg.")
	}

	return withAppContext(cmd, rootFlags, "render", func(app *AppContext) error {
		renderOpts := app.Config.RenderOptions()
		if opts.colorFormat != "" {
			cf, err := render.ParseColorFormat(opts.colorFormat)
			if err != nil {
				return newCommandError("render", "parsing --color-format", err, "Use hex or rgba.")
			}
			renderOpts.ColorFormat = cf
		}
		if cmd.Flags().Changed("locations") {
			renderOpts.IncludeLocations = opts.locations
		}

		g, err := loadGradient(app, path, opts.id)
		if err != nil {
			return newCommandError("render", "loading the gradient", err, "Run 'gradix list' to see saved gradients or check the document syntax.")
		}

		out, closeOut, err := openOutput(cmd, opts.output)
		if err != nil {
			return newCommandError("render", "opening the output file", err, "Check that the directory exists and is writable.")
		}
		defer closeOut()

		if format == render.FormatSVG {
			if err := render.SVG(out, g, opts.width, opts.height); err != nil {
				return newCommandError("render", "drawing the SVG", err, "Check the gradient has at least two stops.")
			}
			return nil
		}

		code, err := render.Render(g, format, renderOpts)
		if err != nil {
			return newCommandError("render", "rendering the gradient", err, "Check the gradient has at least two valid stops.")
		}

		if opts.output == "" && supportsUnicode(cmd.OutOrStdout()) {
			if swatch, err := preview.Swatch(g, swatchWidth, 2); err == nil {
				fmt.Fprintln(out, swatch)
			}
		}
		_, err = fmt.Fprintln(out, code)
		return err
	})
}

func loadGradient(app *AppContext, path, id string) (gradient.Gradient, error) {
	if path != "" {
		return codec.DecodeFile(path)
	}
	return app.Service().Load(strings.TrimSpace(id))
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
