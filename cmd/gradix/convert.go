package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/colorspace"
	"github.com/alexisbeaulieu97/gradix/internal/preview"
)

type convertOptions struct {
	opacity    float64
	jsonOutput bool
}

type conversion struct {
	Hex  string `json:"hex"`
	RGB  string `json:"rgb"`
	RGBA string `json:"rgba"`
	HSL  string `json:"hsl"`
	HSB  string `json:"hsb"`
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <hex-color>...",
		Short: "Convert hex colors to RGB, HSL and HSB",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.opacity, "opacity", 1, "Alpha used for the rgba column")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runConvert(cmd *cobra.Command, colors []string, opts *convertOptions) error {
	results := make([]conversion, 0, len(colors))
	for _, color := range colors {
		c, err := convertColor(color, opts.opacity)
		if err != nil {
			return newCommandError("convert", fmt.Sprintf("parsing %q", color), err, "Use #RGB or #RRGGBB hex notation.")
		}
		results = append(results, c)
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "HEX\tRGB\tRGBA\tHSL\tHSB")

	useColor := supportsUnicode(cmd.OutOrStdout())
	for _, c := range results {
		hex := c.Hex
		if useColor {
			hex = preview.Chip(c.Hex, c.Hex)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", hex, c.RGB, c.RGBA, c.HSL, c.HSB)
	}
	return writer.Flush()
}

func convertColor(color string, opacity float64) (conversion, error) {
	hex, err := colorspace.NormalizeHex(color)
	if err != nil {
		return conversion{}, err
	}
	rgb, err := colorspace.HexToRGB(hex)
	if err != nil {
		return conversion{}, err
	}
	rgba, err := colorspace.HexToRGBA(hex, opacity)
	if err != nil {
		return conversion{}, err
	}

	return conversion{
		Hex:  hex,
		RGB:  rgb.String(),
		RGBA: rgba,
		HSL:  colorspace.RGBToHSL(rgb.R, rgb.G, rgb.B).String(),
		HSB:  colorspace.RGBToHSB(rgb.R, rgb.G, rgb.B).String(),
	}, nil
}
