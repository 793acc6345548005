// Package render turns a gradient into platform code: a stylesheet
// linear-gradient expression, a mobile LinearGradient component declaration
// and a standalone SVG document. Output is deterministic for a given input.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/gradix/internal/colorspace"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

// ColorFormat selects how stop colors are printed.
type ColorFormat string

const (
	ColorHex  ColorFormat = "hex"
	ColorRGBA ColorFormat = "rgba"
)

// Format selects the output surface.
type Format string

const (
	FormatCSS         Format = "css"
	FormatReactNative Format = "react-native"
	FormatSVG         Format = "svg"
)

// Options tunes the rendered output.
type Options struct {
	ColorFormat      ColorFormat
	IncludeLocations bool
}

// ParseColorFormat accepts "hex" or "rgba" in any case. Empty means hex.
func ParseColorFormat(s string) (ColorFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hex":
		return ColorHex, nil
	case "rgba":
		return ColorRGBA, nil
	default:
		return "", fmt.Errorf("unknown color format %q: expected hex or rgba", s)
	}
}

// ParseFormat accepts the output surface names used by the CLI and HTTP API.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "css":
		return FormatCSS, nil
	case "react-native", "reactnative", "rn":
		return FormatReactNative, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unknown output format %q: expected css, react-native or svg", s)
	}
}

// Render dispatches to the renderer for format.
func Render(g gradient.Gradient, format Format, opts Options) (string, error) {
	switch format {
	case FormatCSS, "":
		return Stylesheet(g, opts)
	case FormatReactNative:
		return ReactNative(g, opts)
	case FormatSVG:
		var buf bytes.Buffer
		if err := SVG(&buf, g, DefaultSVGWidth, DefaultSVGHeight); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// prepare normalizes g and returns it with its stops in render order.
func prepare(g gradient.Gradient) (gradient.Gradient, []gradient.ColorStop, error) {
	if len(g.ColorStops) < gradient.MinStops {
		return gradient.Gradient{}, nil, gerrors.NewInvalidGradient("colorStops", "at least 2 color stops are required")
	}

	normalized, err := gradient.Normalize(g)
	if err != nil {
		return gradient.Gradient{}, nil, err
	}
	return normalized, gradient.SortedStops(normalized), nil
}

func colorToken(stop gradient.ColorStop, format ColorFormat) (string, error) {
	if format == ColorRGBA {
		return colorspace.HexToRGBA(stop.Color, stop.Opacity)
	}
	return stop.Color, nil
}
