package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
)

const (
	DefaultSVGWidth  = 400
	DefaultSVGHeight = 200

	svgGradientID = "gradix"
)

// SVG writes a standalone document holding a single rectangle filled with g.
// Stop colors are always emitted as hex with a separate stop opacity.
func SVG(w io.Writer, g gradient.Gradient, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg size must be positive, got %dx%d", width, height)
	}

	normalized, stops, err := prepare(g)
	if err != nil {
		return err
	}

	offsets := make([]svg.Offcolor, 0, len(stops))
	for _, stop := range stops {
		offsets = append(offsets, svg.Offcolor{
			Offset:  uint8(percent(stop.Position)),
			Color:   stop.Color,
			Opacity: stop.Opacity,
		})
	}

	start, end := Endpoints(normalized)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Def()
	canvas.LinearGradient(svgGradientID,
		unitPercent(start.X), unitPercent(start.Y),
		unitPercent(end.X), unitPercent(end.Y),
		offsets)
	canvas.DefEnd()
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:url(#%s)", svgGradientID))
	canvas.End()
	return nil
}

func unitPercent(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 100))
}
