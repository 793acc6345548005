package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
)

// Point is a coordinate in the unit square, x to the right and y downward.
type Point struct {
	X float64
	Y float64
}

// Component is a LinearGradient declaration for mobile clients.
// Locations is nil when stop positions are left out.
type Component struct {
	Colors    []string
	Locations []float64
	Start     Point
	End       Point
}

// Declaration builds the component for g. Angle-based gradients derive
// start and end from the angle; otherwise the gradient runs top to bottom.
func Declaration(g gradient.Gradient, opts Options) (Component, error) {
	normalized, stops, err := prepare(g)
	if err != nil {
		return Component{}, err
	}

	comp := Component{Colors: make([]string, 0, len(stops))}
	for _, stop := range stops {
		token, err := colorToken(stop, opts.ColorFormat)
		if err != nil {
			return Component{}, err
		}
		comp.Colors = append(comp.Colors, token)
	}

	if opts.IncludeLocations {
		comp.Locations = make([]float64, 0, len(stops))
		for _, stop := range stops {
			comp.Locations = append(comp.Locations, round2(stop.Position))
		}
	}

	comp.Start, comp.End = Endpoints(normalized)
	return comp, nil
}

// ReactNative renders the component declaration for g as source text.
func ReactNative(g gradient.Gradient, opts Options) (string, error) {
	comp, err := Declaration(g, opts)
	if err != nil {
		return "", err
	}
	return comp.String(), nil
}

// Endpoints maps the gradient direction onto the unit square. With angle θ
// the start is (0.5-0.5cosθ, 0.5-0.5sinθ) and the end mirrors it through the
// center, so 90 runs top to bottom and 0 runs left to right.
func Endpoints(g gradient.Gradient) (Point, Point) {
	if !g.UseAngle {
		return Point{X: 0.5, Y: 0}, Point{X: 0.5, Y: 1}
	}

	theta := float64(gradient.NormalizeAngle(g.Angle)) * math.Pi / 180
	dx := 0.5 * math.Cos(theta)
	dy := 0.5 * math.Sin(theta)

	start := Point{X: round2(0.5 - dx), Y: round2(0.5 - dy)}
	end := Point{X: round2(0.5 + dx), Y: round2(0.5 + dy)}
	return start, end
}

func (c Component) String() string {
	quoted := make([]string, len(c.Colors))
	for i, color := range c.Colors {
		quoted[i] = fmt.Sprintf("%q", color)
	}

	var b strings.Builder
	b.WriteString("<LinearGradient\n")
	fmt.Fprintf(&b, "  colors={[%s]}\n", strings.Join(quoted, ", "))
	if c.Locations != nil {
		locs := make([]string, len(c.Locations))
		for i, loc := range c.Locations {
			locs[i] = formatCoord(loc)
		}
		fmt.Fprintf(&b, "  locations={[%s]}\n", strings.Join(locs, ", "))
	}
	fmt.Fprintf(&b, "  start={{ x: %s, y: %s }}\n", formatCoord(c.Start.X), formatCoord(c.Start.Y))
	fmt.Fprintf(&b, "  end={{ x: %s, y: %s }}\n", formatCoord(c.End.X), formatCoord(c.End.Y))
	b.WriteString("  style={{ flex: 1 }}\n")
	b.WriteString("/>")
	return b.String()
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// collapse -0
		return 0
	}
	return r
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.2f", round2(v))
}
