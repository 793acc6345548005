// Package preview draws gradients as colored terminal cells.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
)

// Background is the color translucent stops are composited over.
var Background = colorful.Color{R: 0, G: 0, B: 0}

type sample struct {
	pos     float64
	color   colorful.Color
	opacity float64
}

// Sampler evaluates a gradient along its axis.
type Sampler struct {
	stops []sample
}

// NewSampler prepares g for sampling. g is normalized first.
func NewSampler(g gradient.Gradient) (*Sampler, error) {
	normalized, err := gradient.Normalize(g)
	if err != nil {
		return nil, err
	}

	sorted := gradient.SortedStops(normalized)
	s := &Sampler{stops: make([]sample, 0, len(sorted))}
	for _, stop := range sorted {
		c, err := colorful.Hex(stop.Color)
		if err != nil {
			return nil, fmt.Errorf("parse stop color %s: %w", stop.Color, err)
		}
		s.stops = append(s.stops, sample{pos: stop.Position, color: c, opacity: stop.Opacity})
	}
	return s, nil
}

// At returns the interpolated color and opacity at t in [0,1]. Outside the
// first and last stop the end colors extend.
func (s *Sampler) At(t float64) (colorful.Color, float64) {
	first, last := s.stops[0], s.stops[len(s.stops)-1]
	if t <= first.pos {
		return first.color, first.opacity
	}
	if t >= last.pos {
		return last.color, last.opacity
	}

	for i := 0; i+1 < len(s.stops); i++ {
		a, b := s.stops[i], s.stops[i+1]
		if t > b.pos {
			continue
		}
		span := b.pos - a.pos
		if span <= 0 {
			return b.color, b.opacity
		}
		f := (t - a.pos) / span
		return a.color.BlendRgb(b.color, f).Clamped(), a.opacity + f*(b.opacity-a.opacity)
	}
	return last.color, last.opacity
}

// Composite returns the opaque color seen at t over Background.
func (s *Sampler) Composite(t float64) colorful.Color {
	c, alpha := s.At(t)
	return Background.BlendRgb(c, alpha).Clamped()
}

// Swatch renders a width x height block of the gradient, left to right.
func Swatch(g gradient.Gradient, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("swatch size must be positive, got %dx%d", width, height)
	}

	s, err := NewSampler(g)
	if err != nil {
		return "", err
	}

	var row strings.Builder
	for x := 0; x < width; x++ {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		cell := lipgloss.NewStyle().Background(lipgloss.Color(s.Composite(t).Hex()))
		row.WriteString(cell.Render(" "))
	}

	rows := make([]string, height)
	for i := range rows {
		rows[i] = row.String()
	}
	return strings.Join(rows, "\n"), nil
}

// Chip renders a small block of a single hex color followed by its label.
func Chip(hex, label string) string {
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return block + " " + label
}
