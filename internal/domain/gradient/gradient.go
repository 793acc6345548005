package gradient

import (
	"math"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/gradix/internal/colorspace"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

const (
	// MinStops is the smallest number of stops a gradient may carry.
	MinStops = 2
	// MaxEditorStops caps the stops the interactive editor lets a user add.
	// The core accepts more.
	MaxEditorStops = 5

	fullCircle = 360
)

// ColorStop marks one point along a gradient. Position and Opacity are
// fractions in [0,1].
type ColorStop struct {
	Color    string  `json:"color" yaml:"color" validate:"required,stop_color"`
	Position float64 `json:"position" yaml:"position" validate:"gte=0,lte=1"`
	Opacity  float64 `json:"opacity" yaml:"opacity" validate:"gte=0,lte=1"`
}

// Gradient is the canonical linear gradient description.
type Gradient struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Angle      int         `json:"angle" yaml:"angle" validate:"gte=0,lt=360"`
	UseAngle   bool        `json:"useAngle" yaml:"useAngle"`
	ColorStops []ColorStop `json:"colorStops" yaml:"colorStops" validate:"min=2,dive"`
}

// NewStop builds a fully opaque stop.
func NewStop(color string, position float64) ColorStop {
	return ColorStop{Color: color, Position: position, Opacity: 1}
}

// New normalizes and validates a gradient built from the supplied parts.
func New(angle int, useAngle bool, stops ...ColorStop) (Gradient, error) {
	return Normalize(Gradient{Angle: angle, UseAngle: useAngle, ColorStops: stops})
}

// Default returns the gradient an editor starts from.
func Default() Gradient {
	return Gradient{
		Name:     "Untitled",
		Angle:    90,
		UseAngle: true,
		ColorStops: []ColorStop{
			NewStop("#4F46E5", 0),
			NewStop("#EC4899", 1),
		},
	}
}

// Normalize expands and upper-cases stop colors, wraps the angle into
// [0,360) and validates the result. The input is not modified.
func Normalize(g Gradient) (Gradient, error) {
	out := g.Clone()
	out.Name = strings.TrimSpace(out.Name)
	out.Angle = NormalizeAngle(out.Angle)

	for i, stop := range out.ColorStops {
		hex, err := colorspace.NormalizeHex(stop.Color)
		if err != nil {
			return Gradient{}, withField(err, stopField(i, "color"))
		}
		out.ColorStops[i].Color = hex
	}

	if err := Validate(out); err != nil {
		return Gradient{}, err
	}
	return out, nil
}

// NormalizeAngle wraps any integer angle into [0,360).
func NormalizeAngle(angle int) int {
	angle %= fullCircle
	if angle < 0 {
		angle += fullCircle
	}
	return angle
}

// Clone returns a deep copy of g.
func (g Gradient) Clone() Gradient {
	out := g
	if g.ColorStops != nil {
		out.ColorStops = make([]ColorStop, len(g.ColorStops))
		copy(out.ColorStops, g.ColorStops)
	}
	return out
}

// SortedStops returns the stops ordered ascending by position. Stops with
// equal positions keep their insertion order.
func SortedStops(g Gradient) []ColorStop {
	sorted := make([]ColorStop, len(g.ColorStops))
	copy(sorted, g.ColorStops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// WithAngle returns a copy with the angle set and wrapped into [0,360).
func (g Gradient) WithAngle(angle int) Gradient {
	out := g.Clone()
	out.Angle = NormalizeAngle(angle)
	return out
}

// WithUseAngle returns a copy with angle-based rendering toggled.
func (g Gradient) WithUseAngle(useAngle bool) Gradient {
	out := g.Clone()
	out.UseAngle = useAngle
	return out
}

// WithName returns a copy with the supplied name.
func (g Gradient) WithName(name string) Gradient {
	out := g.Clone()
	out.Name = strings.TrimSpace(name)
	return out
}

// WithID returns a copy carrying id.
func (g Gradient) WithID(id string) Gradient {
	out := g.Clone()
	out.ID = id
	return out
}

// WithStop returns a copy with the stop at index replaced.
func (g Gradient) WithStop(index int, stop ColorStop) (Gradient, error) {
	if index < 0 || index >= len(g.ColorStops) {
		return Gradient{}, gerrors.NewInvalidGradient("colorStops", "stop index out of range")
	}

	hex, err := colorspace.NormalizeHex(stop.Color)
	if err != nil {
		return Gradient{}, withField(err, stopField(index, "color"))
	}
	stop.Color = hex

	out := g.Clone()
	out.ColorStops[index] = stop
	return out, nil
}

// AddStop returns a copy with a fully opaque stop appended at
// NextStopPosition.
func (g Gradient) AddStop(color string) (Gradient, error) {
	hex, err := colorspace.NormalizeHex(color)
	if err != nil {
		return Gradient{}, withField(err, stopField(len(g.ColorStops), "color"))
	}

	out := g.Clone()
	out.ColorStops = append(out.ColorStops, NewStop(hex, NextStopPosition(g.ColorStops)))
	return out, nil
}

// RemoveStop returns a copy without the stop at index. At least MinStops
// stops always remain.
func (g Gradient) RemoveStop(index int) (Gradient, error) {
	if index < 0 || index >= len(g.ColorStops) {
		return Gradient{}, gerrors.NewInvalidGradient("colorStops", "stop index out of range")
	}
	if len(g.ColorStops) <= MinStops {
		return Gradient{}, gerrors.NewInvalidGradient("colorStops", "at least 2 color stops are required")
	}

	out := g.Clone()
	out.ColorStops = append(out.ColorStops[:index], out.ColorStops[index+1:]...)
	return out, nil
}

// NextStopPosition picks where a new stop goes: a quarter past the last stop
// while there is room, else a quarter before the first, else the middle of
// the widest gap.
func NextStopPosition(stops []ColorStop) float64 {
	if len(stops) == 0 {
		return 0
	}

	positions := make([]float64, len(stops))
	for i, stop := range stops {
		positions[i] = stop.Position
	}
	sort.Float64s(positions)

	first, last := positions[0], positions[len(positions)-1]
	switch {
	case last < 1:
		return math.Min(1, last+0.25)
	case first > 0:
		return math.Max(0, first-0.25)
	}

	maxGap := 0.0
	next := 0.5
	for i := 0; i+1 < len(positions); i++ {
		if gap := positions[i+1] - positions[i]; gap > maxGap {
			maxGap = gap
			next = positions[i] + gap/2
		}
	}
	return next
}
