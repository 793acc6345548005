// Package random produces random gradients from an injected source so that a
// fixed seed yields a fixed sequence.
package random

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/alexisbeaulieu97/gradix/internal/colorspace"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

// Name is given to every generated gradient.
const Name = "Random Gradient"

const (
	minOpacity = 0.7
	maxOpacity = 1.0
)

// Options bounds the generated gradients.
type Options struct {
	MinStops      int  `yaml:"min_stops" validate:"gte=2"`
	MaxStops      int  `yaml:"max_stops" validate:"gtefield=MinStops"`
	RandomOpacity bool `yaml:"random_opacity"`
}

// DefaultOptions matches the stop range used by the editor's randomize action.
func DefaultOptions() Options {
	return Options{MinStops: 2, MaxStops: 4}
}

// Generator draws gradients from rng. It is not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	opts Options
}

// New returns a Generator over rng. A nil rng falls back to a randomly
// seeded source.
func New(rng *rand.Rand, opts Options) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng, opts: opts}
}

// NewSeeded returns a Generator whose output is fully determined by seed.
func NewSeeded(seed uint64, opts Options) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed)), opts)
}

// Generate returns a gradient with evenly spaced stops and random colors.
// The id is left empty; it is assigned when the gradient is saved.
func (gen *Generator) Generate() (gradient.Gradient, error) {
	opts := gen.opts
	if opts.MinStops < gradient.MinStops {
		return gradient.Gradient{}, gerrors.NewInvalidGradient("min_stops",
			fmt.Sprintf("must be at least %d, got %d", gradient.MinStops, opts.MinStops))
	}
	if opts.MaxStops < opts.MinStops {
		return gradient.Gradient{}, gerrors.NewInvalidGradient("max_stops",
			fmt.Sprintf("must not be below min_stops (%d), got %d", opts.MinStops, opts.MaxStops))
	}

	count := opts.MinStops + gen.rng.IntN(opts.MaxStops-opts.MinStops+1)
	stops := make([]gradient.ColorStop, count)
	for i := range stops {
		stops[i] = gradient.ColorStop{
			Color:    gen.color(),
			Position: float64(i) / float64(count-1),
			Opacity:  1,
		}
		if opts.RandomOpacity {
			stops[i].Opacity = gen.opacity()
		}
	}

	return gradient.Gradient{
		Name:       Name,
		Angle:      gen.rng.IntN(360),
		UseAngle:   true,
		ColorStops: stops,
	}, nil
}

func (gen *Generator) color() string {
	v := gen.rng.Uint32() & 0xFFFFFF
	return colorspace.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}.Hex()
}

func (gen *Generator) opacity() float64 {
	o := minOpacity + gen.rng.Float64()*(maxOpacity-minOpacity)
	return math.Round(o*100) / 100
}
