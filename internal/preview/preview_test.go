package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

func redToBlue() gradient.Gradient {
	return gradient.Gradient{
		Angle:    90,
		UseAngle: true,
		ColorStops: []gradient.ColorStop{
			gradient.NewStop("#0000FF", 1),
			gradient.NewStop("#FF0000", 0),
		},
	}
}

func TestSamplerInterpolates(t *testing.T) {
	s, err := NewSampler(redToBlue())
	require.NoError(t, err)

	c, alpha := s.At(0)
	assert.Equal(t, "#ff0000", c.Hex())
	assert.Equal(t, 1.0, alpha)

	c, _ = s.At(1)
	assert.Equal(t, "#0000ff", c.Hex())

	c, _ = s.At(0.5)
	assert.InDelta(t, 0.5, c.R, 1e-9)
	assert.InDelta(t, 0.0, c.G, 1e-9)
	assert.InDelta(t, 0.5, c.B, 1e-9)
}

func TestSamplerExtendsEndColors(t *testing.T) {
	g := redToBlue()
	g.ColorStops[0].Position = 0.8
	g.ColorStops[1].Position = 0.2

	s, err := NewSampler(g)
	require.NoError(t, err)

	c, _ := s.At(0.1)
	assert.Equal(t, "#ff0000", c.Hex())
	c, _ = s.At(0.95)
	assert.Equal(t, "#0000ff", c.Hex())
}

func TestSamplerHandlesCoincidentStops(t *testing.T) {
	g := gradient.Gradient{ColorStops: []gradient.ColorStop{
		gradient.NewStop("#000000", 0),
		gradient.NewStop("#FF0000", 0.5),
		gradient.NewStop("#00FF00", 0.5),
		gradient.NewStop("#FFFFFF", 1),
	}}

	s, err := NewSampler(g)
	require.NoError(t, err)

	c, _ := s.At(0.5)
	assert.Equal(t, "#ff0000", c.Hex())
	c, _ = s.At(0.75)
	assert.InDelta(t, 0.5, c.R, 1e-9)
	assert.InDelta(t, 1.0, c.G, 1e-9)
}

func TestCompositeAppliesOpacity(t *testing.T) {
	g := gradient.Gradient{ColorStops: []gradient.ColorStop{
		{Color: "#FFFFFF", Position: 0, Opacity: 0.5},
		{Color: "#FFFFFF", Position: 1, Opacity: 0},
	}}

	s, err := NewSampler(g)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, s.Composite(0).R, 1e-9)
	assert.InDelta(t, 0.25, s.Composite(0.5).R, 1e-9)
	assert.Equal(t, "#000000", s.Composite(1).Hex())
}

func TestSwatchDimensions(t *testing.T) {
	out, err := Swatch(redToBlue(), 24, 3)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 24, lipgloss.Width(line))
	}

	_, err = Swatch(redToBlue(), 0, 1)
	require.Error(t, err)

	single := redToBlue()
	single.ColorStops = single.ColorStops[:1]
	_, err = Swatch(single, 10, 1)
	require.ErrorIs(t, err, gerrors.ErrInvalidGradient)
}

func TestChip(t *testing.T) {
	chip := Chip("#FF0000", "#FF0000 0%")
	assert.Contains(t, chip, "#FF0000 0%")
	assert.Equal(t, 2+1+len("#FF0000 0%"), lipgloss.Width(chip))
}
