package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
)

// DefaultDirection is the stylesheet direction used when a gradient does not
// render by angle.
const DefaultDirection = "to bottom"

// Stylesheet renders g as "linear-gradient(<direction>, <color> <pct>%, ...)".
func Stylesheet(g gradient.Gradient, opts Options) (string, error) {
	normalized, stops, err := prepare(g)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(stops))
	for _, stop := range stops {
		token, err := colorToken(stop, opts.ColorFormat)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%s %d%%", token, percent(stop.Position)))
	}

	direction := DefaultDirection
	if normalized.UseAngle {
		direction = fmt.Sprintf("%ddeg", normalized.Angle)
	}

	return fmt.Sprintf("linear-gradient(%s, %s)", direction, strings.Join(parts, ", ")), nil
}

func percent(position float64) int {
	return int(math.Round(position * 100))
}
