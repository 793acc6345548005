// Package colorspace converts colors between hexadecimal, RGB, HSL and HSB
// representations. Every function is pure.
package colorspace

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

// RGB holds 8-bit red, green and blue channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL holds hue in degrees [0,360) and saturation/lightness in percent [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// HSB holds hue in degrees [0,360) and saturation/brightness in percent [0,100].
type HSB struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	B float64 `json:"b"`
}

// HexToRGB parses a 3- or 6-digit hex color, with or without a leading '#'.
// Shorthand digits are duplicated ("#fa0" is "#ffaa00").
func HexToRGB(hex string) (RGB, error) {
	digits, err := expandHex(hex)
	if err != nil {
		return RGB{}, err
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, gerrors.NewInvalidColorFormat(hex, err)
	}

	return RGB{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}, nil
}

// NormalizeHex returns the canonical upper-case "#RRGGBB" form of hex.
func NormalizeHex(hex string) (string, error) {
	digits, err := expandHex(hex)
	if err != nil {
		return "", err
	}
	return "#" + strings.ToUpper(digits), nil
}

// IsHex reports whether hex is a valid 3- or 6-digit hex color.
func IsHex(hex string) bool {
	_, err := expandHex(hex)
	return err == nil
}

func expandHex(hex string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	for _, r := range digits {
		if !isHexDigit(r) {
			return "", gerrors.NewInvalidColorFormat(hex, fmt.Errorf("invalid hex digit %q", r))
		}
	}

	switch len(digits) {
	case 6:
		return digits, nil
	case 3:
		var b strings.Builder
		b.Grow(6)
		for i := 0; i < 3; i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		return b.String(), nil
	default:
		return "", gerrors.NewInvalidColorFormat(hex, fmt.Errorf("expected 3 or 6 hex digits, got %d", len(digits)))
	}
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}

// RGBToHex rounds each channel to the nearest integer, clamps it to [0,255]
// and formats the result as upper-case "#RRGGBB".
func RGBToHex(r, g, b float64) string {
	return fmt.Sprintf("#%02X%02X%02X", clampChannel(r), clampChannel(g), clampChannel(b))
}

// Hex formats c as "#RRGGBB".
func (c RGB) Hex() string {
	return RGBToHex(float64(c.R), float64(c.G), float64(c.B))
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HexToRGBA formats hex as "rgba(r, g, b, a)". Opacity is clamped to [0,1]
// and printed with at most two decimals.
func HexToRGBA(hex string, opacity float64) (string, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, FormatAlpha(opacity)), nil
}

// FormatAlpha prints an opacity fraction rounded to two decimals without
// trailing zeros ("1", "0.7", "0.85").
func FormatAlpha(opacity float64) string {
	if math.IsNaN(opacity) || opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return strconv.FormatFloat(math.Round(opacity*100)/100, 'f', -1, 64)
}

// chroma computes the shared max/min/delta terms and the hue in degrees.
func chroma(r, g, b uint8) (maxVal, minVal, delta, hue float64) {
	rn := float64(r) / 255
	gn := float64(g) / 255
	bn := float64(b) / 255

	maxVal = math.Max(rn, math.Max(gn, bn))
	minVal = math.Min(rn, math.Min(gn, bn))
	delta = maxVal - minVal

	if delta == 0 {
		return maxVal, minVal, delta, 0
	}

	switch maxVal {
	case rn:
		hue = math.Mod((gn-bn)/delta, 6)
	case gn:
		hue = (bn-rn)/delta + 2
	default:
		hue = (rn-gn)/delta + 4
	}

	return maxVal, minVal, delta, wrapHue(hue * 60)
}

// RGBToHSL converts 8-bit channels to HSL.
func RGBToHSL(r, g, b uint8) HSL {
	maxVal, minVal, delta, hue := chroma(r, g, b)

	l := (maxVal + minVal) / 2
	s := 0.0
	if delta != 0 {
		s = delta / (1 - math.Abs(2*l-1))
	}

	return HSL{H: hue, S: clampPercent(s * 100), L: clampPercent(l * 100)}
}

// RGBToHSB converts 8-bit channels to HSB (also known as HSV).
func RGBToHSB(r, g, b uint8) HSB {
	maxVal, _, delta, hue := chroma(r, g, b)

	s := 0.0
	if maxVal != 0 {
		s = delta / maxVal
	}

	return HSB{H: hue, S: clampPercent(s * 100), B: clampPercent(maxVal * 100)}
}

// HSLToRGB reconstructs 8-bit channels from HSL. Hue wraps modulo 360;
// saturation and lightness are clamped to [0,100].
func HSLToRGB(h, s, l float64) RGB {
	sn := clampPercent(s) / 100
	ln := clampPercent(l) / 100

	c := (1 - math.Abs(2*ln-1)) * sn
	return fromSector(wrapHue(h), c, ln-c/2)
}

// HSBToRGB reconstructs 8-bit channels from HSB. Hue wraps modulo 360;
// saturation and brightness are clamped to [0,100].
func HSBToRGB(h, s, b float64) RGB {
	sn := clampPercent(s) / 100
	bn := clampPercent(b) / 100

	c := bn * sn
	return fromSector(wrapHue(h), c, bn-c)
}

// fromSector places chroma c and intermediate x in the hue sector of h and
// lifts every channel by offset m.
func fromSector(h, c, m float64) RGB {
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: clampChannel((r + m) * 255),
		G: clampChannel((g + m) * 255),
		B: clampChannel((b + m) * 255),
	}
}

// HexToHSL parses hex and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(c.R, c.G, c.B), nil
}

// HSLToHex converts HSL to "#RRGGBB".
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// HexToHSB parses hex and converts it to HSB.
func HexToHSB(hex string) (HSB, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return HSB{}, err
	}
	return RGBToHSB(c.R, c.G, c.B), nil
}

// HSBToHex converts HSB to "#RRGGBB".
func HSBToHex(h, s, b float64) string {
	return HSBToRGB(h, s, b).Hex()
}

// Rounded returns the integer display form of the color.
func (c HSL) Rounded() HSL {
	return HSL{H: wrapHue(math.Round(c.H)), S: math.Round(c.S), L: math.Round(c.L)}
}

func (c HSL) String() string {
	r := c.Rounded()
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", r.H, r.S, r.L)
}

// Rounded returns the integer display form of the color.
func (c HSB) Rounded() HSB {
	return HSB{H: wrapHue(math.Round(c.H)), S: math.Round(c.S), B: math.Round(c.B)}
}

func (c HSB) String() string {
	r := c.Rounded()
	return fmt.Sprintf("hsb(%g, %g%%, %g%%)", r.H, r.S, r.B)
}

func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
