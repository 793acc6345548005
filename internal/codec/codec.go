// Package codec converts gradient documents and persisted record lists into
// the canonical gradient model. Older record shapes are adapted here so the
// core only ever sees canonical values.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// FormatFromPath picks the document format from a file extension. Anything
// that is not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format %q: expected json or yaml", s)
	}
}

// stopRecord accepts both the current and legacy stop shapes.
type stopRecord struct {
	Color    string   `json:"color" yaml:"color"`
	Position *float64 `json:"position" yaml:"position"`
	Location *float64 `json:"location" yaml:"location"`
	Opacity  *float64 `json:"opacity" yaml:"opacity"`
}

type gradientRecord struct {
	ID         string       `json:"id" yaml:"id"`
	Name       string       `json:"name" yaml:"name"`
	Angle      *float64     `json:"angle" yaml:"angle"`
	UseAngle   *bool        `json:"useAngle" yaml:"useAngle"`
	ColorStops []stopRecord `json:"colorStops" yaml:"colorStops"`
}

// Decode reads a single gradient document and returns it normalized.
func Decode(data []byte, format Format) (gradient.Gradient, error) {
	var rec gradientRecord
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &rec); err != nil {
			return gradient.Gradient{}, gerrors.NewParseError("", 0, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return gradient.Gradient{}, gerrors.NewParseError("", extractLine(err), err)
		}
	default:
		return gradient.Gradient{}, fmt.Errorf("unknown document format %q", format)
	}

	return rec.canonical(false)
}

// DecodeFile reads the document at path, picking the format from its
// extension.
func DecodeFile(path string) (gradient.Gradient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gradient.Gradient{}, gerrors.NewParseError(path, 0, err)
	}

	g, err := Decode(data, FormatFromPath(path))
	if err != nil {
		var pe *gerrors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return gradient.Gradient{}, err
	}
	return g, nil
}

// Encode writes g in the requested document format.
func Encode(g gradient.Gradient, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(g)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// canonical applies the legacy adapters and normalizes the result. Positions
// above 1 are read as percent only for legacy shapes: records that use
// location, or records read back from the saved list. Everywhere else they
// fail validation.
func (r gradientRecord) canonical(persisted bool) (gradient.Gradient, error) {
	useAngle := true
	if r.UseAngle != nil {
		useAngle = *r.UseAngle
	}

	angle, err := r.angle()
	if err != nil {
		return gradient.Gradient{}, err
	}

	g := gradient.Gradient{
		ID:         strings.TrimSpace(r.ID),
		Name:       r.Name,
		Angle:      angle,
		UseAngle:   useAngle,
		ColorStops: make([]gradient.ColorStop, len(r.ColorStops)),
	}

	legacy := persisted
	percent := false
	for i, s := range r.ColorStops {
		p, ok := s.position()
		if !ok {
			return gradient.Gradient{}, gerrors.NewInvalidGradient(fmt.Sprintf("colorStops[%d].position", i), "is required")
		}
		if s.Position == nil {
			legacy = true
		}
		if p > 1 {
			percent = true
		}
	}

	for i, s := range r.ColorStops {
		pos, _ := s.position()
		if legacy && percent {
			pos /= 100
		}

		opacity := 1.0
		if s.Opacity != nil {
			opacity = *s.Opacity
		}

		g.ColorStops[i] = gradient.ColorStop{Color: s.Color, Position: pos, Opacity: opacity}
	}

	return gradient.Normalize(g)
}

func (r gradientRecord) angle() (int, error) {
	if r.Angle == nil {
		return 0, gerrors.NewInvalidGradient("angle", "is required")
	}
	a := *r.Angle
	if math.IsNaN(a) || math.IsInf(a, 0) || a != math.Trunc(a) || math.Abs(a) > math.MaxInt32 {
		return 0, gerrors.NewInvalidGradient("angle", "must be a whole number of degrees")
	}
	return int(a), nil
}

func (s stopRecord) position() (float64, bool) {
	switch {
	case s.Position != nil:
		return *s.Position, true
	case s.Location != nil:
		return *s.Location, true
	default:
		return 0, false
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
