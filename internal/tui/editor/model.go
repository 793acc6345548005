// Package editor is the interactive terminal gradient editor.
package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

const (
	// NewStopColor is the color given to stops added from the editor.
	NewStopColor = "#8B5CF6"

	angleStep      = 1
	angleStepLarge = 15
	positionStep   = 0.05
	hueStep        = 10
	brightnessStep = 5
)

var formats = []render.Format{render.FormatCSS, render.FormatReactNative, render.FormatSVG}

// StatusLine collects the latest studio notification for display. It
// implements studio.Notifier.
type StatusLine struct {
	Level   studio.Level
	Message string
}

// Notify records the message, replacing the previous one.
func (s *StatusLine) Notify(level studio.Level, message string) {
	s.Level = level
	s.Message = message
}

// Model contains the Bubbletea state for the gradient editor.
type Model struct {
	svc      *studio.Service
	status   *StatusLine
	gradient gradient.Gradient
	selected int
	format   int
	opts     render.Options
	input    textinput.Model
	editing  bool
	width    int
	quitting bool
}

// New builds an editor starting from g. status should be the notifier the
// service was built with so that service messages reach the status line.
func New(svc *studio.Service, status *StatusLine, g gradient.Gradient, opts render.Options) Model {
	if status == nil {
		status = &StatusLine{}
	}

	input := textinput.New()
	input.Prompt = "hex> "
	input.Placeholder = "#RRGGBB"
	input.CharLimit = 7

	normalized, err := gradient.Normalize(g)
	if err != nil {
		normalized = gradient.Default()
		status.Notify(studio.LevelError, "Starting gradient is invalid, using the default")
	}

	return Model{
		svc:      svc,
		status:   status,
		gradient: normalized,
		opts:     opts,
		input:    input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Gradient returns the gradient being edited.
func (m Model) Gradient() gradient.Gradient {
	return m.gradient.Clone()
}

// Selected returns the index of the selected stop.
func (m Model) Selected() int {
	return m.selected
}

// Format returns the current code output format.
func (m Model) Format() render.Format {
	return formats[m.format]
}

// Options returns the current render options.
func (m Model) Options() render.Options {
	return m.opts
}

// Editing reports whether the hex input has focus.
func (m Model) Editing() bool {
	return m.editing
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Status returns the current status line.
func (m Model) Status() StatusLine {
	return *m.status
}

func (m Model) selectedStop() gradient.ColorStop {
	return m.gradient.ColorStops[m.selected]
}
