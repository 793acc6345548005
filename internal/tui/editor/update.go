package editor

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/gradix/internal/colorspace"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.handleInputKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left":
		m.gradient = m.gradient.WithAngle(m.gradient.Angle - angleStep)
	case "right":
		m.gradient = m.gradient.WithAngle(m.gradient.Angle + angleStep)
	case "shift+left":
		m.gradient = m.gradient.WithAngle(m.gradient.Angle - angleStepLarge)
	case "shift+right":
		m.gradient = m.gradient.WithAngle(m.gradient.Angle + angleStepLarge)
	case "u":
		m.gradient = m.gradient.WithUseAngle(!m.gradient.UseAngle)

	case "tab", "down", "j":
		m.selected = (m.selected + 1) % len(m.gradient.ColorStops)
	case "shift+tab", "up", "k":
		m.selected = (m.selected - 1 + len(m.gradient.ColorStops)) % len(m.gradient.ColorStops)

	case "[":
		m.moveStop(-positionStep)
	case "]":
		m.moveStop(positionStep)

	case "h":
		m.adjustHSB(-hueStep, 0)
	case "H":
		m.adjustHSB(hueStep, 0)
	case "b":
		m.adjustHSB(0, -brightnessStep)
	case "B":
		m.adjustHSB(0, brightnessStep)

	case "e":
		m.editing = true
		m.input.SetValue(m.selectedStop().Color)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "a":
		m.addStop()
	case "x":
		m.removeStop()

	case "r":
		if g, err := m.svc.Random(); err != nil {
			m.status.Notify(studio.LevelError, err.Error())
		} else {
			m.gradient = g
			m.selected = 0
		}
	case "s":
		if saved, err := m.svc.Save(m.gradient); err == nil {
			m.gradient = saved
		}

	case "f":
		m.format = (m.format + 1) % len(formats)
	case "c":
		if m.opts.ColorFormat == render.ColorRGBA {
			m.opts.ColorFormat = render.ColorHex
		} else {
			m.opts.ColorFormat = render.ColorRGBA
		}
	case "l":
		m.opts.IncludeLocations = !m.opts.IncludeLocations
	}

	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()
		m.setColor(m.input.Value())
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// setColor keeps the previous color when value is not a hex color.
func (m *Model) setColor(value string) {
	stop := m.selectedStop()
	stop.Color = value

	updated, err := m.gradient.WithStop(m.selected, stop)
	if err != nil {
		m.status.Notify(studio.LevelError, fmt.Sprintf("%q is not a hex color", value))
		return
	}
	m.gradient = updated
}

func (m *Model) moveStop(delta float64) {
	stop := m.selectedStop()
	stop.Position = math.Round(math.Max(0, math.Min(1, stop.Position+delta))*100) / 100

	if updated, err := m.gradient.WithStop(m.selected, stop); err == nil {
		m.gradient = updated
	}
}

func (m *Model) adjustHSB(hueDelta, brightnessDelta float64) {
	stop := m.selectedStop()
	hsb, err := colorspace.HexToHSB(stop.Color)
	if err != nil {
		m.status.Notify(studio.LevelError, err.Error())
		return
	}

	stop.Color = colorspace.HSBToHex(hsb.H+hueDelta, hsb.S, hsb.B+brightnessDelta)
	if updated, err := m.gradient.WithStop(m.selected, stop); err == nil {
		m.gradient = updated
	}
}

func (m *Model) addStop() {
	if len(m.gradient.ColorStops) >= gradient.MaxEditorStops {
		m.status.Notify(studio.LevelError, fmt.Sprintf("A gradient can have at most %d stops here", gradient.MaxEditorStops))
		return
	}

	updated, err := m.gradient.AddStop(NewStopColor)
	if err != nil {
		m.status.Notify(studio.LevelError, err.Error())
		return
	}
	m.gradient = updated
	m.selected = len(updated.ColorStops) - 1
}

func (m *Model) removeStop() {
	updated, err := m.gradient.RemoveStop(m.selected)
	if err != nil {
		m.status.Notify(studio.LevelError, fmt.Sprintf("A gradient needs at least %d stops", gradient.MinStops))
		return
	}
	m.gradient = updated
	if m.selected >= len(updated.ColorStops) {
		m.selected = len(updated.ColorStops) - 1
	}
}
