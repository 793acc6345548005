package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/gradix/internal/preview"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

const (
	defaultSwatchWidth = 48
	swatchHeight       = 3
	helpText           = "←/→ angle  u angle on/off  tab stop  [ ] move  h/H hue  b/B brightness  e hex  a add  x remove  r random  s save  f format  c hex/rgba  l locations  q quit"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("gradix • %s", m.title())))

	if swatch, err := preview.Swatch(m.gradient, m.swatchWidth(), swatchHeight); err == nil {
		sections = append(sections, swatch)
	}

	direction := render.DefaultDirection
	if m.gradient.UseAngle {
		direction = fmt.Sprintf("%d°", m.gradient.Angle)
	}
	sections = append(sections, mutedStyle.Render(fmt.Sprintf("direction: %s", direction)))

	sections = append(sections, sectionStyle.Render("Stops"), m.renderStops())

	if m.editing {
		sections = append(sections, m.input.View())
	}

	sections = append(sections, sectionStyle.Render(fmt.Sprintf("Code (%s, %s)", m.Format(), m.colorFormatLabel())))
	code, err := render.Render(m.gradient, m.Format(), m.opts)
	if err != nil {
		code = err.Error()
	}
	sections = append(sections, codeStyle.Render(code))

	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, mutedStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStops() string {
	lines := make([]string, 0, len(m.gradient.ColorStops))
	for i, stop := range m.gradient.ColorStops {
		label := fmt.Sprintf("%s %3d%%  opacity %s", stop.Color, int(stop.Position*100+0.5), formatOpacity(stop.Opacity))
		cursor := "  "
		if i == m.selected {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		lines = append(lines, cursor+preview.Chip(stop.Color, label))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.status == nil || m.status.Message == "" {
		return ""
	}
	if m.status.Level == studio.LevelError {
		return failureStyle.Render("✗ " + m.status.Message)
	}
	return successStyle.Render("✓ " + m.status.Message)
}

func (m Model) title() string {
	if strings.TrimSpace(m.gradient.Name) != "" {
		return m.gradient.Name
	}
	return "Untitled"
}

func (m Model) swatchWidth() int {
	if m.width > 4 && m.width-4 < defaultSwatchWidth {
		return m.width - 4
	}
	return defaultSwatchWidth
}

func (m Model) colorFormatLabel() string {
	if m.opts.ColorFormat == render.ColorRGBA {
		return "rgba"
	}
	return "hex"
}

func formatOpacity(o float64) string {
	return fmt.Sprintf("%.2f", o)
}
