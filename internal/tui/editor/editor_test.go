package editor

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gradix/internal/colorspace"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/random"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	"github.com/alexisbeaulieu97/gradix/internal/store"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

func newTestModel(t *testing.T) (Model, store.Store) {
	t.Helper()

	st := store.NewMemory()
	status := &StatusLine{}
	seq := 0
	svc := studio.NewService(st,
		studio.WithNotifier(status),
		studio.WithGenerator(random.NewSeeded(3, random.DefaultOptions())),
		studio.WithIDFunc(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
	)
	return New(svc, status, gradient.Default(), render.Options{}), st
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAngleKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 91, m.Gradient().Angle)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftLeft}, tea.KeyMsg{Type: tea.KeyShiftLeft})
	require.Equal(t, 61, m.Gradient().Angle)

	for i := 0; i < 62; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	require.Equal(t, 359, m.Gradient().Angle)

	m = press(t, m, runes("u"))
	require.False(t, m.Gradient().UseAngle)
}

func TestSelectionWraps(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, m.Selected())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, m.Selected())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 1, m.Selected())
}

func TestMoveStopClamps(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("["))
	require.Equal(t, 0.0, m.Gradient().ColorStops[0].Position)

	m = press(t, m, runes("]"), runes("]"))
	require.InDelta(t, 0.1, m.Gradient().ColorStops[0].Position, 1e-9)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("]"))
	require.Equal(t, 1.0, m.Gradient().ColorStops[1].Position)
}

func TestHueAndBrightness(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.Gradient().ColorStops[0].Color
	hsb, err := colorspace.HexToHSB(start)
	require.NoError(t, err)

	m = press(t, m, runes("H"))
	require.Equal(t, colorspace.HSBToHex(hsb.H+10, hsb.S, hsb.B), m.Gradient().ColorStops[0].Color)

	m = press(t, m, runes("h"))
	back, err := colorspace.HexToRGB(m.Gradient().ColorStops[0].Color)
	require.NoError(t, err)
	orig, err := colorspace.HexToRGB(start)
	require.NoError(t, err)
	require.InDelta(t, int(orig.R), int(back.R), 2)
	require.InDelta(t, int(orig.G), int(back.G), 2)
	require.InDelta(t, int(orig.B), int(back.B), 2)

	m = press(t, m, runes("B"))
	after, err := colorspace.HexToHSB(m.Gradient().ColorStops[0].Color)
	require.NoError(t, err)
	require.Greater(t, after.B, hsb.B)
}

func TestAddAndRemoveRespectEditorLimits(t *testing.T) {
	m, _ := newTestModel(t)

	for i := 0; i < 5; i++ {
		m = press(t, m, runes("a"))
	}
	require.Len(t, m.Gradient().ColorStops, gradient.MaxEditorStops)
	require.Equal(t, studio.LevelError, m.Status().Level)
	require.Equal(t, NewStopColor, m.Gradient().ColorStops[2].Color)
	require.Equal(t, gradient.MaxEditorStops-1, m.Selected())

	for i := 0; i < 5; i++ {
		m = press(t, m, runes("x"))
	}
	require.Len(t, m.Gradient().ColorStops, gradient.MinStops)
	require.Contains(t, m.Status().Message, "at least 2")
	require.Less(t, m.Selected(), gradient.MinStops)
}

func TestHexInput(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("e"))
	require.True(t, m.Editing())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("0f0"), tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.Editing())
	require.Equal(t, "#00FF00", m.Gradient().ColorStops[0].Color)

	m = press(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("zzz"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "#00FF00", m.Gradient().ColorStops[0].Color)
	require.Equal(t, studio.LevelError, m.Status().Level)

	m = press(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("123"), tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Editing())
	require.Equal(t, "#00FF00", m.Gradient().ColorStops[0].Color)
}

func TestSaveAndRandomize(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, runes("s"))
	require.Equal(t, "id-1", m.Gradient().ID)
	require.Equal(t, "Gradient saved successfully", m.Status().Message)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("s"))
	list, err := st.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 91, list[0].Angle)

	m = press(t, m, runes("r"))
	require.Equal(t, random.Name, m.Gradient().Name)
	require.Empty(t, m.Gradient().ID)
	require.Equal(t, 0, m.Selected())
}

func TestOutputToggles(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, render.FormatCSS, m.Format())

	m = press(t, m, runes("f"))
	require.Equal(t, render.FormatReactNative, m.Format())
	m = press(t, m, runes("f"), runes("f"))
	require.Equal(t, render.FormatCSS, m.Format())

	m = press(t, m, runes("c"), runes("l"))
	require.Equal(t, render.Options{ColorFormat: render.ColorRGBA, IncludeLocations: true}, m.Options())
	m = press(t, m, runes("c"))
	require.Equal(t, render.ColorHex, m.Options().ColorFormat)
}

func TestViewShowsCodeAndStops(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	require.Contains(t, view, "linear-gradient(90deg, #4F46E5 0%, #EC4899 100%)")
	require.Contains(t, view, "#EC4899 100%")
	require.Contains(t, view, "Untitled")

	m = press(t, m, runes("f"))
	require.Contains(t, m.View(), "<LinearGradient")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	updated, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	m = updated.(Model)
	require.True(t, m.Quitting())
	require.Equal(t, "", strings.TrimSpace(m.View()))
}

func TestInvalidStartFallsBackToDefault(t *testing.T) {
	status := &StatusLine{}
	bad := gradient.Gradient{ColorStops: []gradient.ColorStop{gradient.NewStop("#000000", 0)}}

	m := New(studio.NewService(store.NewMemory()), status, bad, render.Options{})
	require.Equal(t, gradient.Default(), m.Gradient())
	require.Equal(t, studio.LevelError, status.Level)
}
