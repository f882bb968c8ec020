package audioplayer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/icons"
	"github.com/llehouerou/tapedeck/internal/keymap"
	"github.com/llehouerou/tapedeck/internal/ui"
	"github.com/llehouerou/tapedeck/internal/ui/render"
	"github.com/llehouerou/tapedeck/internal/ui/styles"
)

const noSource = "No source"

// View renders the widget.
func (m *Model) View() string {
	t := styles.T()
	inner := max(m.Width()-ui.FrameOverhead, ui.MinBarWidth)

	lines := []string{
		m.renderTitle(inner),
		m.renderProgress(inner),
		m.renderButtons(),
	}
	if msg, ok := m.proj.Err.Message(); ok {
		lines = append(lines, renderError(msg, inner))
	}
	lines = append(lines, m.renderHelp())

	body := t.S().Frame.Width(inner + 2).Render(strings.Join(lines, "\n"))
	return m.props.Style.Render(body)
}

func (m *Model) renderTitle(width int) string {
	t := styles.T()
	text := m.title.Title
	if m.title.Artist != "" {
		text += " · " + m.title.Artist
	}
	if text == "" {
		if m.props.Source.IsZero() {
			return t.S().Subtle.Render(noSource)
		}
		text = m.props.Source.URI
	}
	return styles.ApplyBoldGradient(render.Truncate(text, width), t.Primary, t.Secondary)
}

func (m *Model) renderProgress(width int) string {
	t := styles.T()
	text := core.Progress(m.proj.View)
	barWidth := max(width-runewidth.StringWidth(text)-2, ui.MinBarWidth)
	disabled := core.Disabled(m.props.AudioEnabled, m.proj.View)
	return t.S().Muted.Render(text) + "  " + t.ProgressBar(core.Ratio(m.proj.View), barWidth, disabled)
}

// button is one control in display order.
type button struct {
	intent core.Intent
	label  string
	active bool
}

func (m *Model) buttons() []button {
	l, _ := core.AsLoaded(m.proj.View)
	ic := icons.Current()
	return []button{
		{core.IntentPlayPause, icons.PlayPause(l.IsPlaying), l.IsPlaying},
		{core.IntentToggleLooping, ic.Loop, l.IsLooping},
		{core.IntentSlower, ic.Slower, l.Rate > 0 && l.Rate < core.RateNormal},
		{core.IntentFaster, ic.Faster, l.Rate > core.RateNormal},
		{core.IntentTogglePitchCorrection, ic.Pitch, l.ShouldCorrectPitch},
		{core.IntentToggleMuted, icons.Mute(l.IsMuted), l.IsMuted},
	}
}

func (m *Model) renderButtons() string {
	s := styles.T().S()
	disabled := core.Disabled(m.props.AudioEnabled, m.proj.View)

	parts := make([]string, 0, len(core.Intents)+1)
	for _, b := range m.buttons() {
		style := s.Button
		switch {
		case disabled:
			style = s.ButtonDisabled
		case b.active:
			style = s.ButtonActive
		}
		parts = append(parts, style.Render(b.label))
	}
	if l, ok := core.AsLoaded(m.proj.View); ok {
		parts = append(parts, s.Muted.Render(formatRate(l.Rate)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'g', -1, 64) + "x"
}

// renderError draws the error overlay. The message is shown verbatim,
// wrapped to the frame width.
func renderError(msg string, width int) string {
	s := styles.T().S()
	text := icons.Current().Warning + " " + render.Sanitize(msg)
	return s.ErrorOverlay.Width(max(width-2, 1)).Render(text)
}

func (m *Model) renderHelp() string {
	disabled := core.Disabled(m.props.AudioEnabled, m.proj.View)
	enabled := func(keymap.Action) bool { return !disabled }

	playback := m.keys.HelpBindings("playback", enabled)
	global := m.keys.HelpBindings("global", nil)
	if m.help.ShowAll {
		return m.help.FullHelpView([][]key.Binding{playback, global})
	}
	return m.help.ShortHelpView(append(playback, global...))
}
