package audioplayer

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tapedeck/internal/icons"
	"github.com/llehouerou/tapedeck/internal/sound"
	"github.com/llehouerou/tapedeck/internal/ui/testutil"
)

func TestView_Unloaded(t *testing.T) {
	icons.Init("none")
	defer icons.Init("unicode")
	m, _, _ := newTestModel(t, Props{AudioEnabled: true})

	view := m.View()

	if s := testutil.AssertContains(view, "00:00 / 00:00"); s != "" {
		t.Error(s)
	}
	if s := testutil.AssertContains(view, noSource); s != "" {
		t.Error(s)
	}
	// Disabled controls are left out of the help line.
	if s := testutil.AssertNotContains(view, "play/pause"); s != "" {
		t.Error(s)
	}
	if s := testutil.AssertContains(view, "quit"); s != "" {
		t.Error(s)
	}
}

func TestView_Loaded(t *testing.T) {
	icons.Init("none")
	defer icons.Init("unicode")
	m, _, _ := loadedModel(t, true, sound.Loaded{
		Position:  65 * time.Second,
		Duration:  3600 * time.Second,
		IsPlaying: true,
		Rate:      2,
	})

	view := m.View()

	if line := testutil.FindLine(view, "01:05 / 60:00"); line == "" {
		t.Errorf("progress line missing:\n%s", testutil.StripANSI(view))
	}
	if s := testutil.AssertContains(view, "||"); s != "" {
		t.Error(s)
	}
	if s := testutil.AssertContains(view, "2x"); s != "" {
		t.Error(s)
	}
	if s := testutil.AssertContains(view, "play/pause"); s != "" {
		t.Error(s)
	}
}

func TestView_TitleFallsBackToFileName(t *testing.T) {
	m, _, _ := loadedModel(t, true, playing(0, time.Second))

	if s := testutil.AssertContains(m.View(), "a.mp3"); s != "" {
		t.Error(s)
	}
}

func TestView_FitsWidth(t *testing.T) {
	m, h, _ := loadedModel(t, true, playing(time.Second, 10*time.Second))
	h.SendMsg(tea.WindowSizeMsg{Width: 50, Height: 10})
	m.Update(titleMsg{resource: m.res.ID, title: sound.Title{Title: strings.Repeat("Long Title ", 10)}})

	for _, line := range strings.Split(m.View(), "\n") {
		if w := testutil.MeasureWidth(line); w > 50 {
			t.Errorf("line width %d > 50: %q", w, testutil.StripANSI(line))
		}
	}
}

func TestView_ErrorOverlay(t *testing.T) {
	m, _, _ := loadedModel(t, true, playing(time.Second, 10*time.Second))

	m.Update(statusMsg{resource: m.res.ID, status: sound.Unloaded{Err: errTest("boom")}})

	if s := testutil.AssertContains(m.View(), "boom"); s != "" {
		t.Error(s)
	}
	if s := testutil.AssertContains(m.View(), "00:00 / 00:00"); s != "" {
		t.Error(s)
	}
}

func TestHelpKey_TogglesFullHelp(t *testing.T) {
	m, h, _ := newTestModel(t, Props{AudioEnabled: true})

	h.SendKey("?")

	if !m.help.ShowAll {
		t.Error("help key should expand the help view")
	}
}

func TestFormatRate(t *testing.T) {
	for rate, want := range map[float64]string{0.5: "0.5x", 1: "1x", 2: "2x"} {
		if got := formatRate(rate); got != want {
			t.Errorf("formatRate(%v) = %q, want %q", rate, got, want)
		}
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
