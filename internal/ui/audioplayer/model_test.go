package audioplayer

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/sound"
	"github.com/llehouerou/tapedeck/internal/ui/testutil"
)

const collectWait = 100 * time.Millisecond

func newTestModel(t *testing.T, props Props, opts ...Option) (*Model, *testutil.Harness, *sound.MockRuntime) {
	t.Helper()
	rt := sound.NewMockRuntime()
	m := New(rt, props, opts...)
	h := testutil.NewHarness(m)
	t.Cleanup(m.Close)
	return m, h, rt
}

// run executes cmd and feeds every message it produces back to the model.
func run(h *testutil.Harness, cmd tea.Cmd) []tea.Msg {
	msgs := testutil.Collect(cmd, collectWait)
	for _, msg := range msgs {
		h.SendMsg(msg)
	}
	return msgs
}

func playing(pos, dur time.Duration) sound.Loaded {
	return sound.Loaded{Position: pos, Duration: dur, IsPlaying: true, Rate: 1}
}

// loadedModel returns a widget whose resource has reported st.
func loadedModel(t *testing.T, audio bool, st sound.Loaded) (*Model, *testutil.Harness, *sound.Mock) {
	t.Helper()
	m, h, rt := newTestModel(t, Props{AudioEnabled: audio, Source: sound.Source{URI: "/music/a.mp3"}})
	mock := rt.Last()
	mock.Emit(st)
	run(h, h.Commands()[0])
	if _, ok := m.Projection().View.(core.Loaded); !ok {
		t.Fatalf("View = %T after status, want Loaded", m.Projection().View)
	}
	return m, h, mock
}

func TestInit_WithoutSource_AcquiresNothing(t *testing.T) {
	m, h, rt := newTestModel(t, Props{AudioEnabled: true})

	if len(h.Commands()) != 0 {
		t.Errorf("Init() returned %d commands, want none", len(h.Commands()))
	}
	if len(rt.Sounds()) != 0 {
		t.Errorf("created %d sounds, want 0", len(rt.Sounds()))
	}
	if _, ok := m.Projection().View.(core.Unloaded); !ok {
		t.Errorf("View = %T, want Unloaded", m.Projection().View)
	}
}

func TestInit_LoadsSourceWithInterval(t *testing.T) {
	_, h, rt := newTestModel(t,
		Props{AudioEnabled: true, Source: sound.Source{URI: "/music/a.mp3"}},
		WithProgressInterval(250*time.Millisecond),
	)

	run(h, h.Commands()[0])

	mock := rt.Last()
	if calls := mock.LoadCalls(); len(calls) != 1 || calls[0].URI != "/music/a.mp3" {
		t.Fatalf("LoadCalls() = %v", calls)
	}
	if got := mock.LoadOptionsCalls()[0].ProgressUpdateInterval; got != 250*time.Millisecond {
		t.Errorf("interval = %v, want 250ms", got)
	}
}

func TestStatus_ProjectsSnapshotWithHandle(t *testing.T) {
	m, _, mock := loadedModel(t, true, playing(2*time.Second, 10*time.Second))

	l, _ := core.AsLoaded(m.Projection().View)
	if l.Handle != mock {
		t.Error("Handle should reference the acquired sound")
	}
	if l.Position != 2*time.Second || !l.IsPlaying {
		t.Errorf("Loaded = %+v", l)
	}
}

func TestStatus_RewatchesAfterEachUpdate(t *testing.T) {
	m, h, mock := loadedModel(t, true, playing(time.Second, 10*time.Second))

	// The status message returned the next watch command.
	next := h.Commands()[len(h.Commands())-1]
	mock.Emit(playing(3*time.Second, 10*time.Second))
	run(h, next)

	l, _ := core.AsLoaded(m.Projection().View)
	if l.Position != 3*time.Second {
		t.Errorf("Position = %v, want 3s", l.Position)
	}
}

func TestStatus_FailureClearsSnapshot(t *testing.T) {
	m, _, _ := loadedModel(t, true, playing(time.Second, 10*time.Second))
	id := m.res.ID

	m.Update(statusMsg{resource: id, status: sound.Unloaded{Err: errors.New("device lost")}})

	if _, ok := m.Projection().View.(core.Unloaded); !ok {
		t.Errorf("View = %T, want Unloaded", m.Projection().View)
	}
	if msg, _ := m.Projection().Err.Message(); msg != "device lost" {
		t.Errorf("Err = %q, want device lost", msg)
	}
}

func TestLoadFailure_SetsError(t *testing.T) {
	rt := sound.NewMockRuntime()
	rt.Prepare = func(m *sound.Mock) { m.SetLoadError(errors.New("unsupported format \".xyz\"")) }
	m := New(rt, Props{AudioEnabled: true, Source: sound.Source{URI: "/a.xyz"}})
	h := testutil.NewHarness(m)
	t.Cleanup(m.Close)

	run(h, h.Commands()[0])

	if msg, _ := m.Projection().Err.Message(); msg != "unsupported format \".xyz\"" {
		t.Errorf("Err = %q", msg)
	}
	if s := testutil.AssertContains(m.View(), "unsupported format"); s != "" {
		t.Error(s)
	}
}

func TestStaleMessages_Ignored(t *testing.T) {
	m, _, _ := loadedModel(t, true, playing(time.Second, 10*time.Second))
	oldID := m.res.ID

	m.Update(SetPropsMsg{Props: Props{AudioEnabled: true, Source: sound.Source{URI: "/music/b.mp3"}}})

	m.Update(statusMsg{resource: oldID, status: playing(5*time.Second, 10*time.Second)})
	m.Update(loadDoneMsg{resource: oldID, err: errors.New("late failure")})
	m.Update(titleMsg{resource: oldID, title: sound.Title{Title: "Old"}})

	if _, ok := m.Projection().View.(core.Unloaded); !ok {
		t.Errorf("View = %T, want Unloaded", m.Projection().View)
	}
	if m.Projection().Err.IsSet() {
		t.Error("stale load failure should be ignored")
	}
	if m.Snapshot().Title.Title == "Old" {
		t.Error("stale title should be ignored")
	}
}

func TestSourceChange_ReleasesOldResourceOnce(t *testing.T) {
	m, h, rt := newTestModel(t, Props{AudioEnabled: true, Source: sound.Source{URI: "/music/a.mp3"}})
	first := rt.Last()

	cmd := h.SendMsg(SetPropsMsg{Props: Props{AudioEnabled: true, Source: sound.Source{URI: "/music/b.mp3"}}})
	run(h, cmd)

	if first.UnloadCalls() != 1 {
		t.Errorf("first UnloadCalls() = %d, want 1", first.UnloadCalls())
	}
	if first.Subscribers() != 0 {
		t.Errorf("first Subscribers() = %d, want 0", first.Subscribers())
	}
	second := rt.Last()
	if second == first {
		t.Fatal("source change should acquire a new sound")
	}
	if calls := second.LoadCalls(); len(calls) != 1 || calls[0].URI != "/music/b.mp3" {
		t.Errorf("second LoadCalls() = %v", calls)
	}

	m.Close()
	m.Close()
	if first.UnloadCalls() != 1 || second.UnloadCalls() != 1 {
		t.Errorf("UnloadCalls() = %d, %d, want 1, 1", first.UnloadCalls(), second.UnloadCalls())
	}
}

func TestSameSource_KeepsResource(t *testing.T) {
	m, h, rt := newTestModel(t, Props{AudioEnabled: true, Source: sound.Source{URI: "/music/a.mp3"}})

	cmd := h.SendMsg(SetPropsMsg{Props: Props{AudioEnabled: false, Source: sound.Source{URI: "/music/a.mp3"}}})

	if cmd != nil {
		t.Error("props change without a new source should not return a command")
	}
	if len(rt.Sounds()) != 1 || rt.Last().UnloadCalls() != 0 {
		t.Error("resource should be kept")
	}
	if m.Props().AudioEnabled {
		t.Error("AudioEnabled should be updated")
	}
}

func TestSourceCleared_ReleasesResource(t *testing.T) {
	m, h, rt := newTestModel(t, Props{AudioEnabled: true, Source: sound.Source{URI: "/music/a.mp3"}})

	cmd := h.SendMsg(SetPropsMsg{Props: Props{AudioEnabled: true}})

	if cmd != nil {
		t.Error("empty source should not acquire")
	}
	if rt.Last().UnloadCalls() != 1 {
		t.Errorf("UnloadCalls() = %d, want 1", rt.Last().UnloadCalls())
	}
	if m.res != nil {
		t.Error("resource should be dropped")
	}
}

func TestClose_DuringLoad_CancelsAndUnloadsOnce(t *testing.T) {
	rt := sound.NewMockRuntime()
	rt.Prepare = func(m *sound.Mock) { m.BlockLoad() }
	m := New(rt, Props{AudioEnabled: true, Source: sound.Source{URI: "/slow.mp3"}})
	cmd := m.Init()

	done := make(chan []tea.Msg, 1)
	go func() { done <- testutil.Collect(cmd, time.Second) }()

	m.Close()

	for _, msg := range <-done {
		if ld, ok := msg.(loadDoneMsg); ok && ld.err != nil {
			m.Update(msg)
		}
	}
	if n := rt.Last().UnloadCalls(); n != 1 {
		t.Errorf("UnloadCalls() = %d, want 1", n)
	}
	if m.Projection().Err.IsSet() {
		t.Error("cancelled load should not set an error")
	}
}

func TestQuitKey_ClosesAndQuits(t *testing.T) {
	_, h, rt := newTestModel(t, Props{AudioEnabled: true, Source: sound.Source{URI: "/a.mp3"}})

	cmd := h.SendKey("q")

	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if rt.Last().UnloadCalls() != 1 {
		t.Errorf("UnloadCalls() = %d, want 1", rt.Last().UnloadCalls())
	}
}

func TestKeys_DispatchCommands(t *testing.T) {
	tests := []struct {
		key  string
		want sound.Command
	}{
		{" ", sound.Pause{}},
		{"p", sound.Pause{}},
		{"l", sound.SetLooping{Looping: true}},
		{"[", sound.SetRate{Rate: core.RateSlow, Quality: sound.PitchQualityHigh}},
		{"]", sound.SetRate{Rate: core.RateFast, Quality: sound.PitchQualityHigh}},
		{"c", sound.SetRate{Rate: 1, CorrectPitch: true, Quality: sound.PitchQualityHigh}},
		{"m", sound.SetMuted{Muted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, h, mock := loadedModel(t, true, playing(time.Second, 10*time.Second))

			h.SendKey(tt.key)

			if got := mock.LastCommand(); got != tt.want {
				t.Errorf("command = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestKeys_AudioDisabled_NoCommands(t *testing.T) {
	_, h, mock := loadedModel(t, false, playing(time.Second, 10*time.Second))

	for _, k := range []string{" ", "l", "[", "]", "c", "m"} {
		h.SendKey(k)
	}

	if n := len(mock.Commands()); n != 0 {
		t.Errorf("sent %d commands, want 0", n)
	}
}

func TestIntentMsg_Dispatches(t *testing.T) {
	m, _, mock := loadedModel(t, true, sound.Loaded{Position: 500 * time.Millisecond, Duration: time.Second, Rate: 1})

	m.Update(IntentMsg{Intent: core.IntentPlayPause})

	if got := mock.LastCommand(); got != (sound.PlayFromPosition{Position: 0}) {
		t.Errorf("command = %#v, want PlayFromPosition(0)", got)
	}
}

func TestObserver_ReceivesSnapshots(t *testing.T) {
	var got []Snapshot
	rt := sound.NewMockRuntime()
	m := New(rt,
		Props{AudioEnabled: true, Source: sound.Source{URI: "/a.mp3"}},
		WithObserver(func(s Snapshot) { got = append(got, s) }),
	)
	t.Cleanup(m.Close)
	m.Init()

	m.Update(statusMsg{resource: m.res.ID, status: playing(time.Second, 2*time.Second)})

	if len(got) != 1 {
		t.Fatalf("observer called %d times, want 1", len(got))
	}
	if _, ok := got[0].View.(core.Loaded); !ok || !got[0].AudioEnabled {
		t.Errorf("snapshot = %+v", got[0])
	}
}

func TestClosed_IgnoresMessages(t *testing.T) {
	m, _, mock := loadedModel(t, true, playing(time.Second, 10*time.Second))
	id := m.res.ID

	m.Close()
	_, cmd := m.Update(statusMsg{resource: id, status: playing(2*time.Second, 10*time.Second)})
	m.Update(IntentMsg{Intent: core.IntentToggleMuted})

	if cmd != nil {
		t.Error("closed model should not return commands")
	}
	if n := len(mock.Commands()); n != 0 {
		t.Errorf("sent %d commands after close", n)
	}
}
