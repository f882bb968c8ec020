// Package audioplayer is the terminal audio player widget.
//
// The widget owns one playback resource at a time. It projects the
// resource's status stream into a view-state, maps key presses and external
// intents onto playback commands, and renders a title, a progress line, six
// control buttons, an error overlay and a help line.
package audioplayer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/keymap"
	"github.com/llehouerou/tapedeck/internal/sound"
	"github.com/llehouerou/tapedeck/internal/ui"
)

// Props are supplied by the widget's parent.
type Props struct {
	// AudioEnabled gates every control. Loading and status projection
	// continue while it is false.
	AudioEnabled bool
	Source       sound.Source
	// Style wraps the whole rendered widget.
	Style lipgloss.Style
}

// Snapshot is what external observers see after every state change.
type Snapshot struct {
	AudioEnabled bool
	Source       sound.Source
	View         core.ViewState
	Title        sound.Title
}

// Option configures a Model.
type Option func(*Model)

// WithProgressInterval sets the status interval requested from the runtime.
func WithProgressInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithObserver registers fn to be called from the event loop after every
// state change.
func WithObserver(fn func(Snapshot)) Option {
	return func(m *Model) {
		m.observer = fn
	}
}

// WithKeys replaces the default key bindings.
func WithKeys(r *keymap.Resolver) Option {
	return func(m *Model) {
		m.keys = r
	}
}

// Model is the widget. Its methods must be called from the bubbletea event
// loop only.
type Model struct {
	ui.Base

	runtime  sound.Runtime
	props    Props
	interval time.Duration
	keys     *keymap.Resolver
	help     help.Model
	observer func(Snapshot)

	res   *core.Resource
	proj  core.Projection
	title sound.Title

	closed bool
}

// Verify Model implements tea.Model at compile time.
var _ tea.Model = (*Model)(nil)

// New creates the widget. The resource for props.Source is acquired by Init.
func New(rt sound.Runtime, props Props, opts ...Option) *Model {
	m := &Model{
		runtime:  rt,
		props:    props,
		interval: sound.DefaultProgressUpdateInterval,
		keys:     keymap.NewResolver(keymap.All),
		help:     help.New(),
		proj:     core.Initial(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init acquires the resource for the initial source and starts loading it.
func (m *Model) Init() tea.Cmd {
	return m.acquire()
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = max(msg.Width-ui.FrameOverhead, ui.MinBarWidth)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SetPropsMsg:
		return m, m.setProps(msg.Props)

	case IntentMsg:
		m.dispatch(msg.Intent)
		return m, nil

	case statusMsg:
		if !m.current(msg.resource) {
			return m, nil
		}
		m.proj = core.Project(m.proj, msg.status, m.res.Sound())
		m.notify()
		return m, watchCmd(m.res)

	case loadDoneMsg:
		if !m.current(msg.resource) || msg.err == nil || errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		zlog.Error().Err(msg.err).Str("resource", msg.resource.String()).
			Str("source", m.res.Source.URI).Msg("load failed")
		m.proj = m.proj.LoadFailed(msg.err)
		m.notify()
		return m, nil

	case titleMsg:
		if m.current(msg.resource) {
			m.title = msg.title
			m.notify()
		}
		return m, nil

	case subscriptionClosedMsg:
		if m.current(msg.resource) {
			zlog.Warn().Str("resource", msg.resource.String()).Msg("status subscription closed")
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	switch action {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if in, ok := intentFor(action); ok {
		m.dispatch(in)
	}
	return m, nil
}

// intentFor maps a transport action to its control intent.
func intentFor(a keymap.Action) (core.Intent, bool) {
	switch a {
	case keymap.ActionPlayPause:
		return core.IntentPlayPause, true
	case keymap.ActionToggleLoop:
		return core.IntentToggleLooping, true
	case keymap.ActionSlower:
		return core.IntentSlower, true
	case keymap.ActionFaster:
		return core.IntentFaster, true
	case keymap.ActionTogglePitch:
		return core.IntentTogglePitchCorrection, true
	case keymap.ActionToggleMute:
		return core.IntentToggleMuted, true
	}
	return 0, false
}

func (m *Model) dispatch(in core.Intent) {
	core.Dispatch(m.props.AudioEnabled, m.proj.View, in)
}

func (m *Model) setProps(p Props) tea.Cmd {
	prev := m.props
	m.props = p
	if p.Source.URI == prev.Source.URI {
		m.notify()
		return nil
	}
	m.release()
	m.proj = core.Initial()
	m.title = sound.Title{}
	m.notify()
	return m.acquire()
}

// acquire takes a resource for the current source, if any, and returns the
// commands that load it and follow its status.
func (m *Model) acquire() tea.Cmd {
	if m.props.Source.IsZero() {
		return nil
	}
	m.res = core.Acquire(m.runtime, m.props.Source)
	return tea.Batch(
		loadCmd(m.res, sound.LoadOptions{ProgressUpdateInterval: m.interval}),
		watchCmd(m.res),
		titleCmd(m.res),
	)
}

func (m *Model) release() {
	if m.res == nil {
		return
	}
	if err := m.res.Release(); err != nil {
		zlog.Error().Err(err).Msg("release playback resource")
	}
	m.res = nil
}

func (m *Model) current(id uuid.UUID) bool {
	return m.res != nil && m.res.ID == id
}

func (m *Model) notify() {
	if m.observer != nil {
		m.observer(m.Snapshot())
	}
}

// Close releases the playback resource. It is safe to call more than once;
// later messages are ignored.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.release()
	m.proj = core.Initial()
}

// Snapshot returns the state shown to external observers.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		AudioEnabled: m.props.AudioEnabled,
		Source:       m.props.Source,
		View:         m.proj.View,
		Title:        m.title,
	}
}

// Projection returns the current view-state and error.
func (m *Model) Projection() core.Projection {
	return m.proj
}

// Props returns the current props.
func (m *Model) Props() Props {
	return m.props
}
