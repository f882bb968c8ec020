package testutil

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives a tea.Model outside a running program, collecting the
// commands it returns so tests can run them and feed results back.
type Harness struct {
	model tea.Model
	cmds  []tea.Cmd
}

// NewHarness wraps m and captures its init command.
func NewHarness(m tea.Model) *Harness {
	h := &Harness{model: m}
	if cmd := m.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Model returns the wrapped model for type assertion.
func (h *Harness) Model() tea.Model {
	return h.model
}

// View returns the model's rendered content.
func (h *Harness) View() string {
	return h.model.View()
}

// SendMsg sends any message to the model and returns the resulting command.
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey simulates a key press.
func (h *Harness) SendKey(key string) tea.Cmd {
	if key == " " {
		return h.SendMsg(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// Commands returns all commands collected since creation or last ClearCommands.
func (h *Harness) Commands() []tea.Cmd {
	return h.cmds
}

// ClearCommands clears the collected commands.
func (h *Harness) ClearCommands() {
	h.cmds = nil
}

// Collect runs cmd, expanding batches, and returns the messages produced
// within wait. Commands still blocked after wait (subscription watchers,
// typically) are abandoned and their results discarded.
func Collect(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}

	out := make(chan tea.Msg, 64)
	run := func(c tea.Cmd) {
		go func() { out <- c() }()
	}
	run(cmd)
	pending := 1

	var msgs []tea.Msg
	timeout := time.After(wait)
	for pending > 0 {
		select {
		case msg := <-out:
			pending--
			switch msg := msg.(type) {
			case nil:
			case tea.BatchMsg:
				for _, c := range msg {
					if c != nil {
						run(c)
						pending++
					}
				}
			default:
				msgs = append(msgs, msg)
			}
		case <-timeout:
			return msgs
		}
	}
	return msgs
}
