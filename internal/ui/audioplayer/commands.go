package audioplayer

import (
	tea "github.com/charmbracelet/bubbletea"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/sound"
)

// loadCmd loads the resource's source off the event loop.
func loadCmd(r *core.Resource, opts sound.LoadOptions) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{resource: r.ID, err: r.Load(opts)}
	}
}

// watchCmd waits for the next status on the resource's subscription.
// The widget re-issues it after each status, one message per receive.
func watchCmd(r *core.Resource) tea.Cmd {
	sub := r.Subscription()
	return func() tea.Msg {
		select {
		case st := <-sub.Status:
			return statusMsg{resource: r.ID, status: st}
		case <-sub.Done:
			return subscriptionClosedMsg{resource: r.ID}
		}
	}
}

// titleCmd reads the display title from the source's tags.
func titleCmd(r *core.Resource) tea.Cmd {
	return func() tea.Msg {
		return titleMsg{resource: r.ID, title: sound.ReadTitle(r.Source)}
	}
}
