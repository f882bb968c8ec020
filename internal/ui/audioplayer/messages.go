package audioplayer

import (
	"github.com/google/uuid"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/sound"
)

// SetPropsMsg replaces the widget's props. A different source URI swaps
// the playback resource.
type SetPropsMsg struct {
	Props Props
}

// IntentMsg asks the widget to act on a control intent, as if its key had
// been pressed. External controllers (MPRIS) send these.
type IntentMsg struct {
	Intent core.Intent
}

// Messages below are tagged with the resource that produced them; the
// widget drops any whose resource is no longer current.

type statusMsg struct {
	resource uuid.UUID
	status   sound.Status
}

type loadDoneMsg struct {
	resource uuid.UUID
	err      error
}

type subscriptionClosedMsg struct {
	resource uuid.UUID
}

type titleMsg struct {
	resource uuid.UUID
	title    sound.Title
}
