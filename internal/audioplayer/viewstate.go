// Package audioplayer holds the presentation logic of the audio player widget:
// projecting runtime status into a view-state, deciding which controls are
// enabled, turning intents into commands, and formatting progress.
//
// Nothing here depends on a UI framework. The widget feeds status records
// into Project and reads the resulting Projection when rendering.
package audioplayer

import (
	"time"

	"github.com/llehouerou/tapedeck/internal/sound"
)

// ViewState is either Unloaded or Loaded.
type ViewState interface {
	isViewState()
}

// Unloaded means no playable resource is attached.
type Unloaded struct{}

// Loaded is the snapshot of the latest successful status update. Handle is
// the resource the snapshot describes; it is owned by the widget's resource
// scope and must not be retained beyond it.
type Loaded struct {
	Position           time.Duration
	Duration           time.Duration
	IsPlaying          bool
	IsLooping          bool
	IsMuted            bool
	Rate               float64
	ShouldCorrectPitch bool
	Handle             sound.Sound
}

func (Unloaded) isViewState() {}

func (Loaded) isViewState() {}

// AsLoaded returns the loaded snapshot, if any.
func AsLoaded(v ViewState) (Loaded, bool) {
	l, ok := v.(Loaded)
	return l, ok
}

// ErrorState holds the most recent failure message.
type ErrorState struct {
	message string
	set     bool
}

// NoError is the empty ErrorState.
func NoError() ErrorState {
	return ErrorState{}
}

// ErrorOf returns an ErrorState carrying msg.
func ErrorOf(msg string) ErrorState {
	return ErrorState{message: msg, set: true}
}

// Message returns the failure message and whether one is set.
func (e ErrorState) Message() (string, bool) {
	return e.message, e.set
}

// IsSet reports whether a failure is recorded.
func (e ErrorState) IsSet() bool {
	return e.set
}
