package sound

import "time"

// Status is a playback status record. It is either Unloaded or Loaded.
type Status interface {
	isStatus()
}

// Unloaded reports that no audio is attached. Err is set when the resource
// failed; it is nil after a regular unload.
type Unloaded struct {
	Err error
}

// Loaded is a full snapshot of a loaded resource.
type Loaded struct {
	Position           time.Duration
	Duration           time.Duration
	IsPlaying          bool
	IsLooping          bool
	IsMuted            bool
	Rate               float64
	ShouldCorrectPitch bool
}

func (Unloaded) isStatus() {}

func (Loaded) isStatus() {}

// Failed reports whether the status carries an error.
func (u Unloaded) Failed() bool {
	return u.Err != nil
}

// AtEnd reports whether the playhead reached the end of the audio.
func (l Loaded) AtEnd() bool {
	return l.Position >= l.Duration
}
