package sound

import (
	"fmt"
	"time"
)

// PitchQuality is the pitch correction algorithm tier used on rate changes.
type PitchQuality int

const (
	PitchQualityLow PitchQuality = iota
	PitchQualityMedium
	PitchQualityHigh
)

// String returns the quality name.
func (q PitchQuality) String() string {
	switch q {
	case PitchQualityLow:
		return "Low"
	case PitchQualityMedium:
		return "Medium"
	case PitchQualityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Command is a one-way request sent to a Sound.
type Command interface {
	// Name identifies the command in logs.
	Name() string
}

// Play starts playback from the current position, or from the beginning
// when the playhead is at the end.
type Play struct{}

// Pause pauses playback.
type Pause struct{}

// PlayFromPosition seeks to Position and starts playback.
type PlayFromPosition struct {
	Position time.Duration
}

// SetLooping enables or disables looping.
type SetLooping struct {
	Looping bool
}

// SetRate changes the playback rate.
type SetRate struct {
	Rate         float64
	CorrectPitch bool
	Quality      PitchQuality
}

// SetMuted mutes or unmutes output.
type SetMuted struct {
	Muted bool
}

func (Play) Name() string { return "play" }

func (Pause) Name() string { return "pause" }

func (c PlayFromPosition) Name() string {
	return fmt.Sprintf("play_from_position(%s)", c.Position)
}

func (c SetLooping) Name() string {
	return fmt.Sprintf("set_looping(%t)", c.Looping)
}

func (c SetRate) Name() string {
	return fmt.Sprintf("set_rate(%g, %t, %s)", c.Rate, c.CorrectPitch, c.Quality)
}

func (c SetMuted) Name() string {
	return fmt.Sprintf("set_muted(%t)", c.Muted)
}
