package audioplayer

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/tapedeck/internal/sound"
)

// Rate tiers offered by the Slower and Faster controls.
const (
	RateSlow   = 0.5
	RateNormal = 1.0
	RateFast   = 2.0
)

// PitchQuality is passed on every rate change, whatever the toggle says.
const PitchQuality = sound.PitchQualityHigh

// Intent is a user request to change playback.
type Intent int

const (
	IntentPlayPause Intent = iota
	IntentToggleLooping
	IntentSlower
	IntentFaster
	IntentTogglePitchCorrection
	IntentToggleMuted
)

// Intents lists every control in display order.
var Intents = []Intent{
	IntentPlayPause,
	IntentToggleLooping,
	IntentSlower,
	IntentFaster,
	IntentTogglePitchCorrection,
	IntentToggleMuted,
}

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentPlayPause:
		return "PlayPause"
	case IntentToggleLooping:
		return "ToggleLooping"
	case IntentSlower:
		return "Slower"
	case IntentFaster:
		return "Faster"
	case IntentTogglePitchCorrection:
		return "TogglePitchCorrection"
	case IntentToggleMuted:
		return "ToggleMuted"
	default:
		return "Unknown"
	}
}

// Disabled reports whether controls are inert. They are enabled only when
// audio is enabled by the caller and a resource is loaded.
func Disabled(audioEnabled bool, v ViewState) bool {
	_, loaded := AsLoaded(v)
	return !audioEnabled || !loaded
}

// CommandFor maps an intent to the command it issues against l.
func CommandFor(l Loaded, in Intent) (sound.Command, bool) {
	switch in {
	case IntentPlayPause:
		switch {
		case l.IsPlaying:
			return sound.Pause{}, true
		case l.Position < l.Duration:
			// Restart rather than resume.
			return sound.PlayFromPosition{Position: 0}, true
		default:
			return sound.Play{}, true
		}
	case IntentToggleLooping:
		return sound.SetLooping{Looping: !l.IsLooping}, true
	case IntentSlower:
		rate := RateSlow
		if l.Rate < RateNormal {
			rate = RateNormal
		}
		return sound.SetRate{Rate: rate, CorrectPitch: l.ShouldCorrectPitch, Quality: PitchQuality}, true
	case IntentFaster:
		rate := RateFast
		if l.Rate > RateNormal {
			rate = RateNormal
		}
		return sound.SetRate{Rate: rate, CorrectPitch: l.ShouldCorrectPitch, Quality: PitchQuality}, true
	case IntentTogglePitchCorrection:
		return sound.SetRate{Rate: l.Rate, CorrectPitch: !l.ShouldCorrectPitch, Quality: PitchQuality}, true
	case IntentToggleMuted:
		return sound.SetMuted{Muted: !l.IsMuted}, true
	}
	return nil, false
}

// Dispatch sends the command for in to the loaded handle. It is a no-op,
// returning false, when the controls are disabled.
func Dispatch(audioEnabled bool, v ViewState, in Intent) bool {
	if Disabled(audioEnabled, v) {
		return false
	}
	l, _ := AsLoaded(v)
	if l.Handle == nil {
		return false
	}
	cmd, ok := CommandFor(l, in)
	if !ok {
		return false
	}
	zlog.Debug().Str("intent", in.String()).Str("command", cmd.Name()).Msg("dispatch")
	l.Handle.Send(cmd)
	return true
}
