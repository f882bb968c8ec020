//go:build linux

package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	zlog "github.com/rs/zerolog/log"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
)

// Adapter exposes the player widget over D-Bus as
// org.mpris.MediaPlayer2.tapedeck.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. Properties are read from
// state; control calls become intents passed to send, which must hand them
// to the widget's event loop.
func New(state *State, send func(core.Intent)) (*Adapter, error) {
	a := &Adapter{}
	a.server = server.NewServer("tapedeck", &rootAdapter{}, &playerAdapter{state: state, send: send})

	go func() {
		if err := a.server.Listen(); err != nil {
			zlog.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "tapedeck", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// LoopStatus extension.
type playerAdapter struct {
	state *State
	send  func(core.Intent)
}

func (p *playerAdapter) dispatch(intents []core.Intent) error {
	for _, in := range intents {
		p.send(in)
	}
	return nil
}

func (p *playerAdapter) Next() error { return nil }

func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	return p.dispatch(pauseIntents(p.state.Load()))
}

func (p *playerAdapter) PlayPause() error {
	return p.dispatch([]core.Intent{core.IntentPlayPause})
}

func (p *playerAdapter) Stop() error {
	return p.dispatch(pauseIntents(p.state.Load()))
}

func (p *playerAdapter) Play() error {
	return p.dispatch(playIntents(p.state.Load()))
}

func (p *playerAdapter) Seek(_ types.Microseconds) error { return nil }

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error { return nil }

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.state.Load()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	if l, ok := loaded(p.state.Load()); ok {
		return l.Rate, nil
	}
	return core.RateNormal, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	return p.dispatch(rateIntents(p.state.Load(), rate))
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.state.loadWithArt()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return volume(p.state.Load()), nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	return p.dispatch(volumeIntents(p.state.Load(), v))
}

func (p *playerAdapter) Position() (int64, error) {
	return position(p.state.Load()).Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return core.RateSlow, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return core.RateFast, nil }

func (p *playerAdapter) CanGoNext() (bool, error) { return false, nil }

func (p *playerAdapter) CanGoPrevious() (bool, error) { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) { return enabled(p.state.Load()), nil }

func (p *playerAdapter) CanPause() (bool, error) { return enabled(p.state.Load()), nil }

func (p *playerAdapter) CanSeek() (bool, error) { return false, nil }

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	return loopStatus(p.state.Load()), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	return p.dispatch(loopIntents(p.state.Load(), status))
}
