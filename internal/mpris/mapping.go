package mpris

import (
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/ui/audioplayer"
)

// State holds the latest widget snapshot for the D-Bus side, which reads
// it from its own goroutines.
type State struct {
	cur atomic.Pointer[observed]
}

// observed pairs a snapshot with the album art of its source, looked up
// once per source.
type observed struct {
	snap audioplayer.Snapshot
	art  string
}

// Observe stores s. Pass it to audioplayer.WithObserver.
func (st *State) Observe(s audioplayer.Snapshot) {
	next := &observed{snap: s}
	if prev := st.cur.Load(); prev != nil && prev.snap.Source.URI == s.Source.URI {
		next.art = prev.art
	} else {
		next.art = FindAlbumArt(s.Source)
	}
	st.cur.Store(next)
}

// Load returns the latest snapshot, or an empty one before the first.
func (st *State) Load() audioplayer.Snapshot {
	s, _ := st.loadWithArt()
	return s
}

func (st *State) loadWithArt() (audioplayer.Snapshot, string) {
	if p := st.cur.Load(); p != nil {
		return p.snap, p.art
	}
	return audioplayer.Snapshot{View: core.Unloaded{}}, ""
}

func loaded(s audioplayer.Snapshot) (core.Loaded, bool) {
	if s.View == nil {
		return core.Loaded{}, false
	}
	return core.AsLoaded(s.View)
}

func enabled(s audioplayer.Snapshot) bool {
	return s.View != nil && !core.Disabled(s.AudioEnabled, s.View)
}

func playbackStatus(s audioplayer.Snapshot) types.PlaybackStatus {
	l, ok := loaded(s)
	switch {
	case !ok:
		return types.PlaybackStatusStopped
	case l.IsPlaying:
		return types.PlaybackStatusPlaying
	default:
		return types.PlaybackStatusPaused
	}
}

// playIntents returns what Play should do: start only if not playing.
func playIntents(s audioplayer.Snapshot) []core.Intent {
	if l, ok := loaded(s); ok && !l.IsPlaying {
		return []core.Intent{core.IntentPlayPause}
	}
	return nil
}

// pauseIntents returns what Pause (and Stop) should do: pause only if playing.
func pauseIntents(s audioplayer.Snapshot) []core.Intent {
	if l, ok := loaded(s); ok && l.IsPlaying {
		return []core.Intent{core.IntentPlayPause}
	}
	return nil
}

// rateTier snaps an MPRIS rate to the nearest supported one.
func rateTier(rate float64) float64 {
	switch {
	case rate < 0.75:
		return core.RateSlow
	case rate < 1.5:
		return core.RateNormal
	default:
		return core.RateFast
	}
}

// rateIntents returns the single rate control that moves the current rate
// to the tier nearest to rate.
func rateIntents(s audioplayer.Snapshot, rate float64) []core.Intent {
	l, ok := loaded(s)
	if !ok {
		return nil
	}
	target := rateTier(rate)
	switch {
	case target == rateTier(l.Rate):
		return nil
	case target == core.RateSlow:
		return []core.Intent{core.IntentSlower}
	case target == core.RateFast:
		return []core.Intent{core.IntentFaster}
	case l.Rate < core.RateNormal:
		return []core.Intent{core.IntentSlower}
	default:
		return []core.Intent{core.IntentFaster}
	}
}

// volume reports 0 while muted and 1 otherwise; the widget has no gain control.
func volume(s audioplayer.Snapshot) float64 {
	if l, ok := loaded(s); ok && l.IsMuted {
		return 0
	}
	return 1
}

func volumeIntents(s audioplayer.Snapshot, v float64) []core.Intent {
	l, ok := loaded(s)
	if !ok || (v <= 0) == l.IsMuted {
		return nil
	}
	return []core.Intent{core.IntentToggleMuted}
}

func loopStatus(s audioplayer.Snapshot) types.LoopStatus {
	if l, ok := loaded(s); ok && l.IsLooping {
		return types.LoopStatusTrack
	}
	return types.LoopStatusNone
}

func loopIntents(s audioplayer.Snapshot, status types.LoopStatus) []core.Intent {
	l, ok := loaded(s)
	if !ok || (status != types.LoopStatusNone) == l.IsLooping {
		return nil
	}
	return []core.Intent{core.IntentToggleLooping}
}

func position(s audioplayer.Snapshot) time.Duration {
	l, _ := loaded(s)
	return l.Position
}

// metadata builds the MPRIS track metadata. art is the album art path of
// the snapshot's source, if any.
func metadata(s audioplayer.Snapshot, art string) types.Metadata {
	if s.Source.IsZero() {
		return types.Metadata{}
	}
	l, _ := loaded(s)
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Source.URI)),
		Length:  types.Microseconds(l.Duration.Microseconds()),
		Title:   s.Title.Title,
	}
	if s.Title.Artist != "" {
		meta.Artist = []string{s.Title.Artist}
	}
	if art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta
}

func formatTrackID(uri string) string {
	h := fnv.New64a()
	h.Write([]byte(uri))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
