package audioplayer

import "github.com/llehouerou/tapedeck/internal/sound"

// Projection is the widget's local state: the view-state plus the last error.
type Projection struct {
	View ViewState
	Err  ErrorState
}

// Initial is the projection before any status arrives.
func Initial() Projection {
	return Projection{View: Unloaded{}, Err: NoError()}
}

// Project folds one status record into the projection.
//
// Each record fully replaces the view-state: a failure drops any loaded
// snapshot and records the message verbatim; a loaded record replaces the
// snapshot and clears the error; an unloaded record without an error resets
// the view-state and keeps whatever error was recorded.
func Project(prev Projection, st sound.Status, handle sound.Sound) Projection {
	switch st := st.(type) {
	case sound.Loaded:
		return Projection{
			View: Loaded{
				Position:           st.Position,
				Duration:           st.Duration,
				IsPlaying:          st.IsPlaying,
				IsLooping:          st.IsLooping,
				IsMuted:            st.IsMuted,
				Rate:               st.Rate,
				ShouldCorrectPitch: st.ShouldCorrectPitch,
				Handle:             handle,
			},
			Err: NoError(),
		}
	case sound.Unloaded:
		if st.Failed() {
			return Projection{View: Unloaded{}, Err: ErrorOf(st.Err.Error())}
		}
		return Projection{View: Unloaded{}, Err: prev.Err}
	}
	return prev
}

// LoadFailed records a failure of the load call itself.
func (p Projection) LoadFailed(err error) Projection {
	if err == nil {
		return p
	}
	return Projection{View: Unloaded{}, Err: ErrorOf(err.Error())}
}
