package audioplayer

import (
	"fmt"
	"time"
)

// EmptyProgress is shown while nothing is loaded.
const EmptyProgress = "00:00 / 00:00"

// FormatDuration renders d as MM:SS. Minutes are not capped at 59 and there
// is no hours field. Fractions of a second are truncated.
func FormatDuration(d time.Duration) string {
	total := max(int64(d/time.Second), 0)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Progress renders "position / duration" for the view-state.
func Progress(v ViewState) string {
	l, ok := AsLoaded(v)
	if !ok {
		return EmptyProgress
	}
	return FormatDuration(l.Position) + " / " + FormatDuration(l.Duration)
}

// Ratio returns the played fraction in [0, 1].
func Ratio(v ViewState) float64 {
	l, ok := AsLoaded(v)
	if !ok || l.Duration <= 0 {
		return 0
	}
	return min(max(float64(l.Position)/float64(l.Duration), 0), 1)
}
