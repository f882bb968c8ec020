// Package icons holds the glyphs used on the player's control buttons.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the button glyphs for one style.
type Icons struct {
	Play    string
	Pause   string
	Loop    string
	Slower  string
	Faster  string
	Pitch   string
	Volume  string
	Muted   string
	Warning string
}

var (
	nerdIcons = Icons{
		Play:    "󰐊",      // nf-md-play
		Pause:   "󰏤",      // nf-md-pause
		Loop:    "󰑖",      // nf-md-repeat
		Slower:  "󰄼",      // nf-md-chevron_double_left
		Faster:  "󰄾",      // nf-md-chevron_double_right
		Pitch:   "󰎈",      // nf-md-music_note
		Volume:  "󰕾",      // nf-md-volume_high
		Muted:   "󰖁",      // nf-md-volume_off
		Warning: "\uf071", // nf-fa-warning
	}

	unicodeIcons = Icons{
		Play:    "▶",
		Pause:   "⏸",
		Loop:    "🔁",
		Slower:  "⏪",
		Faster:  "⏩",
		Pitch:   "♪",
		Volume:  "🔊",
		Muted:   "🔇",
		Warning: "⚠",
	}

	noneIcons = Icons{
		Play:    ">",
		Pause:   "||",
		Loop:    "loop",
		Slower:  "<<",
		Faster:  ">>",
		Pitch:   "pitch",
		Volume:  "vol",
		Muted:   "mute",
		Warning: "!",
	}

	current = unicodeIcons
)

// Init selects the icon set. Unknown styles fall back to plain text.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// PlayPause returns the glyph for the play/pause button: pause while
// playing, play otherwise.
func PlayPause(playing bool) string {
	if playing {
		return current.Pause
	}
	return current.Play
}

// Mute returns the glyph for the mute button.
func Mute(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Volume
}
