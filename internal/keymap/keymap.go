package keymap

// Binding ties keys to an action, with a label for the help line.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global" or "playback"
}

// All contains the default key bindings.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "quit", "global"},
	{ActionHelp, []string{"?"}, "help", "global"},

	{ActionPlayPause, []string{" ", "p"}, "play/pause", "playback"},
	{ActionToggleLoop, []string{"l"}, "loop", "playback"},
	{ActionSlower, []string{"["}, "slower", "playback"},
	{ActionFaster, []string{"]"}, "faster", "playback"},
	{ActionTogglePitch, []string{"c"}, "pitch", "playback"},
	{ActionToggleMute, []string{"m"}, "mute", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
