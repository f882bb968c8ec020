// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Transport controls
	ActionPlayPause   Action = "play_pause"
	ActionToggleLoop  Action = "toggle_loop"
	ActionSlower      Action = "slower"
	ActionFaster      Action = "faster"
	ActionTogglePitch Action = "toggle_pitch"
	ActionToggleMute  Action = "toggle_mute"
)
