//go:build windows

// Package stderr keeps decoder output off the terminal while the player
// runs. On Windows the audio backend writes nothing to fd 2, so capture is
// skipped.
package stderr

import "os"

// Start does nothing here.
func Start() error { return nil }

// WriteOriginal prints msg on stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop does nothing here.
func Stop() {}
