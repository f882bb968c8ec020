// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// DefaultWidth is used until the terminal reports its size.
	DefaultWidth = 60

	// MinBarWidth is the narrowest progress bar drawn next to the time text.
	MinBarWidth = 10

	// FrameOverhead is the border plus horizontal padding of a framed view.
	FrameOverhead = 4
)
