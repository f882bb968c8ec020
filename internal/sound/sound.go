// Package sound provides the playback runtime driven by the audio player widget.
//
// A Sound is one playback resource. Callers load it, observe it through a
// Subscription and control it with one-way Commands. Results of a command are
// never returned directly; they show up in the next Status on the subscription.
package sound

import (
	"context"
	"time"
)

// DefaultProgressUpdateInterval is the status cadence while a sound is loaded.
const DefaultProgressUpdateInterval = 150 * time.Millisecond

// Source identifies the audio to load.
type Source struct {
	URI string
}

// IsZero reports whether the source is empty.
func (s Source) IsZero() bool {
	return s.URI == ""
}

// LocalPath returns the filesystem path of a local source.
func (s Source) LocalPath() (string, bool) {
	return localPath(s)
}

// LoadOptions configures a Load call.
type LoadOptions struct {
	ProgressUpdateInterval time.Duration
}

func (o LoadOptions) interval() time.Duration {
	if o.ProgressUpdateInterval <= 0 {
		return DefaultProgressUpdateInterval
	}
	return o.ProgressUpdateInterval
}

// Sound is a handle to a single playback resource.
type Sound interface {
	// Load attaches the source. It blocks until the resource is ready or
	// ctx is cancelled.
	Load(ctx context.Context, src Source, opts LoadOptions) error
	// Unload releases the resource. An Unloaded status is published.
	Unload() error

	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)

	// Send queues a command. It never blocks and never reports completion.
	Send(cmd Command)
}

// Runtime constructs playback resources.
type Runtime interface {
	NewSound() Sound
}
