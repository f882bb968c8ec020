// Package notify shows a desktop notification when a new track starts.
package notify

// Urgency is the freedesktop urgency byte sent in the "urgency" hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one "now playing" notice.
type Notification struct {
	Title string
	Body  string
	// Icon is an image path or a themed icon name.
	Icon string
	// Timeout in milliseconds; -1 leaves it to the daemon, 0 never expires.
	Timeout int32
	// ReplacesID updates an earlier notice in place when non-zero.
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier delivers notifications to the desktop.
type Notifier interface {
	// Notify shows n and returns the id the daemon assigned. Without a
	// daemon it returns 0 and no error.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}
