package notify

import (
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/mpris"
	ui "github.com/llehouerou/tapedeck/internal/ui/audioplayer"
)

const (
	queueSize     = 4
	noticeTimeout = 5000
)

// Announcer turns widget snapshots into "now playing" notifications.
// Observe is called from the event loop; notifications are sent from a
// single worker so a slow notification daemon never blocks the UI. Each
// notification replaces the previous one.
type Announcer struct {
	notifier Notifier

	mu     sync.Mutex
	queue  chan Notification
	closed bool
	done   chan struct{}

	// announced is the URI of the last announced source.
	announced string
}

// NewAnnouncer starts the worker that delivers notifications to n.
func NewAnnouncer(n Notifier) *Announcer {
	a := &Announcer{
		notifier: n,
		queue:    make(chan Notification, queueSize),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

// Observe announces the snapshot's track the first time it is loaded and
// titled. Notifications are dropped when the worker is behind.
func (a *Announcer) Observe(s ui.Snapshot) {
	n, ok := a.next(s)
	if !ok {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	select {
	case a.queue <- n:
	default:
		zlog.Debug().Str("title", n.Title).Msg("notification queue full, dropping")
	}
}

func (a *Announcer) next(s ui.Snapshot) (Notification, bool) {
	if s.Source.IsZero() {
		a.announced = ""
		return Notification{}, false
	}
	if s.Source.URI == a.announced || s.Title.Title == "" {
		return Notification{}, false
	}
	if _, ok := audioplayer.AsLoaded(s.View); !ok {
		return Notification{}, false
	}
	a.announced = s.Source.URI
	return nowPlaying(s), true
}

func nowPlaying(s ui.Snapshot) Notification {
	return Notification{
		Title:   s.Title.Title,
		Body:    s.Title.Artist,
		Icon:    mpris.FindAlbumArt(s.Source),
		Timeout: noticeTimeout,
		Urgency: UrgencyLow,
	}
}

func (a *Announcer) run() {
	defer close(a.done)
	var last uint32
	for n := range a.queue {
		n.ReplacesID = last
		id, err := a.notifier.Notify(n)
		if err != nil {
			zlog.Warn().Err(err).Str("title", n.Title).Msg("desktop notification failed")
			continue
		}
		last = id
	}
}

// Close stops the worker after pending notifications are delivered.
// Later snapshots are ignored.
func (a *Announcer) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
}
