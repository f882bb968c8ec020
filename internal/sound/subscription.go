package sound

import "sync"

const statusBufferSize = 16

// Subscription delivers status records to one subscriber.
type Subscription struct {
	Status <-chan Status
	Done   <-chan struct{}

	statusCh  chan Status
	doneCh    chan struct{}
	closeOnce sync.Once
}

func newSubscription() *Subscription {
	s := &Subscription{
		statusCh: make(chan Status, statusBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.Status = s.statusCh
	s.Done = s.doneCh
	return s
}

// close signals the subscriber to stop. Safe to call more than once.
func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.doneCh) })
}

// send delivers a status without blocking. When the buffer is full the
// oldest pending status is dropped, so the newest one always gets through.
func (s *Subscription) send(st Status) {
	select {
	case s.statusCh <- st:
		return
	default:
	}
	select {
	case <-s.statusCh:
	default:
	}
	select {
	case s.statusCh <- st:
	default:
	}
}

// hub fans status records out to subscribers.
type hub struct {
	mu   sync.RWMutex
	subs []*Subscription
}

func (h *hub) subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := newSubscription()
	h.subs = append(h.subs, sub)
	return sub
}

func (h *hub) unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	for i, s := range h.subs {
		if s == sub {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			break
		}
	}
	h.mu.Unlock()
	sub.close()
}

func (h *hub) publish(st Status) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		s.send(st)
	}
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
