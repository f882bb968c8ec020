package sound

import (
	"context"
	"sync"
)

// Mock is a test double for Sound.
type Mock struct {
	mu       sync.Mutex
	hub      hub
	loadErr  error
	loadGate chan struct{}
	loads    []Source
	opts     []LoadOptions
	unloads  int
	commands []Command
}

// NewMock creates a new mock sound.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load(ctx context.Context, src Source, opts LoadOptions) error {
	m.mu.Lock()
	m.loads = append(m.loads, src)
	m.opts = append(m.opts, opts)
	gate := m.loadGate
	err := m.loadErr
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (m *Mock) Unload() error {
	m.mu.Lock()
	m.unloads++
	m.mu.Unlock()
	m.hub.publish(Unloaded{})
	return nil
}

func (m *Mock) Subscribe() *Subscription { return m.hub.subscribe() }

func (m *Mock) Unsubscribe(sub *Subscription) { m.hub.unsubscribe(sub) }

func (m *Mock) Send(cmd Command) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, cmd)
}

// Test helpers

// SetLoadError makes subsequent Load calls fail with err.
func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// BlockLoad makes Load wait until the returned release function is called
// or the load context is cancelled.
func (m *Mock) BlockLoad() (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.loadGate = gate
	m.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// Emit publishes st to every subscriber.
func (m *Mock) Emit(st Status) { m.hub.publish(st) }

// Subscribers returns the number of live subscriptions.
func (m *Mock) Subscribers() int { return m.hub.count() }

func (m *Mock) LoadCalls() []Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Source(nil), m.loads...)
}

func (m *Mock) LoadOptionsCalls() []LoadOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LoadOptions(nil), m.opts...)
}

func (m *Mock) UnloadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unloads
}

func (m *Mock) Commands() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Command(nil), m.commands...)
}

// LastCommand returns the most recent command, or nil.
func (m *Mock) LastCommand() Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.commands) == 0 {
		return nil
	}
	return m.commands[len(m.commands)-1]
}

// MockRuntime hands out Mock sounds and remembers them.
type MockRuntime struct {
	mu     sync.Mutex
	sounds []*Mock
	// Prepare, when set, is called on each new mock before it is returned.
	Prepare func(*Mock)
}

// NewMockRuntime creates an empty mock runtime.
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{}
}

func (r *MockRuntime) NewSound() Sound {
	m := NewMock()
	if r.Prepare != nil {
		r.Prepare(m)
	}
	r.mu.Lock()
	r.sounds = append(r.sounds, m)
	r.mu.Unlock()
	return m
}

// Sounds returns every mock created so far, oldest first.
func (r *MockRuntime) Sounds() []*Mock {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Mock(nil), r.sounds...)
}

// Last returns the most recently created mock, or nil.
func (r *MockRuntime) Last() *Mock {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sounds) == 0 {
		return nil
	}
	return r.sounds[len(r.sounds)-1]
}

// Verify Mock implements Sound at compile time.
var (
	_ Sound   = (*Mock)(nil)
	_ Runtime = (*MockRuntime)(nil)
)
