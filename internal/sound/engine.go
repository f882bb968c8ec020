package sound

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	zlog "github.com/rs/zerolog/log"
)

const (
	defaultSampleRate = beep.SampleRate(44100)
	defaultBuffer     = 100 * time.Millisecond
	resampleQuality   = 4
	commandBufferSize = 32
)

// ErrAlreadyLoaded is returned by Load when the sound already holds audio.
var ErrAlreadyLoaded = errors.New("sound already loaded")

// Engine is the beep-backed Runtime. Every sound it creates mixes into one
// shared speaker, initialized on the first successful load.
type Engine struct {
	mu          sync.Mutex
	sampleRate  beep.SampleRate
	buffer      time.Duration
	client      *http.Client
	initialized bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSampleRate sets the speaker output rate.
func WithSampleRate(rate int) EngineOption {
	return func(e *Engine) {
		if rate > 0 {
			e.sampleRate = beep.SampleRate(rate)
		}
	}
}

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.client = c
		}
	}
}

// NewEngine creates a beep-backed runtime.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		sampleRate: defaultSampleRate,
		buffer:     defaultBuffer,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSound implements Runtime.
func (e *Engine) NewSound() Sound {
	return &beepSound{
		engine: e,
		cmds:   make(chan Command, commandBufferSize),
	}
}

func (e *Engine) initSpeaker() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		return nil
	}
	if err := speaker.Init(e.sampleRate, e.sampleRate.N(e.buffer)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	e.initialized = true
	return nil
}

// build opens and decodes src and assembles the streamer chain:
// source -> loop -> resampler (rate) -> ctrl (pause) -> volume (mute).
func (e *Engine) build(ctx context.Context, src Source) (*chain, error) {
	rc, ext, err := open(ctx, e.client, src)
	if err != nil {
		return nil, err
	}
	stream, format, err := decode(rc, ext)
	if err != nil {
		rc.Close()
		return nil, errors.Wrapf(err, "decode %s", src.URI)
	}
	if err := ctx.Err(); err != nil {
		stream.Close()
		rc.Close()
		return nil, err
	}
	if err := e.initSpeaker(); err != nil {
		stream.Close()
		rc.Close()
		return nil, err
	}

	loop := &loopStreamer{src: stream}
	base := float64(format.SampleRate) / float64(e.sampleRate)
	resampler := beep.ResampleRatio(resampleQuality, base, loop)
	ctrl := &beep.Ctrl{Streamer: resampler, Paused: true}

	return &chain{
		file:      rc,
		stream:    stream,
		format:    format,
		loop:      loop,
		resampler: resampler,
		ctrl:      ctrl,
		volume:    &effects.Volume{Streamer: ctrl, Base: 2},
		baseRatio: base,
		rate:      1,
		quality:   PitchQualityLow,
	}, nil
}

// chain is a loaded sound. Streamer fields are guarded by the speaker lock.
type chain struct {
	file      io.Closer
	stream    beep.StreamSeekCloser
	format    beep.Format
	loop      *loopStreamer
	resampler *beep.Resampler
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	baseRatio float64

	// Pitch correction is recorded and reported. The resampler has no
	// time-stretch stage, so pitch always follows the rate.
	rate         float64
	correctPitch bool
	quality      PitchQuality
}

func (c *chain) apply(cmd Command) error {
	speaker.Lock()
	defer speaker.Unlock()

	switch cmd := cmd.(type) {
	case Play:
		if c.loop.finished || c.stream.Position() >= c.stream.Len() {
			if err := c.loop.rewind(0); err != nil {
				return errors.Wrap(err, "rewind")
			}
		}
		c.ctrl.Paused = false
	case Pause:
		c.ctrl.Paused = true
	case PlayFromPosition:
		p := min(max(c.format.SampleRate.N(cmd.Position), 0), c.stream.Len())
		if err := c.loop.rewind(p); err != nil {
			return errors.Wrapf(err, "seek to %s", cmd.Position)
		}
		c.ctrl.Paused = false
	case SetLooping:
		c.loop.looping = cmd.Looping
	case SetRate:
		if cmd.Rate <= 0 {
			return errors.Newf("invalid rate %g", cmd.Rate)
		}
		c.rate = cmd.Rate
		c.correctPitch = cmd.CorrectPitch
		c.quality = cmd.Quality
		c.resampler.SetRatio(c.baseRatio * cmd.Rate)
	case SetMuted:
		c.volume.Silent = cmd.Muted
	default:
		return errors.Newf("unknown command %T", cmd)
	}
	return nil
}

// poll reports the current status. A finished, non-looping sound is paused
// so that it reads as stopped at the end.
func (c *chain) poll() (Loaded, error) {
	speaker.Lock()
	defer speaker.Unlock()
	if err := c.loop.Err(); err != nil {
		return Loaded{}, err
	}
	if c.loop.finished {
		c.ctrl.Paused = true
	}
	return c.snapshotLocked(), nil
}

func (c *chain) snapshot() Loaded {
	speaker.Lock()
	defer speaker.Unlock()
	return c.snapshotLocked()
}

func (c *chain) snapshotLocked() Loaded {
	length := c.stream.Len()
	pos := min(c.stream.Position(), length)
	if c.loop.finished {
		pos = length
	}
	return Loaded{
		Position:           c.format.SampleRate.D(pos),
		Duration:           c.format.SampleRate.D(length),
		IsPlaying:          !c.ctrl.Paused && !c.loop.finished,
		IsLooping:          c.loop.looping,
		IsMuted:            c.volume.Silent,
		Rate:               c.rate,
		ShouldCorrectPitch: c.correctPitch,
	}
}

// close detaches the chain from the speaker and closes the source.
func (c *chain) close() error {
	speaker.Lock()
	c.loop.detached = true
	speaker.Unlock()

	err := c.stream.Close()
	if ferr := c.file.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) {
		err = errors.CombineErrors(err, ferr)
	}
	return err
}

type loadAttempt struct {
	cancel context.CancelFunc
}

// beepSound implements Sound on top of the shared speaker.
type beepSound struct {
	engine *Engine
	hub    hub
	cmds   chan Command

	mu      sync.Mutex
	loading *loadAttempt
	loaded  *chain
	stop    chan struct{}
	wg      sync.WaitGroup
}

func (s *beepSound) Load(ctx context.Context, src Source, opts LoadOptions) error {
	s.mu.Lock()
	if s.loaded != nil || s.loading != nil {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	ctx, cancel := context.WithCancel(ctx)
	attempt := &loadAttempt{cancel: cancel}
	s.loading = attempt
	s.mu.Unlock()

	c, err := s.engine.build(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer cancel()

	superseded := s.loading != attempt
	if !superseded {
		s.loading = nil
	}
	if err != nil {
		return err
	}
	if superseded {
		// Unloaded while the source was being decoded.
		_ = c.close()
		return context.Canceled
	}

	s.drainCommands()
	speaker.Play(c.volume)
	s.loaded = c
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run(c, opts.interval(), s.stop)

	s.hub.publish(c.snapshot())
	return nil
}

func (s *beepSound) Unload() error {
	s.mu.Lock()
	if s.loading != nil {
		s.loading.cancel()
		s.loading = nil
	}
	c, stop := s.loaded, s.stop
	s.loaded, s.stop = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	s.wg.Wait()

	var err error
	if c != nil {
		err = c.close()
	}
	s.hub.publish(Unloaded{})
	return err
}

func (s *beepSound) Subscribe() *Subscription { return s.hub.subscribe() }

func (s *beepSound) Unsubscribe(sub *Subscription) { s.hub.unsubscribe(sub) }

func (s *beepSound) Send(cmd Command) {
	select {
	case s.cmds <- cmd:
	default:
		zlog.Warn().Str("command", cmd.Name()).Msg("sound command queue full, dropping command")
	}
}

func (s *beepSound) drainCommands() {
	for {
		select {
		case <-s.cmds:
		default:
			return
		}
	}
}

// run applies commands and publishes status until stop is closed or the
// stream fails.
func (s *beepSound) run(c *chain, interval time.Duration, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return

		case cmd := <-s.cmds:
			if err := c.apply(cmd); err != nil {
				zlog.Warn().Err(err).Str("command", cmd.Name()).Msg("sound command failed")
			}
			s.hub.publish(c.snapshot())

		case <-ticker.C:
			st, err := c.poll()
			if err != nil {
				s.fail(c, err)
				return
			}
			s.hub.publish(st)
		}
	}
}

// fail tears down a chain whose stream errored. The failure is terminal.
func (s *beepSound) fail(c *chain, err error) {
	s.mu.Lock()
	owned := s.loaded == c
	if owned {
		s.loaded, s.stop = nil, nil
	}
	s.mu.Unlock()
	if !owned {
		// Unload is already tearing this chain down.
		return
	}

	if cerr := c.close(); cerr != nil {
		zlog.Warn().Err(cerr).Msg("closing failed sound")
	}
	s.hub.publish(Unloaded{Err: errors.Wrap(err, "playback")})
}

// Verify Engine implements Runtime at compile time.
var _ Runtime = (*Engine)(nil)
