package audioplayer

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/tapedeck/internal/sound"
)

// Resource is the widget's exclusive playback resource for one source.
//
// Acquire creates and subscribes to the sound; Release cancels an in-flight
// load, unsubscribes and unloads. Release runs its teardown exactly once no
// matter how many exit paths call it. Release and Released belong to the
// event loop; only Load runs on another goroutine.
type Resource struct {
	ID     uuid.UUID
	Source sound.Source

	sound  sound.Sound
	sub    *sound.Subscription
	ctx    context.Context
	cancel context.CancelFunc

	released bool
}

// Acquire creates a resource for src. The caller must eventually call Release.
func Acquire(rt sound.Runtime, src sound.Source) *Resource {
	ctx, cancel := context.WithCancel(context.Background())
	s := rt.NewSound()
	r := &Resource{
		ID:     uuid.New(),
		Source: src,
		sound:  s,
		sub:    s.Subscribe(),
		ctx:    ctx,
		cancel: cancel,
	}
	zlog.Info().Str("resource", r.ID.String()).Str("source", src.URI).Msg("acquired playback resource")
	return r
}

// Sound returns the handle. It stays valid until Release.
func (r *Resource) Sound() sound.Sound {
	return r.sound
}

// Subscription returns the status stream of the resource.
func (r *Resource) Subscription() *sound.Subscription {
	return r.sub
}

// Load loads the source. It blocks and is meant to run off the event loop.
// It returns context.Canceled if the resource is released meanwhile.
func (r *Resource) Load(opts sound.LoadOptions) error {
	if err := r.sound.Load(r.ctx, r.Source, opts); err != nil {
		if r.ctx.Err() != nil {
			return context.Canceled
		}
		return err
	}
	return nil
}

// Released reports whether Release has run.
func (r *Resource) Released() bool {
	return r.released
}

// Release tears the resource down. Calls after the first are no-ops. It is
// not safe for concurrent use; call it from the event loop only.
func (r *Resource) Release() error {
	if r.released {
		return nil
	}
	r.released = true

	r.cancel()
	r.sound.Unsubscribe(r.sub)
	if err := r.sound.Unload(); err != nil {
		zlog.Warn().Err(err).Str("resource", r.ID.String()).Msg("unload failed")
		return errors.Wrapf(err, "unload %s", r.Source.URI)
	}
	zlog.Info().Str("resource", r.ID.String()).Msg("released playback resource")
	return nil
}
