package sound

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// Info describes a source without playing it.
type Info struct {
	Title      Title
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// Probe opens and decodes src and reports its format. The output device is
// not touched.
func (e *Engine) Probe(ctx context.Context, src Source) (Info, error) {
	rc, ext, err := open(ctx, e.client, src)
	if err != nil {
		return Info{}, err
	}
	defer rc.Close()

	stream, format, err := decode(rc, ext)
	if err != nil {
		return Info{}, errors.Wrapf(err, "decode %s", src.URI)
	}
	defer stream.Close()

	return Info{
		Title:      ReadTitle(src),
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		Duration:   format.SampleRate.D(stream.Len()),
	}, nil
}
