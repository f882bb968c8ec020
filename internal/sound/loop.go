package sound

import "github.com/gopxl/beep/v2"

var _ beep.Streamer = (*loopStreamer)(nil)

// loopStreamer wraps the decoded source. At the end of the audio it either
// rewinds (looping) or parks on silence so the speaker keeps the stream and
// a later Play can rewind it. Fields are guarded by the speaker lock.
type loopStreamer struct {
	src      beep.StreamSeeker
	looping  bool
	finished bool
	detached bool
}

// Stream implements beep.Streamer.
func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if l.detached {
		return 0, false
	}
	if l.finished {
		silence(samples)
		return len(samples), true
	}

	rewound := false
	for n < len(samples) {
		got, more := l.src.Stream(samples[n:])
		n += got
		if n == len(samples) {
			break
		}
		if more && got > 0 {
			continue
		}
		if l.src.Err() != nil {
			return n, false
		}
		// End of audio.
		if l.looping && !(rewound && got == 0) {
			if err := l.src.Seek(0); err != nil {
				return n, false
			}
			rewound = true
			continue
		}
		l.finished = true
		silence(samples[n:])
		n = len(samples)
	}
	return n, true
}

// Err implements beep.Streamer.
func (l *loopStreamer) Err() error {
	return l.src.Err()
}

// rewind restarts the source from position p and clears the finished flag.
func (l *loopStreamer) rewind(p int) error {
	if err := l.src.Seek(p); err != nil {
		return err
	}
	l.finished = false
	return nil
}

func silence(samples [][2]float64) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
}
