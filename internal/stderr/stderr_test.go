//go:build !windows

package stderr

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_ForwardsLinesToLog(t *testing.T) {
	var buf bytes.Buffer
	prev := zlog.Logger
	zlog.Logger = zerolog.New(&buf)
	t.Cleanup(func() { zlog.Logger = prev })

	require.NoError(t, Start())
	require.NoError(t, Start(), "second Start is a no-op")

	fmt.Fprintln(os.Stderr, "ALSA lib pcm.c: underrun occurred")
	fmt.Fprintln(os.Stderr, "   ")
	Stop()
	Stop()

	out := buf.String()
	assert.Contains(t, out, "ALSA lib pcm.c: underrun occurred")
	assert.Contains(t, out, `"stream":"stderr"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "blank lines are dropped")
}
