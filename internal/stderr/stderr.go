//go:build !windows

// Package stderr captures output that audio backends (ALSA through oto)
// write directly to file descriptor 2, bypassing Go's os.Stderr, and sends
// it to the log file so it cannot corrupt the TUI layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	drained    chan struct{}
)

// Start begins capturing stderr output.
// Must be called early in main(), before the audio device is opened.
// On error the program can continue; output then goes to the terminal.
func Start() error {
	mu.Lock()
	defer mu.Unlock()
	if origStderr >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr, pipeRead, pipeWrite = orig, r, w
	drained = make(chan struct{})

	go forward(r, drained)
	return nil
}

func forward(r *os.File, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			zlog.Warn().Str("stream", "stderr").Msg(line)
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Use it for fatal errors that must be visible after the TUI exits.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores the original stderr and flushes captured lines to the log.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if origStderr < 0 {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	// Closing the write end lets the forwarder see EOF once fd 2 no longer
	// refers to the pipe.
	pipeWrite.Close()
	<-drained
	pipeRead.Close()
}
