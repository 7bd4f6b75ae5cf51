package launcher

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"time"
)

// joinTimeout bounds how long Stop waits for the drain goroutine to observe
// termination. Stop returns after the bound even if the goroutine is still
// winding down.
const joinTimeout = 500 * time.Millisecond

// Sink receives one line of subprocess output, stripped of its trailing
// line terminator. Sinks are designated at attachment time, typically bound
// to a logger level.
type Sink func(line string)

// StreamForwarder drains one subprocess output stream line by line into a
// sink from a dedicated goroutine. Each stream is owned by exactly one
// forwarder. Lines from a single stream are forwarded in production order;
// no ordering holds across streams.
type StreamForwarder struct {
	stream    io.ReadCloser
	sink      Sink
	done      chan struct{}
	closeOnce sync.Once
}

// NewStreamForwarder attaches a forwarder to the stream and starts draining
// immediately.
func NewStreamForwarder(stream io.ReadCloser, sink Sink) *StreamForwarder {
	f := &StreamForwarder{
		stream: stream,
		sink:   sink,
		done:   make(chan struct{}),
	}
	go f.drain()
	return f
}

func (f *StreamForwarder) drain() {
	defer close(f.done)
	defer f.close()

	reader := bufio.NewReader(f.stream)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			f.sink(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			// EOF and closed-pipe reads both mean the stream is done. A
			// concurrent Stop closes the stream to break this read, so a
			// read error here is never fatal.
			return
		}
	}
}

// close closes the underlying stream exactly once, swallowing any error
// from the close itself. The stream may already be gone during coordinated
// shutdown.
func (f *StreamForwarder) close() {
	f.closeOnce.Do(func() {
		_ = f.stream.Close()
	})
}

// Stop terminates the forwarder: the stream is closed first to unblock a
// pending read, then the drain goroutine is joined with a bounded wait.
// Idempotent and safe to call multiple times.
func (f *StreamForwarder) Stop() {
	f.close()

	select {
	case <-f.done:
	case <-time.After(joinTimeout):
	}
}

// Done reports forwarder termination. The channel closes once the drain
// goroutine has exited and the stream is closed.
func (f *StreamForwarder) Done() <-chan struct{} {
	return f.done
}
