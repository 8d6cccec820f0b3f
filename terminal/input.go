package terminal

import (
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lixenwraith/cellframe/core"
)

// inputReader decodes backend input into events on its own goroutine
type inputReader struct {
	backend Backend
	log     *slog.Logger
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	dec     decoder

	mu      sync.Mutex
	running bool
}

// newInputReader creates a reader, pending holds bytes already read from the backend
func newInputReader(backend Backend, logger *slog.Logger, pending []byte) *inputReader {
	return &inputReader{
		backend: backend,
		log:     logger,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		dec:     decoder{buf: append(make([]byte, 0, 256), pending...)},
	}
}

// start begins reading input in a goroutine
func (r *inputReader) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	go r.readLoop()
}

// stop signals the reader to stop and waits briefly for it
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
		// Reader stuck on blocking read, proceed anyway
	}
}

// events returns the event channel; it is never closed, EventClosed marks the end of input
func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)
	defer func() {
		if v := recover(); v != nil {
			err := core.ThreadPanic("input", v, debug.Stack())
			r.log.Error("input reader crashed", "error", err)
			r.send(Event{Type: EventError, Err: err})
			r.send(Event{Type: EventClosed})
		}
	}()

	// Bytes carried over from the cursor query
	if len(r.dec.buf) > 0 {
		r.dec.feed(nil, r.send)
	}

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			if err != io.EOF {
				r.send(Event{Type: EventError, Err: err})
			}
			r.send(Event{Type: EventClosed})
			return
		}

		if len(data) == 0 {
			select {
			case <-r.stopCh:
				r.send(Event{Type: EventClosed})
				return
			default:
			}
			r.dec.idle(r.send)
			continue
		}

		r.dec.feed(data, r.send)
	}
}

// send delivers an event without blocking; a full channel drops it
func (r *inputReader) send(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
		r.log.Debug("input event dropped", "type", ev.Type)
	}
}
