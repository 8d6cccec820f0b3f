package terminal

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cellframe/core"
)

// cursorQueryTimeout bounds the wait for a cursor position report
const cursorQueryTimeout = 500 * time.Millisecond

// Terminal implements Device over a Backend with direct ANSI sequences
type Terminal struct {
	backend Backend
	log     *slog.Logger

	mu      sync.Mutex
	raw     bool
	mouse   bool
	input   *inputReader
	pending []byte // Input read during the cursor query, replayed by Start
}

var _ Device = (*Terminal)(nil)

// New creates a terminal over stdin/stdout
func New(logger *slog.Logger) *Terminal {
	return NewWithBackend(NewBackend(), logger)
}

// NewWithBackend creates a terminal over the given backend
func NewWithBackend(b Backend, logger *slog.Logger) *Terminal {
	return &Terminal{
		backend: b,
		log:     core.LoggerOrDiscard(logger),
	}
}

func (t *Terminal) write(seqs ...[]byte) error {
	if err := t.backend.Write(bytes.Join(seqs, nil)); err != nil {
		return errors.Wrap(err, "write control sequence")
	}
	return nil
}

// EnterAltScreen switches to the alternate screen, clears it and disables auto-wrap
func (t *Terminal) EnterAltScreen() error {
	return t.write(csiAltScreenEnter, csiClear, csiHome, csiAutoWrapOff)
}

// LeaveAltScreen restores auto-wrap and the main screen
func (t *Terminal) LeaveAltScreen() error {
	return t.write(csiSGR0, csiAutoWrapOn, csiAltScreenExit)
}

// EnableRawMode puts input in raw mode
func (t *Terminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.backend.MakeRaw(); err != nil {
		return err
	}
	t.raw = true
	return nil
}

// DisableRawMode restores the saved input mode
func (t *Terminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.raw = false
	return t.backend.Restore()
}

// EnableMouseCapture turns on SGR mouse reporting for clicks and drags
func (t *Terminal) EnableMouseCapture() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.write(csiMouseSGROn, csiMouseClickOn, csiMouseDragOn); err != nil {
		return err
	}
	t.mouse = true
	return nil
}

// DisableMouseCapture turns mouse reporting off in reverse order of enable
func (t *Terminal) DisableMouseCapture() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mouse = false
	return t.write(csiMouseDragOff, csiMouseClickOff, csiMouseSGROff)
}

// HideCursor hides the text cursor
func (t *Terminal) HideCursor() error {
	return t.write(csiCursorHide)
}

// ShowCursor shows the text cursor
func (t *Terminal) ShowCursor() error {
	return t.write(csiCursorShow)
}

// Size returns the current terminal dimensions
func (t *Terminal) Size() core.Size {
	w, h := t.backend.Size()
	return core.Size{Width: w, Height: h}
}

// Writer returns the output sink
func (t *Terminal) Writer() io.Writer {
	return backendWriter{b: t.backend}
}

// CursorPosition asks the terminal for the cursor location with a DSR query
// Input that arrives ahead of the report is kept for the event stream
func (t *Terminal) CursorPosition() (core.Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.raw {
		return core.Position{}, errors.New("cursor query requires raw mode")
	}
	if t.input != nil {
		return core.Position{}, errors.New("cursor query after input started")
	}
	if err := t.write(csiDSRPos); err != nil {
		return core.Position{}, err
	}

	stop := make(chan struct{})
	timer := time.AfterFunc(cursorQueryTimeout, func() { close(stop) })
	defer timer.Stop()

	var buf []byte
	for {
		data, err := t.backend.Read(stop)
		if err != nil {
			t.pending = append(t.pending, buf...)
			return core.Position{}, errors.Wrap(err, "read cursor report")
		}
		buf = append(buf, data...)
		if pos, start, end, ok := parseCursorReport(buf); ok {
			t.pending = append(t.pending, buf[:start]...)
			t.pending = append(t.pending, buf[end:]...)
			return pos, nil
		}
		select {
		case <-stop:
			t.pending = append(t.pending, buf...)
			return core.Position{}, errors.New("cursor report timed out")
		default:
		}
	}
}

// parseCursorReport finds "ESC [ row ; col R" in buf and returns the zero-based position and its byte span
func parseCursorReport(buf []byte) (pos core.Position, start, end int, ok bool) {
	for i := bytes.LastIndex(buf, csi); i >= 0; i = bytes.LastIndex(buf[:i], csi) {
		j := i + len(csi)
		row, n := scanInt(buf[j:])
		if n == 0 || j+n >= len(buf) || buf[j+n] != ';' {
			continue
		}
		j += n + 1
		col, n := scanInt(buf[j:])
		if n == 0 || j+n >= len(buf) || buf[j+n] != 'R' {
			continue
		}
		return core.Position{X: col - 1, Y: row - 1}, i, j + n + 1, true
	}
	return core.Position{}, 0, 0, false
}

func scanInt(b []byte) (val, n int) {
	for n < len(b) && b[n] >= '0' && b[n] <= '9' && n < 6 {
		val = val*10 + int(b[n]-'0')
		n++
	}
	return val, n
}

// Start begins delivering input and resize events
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.input != nil {
		return nil
	}
	t.input = newInputReader(t.backend, t.log, t.pending)
	t.pending = nil
	t.backend.SetResizeHandler(func(w, h int) {
		t.input.send(ResizeEvent(w, h))
	})
	t.input.start()
	return nil
}

// Events returns the input stream, nil before Start
func (t *Terminal) Events() <-chan Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.input == nil {
		return nil
	}
	return t.input.events()
}

// Stop ends input and resize delivery
func (t *Terminal) Stop() {
	t.mu.Lock()
	input := t.input
	t.mu.Unlock()
	if input == nil {
		return
	}
	t.backend.Close()
	input.stop()
}

// EmergencyReset writes every restore sequence and resets termios, for crash paths
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
