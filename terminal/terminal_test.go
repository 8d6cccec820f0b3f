package terminal

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/cellframe/core"
)

// fakeBackend serves scripted reads and records writes
type fakeBackend struct {
	mu      sync.Mutex
	out     bytes.Buffer
	reads   [][]byte
	raw     bool
	resize  func(width, height int)
	closed  bool
	onWrite func(p []byte)
}

func (f *fakeBackend) MakeRaw() error {
	f.raw = true
	return nil
}

func (f *fakeBackend) Restore() error {
	f.raw = false
	return nil
}

func (f *fakeBackend) Size() (int, int) { return 100, 40 }

func (f *fakeBackend) Write(p []byte) error {
	f.mu.Lock()
	f.out.Write(p)
	hook := f.onWrite
	f.mu.Unlock()
	if hook != nil {
		hook(p)
	}
	return nil
}

func (f *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	f.mu.Lock()
	if len(f.reads) > 0 {
		data := f.reads[0]
		f.reads = f.reads[1:]
		f.mu.Unlock()
		if data == nil {
			return nil, io.EOF
		}
		return data, nil
	}
	f.mu.Unlock()
	select {
	case <-stopCh:
	case <-time.After(5 * time.Millisecond):
	}
	return nil, nil
}

func (f *fakeBackend) queue(data []byte) {
	f.mu.Lock()
	f.reads = append(f.reads, data)
	f.mu.Unlock()
}

func (f *fakeBackend) SetResizeHandler(handler func(width, height int)) { f.resize = handler }
func (f *fakeBackend) Close() { f.closed = true }

func (f *fakeBackend) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

func TestParseCursorReport(t *testing.T) {
	pos, start, end, ok := parseCursorReport([]byte("ab\x1b[12;7Rcd"))
	if !ok {
		t.Fatal("Expected report found")
	}
	if pos != (core.Position{X: 6, Y: 11}) {
		t.Errorf("Expected (6,11), got %v", pos)
	}
	if start != 2 || end != 9 {
		t.Errorf("Expected span [2,9), got [%d,%d)", start, end)
	}
	if _, _, _, ok := parseCursorReport([]byte("\x1b[12;7")); ok {
		t.Error("Expected incomplete report rejected")
	}
	if _, _, _, ok := parseCursorReport([]byte("\x1b[A")); ok {
		t.Error("Expected arrow key rejected")
	}
}

func TestCursorPositionKeepsTypeAhead(t *testing.T) {
	fb := &fakeBackend{}
	term := NewWithBackend(fb, nil)
	fb.onWrite = func(p []byte) {
		if bytes.Equal(p, csiDSRPos) {
			fb.queue([]byte("x\x1b[5;"))
			fb.queue([]byte("3Ry"))
		}
	}
	if err := term.EnableRawMode(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	pos, err := term.CursorPosition()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pos != (core.Position{X: 2, Y: 4}) {
		t.Errorf("Expected (2,4), got %v", pos)
	}

	if err := term.Start(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Stop()

	var got []rune
	timeout := time.After(time.Second)
	for len(got) < 2 {
		select {
		case ev := <-term.Events():
			if ev.Type == EventKey && ev.Key == KeyRune {
				got = append(got, ev.Rune)
			}
		case <-timeout:
			t.Fatalf("Timed out, got %q", string(got))
		}
	}
	if string(got) != "xy" {
		t.Errorf("Expected type-ahead \"xy\", got %q", string(got))
	}
}

func TestCursorPositionRequiresRawMode(t *testing.T) {
	term := NewWithBackend(&fakeBackend{}, nil)
	if _, err := term.CursorPosition(); err == nil {
		t.Error("Expected error without raw mode")
	}
}

func TestCursorPositionTimeout(t *testing.T) {
	fb := &fakeBackend{}
	term := NewWithBackend(fb, nil)
	term.EnableRawMode()
	if _, err := term.CursorPosition(); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestStartDeliversResizeAndClose(t *testing.T) {
	fb := &fakeBackend{}
	term := NewWithBackend(fb, nil)
	term.Start()
	defer term.Stop()

	fb.resize(120, 50)
	ev := <-term.Events()
	if ev != ResizeEvent(120, 50) {
		t.Errorf("Expected resize 120x50, got %+v", ev)
	}

	fb.queue(nil)
	select {
	case ev := <-term.Events():
		if ev.Type != EventClosed {
			t.Errorf("Expected EventClosed on EOF, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for EventClosed")
	}
}

func TestControllerSequences(t *testing.T) {
	fb := &fakeBackend{}
	term := NewWithBackend(fb, nil)

	term.EnterAltScreen()
	term.HideCursor()
	term.EnableMouseCapture()
	term.DisableMouseCapture()
	term.ShowCursor()
	term.LeaveAltScreen()

	want := "\x1b[?1049h\x1b[2J\x1b[H\x1b[?7l" +
		"\x1b[?25l" +
		"\x1b[?1006h\x1b[?1000h\x1b[?1002h" +
		"\x1b[?1002l\x1b[?1000l\x1b[?1006l" +
		"\x1b[?25h" +
		"\x1b[0m\x1b[?7h\x1b[?1049l"
	if got := fb.written(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestParseKeySpec(t *testing.T) {
	tests := []struct {
		in   string
		want KeySpec
	}{
		{"escape", KeySpec{Key: KeyEscape}},
		{"Esc", KeySpec{Key: KeyEscape}},
		{"ctrl_c", KeySpec{Key: KeyCtrlC}},
		{"ctrl+q", KeySpec{Key: KeyCtrlQ}},
		{"q", KeySpec{Key: KeyRune, Rune: 'q'}},
		{"alt+x", KeySpec{Key: KeyRune, Rune: 'x', Mods: ModAlt}},
		{"shift+up", KeySpec{Key: KeyUp, Mods: ModShift}},
		{"f10", KeySpec{Key: KeyF10}},
	}
	for _, tt := range tests {
		got, err := ParseKeySpec(tt.in)
		if err != nil {
			t.Errorf("ParseKeySpec(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKeySpec(%q): expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
	if _, err := ParseKeySpec("hyper_x"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestKeySpecMatches(t *testing.T) {
	spec, _ := ParseKeySpec("q")
	if !spec.Matches(RuneEvent('q', ModNone)) {
		t.Error("Expected 'q' to match")
	}
	if spec.Matches(RuneEvent('q', ModAlt)) {
		t.Error("Expected Alt+q not to match")
	}
	esc, _ := ParseKeySpec("escape")
	if !esc.Matches(KeyEvent(KeyEscape, ModNone)) {
		t.Error("Expected Escape to match")
	}
	if esc.Matches(ResizeEvent(1, 1)) {
		t.Error("Expected resize not to match")
	}
}
