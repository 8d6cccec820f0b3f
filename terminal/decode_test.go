package terminal

import (
	"testing"
)

func decodeAll(chunks ...string) []Event {
	var d decoder
	var events []Event
	for _, c := range chunks {
		d.feed([]byte(c), func(ev Event) { events = append(events, ev) })
	}
	return events
}

func TestDecodePrintableAndControl(t *testing.T) {
	events := decodeAll("a\r\x03\x7f")
	want := []Event{
		RuneEvent('a', ModNone),
		KeyEvent(KeyEnter, ModNone),
		KeyEvent(KeyCtrlC, ModNone),
		KeyEvent(KeyBackspace, ModNone),
	}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("Event %d: expected %+v, got %+v", i, want[i], events[i])
		}
	}
}

func TestDecodeArrowsWithModifiers(t *testing.T) {
	events := decodeAll("\x1b[A\x1b[1;5C\x1b[1;2D\x1bOB")
	want := []Event{
		KeyEvent(KeyUp, ModNone),
		KeyEvent(KeyRight, ModCtrl),
		KeyEvent(KeyLeft, ModShift),
		KeyEvent(KeyDown, ModNone),
	}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("Event %d: expected %+v, got %+v", i, want[i], events[i])
		}
	}
}

func TestDecodeTildeKeys(t *testing.T) {
	events := decodeAll("\x1b[3~\x1b[5;3~\x1b[24~")
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Key != KeyDelete {
		t.Errorf("Expected Delete, got %v", events[0].Key)
	}
	if events[1].Key != KeyPageUp || events[1].Modifiers != ModAlt {
		t.Errorf("Expected Alt+PageUp, got %v %v", events[1].Key, events[1].Modifiers)
	}
	if events[2].Key != KeyF12 {
		t.Errorf("Expected F12, got %v", events[2].Key)
	}
}

func TestDecodeSplitSequence(t *testing.T) {
	events := decodeAll("\x1b", "[", "1;5", "A")
	if len(events) != 1 || events[0] != KeyEvent(KeyUp, ModCtrl) {
		t.Errorf("Expected single Ctrl+Up, got %+v", events)
	}
}

func TestDecodeSplitUTF8(t *testing.T) {
	raw := []byte("你")
	events := decodeAll(string(raw[:1]), string(raw[1:]))
	if len(events) != 1 || events[0].Rune != '你' {
		t.Errorf("Expected single '你', got %+v", events)
	}
}

func TestDecodeAltKeys(t *testing.T) {
	events := decodeAll("\x1bx\x1b\x1b")
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0] != RuneEvent('x', ModAlt) {
		t.Errorf("Expected Alt+x, got %+v", events[0])
	}
	if events[1] != KeyEvent(KeyEscape, ModAlt) {
		t.Errorf("Expected Alt+Escape, got %+v", events[1])
	}
}

func TestDecodeLoneEscapeOnIdle(t *testing.T) {
	var d decoder
	var events []Event
	emit := func(ev Event) { events = append(events, ev) }

	d.feed([]byte{0x1b}, emit)
	if len(events) != 0 {
		t.Fatalf("Expected ESC held until idle, got %+v", events)
	}
	d.idle(emit)
	if len(events) != 1 || events[0] != KeyEvent(KeyEscape, ModNone) {
		t.Errorf("Expected Escape after idle, got %+v", events)
	}
}

func TestDecodeSGRMouse(t *testing.T) {
	events := decodeAll("\x1b[<0;10;5M\x1b[<0;10;5m\x1b[<32;11;5M\x1b[<65;1;1M")
	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(events))
	}
	press := events[0]
	if press.Type != EventMouse || press.MouseBtn != MouseBtnLeft || press.MouseAction != MouseActionPress {
		t.Errorf("Expected left press, got %+v", press)
	}
	if press.MouseX != 9 || press.MouseY != 4 {
		t.Errorf("Expected zero-based (9,4), got (%d,%d)", press.MouseX, press.MouseY)
	}
	if events[1].MouseAction != MouseActionRelease {
		t.Errorf("Expected release, got %v", events[1].MouseAction)
	}
	if events[2].MouseAction != MouseActionDrag {
		t.Errorf("Expected drag, got %v", events[2].MouseAction)
	}
	if events[3].MouseBtn != MouseBtnWheelDown {
		t.Errorf("Expected wheel down, got %v", events[3].MouseBtn)
	}
}

func TestDecodeUnknownSequenceSwallowed(t *testing.T) {
	events := decodeAll("\x1b[99zq")
	if len(events) != 1 || events[0] != RuneEvent('q', ModNone) {
		t.Errorf("Expected only 'q', got %+v", events)
	}
}

func TestDecodeLateCursorReportIgnored(t *testing.T) {
	events := decodeAll("\x1b[12;40R")
	if len(events) != 0 {
		t.Errorf("Expected cursor report dropped, got %+v", events)
	}
}
