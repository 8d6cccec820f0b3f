package terminal

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventMouse
	EventError  // Read error
	EventClosed // Input closed
)

// String returns the type name
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventMouse:
		return "mouse"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	}
	return "unknown"
}

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError

	// Mouse event fields, zero-based
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
}

// KeyEvent builds a key event
func KeyEvent(k Key, mods Modifier) Event {
	return Event{Type: EventKey, Key: k, Modifiers: mods}
}

// RuneEvent builds a printable key event
func RuneEvent(r rune, mods Modifier) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r, Modifiers: mods}
}

// ResizeEvent builds a resize event
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}
