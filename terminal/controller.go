package terminal

import (
	"io"

	"github.com/lixenwraith/cellframe/core"
)

// Controller is the set of terminal capabilities a Guard acquires and releases
type Controller interface {
	EnterAltScreen() error
	LeaveAltScreen() error
	EnableRawMode() error
	DisableRawMode() error
	EnableMouseCapture() error
	DisableMouseCapture() error
	HideCursor() error
	ShowCursor() error
}

// Device is a Controller with the input stream, output sink and geometry the event loop drives
type Device interface {
	Controller

	// Size returns the current terminal dimensions
	Size() core.Size
	// CursorPosition queries the cursor; requires raw mode and must precede Start
	CursorPosition() (core.Position, error)

	// Start begins delivering input and resize events
	Start() error
	// Events returns the input stream; EventClosed marks its end
	Events() <-chan Event
	// Stop ends input delivery
	Stop()

	// Writer returns the output sink
	Writer() io.Writer
}
