package terminal

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// MakeRaw switches input to raw mode, failing when input is not a terminal
	MakeRaw() error
	// Restore returns input to the mode saved by MakeRaw
	Restore() error

	// Size returns the terminal dimensions in columns and rows
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or a poll interval elapses
	// Returns empty data on timeout or stop, io.EOF when input is closed
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
	// Close stops the resize watcher
	Close()
}

// backendWriter adapts a Backend to io.Writer
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
