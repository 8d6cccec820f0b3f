package loop

import "sync"

// stopSignal is a close-once broadcast observed by both units
type stopSignal struct {
	ch   chan struct{}
	once sync.Once
}

func newStopSignal() *stopSignal {
	return &stopSignal{ch: make(chan struct{})}
}

// Trigger closes the channel, later calls are no-ops
func (s *stopSignal) Trigger() {
	s.once.Do(func() { close(s.ch) })
}

// Done is closed once Trigger has been called
func (s *stopSignal) Done() <-chan struct{} {
	return s.ch
}

// Stopped reports whether Trigger has been called, without blocking
func (s *stopSignal) Stopped() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
