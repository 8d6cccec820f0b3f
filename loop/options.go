package loop

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/cellframe/style"
)

// DefaultTickInterval is the sampling cadence, 60 Hz
const DefaultTickInterval = time.Second / 60

// Frame describes one render-unit iteration
type Frame struct {
	Index    uint64
	Events   int  // Events in the batch
	Rendered bool // Output was written
	Elapsed  time.Duration
}

// Option configures a Loop
type Option func(*Loop)

// WithLogger sets the loop, guard and input logger
func WithLogger(l *slog.Logger) Option {
	return func(lp *Loop) {
		lp.log = l
	}
}

// WithTickInterval overrides the batch dispatch cadence
func WithTickInterval(d time.Duration) Option {
	return func(lp *Loop) {
		if d > 0 {
			lp.tickInterval = d
		}
	}
}

// WithFrameCallback registers fn to run on the render goroutine after every iteration
func WithFrameCallback(fn func(Frame)) Option {
	return func(lp *Loop) {
		lp.onFrame = fn
	}
}

// WithColorMode overrides terminal color detection
func WithColorMode(mode style.ColorMode) Option {
	return func(lp *Loop) {
		lp.colorMode = mode
	}
}
