package render

import (
	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/grid"
	"github.com/lixenwraith/cellframe/terminal"
)

// Target is a drawable, updatable widget tree adapter driven by the Renderer
type Target interface {
	// Render draws the current state into w
	Render(w grid.CellWriter) error
	// OnEvents applies a batch of input events to target state
	OnEvents(events []terminal.Event) error
	// Update applies queued state changes and reports whether a redraw is needed
	Update() (bool, error)
	// RequiredSize returns a new size when the target wants the frame to grow or shrink
	RequiredSize(current core.Size) (core.Size, bool)
}

// DrawFunc adapts a plain draw function to a Target with no state
type DrawFunc func(w grid.CellWriter) error

func (f DrawFunc) Render(w grid.CellWriter) error { return f(w) }

func (f DrawFunc) OnEvents([]terminal.Event) error { return nil }

func (f DrawFunc) Update() (bool, error) { return false, nil }

func (f DrawFunc) RequiredSize(core.Size) (core.Size, bool) { return core.Size{}, false }
