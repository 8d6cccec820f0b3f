package terminal

import (
	"log/slog"
	"sync"

	"github.com/lixenwraith/cellframe/core"
)

// Capabilities selects which terminal modes a Guard acquires
type Capabilities struct {
	AltScreen    bool
	RawMode      bool
	MouseCapture bool
	HideCursor   bool
}

// AllCapabilities enables every mode
func AllCapabilities() Capabilities {
	return Capabilities{AltScreen: true, RawMode: true, MouseCapture: true, HideCursor: true}
}

type gate struct {
	name    string
	enable  func() error
	disable func() error
}

// gates lists requested capabilities in acquisition order
func (c Capabilities) gates(ctl Controller) []gate {
	all := []struct {
		on bool
		gate
	}{
		{c.AltScreen, gate{"alternate screen", ctl.EnterAltScreen, ctl.LeaveAltScreen}},
		{c.RawMode, gate{"raw mode", ctl.EnableRawMode, ctl.DisableRawMode}},
		{c.MouseCapture, gate{"mouse capture", ctl.EnableMouseCapture, ctl.DisableMouseCapture}},
		{c.HideCursor, gate{"hidden cursor", ctl.HideCursor, ctl.ShowCursor}},
	}
	gates := make([]gate, 0, len(all))
	for _, g := range all {
		if g.on {
			gates = append(gates, g.gate)
		}
	}
	return gates
}

// Guard owns the terminal's special modes for its lifetime
// Release restores them in reverse acquisition order
type Guard struct {
	log     *slog.Logger
	enabled []gate
	once    sync.Once
}

// NewGuard enables the requested capabilities in order: alternate screen, raw mode, mouse capture, hidden cursor
// On failure it returns the partially enabled guard with a TerminalSetup error; callers must still Release it
func NewGuard(ctl Controller, caps Capabilities, logger *slog.Logger) (*Guard, error) {
	g := &Guard{log: core.LoggerOrDiscard(logger)}
	for _, gt := range caps.gates(ctl) {
		if err := gt.enable(); err != nil {
			return g, core.TerminalSetup(gt.name, err)
		}
		g.enabled = append(g.enabled, gt)
		g.log.Debug("terminal capability enabled", "capability", gt.name)
	}
	return g, nil
}

// Enabled returns the names of acquired capabilities in acquisition order
func (g *Guard) Enabled() []string {
	names := make([]string, len(g.enabled))
	for i, gt := range g.enabled {
		names[i] = gt.name
	}
	return names
}

// Release disables every acquired capability in reverse order
// A failed restore is logged and the remaining ones still run; safe to call more than once
func (g *Guard) Release() {
	if g == nil {
		return
	}
	g.once.Do(func() {
		for i := len(g.enabled) - 1; i >= 0; i-- {
			gt := g.enabled[i]
			if err := gt.disable(); err != nil {
				g.log.Warn("terminal restore failed", "capability", gt.name, "error", err)
			}
		}
		g.enabled = nil
	})
}
