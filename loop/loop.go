// Package loop runs a render target against a terminal device with two cooperating goroutines
// The sampler batches input on a fixed tick; the render unit applies each batch and draws
// A capacity-1 handshake keeps at most one batch in flight
package loop

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/cellframe/config"
	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/render"
	"github.com/lixenwraith/cellframe/style"
	"github.com/lixenwraith/cellframe/terminal"
)

// Unit names reported in ThreadPanic errors
const (
	UnitSampler = "sampler"
	UnitRender  = "render"
)

// Loop owns the terminal for the duration of Run
// Single use: a second Run returns an error
type Loop struct {
	target  render.Target
	dev     terminal.Device
	cfg     config.Config
	exitKey terminal.KeySpec

	log          *slog.Logger
	tickInterval time.Duration
	colorMode    style.ColorMode
	onFrame      func(Frame)

	// Handshake, both capacity 1
	batches chan []terminal.Event
	ready   chan struct{}
	stop    *stopSignal

	ran     atomic.Bool
	dropped atomic.Uint64
	frames  atomic.Uint64
}

// New validates cfg and prepares a loop; nothing touches the terminal until Run
func New(target render.Target, dev terminal.Device, cfg config.Config, opts ...Option) (*Loop, error) {
	if target == nil || dev == nil {
		return nil, errors.New("loop requires a target and a device")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	exitKey, err := cfg.ExitKey()
	if err != nil {
		return nil, err
	}

	l := &Loop{
		target:       target,
		dev:          dev,
		cfg:          cfg,
		exitKey:      exitKey,
		tickInterval: DefaultTickInterval,
		colorMode:    style.DetectColorMode(),
		batches:      make(chan []terminal.Event, 1),
		ready:        make(chan struct{}, 1),
		stop:         newStopSignal(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = core.LoggerOrDiscard(l.log)
	return l, nil
}

// Stop asks both units to exit; safe from any goroutine, including target callbacks
func (l *Loop) Stop() {
	l.stop.Trigger()
}

// Dropped returns the number of events discarded for exceeding the per-frame limit
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

// Frames returns the number of completed render-unit iterations
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Run acquires the terminal, drives the units until stop, and restores the terminal
// Returns a TerminalSetup error when acquisition fails and a ThreadPanic error when a unit panics
func (l *Loop) Run(ctx context.Context) error {
	if !l.ran.CompareAndSwap(false, true) {
		return errors.New("loop already ran")
	}

	guard, err := terminal.NewGuard(l.dev, l.cfg.Capabilities(), l.log)
	defer guard.Release()
	if err != nil {
		l.log.Error("terminal setup failed", "error", err)
		return err
	}

	r := l.newRenderer()

	if err := l.dev.Start(); err != nil {
		return core.TerminalSetup("input", err)
	}
	defer l.dev.Stop()
	events := l.dev.Events()

	l.log.Info("loop started",
		"size", r.Size().String(),
		"inline", l.cfg.InlineMode,
		"diff_mode", l.cfg.DiffMode,
		"capabilities", guard.Enabled(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return core.GuardedWith(UnitSampler, l.onPanic, func() error {
			return l.sample(gctx, events)
		})
	})
	g.Go(func() error {
		return core.GuardedWith(UnitRender, l.onPanic, func() error {
			return l.renderUnit(r)
		})
	})
	runErr := g.Wait()

	finishErr := r.Finish()
	l.log.Info("loop stopped", "frames", l.Frames(), "dropped", l.Dropped(), "error", runErr)

	if runErr != nil {
		return runErr
	}
	return finishErr
}

func (l *Loop) onPanic(err error) {
	l.log.Error("unit panicked", "error", err)
	l.stop.Trigger()
}

// newRenderer sizes the buffer for the mode and resolves the inline origin
func (l *Loop) newRenderer() *render.Renderer {
	screen := l.dev.Size()
	opts := render.Options{
		ClearOnRedraw: l.cfg.Clear,
		AppendNewline: l.cfg.AppendNewline,
		ColorMode:     l.colorMode,
	}
	if l.cfg.LineMode() {
		opts.Mode = render.ModeLine
	}

	size := screen
	if l.cfg.InlineMode {
		opts.Inline = true
		opts.Origin = l.inlineOrigin()
		opts.UsedHeight = l.cfg.InitialUsedHeight
		size = l.inlineSize(screen)
	}

	r := render.New(l.target, l.dev.Writer(), size, opts)
	r.SetScreenSize(screen)
	return r
}

func (l *Loop) inlineSize(screen core.Size) core.Size {
	return core.Size{Width: screen.Width, Height: l.cfg.InlineMaxHeight}
}

// inlineOrigin starts the region at the cursor row, or the row below when the cursor is mid-line
func (l *Loop) inlineOrigin() core.Position {
	pos, err := l.dev.CursorPosition()
	if err != nil {
		l.log.Warn("cursor position query failed, drawing inline at top-left", "error", err)
		return core.Position{}
	}
	if pos.X != 0 {
		return core.Position{Y: pos.Y + 1}
	}
	return core.Position{Y: pos.Y}
}

// sample collects input into batches and hands one to the render unit per tick while it is ready
func (l *Loop) sample(ctx context.Context, events <-chan terminal.Event) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.batches)

	ticker := time.NewTicker(l.tickInterval)
	defer ticker.Stop()

	limit := l.cfg.MaxEventsPerFrame
	pending := make([]terminal.Event, 0, limit+1)
	// Latest resize that arrived after the batch filled; it rides along with the next dispatch
	var heldResize *terminal.Event

	// First frame renders without waiting for a tick
	l.batches <- nil
	ready := false

	for {
		select {
		case <-l.stop.Done():
			return nil

		case <-ctx.Done():
			l.stop.Trigger()
			return nil

		case ev, ok := <-events:
			if !ok || ev.Type == terminal.EventClosed {
				l.log.Info("input closed")
				l.stop.Trigger()
				return nil
			}
			if l.exitKey.Matches(ev) {
				l.log.Debug("exit key pressed", "key", l.exitKey.String())
				l.stop.Trigger()
				return nil
			}
			if ev.Type == terminal.EventError {
				l.log.Error("input error", "error", ev.Err)
				continue
			}
			if len(pending) >= limit {
				if ev.Type == terminal.EventResize {
					heldResize = &ev
					continue
				}
				l.dropped.Add(1)
				l.log.Debug("event dropped, frame batch full", "type", ev.Type.String(), "limit", limit)
				continue
			}
			pending = append(pending, ev)

		case <-l.ready:
			ready = true

		case <-ticker.C:
			if !ready {
				continue
			}
			if heldResize != nil {
				pending = append(pending, *heldResize)
				heldResize = nil
			}
			// Ready means the previous batch was consumed, so this send never blocks
			l.batches <- pending
			pending = make([]terminal.Event, 0, limit+1)
			ready = false
		}
	}
}

// renderUnit applies batches and draws until stop or the batch channel closes
func (l *Loop) renderUnit(r *render.Renderer) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var budget time.Duration
	if l.cfg.FrameLimit > 0 {
		budget = time.Second / time.Duration(l.cfg.FrameLimit)
	}

	for {
		if l.stop.Stopped() {
			return nil
		}

		batch, ok := <-l.batches
		if !ok {
			return nil
		}
		start := time.Now()

		l.applyResize(r, batch)
		if err := r.OnEvents(batch); err != nil {
			l.log.Error("target event handling failed", "error", err)
		}
		if _, err := r.Update(); err != nil {
			l.log.Error("target update failed", "error", err)
		}
		l.applyRequiredSize(r)

		rendered := false
		if len(batch) > 0 || r.HasPendingChanges() {
			if err := r.Render(); err != nil {
				l.log.Error("render failed", "error", err)
			}
			rendered = true
		}

		index := l.frames.Add(1)
		if l.onFrame != nil {
			l.onFrame(Frame{Index: index, Events: len(batch), Rendered: rendered, Elapsed: time.Since(start)})
		}

		if budget > 0 {
			if rest := budget - time.Since(start); rest > 0 {
				select {
				case <-time.After(rest):
				case <-l.stop.Done():
					return nil
				}
			}
		}

		l.ready <- struct{}{}
	}
}

// applyResize resizes for the last resize event in the batch
func (l *Loop) applyResize(r *render.Renderer, batch []terminal.Event) {
	var last *terminal.Event
	for i := range batch {
		if batch[i].Type == terminal.EventResize {
			last = &batch[i]
		}
	}
	if last == nil {
		return
	}

	screen := core.Size{Width: last.Width, Height: last.Height}
	r.SetScreenSize(screen)
	if l.cfg.InlineMode {
		r.Resize(l.inlineSize(screen))
	} else {
		r.Resize(screen)
	}
	l.log.Debug("terminal resized", "size", screen.String())
}

// applyRequiredSize grows or shrinks the frame as the target requests
func (l *Loop) applyRequiredSize(r *render.Renderer) {
	current := r.Size()
	if l.cfg.InlineMode {
		current.Height = r.UsedHeight()
	}
	want, ok := r.Target().RequiredSize(current)
	if !ok || want == current {
		return
	}
	if l.cfg.InlineMode {
		r.SetUsedHeight(want.Height)
	} else {
		r.Resize(want)
	}
}
