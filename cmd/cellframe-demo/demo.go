package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/grid"
	"github.com/lixenwraith/cellframe/style"
	"github.com/lixenwraith/cellframe/terminal"
)

const maxLogLines = 64

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// printClipped writes s and treats running off the edge as success
func printClipped(w grid.CellWriter, pos core.Position, s string, st style.Style) error {
	if _, err := grid.Print(w, pos, s, st); err != nil && !errors.Is(err, core.ErrOutOfBounds) {
		return err
	}
	return nil
}

// describe formats an event for the key log
func describe(ev terminal.Event) string {
	switch ev.Type {
	case terminal.EventKey:
		return "key   " + terminal.KeySpec{Key: ev.Key, Rune: ev.Rune, Mods: ev.Modifiers}.String()
	case terminal.EventMouse:
		return fmt.Sprintf("mouse %s %s at %d,%d", ev.MouseBtn, ev.MouseAction, ev.MouseX, ev.MouseY)
	case terminal.EventResize:
		return fmt.Sprintf("resize %dx%d", ev.Width, ev.Height)
	case terminal.EventError:
		return fmt.Sprintf("error %v", ev.Err)
	}
	return ev.Type.String()
}

// eventLog keeps the most recent event descriptions
type eventLog struct {
	lines []string
}

func (l *eventLog) add(events []terminal.Event) {
	for _, ev := range events {
		l.lines = append(l.lines, describe(ev))
	}
	if n := len(l.lines); n > maxLogLines {
		l.lines = append(l.lines[:0], l.lines[n-maxLogLines:]...)
	}
}

// tail returns at most n of the newest lines
func (l *eventLog) tail(n int) []string {
	if n <= 0 {
		return nil
	}
	return l.lines[max(len(l.lines)-n, 0):]
}

// showcase is the full-screen demo: spinner, color bar, wide glyphs and a key log
type showcase struct {
	accent style.Color
	exit   string
	tick   int
	log    eventLog
}

func newShowcase(accent style.Color, exit string) *showcase {
	return &showcase{accent: accent, exit: exit}
}

func (s *showcase) Render(w grid.CellWriter) error {
	size := w.Size()
	accent := style.Default.Foreground(s.accent)

	if err := printClipped(w, core.Position{}, "cellframe demo", accent.Bold(true)); err != nil {
		return err
	}
	hint := fmt.Sprintf("press %s to quit", s.exit)
	if err := printClipped(w, core.Position{X: 16}, hint, style.Default.Dim(true)); err != nil {
		return err
	}

	spin := spinnerFrames[s.tick%len(spinnerFrames)]
	w.Overwrite(core.Position{Y: 2}, style.New(spin, accent))
	if err := printClipped(w, core.Position{X: 2, Y: 2}, fmt.Sprintf("tick %d", s.tick), style.Default); err != nil {
		return err
	}

	// Gradient shifts one column per tick
	for x := range size.Width {
		t := uint8((x + s.tick) * 255 / max(size.Width, 1))
		w.Overwrite(core.Position{X: x, Y: 4}, style.New(' ', style.Default.Background(style.RGB(t, 255-t, 160))))
	}

	if err := printClipped(w, core.Position{Y: 6}, "wide: 你好世界 한국어 ｶﾀｶﾅ", style.Default); err != nil {
		return err
	}

	frame := grid.NewRegion(w, core.Area{Y: 8, Width: size.Width, Height: size.Height - 8})
	inner := grid.Card(frame, "events", grid.LineRounded, accent)
	for i, line := range s.log.tail(inner.Size().Height) {
		if err := printClipped(inner, core.Position{Y: i}, line, style.Default.Foreground(style.Cyan)); err != nil {
			return err
		}
	}
	return nil
}

func (s *showcase) OnEvents(events []terminal.Event) error {
	s.log.add(events)
	return nil
}

// Update advances the animation every tick
func (s *showcase) Update() (bool, error) {
	s.tick++
	return true, nil
}

func (s *showcase) RequiredSize(core.Size) (core.Size, bool) {
	return core.Size{}, false
}

// progress is the inline demo: a task list that grows one row per finished task
type progress struct {
	tasks     []string
	ticksEach int
	ticks     int
	done      int
	accent    style.Color
	onDone    func()
}

func newProgress(count, ticksEach int, accent style.Color) *progress {
	p := &progress{ticksEach: max(ticksEach, 1), accent: accent}
	for i := range count {
		p.tasks = append(p.tasks, fmt.Sprintf("task %02d", i+1))
	}
	return p
}

func (p *progress) rows() int {
	return min(p.done+1, len(p.tasks))
}

func (p *progress) Render(w grid.CellWriter) error {
	for i := range p.rows() {
		mark, st := '✓', style.Default.Foreground(style.Green)
		label := p.tasks[i]
		if i >= p.done {
			mark = spinnerFrames[p.ticks%len(spinnerFrames)]
			st = style.Default.Foreground(p.accent)
			pct := (p.ticks % p.ticksEach) * 100 / p.ticksEach
			label = fmt.Sprintf("%s %3d%%", label, pct)
		}
		w.Overwrite(core.Position{Y: i}, style.New(mark, st))
		if err := printClipped(w, core.Position{X: 2, Y: i}, label, style.Default); err != nil {
			return err
		}
	}
	return nil
}

func (p *progress) OnEvents([]terminal.Event) error {
	return nil
}

func (p *progress) Update() (bool, error) {
	if p.done >= len(p.tasks) {
		return false, nil
	}
	p.ticks++
	if p.ticks%p.ticksEach == 0 {
		p.done++
		if p.done == len(p.tasks) && p.onDone != nil {
			p.onDone()
		}
	}
	return true, nil
}

// RequiredSize asks for one row per started task
func (p *progress) RequiredSize(current core.Size) (core.Size, bool) {
	rows := p.rows()
	return core.Size{Width: current.Width, Height: rows}, rows != current.Height
}

// keyViewer is the inline event inspector
type keyViewer struct {
	maxRows int
	exit    string
	log     eventLog
}

func (k *keyViewer) Render(w grid.CellWriter) error {
	if err := printClipped(w, core.Position{}, fmt.Sprintf("decoded events, %s to quit", k.exit), style.Default.Dim(true)); err != nil {
		return err
	}
	for i, line := range k.log.tail(w.Size().Height - 1) {
		if err := printClipped(w, core.Position{Y: i + 1}, line, style.Default); err != nil {
			return err
		}
	}
	return nil
}

func (k *keyViewer) OnEvents(events []terminal.Event) error {
	k.log.add(events)
	return nil
}

func (k *keyViewer) Update() (bool, error) {
	return false, nil
}

func (k *keyViewer) RequiredSize(current core.Size) (core.Size, bool) {
	rows := min(len(k.log.lines)+1, k.maxRows)
	return core.Size{Width: current.Width, Height: rows}, rows != current.Height
}
