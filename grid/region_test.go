package grid

import (
	"errors"
	"testing"

	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/style"
)

func TestRegionTranslatesPositions(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 10, Height: 5})
	r := NewRegion(buf, core.Area{X: 2, Y: 1, Width: 4, Height: 2})

	if _, err := r.Set(pos(0, 0), style.Plain('k')); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	c, _ := buf.Get(pos(2, 1))
	if c.Content.Rune != 'k' {
		t.Errorf("Expected 'k' at (2,1), got %q", c.Content.Rune)
	}
}

func TestRegionRejectsOutside(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 10, Height: 5})
	r := NewRegion(buf, core.Area{X: 2, Y: 1, Width: 4, Height: 2})

	if _, err := r.Set(pos(4, 0), style.Plain('k')); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Expected OutOfBounds past region width, got %v", err)
	}
	if _, err := r.Overwrite(pos(3, 1), style.Plain('你')); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Expected OutOfBounds for wide glyph at region edge, got %v", err)
	}
	if c, _ := buf.Get(pos(6, 1)); !c.IsBlank() {
		t.Errorf("Expected buffer outside region untouched, got %+v", c)
	}
}

func TestRegionClippedToBuffer(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 5, Height: 5})
	r := NewRegion(buf, core.Area{X: 3, Y: 3, Width: 10, Height: 10})
	if r.Size() != (core.Size{Width: 2, Height: 2}) {
		t.Errorf("Expected 2x2, got %v", r.Size())
	}
	sub := r.Sub(core.Area{X: 1, Y: 0, Width: 5, Height: 1})
	if sub.Area() != (core.Area{X: 4, Y: 3, Width: 1, Height: 1}) {
		t.Errorf("Expected nested area clipped, got %+v", sub.Area())
	}
}

func TestPrintAdvancesByWidth(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 10, Height: 1})
	n, err := Print(buf, pos(0, 0), "a你b", style.Default)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 columns, got %d", n)
	}
	c, _ := buf.Get(pos(3, 0))
	if c.Content.Rune != 'b' {
		t.Errorf("Expected 'b' at (3,0), got %q", c.Content.Rune)
	}
}

func TestPrintKeepsClusterInOneCell(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 10, Height: 1})
	n, _ := Print(buf, pos(0, 0), "e\u0301x", style.Default)
	if n != 2 {
		t.Errorf("Expected 2 columns, got %d", n)
	}
	c, _ := buf.Get(pos(1, 0))
	if c.Content.Rune != 'x' {
		t.Errorf("Expected 'x' at (1,0), got %q", c.Content.Rune)
	}
}

func TestPrintPadsEmojiPresentation(t *testing.T) {
	// U+2764 is one column alone, two with the emoji presentation selector
	buf := NewBuffer(core.Size{Width: 4, Height: 1})
	n, err := Print(buf, pos(0, 0), "❤️x", style.Default)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 columns, got %d", n)
	}
	if c, _ := buf.Get(pos(0, 0)); c.Content.Rune != '❤' {
		t.Errorf("Expected heart at (0,0), got %q", c.Content.Rune)
	}
	if c, _ := buf.Get(pos(1, 0)); !c.IsBlank() {
		t.Errorf("Expected padding at (1,0), got %+v", c)
	}
	if c, _ := buf.Get(pos(2, 0)); c.Content.Rune != 'x' {
		t.Errorf("Expected 'x' at (2,0), got %q", c.Content.Rune)
	}

	// Does not fit in the last column, nothing written
	buf = NewBuffer(core.Size{Width: 2, Height: 1})
	n, err = Print(buf, pos(1, 0), "❤️", style.Default)
	if !errors.Is(err, core.ErrOutOfBounds) || n != 0 {
		t.Errorf("Expected OutOfBounds with 0 columns, got %d, %v", n, err)
	}
	if c, _ := buf.Get(pos(1, 0)); !c.IsBlank() {
		t.Errorf("Expected last column untouched, got %+v", c)
	}
}

func TestPrintStopsAtEdge(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 5, Height: 1})
	n, err := Print(buf, pos(0, 0), "你好世", style.Default)
	if !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Expected OutOfBounds, got %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 columns written, got %d", n)
	}
	if c, _ := buf.Get(pos(4, 0)); !c.IsBlank() {
		t.Errorf("Expected last column blank, got %+v", c)
	}
}

func TestFill(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 3, Height: 2})
	Fill(buf, style.Plain('#'))
	for c := range buf.AllCells() {
		if c.Cell.Content.Rune != '#' {
			t.Errorf("Expected '#' at %v, got %q", c.Pos, c.Cell.Content.Rune)
		}
	}
}
