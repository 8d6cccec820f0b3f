package grid

import (
	"strings"
	"testing"

	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/style"
)

func rowString(buf *Buffer, y int) string {
	var b strings.Builder
	for _, c := range buf.Row(y) {
		if !c.Occupied {
			b.WriteRune(c.Content.Rune)
		}
	}
	return b.String()
}

func TestBoxDrawsEdges(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 4, Height: 3})
	Box(buf, LineRounded, style.Default)

	expected := []string{"╭──╮", "│  │", "╰──╯"}
	for y, want := range expected {
		if got := rowString(buf, y); got != want {
			t.Errorf("Row %d: expected %q, got %q", y, want, got)
		}
	}
}

func TestBoxTooSmall(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 1, Height: 3})
	Box(buf, LineSingle, style.Default)
	if got := rowString(buf, 0); got != " " {
		t.Errorf("Expected nothing drawn, got %q", got)
	}
}

func TestHLineUnknownTypeFallsBack(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 3, Height: 2})
	HLine(buf, 1, LineType(99), style.Default)
	if got := rowString(buf, 1); got != "───" {
		t.Errorf("Expected single rule, got %q", got)
	}
	HLine(buf, 5, LineSingle, style.Default)
}

func TestCardTitleAndInner(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 10, Height: 4})
	outer := NewRegion(buf, core.Area{Width: 10, Height: 4})
	inner := Card(outer, "log", LineSingle, style.Default)

	if got := rowString(buf, 0); got != "┌─ log ──┐" {
		t.Errorf("Expected titled top edge, got %q", got)
	}
	if inner.Area() != (core.Area{X: 1, Y: 1, Width: 8, Height: 2}) {
		t.Errorf("Expected inner area inside border, got %+v", inner.Area())
	}

	// Inner writes land inside the border and stop at its edge
	n, _ := Print(inner, core.Position{}, "0123456789", style.Default)
	if n != 8 {
		t.Errorf("Expected 8 columns written, got %d", n)
	}
	if got := rowString(buf, 1); got != "│01234567│" {
		t.Errorf("Expected clipped content row, got %q", got)
	}
}

func TestNestedRegionOverRegion(t *testing.T) {
	buf := NewBuffer(core.Size{Width: 6, Height: 3})
	outer := NewRegion(buf, core.Area{X: 1, Y: 1, Width: 4, Height: 2})
	inner := NewRegion(outer, core.Area{X: 2, Width: 5, Height: 1})

	if inner.Size() != (core.Size{Width: 2, Height: 1}) {
		t.Errorf("Expected clip to parent size, got %v", inner.Size())
	}
	inner.Set(core.Position{}, style.Plain('z'))
	if c, _ := buf.Get(core.Position{X: 3, Y: 1}); c.Content.Rune != 'z' {
		t.Errorf("Expected 'z' at (3,1), got %q", c.Content.Rune)
	}
}
