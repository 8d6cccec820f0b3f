package style

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func penOutput(mode ColorMode, styles ...Style) string {
	var out bytes.Buffer
	w := bufio.NewWriter(&out)
	p := NewPen(mode)
	for _, s := range styles {
		p.Apply(w, s)
	}
	p.Reset(w)
	w.Flush()
	return out.String()
}

func TestPenDefaultStyleWritesNothing(t *testing.T) {
	if got := penOutput(ColorModeTrueColor, Default, Default); got != "" {
		t.Errorf("Expected no output, got %q", got)
	}
}

func TestPenCoalescesRepeatedStyle(t *testing.T) {
	red := Default.Foreground(Red)
	got := penOutput(ColorMode256, red, red, red)
	want := "\x1b[31m\x1b[0m"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPenAttributeChangeResets(t *testing.T) {
	s := Default.Foreground(Palette(12)).Background(Palette(200)).Bold(true).Underline(true)
	got := penOutput(ColorMode256, s)
	want := "\x1b[0;1;4;94;48;5;200m\x1b[0m"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPenColorOnlyChange(t *testing.T) {
	a := Default.Foreground(RGB(1, 2, 3))
	b := a.Background(Blue)
	got := penOutput(ColorModeTrueColor, a, b, b.Foreground(ColorDefault))
	want := "\x1b[38;2;1;2;3m" + "\x1b[44m" + "\x1b[39m" + "\x1b[0m"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPenDowngradesRGBIn256Mode(t *testing.T) {
	got := penOutput(ColorMode256, Default.Foreground(RGB(255, 0, 0)))
	want := "\x1b[38;5;196m\x1b[0m"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 16},
		{255, 255, 255, 231},
		{255, 0, 0, 196},
		{0, 0, 255, 21},
		{128, 128, 128, 244},
	}
	for _, tt := range tests {
		if got := RGBTo256(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("RGBTo256(%d,%d,%d): expected %d, got %d", tt.r, tt.g, tt.b, tt.want, got)
		}
	}
}

func TestColorEncoding(t *testing.T) {
	c := RGB(10, 20, 30)
	if !c.IsRGB() || c.IsPalette() || c.IsDefault() {
		t.Errorf("Expected RGB color classification")
	}
	r, g, b := c.Components()
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("Expected (10,20,30), got (%d,%d,%d)", r, g, b)
	}
	if p := Palette(0); !p.IsPalette() || p.IsDefault() {
		t.Errorf("Expected palette 0 to differ from default")
	}
}

func TestRuneWidth(t *testing.T) {
	if w := RuneWidth('a'); w != 1 {
		t.Errorf("Expected width 1 for 'a', got %d", w)
	}
	if w := RuneWidth('你'); w != 2 {
		t.Errorf("Expected width 2 for '你', got %d", w)
	}
	if w := RuneWidth('\u0301'); w != 1 {
		t.Errorf("Expected combining mark clamped to 1, got %d", w)
	}
	if w := Plain('好').Width(); w != 2 {
		t.Errorf("Expected Stylized width 2, got %d", w)
	}
	if w := StringWidth("a你b"); w != 4 {
		t.Errorf("Expected string width 4, got %d", w)
	}
}

func TestFromTcell(t *testing.T) {
	ts := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(1, 2, 3)).
		Background(tcell.PaletteColor(4)).
		Bold(true).
		Italic(true)
	s := FromTcell(ts)

	if s.Fg != RGB(1, 2, 3) {
		t.Errorf("Expected RGB fg, got %#x", uint32(s.Fg))
	}
	if s.Bg != Palette(4) {
		t.Errorf("Expected palette bg 4, got %#x", uint32(s.Bg))
	}
	if s.Attrs != AttrBold|AttrItalic {
		t.Errorf("Expected bold|italic, got %b", s.Attrs)
	}
	if FromTcell(tcell.StyleDefault) != Default {
		t.Error("Expected tcell default to map to Default")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8800")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c != RGB(0xff, 0x88, 0x00) {
		t.Errorf("Expected #ff8800, got %#x", uint32(c))
	}
	if c, err := ParseColor("default"); err != nil || !c.IsDefault() {
		t.Errorf("Expected default color, got %v %v", c, err)
	}
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Error("Expected error for unknown color")
	}
	if c, err := ParseColor("Red"); err != nil || c.IsDefault() {
		t.Errorf("Expected named color to resolve, got %v %v", c, err)
	}
}
