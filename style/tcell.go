package style

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// FromTcell converts a tcell style into a Style
// Lets widget code that already styles through tcell feed the grid directly
func FromTcell(ts tcell.Style) Style {
	fg, bg, attrs := ts.Decompose()
	return Style{
		Fg:    FromTcellColor(fg),
		Bg:    FromTcellColor(bg),
		Attrs: fromTcellAttrs(attrs),
	}
}

// FromTcellColor converts a tcell color, mapping palette colors to indices and everything else to RGB
func FromTcellColor(c tcell.Color) Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return ColorDefault
	}
	if c&tcell.ColorIsRGB == 0 && c >= tcell.ColorValid && c < tcell.ColorValid+256 {
		return Palette(uint8(c - tcell.ColorValid))
	}
	r, g, b := c.RGB()
	if r < 0 {
		return ColorDefault
	}
	return RGB(uint8(r), uint8(g), uint8(b))
}

// ParseColor resolves a color name ("red", "orange"), "#rrggbb" or "default"
func ParseColor(name string) (Color, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" || name == "default" {
		return ColorDefault, nil
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return ColorDefault, errors.Errorf("unknown color %q", name)
	}
	return FromTcellColor(c), nil
}

func fromTcellAttrs(mask tcell.AttrMask) Attr {
	var a Attr
	if mask&tcell.AttrBold != 0 {
		a |= AttrBold
	}
	if mask&tcell.AttrDim != 0 {
		a |= AttrDim
	}
	if mask&tcell.AttrItalic != 0 {
		a |= AttrItalic
	}
	if mask&tcell.AttrUnderline != 0 {
		a |= AttrUnderline
	}
	if mask&tcell.AttrBlink != 0 {
		a |= AttrBlink
	}
	if mask&tcell.AttrReverse != 0 {
		a |= AttrReverse
	}
	if mask&tcell.AttrStrikeThrough != 0 {
		a |= AttrStrikeThrough
	}
	return a
}
