package style

// Attr is a bitmask of text attributes
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikeThrough

	AttrNone Attr = 0
)

// Style is the visual attribute set of a cell
// The zero value is the terminal default
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// Default is the terminal default style
var Default = Style{}

// Foreground returns s with fg set
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns s with bg set
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// Bold returns s with bold toggled
func (s Style) Bold(on bool) Style { return s.with(AttrBold, on) }

// Dim returns s with dim toggled
func (s Style) Dim(on bool) Style { return s.with(AttrDim, on) }

// Italic returns s with italic toggled
func (s Style) Italic(on bool) Style { return s.with(AttrItalic, on) }

// Underline returns s with underline toggled
func (s Style) Underline(on bool) Style { return s.with(AttrUnderline, on) }

// Reverse returns s with reverse video toggled
func (s Style) Reverse(on bool) Style { return s.with(AttrReverse, on) }

func (s Style) with(a Attr, on bool) Style {
	if on {
		s.Attrs |= a
	} else {
		s.Attrs &^= a
	}
	return s
}

// IsDefault reports whether s renders without any SGR parameters
func (s Style) IsDefault() bool {
	return s == Default
}

// Stylized is a glyph with its style, the content of one grid cell
type Stylized struct {
	Rune  rune
	Style Style
}

// Blank is an unstyled space
var Blank = Stylized{Rune: ' '}

// New returns r in style s
func New(r rune, s Style) Stylized {
	return Stylized{Rune: r, Style: s}
}

// Plain returns r with the default style
func Plain(r rune) Stylized {
	return Stylized{Rune: r}
}

// Width returns the display width, 1 or 2
func (c Stylized) Width() int {
	return RuneWidth(c.Rune)
}

// IsBlank reports whether c is an unstyled space
func (c Stylized) IsBlank() bool {
	return c == Blank
}
