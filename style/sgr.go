package style

import (
	"bufio"
)

var (
	csi  = []byte("\x1b[")
	sgr0 = []byte("\x1b[0m")
)

// attrCodes maps attribute bits to SGR parameters, in emission order
var attrCodes = [...]struct {
	attr Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
	{AttrStrikeThrough, '9'},
}

// Pen emits SGR sequences, coalescing against the last style written
// A new Pen assumes the terminal is in the default style
type Pen struct {
	mode ColorMode
	last Style
}

// NewPen creates a pen for the given color mode
func NewPen(mode ColorMode) *Pen {
	return &Pen{mode: mode}
}

// Apply switches the terminal to s, writing nothing when already there
func (p *Pen) Apply(w *bufio.Writer, s Style) {
	if s == p.last {
		return
	}

	if s.Attrs != p.last.Attrs {
		// Attributes can only be cleared by a full reset
		w.Write(csi)
		w.WriteByte('0')
		for _, ac := range attrCodes {
			if s.Attrs&ac.attr != 0 {
				w.WriteByte(';')
				w.WriteByte(ac.code)
			}
		}
		if !s.Fg.IsDefault() {
			w.WriteByte(';')
			p.writeColor(w, s.Fg, false)
		}
		if !s.Bg.IsDefault() {
			w.WriteByte(';')
			p.writeColor(w, s.Bg, true)
		}
		w.WriteByte('m')
		p.last = s
		return
	}

	w.Write(csi)
	fgChanged := s.Fg != p.last.Fg
	if fgChanged {
		p.writeColor(w, s.Fg, false)
	}
	if s.Bg != p.last.Bg {
		if fgChanged {
			w.WriteByte(';')
		}
		p.writeColor(w, s.Bg, true)
	}
	w.WriteByte('m')
	p.last = s
}

// Reset returns the terminal to the default style if it is not already there
func (p *Pen) Reset(w *bufio.Writer) {
	if p.last.IsDefault() {
		return
	}
	w.Write(sgr0)
	p.last = Default
}

// writeColor writes color parameters without CSI prefix or 'm' suffix
func (p *Pen) writeColor(w *bufio.Writer, c Color, bg bool) {
	base := 30
	if bg {
		base = 40
	}

	switch {
	case c.IsDefault():
		WriteInt(w, base+9)
	case c.IsPalette() && c.Index() < 8:
		WriteInt(w, base+int(c.Index()))
	case c.IsPalette() && c.Index() < 16:
		WriteInt(w, base+60+int(c.Index())-8)
	case c.IsRGB() && p.mode == ColorModeTrueColor:
		r, g, b := c.Components()
		WriteInt(w, base+8)
		w.WriteString(";2;")
		WriteInt(w, int(r))
		w.WriteByte(';')
		WriteInt(w, int(g))
		w.WriteByte(';')
		WriteInt(w, int(b))
	default:
		WriteInt(w, base+8)
		w.WriteString(";5;")
		WriteInt(w, int(c.Index()))
	}
}

// WriteInt writes a non-negative integer without allocation
func WriteInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}
