package grid

import (
	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/style"
)

// LineType selects a box drawing character set
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineHeavy                   // ┏━┓┃┗┛
)

var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

const (
	boxTL = iota
	boxH
	boxTR
	boxV
	boxBL
	boxBR
)

func charsFor(line LineType) [6]rune {
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	return boxChars[line]
}

// Box draws a border along the edges of w, nothing when w is smaller than 2x2
func Box(w CellWriter, line LineType, st style.Style) {
	size := w.Size()
	if size.Width < 2 || size.Height < 2 {
		return
	}
	chars := charsFor(line)
	right, bottom := size.Width-1, size.Height-1

	put := func(x, y int, r rune) {
		w.Overwrite(core.Position{X: x, Y: y}, style.New(r, st))
	}
	put(0, 0, chars[boxTL])
	put(right, 0, chars[boxTR])
	put(0, bottom, chars[boxBL])
	put(right, bottom, chars[boxBR])
	for x := 1; x < right; x++ {
		put(x, 0, chars[boxH])
		put(x, bottom, chars[boxH])
	}
	for y := 1; y < bottom; y++ {
		put(0, y, chars[boxV])
		put(right, y, chars[boxV])
	}
}

// HLine draws a horizontal rule across row y
func HLine(w CellWriter, y int, line LineType, st style.Style) {
	size := w.Size()
	if y < 0 || y >= size.Height {
		return
	}
	c := style.New(charsFor(line)[boxH], st)
	for x := range size.Width {
		w.Overwrite(core.Position{X: x, Y: y}, c)
	}
}

// Card draws a titled border on r and returns the region inside it
// The title is centered on the top edge and dropped when it does not fit
func Card(r *Region, title string, line LineType, st style.Style) *Region {
	Box(r, line, st)

	size := r.Size()
	if title != "" && size.Width > 4 {
		label := " " + title + " "
		if n := style.StringWidth(label); n <= size.Width-2 {
			Print(r, core.Position{X: (size.Width - n) / 2}, label, st.Bold(true))
		}
	}
	return r.Sub(core.Area{X: 1, Y: 1, Width: size.Width - 2, Height: size.Height - 2})
}
