package terminal

import (
	"bufio"

	"github.com/lixenwraith/cellframe/style"
)

// Pre-allocated ANSI sequence fragments
var (
	csi       = []byte("\x1b[")
	csiSGR0   = []byte("\x1b[0m")
	csiClear  = []byte("\x1b[2J")
	csiHome   = []byte("\x1b[H")
	csiEL     = []byte("\x1b[K")
	csiRIS    = []byte("\x1bc") // Reset to Initial State (emergency)
	csiDSRPos = []byte("\x1b[6n")

	// Cursor visibility
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: ?7l keeps the cursor at the right edge so writing the bottom-right cell does not scroll
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Mouse reporting: SGR encoding, press/release, button-held motion
	csiMouseSGROn     = []byte("\x1b[?1006h")
	csiMouseSGROff    = []byte("\x1b[?1006l")
	csiMouseClickOn   = []byte("\x1b[?1000h")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOn    = []byte("\x1b[?1002h")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOff = []byte("\x1b[?1003l")
)

// MoveTo writes a cursor positioning sequence (0-indexed input)
func MoveTo(w *bufio.Writer, x, y int) {
	w.Write(csi)
	style.WriteInt(w, y+1)
	w.WriteByte(';')
	style.WriteInt(w, x+1)
	w.WriteByte('H')
}

// ClearScreen erases the whole display without moving the cursor
func ClearScreen(w *bufio.Writer) {
	w.Write(csiClear)
}

// EraseToLineEnd erases from the cursor to the end of the line
func EraseToLineEnd(w *bufio.Writer) {
	w.Write(csiEL)
}

// ResetStyle writes SGR 0
func ResetStyle(w *bufio.Writer) {
	w.Write(csiSGR0)
}
