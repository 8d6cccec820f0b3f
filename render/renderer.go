package render

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/grid"
	"github.com/lixenwraith/cellframe/style"
	"github.com/lixenwraith/cellframe/terminal"
)

// outputBufferSize holds a full frame of a large terminal before flushing
const outputBufferSize = 128 * 1024

// Mode selects the diff granularity written to the terminal
type Mode uint8

const (
	ModeCell Mode = iota // Sparse per-cell writes, for full-screen apps
	ModeLine             // One rewrite per changed row, for inline output
)

// String returns the config name of the mode
func (m Mode) String() string {
	if m == ModeLine {
		return "line"
	}
	return "cell"
}

// Options configures a Renderer
type Options struct {
	Mode   Mode
	Origin core.Position // Screen position of buffer cell (0,0)

	// Inline draws into a bounded region below Origin instead of the whole screen
	Inline     bool
	UsedHeight int // Initial logical height in inline mode

	ClearOnRedraw bool // Erase the screen before a full redraw, full-screen only
	AppendNewline bool // Leave the cursor on a fresh line after Finish

	ColorMode style.ColorMode
}

// Renderer adapts a Target to a Buffer and writes frame diffs to an output sink
// Owned by a single goroutine
type Renderer struct {
	target Target
	buf    *grid.Buffer
	out    *bufio.Writer
	pen    *style.Pen
	opts   Options

	screen     core.Size // Terminal size, bounds inline scrolling
	usedHeight int
	pending    bool
	frames     uint64
}

// New creates a renderer with a buffer of the given size
func New(target Target, out io.Writer, size core.Size, opts Options) *Renderer {
	r := &Renderer{
		target:  target,
		buf:     grid.NewBuffer(size),
		out:     bufio.NewWriterSize(out, outputBufferSize),
		pen:     style.NewPen(opts.ColorMode),
		opts:    opts,
		pending: true,
	}
	r.usedHeight = r.buf.Height()
	if opts.Inline {
		r.usedHeight = min(max(opts.UsedHeight, 0), r.buf.Height())
	}
	return r
}

// Resize forwards to the buffer; a changed size forces a full redraw
func (r *Renderer) Resize(size core.Size) {
	if size == r.buf.Size() {
		return
	}
	r.buf.Resize(size)
	if r.opts.Inline {
		r.usedHeight = min(r.usedHeight, r.buf.Height())
	} else {
		r.usedHeight = r.buf.Height()
	}
	r.pending = true
}

// SetScreenSize records the terminal size used to keep the inline region on screen
func (r *Renderer) SetScreenSize(size core.Size) {
	r.screen = size
}

// SetUsedHeight changes the logical inline height without reallocating the buffer
// Clamped to the buffer height; any change marks a redraw pending so released rows are erased
func (r *Renderer) SetUsedHeight(h int) {
	h = min(max(h, 0), r.buf.Height())
	if h != r.usedHeight {
		r.pending = true
	}
	r.usedHeight = h
}

// UsedHeight returns the logical height being drawn
func (r *Renderer) UsedHeight() int {
	return r.usedHeight
}

// OnEvents forwards an event batch to the target
func (r *Renderer) OnEvents(events []terminal.Event) error {
	return r.target.OnEvents(events)
}

// Update asks the target to apply queued changes, a requested redraw stays pending until Render
func (r *Renderer) Update() (bool, error) {
	redraw, err := r.target.Update()
	if redraw {
		r.pending = true
	}
	return redraw, err
}

// Size returns the buffer size
func (r *Renderer) Size() core.Size {
	return r.buf.Size()
}

// Target returns the wrapped target
func (r *Renderer) Target() Target {
	return r.target
}

// Buffer returns the frame buffer
func (r *Renderer) Buffer() *grid.Buffer {
	return r.buf
}

// Origin returns the screen position of the buffer origin
func (r *Renderer) Origin() core.Position {
	return r.opts.Origin
}

// HasPendingChanges reports whether a render is warranted without new input
func (r *Renderer) HasPendingChanges() bool {
	return r.pending
}

// Frames returns the number of frames rendered
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Render draws the target into the buffer, writes the diff, flushes once and starts the next frame
// A target draw error is returned after the partial frame is still written so the buffer keeps matching the screen
func (r *Renderer) Render() error {
	drawErr := r.target.Render(r.cellWriter())

	if r.opts.Inline {
		r.keepInlineOnScreen()
	}
	if r.opts.Mode == ModeLine {
		r.writeLines()
	} else {
		r.writeCells()
	}
	r.pen.Reset(r.out)
	flushErr := r.out.Flush()

	r.buf.Clear()
	r.pending = false
	r.frames++

	if drawErr != nil {
		return errors.Wrap(drawErr, "target render")
	}
	return errors.Wrap(flushErr, "flush frame")
}

// Finish leaves the terminal ready for whatever runs after the loop
// Inline output keeps the cursor below the used region so the shell prompt does not overwrite it
func (r *Renderer) Finish() error {
	r.pen.Reset(r.out)

	height := r.buf.Height()
	if r.opts.Inline {
		height = r.usedHeight
	}
	switch {
	case r.opts.AppendNewline:
		last := max(r.opts.Origin.Y+height-1, r.opts.Origin.Y)
		terminal.MoveTo(r.out, 0, last)
		r.out.WriteString("\r\n")
	case r.opts.Inline:
		terminal.MoveTo(r.out, 0, r.opts.Origin.Y+height)
	}
	return errors.Wrap(r.out.Flush(), "flush finish")
}

func (r *Renderer) cellWriter() grid.CellWriter {
	if !r.opts.Inline {
		return r.buf
	}
	return grid.NewRegion(r.buf, core.Area{Width: r.buf.Width(), Height: r.usedHeight})
}

// keepInlineOnScreen scrolls the terminal when the region would extend past the bottom row
func (r *Renderer) keepInlineOnScreen() {
	if r.screen.Height <= 0 {
		return
	}
	overflow := min(r.opts.Origin.Y+r.usedHeight-r.screen.Height, r.opts.Origin.Y)
	if overflow <= 0 {
		return
	}
	terminal.MoveTo(r.out, 0, r.screen.Height-1)
	for range overflow {
		r.out.WriteByte('\n')
	}
	r.opts.Origin.Y -= overflow
	// Everything on screen moved up, positions in the previous frame are stale
	r.buf.ResetDiff()
}

// onScreen reports whether buffer row y maps to a visible terminal row
func (r *Renderer) onScreen(y int) bool {
	if r.screen.Height <= 0 {
		return true
	}
	return r.opts.Origin.Y+y < r.screen.Height
}

// fullRedrawRows bounds a first-frame redraw to the rows the target owns
func (r *Renderer) fullRedrawRows() int {
	if r.opts.Inline {
		return r.usedHeight
	}
	return r.buf.Height()
}

func (r *Renderer) writeCells() {
	w := r.out
	seq, ok := r.buf.Diff()
	limit := r.buf.Height()
	if !ok {
		if r.opts.ClearOnRedraw && !r.opts.Inline {
			terminal.ClearScreen(w)
		}
		seq = r.buf.AllCells()
		limit = r.fullRedrawRows()
	}

	var cursor core.Position
	cursorValid := false
	for ch := range seq {
		if ch.Pos.Y >= limit || !r.onScreen(ch.Pos.Y) {
			continue
		}
		if !cursorValid || ch.Pos != cursor {
			at := ch.Pos.Add(r.opts.Origin)
			terminal.MoveTo(w, at.X, at.Y)
		}
		r.writeCell(ch.Cell)
		cursor = core.Position{X: ch.Pos.X + ch.Cell.Width(), Y: ch.Pos.Y}
		cursorValid = true
	}
}

func (r *Renderer) writeLines() {
	w := r.out
	limit := r.buf.Height()
	if !r.buf.HasPrevious() {
		if r.opts.ClearOnRedraw && !r.opts.Inline {
			terminal.ClearScreen(w)
		}
		limit = r.fullRedrawRows()
	}

	for line := range r.buf.DiffLines() {
		if !line.Changed || line.Row >= limit || !r.onScreen(line.Row) {
			continue
		}
		terminal.MoveTo(w, r.opts.Origin.X, r.opts.Origin.Y+line.Row)

		last := lastVisible(r.buf.Row(line.Row))
		written := 0
		for ch := range line.Cells() {
			if ch.Pos.X > last {
				break
			}
			r.writeCell(ch.Cell)
			written += ch.Cell.Width()
		}
		// Trailing blanks and leftovers from a wider previous row
		if written < line.CurrentLen || line.PreviousLen > written {
			r.pen.Reset(w)
			terminal.EraseToLineEnd(w)
		}
	}
}

func (r *Renderer) writeCell(c grid.Cell) {
	r.pen.Apply(r.out, c.Content.Style)
	ch := c.Content.Rune
	if ch < 0x20 || ch == 0x7f {
		ch = ' '
	}
	if ch < 0x80 {
		r.out.WriteByte(byte(ch))
	} else {
		r.out.WriteRune(ch)
	}
}

// lastVisible returns the column of the last anchor that is not a plain blank, -1 for an empty row
func lastVisible(row []grid.Cell) int {
	for x := len(row) - 1; x >= 0; x-- {
		if c := row[x]; !c.Occupied && !c.IsBlank() {
			return x
		}
	}
	return -1
}
