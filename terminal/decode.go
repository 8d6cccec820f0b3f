package terminal

import (
	"unicode/utf8"
)

// maxSequenceLen bounds how far a CSI or mouse sequence is scanned before it is discarded
const maxSequenceLen = 32

// decoder turns raw input bytes into events, holding incomplete sequences across reads
type decoder struct {
	buf []byte
}

// feed appends data and emits every complete event
func (d *decoder) feed(data []byte, emit func(Event)) {
	d.buf = append(d.buf, data...)
	consumed := decode(d.buf, emit)
	n := copy(d.buf, d.buf[consumed:])
	d.buf = d.buf[:n]
}

// idle is called when a read times out; a pending lone ESC is a real Escape press
func (d *decoder) idle(emit func(Event)) {
	if len(d.buf) == 1 && d.buf[0] == 0x1b {
		emit(KeyEvent(KeyEscape, ModNone))
		d.buf = d.buf[:0]
	}
}

// decode emits events for data and returns the bytes consumed, stopping at an incomplete sequence
func decode(data []byte, emit func(Event)) int {
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == 0x1b:
			if i+1 >= len(data) {
				return i
			}
			n, ev, ok := decodeEscape(data[i:])
			if n == 0 {
				return i
			}
			if ok {
				emit(ev)
			}
			i += n

		case b < 0x20:
			emit(controlEvent(b))
			i++

		case b == 0x7f:
			emit(KeyEvent(KeyBackspace, ModNone))
			i++

		case b < 0x80:
			emit(RuneEvent(rune(b), ModNone))
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError || size > 1 {
				emit(RuneEvent(r, ModNone))
			}
			i += size
		}
	}
	return i
}

// controlEvent maps C0 control bytes to keys
func controlEvent(b byte) Event {
	switch b {
	case 0x00:
		return KeyEvent(KeyCtrlSpace, ModNone)
	case 0x08:
		return KeyEvent(KeyBackspace, ModNone)
	case 0x09:
		return KeyEvent(KeyTab, ModNone)
	case 0x0a, 0x0d:
		return KeyEvent(KeyEnter, ModNone)
	case 0x1b:
		return KeyEvent(KeyEscape, ModNone)
	case 0x1c:
		return KeyEvent(KeyCtrlBackslash, ModNone)
	case 0x1d:
		return KeyEvent(KeyCtrlBracketRight, ModNone)
	case 0x1e:
		return KeyEvent(KeyCtrlCaret, ModNone)
	case 0x1f:
		return KeyEvent(KeyCtrlUnderscore, ModNone)
	}
	return KeyEvent(KeyCtrlA+Key(b-0x01), ModNone)
}

// decodeEscape decodes a sequence starting with ESC; n is 0 when more data is needed
// ok is false for consumed sequences that produce no event
func decodeEscape(data []byte) (n int, ev Event, ok bool) {
	switch c := data[1]; {
	case c == 0x1b:
		return 2, KeyEvent(KeyEscape, ModAlt), true
	case c == '[':
		return decodeCSI(data)
	case c == 'O':
		if len(data) < 3 {
			return 0, Event{}, false
		}
		if k, found := ss3Keys[data[2]]; found {
			return 3, KeyEvent(k, ModNone), true
		}
		return 3, Event{}, false
	case c < 0x20:
		ev = controlEvent(c)
		ev.Modifiers |= ModAlt
		return 2, ev, true
	case c < 0x7f:
		return 2, RuneEvent(rune(c), ModAlt), true
	}
	// ESC followed by non-ASCII: report Escape and let the rest decode on its own
	return 1, KeyEvent(KeyEscape, ModNone), true
}

// decodeCSI decodes "ESC [ params final"
func decodeCSI(data []byte) (int, Event, bool) {
	if len(data) < 3 {
		return 0, Event{}, false
	}
	if data[2] == '<' {
		return decodeMouse(data)
	}

	end := 2
	for ; end < len(data) && end < maxSequenceLen; end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x3f {
			// Malformed, drop what was scanned
			return end, Event{}, false
		}
	}
	if end >= maxSequenceLen {
		return end, Event{}, false
	}
	if end >= len(data) {
		return 0, Event{}, false
	}

	final := data[end]
	params := parseParams(data[2:end])
	n := end + 1

	param := func(i, def int) int {
		if i < len(params) && params[i] >= 0 {
			return params[i]
		}
		return def
	}
	mods := xtermModifier(param(1, 1))

	switch final {
	case '~':
		if k, found := csiTildeKeys[param(0, 0)]; found {
			return n, KeyEvent(k, mods), true
		}
	case 'R':
		// "1;mR" is F3 with modifiers; any other row is a late cursor position report
		if param(0, 0) == 1 {
			return n, KeyEvent(KeyF3, mods), true
		}
	default:
		if k, found := csiFinalKeys[final]; found {
			return n, KeyEvent(k, mods), true
		}
	}
	return n, Event{}, false
}

// decodeMouse decodes "ESC [ < btn ; x ; y M|m"
func decodeMouse(data []byte) (int, Event, bool) {
	end := 3
	for ; end < len(data) && end < maxSequenceLen; end++ {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
	}
	if end >= maxSequenceLen {
		return end, Event{}, false
	}
	if end >= len(data) {
		return 0, Event{}, false
	}

	params := parseParams(data[3:end])
	if len(params) != 3 || params[0] < 0 || params[1] < 1 || params[2] < 1 {
		return end + 1, Event{}, false
	}
	return end + 1, decodeSGRMouse(params[0], params[1], params[2], data[end] == 'm'), true
}

// parseParams splits ";"-separated decimal parameters, -1 marks an empty or invalid one
func parseParams(data []byte) []int {
	if len(data) == 0 {
		return nil
	}
	params := make([]int, 0, 4)
	val, valid, empty := 0, true, true
	for _, b := range data {
		switch {
		case b == ';':
			if empty || !valid {
				val = -1
			}
			params = append(params, val)
			val, valid, empty = 0, true, true
		case b >= '0' && b <= '9':
			if val < 100000 {
				val = val*10 + int(b-'0')
			}
			empty = false
		default:
			valid = false
		}
	}
	if empty || !valid {
		val = -1
	}
	return append(params, val)
}
