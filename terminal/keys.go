package terminal

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous so KeyCtrlA+n is Ctrl of the n-th letter
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// keyNames maps keys to canonical config names
var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

// nameToKey is the reverse lookup, including generated names and aliases
var nameToKey map[string]Key

func init() {
	for i := range 12 {
		keyNames[KeyF1+Key(i)] = "f" + strconv.Itoa(i+1)
	}
	for i := range 26 {
		keyNames[KeyCtrlA+Key(i)] = "ctrl_" + string(rune('a'+i))
	}

	nameToKey = make(map[string]Key, len(keyNames)+4)
	for k, name := range keyNames {
		nameToKey[name] = k
	}
	nameToKey["esc"] = KeyEscape
	nameToKey["return"] = KeyEnter
	nameToKey["pgup"] = KeyPageUp
	nameToKey["pgdn"] = KeyPageDown
}

// String returns the canonical name
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyRune {
		return "rune"
	}
	return "none"
}

// KeySpec identifies a key press for bindings such as the loop exit key
type KeySpec struct {
	Key  Key
	Rune rune // For KeyRune
	Mods Modifier
}

// Matches reports whether ev is a key event for this spec
func (s KeySpec) Matches(ev Event) bool {
	if ev.Type != EventKey || ev.Key != s.Key || ev.Modifiers != s.Mods {
		return false
	}
	return s.Key != KeyRune || ev.Rune == s.Rune
}

// String formats the spec in the form accepted by ParseKeySpec
func (s KeySpec) String() string {
	var b strings.Builder
	if s.Mods&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if s.Mods&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if s.Mods&ModShift != 0 {
		b.WriteString("shift+")
	}
	if s.Key == KeyRune {
		b.WriteRune(s.Rune)
	} else {
		b.WriteString(s.Key.String())
	}
	return b.String()
}

// ParseKeySpec parses "escape", "ctrl_c", "q", "alt+x" or "shift+up"
func ParseKeySpec(s string) (KeySpec, error) {
	var spec KeySpec
	rest := strings.TrimSpace(s)
	if rest == "" {
		return spec, errors.New("empty key name")
	}

	for {
		lower := strings.ToLower(rest)
		if strings.HasPrefix(lower, "alt+") && len(rest) > 4 {
			spec.Mods |= ModAlt
			rest = rest[4:]
			continue
		}
		if strings.HasPrefix(lower, "shift+") && len(rest) > 6 {
			spec.Mods |= ModShift
			rest = rest[6:]
			continue
		}
		if strings.HasPrefix(lower, "ctrl+") && len(rest) > 5 {
			rest = "ctrl_" + rest[5:]
		}
		break
	}

	if r := []rune(rest); len(r) == 1 {
		spec.Key = KeyRune
		spec.Rune = r[0]
		return spec, nil
	}
	if k, ok := nameToKey[strings.ToLower(rest)]; ok {
		spec.Key = k
		return spec, nil
	}
	return KeySpec{}, errors.Errorf("unknown key %q", s)
}

// csiFinalKeys maps CSI final bytes to keys
var csiFinalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'Z': KeyBacktab,
	'P': KeyF1,
	'Q': KeyF2,
	'S': KeyF4,
}

// csiTildeKeys maps "ESC [ n ~" codes to keys
var csiTildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// ss3Keys maps "ESC O x" final bytes to keys
var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// xtermModifier decodes the xterm modifier parameter (1 + bitmask)
func xtermModifier(p int) Modifier {
	if p < 2 {
		return ModNone
	}
	bits := p - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}
