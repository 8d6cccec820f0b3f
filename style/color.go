package style

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// Color is a terminal color: the default color, a palette index, or a 24-bit RGB value
// The zero value is the terminal default
type Color uint32

const (
	ColorDefault Color = 0

	colorPalette Color = 1 << 24
	colorRGB     Color = 2 << 24
	colorTagMask Color = 0xff << 24
)

// Basic ANSI palette
var (
	Black   = Palette(0)
	Red     = Palette(1)
	Green   = Palette(2)
	Yellow  = Palette(3)
	Blue    = Palette(4)
	Magenta = Palette(5)
	Cyan    = Palette(6)
	White   = Palette(7)
)

// Palette returns the xterm palette color at index i
func Palette(i uint8) Color {
	return colorPalette | Color(i)
}

// RGB returns a 24-bit color
func RGB(r, g, b uint8) Color {
	return colorRGB | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsDefault reports whether c is the terminal default
func (c Color) IsDefault() bool { return c&colorTagMask == 0 }

// IsPalette reports whether c is a palette index
func (c Color) IsPalette() bool { return c&colorTagMask == colorPalette }

// IsRGB reports whether c is a 24-bit value
func (c Color) IsRGB() bool { return c&colorTagMask == colorRGB }

// Index returns the palette index, or the nearest one for RGB colors
func (c Color) Index() uint8 {
	if c.IsRGB() {
		r, g, b := c.Components()
		return RGBTo256(r, g, b)
	}
	return uint8(c)
}

// Components returns the RGB channels, zero for non-RGB colors
func (c Color) Components() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Color cube levels for palette indices 16-231
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

func cubeIndex(v int) int {
	best, bestDist := 0, 256
	for i, cv := range cubeValues {
		if d := abs(v - cv); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 returns the nearest xterm-256 palette index
// Near-gray colors are matched against the grayscale ramp 232-255 as well as the cube
func RGBTo256(r, g, b uint8) uint8 {
	ri, gi, bi := int(r), int(g), int(b)
	cr, cg, cb := cubeIndex(ri), cubeIndex(gi), cubeIndex(bi)
	cube := uint8(16 + 36*cr + 6*cg + cb)

	gray := (ri + gi + bi) / 3
	if max(abs(ri-gray), abs(gi-gray), abs(bi-gray)) >= 10 {
		return cube
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}
	grayIdx := min(232+(gray-8)/10, 255)
	level := 8 + (grayIdx-232)*10
	grayDist := abs(ri-level) + abs(gi-level) + abs(bi-level)
	cubeDist := abs(ri-cubeValues[cr]) + abs(gi-cubeValues[cg]) + abs(bi-cubeValues[cb])
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cube
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, env := range []string{"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE"} {
		if os.Getenv(env) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}
	return ColorMode256
}
