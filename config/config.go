// Package config holds the event loop and terminal settings with TOML file loading
package config

import (
	"bytes"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellframe/terminal"
)

// Diff modes
const (
	DiffCell = "cell"
	DiffLine = "line"
)

// Defaults
const (
	DefaultExitKey           = "escape"
	DefaultMaxEventsPerFrame = 10
	DefaultInlineMaxHeight   = 50
	DefaultFrameLimit        = 60
)

// Config controls terminal capabilities, frame pacing and inline behavior
type Config struct {
	// Terminal capabilities acquired by the guard
	AltScreen    bool `toml:"alt_screen"`
	RawMode      bool `toml:"raw_mode"`
	MouseCapture bool `toml:"mouse_capture"`
	HideCursor   bool `toml:"hide_cursor"`

	// Inline mode draws below the cursor instead of on the alternate screen
	InlineMode        bool `toml:"inline"`
	InlineMaxHeight   int  `toml:"inline_max_height"`
	InitialUsedHeight int  `toml:"initial_used_height"`

	FrameLimit        int    `toml:"frame_limit"` // Frames per second, 0 is unlimited
	MaxEventsPerFrame int    `toml:"max_events_per_frame"`
	ExitKeyName       string `toml:"exit_key"`

	Clear         bool   `toml:"clear"`
	AppendNewline bool   `toml:"append_newline"`
	DiffMode      string `toml:"diff_mode"`
}

// Default returns the full-screen configuration
func Default() Config {
	return Config{
		AltScreen:         true,
		RawMode:           true,
		MouseCapture:      true,
		HideCursor:        true,
		InlineMaxHeight:   DefaultInlineMaxHeight,
		FrameLimit:        DefaultFrameLimit,
		MaxEventsPerFrame: DefaultMaxEventsPerFrame,
		ExitKeyName:       DefaultExitKey,
		Clear:             true,
		DiffMode:          DiffCell,
	}
}

// EnableAll turns on every terminal capability
func (c Config) EnableAll() Config {
	c.AltScreen = true
	c.RawMode = true
	c.MouseCapture = true
	c.HideCursor = true
	return c
}

// Inline switches to drawing h rows below the cursor on the main screen
func (c Config) Inline(h int) Config {
	c.InlineMode = true
	c.AltScreen = false
	c.Clear = false
	c.AppendNewline = true
	c.DiffMode = DiffLine
	c.InitialUsedHeight = h
	return c
}

// Capabilities returns the guard gates
func (c Config) Capabilities() terminal.Capabilities {
	return terminal.Capabilities{
		AltScreen:    c.AltScreen,
		RawMode:      c.RawMode,
		MouseCapture: c.MouseCapture,
		HideCursor:   c.HideCursor,
	}
}

// ExitKey parses the configured exit key name
func (c Config) ExitKey() (terminal.KeySpec, error) {
	return terminal.ParseKeySpec(c.ExitKeyName)
}

// LineMode reports whether rows are rewritten whole instead of per cell
func (c Config) LineMode() bool {
	return c.DiffMode == DiffLine
}

// Validate rejects values the loop cannot run with
func (c Config) Validate() error {
	if c.FrameLimit < 0 {
		return errors.Errorf("frame_limit must be >= 0, got %d", c.FrameLimit)
	}
	if c.MaxEventsPerFrame < 1 {
		return errors.Errorf("max_events_per_frame must be >= 1, got %d", c.MaxEventsPerFrame)
	}
	if c.InlineMaxHeight < 1 {
		return errors.Errorf("inline_max_height must be >= 1, got %d", c.InlineMaxHeight)
	}
	if c.InitialUsedHeight < 0 {
		return errors.Errorf("initial_used_height must be >= 0, got %d", c.InitialUsedHeight)
	}
	if c.DiffMode != DiffCell && c.DiffMode != DiffLine {
		return errors.Errorf("diff_mode must be %q or %q, got %q", DiffCell, DiffLine, c.DiffMode)
	}
	if _, err := c.ExitKey(); err != nil {
		return errors.Wrap(err, "exit_key")
	}
	return nil
}

// Load reads a TOML file over the defaults and validates the result
func Load(path string) (Config, error) {
	return LoadOver(Default(), path)
}

// LoadOver reads a TOML file over base; keys absent from the file keep base values
func LoadOver(base Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := ParseOver(base, data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	return ParseOver(Default(), data)
}

// ParseOver decodes TOML over base and validates the result
// Unknown keys are rejected
func ParseOver(base Config, data []byte) (Config, error) {
	cfg := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	return data, errors.Wrap(err, "encode config")
}
