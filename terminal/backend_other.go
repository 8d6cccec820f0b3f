//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import (
	"io"

	"github.com/pkg/errors"
)

var errUnsupported = errors.New("terminal backend not supported on this platform")

type unsupportedBackend struct{}

// NewBackend returns a backend that fails every capability call
func NewBackend() Backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) MakeRaw() error { return errUnsupported }
func (unsupportedBackend) Restore() error { return nil }
func (unsupportedBackend) Size() (int, int) { return 80, 24 }
func (unsupportedBackend) Write(p []byte) error { return errUnsupported }
func (unsupportedBackend) Read(<-chan struct{}) ([]byte, error) { return nil, io.EOF }
func (unsupportedBackend) SetResizeHandler(func(width, height int)) {}
func (unsupportedBackend) Close() {}

func resetTerminalMode() {}
