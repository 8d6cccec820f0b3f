//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollTimeoutMs bounds Read latency for stop checks and lone ESC detection
const pollTimeoutMs = 50

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

// NewBackend returns the stdin/stdout backend
func NewBackend() Backend {
	return &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *unixBackend) MakeRaw() error {
	if !term.IsTerminal(b.inFd) {
		return errors.New("stdin is not a terminal")
	}
	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return errors.Wrap(err, "make raw")
	}
	b.oldTerm = old
	return nil
}

func (b *unixBackend) Restore() error {
	if b.oldTerm == nil {
		return nil
	}
	err := term.Restore(b.inFd, b.oldTerm)
	b.oldTerm = nil
	return errors.Wrap(err, "restore terminal")
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *unixBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	default:
	}

	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "poll input")
		}
		if n == 0 {
			return nil, nil
		}
		break
	}

	buf := make([]byte, 256)
	rn, err := unix.Read(b.inFd, buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read input")
	}
	if rn == 0 {
		return nil, io.EOF
	}
	return buf[:rn], nil
}

func (b *unixBackend) SetResizeHandler(handler func(width, height int)) {
	if b.resizeStopCh != nil {
		return
	}
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(b.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-b.resizeStopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				handler(w, h)
			}
		}
	}()
}

func (b *unixBackend) Close() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

// resetTerminalMode attempts to restore the controlling terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	fd := int(tty.Fd())
	if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
	}
}
