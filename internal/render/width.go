package render

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// DefaultWidth is used when the output is not a terminal or the size query
// fails.
const DefaultWidth = 80

// IsTerminal reports whether f is attached to a terminal. Live rendering is
// skipped entirely for piped output.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the current column count of the terminal behind f.
// Sampled per render call so a resize takes effect on the next update.
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return DefaultWidth
	}
	return int(ws.Col)
}
