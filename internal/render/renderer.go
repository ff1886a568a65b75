// Package render draws the live transcript into a terminal viewport.
//
// The renderer keeps the last written view and computes the minimal
// clear-and-rewrite sequence for each update. Interim text arrives many
// times per second, so the two correctness-critical properties are: no
// write at all when the view is unchanged, and no stale characters left
// behind when the new view is shorter than the old one.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"live-caption/internal/textnorm"
)

// Mode selects how the candidate text is presented.
type Mode int

const (
	// ModeMultiLineWrap wraps the whole transcript into width-bounded lines.
	ModeMultiLineWrap Mode = iota
	// ModeSingleLineTail shows one line with the most recent words visible.
	ModeSingleLineTail
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSingleLineTail:
		return "tail"
	default:
		return "wrap"
	}
}

// ParseMode maps a configuration value to a Mode, defaulting to wrap.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "tail") {
		return ModeSingleLineTail
	}
	return ModeMultiLineWrap
}

const ellipsis = "…"

// Renderer owns the render snapshot: the exact text last written to the
// terminal. It is driven from the single result-processing lane and is not
// safe for concurrent use.
type Renderer struct {
	w    io.Writer
	mode Mode
	norm textnorm.Normalizer

	// snapshot of the previous render
	lines []string // wrap mode
	line  string   // tail mode
}

// New creates a Renderer writing terminal updates to w.
func New(w io.Writer, mode Mode, norm textnorm.Normalizer) *Renderer {
	return &Renderer{w: w, mode: mode, norm: norm}
}

// Render presents committed plus interim text within width columns.
// Identical consecutive calls write nothing. It reports whether the terminal
// was actually written to.
func (r *Renderer) Render(committed, interim string, width int) bool {
	candidate := committed
	if interim != "" {
		candidate = committed + " " + interim
	}
	candidate = r.norm.Clean(candidate)

	if width < 3 {
		width = 3
	}

	switch r.mode {
	case ModeSingleLineTail:
		return r.renderTail(candidate, width)
	default:
		return r.renderWrap(candidate, width)
	}
}

// renderWrap rewrites the wrapped block in place: cursor back to the render
// origin, erase downward, write the new lines.
func (r *Renderer) renderWrap(candidate string, width int) bool {
	lines := wrapWords(candidate, width)
	if equalLines(lines, r.lines) {
		return false
	}

	var b strings.Builder
	b.WriteString("\r")
	if n := len(r.lines); n > 1 {
		fmt.Fprintf(&b, "\x1b[%dA", n-1)
	}
	b.WriteString("\x1b[J")
	b.WriteString(strings.Join(lines, "\n"))

	fmt.Fprint(r.w, b.String())
	r.lines = lines
	return true
}

// renderTail rewrites the single live line. The view is capped at width-2
// characters; longer text keeps its tail behind an ellipsis. Shrinking views
// are blanked with spaces in addition to the erase-line control, so no stale
// characters survive on terminals without that capability; the cursor is
// then stepped back to the end of the text.
func (r *Renderer) renderTail(candidate string, width int) bool {
	view := tailView(candidate, width-2)
	if view == r.line {
		return false
	}

	var b strings.Builder
	b.WriteString("\r\x1b[K")
	b.WriteString(view)
	if pad := utf8.RuneCountInString(r.line) - utf8.RuneCountInString(view); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
		fmt.Fprintf(&b, "\x1b[%dD", pad)
	}

	fmt.Fprint(r.w, b.String())
	r.line = view
	return true
}

// Flush terminates the live region so subsequent writes (the final
// transcript print) start on a fresh line.
func (r *Renderer) Flush() {
	switch r.mode {
	case ModeSingleLineTail:
		if r.line != "" {
			fmt.Fprint(r.w, "\n")
			r.line = ""
		}
	default:
		if len(r.lines) > 0 {
			fmt.Fprint(r.w, "\n")
			r.lines = nil
		}
	}
}

// wrapWords greedily packs whitespace-separated words into lines of at most
// width columns. A single word wider than the viewport gets its own line,
// unsplit.
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= width {
			cur += " " + w
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	return append(lines, cur)
}

// tailView collapses text to a single line of at most maxChars characters,
// keeping the trailing maxChars-1 characters behind an ellipsis when the
// text is longer.
func tailView(text string, maxChars int) string {
	if maxChars < 1 {
		maxChars = 1
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return ellipsis + string(runes[len(runes)-maxChars+1:])
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
