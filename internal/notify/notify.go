// Package notify shows transient progress/success/failure messages and
// asks for confirmation before destructive actions.
package notify

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style is the state a toast is in.
type Style int

const (
	Animated Style = iota
	Success
	Failure
)

// Toast is a single message that starts animated and ends in success or
// failure. Each state change prints one line to the writer.
type Toast struct {
	w       io.Writer
	r       *lipgloss.Renderer
	Style   Style
	Title   string
	Message string
}

// Show prints title in the animated state and returns the toast.
func Show(w io.Writer, title string) *Toast {
	t := &Toast{w: w, r: lipgloss.NewRenderer(w), Style: Animated, Title: title}
	t.print()
	return t
}

// Succeed moves the toast to the success state.
func (t *Toast) Succeed(title string) {
	t.Style, t.Title, t.Message = Success, title, ""
	t.print()
}

// Fail moves the toast to the failure state, with err as its message.
func (t *Toast) Fail(title string, err error) {
	t.Style, t.Title, t.Message = Failure, title, ""
	if err != nil {
		t.Message = err.Error()
	}
	t.print()
}

func (t *Toast) print() {
	var mark lipgloss.Style
	var glyph string

	switch t.Style {
	case Success:
		mark, glyph = t.r.NewStyle().Foreground(lipgloss.Color("2")), "✓"
	case Failure:
		mark, glyph = t.r.NewStyle().Foreground(lipgloss.Color("1")), "✗"
	default:
		mark, glyph = t.r.NewStyle().Faint(true), "…"
	}

	line := mark.Render(glyph) + " " + t.Title
	if t.Message != "" {
		line += ": " + t.r.NewStyle().Faint(true).Render(t.Message)
	}
	fmt.Fprintln(t.w, line)
}

// Confirm prints title and message, then reads one answer line from in.
// Only "y" or "yes" (any case) confirm; EOF and anything else decline.
func Confirm(in io.Reader, out io.Writer, title, message, action string) bool {
	r := lipgloss.NewRenderer(out)

	fmt.Fprintln(out, r.NewStyle().Bold(true).Render(title))
	if message != "" {
		fmt.Fprintln(out, message)
	}
	fmt.Fprintf(out, "%s? [y/N] ", r.NewStyle().Foreground(lipgloss.Color("1")).Render(action))

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
