package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Notifier shows the one message an invocation produces.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Terminal writes info to Out and errors to Err.
type Terminal struct {
	Out io.Writer
	Err io.Writer
}

// NewTerminal returns a Terminal on stdout/stderr.
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stdout, Err: os.Stderr}
}

func (t *Terminal) Info(msg string) {
	fmt.Fprintln(t.Out, okStyle.Render(msg))
}

func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.Err, errStyle.Render(msg))
}
