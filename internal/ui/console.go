package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console prints the tool's leveled status messages. Info and done messages
// go to out; warnings and failures go to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer

	info  lipgloss.Style
	warn  lipgloss.Style
	done  lipgloss.Style
	fail  lipgloss.Style
	entry lipgloss.Style
}

// NewConsole creates a console. Colors are only emitted when the writer is a
// terminal that supports them.
func NewConsole(out, errOut io.Writer) *Console {
	ro := lipgloss.NewRenderer(out)
	re := lipgloss.NewRenderer(errOut)
	return &Console{
		out:    out,
		errOut: errOut,
		info:   ro.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		warn:   re.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		done:   ro.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail:   re.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		entry:  ro.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Info prints an informational message.
func (c *Console) Info(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, "%s %s\n", c.info.Render("[INFO]"), fmt.Sprintf(format, args...))
}

// Warn prints a warning.
func (c *Console) Warn(format string, args ...any) {
	_, _ = fmt.Fprintf(c.errOut, "%s %s\n", c.warn.Render("[WARN]"), fmt.Sprintf(format, args...))
}

// Done prints a success message.
func (c *Console) Done(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, "%s %s\n", c.done.Render("[DONE]"), fmt.Sprintf(format, args...))
}

// Fatal prints err as a failure. The caller decides how to terminate.
func (c *Console) Fatal(err error) {
	_, _ = fmt.Fprintf(c.errOut, "%s %v\n", c.fail.Render("[FAIL]"), err)
}

// Entry renders an index entry name.
func (c *Console) Entry(name string) string {
	return c.entry.Render(name)
}

// Println writes a plain line to out.
func (c *Console) Println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}
