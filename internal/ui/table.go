package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows of data in aligned columns. Headers are bold when out
// is a terminal.
type Table struct {
	out    io.Writer
	buf    bytes.Buffer
	w      *tabwriter.Writer
	header func(...string) string
}

// NewTable creates a new table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	return newTable(out, lipgloss.NewRenderer(out).NewStyle().Bold(true).Render, headers...)
}

// newTable lays out plain text and styles the header line only after
// alignment, since tabwriter counts escape sequences as width.
func newTable(out io.Writer, header func(...string) string, headers ...string) *Table {
	t := &Table{out: out, header: header}
	t.w = tabwriter.NewWriter(&t.buf, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(t.w, strings.Join(headers, "\t"))
	return t
}

// Row appends a row of values. The number of values should match the number of headers.
// Empty strings are shown as "-".
func (t *Table) Row(values ...any) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
		if parts[i] == "" {
			parts[i] = "-"
		}
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush writes the aligned table to the output.
func (t *Table) Flush() error {
	if err := t.w.Flush(); err != nil {
		return err
	}
	head, rest, _ := strings.Cut(t.buf.String(), "\n")
	t.buf.Reset()
	_, err := io.WriteString(t.out, t.header(head)+"\n"+rest)
	return err
}
