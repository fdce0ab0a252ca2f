package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "FIELD", "VALUE")
	tbl.Row("depth", 2)
	tbl.Row("dirty", false)
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header + 2 rows), got %d", len(lines))
	}
	if lines[0] != "FIELD  VALUE" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "depth  2" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "dirty  false" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestTable_emptyValue(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "FIELD", "VALUE")
	tbl.Row("remote", "")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "remote  -") {
		t.Errorf("empty value not shown as '-': %q", buf.String())
	}
}

func TestTable_emptyTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected 1 line (header only), got %d", len(lines))
	}
}

func TestTable_styledHeaderAlignment(t *testing.T) {
	bold := func(s ...string) string { return "\x1b[1m" + strings.Join(s, " ") + "\x1b[0m" }

	var buf bytes.Buffer
	tbl := newTable(&buf, bold, "FIELD", "VALUE")
	tbl.Row("entries", 3)
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "\x1b[1mFIELD    VALUE\x1b[0m" {
		t.Errorf("header = %q", lines[0])
	}
	plain := strings.TrimSuffix(strings.TrimPrefix(lines[0], "\x1b[1m"), "\x1b[0m")
	if strings.Index(plain, "VALUE") != strings.Index(lines[1], "3") {
		t.Errorf("header %q not aligned with row %q", plain, lines[1])
	}
}
