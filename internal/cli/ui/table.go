// File: table.go
// Role: Terminal rendering for the gemflux CLI: aligned tables, key/value
//       blocks, section headers, and status lines.

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Alignment selects how a column pads its cells.
type Alignment int

const (
	// AlignLeft pads on the right; the default for text columns.
	AlignLeft Alignment = iota

	// AlignRight pads on the left; flux and bound columns read best this way.
	AlignRight
)

// Table renders rows under a bold header with per-column alignment.
// Coloring honors the package-global color.NoColor flag, which the root
// command sets from --no-color.
type Table struct {
	w       io.Writer
	headers []string
	aligns  []Alignment
	rows    [][]string
}

// NewTable creates a table with the given column headers. Every column
// starts left-aligned.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{
		w:       w,
		headers: headers,
		aligns:  make([]Alignment, len(headers)),
	}
}

// Align sets the alignment of column i and returns the table for chaining.
// Out-of-range indexes are ignored.
func (t *Table) Align(i int, a Alignment) *Table {
	if i >= 0 && i < len(t.aligns) {
		t.aligns[i] = a
	}

	return t
}

// AddRow appends one row. Short rows render with empty trailing cells;
// extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len reports the number of data rows added so far.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the table: bold cyan header, a gray rule, then the rows,
// with columns separated by two spaces.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	// 1) Column widths over header and rows.
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// 2) Header and rule.
	head := color.New(color.Bold, color.FgCyan)
	rule := color.New(color.FgHiBlack)
	for i, h := range t.headers {
		head.Fprint(t.w, pad(h, widths[i], t.aligns[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.w, "  ")
		}
	}
	fmt.Fprintln(t.w)
	for i, w := range widths {
		rule.Fprint(t.w, strings.Repeat("─", w))
		if i < len(widths)-1 {
			rule.Fprint(t.w, "  ")
		}
	}
	fmt.Fprintln(t.w)

	// 3) Rows.
	for _, row := range t.rows {
		for i := range t.headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprint(t.w, pad(cell, widths[i], t.aligns[i]))
			if i < len(t.headers)-1 {
				fmt.Fprint(t.w, "  ")
			}
		}
		fmt.Fprintln(t.w)
	}
}

// pad widens s to the target width on the side the alignment dictates.
func pad(s string, width int, a Alignment) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if a == AlignRight {
		return fill + s
	}

	return s + fill
}

// KeyValueTable renders aligned "key: value" lines with cyan keys.
type KeyValueTable struct {
	w    io.Writer
	rows []kv
}

type kv struct{ key, value string }

// NewKeyValueTable creates an empty key/value block.
func NewKeyValueTable(w io.Writer) *KeyValueTable {
	return &KeyValueTable{w: w}
}

// AddRow appends one key/value pair.
func (t *KeyValueTable) AddRow(key, value string) {
	t.rows = append(t.rows, kv{key: key, value: value})
}

// AddRowf appends a pair with a formatted value.
func (t *KeyValueTable) AddRowf(key, format string, args ...any) {
	t.AddRow(key, fmt.Sprintf(format, args...))
}

// Render writes the pairs with colons aligned on the widest key.
func (t *KeyValueTable) Render() {
	if len(t.rows) == 0 {
		return
	}

	width := 0
	for _, row := range t.rows {
		if len(row.key) > width {
			width = len(row.key)
		}
	}

	cyan := color.New(color.FgCyan)
	for _, row := range t.rows {
		cyan.Fprint(t.w, pad(row.key+":", width+1, AlignLeft))
		fmt.Fprintf(t.w, " %s\n", row.value)
	}
}

// Header writes a bold title underlined by a rule of the same width.
func Header(w io.Writer, title string) {
	bold := color.New(color.Bold, color.FgCyan)
	bold.Fprintln(w, title)
	Divider(w, len(title))
}

// Divider writes a gray horizontal rule; width 0 means 80 columns.
func Divider(w io.Writer, width int) {
	if width == 0 {
		width = 80
	}
	gray := color.New(color.FgHiBlack)
	gray.Fprintln(w, strings.Repeat("─", width))
}

// OK writes a green check mark followed by the formatted message.
func OK(w io.Writer, format string, args ...any) {
	green := color.New(color.FgGreen)
	green.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}

// Warn writes a yellow exclamation mark followed by the formatted message.
func Warn(w io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow)
	yellow.Fprint(w, "! ")
	fmt.Fprintf(w, format+"\n", args...)
}
