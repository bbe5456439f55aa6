package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Printer writes command results either as text or as indented JSON, following --output.
type Printer struct {
	out    io.Writer
	format string
}

func NewPrinter(out io.Writer, format string) Printer {
	return Printer{out: out, format: format}
}

func (p Printer) IsJSON() bool { return p.format == "json" }

// Textf prints formatted text (always text path).
func (p Printer) Textf(format string, a ...any) { fmt.Fprintf(p.out, format, a...) }

// JSON pretty-prints a JSON value.
func (p Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Print emits v as JSON, or calls text when printing text.
func (p Printer) Print(v any, text func()) error {
	if p.IsJSON() {
		return p.JSON(v)
	}
	text()
	return nil
}

// Table renders a monospaced table. Column widths follow the widest cell.
func (p Printer) Table(headers []string, rows [][]string) {
	w := make([]int, len(headers))
	for i := range headers {
		w[i] = len(headers[i])
	}
	for _, r := range rows {
		for i := range r {
			if i < len(w) && len(r[i]) > w[i] {
				w[i] = len(r[i])
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i := range w {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(w)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(fmt.Sprintf("%-*s", w[i], cell))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	sepLen := 0
	for i := range w {
		sepLen += w[i]
		if i < len(w)-1 {
			sepLen += 2
		}
	}
	b.WriteString(strings.Repeat("-", sepLen))
	b.WriteString("\n")
	for _, r := range rows {
		writeRow(r)
	}

	fmt.Fprint(p.out, b.String())
}
