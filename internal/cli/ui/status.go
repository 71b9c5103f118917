package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes colored status lines for humans. Machine-readable output
// goes to stdout untouched; status lines go to the printer's writer.
type Printer struct {
	out     io.Writer
	success *color.Color
	info    *color.Color
	warning *color.Color
	failure *color.Color
}

// NewPrinter returns a Printer writing to out. noColor disables escapes.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		info:    color.New(color.FgCyan),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.success, p.info, p.warning, p.failure} {
			c.DisableColor()
		}
	}
	return p
}

// WithOutput returns a copy of p writing to out.
func (p *Printer) WithOutput(out io.Writer) *Printer {
	clone := *p
	clone.out = out
	return &clone
}

// Success prints a check-marked line.
func (p *Printer) Success(format string, args ...any) {
	p.success.Fprintf(p.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

// Info prints a plain status line.
func (p *Printer) Info(format string, args ...any) {
	p.info.Fprintf(p.out, "%s\n", fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.warning.Fprintf(p.out, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// Error prints an error line.
func (p *Printer) Error(err error) {
	p.failure.Fprintf(p.out, "Error: %v\n", err)
}

// Table prints aligned name/description rows.
func (p *Printer) Table(rows [][2]string) {
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		p.info.Fprintf(p.out, "  %-*s", width, row[0])
		fmt.Fprintf(p.out, "  %s\n", row[1])
	}
}
