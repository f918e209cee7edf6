// Package diagfmt renders diagnostic bags for humans (pretty) and for
// tooling (json).
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dac/internal/diag"
	"dac/internal/source"
)

var summaryStyle = lipgloss.NewStyle().Bold(true)

// Pretty formats diagnostics in a human-readable way. It walks bag.Items()
// in order (callers sort the bag first) and prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline covering the span, then
// any notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeading(w, fs, d.Primary, d.Severity, d.Code, d.Message, opts)
		printSpanContext(w, fs, d.Primary)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				printNoteHeading(w, fs, note, opts)
				printSpanContext(w, fs, note.Span)
			}
		}
	}
	if opts.Summary {
		printSummary(w, bag, opts)
	}
}

func printHeading(w io.Writer, fs *source.FileSet, span source.Span, sev diag.Severity, code diag.Code, msg string, opts PrettyOpts) {
	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", position(fs, span, opts.PathMode), sevText, code.ID(), msg)
}

func printNoteHeading(w io.Writer, fs *source.FileSet, note diag.Note, opts PrettyOpts) {
	noteText := "NOTE"
	if opts.Color {
		noteText = color.New(color.FgCyan).Sprint(noteText)
	}
	if note.Span.Empty() && note.Span.File == 0 {
		fmt.Fprintf(w, "  %s: %s\n", noteText, note.Msg)
		return
	}
	fmt.Fprintf(w, "  %s: %s: %s\n", position(fs, note.Span, opts.PathMode), noteText, note.Msg)
}

// printSpanContext shows the source line with a caret underline.
func printSpanContext(w io.Writer, fs *source.FileSet, span source.Span) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// Underline width in display cells, clamped to the first line.
	prefix := line[:clampCol(line, start.Col)]
	pad := runewidth.StringWidth(prefix)
	length := 1
	if end.Line == start.Line && end.Col > start.Col {
		marked := line[clampCol(line, start.Col):clampCol(line, end.Col)]
		if w := runewidth.StringWidth(marked); w > 1 {
			length = w
		}
	}
	fmt.Fprintf(w, "  %s^%s\n", strings.Repeat(" ", pad), strings.Repeat("~", length-1))
}

func printSummary(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return
	}
	text := fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
	if opts.Color {
		text = summaryStyle.Render(text)
	}
	fmt.Fprintln(w, text)
}

func position(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", displayPath(f.Path, mode), start.Line, start.Col)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgBlue)
	}
}

// clampCol converts a 1-based column into a byte offset within line.
func clampCol(line string, col uint32) int {
	off := int(col) - 1
	if off < 0 {
		return 0
	}
	if off > len(line) {
		return len(line)
	}
	return off
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
