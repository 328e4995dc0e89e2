package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"casemerge/internal/diag"
	"casemerge/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	gutterColor  = color.New(color.FgHiBlack)
	markerColor  = color.New(color.FgGreen, color.Bold)
)

// Pretty writes the bag's diagnostics in a human-readable form. The caller is
// expected to have sorted the bag. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ marker under the span, then notes in
// the same shape when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, d.Severity, d.Code.ID(), d.Message, opts)
		if opts.Context > 0 {
			writeExcerpt(w, fs, d.Primary, opts)
		}
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeHeading(w, fs, note.Span, diag.SevInfo, "note", note.Msg, opts)
				if opts.Context > 0 {
					writeExcerpt(w, fs, note.Span, opts)
				}
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, code, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(sp)
	label := fmt.Sprintf("%s %s", sev, code)
	if opts.Color {
		label = severityColor(sev).Sprint(label)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", formatPath(fs, sp.File, opts.PathMode), start.Line, start.Col, label, msg)
}

func writeExcerpt(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)

	line := f.GetLine(start.Line)
	if line == "" && start.Line > 1 {
		return
	}

	gutter := fmt.Sprintf("%5d | ", start.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	if opts.Color {
		gutter = gutterColor.Sprint(gutter)
		blank = gutterColor.Sprint(blank)
	}
	fmt.Fprintf(w, "%s%s\n", gutter, line)

	// Marker under the span, clipped to the first line.
	startCol := int(start.Col)
	if startCol < 1 {
		startCol = 1
	}
	endCol := len(line) + 1
	if end.Line == start.Line && int(end.Col) <= endCol {
		endCol = int(end.Col)
	}
	width := endCol - startCol
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = markerColor.Sprint(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", blank, strings.Repeat(" ", startCol-1), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.FormatPath("auto", "")
	}
}
