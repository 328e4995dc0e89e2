package diagfmt_test

import (
	"strings"
	"testing"

	"casemerge/internal/diag"
	"casemerge/internal/diagfmt"
	"casemerge/internal/source"
)

func makeBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.swift", []byte("switch x {\ncase 1: fallthrough\ncase 2: f()\n}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintFallthroughOnlyCase,
		Message:  "'case 1' only falls through; merge it into the following case",
		Primary:  source.Span{File: id, Start: 11, End: 30},
	})
	return bag, fs, id
}

func TestPrettyHeadingAndExcerpt(t *testing.T) {
	bag, fs, _ := makeBag(t)

	var b strings.Builder
	diagfmt.Pretty(&b, bag, fs, diagfmt.PrettyOpts{Context: 1})
	out := b.String()

	if !strings.Contains(out, "demo.swift:2:1: WARNING LINT4001:") {
		t.Errorf("heading missing or malformed:\n%s", out)
	}
	if !strings.Contains(out, "case 1: fallthrough") {
		t.Errorf("source excerpt missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~") {
		t.Errorf("span marker missing:\n%s", out)
	}
}

func TestPrettyWithoutContextSkipsExcerpt(t *testing.T) {
	bag, fs, _ := makeBag(t)

	var b strings.Builder
	diagfmt.Pretty(&b, bag, fs, diagfmt.PrettyOpts{})
	out := b.String()

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single heading line:\n%s", out)
	}
}

func TestJSONShape(t *testing.T) {
	bag, fs, _ := makeBag(t)

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{IncludePositions: true})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d, want 1 each", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "LINT4001" {
		t.Errorf("severity/code = %s/%s", d.Severity, d.Code)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 1 {
		t.Errorf("position = %d:%d, want 2:1", d.Location.StartLine, d.Location.StartCol)
	}
	if d.Location.StartByte != 11 || d.Location.EndByte != 30 {
		t.Errorf("bytes = %d..%d, want 11..30", d.Location.StartByte, d.Location.EndByte)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs, id := makeBag(t)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintFallthroughOnlyCase,
		Message:  "second finding",
		Primary:  source.Span{File: id, Start: 31, End: 42},
	})

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Errorf("count = %d, want 1 after truncation", out.Count)
	}
	if bag.Len() != 2 {
		t.Errorf("bag len = %d, truncation must not touch the bag", bag.Len())
	}
}
