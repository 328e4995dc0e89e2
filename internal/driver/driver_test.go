package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"casemerge/internal/cache"
	"casemerge/internal/diag"
	"casemerge/internal/driver"
)

const mergeable = `switch x {
case 1: fallthrough
case 2: doSomething()
}
`

const merged = `switch x {
case 1...2: doSomething()
}
`

const clean = `switch x {
case 1: a()
case 2: b()
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestCheckReportsWithoutWriting(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.swift":        mergeable,
		"sub/b.swift":    clean,
		"sub/ignore.txt": mergeable,
	})

	_, results, err := driver.Check(context.Background(), []string{root}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (.txt must be skipped)", len(results))
	}

	// Sorted order puts a.swift first.
	if !results[0].Changed || results[0].Bag.Len() != 1 {
		t.Errorf("a.swift: changed=%v findings=%d, want true/1", results[0].Changed, results[0].Bag.Len())
	}
	if results[1].Changed || results[1].Bag.Len() != 0 {
		t.Errorf("b.swift: changed=%v findings=%d, want false/0", results[1].Changed, results[1].Bag.Len())
	}

	got, err := os.ReadFile(filepath.Join(root, "a.swift"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != mergeable {
		t.Error("check must not modify files")
	}
}

func TestCheckUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.swift": mergeable})
	c, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: c}

	_, cold, err := driver.Check(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, warm, err := driver.Check(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatal(err)
	}

	if cold[0].Bag.Len() != warm[0].Bag.Len() || cold[0].Changed != warm[0].Changed {
		t.Errorf("warm run diverged: cold=%+v warm=%+v", cold[0], warm[0])
	}
	coldMsg := cold[0].Bag.Items()[0].Message
	warmMsg := warm[0].Bag.Items()[0].Message
	if coldMsg != warmMsg {
		t.Errorf("messages diverged: %q vs %q", coldMsg, warmMsg)
	}
}

func TestCheckSeverityOverride(t *testing.T) {
	root := writeTree(t, map[string]string{"a.swift": mergeable})

	_, results, err := driver.Check(context.Background(), []string{root}, driver.Options{Severity: diag.SevError})
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].Bag.Items()[0].Severity; got != diag.SevError {
		t.Errorf("severity = %v, want error", got)
	}
}

func TestFixRewritesInPlace(t *testing.T) {
	root := writeTree(t, map[string]string{"a.swift": mergeable, "b.swift": clean})

	_, results, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed || results[1].Changed {
		t.Errorf("changed flags = %v/%v, want true/false", results[0].Changed, results[1].Changed)
	}

	got, err := os.ReadFile(filepath.Join(root, "a.swift"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != merged {
		t.Errorf("a.swift after fix:\n got %q\nwant %q", got, merged)
	}

	untouched, err := os.ReadFile(filepath.Join(root, "b.swift"))
	if err != nil {
		t.Fatal(err)
	}
	if string(untouched) != clean {
		t.Error("clean file was rewritten")
	}
}

func TestFixKeepsBOMAndCRLF(t *testing.T) {
	// Windows-flavored input: only the merged clauses may differ after fix,
	// the BOM and every CRLF line ending must come back out unchanged.
	bom := "\xEF\xBB\xBF"
	root := writeTree(t, map[string]string{
		"win.swift": bom + strings.ReplaceAll(mergeable, "\n", "\r\n"),
	})

	_, results, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed {
		t.Fatal("mergeable file not marked changed")
	}

	got, err := os.ReadFile(filepath.Join(root, "win.swift"))
	if err != nil {
		t.Fatal(err)
	}
	want := bom + strings.ReplaceAll(merged, "\n", "\r\n")
	if string(got) != want {
		t.Errorf("win.swift after fix:\n got %q\nwant %q", got, want)
	}
}

func TestFixPreservesFileMode(t *testing.T) {
	root := writeTree(t, map[string]string{"a.swift": mergeable})
	path := filepath.Join(root, "a.swift")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{}); err != nil {
		t.Fatal(err)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", st.Mode().Perm())
	}
}

func TestFixCheckOnlyWritesNothing(t *testing.T) {
	root := writeTree(t, map[string]string{"a.swift": mergeable})

	_, results, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{CheckOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed {
		t.Error("check-only must still report the change")
	}
	got, _ := os.ReadFile(filepath.Join(root, "a.swift"))
	if string(got) != mergeable {
		t.Error("check-only run modified the file")
	}
}

func TestFixStdoutMode(t *testing.T) {
	root := writeTree(t, map[string]string{"a.swift": mergeable})

	var out strings.Builder
	_, _, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{Stdout: &out})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != merged {
		t.Errorf("stdout = %q, want %q", out.String(), merged)
	}
	got, _ := os.ReadFile(filepath.Join(root, "a.swift"))
	if string(got) != mergeable {
		t.Error("stdout mode must not touch the file")
	}
}

func TestBrokenFileIsNeverRewritten(t *testing.T) {
	broken := "switch x {\ncase 1: fallthrough\ncase 2: f(\"unterminated\n}\n"
	root := writeTree(t, map[string]string{"a.swift": broken})

	_, results, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Changed {
		t.Error("broken file must not count as changed")
	}
	if !results[0].Bag.HasErrors() {
		t.Error("expected lex/parse errors in the bag")
	}
	got, _ := os.ReadFile(filepath.Join(root, "a.swift"))
	if string(got) != broken {
		t.Error("broken file was rewritten")
	}
}

func TestFixIsIdempotent(t *testing.T) {
	root := writeTree(t, map[string]string{"a.swift": mergeable})

	if _, _, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{}); err != nil {
		t.Fatal(err)
	}
	_, second, err := driver.Fix(context.Background(), []string{root}, driver.FixOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if second[0].Changed {
		t.Error("second fix run still reports changes")
	}
	got, _ := os.ReadFile(filepath.Join(root, "a.swift"))
	if string(got) != merged {
		t.Errorf("content drifted: %q", got)
	}
}
