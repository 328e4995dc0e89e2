package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.swift", []byte("switch x {\ncase 1: f()\n}\n"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},   // 's' of switch
		{9, 1, 10},  // '{'
		{10, 1, 11}, // the newline itself
		{11, 2, 1},  // 'c' of case
		{18, 2, 8},  // 'f'
		{23, 3, 1},  // '}'
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Errorf("off %d: got %d:%d, want %d:%d", tc.off, start.Line, start.Col, tc.line, tc.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.swift", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "one" {
		t.Errorf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "two" {
		t.Errorf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Errorf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4 = %q, want empty", got)
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0 = %q, want empty", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "win.swift")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("switch x {\r\ncase 1: f()\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)

	if string(f.Content) != "switch x {\ncase 1: f()\n}\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %v, want BOM and CRLF bits set", f.Flags)
	}

	if string(f.Restore(f.Content)) != string(raw) {
		t.Errorf("restore = %q, want the original bytes back", f.Restore(f.Content))
	}
}

func TestRestoreLeavesPlainFilesAlone(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("plain.swift", []byte("switch x {\ncase 1: f()\n}\n"))
	f := fs.Get(id)

	if string(f.Restore(f.Content)) != string(f.Content) {
		t.Errorf("restore changed a file that needed no normalization")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 9}
	b := Span{File: 1, Start: 7, End: 20}
	c := a.Cover(b)
	if c.Start != 4 || c.End != 20 {
		t.Errorf("cover = %+v", c)
	}
}

func TestGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("dir/a.swift", []byte("x"))

	if _, ok := fs.GetByPath("dir/a.swift"); !ok {
		t.Error("loaded path not found")
	}
	if _, ok := fs.GetByPath("dir/missing.swift"); ok {
		t.Error("missing path reported as found")
	}
}
