package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"casemerge/internal/config"
	"casemerge/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint]
severity = "error"
max-diagnostics = 25

[run]
jobs = 4
extensions = ["swift", ".swiftinterface"]
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Severity != diag.SevError {
		t.Errorf("severity = %v, want error", cfg.Severity)
	}
	if cfg.MaxDiagnostics != 25 || cfg.Jobs != 4 {
		t.Errorf("max/jobs = %d/%d, want 25/4", cfg.MaxDiagnostics, cfg.Jobs)
	}
	want := []string{".swift", ".swiftinterface"}
	if len(cfg.Extensions) != len(want) {
		t.Fatalf("extensions = %v, want %v", cfg.Extensions, want)
	}
	for i := range want {
		if cfg.Extensions[i] != want[i] {
			t.Errorf("extensions = %v, want %v", cfg.Extensions, want)
		}
	}
}

func TestLoadEmptyManifestKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	def := config.Default()
	if cfg.Severity != def.Severity || cfg.MaxDiagnostics != def.MaxDiagnostics {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadRejectsBadSeverity(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[lint]\nseverity = \"loud\"\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for bad severity")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[run]\njobs = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := config.Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("manifest not discovered")
	}
	if cfg.Jobs != 2 {
		t.Errorf("jobs = %d, want 2", cfg.Jobs)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	cfg, path, err := config.Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning default", cfg.Severity)
	}
}
