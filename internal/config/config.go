// Package config loads the optional casemerge.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"casemerge/internal/diag"
)

// ManifestName is the file searched for from the working directory upward.
const ManifestName = "casemerge.toml"

// Config carries the resolved settings. Zero fields mean "use the default".
type Config struct {
	Severity       diag.Severity // severity of merge findings
	MaxDiagnostics int           // per-file diagnostic cap
	Jobs           int           // 0 means GOMAXPROCS
	Extensions     []string      // file extensions scanned in directories
}

// ErrBadSeverity indicates an unrecognized [lint].severity value.
var ErrBadSeverity = errors.New("invalid [lint].severity")

type manifest struct {
	Lint struct {
		Severity       string `toml:"severity"`
		MaxDiagnostics int    `toml:"max-diagnostics"`
	} `toml:"lint"`
	Run struct {
		Jobs       int      `toml:"jobs"`
		Extensions []string `toml:"extensions"`
	} `toml:"run"`
}

// Default returns the built-in settings used when no manifest exists.
func Default() Config {
	return Config{
		Severity:       diag.SevWarning,
		MaxDiagnostics: 100,
		Extensions:     []string{".swift"},
	}
}

// Load parses a manifest file and overlays it onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var m manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("lint", "severity") {
		sev, ok := diag.ParseSeverity(strings.TrimSpace(m.Lint.Severity))
		if !ok {
			return cfg, fmt.Errorf("%s: %w: %q", path, ErrBadSeverity, m.Lint.Severity)
		}
		cfg.Severity = sev
	}
	if meta.IsDefined("lint", "max-diagnostics") && m.Lint.MaxDiagnostics > 0 {
		cfg.MaxDiagnostics = m.Lint.MaxDiagnostics
	}
	if meta.IsDefined("run", "jobs") && m.Run.Jobs > 0 {
		cfg.Jobs = m.Run.Jobs
	}
	if meta.IsDefined("run", "extensions") && len(m.Run.Extensions) > 0 {
		exts := make([]string, 0, len(m.Run.Extensions))
		for _, e := range m.Run.Extensions {
			e = strings.TrimSpace(e)
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			exts = append(exts, e)
		}
		if len(exts) > 0 {
			cfg.Extensions = exts
		}
	}
	return cfg, nil
}

// Discover walks from dir toward the filesystem root looking for a manifest.
// It returns the defaults when none is found.
func Discover(dir string) (Config, string, error) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return Default(), "", err
	}
	for {
		candidate := filepath.Join(cur, ManifestName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			cfg, loadErr := Load(candidate)
			return cfg, candidate, loadErr
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return Default(), "", nil
		}
		cur = parent
	}
}
