// Package driver runs the analysis and rewrite pipelines over files and
// directories.
package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"casemerge/internal/cache"
	"casemerge/internal/diag"
)

// Options configures a pipeline run.
type Options struct {
	MaxDiagnostics int
	Jobs           int           // 0 means GOMAXPROCS
	Extensions     []string      // extensions scanned inside directories
	Severity       diag.Severity // severity applied to merge findings
	Cache          *cache.DiskCache
}

func (o *Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return []string{".swift"}
	}
	return o.Extensions
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// ListSourceFiles expands files and directories into a sorted, deduplicated
// list of source files. Explicit file arguments are kept regardless of
// extension; directories are walked recursively.
func ListSourceFiles(paths []string, extensions []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			for _, ext := range extensions {
				if strings.HasSuffix(path, ext) {
					add(path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
