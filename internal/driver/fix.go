package driver

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"casemerge/internal/diag"
	"casemerge/internal/source"
)

// FixOptions configures the rewrite pipeline.
type FixOptions struct {
	Options
	CheckOnly bool      // report would-be changes, write nothing
	Stdout    io.Writer // when set, rewritten content goes here instead of disk
}

// Fix analyzes the given files and rewrites the changed ones in place.
// Files that fail to lex or parse are reported and left untouched.
func Fix(ctx context.Context, paths []string, opts FixOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListSourceFiles(paths, opts.extensions())
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = id
	}

	results := make([]FileResult, len(files))
	rendered := make([][]byte, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.maxDiagnostics())
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.UnknownCode,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			id := fileIDs[path]
			file := fileSet.Get(id)
			changed, out := analyze(file, bag)
			applySeverity(bag, opts.Severity)
			results[i] = FileResult{Path: path, FileID: id, Changed: changed, Bag: bag}
			if out != nil {
				// Re-apply the BOM and CRLF endings stripped at load so
				// only the merged clauses differ from the original bytes.
				rendered[i] = file.Restore(out)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}

	// Writes happen after the parallel phase so a cancellation cannot leave
	// half the tree rewritten mid-walk.
	for i := range results {
		if rendered[i] == nil {
			continue
		}
		switch {
		case opts.Stdout != nil:
			// Stdout mode echoes every readable file, changed or not.
			if _, err := opts.Stdout.Write(rendered[i]); err != nil {
				return fileSet, results, err
			}
		case opts.CheckOnly || !results[i].Changed:
			// Nothing to write; Changed already says it all.
		default:
			if err := writeFileAtomic(results[i].Path, rendered[i]); err != nil {
				return fileSet, results, err
			}
		}
	}
	return fileSet, results, nil
}

// writeFileAtomic replaces path's content via a temp file and rename,
// preserving the original file mode.
func writeFileAtomic(path string, content []byte) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".casemerge-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(st.Mode().Perm()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
