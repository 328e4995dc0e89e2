package driver

import (
	"bytes"
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"casemerge/internal/cache"
	"casemerge/internal/diag"
	"casemerge/internal/merge"
	"casemerge/internal/source"
	"casemerge/internal/syntax"
)

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Changed bool // whether a rewrite would modify the file
	Bag     *diag.Bag
}

// Check analyzes the given files and directories without touching them.
// Results come back in the sorted file order.
func Check(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
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
			results[i] = analyzeFile(fileSet, id, path, bag, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// analyzeFile runs lex+parse+rewrite for one loaded file, going through the
// disk cache when one is configured.
func analyzeFile(fileSet *source.FileSet, id source.FileID, path string, bag *diag.Bag, opts Options) FileResult {
	file := fileSet.Get(id)

	if payload, hit, err := opts.Cache.Get(file.Hash); err == nil && hit {
		cache.Decode(payload, id, bag)
		applySeverity(bag, opts.Severity)
		return FileResult{Path: path, FileID: id, Changed: payload.Changed, Bag: bag}
	}

	changed, _ := analyze(file, bag)

	// Cache errors are not the user's problem; next run just stays cold.
	_ = opts.Cache.Put(file.Hash, cache.Encode(bag, changed))

	applySeverity(bag, opts.Severity)
	return FileResult{Path: path, FileID: id, Changed: changed, Bag: bag}
}

// analyze parses and rewrites one file in memory. When lexing or parsing
// errored the rewrite is discarded: a file we could not fully read is not a
// file we may edit.
func analyze(file *source.File, bag *diag.Bag) (changed bool, rendered []byte) {
	reporter := diag.BagReporter{Bag: bag}
	parsed := syntax.ParseFile(file, reporter)
	if bag.HasErrors() {
		return false, nil
	}

	rewritten := merge.RewriteFile(parsed, reporter)
	rendered = syntax.Render(rewritten)
	return !bytes.Equal(rendered, file.Content), rendered
}

func applySeverity(bag *diag.Bag, sev diag.Severity) {
	if sev == diag.SevWarning {
		return
	}
	bag.SetSeverity(diag.LintFallthroughOnlyCase, sev)
}
