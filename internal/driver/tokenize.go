package driver

import (
	"casemerge/internal/diag"
	"casemerge/internal/lexer"
	"casemerge/internal/source"
	"casemerge/internal/token"
)

// TokenizeFile lexes one file for the debug token dump.
func TokenizeFile(path string, maxDiagnostics int) (*source.FileSet, []token.Token, *diag.Bag, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return fileSet, lx.All(), bag, nil
}
