package diag_test

import (
	"math"
	"testing"

	"casemerge/internal/diag"
)

func TestNewBagClampsOversizedLimit(t *testing.T) {
	// math.MaxUint16+1 used to wrap to 0 and silently drop everything.
	bag := diag.NewBag(math.MaxUint16 + 1)
	if bag.Cap() != math.MaxUint16 {
		t.Fatalf("cap = %d, want %d", bag.Cap(), math.MaxUint16)
	}
	if !bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LintFallthroughOnlyCase}) {
		t.Error("diagnostic dropped by an oversized limit")
	}

	if got := diag.NewBag(-1).Cap(); got != 0 {
		t.Errorf("negative limit cap = %d, want 0", got)
	}
}

func TestSetSeverityRewritesMatchingCode(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LintFallthroughOnlyCase})
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LexUnterminatedString})

	bag.SetSeverity(diag.LintFallthroughOnlyCase, diag.SevError)

	items := bag.Items()
	if items[0].Severity != diag.SevError {
		t.Errorf("lint severity = %v, want error", items[0].Severity)
	}
	if items[1].Severity != diag.SevWarning {
		t.Errorf("unrelated code touched: severity = %v", items[1].Severity)
	}
}
