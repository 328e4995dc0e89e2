package cache_test

import (
	"crypto/sha256"
	"testing"

	"casemerge/internal/cache"
	"casemerge/internal/diag"
	"casemerge/internal/source"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := sha256.Sum256([]byte("switch x { case 1: fallthrough\ncase 2: f() }"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintFallthroughOnlyCase,
		Message:  "'case 1' only falls through; merge it into the following case",
		Primary:  source.Span{File: 0, Start: 11, End: 30},
	})

	if err := c.Put(key, cache.Encode(bag, true)); err != nil {
		t.Fatal(err)
	}

	payload, ok, err := c.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if !payload.Changed {
		t.Error("Changed flag lost")
	}
	if len(payload.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(payload.Diagnostics))
	}

	replay := diag.NewBag(10)
	cache.Decode(payload, 7, replay)
	got := replay.Items()[0]
	if got.Code != diag.LintFallthroughOnlyCase || got.Severity != diag.SevWarning {
		t.Errorf("replayed code/severity = %v/%v", got.Code, got.Severity)
	}
	if got.Primary.File != 7 || got.Primary.Start != 11 || got.Primary.End != 30 {
		t.Errorf("replayed span = %+v", got.Primary)
	}
}

func TestGetMissesOnUnknownKey(t *testing.T) {
	c, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := sha256.Sum256([]byte("never stored"))
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("ok=%v err=%v, want clean miss", ok, err)
	}
}

func TestNilCacheIsAlwaysMiss(t *testing.T) {
	var c *cache.DiskCache
	key := sha256.Sum256([]byte("x"))
	if err := c.Put(key, &cache.Payload{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("ok=%v err=%v, want miss from nil cache", ok, err)
	}
}

func TestDropAll(t *testing.T) {
	dir := t.TempDir() + "/c"
	c, err := cache.OpenAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := sha256.Sum256([]byte("x"))
	if err := c.Put(key, cache.Encode(diag.NewBag(0), false)); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Error("entry survived DropAll")
	}
}
