package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// PlanKey prefixes the precomputed signature without re-hashing
	planKey := k.PlanKey("abc123")
	if planKey != "plan:abc123" {
		t.Errorf("PlanKey unexpected: %s", planKey)
	}

	// GridKey should include options in hash
	gk1 := k.GridKey("a4", "portrait", GridKeyOpts{GridCols: 6, GridRows: 8})
	gk2 := k.GridKey("a4", "portrait", GridKeyOpts{GridCols: 4, GridRows: 8})
	if gk1 == gk2 {
		t.Error("Different GridKeyOpts should produce different keys")
	}

	// Identical inputs must be stable
	gk3 := k.GridKey("a4", "portrait", GridKeyOpts{GridCols: 6, GridRows: 8})
	if gk1 != gk3 {
		t.Error("Identical GridKeyOpts should produce identical keys")
	}

	// SheetKey
	sk1 := k.SheetKey("hash123", SheetKeyOpts{ContentHash: "c1"})
	sk2 := k.SheetKey("hash123", SheetKeyOpts{ContentHash: "c2", AutoFit: true})
	if sk1 == sk2 {
		t.Error("Different SheetKeyOpts should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", ShowBaselines: true})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "json", ShowBaselines: true})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	// All keys should be prefixed
	planKey := scoped.PlanKey("abc123")
	if planKey != "user:123:plan:abc123" {
		t.Errorf("ScopedKeyer PlanKey unexpected: %s", planKey)
	}

	gridKey := scoped.GridKey("a4", "portrait", GridKeyOpts{})
	if len(gridKey) < 15 || gridKey[:9] != "user:123:" {
		t.Errorf("ScopedKeyer GridKey should be prefixed: %s", gridKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.PlanKey("sig")
	if key != "prefix:plan:sig" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Roundtrip
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, want value, true", data, hit)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "old", []byte("stale"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	_, hit, _ = c.Get(ctx, "old")
	if hit {
		t.Error("expired entry should miss")
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("deleted entry should miss")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestFileCachePurge(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	keys := []string{"grid:aaa", "grid:bbb", "sheet:ccc", "artifact:ddd"}
	for _, k := range keys {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}

	// Scoped purge removes only the matching namespace
	removed, err := c.Purge("grid:")
	if err != nil {
		t.Fatalf("Purge error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Purge(grid:) removed %d, want 2", removed)
	}
	if _, hit, _ := c.Get(ctx, "grid:aaa"); hit {
		t.Error("purged entry should miss")
	}
	if _, hit, _ := c.Get(ctx, "sheet:ccc"); !hit {
		t.Error("unrelated entry should survive a scoped purge")
	}

	// Empty prefix removes everything left
	removed, err = c.Purge("")
	if err != nil {
		t.Fatalf("Purge error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Purge() removed %d, want 2", removed)
	}
	if _, hit, _ := c.Get(ctx, "artifact:ddd"); hit {
		t.Error("full purge should remove everything")
	}
}

func TestFileCacheScan(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "grid:live", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Set(ctx, "grid:stale", []byte("data"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	seen := make(map[string]bool)
	expired := 0
	err = c.Scan(func(e EntryInfo) {
		seen[e.Key] = true
		if e.Expired {
			expired++
		}
		if e.Size <= 0 {
			t.Errorf("entry %s reports size %d", e.Key, e.Size)
		}
	})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if !seen["grid:live"] || !seen["grid:stale"] {
		t.Errorf("Scan saw %v, want both entries", seen)
	}
	if expired != 1 {
		t.Errorf("expired count = %d, want 1", expired)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
