package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestMemoryStoreGetSet(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte(`{"posts":[]}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	entry, ok, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if string(entry.Value) != `{"posts":[]}` {
		t.Fatalf("unexpected value: %s", entry.Value)
	}
	if entry.StoredAt.IsZero() || !entry.ExpiresAt.After(entry.StoredAt) {
		t.Fatalf("unexpected entry window: %#v", entry)
	}

	if err := store.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("get: %v", err)
	} else if ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemoryStoreOverwriteAndClear(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("old"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("new"), time.Minute); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	entry, ok, _ := store.Get(ctx, "k")
	if !ok || string(entry.Value) != "new" {
		t.Fatalf("expected overwrite to win, got %#v ok=%v", entry, ok)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected clear to drop entries")
	}
}

func TestMemoryStoreNonPositiveTTL(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set zero ttl: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("zero ttl should drop the entry")
	}
}

func TestValkeyStore(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer server.Close()

	store, err := NewValkey(ValkeyConfig{Address: server.Addr(), Namespace: "qf-test"})
	if err != nil {
		t.Fatalf("new valkey: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "demo:posts:abc", []byte(`{"total":2}`), 500*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	entry, ok, err := store.Get(ctx, "demo:posts:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(entry.Value) != `{"total":2}` {
		t.Fatalf("unexpected entry: %#v ok=%v", entry, ok)
	}

	server.FastForward(time.Second)
	if _, ok, err := store.Get(ctx, "demo:posts:abc"); err != nil {
		t.Fatalf("get after ttl: %v", err)
	} else if ok {
		t.Fatalf("expected valkey entry to expire")
	}

	if err := store.Set(ctx, "demo:tags:def", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set second: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "demo:tags:def"); ok {
		t.Fatalf("expected clear to remove namespaced keys")
	}

	if err := store.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestValkeyStoreMalformedEntryReadsAbsent(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer server.Close()

	store, err := NewValkey(ValkeyConfig{Address: server.Addr(), Namespace: "qf-test"})
	if err != nil {
		t.Fatalf("new valkey: %v", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := server.Set("qf-test:broken", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok, err := store.Get(context.Background(), "broken"); err != nil {
		t.Fatalf("get: %v", err)
	} else if ok {
		t.Fatalf("malformed entry should read as absent")
	}
}
