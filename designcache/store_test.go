package designcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quillfeed/quillfeed/design"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	_, ok := store.Read("acme-co")
	require.False(t, ok, "empty store reads absent")

	doc := design.DefaultDocument()
	require.NoError(t, store.Write("acme-co", doc))

	got, ok := store.Read("acme-co")
	require.True(t, ok)
	require.Equal(t, doc, got)

	// Keys are per project identity.
	_, ok = store.Read("globex")
	require.False(t, ok)

	require.NoError(t, store.Remove("acme-co"))
	_, ok = store.Read("acme-co")
	require.False(t, ok)
	require.NoError(t, store.Remove("acme-co"), "removing an absent entry is not an error")
}

func TestStoreMalformedFileReadsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path := filepath.Join(dir, "blog-design-acme-co.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, ok := store.Read("acme-co")
	require.False(t, ok)
}

func TestStoreWriteNilDocument(t *testing.T) {
	store := NewStore(t.TempDir())
	require.Error(t, store.Write("acme-co", nil))
}

func TestWatchObservesExternalRewrite(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Write("acme-co", design.DefaultDocument()))

	changes := make(chan *design.Document, 4)
	watcher, err := store.Watch(context.Background(), "acme-co", func(doc *design.Document) {
		changes <- doc
	}, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	updated := design.DefaultDocument()
	updated.CustomCSS = ptrString(".post { color: red }")
	require.NoError(t, store.Write("acme-co", updated))

	select {
	case doc := <-changes:
		require.NotNil(t, doc.CustomCSS)
		require.Equal(t, ".post { color: red }", *doc.CustomCSS)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected watcher to observe the rewrite")
	}
}

func TestWatchIgnoresOtherProjects(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Write("acme-co", design.DefaultDocument()))

	changes := make(chan *design.Document, 4)
	watcher, err := store.Watch(context.Background(), "acme-co", func(doc *design.Document) {
		changes <- doc
	}, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, store.Write("globex", design.DefaultDocument()))

	select {
	case <-changes:
		t.Fatalf("watcher must ignore other projects' files")
	case <-time.After(200 * time.Millisecond):
	}
}

func ptrString(s string) *string { return &s }
