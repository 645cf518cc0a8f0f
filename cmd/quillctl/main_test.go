package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillfeed/quillfeed/blog"
	"github.com/quillfeed/quillfeed/client"
	"github.com/quillfeed/quillfeed/config"
	"github.com/quillfeed/quillfeed/session"
)

func TestBuildStoreFallsBackToMemory(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	store := buildStore(logger, config.CacheConfig{Backend: "memory"})
	require.NotNil(t, store)

	store = buildStore(logger, config.CacheConfig{Backend: "nonsense"})
	require.NotNil(t, store)

	// Unreachable valkey degrades to memory instead of failing startup.
	store = buildStore(logger, config.CacheConfig{
		Backend: "valkey",
		Valkey:  config.ValkeyCacheConfig{Address: "127.0.0.1:1"},
	})
	require.NotNil(t, store)
	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), 0))
}

func TestRunDispatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := json.Marshal(blog.Metadata{Title: "Acme Blog"})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(blog.Envelope{Success: true, Data: payload})
	}))
	defer server.Close()

	cfg := config.DefaultConfig()
	cfg.Project.ID = "acme-co"
	cfg.Project.SecretKey = "test-secret"
	cfg.API.BaseURL = server.URL
	cfg.DesignCache.Dir = t.TempDir()

	sess := session.New(cfg, session.Options{})
	defer sess.Close()
	require.NoError(t, sess.Init(context.Background()))

	ctx := context.Background()
	result, err := run(ctx, sess, "metadata", "", client.ListQuery{}, nil)
	require.NoError(t, err)
	meta, ok := result.(blog.Metadata)
	require.True(t, ok)
	require.Equal(t, "Acme Blog", meta.Title)

	result, err = run(ctx, sess, "urls", "", client.ListQuery{}, nil)
	require.NoError(t, err)
	urls, ok := result.(map[string]string)
	require.True(t, ok)
	require.Contains(t, urls["rss"], "/public/projects/acme-co/rss.xml")

	_, err = run(ctx, sess, "post", "", client.ListQuery{}, nil)
	require.Error(t, err, "post requires a slug argument")

	_, err = run(ctx, sess, "bogus", "", client.ListQuery{}, nil)
	require.Error(t, err)
}
