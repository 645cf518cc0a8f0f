package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quillfeed/quillfeed/blog"
	"github.com/quillfeed/quillfeed/client"
	"github.com/quillfeed/quillfeed/config"
	"github.com/quillfeed/quillfeed/design"
	"github.com/quillfeed/quillfeed/designcache"
)

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Project.ID = "acme-co"
	cfg.Project.SecretKey = "test-secret"
	cfg.API.BaseURL = baseURL
	cfg.DesignCache.Dir = t.TempDir()
	cfg.Theme = design.ThemeConfig{
		Colors:    map[string]string{"primary": "#111111"},
		CustomCSS: ".static { }",
	}
	return cfg
}

func designDocument(css string) design.Document {
	return design.Document{CustomCSS: &css}
}

func serveDesign(t *testing.T, doc design.Document) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := json.Marshal(doc)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(blog.Envelope{Success: true, Data: payload})
	}
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig() // no project id
	s := New(cfg, Options{})

	err := s.Init(context.Background())
	require.Error(t, err)

	snapshot := s.Snapshot()
	require.Equal(t, StateRejected, snapshot.State)
	require.False(t, snapshot.Ready)
	require.Error(t, snapshot.ConfigError)
	require.Nil(t, s.Client())
}

func TestInitColdCacheFetchesAndPersists(t *testing.T) {
	server := httptest.NewServer(serveDesign(t, designDocument(".remote { color: blue }")))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	s := New(cfg, Options{})
	defer s.Close()

	require.NoError(t, s.Init(context.Background()))

	snapshot := s.Snapshot()
	require.Equal(t, StateReady, snapshot.State)
	require.True(t, snapshot.Ready)
	require.False(t, snapshot.DesignLoading)
	require.Empty(t, snapshot.DesignError)
	require.NotNil(t, snapshot.Document)
	require.Equal(t, ".remote { color: blue }", *snapshot.Document.CustomCSS)

	// Document value wins over the static theme in the merged view.
	require.Equal(t, ".remote { color: blue }", snapshot.Effective.CustomCSS)
	require.Equal(t, "#111111", snapshot.Effective.Colors["primary"])

	// The fetched document is persisted for the next cold start.
	store := designcache.NewStore(cfg.DesignCache.Dir)
	persisted, ok := store.Read("acme-co")
	require.True(t, ok)
	require.Equal(t, ".remote { color: blue }", *persisted.CustomCSS)
}

func TestInitFetchFailureFallsBackToDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "design service down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := New(testConfig(t, server.URL), Options{})
	defer s.Close()

	// The failure is advisory; Init itself succeeds.
	require.NoError(t, s.Init(context.Background()))

	snapshot := s.Snapshot()
	require.Equal(t, StateReady, snapshot.State)
	require.True(t, snapshot.Ready)
	require.NotEmpty(t, snapshot.DesignError)
	require.NotNil(t, snapshot.Document)
	require.Equal(t, design.DefaultDocument(), snapshot.Document)
}

func TestInitCacheHitServesImmediatelyThenRefreshes(t *testing.T) {
	server := httptest.NewServer(serveDesign(t, designDocument(".fresh { }")))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	store := designcache.NewStore(cfg.DesignCache.Dir)
	stale := designDocument(".stale { }")
	require.NoError(t, store.Write("acme-co", &stale))

	s := New(cfg, Options{DesignStore: store})
	defer s.Close()

	ready := make(chan Snapshot, 8)
	unsubscribe := s.Subscribe(func(snapshot Snapshot) {
		if snapshot.Ready {
			ready <- snapshot
		}
	})
	defer unsubscribe()

	require.NoError(t, s.Init(context.Background()))

	// The cached document is exposed without waiting for the network.
	select {
	case snapshot := <-ready:
		require.Equal(t, ".stale { }", *snapshot.Document.CustomCSS)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected an immediate ready snapshot from the cache")
	}

	// The background refresh adopts and persists the fresh document.
	select {
	case snapshot := <-ready:
		require.Equal(t, ".fresh { }", *snapshot.Document.CustomCSS)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected the background refresh to adopt the fresh document")
	}

	persisted, ok := store.Read("acme-co")
	require.True(t, ok)
	require.Equal(t, ".fresh { }", *persisted.CustomCSS)
}

func TestUpdateConfigReresolvesDesign(t *testing.T) {
	var css atomic.Value
	css.Store(".first { }")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveDesign(t, designDocument(css.Load().(string)))(w, r)
	}))
	defer server.Close()

	s := New(testConfig(t, server.URL), Options{})
	defer s.Close()

	require.NoError(t, s.Init(context.Background()))
	require.Equal(t, ".first { }", s.Snapshot().Effective.CustomCSS)

	css.Store(".second { }")
	rotated := "rotated-secret"
	require.NoError(t, s.UpdateConfig(context.Background(), client.ConfigUpdate{SecretKey: &rotated}))

	require.Eventually(t, func() bool {
		return s.Snapshot().Effective.CustomCSS == ".second { }"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUpdateConfigSupersedesBackgroundRefresh(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Hold the old identity's refresh open until the test releases it.
		if r.Header.Get("X-Project-ID") == "acme-co" {
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
			serveDesign(t, designDocument(".acme-late { }"))(w, r)
			return
		}
		serveDesign(t, designDocument(".beta { }"))(w, r)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	store := designcache.NewStore(cfg.DesignCache.Dir)
	cached := designDocument(".acme-cached { }")
	require.NoError(t, store.Write("acme-co", &cached))

	s := New(cfg, Options{DesignStore: store})
	defer s.Close()

	// The cache hit surfaces immediately and leaves a refresh in flight.
	require.NoError(t, s.Init(context.Background()))
	require.Equal(t, ".acme-cached { }", *s.Snapshot().Document.CustomCSS)

	beta := "beta-co"
	require.NoError(t, s.UpdateConfig(context.Background(), client.ConfigUpdate{ProjectID: &beta}))
	require.Eventually(t, func() bool {
		doc := s.Snapshot().Document
		return doc != nil && doc.CustomCSS != nil && *doc.CustomCSS == ".beta { }"
	}, 2*time.Second, 10*time.Millisecond)

	// Releasing the superseded refresh must not clobber the re-resolved
	// design or the old project's cache file.
	close(release)
	time.Sleep(150 * time.Millisecond)
	require.Equal(t, ".beta { }", *s.Snapshot().Document.CustomCSS)

	persisted, ok := store.Read("acme-co")
	require.True(t, ok)
	require.Equal(t, ".acme-cached { }", *persisted.CustomCSS)
}

func TestUpdateConfigBeforeInit(t *testing.T) {
	s := New(config.DefaultConfig(), Options{})
	secret := "x"
	require.Error(t, s.UpdateConfig(context.Background(), client.ConfigUpdate{SecretKey: &secret}))
}

func TestWatchAdoptsExternalRewrite(t *testing.T) {
	server := httptest.NewServer(serveDesign(t, designDocument(".remote { }")))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	store := designcache.NewStore(cfg.DesignCache.Dir)
	s := New(cfg, Options{DesignStore: store, WatchDesign: true})
	defer s.Close()

	require.NoError(t, s.Init(context.Background()))

	external := designDocument(".edited-externally { }")
	require.NoError(t, store.Write("acme-co", &external))

	require.Eventually(t, func() bool {
		snapshot := s.Snapshot()
		return snapshot.Document != nil && snapshot.Document.CustomCSS != nil &&
			*snapshot.Document.CustomCSS == ".edited-externally { }"
	}, 2*time.Second, 10*time.Millisecond)
}
