// Package client implements the content API client: authenticated HTTP
// access, a cache-through read path with per-endpoint TTLs, uniform error
// normalization, and the demo dataset fallback for the reserved demo
// identity.
package client

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/quillfeed/quillfeed/cache"
	"github.com/quillfeed/quillfeed/config"
	"github.com/quillfeed/quillfeed/endpoint"
	"github.com/quillfeed/quillfeed/metrics"
	"github.com/quillfeed/quillfeed/mockdata"
)

// httpDoer is the slice of http.Client behavior the client depends on.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// identity is the mutable credential and location state guarded by the
// client's mutex. Read operations take a snapshot so a concurrent Update
// never tears a request's headers.
type identity struct {
	baseURL   string
	projectID string
	secretKey string
	apiKey    string
	language  string
	timezone  string
}

// Client executes content API operations for one project. All read
// operations are cache-through; construction wires the resolved base URL,
// credentials, cache store and TTL policy. Safe for concurrent use.
type Client struct {
	httpClient httpDoer
	store      cache.Store
	ttl        cache.TTLPolicy
	logger     *slog.Logger
	metrics    *metrics.Recorder
	analytics  bool

	mu sync.RWMutex
	id identity
}

// Options overrides the collaborators a Client is built with. Zero-value
// fields fall back to defaults: a plain http.Client, an in-memory cache, a
// discarding logger and no metrics.
type Options struct {
	HTTPClient httpDoer
	Cache      cache.Store
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// New validates cfg and constructs a Client. The base URL is resolved from
// the explicit configuration value or the origin heuristics.
func New(cfg config.Config, opts Options) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	store := opts.Cache
	if store == nil {
		store = cache.NewMemory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		httpClient: httpClient,
		store:      store,
		ttl: cache.DefaultTTLPolicy().Apply(cache.TTLOverrides{
			Lists:    cfg.Cache.TTL.Lists,
			Post:     cfg.Cache.TTL.Post,
			Taxonomy: cfg.Cache.TTL.Taxonomy,
			Metadata: cfg.Cache.TTL.Metadata,
			Design:   cfg.Cache.TTL.Design,
		}),
		logger:    logger.With(slog.String("component", "client")),
		metrics:   opts.Metrics,
		analytics: cfg.Analytics.Enabled,
		id: identity{
			baseURL:   endpoint.Resolve(cfg.API.BaseURL, cfg.API.Origin),
			projectID: cfg.Project.ID,
			secretKey: cfg.Project.SecretKey,
			apiKey:    cfg.Project.APIKey,
			language:  cfg.Locale.Language,
			timezone:  cfg.Locale.Timezone,
		},
	}, nil
}

// snapshot returns a consistent copy of the mutable identity state.
func (c *Client) snapshot() identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// ProjectID returns the project identity requests are issued under.
func (c *Client) ProjectID() string {
	return c.snapshot().projectID
}

// BaseURL returns the resolved content API base URL.
func (c *Client) BaseURL() string {
	return c.snapshot().baseURL
}

// IsDemoProject reports whether the client runs under the reserved demo
// identity. This is the single predicate gating the mock fallback.
func (c *Client) IsDemoProject() bool {
	return c.snapshot().projectID == mockdata.ProjectID
}

// ConfigUpdate patches a subset of the client's identity in place. Nil
// fields are left untouched; BaseURL is re-resolved through the origin
// heuristics when only the origin changes.
type ConfigUpdate struct {
	ProjectID *string
	SecretKey *string
	APIKey    *string
	BaseURL   *string
	Origin    *string
}

func (u ConfigUpdate) empty() bool {
	return u.ProjectID == nil && u.SecretKey == nil && u.APIKey == nil &&
		u.BaseURL == nil && u.Origin == nil
}

// Update applies the patch and clears the response cache in the same
// critical section, so no entry keyed under the old identity can be read
// under the new credentials.
func (c *Client) Update(u ConfigUpdate) error {
	if u.empty() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if u.ProjectID != nil {
		c.id.projectID = *u.ProjectID
	}
	if u.SecretKey != nil {
		c.id.secretKey = *u.SecretKey
	}
	if u.APIKey != nil {
		c.id.apiKey = *u.APIKey
	}
	if u.BaseURL != nil || u.Origin != nil {
		explicit := ""
		if u.BaseURL != nil {
			explicit = *u.BaseURL
		}
		origin := ""
		if u.Origin != nil {
			origin = *u.Origin
		}
		c.id.baseURL = endpoint.Resolve(explicit, origin)
	}

	if err := c.store.Clear(context.Background()); err != nil {
		c.logger.Warn("cache clear after config update failed", slog.Any("error", err))
		return &Error{Message: "cache clear failed: " + err.Error(), cause: err}
	}
	c.logger.Info("client configuration updated",
		slog.String("projectId", c.id.projectID),
		slog.String("baseUrl", c.id.baseURL))
	return nil
}

// RSSURL returns the project's RSS feed location. Pure string construction,
// no request is made.
func (c *Client) RSSURL() string {
	id := c.snapshot()
	return id.baseURL + "/public/projects/" + id.projectID + "/rss.xml"
}

// SitemapURL returns the project's sitemap location.
func (c *Client) SitemapURL() string {
	id := c.snapshot()
	return id.baseURL + "/public/projects/" + id.projectID + "/sitemap.xml"
}

// ClearCache drops every cached response. Exposed for explicit cache busts.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Close releases the underlying cache store.
func (c *Client) Close() error {
	return c.store.Close(context.Background())
}
