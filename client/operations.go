package client

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/quillfeed/quillfeed/blog"
	"github.com/quillfeed/quillfeed/design"
	"github.com/quillfeed/quillfeed/metrics"
	"github.com/quillfeed/quillfeed/mockdata"
)

// ListQuery selects and orders a page of posts.
type ListQuery struct {
	Page           int
	Limit          int
	OrderBy        string
	OrderDirection string
	Category       string
	Tag            string
	Search         string
}

func (q ListQuery) params() url.Values {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.OrderBy != "" {
		params.Set("orderBy", q.OrderBy)
	}
	if q.OrderDirection != "" {
		params.Set("orderDirection", q.OrderDirection)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	return params
}

func (q ListQuery) filter() mockdata.Filter {
	return mockdata.Filter{Search: q.Search, Category: q.Category, Tag: q.Tag}
}

// SearchQuery drives the dedicated search endpoint.
type SearchQuery struct {
	Query     string
	Page      int
	Limit     int
	Category  string
	Tag       string
	Author    string
	DateFrom  string
	DateTo    string
	SortBy    string
	SortOrder string
}

func (q SearchQuery) params() url.Values {
	params := url.Values{}
	params.Set("q", q.Query)
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}
	if q.Author != "" {
		params.Set("author", q.Author)
	}
	if q.DateFrom != "" {
		params.Set("dateFrom", q.DateFrom)
	}
	if q.DateTo != "" {
		params.Set("dateTo", q.DateTo)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		params.Set("sortOrder", q.SortOrder)
	}
	return params
}

// projectPath builds a path under the project the request snapshot names.
func projectPath(projectID string, suffix string) string {
	return "/public/projects/" + url.PathEscape(projectID) + suffix
}

// ListPosts returns a page of published posts.
func (c *Client) ListPosts(ctx context.Context, q ListQuery, opts ...RequestOption) (blog.PostList, error) {
	pathFor := func(projectID string) string { return projectPath(projectID, "/posts") }
	return fetch(ctx, c, "listPosts", pathFor, q.params(), c.ttl.Lists, opts, func() (blog.PostList, bool) {
		return mockdata.PostsPage(q.Page, q.Limit, q.filter()), true
	})
}

// GetPostBySlug returns a single post addressed by its slug.
func (c *Client) GetPostBySlug(ctx context.Context, slug string, opts ...RequestOption) (blog.Post, error) {
	pathFor := func(projectID string) string { return projectPath(projectID, "/posts/"+url.PathEscape(slug)) }
	return fetch(ctx, c, "getPostBySlug", pathFor, nil, c.ttl.Post, opts, func() (blog.Post, bool) {
		return mockdata.PostBySlug(slug)
	})
}

// GetPostByID returns a single post addressed by its identifier.
func (c *Client) GetPostByID(ctx context.Context, postID string, opts ...RequestOption) (blog.Post, error) {
	pathFor := func(string) string { return "/public/posts/" + url.PathEscape(postID) }
	return fetch(ctx, c, "getPostById", pathFor, nil, c.ttl.Post, opts, func() (blog.Post, bool) {
		return mockdata.PostByID(postID)
	})
}

// GetMetadata returns the project-level descriptor.
func (c *Client) GetMetadata(ctx context.Context, opts ...RequestOption) (blog.Metadata, error) {
	pathFor := func(projectID string) string { return projectPath(projectID, "/metadata") }
	return fetch(ctx, c, "getMetadata", pathFor, nil, c.ttl.Metadata, opts, func() (blog.Metadata, bool) {
		return mockdata.Metadata(), true
	})
}

// GetCategories returns the project's categories with post counts.
func (c *Client) GetCategories(ctx context.Context, opts ...RequestOption) ([]blog.Category, error) {
	pathFor := func(projectID string) string { return projectPath(projectID, "/categories") }
	return fetch(ctx, c, "getCategories", pathFor, nil, c.ttl.Taxonomy, opts, func() ([]blog.Category, bool) {
		return mockdata.Categories(), true
	})
}

// GetTags returns the project's tags with post counts.
func (c *Client) GetTags(ctx context.Context, opts ...RequestOption) ([]blog.Tag, error) {
	pathFor := func(projectID string) string { return projectPath(projectID, "/tags") }
	return fetch(ctx, c, "getTags", pathFor, nil, c.ttl.Taxonomy, opts, func() ([]blog.Tag, bool) {
		return mockdata.Tags(), true
	})
}

// GetRelatedPosts returns posts sharing a category or tag with the given
// post.
func (c *Client) GetRelatedPosts(ctx context.Context, postID string, limit int, opts ...RequestOption) ([]blog.Post, error) {
	pathFor := func(projectID string) string {
		return projectPath(projectID, "/posts/"+url.PathEscape(postID)+"/related")
	}
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return fetch(ctx, c, "getRelatedPosts", pathFor, params, c.ttl.Lists, opts, func() ([]blog.Post, bool) {
		return mockdata.Related(postID, limit), true
	})
}

// SearchPosts runs a full-text search across the project's posts.
func (c *Client) SearchPosts(ctx context.Context, q SearchQuery, opts ...RequestOption) (blog.PostList, error) {
	pathFor := func(projectID string) string { return projectPath(projectID, "/search") }
	return fetch(ctx, c, "searchPosts", pathFor, q.params(), c.ttl.Lists, opts, func() (blog.PostList, bool) {
		return mockdata.PostsPage(q.Page, q.Limit, mockdata.Filter{Search: q.Query, Category: q.Category, Tag: q.Tag}), true
	})
}

// GetRecentPosts returns the most recently published posts.
func (c *Client) GetRecentPosts(ctx context.Context, limit int, opts ...RequestOption) ([]blog.Post, error) {
	pathFor := func(projectID string) string { return projectPath(projectID, "/recent") }
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return fetch(ctx, c, "getRecentPosts", pathFor, params, c.ttl.Lists, opts, func() ([]blog.Post, bool) {
		return mockdata.Recent(limit), true
	})
}

// GetPostsByCategory returns a page of posts belonging to the category.
func (c *Client) GetPostsByCategory(ctx context.Context, category string, q ListQuery, opts ...RequestOption) (blog.PostList, error) {
	pathFor := func(projectID string) string {
		return projectPath(projectID, "/categories/"+url.PathEscape(category)+"/posts")
	}
	return fetch(ctx, c, "getPostsByCategory", pathFor, q.params(), c.ttl.Lists, opts, func() (blog.PostList, bool) {
		filter := q.filter()
		filter.Category = category
		return mockdata.PostsPage(q.Page, q.Limit, filter), true
	})
}

// GetPostsByTag returns a page of posts carrying the tag.
func (c *Client) GetPostsByTag(ctx context.Context, tag string, q ListQuery, opts ...RequestOption) (blog.PostList, error) {
	pathFor := func(projectID string) string {
		return projectPath(projectID, "/tags/"+url.PathEscape(tag)+"/posts")
	}
	return fetch(ctx, c, "getPostsByTag", pathFor, q.params(), c.ttl.Lists, opts, func() (blog.PostList, bool) {
		filter := q.filter()
		filter.Tag = tag
		return mockdata.PostsPage(q.Page, q.Limit, filter), true
	})
}

// GetDesign fetches the project's public design document. There is no demo
// substitute; callers fall back to design.DefaultDocument on failure.
func (c *Client) GetDesign(ctx context.Context, opts ...RequestOption) (design.Document, error) {
	pathFor := func(projectID string) string { return "/blog-design/" + url.PathEscape(projectID) + "/public-preview" }
	return fetch[design.Document](ctx, c, "getDesign", pathFor, nil, c.ttl.Design, opts, nil)
}

// TrackView records a page view for the post. Fire-and-forget: failures are
// logged and never returned, and a missing session identifier is filled in.
func (c *Client) TrackView(ctx context.Context, postID string, view blog.ViewEvent) {
	if view.SessionID == "" {
		view.SessionID = uuid.NewString()
	}
	if view.UserAgent == "" {
		view.UserAgent = "quillfeed-go"
	}

	id := c.snapshot()
	path := "/public/posts/" + url.PathEscape(postID) + "/view"
	start := time.Now()
	_, status, err := c.doPost(ctx, id, path, view)
	if err != nil {
		if !IsCanceled(err) {
			c.logger.Warn("view tracking failed", slog.String("postId", postID), slog.Any("error", err))
		}
		c.metrics.ObserveRequest("trackView", metrics.RequestError, status, false, time.Since(start))
		return
	}
	c.metrics.ObserveRequest("trackView", metrics.RequestOK, status, false, time.Since(start))
}

// TrackEvent forwards a custom analytics event. No-op when analytics is
// disabled; failures are logged and swallowed.
func (c *Client) TrackEvent(ctx context.Context, event blog.AnalyticsEvent) {
	if !c.analytics {
		return
	}

	id := c.snapshot()
	event.ProjectID = id.projectID
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	start := time.Now()
	_, status, err := c.doPost(ctx, id, "/public/analytics/event", event)
	if err != nil {
		if !IsCanceled(err) {
			c.logger.Warn("analytics event failed", slog.String("event", event.Name), slog.Any("error", err))
		}
		c.metrics.ObserveRequest("trackEvent", metrics.RequestError, status, false, time.Since(start))
		return
	}
	c.metrics.ObserveRequest("trackEvent", metrics.RequestOK, status, false, time.Since(start))
}

// HealthCheck reports whether the content API answers its health endpoint.
func (c *Client) HealthCheck(ctx context.Context) bool {
	id := c.snapshot()
	_, status, err := c.doGet(ctx, id, "/health", nil)
	if err != nil {
		// A health endpoint may answer outside the envelope contract; any
		// 2xx counts as healthy.
		return status >= 200 && status < 300
	}
	return true
}
