package mockdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillfeed/quillfeed/blog"
)

func TestPostsPageSearchFiltersAndSorts(t *testing.T) {
	page := PostsPage(1, 10, Filter{Search: "react"})

	require.NotEmpty(t, page.Posts)
	for _, post := range page.Posts {
		haystack := strings.ToLower(post.Title + " " + post.Excerpt + " " + post.Content + " " + strings.Join(post.Tags, " "))
		require.Contains(t, haystack, "react", "post %s should match the search", post.ID)
	}
	for i := 1; i < len(page.Posts); i++ {
		require.False(t, page.Posts[i].PublishedAt.After(page.Posts[i-1].PublishedAt),
			"posts must be sorted by publishedAt descending")
	}
	require.Equal(t, len(page.Posts), page.Pagination.Total)

	// Case-insensitive: the same query uppercased selects the same set.
	upper := PostsPage(1, 10, Filter{Search: "REACT"})
	require.Equal(t, page.Posts, upper.Posts)
}

func TestPostsPageCategoryAndTagExactMatch(t *testing.T) {
	byCategory := PostsPage(1, 10, Filter{Category: "engineering"})
	require.NotEmpty(t, byCategory.Posts)
	for _, post := range byCategory.Posts {
		require.Contains(t, lowered(post.Categories), "engineering")
	}

	byTag := PostsPage(1, 10, Filter{Tag: "GO"})
	require.NotEmpty(t, byTag.Posts)
	for _, post := range byTag.Posts {
		require.Contains(t, lowered(post.Tags), "go")
	}

	// Substrings do not match taxonomy filters.
	require.Empty(t, PostsPage(1, 10, Filter{Category: "engineer"}).Posts)
}

func TestPostsPagePagination(t *testing.T) {
	all := PostsPage(1, 100, Filter{})
	total := all.Pagination.Total
	require.Equal(t, len(Posts()), total)

	first := PostsPage(1, 2, Filter{})
	second := PostsPage(2, 2, Filter{})
	require.Len(t, first.Posts, 2)
	require.Len(t, second.Posts, 2)
	require.NotEqual(t, first.Posts[0].ID, second.Posts[0].ID)
	require.Equal(t, (total+1)/2, first.Pagination.Pages)

	// Out-of-range pages return an empty slice, not an error.
	require.Empty(t, PostsPage(99, 2, Filter{}).Posts)
}

func TestPageFor(t *testing.T) {
	require.Equal(t, blog.Pagination{Total: 25, Page: 2, Limit: 10, Pages: 3}, PageFor(2, 10, 25))
	require.Equal(t, blog.Pagination{Total: 0, Page: 1, Limit: 10, Pages: 0}, PageFor(0, 0, 0))
	require.Equal(t, blog.Pagination{Total: 10, Page: 1, Limit: 10, Pages: 1}, PageFor(1, 10, 10))
}

func TestLookupsAndTaxonomy(t *testing.T) {
	post, ok := PostBySlug("go-context-cancellation-field-guide")
	require.True(t, ok)
	require.Equal(t, "post-002", post.ID)

	_, ok = PostBySlug("missing")
	require.False(t, ok)

	byID, ok := PostByID("post-003")
	require.True(t, ok)
	require.Equal(t, "designing-readable-dark-themes", byID.Slug)

	categories := Categories()
	require.NotEmpty(t, categories)
	for _, category := range categories {
		require.NotZero(t, category.Count)
		require.NotContains(t, category.Slug, " ")
	}

	tags := Tags()
	require.NotEmpty(t, tags)
}

func TestRelatedAndRecent(t *testing.T) {
	related := Related("post-001", 2)
	require.NotEmpty(t, related)
	require.LessOrEqual(t, len(related), 2)
	for _, post := range related {
		require.NotEqual(t, "post-001", post.ID)
	}

	require.Empty(t, Related("missing", 3))

	recent := Recent(3)
	require.Len(t, recent, 3)
	for i := 1; i < len(recent); i++ {
		require.False(t, recent[i].PublishedAt.After(recent[i-1].PublishedAt))
	}
}

func lowered(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.ToLower(value)
	}
	return out
}
