package mockdata

import (
	"sort"
	"strings"

	"github.com/quillfeed/quillfeed/blog"
)

// Filter narrows the demo dataset the same way the live endpoints would:
// case-insensitive substring search over title, excerpt, content and tags;
// case-insensitive exact match on category and tag.
type Filter struct {
	Search   string
	Category string
	Tag      string
}

// PostsPage filters, sorts by publication time descending, and paginates the
// demo dataset.
func PostsPage(page, limit int, filter Filter) blog.PostList {
	matched := make([]blog.Post, 0, len(posts))
	for _, post := range posts {
		if matches(post, filter) {
			matched = append(matched, post)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishedAt.After(matched[j].PublishedAt)
	})

	pagination := PageFor(page, limit, len(matched))
	start := (pagination.Page - 1) * pagination.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pagination.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return blog.PostList{Posts: matched[start:end], Pagination: pagination}
}

// Related returns up to limit posts sharing a category or tag with the given
// post, newest first.
func Related(postID string, limit int) []blog.Post {
	base, ok := PostByID(postID)
	if !ok {
		return nil
	}
	related := make([]blog.Post, 0, limit)
	for _, candidate := range Posts() {
		if candidate.ID == base.ID {
			continue
		}
		if sharesAny(candidate.Categories, base.Categories) || sharesAny(candidate.Tags, base.Tags) {
			related = append(related, candidate)
		}
	}
	sort.SliceStable(related, func(i, j int) bool {
		return related[i].PublishedAt.After(related[j].PublishedAt)
	})
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related
}

// Recent returns the newest posts, up to limit.
func Recent(limit int) []blog.Post {
	page := PostsPage(1, limit, Filter{})
	return page.Posts
}

// PageFor computes the pagination window for a total, clamping page and limit
// to sane values.
func PageFor(page, limit, total int) blog.Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return blog.Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

func matches(post blog.Post, filter Filter) bool {
	if filter.Category != "" && !containsFold(post.Categories, filter.Category) {
		return false
	}
	if filter.Tag != "" && !containsFold(post.Tags, filter.Tag) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Excerpt), needle) &&
			!strings.Contains(strings.ToLower(post.Content), needle) &&
			!anyContainsFold(post.Tags, needle) {
			return false
		}
	}
	return true
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}

func anyContainsFold(values []string, needle string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

func sharesAny(a, b []string) bool {
	for _, value := range a {
		if containsFold(b, value) {
			return true
		}
	}
	return false
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func countTaxonomy[T any](extract func(blog.Post) []string, build func(name, slug string, count int) T) []T {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, post := range posts {
		for _, name := range extract(post) {
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	sort.Strings(order)
	out := make([]T, 0, len(order))
	for _, name := range order {
		out = append(out, build(name, slugify(name), counts[name]))
	}
	return out
}
