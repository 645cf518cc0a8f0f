// Package mockdata holds the fixed dataset served for the reserved demo
// project when the content API is unreachable. The dataset is hand-authored
// and deterministic so integrations can be demonstrated offline.
package mockdata

import (
	"time"

	"github.com/quillfeed/quillfeed/blog"
)

// ProjectID is the reserved demo identity. Mock substitution is keyed on this
// exact value and must never trigger for any other project.
const ProjectID = "demo-project"

func date(value string) time.Time {
	parsed, _ := time.Parse(time.RFC3339, value)
	return parsed
}

var authors = map[string]blog.Author{
	"maya":  {Name: "Maya Lindqvist", Avatar: "https://cdn.quillfeed.com/demo/avatars/maya.png"},
	"tomas": {Name: "Tomas Herrera", Avatar: "https://cdn.quillfeed.com/demo/avatars/tomas.png"},
	"aiko":  {Name: "Aiko Tanaka", Avatar: "https://cdn.quillfeed.com/demo/avatars/aiko.png"},
}

var posts = []blog.Post{
	{
		ID:            "post-001",
		Title:         "Server Components Change How We Ship React",
		Slug:          "server-components-change-react",
		Excerpt:       "Why moving rendering back to the server reshapes data fetching.",
		Content:       "React server components move data fetching next to the data source and cut client bundles dramatically.",
		FeaturedImage: "https://cdn.quillfeed.com/demo/posts/react-server.png",
		Author:        authors["maya"],
		Categories:    []string{"Engineering"},
		Tags:          []string{"react", "frontend"},
		PublishedAt:   date("2025-07-28T09:00:00Z"),
		UpdatedAt:     date("2025-08-02T10:30:00Z"),
		ReadingTime:   8,
	},
	{
		ID:            "post-002",
		Title:         "A Field Guide to Go Context Cancellation",
		Slug:          "go-context-cancellation-field-guide",
		Excerpt:       "Patterns for propagating deadlines without leaking goroutines.",
		Content:       "Every blocking call takes a context. Cancel early, cancel often, and let the last request win.",
		FeaturedImage: "https://cdn.quillfeed.com/demo/posts/go-context.png",
		Author:        authors["tomas"],
		Categories:    []string{"Engineering"},
		Tags:          []string{"go", "backend"},
		PublishedAt:   date("2025-07-14T08:00:00Z"),
		ReadingTime:   11,
	},
	{
		ID:            "post-003",
		Title:         "Designing Readable Dark Themes",
		Slug:          "designing-readable-dark-themes",
		Excerpt:       "Contrast budgets, elevation, and why pure black fails.",
		Content:       "Dark themes live or die on contrast ratios. Start from the text color and work outward.",
		FeaturedImage: "https://cdn.quillfeed.com/demo/posts/dark-themes.png",
		Author:        authors["aiko"],
		Categories:    []string{"Design"},
		Tags:          []string{"css", "design-systems"},
		PublishedAt:   date("2025-08-11T12:00:00Z"),
		ReadingTime:   6,
	},
	{
		ID:            "post-004",
		Title:         "Migrating a Legacy Dashboard to React Without a Rewrite",
		Slug:          "migrating-legacy-dashboard-react",
		Excerpt:       "Strangler-pattern lessons from a year-long incremental migration.",
		Content:       "We embedded React islands inside the legacy pages and retired jQuery widgets one release at a time.",
		FeaturedImage: "https://cdn.quillfeed.com/demo/posts/migration.png",
		Author:        authors["maya"],
		Categories:    []string{"Engineering", "Case Studies"},
		Tags:          []string{"react", "migration"},
		PublishedAt:   date("2025-06-30T15:00:00Z"),
		ReadingTime:   9,
	},
	{
		ID:            "post-005",
		Title:         "What Founders Misunderstand About Content SEO",
		Slug:          "founders-misunderstand-content-seo",
		Excerpt:       "Structured data beats keyword stuffing every quarter.",
		Content:       "Search engines reward consistent metadata and honest structure, not volume.",
		FeaturedImage: "https://cdn.quillfeed.com/demo/posts/seo.png",
		Author:        authors["aiko"],
		Categories:    []string{"Growth"},
		Tags:          []string{"seo", "content"},
		PublishedAt:   date("2025-08-04T07:30:00Z"),
		ReadingTime:   5,
	},
	{
		ID:            "post-006",
		Title:         "Audio Readers Are the Most Underrated Blog Feature",
		Slug:          "audio-readers-underrated-feature",
		Excerpt:       "Text-to-speech keeps readers through their commute.",
		Content:       "Adding an audio reader doubled average session length for commuting readers.",
		FeaturedImage: "https://cdn.quillfeed.com/demo/posts/audio.png",
		Author:        authors["tomas"],
		Categories:    []string{"Product"},
		Tags:          []string{"accessibility", "audio"},
		PublishedAt:   date("2025-08-18T06:00:00Z"),
		ReadingTime:   4,
	},
}

// Posts returns a copy of the full demo dataset.
func Posts() []blog.Post {
	out := make([]blog.Post, len(posts))
	copy(out, posts)
	return out
}

// PostBySlug returns the demo post with the given slug.
func PostBySlug(slug string) (blog.Post, bool) {
	for _, post := range posts {
		if post.Slug == slug {
			return post, true
		}
	}
	return blog.Post{}, false
}

// PostByID returns the demo post with the given id.
func PostByID(id string) (blog.Post, bool) {
	for _, post := range posts {
		if post.ID == id {
			return post, true
		}
	}
	return blog.Post{}, false
}

// Categories aggregates the category taxonomy over the dataset.
func Categories() []blog.Category {
	return countTaxonomy(func(p blog.Post) []string { return p.Categories }, func(name, slug string, count int) blog.Category {
		return blog.Category{Name: name, Slug: slug, Count: count}
	})
}

// Tags aggregates the tag taxonomy over the dataset.
func Tags() []blog.Tag {
	return countTaxonomy(func(p blog.Post) []string { return p.Tags }, func(name, slug string, count int) blog.Tag {
		return blog.Tag{Name: name, Slug: slug, Count: count}
	})
}

// Metadata returns the demo project's descriptor.
func Metadata() blog.Metadata {
	return blog.Metadata{
		Title:       "Quillfeed Demo Blog",
		Description: "A deterministic sample blog used to evaluate the SDK without credentials.",
		Language:    "en",
		SiteURL:     "https://demo.quillfeed.com",
		Logo:        "https://cdn.quillfeed.com/demo/logo.svg",
		Social: blog.SocialLinks{
			Twitter: "https://twitter.com/quillfeed",
			GitHub:  "https://github.com/quillfeed",
		},
	}
}
