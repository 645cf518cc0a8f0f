// Package blog defines the wire types exchanged with the content API.
package blog

import (
	"encoding/json"
	"time"
)

// Author identifies the writer attributed to a post.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Post is a single published article as returned by the content API.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Content       string    `json:"content,omitempty"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	Author        Author    `json:"author"`
	Categories    []string  `json:"categories,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	PublishedAt   time.Time `json:"publishedAt"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
	ReadingTime   int       `json:"readingTime,omitempty"`
}

// Pagination describes the window a list response covers.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// PostList pairs a page of posts with its pagination window.
type PostList struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// Category is a taxonomy entry with its post count.
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Tag is a taxonomy entry with its post count.
type Tag struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// SocialLinks carries the project's public profiles for metadata consumers.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Metadata is the project-level descriptor consumed by SEO tag builders.
type Metadata struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Language    string      `json:"language,omitempty"`
	SiteURL     string      `json:"siteUrl,omitempty"`
	Logo        string      `json:"logo,omitempty"`
	Social      SocialLinks `json:"social,omitempty"`
}

// ViewEvent is the payload posted when a reader opens a post.
type ViewEvent struct {
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer,omitempty"`
	SessionID string `json:"sessionId"`
	Country   string `json:"country,omitempty"`
	Region    string `json:"region,omitempty"`
	City      string `json:"city,omitempty"`
}

// AnalyticsEvent is a custom event forwarded to the analytics collector. The
// client stamps ProjectID and Timestamp before sending.
type AnalyticsEvent struct {
	Name       string         `json:"event"`
	Properties map[string]any `json:"properties,omitempty"`
	ProjectID  string         `json:"projectId,omitempty"`
	Timestamp  time.Time      `json:"timestamp,omitzero"`
}

// Envelope is the uniform response wrapper used by every API endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *EnvelopeError  `json:"error,omitempty"`
}

// EnvelopeError is the nested error object carried by failed envelopes.
type EnvelopeError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
