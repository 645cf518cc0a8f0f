package design

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveCardVisibilityDefaults(t *testing.T) {
	require.Equal(t, DefaultCardVisibility(), ResolveCardVisibility(nil))
	require.Equal(t, DefaultCardVisibility(), ResolveCardVisibility(&Document{}))
	require.Equal(t, DefaultCardVisibility(), ResolveCardVisibility(&Document{Components: &ComponentsSection{}}))
}

func TestResolveCardVisibilityOverrides(t *testing.T) {
	doc := &Document{
		Components: &ComponentsSection{
			PostCard: &CardVisibilitySection{
				ShowExcerpt: ptr(false),
				ShowTags:    ptr(false),
			},
		},
	}
	resolved := ResolveCardVisibility(doc)
	require.False(t, resolved.ShowExcerpt)
	require.False(t, resolved.ShowTags)
	require.True(t, resolved.ShowAuthor)
	require.True(t, resolved.ShowFeaturedImage)
}

func TestResolveDetailVisibilityOverrides(t *testing.T) {
	require.Equal(t, DefaultDetailVisibility(), ResolveDetailVisibility(nil))

	doc := &Document{
		Components: &ComponentsSection{
			PostDetail: &DetailVisibilitySection{
				ShowShareButtons: ptr(false),
			},
		},
	}
	resolved := ResolveDetailVisibility(doc)
	require.False(t, resolved.ShowShareButtons)
	require.True(t, resolved.ShowRelatedPosts)

	// Card overrides never leak into the detail shape.
	cardOnly := &Document{
		Components: &ComponentsSection{
			PostCard: &CardVisibilitySection{ShowAuthor: ptr(false)},
		},
	}
	require.Equal(t, DefaultDetailVisibility(), ResolveDetailVisibility(cardOnly))
}
