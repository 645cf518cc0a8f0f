package design

// CardVisibility is the resolved flag set for a post-card view.
type CardVisibility struct {
	ShowAuthor        bool
	ShowDate          bool
	ShowCategories    bool
	ShowTags          bool
	ShowExcerpt       bool
	ShowFeaturedImage bool
	ShowReadingTime   bool
}

// DetailVisibility is the resolved flag set for a post-detail view.
type DetailVisibility struct {
	ShowAuthor        bool
	ShowDate          bool
	ShowFeaturedImage bool
	ShowShareButtons  bool
	ShowRelatedPosts  bool
}

// DefaultCardVisibility shows every card element.
func DefaultCardVisibility() CardVisibility {
	return CardVisibility{
		ShowAuthor:        true,
		ShowDate:          true,
		ShowCategories:    true,
		ShowTags:          true,
		ShowExcerpt:       true,
		ShowFeaturedImage: true,
		ShowReadingTime:   true,
	}
}

// DefaultDetailVisibility shows every detail element.
func DefaultDetailVisibility() DetailVisibility {
	return DetailVisibility{
		ShowAuthor:        true,
		ShowDate:          true,
		ShowFeaturedImage: true,
		ShowShareButtons:  true,
		ShowRelatedPosts:  true,
	}
}

// ResolveCardVisibility resolves the post-card flags from a document,
// falling back to all-true when the document or its section is absent.
func ResolveCardVisibility(doc *Document) CardVisibility {
	resolved := DefaultCardVisibility()
	if doc == nil || doc.Components == nil || doc.Components.PostCard == nil {
		return resolved
	}
	section := doc.Components.PostCard
	resolved.ShowAuthor = pick(resolved.ShowAuthor, section.ShowAuthor)
	resolved.ShowDate = pick(resolved.ShowDate, section.ShowDate)
	resolved.ShowCategories = pick(resolved.ShowCategories, section.ShowCategories)
	resolved.ShowTags = pick(resolved.ShowTags, section.ShowTags)
	resolved.ShowExcerpt = pick(resolved.ShowExcerpt, section.ShowExcerpt)
	resolved.ShowFeaturedImage = pick(resolved.ShowFeaturedImage, section.ShowFeaturedImage)
	resolved.ShowReadingTime = pick(resolved.ShowReadingTime, section.ShowReadingTime)
	return resolved
}

// ResolveDetailVisibility resolves the post-detail flags from a document,
// falling back to all-true when the document or its section is absent.
func ResolveDetailVisibility(doc *Document) DetailVisibility {
	resolved := DefaultDetailVisibility()
	if doc == nil || doc.Components == nil || doc.Components.PostDetail == nil {
		return resolved
	}
	section := doc.Components.PostDetail
	resolved.ShowAuthor = pick(resolved.ShowAuthor, section.ShowAuthor)
	resolved.ShowDate = pick(resolved.ShowDate, section.ShowDate)
	resolved.ShowFeaturedImage = pick(resolved.ShowFeaturedImage, section.ShowFeaturedImage)
	resolved.ShowShareButtons = pick(resolved.ShowShareButtons, section.ShowShareButtons)
	resolved.ShowRelatedPosts = pick(resolved.ShowRelatedPosts, section.ShowRelatedPosts)
	return resolved
}
