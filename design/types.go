// Package design models the remotely managed design document and its merge
// with the host application's static theme. Document fields are pointers so a
// field left out of the fetched JSON is distinguishable from an explicit
// zero; merge precedence depends on that distinction.
package design

// ThemeConfig is the statically configured theme supplied by the host
// application. It is also the shape of the effective configuration produced
// by Merge, so an absent document passes the static theme through untouched.
type ThemeConfig struct {
	Colors     map[string]string `koanf:"colors" json:"colors,omitempty"`
	Typography Typography        `koanf:"typography" json:"typography"`
	Layout     Layout            `koanf:"layout" json:"layout"`
	CTAButtons []CTAButton       `koanf:"ctaButtons" json:"ctaButtons,omitempty"`
	CustomCSS  string            `koanf:"customCss" json:"customCss,omitempty"`
	Settings   BlogSettings      `koanf:"settings" json:"settings"`
}

// Typography selects fonts for headings, body text, and everything else.
type Typography struct {
	HeadingFont string `koanf:"headingFont" json:"headingFont,omitempty"`
	BodyFont    string `koanf:"bodyFont" json:"bodyFont,omitempty"`
	DefaultFont string `koanf:"defaultFont" json:"defaultFont,omitempty"`
}

// Layout describes the list arrangement of the rendered blog.
type Layout struct {
	Type            string `koanf:"type" json:"type,omitempty"`
	Columns         int    `koanf:"columns" json:"columns,omitempty"`
	Spacing         string `koanf:"spacing" json:"spacing,omitempty"`
	MaxWidth        string `koanf:"maxWidth" json:"maxWidth,omitempty"`
	ShowSidebar     bool   `koanf:"showSidebar" json:"showSidebar"`
	SidebarPosition string `koanf:"sidebarPosition" json:"sidebarPosition,omitempty"`
}

// CTAButton is one call-to-action rendered alongside the blog chrome.
type CTAButton struct {
	Enabled bool   `koanf:"enabled" json:"enabled"`
	Text    string `koanf:"text" json:"text"`
	URL     string `koanf:"url" json:"url"`
	Style   string `koanf:"style" json:"style,omitempty"`
	Size    string `koanf:"size" json:"size,omitempty"`
}

// AudioReaderSettings configures the text-to-speech reader.
type AudioReaderSettings struct {
	Enabled bool    `koanf:"enabled" json:"enabled"`
	Voice   string  `koanf:"voice" json:"voice,omitempty"`
	Speed   float64 `koanf:"speed" json:"speed,omitempty"`
}

// SideSectionSettings toggles the widgets shown beside post content.
type SideSectionSettings struct {
	ShowRecentPosts bool `koanf:"showRecentPosts" json:"showRecentPosts"`
	ShowCategories  bool `koanf:"showCategories" json:"showCategories"`
	ShowTags        bool `koanf:"showTags" json:"showTags"`
}

// ReadingSettings tunes the reading experience of the post detail view.
type ReadingSettings struct {
	ShowProgressBar bool `koanf:"showProgressBar" json:"showProgressBar"`
	ShowReadingTime bool `koanf:"showReadingTime" json:"showReadingTime"`
}

// SEOSettings toggles SEO tag emission.
type SEOSettings struct {
	MetaTags bool `koanf:"metaTags" json:"metaTags"`
	JSONLD   bool `koanf:"jsonLd" json:"jsonLd"`
}

// SocialSettings toggles social affordances.
type SocialSettings struct {
	ShowShareButtons bool `koanf:"showShareButtons" json:"showShareButtons"`
	ShowFollowLinks  bool `koanf:"showFollowLinks" json:"showFollowLinks"`
}

// BlogSettings is the nested settings bag of the design document.
type BlogSettings struct {
	AudioReader  AudioReaderSettings `koanf:"audioReader" json:"audioReader"`
	SideSections SideSectionSettings `koanf:"sideSections" json:"sideSections"`
	Reading      ReadingSettings     `koanf:"reading" json:"reading"`
	SEO          SEOSettings         `koanf:"seo" json:"seo"`
	Social       SocialSettings      `koanf:"social" json:"social"`
	ShowBranding bool                `koanf:"showBranding" json:"showBranding"`
}

// Document is the design document fetched from the content API (or read from
// the persisted design cache). Every level is optional.
type Document struct {
	Theme      *ThemeSection      `json:"theme,omitempty"`
	Typography *TypographySection `json:"typography,omitempty"`
	Layout     *LayoutSection     `json:"layout,omitempty"`
	Components *ComponentsSection `json:"components,omitempty"`
	CTAButtons []CTAButton        `json:"ctaButtons,omitempty"`
	CustomCSS  *string            `json:"customCss,omitempty"`
	Settings   *SettingsSection   `json:"blogSettings,omitempty"`
}

// ThemeSection carries the named custom colors.
type ThemeSection struct {
	Colors map[string]string `json:"colors,omitempty"`
}

// TypographySection mirrors Typography with optional fields.
type TypographySection struct {
	HeadingFont *string `json:"headingFont,omitempty"`
	BodyFont    *string `json:"bodyFont,omitempty"`
	DefaultFont *string `json:"defaultFont,omitempty"`
}

// LayoutSection mirrors Layout with optional fields.
type LayoutSection struct {
	Type            *string `json:"type,omitempty"`
	Columns         *int    `json:"columns,omitempty"`
	Spacing         *string `json:"spacing,omitempty"`
	MaxWidth        *string `json:"maxWidth,omitempty"`
	ShowSidebar     *bool   `json:"showSidebar,omitempty"`
	SidebarPosition *string `json:"sidebarPosition,omitempty"`
}

// ComponentsSection holds the per-component visibility flags. The post-card
// and post-detail shapes differ deliberately: cards summarize, details share.
type ComponentsSection struct {
	PostCard   *CardVisibilitySection   `json:"postCard,omitempty"`
	PostDetail *DetailVisibilitySection `json:"postDetail,omitempty"`
}

// CardVisibilitySection toggles the elements of a post-card view.
type CardVisibilitySection struct {
	ShowAuthor        *bool `json:"showAuthor,omitempty"`
	ShowDate          *bool `json:"showDate,omitempty"`
	ShowCategories    *bool `json:"showCategories,omitempty"`
	ShowTags          *bool `json:"showTags,omitempty"`
	ShowExcerpt       *bool `json:"showExcerpt,omitempty"`
	ShowFeaturedImage *bool `json:"showFeaturedImage,omitempty"`
	ShowReadingTime   *bool `json:"showReadingTime,omitempty"`
}

// DetailVisibilitySection toggles the elements of a post-detail view.
type DetailVisibilitySection struct {
	ShowAuthor        *bool `json:"showAuthor,omitempty"`
	ShowDate          *bool `json:"showDate,omitempty"`
	ShowFeaturedImage *bool `json:"showFeaturedImage,omitempty"`
	ShowShareButtons  *bool `json:"showShareButtons,omitempty"`
	ShowRelatedPosts  *bool `json:"showRelatedPosts,omitempty"`
}

// SettingsSection mirrors BlogSettings with optional fields at every level.
type SettingsSection struct {
	AudioReader  *AudioReaderSection  `json:"audioReader,omitempty"`
	SideSections *SideSectionsSection `json:"sideSections,omitempty"`
	Reading      *ReadingSection      `json:"reading,omitempty"`
	SEO          *SEOSection          `json:"seo,omitempty"`
	Social       *SocialSection       `json:"social,omitempty"`
	ShowBranding *bool                `json:"showBranding,omitempty"`
}

// AudioReaderSection mirrors AudioReaderSettings with optional fields.
type AudioReaderSection struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Voice   *string  `json:"voice,omitempty"`
	Speed   *float64 `json:"speed,omitempty"`
}

// SideSectionsSection mirrors SideSectionSettings with optional fields.
type SideSectionsSection struct {
	ShowRecentPosts *bool `json:"showRecentPosts,omitempty"`
	ShowCategories  *bool `json:"showCategories,omitempty"`
	ShowTags        *bool `json:"showTags,omitempty"`
}

// ReadingSection mirrors ReadingSettings with optional fields.
type ReadingSection struct {
	ShowProgressBar *bool `json:"showProgressBar,omitempty"`
	ShowReadingTime *bool `json:"showReadingTime,omitempty"`
}

// SEOSection mirrors SEOSettings with optional fields.
type SEOSection struct {
	MetaTags *bool `json:"metaTags,omitempty"`
	JSONLD   *bool `json:"jsonLd,omitempty"`
}

// SocialSection mirrors SocialSettings with optional fields.
type SocialSection struct {
	ShowShareButtons *bool `json:"showShareButtons,omitempty"`
	ShowFollowLinks  *bool `json:"showFollowLinks,omitempty"`
}
