package design

// Merge overlays a fetched design document onto the static theme. A value the
// document defines wins over the static theme; the static value is retained
// only where the document leaves the field absent. A nil document returns the
// static theme unchanged, without touching any field.
func Merge(theme ThemeConfig, doc *Document) ThemeConfig {
	if doc == nil {
		return theme
	}
	merged := theme
	merged.Colors = mergeColors(theme.Colors, doc.Theme)
	merged.Typography = mergeTypography(theme.Typography, doc.Typography)
	merged.Layout = mergeLayout(theme.Layout, doc.Layout)
	merged.CTAButtons = mergeButtons(theme.CTAButtons, doc.CTAButtons)
	merged.CustomCSS = pick(theme.CustomCSS, doc.CustomCSS)
	merged.Settings = mergeSettings(theme.Settings, doc.Settings)
	return merged
}

// pick returns the override when present, the fallback otherwise.
func pick[T any](fallback T, override *T) T {
	if override == nil {
		return fallback
	}
	return *override
}

func mergeColors(fallback map[string]string, section *ThemeSection) map[string]string {
	if section == nil || section.Colors == nil {
		return fallback
	}
	merged := make(map[string]string, len(fallback)+len(section.Colors))
	for name, value := range fallback {
		merged[name] = value
	}
	for name, value := range section.Colors {
		merged[name] = value
	}
	return merged
}

func mergeTypography(fallback Typography, section *TypographySection) Typography {
	if section == nil {
		return fallback
	}
	return Typography{
		HeadingFont: pick(fallback.HeadingFont, section.HeadingFont),
		BodyFont:    pick(fallback.BodyFont, section.BodyFont),
		DefaultFont: pick(fallback.DefaultFont, section.DefaultFont),
	}
}

func mergeLayout(fallback Layout, section *LayoutSection) Layout {
	if section == nil {
		return fallback
	}
	return Layout{
		Type:            pick(fallback.Type, section.Type),
		Columns:         pick(fallback.Columns, section.Columns),
		Spacing:         pick(fallback.Spacing, section.Spacing),
		MaxWidth:        pick(fallback.MaxWidth, section.MaxWidth),
		ShowSidebar:     pick(fallback.ShowSidebar, section.ShowSidebar),
		SidebarPosition: pick(fallback.SidebarPosition, section.SidebarPosition),
	}
}

// mergeButtons replaces the whole list when the document defines one; button
// lists are not merged element-wise.
func mergeButtons(fallback, override []CTAButton) []CTAButton {
	if override == nil {
		return fallback
	}
	return override
}

func mergeSettings(fallback BlogSettings, section *SettingsSection) BlogSettings {
	if section == nil {
		return fallback
	}
	merged := fallback
	if ar := section.AudioReader; ar != nil {
		merged.AudioReader = AudioReaderSettings{
			Enabled: pick(fallback.AudioReader.Enabled, ar.Enabled),
			Voice:   pick(fallback.AudioReader.Voice, ar.Voice),
			Speed:   pick(fallback.AudioReader.Speed, ar.Speed),
		}
	}
	if ss := section.SideSections; ss != nil {
		merged.SideSections = SideSectionSettings{
			ShowRecentPosts: pick(fallback.SideSections.ShowRecentPosts, ss.ShowRecentPosts),
			ShowCategories:  pick(fallback.SideSections.ShowCategories, ss.ShowCategories),
			ShowTags:        pick(fallback.SideSections.ShowTags, ss.ShowTags),
		}
	}
	if rd := section.Reading; rd != nil {
		merged.Reading = ReadingSettings{
			ShowProgressBar: pick(fallback.Reading.ShowProgressBar, rd.ShowProgressBar),
			ShowReadingTime: pick(fallback.Reading.ShowReadingTime, rd.ShowReadingTime),
		}
	}
	if seo := section.SEO; seo != nil {
		merged.SEO = SEOSettings{
			MetaTags: pick(fallback.SEO.MetaTags, seo.MetaTags),
			JSONLD:   pick(fallback.SEO.JSONLD, seo.JSONLD),
		}
	}
	if social := section.Social; social != nil {
		merged.Social = SocialSettings{
			ShowShareButtons: pick(fallback.Social.ShowShareButtons, social.ShowShareButtons),
			ShowFollowLinks:  pick(fallback.Social.ShowFollowLinks, social.ShowFollowLinks),
		}
	}
	merged.ShowBranding = pick(fallback.ShowBranding, section.ShowBranding)
	return merged
}
