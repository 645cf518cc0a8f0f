package design

func ptr[T any](v T) *T { return &v }

// DefaultDocument is the hardcoded minimal design used when the live fetch
// fails and no cached document exists. It keeps the blog renderable with a
// neutral palette and a single-column list; component visibility falls back
// to the all-true defaults because no sections are set.
func DefaultDocument() *Document {
	return &Document{
		Theme: &ThemeSection{
			Colors: map[string]string{
				"primary":    "#1a1a1a",
				"accent":     "#2563eb",
				"background": "#ffffff",
				"text":       "#1f2937",
			},
		},
		Typography: &TypographySection{
			DefaultFont: ptr("system-ui"),
		},
		Layout: &LayoutSection{
			Type:        ptr("list"),
			Columns:     ptr(1),
			Spacing:     ptr("normal"),
			MaxWidth:    ptr("768px"),
			ShowSidebar: ptr(false),
		},
	}
}
