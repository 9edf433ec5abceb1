package template

import (
	"strings"

	"github.com/coolbeans/draftsman/pkg/variables"
)

// Layout is the caller-supplied presentation policy for rendered output.
// It affects spacing only, never which sections appear.
type Layout struct {
	// IncludeNames emits each section's name above its content.
	IncludeNames bool

	// NameSeparator sits between a section name and its content.
	NameSeparator string

	// SectionSeparator sits between consecutive sections.
	SectionSeparator string
}

// DefaultLayout renders names followed by content with blank-line spacing.
func DefaultLayout() Layout {
	return Layout{
		IncludeNames:     true,
		NameSeparator:    "\n\n",
		SectionSeparator: "\n\n",
	}
}

// RenderedSection is one section after inclusion and substitution.
type RenderedSection struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// RenderSections applies the inclusion rule and substitutes values into
// each surviving section's name and content, in template order. Rendering
// holds no state and is idempotent for value sets free of nested tokens.
func RenderSections(t *Template, values map[string]string) []RenderedSection {
	rendered := make([]RenderedSection, 0, len(t.Sections))
	for _, sec := range t.Sections {
		if !variables.IncludeSection(sec.Required, sec.Condition, values) {
			continue
		}
		rendered = append(rendered, RenderedSection{
			ID:      sec.ID,
			Name:    variables.Substitute(sec.Name, values),
			Content: variables.Substitute(sec.Content, values),
		})
	}
	return rendered
}

// Render composes the included sections into final prose per the layout.
func Render(t *Template, values map[string]string, layout Layout) string {
	if layout.SectionSeparator == "" {
		layout.SectionSeparator = "\n\n"
	}
	if layout.NameSeparator == "" {
		layout.NameSeparator = "\n\n"
	}

	parts := make([]string, 0, len(t.Sections))
	for _, sec := range RenderSections(t, values) {
		if layout.IncludeNames && sec.Name != "" {
			parts = append(parts, sec.Name+layout.NameSeparator+sec.Content)
		} else {
			parts = append(parts, sec.Content)
		}
	}
	return strings.Join(parts, layout.SectionSeparator)
}
