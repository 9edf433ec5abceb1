package template

import (
	"fmt"

	"github.com/coolbeans/draftsman/pkg/normalize"
	"github.com/coolbeans/draftsman/pkg/section"
)

// Import ingests an existing filing and recovers its structure as an
// editable template: the text is normalized for its source kind, split into
// sections, and the referenced merge fields become the declared variable
// list. A frontmatter "title" overrides the supplied name when present.
func Import(raw string, kind normalize.SourceKind, name string) (*Template, error) {
	result, err := normalize.Normalize(raw, kind)
	if err != nil {
		return nil, fmt.Errorf("normalizing source: %w", err)
	}

	if title := result.Metadata["title"]; title != "" {
		name = title
	}
	if name == "" {
		name = "Imported Filing"
	}

	t := New(name)
	t.Sections = section.Detect(result.Text)
	if t.Sections == nil {
		t.Sections = []section.Section{}
	}
	t.RefreshVariables()
	return t, nil
}
