// Package template provides the filing template model, the renderer that
// composes sections and merge variables into final prose, and a
// file-backed registry of templates.
package template

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coolbeans/draftsman/pkg/section"
	"github.com/coolbeans/draftsman/pkg/variables"
)

// Template is an ordered list of sections plus a declared variable list.
// The declared list is a superset of the merge fields actually referenced
// in section prose. A template is a standalone, shareable document; forks
// carry a ParentID lineage pointer but no live link.
type Template struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	ParentID  string            `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Default   bool              `json:"default,omitempty" yaml:"default,omitempty"`
	Sections  []section.Section `json:"sections" yaml:"sections"`
	Variables []string          `json:"variables" yaml:"variables"`
	CreatedAt time.Time         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// New creates an empty template with a fresh identity.
func New(name string) *Template {
	now := time.Now().UTC()
	return &Template{
		ID:        uuid.NewString(),
		Name:      name,
		Sections:  []section.Section{},
		Variables: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Fork produces a deep copy with a new identity and a ParentID pointing
// back to the source. Section IDs are regenerated; the fork is never the
// default template regardless of its parent.
func Fork(src *Template) *Template {
	now := time.Now().UTC()
	fork := &Template{
		ID:        uuid.NewString(),
		Name:      src.Name,
		ParentID:  src.ID,
		Sections:  make([]section.Section, len(src.Sections)),
		Variables: append([]string{}, src.Variables...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, sec := range src.Sections {
		sec.ID = section.NewID(i, now)
		fork.Sections[i] = sec
	}
	return fork
}

// SectionByID returns a pointer to the section with the given ID, or nil.
func (t *Template) SectionByID(id string) *section.Section {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return &t.Sections[i]
		}
	}
	return nil
}

// AddSection appends a new required section and returns it. Content that is
// empty after trimming is rejected.
func (t *Template) AddSection(name, content string) *section.Section {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	sec := section.Section{
		ID:        section.NewID(len(t.Sections), time.Now()),
		Name:      name,
		Required:  true,
		ParaCount: section.CountParagraphs(content),
		Content:   content,
	}
	t.Sections = append(t.Sections, sec)
	t.touch()
	return &t.Sections[len(t.Sections)-1]
}

// RenameSection sets a section's name. Returns false for an unknown ID.
func (t *Template) RenameSection(id, name string) bool {
	sec := t.SectionByID(id)
	if sec == nil {
		return false
	}
	sec.Name = name
	t.touch()
	return true
}

// SetSectionContent replaces a section's content and recomputes its
// paragraph count. Content that is empty after trimming is rejected so
// empty sections are never persisted.
func (t *Template) SetSectionContent(id, content string) bool {
	sec := t.SectionByID(id)
	if sec == nil {
		return false
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return false
	}
	sec.Content = content
	sec.ParaCount = section.CountParagraphs(content)
	t.touch()
	return true
}

// SetSectionRequired toggles whether a section always renders.
func (t *Template) SetSectionRequired(id string, required bool) bool {
	sec := t.SectionByID(id)
	if sec == nil {
		return false
	}
	sec.Required = required
	t.touch()
	return true
}

// SetSectionCondition sets the render condition on a section. Conditions
// are stored as written and evaluated at render time, never persisted as a
// computed value.
func (t *Template) SetSectionCondition(id, condition string) bool {
	sec := t.SectionByID(id)
	if sec == nil {
		return false
	}
	sec.Condition = strings.TrimSpace(condition)
	t.touch()
	return true
}

// MoveSection moves a section to the given position. Returns false when the
// ID is unknown or the position is out of range.
func (t *Template) MoveSection(id string, position int) bool {
	if position < 0 || position >= len(t.Sections) {
		return false
	}
	from := -1
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}
	moved := t.Sections[from]
	t.Sections = append(t.Sections[:from], t.Sections[from+1:]...)
	t.Sections = append(t.Sections[:position], append([]section.Section{moved}, t.Sections[position:]...)...)
	t.touch()
	return true
}

// RemoveSection deletes a section. Section IDs are never reused afterwards.
func (t *Template) RemoveSection(id string) bool {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			t.Sections = append(t.Sections[:i], t.Sections[i+1:]...)
			t.touch()
			return true
		}
	}
	return false
}

// ReferencedVariables returns the merge fields actually used across all
// section names and content, sorted and deduplicated.
func (t *Template) ReferencedVariables() []string {
	var sb strings.Builder
	for _, sec := range t.Sections {
		sb.WriteString(sec.Name)
		sb.WriteString("\n")
		sb.WriteString(sec.Content)
		sb.WriteString("\n")
	}
	return variables.Extract(sb.String())
}

// RefreshVariables merges the referenced merge fields into the declared
// variable list, keeping declared-but-unused names so the list stays a
// superset of what the prose references.
func (t *Template) RefreshVariables() {
	seen := make(map[string]bool, len(t.Variables))
	merged := make([]string, 0, len(t.Variables))
	for _, name := range t.Variables {
		if !seen[name] {
			seen[name] = true
			merged = append(merged, name)
		}
	}
	for _, name := range t.ReferencedVariables() {
		if !seen[name] {
			seen[name] = true
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	t.Variables = merged
}

func (t *Template) touch() {
	t.UpdatedAt = time.Now().UTC()
}
