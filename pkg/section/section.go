// Package section provides the section model for filing templates and the
// heuristic detector that recovers named sections from flat legal prose.
package section

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Section is a named, ordered block of template prose. Content may contain
// merge-field tokens; an optional condition gates inclusion at render time.
type Section struct {
	// ID is unique within a template, generated at creation and never reused.
	ID string `json:"id" yaml:"id"`

	// Name is the section heading (e.g. "JURISDICTION").
	Name string `json:"name" yaml:"name"`

	// Required marks sections that always render. Detected sections default
	// to required.
	Required bool `json:"required" yaml:"required"`

	// ParaCount is the number of blank-line-delimited text blocks in Content.
	ParaCount int `json:"para_count" yaml:"para_count"`

	// Content is the section prose, possibly containing merge fields.
	Content string `json:"content" yaml:"content"`

	// Condition optionally gates a non-required section at render time.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// paragraphSplitPattern splits content into paragraphs on two or more
// consecutive newlines.
var paragraphSplitPattern = regexp.MustCompile(`\n{2,}`)

// CountParagraphs returns the number of non-empty blank-line-delimited
// blocks in content.
func CountParagraphs(content string) int {
	count := 0
	for _, block := range paragraphSplitPattern.Split(content, -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// NewID generates a section identifier from the creation time, the
// section's positional index, and a short random suffix. IDs are unique
// within a detection run and are never reused after deletion.
func NewID(index int, createdAt time.Time) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("sec-%d-%d-%s", createdAt.UnixMilli(), index, suffix)
}
