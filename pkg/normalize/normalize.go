// Package normalize strips source-specific artifacts from imported filing
// text so the section detector sees clean prose. Markdown loses its
// decoration and frontmatter, HTML is flattened to blank-line-separated
// blocks, and PDF page text loses its court-stamp header lines. Merge-field
// tokens pass through every path untouched.
package normalize

import (
	"fmt"
	"strings"
)

// SourceKind identifies the origin format of imported text.
type SourceKind string

const (
	// SourcePlain is already-clean prose; normalization only unifies newlines.
	SourcePlain SourceKind = "plain"

	// SourceMarkdown is Markdown-authored template or filing text.
	SourceMarkdown SourceKind = "markdown"

	// SourceHTML is markup produced by rich-text editors or web exports.
	SourceHTML SourceKind = "html"

	// SourcePageText is plain text extracted from PDF pages, one page per
	// blank-line-separated run, with court page stamps still embedded.
	SourcePageText SourceKind = "pagetext"
)

// Result holds normalized prose plus any metadata recovered from the source
// (currently only Markdown frontmatter). Metadata is never nil.
type Result struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// Normalize cleans raw source text according to its kind. The returned text
// uses \n newlines and blank lines as paragraph breaks, the convention the
// detector and renderer share.
func Normalize(raw string, kind SourceKind) (*Result, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	switch kind {
	case SourcePlain, "":
		return &Result{Text: text, Metadata: map[string]string{}}, nil
	case SourceMarkdown:
		return normalizeMarkdown(text), nil
	case SourceHTML:
		return normalizeHTML(text)
	case SourcePageText:
		return normalizePageText(text), nil
	default:
		return nil, fmt.Errorf("unsupported source kind: %q", kind)
	}
}
