package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// blockElements are HTML elements that delimit paragraphs in the output.
// Each block becomes one line, and blocks are joined with a blank line so
// the result follows the paragraph-splitting convention used everywhere
// else in the engine.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"blockquote": true, "li": true, "tr": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// skippedElements never contribute text to the output.
var skippedElements = map[string]bool{
	"script": true, "style": true, "head": true, "title": true,
	"noscript": true, "template": true, "iframe": true,
}

// normalizeHTML parses markup into a DOM tree, drops non-content elements,
// and emits visible text as blank-line-separated blocks. Entities are
// decoded by the parser; non-breaking spaces are folded to plain spaces.
func normalizeHTML(text string) (*Result, error) {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var blocks []string
	var current strings.Builder

	flush := func() {
		block := collapseSpaces(current.String())
		if block != "" {
			blocks = append(blocks, block)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "br" {
				current.WriteString("\n")
				return
			}
			if blockElements[n.Data] {
				flush()
			}
		}
		if n.Type == html.TextNode {
			current.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			flush()
		}
	}
	walk(root)
	flush()

	return &Result{
		Text:     strings.Join(blocks, "\n\n"),
		Metadata: map[string]string{},
	}, nil
}

// collapseSpaces trims a block and folds runs of whitespace, including
// non-breaking spaces, into single spaces. Newlines inserted by <br> are
// preserved.
func collapseSpaces(block string) string {
	lines := strings.Split(block, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\u00a0", " ")
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
