package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/draftsman/pkg/variables"
)

const frontmatterFence = "---"

var (
	boldStarPattern         = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderscorePattern   = regexp.MustCompile(`__(.+?)__`)
	italicStarPattern       = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicUnderscorePattern = regexp.MustCompile(`_([^_\n]+)_`)
	blockquotePattern       = regexp.MustCompile(`(?m)^>+ ?`)
)

// normalizeMarkdown removes frontmatter into metadata and strips Markdown
// decoration from the remainder. The fence lines never survive into the
// output text.
func normalizeMarkdown(text string) *Result {
	metadata := map[string]string{}
	body := text

	if block, rest, ok := splitFrontmatter(text); ok {
		metadata = parseFrontmatter(block)
		body = rest
	}

	return &Result{Text: stripDecoration(body), Metadata: metadata}
}

// splitFrontmatter detects a leading fenced block delimited by lines of
// exactly "---" and returns the enclosed block and the remaining body.
func splitFrontmatter(text string) (block, rest string, ok bool) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || lines[0] != frontmatterFence {
		return "", "", false
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] == frontmatterFence {
			block = strings.Join(lines[1:i], "\n")
			rest = strings.Join(lines[i+1:], "\n")
			return block, rest, true
		}
	}
	return "", "", false
}

// parseFrontmatter reads the enclosed "key: value" lines. The block is
// parsed as YAML first; if it is not valid YAML the lines are split
// manually on the first colon so that lenient hand-written frontmatter
// still yields metadata.
func parseFrontmatter(block string) map[string]string {
	metadata := map[string]string{}
	if err := yaml.Unmarshal([]byte(block), &metadata); err == nil {
		return metadata
	}

	metadata = map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		metadata[key] = strings.TrimSpace(value)
	}
	return metadata
}

// stripDecoration drops bold/italic markers and blockquote prefixes while
// keeping inner text. Merge-field tokens are masked behind placeholders
// first so that underscores inside names like {{FIELD_OFFICE_NAME}} are
// never mistaken for italic markers, then restored verbatim.
func stripDecoration(text string) string {
	text = blockquotePattern.ReplaceAllString(text, "")

	var tokens []string
	text = variables.TokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		tokens = append(tokens, token)
		return fmt.Sprintf("\x00%d\x00", len(tokens)-1)
	})

	text = boldStarPattern.ReplaceAllString(text, "$1")
	text = boldUnderscorePattern.ReplaceAllString(text, "$1")
	text = italicStarPattern.ReplaceAllString(text, "$1")
	text = italicUnderscorePattern.ReplaceAllString(text, "$1")

	for i, token := range tokens {
		text = strings.Replace(text, fmt.Sprintf("\x00%d\x00", i), token, 1)
	}
	return text
}
