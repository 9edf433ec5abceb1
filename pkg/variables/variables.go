// Package variables implements the merge-field engine for filing templates:
// extraction of {{NAME}} tokens from prose, value substitution, and the
// boolean condition grammar that gates optional sections.
package variables

import (
	"regexp"
	"sort"
)

// TokenPattern matches a merge-field token in prose. Names are uppercase
// identifiers: a leading A-Z followed by A-Z, 0-9, or underscore. Lowercase
// and mixed-case braces are deliberately not matched; they pass through as
// literal text.
var TokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Extract returns the unique merge-field names referenced in text, sorted
// lexicographically. Duplicate tokens collapse to one entry.
func Extract(text string) []string {
	matches := TokenPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

// Substitute replaces every merge-field token in text with its value. Tokens
// whose variable is missing or empty are left as literal {{NAME}} text so
// that callers can distinguish filled fields from missing ones downstream.
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}
	return TokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[2 : len(token)-2]
		if value, ok := values[name]; ok && value != "" {
			return value
		}
		return token
	})
}
