package normalize

import (
	"regexp"
	"strings"
)

// pageStampPattern matches the per-page stamp that CM/ECF prints across the
// top of every filed page, e.g.:
//
//	Case 1:24-cv-01234-ABC Document 12 Filed 03/15/24 Page 3 of 28 PageID# 145
//
// Minor punctuation variation is tolerated (PageID #, PageID#:, dashes in
// the docket number). Only whole lines matching the stamp are removed;
// partial content is never touched.
var pageStampPattern = regexp.MustCompile(
	`^\s*Case\s+\S+\s+Document\s+\d+(-\d+)?\s+Filed\s+[\d/.\-]+\s+Page\s+\d+\s+of\s+\d+(\s+PageID\s*#?:?\s*\d+)?\s*$`)

// normalizePageText removes court page-stamp lines from PDF-extracted text,
// checking line by line so surrounding prose is preserved exactly.
func normalizePageText(text string) *Result {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if pageStampPattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return &Result{
		Text:     strings.Join(kept, "\n"),
		Metadata: map[string]string{},
	}
}
