package section

import (
	"regexp"
	"strings"
	"time"
)

// CaptionName is the name given to document preamble that precedes the
// first recognized heading.
const CaptionName = "Caption"

var (
	// headingCharsPattern matches "shouting case" legal captions: uppercase
	// letters, digits, spaces, and the punctuation that appears in statutory
	// citations (e.g. "REQUIREMENTS OF 28 U.S.C. §§ 2241, 2243").
	headingCharsPattern = regexp.MustCompile(`^[A-Z0-9 &.,§()\-]+$`)

	// uppercaseLetterPattern requires at least one letter so that bare
	// numbers or punctuation never qualify as headings.
	uppercaseLetterPattern = regexp.MustCompile(`[A-Z]`)

	// countHeadingPattern matches count headings like "COUNT I" or
	// "COUNT IV". The word COUNT is case-sensitive.
	countHeadingPattern = regexp.MustCompile(`^COUNT\s+[IVXLCDM]+\.?$`)

	// numberedParagraphPattern matches the start of a numbered allegation
	// paragraph ("1. The petitioner..."), which ends a count-heading run.
	numberedParagraphPattern = regexp.MustCompile(`^\d+\.`)
)

// IsHeading reports whether a trimmed line qualifies as a section heading.
// Lines containing merge-field tokens are never headings, even when the
// rest of the line is uppercase.
func IsHeading(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "{{") {
		return false
	}
	return headingCharsPattern.MatchString(trimmed) && uppercaseLetterPattern.MatchString(trimmed)
}

// scanState tracks the detector's position in its single linear scan.
type scanState int

const (
	// stateSeekingFirstHeading accumulates caption content before the first
	// recognized heading.
	stateSeekingFirstHeading scanState = iota

	// stateInSection accumulates body content for the current section.
	stateInSection

	// stateMergingCountHeading merges subtitle lines that follow a COUNT
	// heading into the section name.
	stateMergingCountHeading
)

// Detector splits normalized prose into named sections. The continuation
// thresholds control how aggressively subtitle lines after a COUNT heading
// are merged into the section name; the defaults were tuned against the
// filing corpus and are exported for callers that need to adjust them.
type Detector struct {
	// MaxContinuationLines caps how many subtitle lines merge into a COUNT
	// heading.
	MaxContinuationLines int

	// MaxContinuationRunes caps the length of a mergeable subtitle line.
	MaxContinuationRunes int
}

// NewDetector returns a Detector with the default merge thresholds.
func NewDetector() *Detector {
	return &Detector{
		MaxContinuationLines: 3,
		MaxContinuationRunes: 80,
	}
}

// Detect runs a detector with default thresholds over text.
func Detect(text string) []Section {
	return NewDetector().Detect(text)
}

// Detect splits text into an ordered list of sections. Every detected
// section is required; no conditions are assigned here. Content preceding
// the first heading becomes a Caption section when non-empty. Sections
// whose content is empty after trimming are dropped entirely, so a
// document with no heading-shaped lines yields an empty list.
func (d *Detector) Detect(text string) []Section {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	createdAt := time.Now()

	var sections []Section
	var headingLines []string
	var bodyLines []string
	var captionLines []string
	state := stateSeekingFirstHeading
	merged := 0

	emit := func(name, content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		sections = append(sections, Section{
			ID:        NewID(len(sections), createdAt),
			Name:      name,
			Required:  true,
			ParaCount: CountParagraphs(content),
			Content:   content,
		})
	}

	flush := func() {
		emit(strings.Join(headingLines, "\n"), strings.Join(bodyLines, "\n"))
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if state == stateMergingCountHeading {
			if merged < d.MaxContinuationLines && d.isContinuationTitle(trimmed) {
				headingLines = append(headingLines, trimmed)
				merged++
				continue
			}
			// Content capture begins at the first line outside the run.
			state = stateInSection
		}

		if IsHeading(trimmed) {
			switch state {
			case stateSeekingFirstHeading:
				emit(CaptionName, strings.Join(captionLines, "\n"))
			case stateInSection:
				flush()
			}

			headingLines = []string{trimmed}
			bodyLines = bodyLines[:0]
			if countHeadingPattern.MatchString(trimmed) {
				state = stateMergingCountHeading
				merged = 0
			} else {
				state = stateInSection
			}
			continue
		}

		switch state {
		case stateSeekingFirstHeading:
			captionLines = append(captionLines, line)
		case stateInSection:
			bodyLines = append(bodyLines, line)
		}
	}

	if state == stateInSection || state == stateMergingCountHeading {
		flush()
	}

	if sections == nil {
		return []Section{}
	}
	return sections
}

// isContinuationTitle reports whether a trimmed line after a COUNT heading
// should merge into the section name. Numbered allegation paragraphs, blank
// lines, further COUNT headings, and overlong lines end the run.
func (d *Detector) isContinuationTitle(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	if numberedParagraphPattern.MatchString(trimmed) {
		return false
	}
	if countHeadingPattern.MatchString(trimmed) {
		return false
	}
	return len([]rune(trimmed)) <= d.MaxContinuationRunes
}
