package section

import (
	"strings"
	"testing"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"simple caption", "JURISDICTION", true},
		{"statutory citation", "REQUIREMENTS OF 28 U.S.C. §§ 2241, 2243", true},
		{"with ampersand and parens", "PARTIES & CUSTODY (CONTINUED)", true},
		{"hyphenated", "POST-ORDER DETENTION", true},
		{"mixed case", "Jurisdiction and Venue", false},
		{"sentence", "The petitioner respectfully states as follows.", false},
		{"merge field line", "{{PETITIONER_NAME}}", false},
		{"uppercase with merge field", "MOTION OF {{PETITIONER_NAME}}", false},
		{"digits only", "42", false},
		{"empty", "", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := IsHeading(testCase.line); got != testCase.want {
				t.Errorf("IsHeading(%q) = %v, want %v", testCase.line, got, testCase.want)
			}
		})
	}
}

func TestDetect_NoHeadingsReturnsEmpty(t *testing.T) {
	text := "The petitioner is detained.\n\nHe seeks release on bond.\n"

	sections := Detect(text)
	if len(sections) != 0 {
		t.Errorf("Detect() returned %d sections, want 0", len(sections))
	}
}

func TestDetect_EmptyInput(t *testing.T) {
	if sections := Detect(""); len(sections) != 0 {
		t.Errorf("Detect(\"\") returned %d sections, want 0", len(sections))
	}
}

func TestDetect_CaptionForLeadingContent(t *testing.T) {
	text := "Maria Doe, Petitioner, v. Jane Roe, Warden,\nin the Eastern District of Virginia\n\nJURISDICTION\n\nThis Court has jurisdiction under 28 U.S.C. § 2241.\n"

	sections := Detect(text)
	if len(sections) != 2 {
		t.Fatalf("Detect() returned %d sections, want 2", len(sections))
	}
	if sections[0].Name != CaptionName {
		t.Errorf("first section name = %q, want %q", sections[0].Name, CaptionName)
	}
	if !strings.Contains(sections[0].Content, "Eastern District of Virginia") {
		t.Errorf("caption content missing leading prose: %q", sections[0].Content)
	}
	if sections[1].Name != "JURISDICTION" {
		t.Errorf("second section name = %q, want JURISDICTION", sections[1].Name)
	}
}

func TestDetect_NoCaptionWhenTextStartsWithHeading(t *testing.T) {
	text := "JURISDICTION\n\nThis Court has jurisdiction.\n"

	sections := Detect(text)
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}
	if sections[0].Name == CaptionName {
		t.Error("no caption section should be emitted when text starts with a heading")
	}
}

func TestDetect_CountHeadingMerge(t *testing.T) {
	text := "COUNT I\nSubtitle A\nSubtitle B\n\n1. Body."

	sections := Detect(text)
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}

	name := sections[0].Name
	for _, part := range []string{"COUNT I", "Subtitle A", "Subtitle B"} {
		if !strings.Contains(name, part) {
			t.Errorf("merged name %q missing %q", name, part)
		}
	}
	if !strings.HasPrefix(sections[0].Content, "1. Body.") {
		t.Errorf("content = %q, want it to start with the first body line", sections[0].Content)
	}
}

func TestDetect_CountMergeStopsAtNumberedParagraph(t *testing.T) {
	text := "COUNT II\nViolation of 8 U.S.C. § 1226(a)\n1. The respondents unlawfully denied bond."

	sections := Detect(text)
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}
	if strings.Contains(sections[0].Name, "respondents") {
		t.Errorf("numbered paragraph merged into name: %q", sections[0].Name)
	}
	if !strings.HasPrefix(sections[0].Content, "1. The respondents") {
		t.Errorf("content = %q, want numbered paragraph", sections[0].Content)
	}
}

func TestDetect_AdjacentCountHeadingsDoNotMerge(t *testing.T) {
	text := "COUNT I\nCOUNT II\n\nBody of count two."

	sections := Detect(text)
	// COUNT I has no content and is dropped; COUNT II keeps the body.
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}
	if sections[0].Name != "COUNT II" {
		t.Errorf("section name = %q, want COUNT II", sections[0].Name)
	}
}

func TestDetect_ContinuationLineLimitTunable(t *testing.T) {
	detector := NewDetector()
	detector.MaxContinuationLines = 1

	sections := detector.Detect("COUNT I\nSubtitle A\nSubtitle B\n\nBody text.")
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}
	if strings.Contains(sections[0].Name, "Subtitle B") {
		t.Errorf("name %q exceeded the continuation limit", sections[0].Name)
	}
	if !strings.Contains(sections[0].Content, "Subtitle B") {
		t.Errorf("unmerged subtitle should land in content, got %q", sections[0].Content)
	}
}

func TestDetect_DropsSectionsWithEmptyContent(t *testing.T) {
	text := "JURISDICTION\nVENUE\n\nVenue is proper in this district.\n"

	sections := Detect(text)
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}
	if sections[0].Name != "VENUE" {
		t.Errorf("surviving section = %q, want VENUE", sections[0].Name)
	}
}

func TestDetect_ParaCount(t *testing.T) {
	text := "INTRODUCTION\n\nFirst paragraph.\n\nSecond paragraph.\n\nThird paragraph.\n"

	sections := Detect(text)
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}
	if sections[0].ParaCount != 3 {
		t.Errorf("ParaCount = %d, want 3", sections[0].ParaCount)
	}
}

func TestDetect_SectionsAreRequiredByDefault(t *testing.T) {
	sections := Detect("JURISDICTION\n\nSome content.\n")
	if len(sections) != 1 {
		t.Fatalf("Detect() returned %d sections, want 1", len(sections))
	}
	if !sections[0].Required {
		t.Error("detected sections must default to required")
	}
	if sections[0].Condition != "" {
		t.Errorf("detector must not assign conditions, got %q", sections[0].Condition)
	}
}

func TestDetect_ContentStopsBeforeNextHeading(t *testing.T) {
	text := "JURISDICTION\n\nJurisdiction content.\n\nVENUE\n\nVenue content.\n"

	sections := Detect(text)
	if len(sections) != 2 {
		t.Fatalf("Detect() returned %d sections, want 2", len(sections))
	}
	if strings.Contains(sections[0].Content, "Venue content") {
		t.Errorf("first section content leaked past next heading: %q", sections[0].Content)
	}
}

func TestDetect_UniqueIDs(t *testing.T) {
	text := "JURISDICTION\n\nA.\n\nVENUE\n\nB.\n\nPARTIES\n\nC.\n"

	sections := Detect(text)
	seen := make(map[string]bool)
	for _, sec := range sections {
		if sec.ID == "" {
			t.Fatal("section ID is empty")
		}
		if seen[sec.ID] {
			t.Fatalf("duplicate section ID %q", sec.ID)
		}
		seen[sec.ID] = true
	}
}

func TestCountParagraphs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"single block", "One paragraph.", 1},
		{"two blocks", "First.\n\nSecond.", 2},
		{"extra blank lines", "First.\n\n\n\nSecond.", 2},
		{"whitespace-only block", "First.\n\n   \n\nSecond.", 2},
		{"single newline does not split", "First line.\nSecond line.", 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := CountParagraphs(testCase.content); got != testCase.want {
				t.Errorf("CountParagraphs(%q) = %d, want %d", testCase.content, got, testCase.want)
			}
		})
	}
}
