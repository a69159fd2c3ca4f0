// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Numbering conventions a heading line may use. Decimal must be tried before
// arabic so "2.1 Methods" is not read as section 2 titled "1 Methods".
var (
	decimalNumber = regexp.MustCompile(`^(\d+(?:\.\d+)+)\.?\s+(.+)$`)
	arabicNumber  = regexp.MustCompile(`^(\d+)\.?\s+(.+)$`)
	romanNumber   = regexp.MustCompile(`^([IVXLCDM]+)\.\s+(.+)$`)
)

// headingWords are unnumbered headings common in papers; matching one raises
// confidence for style-less candidates.
var headingWords = []string{
	"introduction", "related work", "background", "methodology", "methods",
	"results", "discussion", "evaluation", "conclusion", "conclusions",
	"references", "acknowledgments", "acknowledgements",
}

// detectSections scans paragraphs for headings by style or numbering.
// Candidates whose folded text is already recorded as a table caption or
// cell are demoted so table headings are not misread as sections.
func (a *Analyzer) detectSections(doc *types.DocumentModel) []types.Section {
	tableText := tableTextIndex(doc.Tables)

	var sections []types.Section
	id := 1

	for i, p := range doc.Paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}

		cand, ok := classifyHeading(p, text)
		if !ok {
			continue
		}

		// Blank-line context: headings usually sit apart from body text.
		if hasBlankNeighbor(doc.Paragraphs, i) {
			cand.confidence = min(cand.confidence+0.05, 1.0)
			cand.reasoning += "; isolated by blank lines"
		}

		if tableText[foldText(text)] || tableText[foldText(cand.title)] {
			cand.confidence = 0.2
			cand.reasoning += "; text matches recorded table content"
		}

		content, end := collectSectionBody(doc.Paragraphs, i+1)
		sections = append(sections, types.Section{
			ID:         id,
			Number:     cand.number,
			Title:      cand.title,
			Content:    content,
			Level:      cand.level,
			Confidence: cand.confidence,
			Reasoning:  cand.reasoning,
			Style:      p.Style,
			WordCount:  len(strings.Fields(content)),
			StartLine:  i,
			EndLine:    end,
		})
		id++
	}
	return sections
}

// headingCandidate is one paragraph scored as a section heading.
type headingCandidate struct {
	number     string
	title      string
	level      types.SectionLevel
	confidence float64
	reasoning  string
}

// classifyHeading decides whether a paragraph is a section heading and at
// what level, combining style evidence with numbering-pattern strength.
func classifyHeading(p types.Paragraph, text string) (headingCandidate, bool) {
	style := strings.ToLower(p.Style)
	styleLevel, styled := headingStyleLevel(style)

	if m := decimalNumber.FindStringSubmatch(text); m != nil {
		depth := strings.Count(m[1], ".") + 1
		cand := headingCandidate{
			number:     m[1],
			title:      strings.TrimSpace(m[2]),
			level:      levelForDepth(depth),
			confidence: 0.85,
			reasoning:  fmt.Sprintf("multi-level decimal numbering %q", m[1]),
		}
		if styled {
			cand.confidence = 0.95
			cand.reasoning += fmt.Sprintf("; heading style %q", p.Style)
		}
		return cand, true
	}

	if m := romanNumber.FindStringSubmatch(text); m != nil && looksLikeHeadingText(m[2]) {
		cand := headingCandidate{
			number:     m[1],
			title:      strings.TrimSpace(m[2]),
			level:      types.LevelSection,
			confidence: 0.8,
			reasoning:  fmt.Sprintf("roman numbering %q", m[1]),
		}
		if styled {
			cand.confidence = 0.95
			cand.reasoning += fmt.Sprintf("; heading style %q", p.Style)
		}
		return cand, true
	}

	if m := arabicNumber.FindStringSubmatch(text); m != nil && looksLikeHeadingText(m[2]) {
		cand := headingCandidate{
			number:     m[1],
			title:      strings.TrimSpace(m[2]),
			level:      types.LevelSection,
			confidence: 0.7,
			reasoning:  fmt.Sprintf("arabic numbering %q", m[1]),
		}
		if styled {
			cand.level = styleLevel
			cand.confidence = 0.95
			cand.reasoning += fmt.Sprintf("; heading style %q", p.Style)
		}
		return cand, true
	}

	if styled {
		return headingCandidate{
			title:      text,
			level:      styleLevel,
			confidence: 0.9,
			reasoning:  fmt.Sprintf("heading style %q", p.Style),
		}, true
	}

	// Style-less, unnumbered: only well-known heading words qualify, and
	// weakly.
	lower := strings.ToLower(text)
	for _, w := range headingWords {
		if lower == w {
			return headingCandidate{
				title:      text,
				level:      types.LevelSection,
				confidence: 0.55,
				reasoning:  fmt.Sprintf("common heading word %q without style or numbering", text),
			}, true
		}
	}
	return headingCandidate{}, false
}

// headingStyleLevel maps word-processor heading styles to section levels.
func headingStyleLevel(style string) (types.SectionLevel, bool) {
	switch {
	case strings.Contains(style, "heading 1"):
		return types.LevelSection, true
	case strings.Contains(style, "heading 2"):
		return types.LevelSubsection, true
	case strings.Contains(style, "heading 3"):
		return types.LevelSubsubsection, true
	case strings.Contains(style, "heading"):
		return types.LevelParagraph, true
	}
	return 0, false
}

// levelForDepth converts a numbering depth (1 = "2", 2 = "2.1", ...) to a
// section level, bottoming out at paragraph level.
func levelForDepth(depth int) types.SectionLevel {
	switch depth {
	case 1:
		return types.LevelSection
	case 2:
		return types.LevelSubsection
	case 3:
		return types.LevelSubsubsection
	default:
		return types.LevelParagraph
	}
}

// looksLikeHeadingText rejects numbered-list bodies masquerading as
// headings: headings are short and do not end in sentence punctuation.
func looksLikeHeadingText(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(strings.Fields(s)) > 12 {
		return false
	}
	return !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, ",") && !strings.HasSuffix(s, ";")
}

// isHeadingParagraph reports whether a paragraph would classify as a heading.
func isHeadingParagraph(p types.Paragraph) bool {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return false
	}
	_, ok := classifyHeading(p, text)
	return ok
}

// hasBlankNeighbor reports whether the paragraph at i is adjacent to a blank
// paragraph on either side.
func hasBlankNeighbor(paragraphs []types.Paragraph, i int) bool {
	if i > 0 && paragraphs[i-1].IsBlank() {
		return true
	}
	return i+1 < len(paragraphs) && paragraphs[i+1].IsBlank()
}

// collectSectionBody gathers paragraph text from start until the next
// heading (exclusive) and returns the body plus the index of the last line
// belonging to the section.
func collectSectionBody(paragraphs []types.Paragraph, start int) (string, int) {
	var parts []string
	end := start - 1
	for i := start; i < len(paragraphs); i++ {
		if isHeadingParagraph(paragraphs[i]) {
			break
		}
		end = i
		text := strings.TrimSpace(paragraphs[i].Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	if end < start-1 {
		end = start - 1
	}
	return strings.Join(parts, "\n"), end
}

// tableTextIndex folds every table caption and cell into a lookup set.
func tableTextIndex(tables []types.RawTable) map[string]bool {
	idx := make(map[string]bool)
	for _, t := range tables {
		if t.Caption != "" {
			idx[foldText(t.Caption)] = true
		}
		for _, row := range t.Cells {
			for _, c := range row {
				if strings.TrimSpace(c.Text) != "" {
					idx[foldText(c.Text)] = true
				}
			}
		}
	}
	return idx
}
