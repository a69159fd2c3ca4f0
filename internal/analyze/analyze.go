// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze detects the front-matter and section structure of a
// document model: title, abstract, keywords, and headed sections, each with
// a confidence score and a reasoning string. Ambiguous input never produces
// an error; it produces a low-confidence element plus a warning so callers
// can filter by threshold.
package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Result is the structural analyzer's output. Any field may be nil/empty
// when the document lacks the element.
type Result struct {
	Title    *types.DetectedElement
	Abstract *types.DetectedElement
	Keywords *types.DetectedElement
	Sections []types.Section
	Warnings []string
}

// Analyzer runs the structural detection heuristics over one document
// snapshot. It is stateless between calls and safe for concurrent use.
type Analyzer struct {
	cfg types.AnalysisConfig
}

// New returns an Analyzer with defaults applied to cfg.
func New(cfg types.AnalysisConfig) *Analyzer {
	return &Analyzer{cfg: cfg.WithDefaults()}
}

// titleScanWindow bounds how deep into the document the title search looks.
const titleScanWindow = 10

var (
	abstractLabel = regexp.MustCompile(`(?i)^abstract\s*[:\-—.]?\s*(.*)$`)
	keywordLabel  = regexp.MustCompile(`(?i)^(?:key\s*words?|index\s*terms?)\s*[:\-—]\s*(.+)$`)
)

// Analyze detects title, abstract, keywords, and sections. Detections below
// 0.5 confidence are kept in the result and recorded as warnings.
func (a *Analyzer) Analyze(doc *types.DocumentModel) Result {
	var res Result

	res.Title = a.detectTitle(doc.Paragraphs)
	res.Abstract = a.detectLabeledBlock(doc.Paragraphs, abstractLabel, "abstract")
	res.Keywords = a.detectKeywords(doc.Paragraphs)
	res.Sections = a.detectSections(doc)

	for _, e := range []*types.DetectedElement{res.Title, res.Abstract, res.Keywords} {
		if e != nil && e.Confidence < a.cfg.MinConfidence {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("ambiguous detection (confidence %.2f): %s", e.Confidence, e.Reasoning))
		}
	}
	for _, s := range res.Sections {
		if s.Confidence < a.cfg.MinConfidence {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("ambiguous section %q (confidence %.2f): %s", s.Title, s.Confidence, s.Reasoning))
		}
	}
	return res
}

// detectTitle looks for a title-styled paragraph first, then an early
// Heading 1, and finally falls back to the first substantial paragraph.
func (a *Analyzer) detectTitle(paragraphs []types.Paragraph) *types.DetectedElement {
	for i, p := range paragraphs {
		if i >= titleScanWindow {
			break
		}
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		style := strings.ToLower(p.Style)
		if strings.Contains(style, "title") {
			return &types.DetectedElement{
				Content:        text,
				Confidence:     0.95,
				Reasoning:      fmt.Sprintf("paragraph styled %q", p.Style),
				Style:          p.Style,
				ParagraphIndex: i,
			}
		}
		if strings.Contains(style, "heading 1") && i < 3 {
			// A leading Heading 1 usually is the title, but it could be
			// the first section header, so the score drops.
			return &types.DetectedElement{
				Content:        text,
				Confidence:     0.85,
				Reasoning:      "first Heading 1 before any body text taken as title",
				Style:          p.Style,
				ParagraphIndex: i,
			}
		}
	}

	for i, p := range paragraphs {
		if i >= 5 {
			break
		}
		text := strings.TrimSpace(p.Text)
		if len(text) > 10 {
			return &types.DetectedElement{
				Content:        text,
				Confidence:     0.6,
				Reasoning:      "no title style; first substantial paragraph assumed",
				ParagraphIndex: i,
			}
		}
	}
	return nil
}

// detectLabeledBlock finds a paragraph whose leading token matches label and
// collects the block: the remainder of the matching line, plus following
// paragraphs until a heading or a blank paragraph ends it.
func (a *Analyzer) detectLabeledBlock(paragraphs []types.Paragraph, label *regexp.Regexp, what string) *types.DetectedElement {
	for i, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}

		styled := strings.Contains(strings.ToLower(p.Style), what)
		m := label.FindStringSubmatch(text)
		if !styled && m == nil {
			continue
		}

		var parts []string
		if m != nil && strings.TrimSpace(m[1]) != "" {
			parts = append(parts, strings.TrimSpace(m[1]))
		} else if m == nil {
			parts = append(parts, text)
		}

		for j := i + 1; j < len(paragraphs); j++ {
			next := strings.TrimSpace(paragraphs[j].Text)
			if next == "" {
				break
			}
			if isHeadingParagraph(paragraphs[j]) || keywordLabel.MatchString(next) {
				break
			}
			parts = append(parts, next)
		}

		content := strings.Join(parts, " ")
		if content == "" {
			continue
		}

		conf := 0.9
		reason := fmt.Sprintf("leading %q label", what)
		if styled {
			conf = 0.95
			reason = fmt.Sprintf("paragraph styled %q", p.Style)
		} else if m != nil && len(parts) == 1 && strings.TrimSpace(m[1]) == "" {
			// Label line with no continuation text: weak evidence.
			conf = 0.4
			reason = fmt.Sprintf("bare %q label with no body", what)
		}

		return &types.DetectedElement{
			Content:        content,
			Confidence:     conf,
			Reasoning:      reason,
			Style:          p.Style,
			ParagraphIndex: i,
		}
	}
	return nil
}

// detectKeywords matches the keyword/index-terms label patterns.
func (a *Analyzer) detectKeywords(paragraphs []types.Paragraph) *types.DetectedElement {
	for i, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		if m := keywordLabel.FindStringSubmatch(text); m != nil {
			return &types.DetectedElement{
				Content:        strings.TrimSpace(m[1]),
				Confidence:     0.9,
				Reasoning:      "keyword label with separator",
				Style:          p.Style,
				ParagraphIndex: i,
			}
		}
	}
	return nil
}

// foldText lowercases and collapses whitespace for loose text comparison.
func foldText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
