// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package boundary assigns line-index ranges to detected sections, resolves
// overlap conflicts, strips prose that echoes table content, and threads
// position-preserving placeholder tokens for tables, lists, and equations
// into section text. This stage is the pipeline's serialization point: it
// owns the shared line-index space and must not run concurrently with
// itself.
package boundary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Input collects everything the boundary stage consumes. All slices are
// read-only from the caller's perspective; sections are copied before
// mutation.
type Input struct {
	Sections   []types.Section
	Tables     []types.DocumentTable
	Lists      []types.DocumentList
	Equations  []types.Equation
	Paragraphs []types.Paragraph
}

// Result is the boundary stage's output: sections with final ranges,
// placeholder-threaded content, and element references, plus the token map
// the generator resolves and any non-fatal warnings.
type Result struct {
	Sections     []types.Section
	Placeholders map[string]Ref
	Warnings     []string
}

// Ref identifies the entity a placeholder token stands for.
type Ref struct {
	Kind string // "table", "list", or "equation"
	ID   int
}

// Placeholder token construction. The generator resolves these during
// section emission; anything left over is a validation warning.
func TableToken(id int) string    { return fmt.Sprintf("[TABLE_%d]", id) }
func ListToken(id int) string     { return fmt.Sprintf("[LIST_%d]", id) }
func EquationToken(id int) string { return fmt.Sprintf("[EQUATION_%d]", id) }

// Assign resolves section boundaries and builds placeholder-threaded
// content. cfg supplies the table-similarity threshold.
func Assign(in Input, cfg types.AnalysisConfig) Result {
	cfg = cfg.WithDefaults()

	res := Result{Placeholders: make(map[string]Ref)}

	sections := append([]types.Section(nil), in.Sections...)
	sections, dropped := resolveOverlaps(sections)
	res.Warnings = append(res.Warnings, dropped...)

	excl := NewExclusionIndex(tableStrings(in.Tables), cfg.TableSimilarityThreshold)

	for si := range sections {
		sec := &sections[si]
		clampRange(sec, len(in.Paragraphs))
		content, warns := buildContent(sec, in, excl, res.Placeholders)
		sec.Content = content
		sec.WordCount = len(strings.Fields(content))
		res.Warnings = append(res.Warnings, warns...)
	}

	res.Sections = sections
	return res
}

// resolveOverlaps drops the lower-confidence section of any same-level
// sibling pair whose line ranges overlap, recording a warning per drop.
func resolveOverlaps(sections []types.Section) ([]types.Section, []string) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].StartLine < sections[j].StartLine
	})

	drop := make(map[int]bool)
	var warnings []string

	for i := 0; i < len(sections); i++ {
		for j := i + 1; j < len(sections); j++ {
			a, b := &sections[i], &sections[j]
			if a.Level != b.Level || drop[i] || drop[j] {
				continue
			}
			if b.StartLine > a.EndLine {
				break
			}
			// Overlapping same-level siblings: keep the more confident.
			loser, loserIdx := b, j
			if a.Confidence < b.Confidence {
				loser, loserIdx = a, i
			}
			drop[loserIdx] = true
			warnings = append(warnings, fmt.Sprintf(
				"boundary conflict: section %q (lines %d-%d) overlaps a sibling; dropped (confidence %.2f)",
				loser.Title, loser.StartLine, loser.EndLine, loser.Confidence))
		}
	}

	kept := sections[:0]
	for i := range sections {
		if !drop[i] {
			kept = append(kept, sections[i])
		}
	}
	return kept, warnings
}

// clampRange keeps section line indices inside the paragraph space and
// ordered.
func clampRange(sec *types.Section, n int) {
	if sec.StartLine < 0 {
		sec.StartLine = 0
	}
	if sec.EndLine >= n {
		sec.EndLine = n - 1
	}
	if sec.EndLine < sec.StartLine {
		sec.EndLine = sec.StartLine
	}
}

// buildContent rebuilds a section's flowing text from the paragraph range,
// substituting placeholder tokens at the offsets where structural elements
// occur and stripping spans the exclusion index matches.
func buildContent(sec *types.Section, in Input, excl *ExclusionIndex, tokens map[string]Ref) (string, []string) {
	var lines []string
	var warnings []string

	tablesAt := map[int][]*types.DocumentTable{}
	for i := range in.Tables {
		t := &in.Tables[i]
		tablesAt[t.ParagraphIndex] = append(tablesAt[t.ParagraphIndex], t)
	}

	listSpan := map[int]*types.DocumentList{} // start index → list
	inList := map[int]bool{}
	for i := range in.Lists {
		l := &in.Lists[i]
		listSpan[l.ParagraphIndex] = l
		for off := 0; off < len(l.Items); off++ {
			inList[l.ParagraphIndex+off] = true
		}
	}

	eqsAt := map[int][]*types.Equation{}
	for i := range in.Equations {
		e := &in.Equations[i]
		eqsAt[e.ParagraphIndex] = append(eqsAt[e.ParagraphIndex], e)
	}

	for idx := sec.StartLine + 1; idx <= sec.EndLine && idx < len(in.Paragraphs); idx++ {
		for _, t := range tablesAt[idx] {
			tok := TableToken(t.ID)
			tokens[tok] = Ref{Kind: "table", ID: t.ID}
			sec.ContainsTables = append(sec.ContainsTables, t.ID)
			lines = append(lines, tok)
		}

		if l, ok := listSpan[idx]; ok {
			tok := ListToken(l.ID)
			tokens[tok] = Ref{Kind: "list", ID: l.ID}
			sec.ContainsLists = append(sec.ContainsLists, l.ID)
			lines = append(lines, tok)
			continue
		}
		if inList[idx] {
			continue
		}

		text := strings.TrimSpace(in.Paragraphs[idx].Text)
		if text == "" {
			continue
		}

		if excl.Excludes(text) {
			warnings = append(warnings, fmt.Sprintf(
				"stripped table echo at line %d: %q", idx, truncate(text, 60)))
			continue
		}

		for _, e := range eqsAt[idx] {
			tok := EquationToken(e.ID)
			tokens[tok] = Ref{Kind: "equation", ID: e.ID}
			sec.ContainsEquations = append(sec.ContainsEquations, e.ID)
			text = substituteEquation(text, e, tok)
		}

		if text != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), warnings
}

// substituteEquation replaces the equation's occurrence in line with the
// token. Delimited forms are tried first; if the equation is the whole
// line, the token replaces it; display equations not found inline are
// appended on their own.
func substituteEquation(line string, e *types.Equation, tok string) string {
	for _, needle := range []string{
		"$$" + e.Content + "$$",
		"$" + e.Content + "$",
		`\[` + e.Content + `\]`,
		e.Content,
	} {
		if strings.Contains(line, needle) {
			return strings.Replace(line, needle, tok, 1)
		}
	}
	if Fold(line) == Fold(e.Content) {
		return tok
	}
	if e.IsDisplay {
		return line + "\n" + tok
	}
	return line
}

// tableStrings flattens captions and cell text for the exclusion index.
func tableStrings(tables []types.DocumentTable) []string {
	var out []string
	for _, t := range tables {
		if t.Caption != "" {
			out = append(out, t.Caption)
		}
		for _, row := range t.Cells {
			for _, c := range row {
				out = append(out, c.Content)
			}
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
