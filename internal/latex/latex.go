// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex renders a DocumentAnalysis as LaTeX source for one of the
// supported publication conventions. One Renderer implementation exists per
// convention; everything the conventions share lives in a data-driven
// skeleton so per-template code is limited to the blocks that genuinely
// differ (author macros, table style, bibliography).
package latex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Renderer is the fixed per-convention contract. Adding a template means
// implementing this interface and adding a catalog entry; nothing else
// changes.
type Renderer interface {
	Template() types.Template
	Preamble() string
	TitleBlock(a *types.DocumentAnalysis) string
	AuthorBlock(info *types.AuthorInfo) string
	AbstractBlock(text string) string
	KeywordBlock(text string) string
	Table(t *types.DocumentTable) string
	List(l *types.DocumentList) string
	Equation(e *types.Equation) string
	Bibliography() string
}

// Conventions is the data table expressing per-template variance consumed
// by the shared skeleton: names and placement rules, not logic.
type Conventions struct {
	DocumentClass string
	Packages      []string
	ExtraPreamble []string

	// AbstractBeforeMaketitle holds for conventions (ACM) that require the
	// abstract and keywords to precede \maketitle.
	AbstractBeforeMaketitle bool

	// KeywordsEnv names an environment wrapping the keywords; empty means
	// the \keywords{...} command form.
	KeywordsEnv string

	// AbstractCommand selects \abstract{...} over the abstract environment.
	AbstractCommand bool

	// TitleShortForm emits \title[short]{full}.
	TitleShortForm bool
}

// Generate runs the shared rendering skeleton: preamble, front matter in
// the convention's order, section emission with placeholder resolution, and
// bibliography, followed by structural validation.
func Generate(r Renderer, analysis *types.DocumentAnalysis) *types.LatexOutput {
	var parts []string

	parts = append(parts, r.Preamble())
	parts = append(parts, `\begin{document}`, "")

	title := r.TitleBlock(analysis)
	abstract := ""
	if analysis.Abstract != nil {
		abstract = r.AbstractBlock(analysis.Abstract.Content)
	}
	keywords := ""
	if analysis.Keywords != nil {
		keywords = r.KeywordBlock(analysis.Keywords.Content)
	}

	if conv(r).AbstractBeforeMaketitle {
		parts = appendNonEmpty(parts, title, abstract, keywords, `\maketitle`, "")
	} else {
		parts = appendNonEmpty(parts, title, `\maketitle`, "", abstract, keywords)
	}

	body, unresolved := emitSections(r, analysis)
	parts = append(parts, body)
	parts = append(parts, r.Bibliography())
	parts = append(parts, `\end{document}`)

	content := strings.Join(parts, "\n")

	warnings := append(unresolved, Validate(content)...)
	return &types.LatexOutput{
		Content:            content,
		Template:           r.Template(),
		SectionsCount:      len(analysis.Sections),
		TablesCount:        len(analysis.Tables),
		EquationsCount:     len(analysis.Equations),
		ListsCount:         len(analysis.Lists),
		ValidationWarnings: warnings,
	}
}

// conventionsCarrier lets the skeleton read the renderer's data table
// without widening the public interface.
type conventionsCarrier interface{ conventions() Conventions }

func conv(r Renderer) Conventions {
	if c, ok := r.(conventionsCarrier); ok {
		return c.conventions()
	}
	return Conventions{}
}

// frontMatterSections are section titles emitted as dedicated blocks and
// skipped in the body.
var frontMatterSections = []string{
	"abstract", "keywords", "index terms", "references", "bibliography",
	"acknowledgments", "acknowledgements",
}

// emitSections renders each body section, resolving placeholder tokens into
// that convention's table/list/equation forms. Unresolved tokens become
// warnings and are commented out rather than failing the render.
func emitSections(r Renderer, analysis *types.DocumentAnalysis) (string, []string) {
	if len(analysis.Sections) == 0 {
		return defaultSectionScaffold, nil
	}

	var parts []string
	var warnings []string

	for i := range analysis.Sections {
		sec := &analysis.Sections[i]
		if isFrontMatterTitle(sec.Title) {
			continue
		}

		cmd := sectionCommand(sec.Level)
		title := CleanSectionTitle(sec.Title)
		parts = append(parts, fmt.Sprintf(`%s{%s}`, cmd, Escape(title)))
		parts = append(parts, fmt.Sprintf(`\label{sec:%s}`, LabelSlug(title)))

		content, w := sectionContent(r, sec, analysis)
		warnings = append(warnings, w...)
		if strings.TrimSpace(content) != "" {
			parts = append(parts, content)
		}
		parts = append(parts, "")
	}

	return strings.Join(parts, "\n"), warnings
}

// sectionContent formats a section's prose and resolves its placeholders.
func sectionContent(r Renderer, sec *types.Section, analysis *types.DocumentAnalysis) (string, []string) {
	content := strings.TrimSpace(sec.Content)
	if content == "" {
		return "", nil
	}

	paragraphs := strings.Split(content, "\n")
	formatted := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// Escape first; the rewrites below insert LaTeX commands that must
		// survive untouched.
		p = EscapePreservingPlaceholders(p)
		p = RewriteCitations(p)
		p = ConvertEmphasis(p)
		formatted = append(formatted, p)
	}
	content = strings.Join(formatted, "\n\n")

	for _, id := range sec.ContainsTables {
		if t := analysis.TableByID(id); t != nil {
			content = strings.Replace(content,
				fmt.Sprintf("[TABLE_%d]", id), "\n"+r.Table(t)+"\n", 1)
		}
	}
	for _, id := range sec.ContainsLists {
		if l := analysis.ListByID(id); l != nil {
			content = strings.Replace(content,
				fmt.Sprintf("[LIST_%d]", id), "\n"+r.List(l)+"\n", 1)
		}
	}
	for _, id := range sec.ContainsEquations {
		if e := analysis.EquationByID(id); e != nil {
			content = strings.Replace(content,
				fmt.Sprintf("[EQUATION_%d]", id), r.Equation(e), 1)
		}
	}

	var warnings []string
	for _, tok := range placeholderPattern.FindAllString(content, -1) {
		warnings = append(warnings, fmt.Sprintf(
			"unresolved placeholder %s in section %q", tok, sec.Title))
		content = strings.Replace(content, tok, "% unresolved "+tok[1:len(tok)-1], 1)
	}
	return content, warnings
}

// isFrontMatterTitle reports whether a section by this title is rendered as
// a dedicated block instead of a body section.
func isFrontMatterTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, s := range frontMatterSections {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// sectionCommand maps a section level to its LaTeX sectioning command.
func sectionCommand(level types.SectionLevel) string {
	switch level {
	case types.LevelSection:
		return `\section`
	case types.LevelSubsection:
		return `\subsection`
	case types.LevelSubsubsection:
		return `\subsubsection`
	default:
		return `\paragraph`
	}
}

// buildPreamble assembles the data-driven preamble shared by all renderers.
func buildPreamble(c Conventions) string {
	parts := []string{c.DocumentClass, ""}
	parts = append(parts, c.Packages...)
	if len(c.ExtraPreamble) > 0 {
		parts = append(parts, "")
		parts = append(parts, c.ExtraPreamble...)
	}
	parts = append(parts, "")
	return strings.Join(parts, "\n")
}

// appendNonEmpty appends the given strings, treating "" as a spacer that is
// only kept directly after a non-empty entry.
func appendNonEmpty(parts []string, items ...string) []string {
	lastKept := ""
	for _, it := range items {
		if it == "" && lastKept == "" {
			continue
		}
		parts = append(parts, it)
		lastKept = it
	}
	return parts
}

// defaultSectionScaffold is emitted when no sections were detected, so the
// output still compiles and the author sees where content belongs.
const defaultSectionScaffold = `\section{Introduction}
\label{sec:introduction}
% No section content was detected in the source document.

\section{Conclusion}
\label{sec:conclusion}
% No section content was detected in the source document.`
