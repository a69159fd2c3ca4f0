// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/authors"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// ieeeRenderer emits IEEEtran conference output: numbered author blocks,
// IEEEkeywords, double-ruled tables with roman-numeral captions, and
// numbered display equations.
type ieeeRenderer struct {
	base
}

func newIEEE(depts *authors.DepartmentTable) *ieeeRenderer {
	return &ieeeRenderer{base{
		template: types.TemplateIEEE,
		depts:    depts,
		conv: Conventions{
			DocumentClass: `\documentclass[conference]{IEEEtran}`,
			Packages: []string{
				`\usepackage{array}`,
				`\usepackage{booktabs}`,
				`\usepackage{graphicx}`,
				`\usepackage{amsmath}`,
				`\usepackage{amssymb}`,
				`\usepackage{cite}`,
			},
			ExtraPreamble: []string{
				`\IEEEoverridecommandlockouts`,
				`\def\BibTeX{{\rm B\kern-.05em{\sc i\kern-.025em b}\kern-.08em`,
				`    T\kern-.1667em\lower.7ex\hbox{E}\kern-.125emX}}`,
			},
			KeywordsEnv: "IEEEkeywords",
		},
	}}
}

// TitleBlock emits the title and author commands; \maketitle comes from
// the skeleton.
func (r *ieeeRenderer) TitleBlock(a *types.DocumentAnalysis) string {
	title := "Document Title"
	if a.Title != nil {
		title = a.Title.Content
	}
	parts := []string{fmt.Sprintf(`\title{%s}`, Escape(title))}
	parts = append(parts, r.AuthorBlock(a.Authors))
	return strings.Join(parts, "\n")
}

// AuthorBlock renders one IEEEauthorblock pair per author, with ordinal
// name prefixes and the department code expanded for IEEE.
func (r *ieeeRenderer) AuthorBlock(info *types.AuthorInfo) string {
	if info == nil || len(info.Names) == 0 {
		return `\author{\IEEEauthorblockN{Author Name}\IEEEauthorblockA{\textit{Department}\\\textit{Institution}\\City, Country\\email@domain.com}}`
	}

	blocks := make([]string, 0, len(info.Names))
	for i, name := range info.Names {
		email := at(info.Emails, i)
		if email == "" {
			email = "email@domain.com"
		}
		affiliation := at(info.Affiliations, i)
		institution, city, country := SplitAffiliation(affiliation)
		dept := r.expandDept(at(info.Departments, i))

		block := fmt.Sprintf(`\IEEEauthorblockN{%s %s}
\IEEEauthorblockA{\textit{%s} \\
\textit{%s} \\
%s, %s \\
%s}`,
			Ordinal(i+1), FormatAuthorName(name),
			Escape(dept),
			Escape(institution),
			Escape(city), Escape(country),
			email)
		blocks = append(blocks, block)
	}

	return fmt.Sprintf("\\author{\n%s\n}", strings.Join(blocks, "\n\\and\n"))
}

var numericCell = regexp.MustCompile(`^[\d.,\-+%]+$`)

// Table emits the IEEE ruled style: double rules top and bottom, inferred
// column alignment, roman-numeral caption prefix.
func (r *ieeeRenderer) Table(t *types.DocumentTable) string {
	if len(t.Cells) == 0 || len(t.Cells[0]) == 0 {
		return ""
	}

	var parts []string
	parts = append(parts, `\begin{table}[!t]`)
	parts = append(parts, `\renewcommand{\arraystretch}{1.3}`)
	parts = append(parts, fmt.Sprintf(`\caption{%s}`, r.tableCaption(t)))
	parts = append(parts, fmt.Sprintf(`\label{tab:%s}`, tableLabel(t)))
	parts = append(parts, `\centering`)
	parts = append(parts, fmt.Sprintf(`\begin{tabular}{%s}`, r.columnSpec(t)))
	parts = append(parts, `\hline\hline`)

	for ri, row := range t.Cells {
		cells := make([]string, len(row))
		for ci, c := range row {
			content := Escape(c.Content)
			if t.HasHeaders && ri == 0 && content != "" {
				content = `\textbf{` + content + `}`
			}
			cells[ci] = content
		}
		parts = append(parts, strings.Join(cells, " & ")+` \\`)
		if t.HasHeaders && ri == 0 {
			parts = append(parts, `\hline`)
		}
	}

	parts = append(parts, `\hline\hline`)
	parts = append(parts, `\end{tabular}`)
	parts = append(parts, `\end{table}`)
	return strings.Join(parts, "\n")
}

// tableCaption prefixes captions with the IEEE "TABLE <roman>:" form when
// the source caption does not already carry one.
func (r *ieeeRenderer) tableCaption(t *types.DocumentTable) string {
	caption := strings.TrimSpace(t.Caption)
	if caption == "" {
		return fmt.Sprintf("TABLE %s: Untitled Table", Roman(t.ID))
	}
	escaped := Escape(caption)
	if strings.HasPrefix(strings.ToUpper(caption), "TABLE") {
		return escaped
	}
	return fmt.Sprintf("TABLE %s: %s", Roman(t.ID), escaped)
}

// columnSpec infers alignment per column: numeric columns right, the first
// column left, everything else centered.
func (r *ieeeRenderer) columnSpec(t *types.DocumentTable) string {
	aligns := make([]string, t.Columns)
	for col := 0; col < t.Columns; col++ {
		hasNumbers, hasText := false, false
		for ri := 0; ri < len(t.Cells) && ri < 3; ri++ {
			if col >= len(t.Cells[ri]) {
				continue
			}
			content := strings.TrimSpace(t.Cells[ri][col].Content)
			if content == "" {
				continue
			}
			if numericCell.MatchString(content) {
				hasNumbers = true
			} else {
				hasText = true
			}
		}
		switch {
		case hasNumbers && !hasText:
			aligns[col] = "r"
		case col == 0:
			aligns[col] = "l"
		default:
			aligns[col] = "c"
		}
	}
	return "|" + strings.Join(aligns, "|") + "|"
}

// Equation prefers numbered equation environments for display math.
func (r *ieeeRenderer) Equation(e *types.Equation) string {
	body := e.CanonicalForm
	if body == "" {
		body = Escape(e.Content)
	}
	if e.IsDisplay {
		return fmt.Sprintf("\\begin{equation}\n%s\n\\label{eq:eq%d}\n\\end{equation}", body, e.ID)
	}
	return fmt.Sprintf(`$%s$`, body)
}

// Bibliography emits the IEEE thebibliography scaffold.
func (r *ieeeRenderer) Bibliography() string {
	return `
\begin{thebibliography}{99}
\bibitem{ref1}
A. Author, ` + "``Sample paper title,''" + ` \emph{IEEE Transactions on Sample}, vol. 1, no. 1, pp. 1--10, Jan. 2024.

\bibitem{ref2}
B. Author and C. Coauthor, ` + "``Another sample title,''" + ` in \emph{Proc. IEEE Conference}, 2024, pp. 123--130.

\end{thebibliography}`
}

// at returns vals[i] or "" when the slice is shorter.
func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}
