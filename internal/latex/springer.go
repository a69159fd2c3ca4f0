// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/authors"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// springerRenderer emits sn-jnl output with structured \fnm/\sur author
// names, numbered \affil blocks, and the \abstract command form.
type springerRenderer struct {
	base
}

func newSpringer(depts *authors.DepartmentTable) *springerRenderer {
	return &springerRenderer{base{
		template: types.TemplateSpringer,
		depts:    depts,
		conv: Conventions{
			DocumentClass: `\documentclass[pdflatex,sn-mathphys-num]{sn-jnl}`,
			Packages: []string{
				`\usepackage{graphicx}`,
				`\usepackage{multirow}`,
				`\usepackage{amsmath,amssymb,amsfonts}`,
				`\usepackage{amsthm}`,
				`\usepackage{mathrsfs}`,
				`\usepackage[title]{appendix}`,
				`\usepackage{xcolor}`,
				`\usepackage{textcomp}`,
				`\usepackage{manyfoot}`,
				`\usepackage{booktabs}`,
				`\usepackage{algorithm}`,
				`\usepackage{algorithmicx}`,
				`\usepackage{algpseudocode}`,
				`\usepackage{listings}`,
			},
			ExtraPreamble: []string{
				`\theoremstyle{thmstyleone}`,
				`\newtheorem{theorem}{Theorem}`,
				`\newtheorem{proposition}[theorem]{Proposition}`,
				``,
				`\theoremstyle{thmstyletwo}`,
				`\newtheorem{example}{Example}`,
				`\newtheorem{remark}{Remark}`,
				``,
				`\theoremstyle{thmstylethree}`,
				`\newtheorem{definition}{Definition}`,
				``,
				`\raggedbottom`,
			},
			AbstractCommand: true,
			TitleShortForm:  true,
		},
	}}
}

func (r *springerRenderer) TitleBlock(a *types.DocumentAnalysis) string {
	title := "Document Title"
	if a.Title != nil {
		title = a.Title.Content
	}
	short := title
	if len(short) > 45 {
		short = strings.TrimSpace(short[:45])
	}
	parts := []string{fmt.Sprintf(`\title[%s]{%s}`, Escape(short), Escape(title))}
	parts = append(parts, r.AuthorBlock(a.Authors))
	return strings.Join(parts, "\n\n")
}

// AuthorBlock emits \author and \affil pairs numbered per author. The
// corresponding author and its affiliation carry the starred forms.
func (r *springerRenderer) AuthorBlock(info *types.AuthorInfo) string {
	if info == nil || len(info.Names) == 0 {
		return `\author*[1]{\fnm{Author} \sur{Name}}\email{email@domain.com}

\affil*[1]{\orgname{Institution}, \orgaddress{\city{City}, \country{Country}}}`
	}

	corresponding := map[int]bool{}
	for _, i := range info.CorrespondingIndices {
		corresponding[i] = true
	}
	// Springer wants exactly one starred author; default to the first
	// when the resolver found none.
	if len(corresponding) == 0 {
		corresponding[0] = true
	}

	var authorLines, affilLines []string
	for i, name := range info.Names {
		first, last := SplitName(FormatAuthorName(name))
		star := ""
		if corresponding[i] {
			star = "*"
		}

		email := at(info.Emails, i)
		if email == "" {
			email = "email@domain.com"
		}
		authorLines = append(authorLines, fmt.Sprintf(`\author%s[%d]{\fnm{%s} \sur{%s}}\email{%s}`,
			star, i+1, Escape(first), Escape(last), email))

		institution, city, country := SplitAffiliation(at(info.Affiliations, i))
		affil := fmt.Sprintf(`\affil%s[%d]{`, star, i+1)
		if dept := strings.TrimSpace(at(info.Departments, i)); dept != "" {
			affil += fmt.Sprintf(`\orgdiv{%s}, `, Escape(r.expandDept(dept)))
		}
		affil += fmt.Sprintf(`\orgname{%s}, \orgaddress{\city{%s}, \country{%s}}}`,
			Escape(institution), Escape(city), Escape(country))
		affilLines = append(affilLines, affil)
	}

	return strings.Join(authorLines, "\n\n") + "\n\n" + strings.Join(affilLines, "\n\n")
}

// Bibliography emits the sn-jnl numbered bibliography scaffold.
func (r *springerRenderer) Bibliography() string {
	return `\begin{thebibliography}{99}

\bibitem{ref1}
Author, A.: Sample paper title. Journal of Samples \textbf{1}, 1--10 (2024)

\bibitem{ref2}
Author, B., Coauthor, C.: Another sample title. In: Proceedings of the Sample Conference, pp. 123--130 (2024)

\end{thebibliography}`
}
