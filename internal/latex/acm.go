// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/authors"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// acmRenderer emits acmart output. ACM places the abstract and keywords
// before \maketitle and uses structured per-author affiliation blocks.
type acmRenderer struct {
	base
}

func newACM(depts *authors.DepartmentTable) *acmRenderer {
	return &acmRenderer{base{
		template: types.TemplateACM,
		depts:    depts,
		conv: Conventions{
			DocumentClass: `\documentclass[acmtog]{acmart}`,
			Packages: []string{
				`\usepackage{booktabs}`,
				`\usepackage{graphicx}`,
				`\usepackage{amsmath}`,
			},
			ExtraPreamble: []string{
				`\setcopyright{acmlicensed}`,
				`\copyrightyear{2026}`,
				`\acmYear{2026}`,
				`\acmDOI{XX.XXXX/XXXXXXX.XXXXXXX}`,
				`\citestyle{acmauthoryear}`,
			},
			AbstractBeforeMaketitle: true,
		},
	}}
}

func (r *acmRenderer) TitleBlock(a *types.DocumentAnalysis) string {
	title := "Document Title"
	if a.Title != nil {
		title = a.Title.Content
	}
	parts := []string{fmt.Sprintf(`\title{%s}`, Escape(title))}
	parts = append(parts, r.AuthorBlock(a.Authors))
	return strings.Join(parts, "\n\n")
}

// AuthorBlock emits one \author block per author with the acmart
// affiliation structure.
func (r *acmRenderer) AuthorBlock(info *types.AuthorInfo) string {
	if info == nil || len(info.Names) == 0 {
		return `\author{Author Name}
\email{email@domain.com}
\affiliation{%
  \institution{Institution}
  \city{City}
  \country{Country}
}`
	}

	blocks := make([]string, 0, len(info.Names))
	for i, name := range info.Names {
		email := at(info.Emails, i)
		if email == "" {
			email = "email@domain.com"
		}
		institution, city, country := SplitAffiliation(at(info.Affiliations, i))
		if dept := strings.TrimSpace(at(info.Departments, i)); dept != "" {
			institution = r.expandDept(dept) + ", " + institution
		}

		block := fmt.Sprintf(`\author{%s}
\email{%s}
\affiliation{%%
  \institution{%s}
  \city{%s}
  \country{%s}
}`,
			Escape(FormatAuthorName(name)),
			email,
			Escape(institution),
			Escape(city),
			Escape(country))
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n")
}

// Bibliography points at the ACM reference format with an external
// references file.
func (r *acmRenderer) Bibliography() string {
	return `\bibliographystyle{ACM-Reference-Format}
\bibliography{references}`
}
