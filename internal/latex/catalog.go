// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"

	"github.com/pdiddy/manuscript-engine/internal/authors"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// ForTemplate returns the renderer for the requested template. Unknown
// template identifiers wrap types.ErrTemplateUnknown so callers can list
// the catalog in their error path.
func ForTemplate(template types.Template, depts *authors.DepartmentTable) (Renderer, error) {
	if depts == nil {
		depts = authors.DefaultDepartments()
	}
	switch template {
	case types.TemplateIEEE:
		return newIEEE(depts), nil
	case types.TemplateACM:
		return newACM(depts), nil
	case types.TemplateSpringer:
		return newSpringer(depts), nil
	default:
		return nil, fmt.Errorf("template %q: %w", template, types.ErrTemplateUnknown)
	}
}

// Catalog describes the available templates for discovery surfaces.
func Catalog() []types.TemplateInfo {
	return []types.TemplateInfo{
		{
			ID:          types.TemplateIEEE,
			Name:        "IEEE Conference",
			Description: "IEEEtran conference format with numbered author blocks and ruled tables",
			Features:    []string{"two-column", "IEEEkeywords", "numbered equations", "roman table captions"},
		},
		{
			ID:          types.TemplateACM,
			Name:        "ACM Master Article",
			Description: "acmart format with structured affiliations and author-year citations",
			Features:    []string{"abstract before maketitle", "structured affiliations", "booktabs tables", "BibTeX bibliography"},
		},
		{
			ID:          types.TemplateSpringer,
			Name:        "Springer Nature Journal",
			Description: "sn-jnl journal format with fnm/sur author names and theorem environments",
			Features:    []string{"short title form", "numbered affiliations", "corresponding author star", "theorem setup"},
		},
	}
}
