// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Template identifies an output convention.
type Template string

const (
	TemplateIEEE     Template = "ieee"
	TemplateACM      Template = "acm"
	TemplateSpringer Template = "springer"
)

// TemplateInfo is one catalog entry describing a supported template.
type TemplateInfo struct {
	ID          Template `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
}

// LatexOutput is the result of rendering a DocumentAnalysis.
type LatexOutput struct {
	Content            string   `json:"content" yaml:"content"`
	Template           Template `json:"template" yaml:"template"`
	SectionsCount      int      `json:"sections_count" yaml:"sections_count"`
	TablesCount        int      `json:"tables_count" yaml:"tables_count"`
	EquationsCount     int      `json:"equations_count" yaml:"equations_count"`
	ListsCount         int      `json:"lists_count" yaml:"lists_count"`
	ValidationWarnings []string `json:"validation_warnings,omitempty" yaml:"validation_warnings,omitempty"`
}
