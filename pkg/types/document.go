// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared value types exchanged between pipeline
// stages: the input document model produced by the external loader, the
// analysis record built by the detectors, and the LaTeX generation output.
package types

import "strings"

// Paragraph is one block of flowing text from the source document. Style
// carries the word-processor style name when the loader preserved one
// (e.g. "Title", "Heading 1", "Abstract"); it is empty for body text.
type Paragraph struct {
	Text  string `json:"text" yaml:"text"`
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
	Runs  []Run  `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// Run is a fragment of a paragraph. MathML holds embedded math markup when
// the run wraps a native equation object; detectors treat its presence as
// the strongest equation signal.
type Run struct {
	Text   string `json:"text" yaml:"text"`
	MathML string `json:"mathml,omitempty" yaml:"mathml,omitempty"`
}

// RawCell is one cell of an input table grid. Spans below 1 are normalized
// to 1 during load.
type RawCell struct {
	Text    string `json:"text" yaml:"text"`
	RowSpan int    `json:"row_span,omitempty" yaml:"row_span,omitempty"`
	ColSpan int    `json:"col_span,omitempty" yaml:"col_span,omitempty"`
}

// RawTable is a table as delivered by the document loader. ParagraphIndex
// locates the table in the paragraph stream so the boundary stage can place
// its placeholder token.
type RawTable struct {
	Cells          [][]RawCell `json:"cells" yaml:"cells"`
	Caption        string      `json:"caption,omitempty" yaml:"caption,omitempty"`
	HasHeaders     bool        `json:"has_headers,omitempty" yaml:"has_headers,omitempty"`
	ParagraphIndex int         `json:"paragraph_index" yaml:"paragraph_index"`
}

// DocumentModel is the normalized read-only snapshot the pipeline consumes.
// The pipeline never reads raw document bytes; building this model is the
// loader's job.
type DocumentModel struct {
	Filename   string      `json:"filename,omitempty" yaml:"filename,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
	Tables     []RawTable  `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// IsBlank reports whether the paragraph carries no visible text.
func (p Paragraph) IsBlank() bool {
	return strings.TrimSpace(p.Text) == ""
}

// WordCount returns the number of whitespace-separated tokens across all
// paragraphs.
func (d *DocumentModel) WordCount() int {
	n := 0
	for _, p := range d.Paragraphs {
		n += len(strings.Fields(p.Text))
	}
	return n
}
