// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docmodel reads and validates the serialized document model
// produced by the external document loader. The pipeline never touches raw
// word-processor bytes; its input is always a model file in this package's
// YAML form.
package docmodel

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Load reads a document model from path. Malformed or empty models are
// load-stage errors; the pipeline aborts before analysis.
func Load(path string) (*types.DocumentModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewStageError(types.StageLoad, "opening document model", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if doc.Filename == "" {
		doc.Filename = path
	}
	return doc, nil
}

// Decode parses a document model from r and normalizes it.
func Decode(r io.Reader) (*types.DocumentModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewStageError(types.StageLoad, "reading document model", err)
	}

	var doc types.DocumentModel
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, types.NewStageError(types.StageLoad, "parsing document model", err)
	}

	if err := validate(&doc); err != nil {
		return nil, types.NewStageError(types.StageLoad, "validating document model", err)
	}
	normalize(&doc)
	return &doc, nil
}

// validate rejects models the analyzers cannot work with.
func validate(doc *types.DocumentModel) error {
	if len(doc.Paragraphs) == 0 {
		return fmt.Errorf("document model has no paragraphs")
	}
	hasText := false
	for _, p := range doc.Paragraphs {
		if !p.IsBlank() {
			hasText = true
			break
		}
	}
	if !hasText {
		return fmt.Errorf("document model has only blank paragraphs")
	}

	for i, t := range doc.Tables {
		if len(t.Cells) == 0 {
			return fmt.Errorf("table %d has no cells", i)
		}
		width := len(t.Cells[0])
		if width == 0 {
			return fmt.Errorf("table %d has an empty first row", i)
		}
		for r, row := range t.Cells {
			if len(row) != width {
				return fmt.Errorf("table %d row %d has %d cells, want %d", i, r, len(row), width)
			}
		}
		if t.ParagraphIndex < 0 || t.ParagraphIndex >= len(doc.Paragraphs) {
			return fmt.Errorf("table %d paragraph index %d out of range", i, t.ParagraphIndex)
		}
	}
	return nil
}

// normalize trims paragraph text edges the loader sometimes leaves behind
// and clamps cell spans to at least 1.
func normalize(doc *types.DocumentModel) {
	for i := range doc.Paragraphs {
		doc.Paragraphs[i].Text = strings.TrimRight(doc.Paragraphs[i].Text, " \t")
	}
	for ti := range doc.Tables {
		for ri := range doc.Tables[ti].Cells {
			for ci := range doc.Tables[ti].Cells[ri] {
				c := &doc.Tables[ti].Cells[ri][ci]
				if c.RowSpan < 1 {
					c.RowSpan = 1
				}
				if c.ColSpan < 1 {
					c.ColSpan = 1
				}
			}
		}
	}
}
