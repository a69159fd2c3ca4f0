// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docmodel

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

func TestDecode(t *testing.T) {
	input := `
filename: sample.docx
paragraphs:
  - text: "Document Title   "
    style: Title
  - text: Body text.
    style: Normal
tables:
  - cells:
      - [{text: Method}, {text: Accuracy}]
      - [{text: Ours}, {text: "0.89"}]
    has_headers: true
    paragraph_index: 1
`
	doc, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Filename != "sample.docx" {
		t.Errorf("Filename = %q", doc.Filename)
	}
	// Trailing whitespace is normalized away.
	if doc.Paragraphs[0].Text != "Document Title" {
		t.Errorf("paragraph text = %q, want trimmed", doc.Paragraphs[0].Text)
	}
	if len(doc.Tables) != 1 || !doc.Tables[0].HasHeaders {
		t.Fatalf("tables = %+v", doc.Tables)
	}
	// Zero spans clamp to 1.
	if doc.Tables[0].Cells[0][0].RowSpan != 1 || doc.Tables[0].Cells[0][0].ColSpan != 1 {
		t.Errorf("spans = %+v, want clamped to 1", doc.Tables[0].Cells[0][0])
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no paragraphs", input: "filename: x.docx\nparagraphs: []\n"},
		{name: "only blanks", input: "paragraphs:\n  - text: \"   \"\n"},
		{name: "ragged table", input: `
paragraphs:
  - text: hello
tables:
  - cells:
      - [{text: a}, {text: b}]
      - [{text: c}]
    paragraph_index: 0
`},
		{name: "table index out of range", input: `
paragraphs:
  - text: hello
tables:
  - cells:
      - [{text: a}]
    paragraph_index: 9
`},
		{name: "not yaml", input: "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			var stageErr *types.StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("err = %T, want StageError", err)
			}
			if stageErr.Stage != types.StageLoad {
				t.Errorf("stage = %q, want load", stageErr.Stage)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	content := "paragraphs:\n  - text: A Valid Document\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Filename falls back to the path when the model omits it.
	if doc.Filename != path {
		t.Errorf("Filename = %q, want %q", doc.Filename, path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load succeeded, want error")
	}
	var stageErr *types.StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != types.StageLoad {
		t.Errorf("err = %v, want load-stage error", err)
	}
}
