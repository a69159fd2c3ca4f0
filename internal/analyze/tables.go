// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// BuildTables converts the loader's raw table grids into analyzed tables.
// Captions missing from the model are recovered from nearby "Table N"
// paragraphs when one exists.
func BuildTables(doc *types.DocumentModel) []types.DocumentTable {
	tables := make([]types.DocumentTable, 0, len(doc.Tables))
	for i, raw := range doc.Tables {
		id := i + 1
		rows := len(raw.Cells)
		cols := 0
		if rows > 0 {
			cols = len(raw.Cells[0])
		}
		if rows == 0 || cols == 0 {
			continue
		}

		cells := make([][]types.TableCell, rows)
		for r, row := range raw.Cells {
			cells[r] = make([]types.TableCell, len(row))
			for c, rc := range row {
				cells[r][c] = types.TableCell{
					Content:  strings.TrimSpace(rc.Text),
					RowSpan:  rc.RowSpan,
					ColSpan:  rc.ColSpan,
					IsHeader: raw.HasHeaders && r == 0,
				}
			}
		}

		caption := strings.TrimSpace(raw.Caption)
		if caption == "" {
			caption = findCaption(doc.Paragraphs, id)
		}

		tables = append(tables, types.DocumentTable{
			ID:             id,
			Rows:           rows,
			Columns:        cols,
			Cells:          cells,
			Caption:        caption,
			Confidence:     0.95,
			HasHeaders:     raw.HasHeaders,
			ParagraphIndex: raw.ParagraphIndex,
		})
	}
	return tables
}

// findCaption looks for a paragraph mentioning "table N".
func findCaption(paragraphs []types.Paragraph, id int) string {
	needle := fmt.Sprintf("table %d", id)
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if strings.HasPrefix(strings.ToLower(text), needle) {
			return text
		}
	}
	return ""
}
