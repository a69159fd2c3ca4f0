// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/authors"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// base supplies the convention-independent renderer blocks. Concrete
// renderers embed it and override only what their convention changes.
type base struct {
	template types.Template
	conv     Conventions
	depts    *authors.DepartmentTable
}

func (b *base) Template() types.Template { return b.template }
func (b *base) conventions() Conventions { return b.conv }
func (b *base) Preamble() string         { return buildPreamble(b.conv) }

// expandDept returns "Department of X" with the code expanded for this
// renderer's convention, or a bare fallback when no code is known.
func (b *base) expandDept(code string) string {
	full := b.depts.Expand(code, b.template)
	if full == "" {
		return "Department"
	}
	return "Department of " + full
}

// AbstractBlock wraps the abstract per the convention: an environment by
// default, the \abstract{...} command form when the convention demands it.
func (b *base) AbstractBlock(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if b.conv.AbstractCommand {
		return fmt.Sprintf("\\abstract{%s}\n", Escape(text))
	}
	return fmt.Sprintf("\\begin{abstract}\n%s\n\\end{abstract}\n", Escape(text))
}

// KeywordBlock wraps the keywords in the convention's environment or
// command form.
func (b *base) KeywordBlock(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if b.conv.KeywordsEnv != "" {
		return fmt.Sprintf("\\begin{%s}\n%s\n\\end{%s}\n", b.conv.KeywordsEnv, Escape(text), b.conv.KeywordsEnv)
	}
	return fmt.Sprintf("\\keywords{%s}\n", Escape(text))
}

// List renders a document list with nesting preserved; every convention
// shares the enumerate/itemize environments.
func (b *base) List(l *types.DocumentList) string {
	if len(l.Items) == 0 {
		return ""
	}
	env := "itemize"
	if l.ListType == types.ListOrdered {
		env = "enumerate"
	}

	var lines []string
	emitListLevel(&lines, l.Items, 0, 1, env, "")
	return strings.Join(lines, "\n")
}

// emitListLevel writes items at the given level, recursing into deeper
// nested runs. Returns the index of the first item not consumed.
func emitListLevel(lines *[]string, items []types.ListItem, idx, level int, env, indent string) int {
	*lines = append(*lines, indent+`\begin{`+env+`}`)
	for idx < len(items) {
		it := items[idx]
		if it.Level < level {
			break
		}
		if it.Level > level {
			idx = emitListLevel(lines, items, idx, level+1, env, indent+"  ")
			continue
		}
		*lines = append(*lines, fmt.Sprintf(`%s  \item %s`, indent, Escape(it.Content)))
		idx++
	}
	*lines = append(*lines, indent+`\end{`+env+`}`)
	return idx
}

// Equation renders math content from its canonical form: bracketed display
// math or inline dollars. IEEE overrides this with numbered environments.
func (b *base) Equation(e *types.Equation) string {
	body := e.CanonicalForm
	if body == "" {
		body = Escape(e.Content)
	}
	if e.IsDisplay {
		return fmt.Sprintf(`\[%s\]`, body)
	}
	return fmt.Sprintf(`$%s$`, body)
}

// Table renders a booktabs-style table shared by the ACM and Springer
// conventions; IEEE overrides with its ruled style.
func (b *base) Table(t *types.DocumentTable) string {
	if len(t.Cells) == 0 || len(t.Cells[0]) == 0 {
		return ""
	}
	cols := strings.Repeat("l", t.Columns)

	var parts []string
	parts = append(parts, `\begin{table}[htbp]`)

	caption := strings.TrimSpace(t.Caption)
	if caption == "" {
		caption = fmt.Sprintf("Table %d", t.ID)
	}
	parts = append(parts, fmt.Sprintf(`\caption{%s}`, Escape(caption)))
	parts = append(parts, fmt.Sprintf(`\label{tab:%s}`, tableLabel(t)))
	parts = append(parts, `\centering`)
	parts = append(parts, fmt.Sprintf(`\begin{tabular}{%s}`, cols))
	parts = append(parts, `\toprule`)

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
			parts = append(parts, `\midrule`)
		}
	}

	parts = append(parts, `\bottomrule`)
	parts = append(parts, `\end{tabular}`)
	parts = append(parts, `\end{table}`)
	return strings.Join(parts, "\n")
}

// tableLabel derives a stable label from the table id and caption.
func tableLabel(t *types.DocumentTable) string {
	if t.Caption == "" {
		return fmt.Sprintf("table_%d", t.ID)
	}
	return fmt.Sprintf("table_%d_%s", t.ID, LabelSlug(t.Caption))
}
