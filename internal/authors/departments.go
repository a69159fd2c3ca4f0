// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// DepartmentTable expands short department codes (as they appear in
// structured author blocks) into full department names. Expansions differ by
// output convention, so the resolver stores raw codes and renderers expand
// them through this table. The table is built once at startup and treated as
// immutable.
type DepartmentTable struct {
	byTemplate map[types.Template]map[string]string
}

// DefaultDepartments returns the built-in abbreviation table.
func DefaultDepartments() *DepartmentTable {
	common := map[string]string{
		"it":  "Information Technology",
		"ece": "Electronics and Communication Engineering",
		"eee": "Electrical and Electronics Engineering",
		"me":  "Mechanical Engineering",
		"ce":  "Civil Engineering",
	}
	ieee := cloneWith(common, map[string]string{
		"cse": "Computer Science",
		"cs":  "Computer Science",
	})
	acm := cloneWith(common, map[string]string{
		"cse": "Computer Science and Engineering",
		"cs":  "Computer Science",
	})
	springer := cloneWith(common, map[string]string{
		"cse": "Computer Science and Engineering",
		"cs":  "Computer Science and Engineering",
	})
	return &DepartmentTable{byTemplate: map[types.Template]map[string]string{
		types.TemplateIEEE:     ieee,
		types.TemplateACM:      acm,
		types.TemplateSpringer: springer,
	}}
}

// Expand returns the full department name for code under the given
// convention. Unknown codes pass through unchanged.
func (t *DepartmentTable) Expand(code string, template types.Template) string {
	key := strings.ToLower(strings.TrimSpace(code))
	if key == "" {
		return ""
	}
	m, ok := t.byTemplate[template]
	if !ok {
		m = t.byTemplate[types.TemplateIEEE]
	}
	if full, ok := m[key]; ok {
		return full
	}
	return strings.TrimSpace(code)
}

func cloneWith(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
