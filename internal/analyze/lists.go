// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var (
	bulletMarker  = regexp.MustCompile(`^\s*[•·‣⁃\-*+]\s+(.+)$`)
	numberMarker  = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.+)$`)
	letterMarker  = regexp.MustCompile(`^\s*([a-zA-Z])[.)]\s+(.+)$`)
	romanloMarker = regexp.MustCompile(`^\s*([ivxlcdm]+)[.)]\s+(.+)$`)
	listStyleName = regexp.MustCompile(`(?i)list|bullet|number`)
)

// DetectLists groups consecutive list-marked paragraphs into DocumentLists.
// A change of list type or a non-list paragraph closes the current run.
func DetectLists(paragraphs []types.Paragraph) []types.DocumentList {
	var lists []types.DocumentList
	var items []types.ListItem
	var current types.ListType
	start := -1
	id := 1

	flush := func() {
		if len(items) == 0 {
			return
		}
		lists = append(lists, buildList(id, current, items, start))
		id++
		items = nil
		start = -1
	}

	for i, p := range paragraphs {
		item, lt, ok := parseListItem(p)
		if !ok {
			flush()
			continue
		}
		if len(items) > 0 && lt != current {
			flush()
		}
		if len(items) == 0 {
			current = lt
			start = i
		}
		items = append(items, item)
	}
	flush()

	for li := range lists {
		markSubitems(lists[li].Items)
	}
	return lists
}

// parseListItem recognizes one list-marked paragraph and strips its marker.
// Heading- and title-styled paragraphs never count: a numbered heading is a
// section, not a list item.
func parseListItem(p types.Paragraph) (types.ListItem, types.ListType, bool) {
	text := p.Text
	if strings.TrimSpace(text) == "" {
		return types.ListItem{}, "", false
	}
	style := strings.ToLower(p.Style)
	if strings.Contains(style, "heading") || strings.Contains(style, "title") {
		return types.ListItem{}, "", false
	}

	level := 1 + indentDepth(text)

	if m := numberMarker.FindStringSubmatch(text); m != nil {
		idx, _ := strconv.Atoi(m[1])
		return types.ListItem{
			Content:  strings.TrimSpace(m[2]),
			Level:    level,
			ItemType: types.ListOrdered,
			Index:    idx,
		}, types.ListOrdered, true
	}
	if m := romanloMarker.FindStringSubmatch(text); m != nil {
		return types.ListItem{
			Content:  strings.TrimSpace(m[2]),
			Level:    level,
			ItemType: types.ListOrdered,
		}, types.ListOrdered, true
	}
	if m := letterMarker.FindStringSubmatch(text); m != nil && listStyleName.MatchString(p.Style) {
		// Lettered markers alone are too ambiguous ("A. Author" is an
		// author line); require a list style to confirm.
		return types.ListItem{
			Content:  strings.TrimSpace(m[2]),
			Level:    level,
			ItemType: types.ListOrdered,
		}, types.ListOrdered, true
	}
	if m := bulletMarker.FindStringSubmatch(text); m != nil {
		return types.ListItem{
			Content:  strings.TrimSpace(m[1]),
			Level:    level,
			ItemType: types.ListUnordered,
		}, types.ListUnordered, true
	}
	return types.ListItem{}, "", false
}

// indentDepth derives nesting from leading whitespace, four columns per
// level, capped at eight extra levels.
func indentDepth(text string) int {
	spaces := 0
	for _, r := range text {
		switch r {
		case ' ':
			spaces++
		case '\t':
			spaces += 4
		default:
			d := spaces / 4
			if d > 8 {
				return 8
			}
			return d
		}
	}
	return 0
}

// buildList assembles a DocumentList and its depth metadata.
func buildList(id int, lt types.ListType, items []types.ListItem, start int) types.DocumentList {
	maxDepth := 1
	for _, it := range items {
		if it.Level > maxDepth {
			maxDepth = it.Level
		}
	}
	return types.DocumentList{
		ID:             id,
		ListType:       lt,
		Items:          append([]types.ListItem(nil), items...),
		Confidence:     0.9,
		IsNested:       maxDepth > 1,
		MaxDepth:       maxDepth,
		ParagraphIndex: start,
	}
}

// markSubitems sets HasSubitems on items directly followed by a deeper item.
func markSubitems(items []types.ListItem) {
	for i := 0; i+1 < len(items); i++ {
		if items[i+1].Level > items[i].Level {
			items[i].HasSubitems = true
		}
	}
}
