// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors resolves author names, affiliations, departments, emails,
// and corresponding-author flags from the front matter of a document. Two
// strategies run in order and the first success wins: a structured labeled
// block with semicolon-separated fields, then a looser scan of the paragraph
// after the title. When neither applies the resolver returns nil rather
// than guessing.
package authors

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// frontMatterWindow bounds how far into the document author lines may sit.
const frontMatterWindow = 20

var (
	fieldLabel   = regexp.MustCompile(`(?i)^(name|department|affiliation|institution|mail|email|orcid)s?\s*[:\-]\s*(.+)$`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	nameSplit    = regexp.MustCompile(`\s*(?:,|\band\b|&)\s*`)
)

// Resolve extracts author information from the leading paragraphs. titleIdx
// is the paragraph index of the detected title, or -1 when no title was
// found; the fallback strategy anchors on it.
func Resolve(paragraphs []types.Paragraph, titleIdx int) *types.AuthorInfo {
	if info := resolveStructured(paragraphs); info != nil {
		return info
	}
	return resolveFallback(paragraphs, titleIdx)
}

// resolveStructured parses a labeled block such as
//
//	Name: A ; B
//	Department: cse ; it
//	Mail: a@x.com* ; b@x.com
//
// Fields are index-aligned: the k-th name pairs with the k-th department and
// email. A trailing '*' on an email marks that index as corresponding
// author. Department codes are expanded during rendering, not here.
func resolveStructured(paragraphs []types.Paragraph) *types.AuthorInfo {
	fields := map[string][]string{}
	var corresponding []int

	for i, p := range paragraphs {
		if i >= frontMatterWindow {
			break
		}
		for _, line := range strings.Split(p.Text, "\n") {
			m := fieldLabel.FindStringSubmatch(strings.TrimSpace(line))
			if m == nil {
				continue
			}
			key := strings.ToLower(m[1])
			values := splitFields(m[2])

			if key == "mail" || key == "email" {
				for k, v := range values {
					if strings.HasSuffix(v, "*") {
						values[k] = strings.TrimRight(v, "* ")
						corresponding = append(corresponding, k)
					}
				}
				key = "mail"
			}
			if _, seen := fields[key]; !seen {
				fields[key] = values
			}
		}
	}

	names := fields["name"]
	if len(names) == 0 {
		return nil
	}

	info := &types.AuthorInfo{
		Names:                 names,
		Departments:           padTo(fields["department"], len(names)),
		Emails:                padTo(fields["mail"], len(names)),
		CorrespondingIndices:  corresponding,
		Identifiers:           padTo(fields["orcid"], len(names)),
		StructuredBlockParsed: true,
	}

	affiliations := fields["affiliation"]
	if len(affiliations) == 0 {
		affiliations = fields["institution"]
	}
	info.Affiliations = padTo(affiliations, len(names))
	return info
}

// resolveFallback scans the paragraph after the title for comma/and
// separated name-like tokens and pairs it with an email match on the same
// or an adjacent line.
func resolveFallback(paragraphs []types.Paragraph, titleIdx int) *types.AuthorInfo {
	start := titleIdx + 1
	if titleIdx < 0 {
		start = 0
	}

	for i := start; i < len(paragraphs) && i < frontMatterWindow; i++ {
		text := strings.TrimSpace(paragraphs[i].Text)
		if text == "" {
			continue
		}
		if !looksLikeNameLine(text) {
			// The first substantial paragraph after the title decides:
			// if it is not a name line there is no author block.
			return nil
		}

		names := splitNames(text)
		if len(names) == 0 {
			return nil
		}

		var emails []string
		for j := i; j < len(paragraphs) && j <= i+2; j++ {
			emails = append(emails, emailPattern.FindAllString(paragraphs[j].Text, -1)...)
		}

		return &types.AuthorInfo{
			Names:  names,
			Emails: padTo(emails, len(names)),
		}
	}
	return nil
}

// looksLikeNameLine filters out headings, labels, and long prose.
func looksLikeNameLine(text string) bool {
	if emailPattern.MatchString(text) && !strings.ContainsAny(text, ",&") && !strings.Contains(text, " and ") {
		return false
	}
	if strings.ContainsAny(text, ":;0123456789") {
		return false
	}
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > 16 {
		return false
	}
	// Every token should be a capitalized word, a connective, or an
	// initial.
	for _, w := range words {
		w = strings.Trim(w, ",.")
		if w == "" || strings.EqualFold(w, "and") {
			continue
		}
		r := rune(w[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// splitNames splits a name line on commas and "and".
func splitNames(text string) []string {
	var names []string
	for _, part := range nameSplit.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// splitFields splits a labeled value on semicolons and trims each piece.
func splitFields(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// padTo extends vals with empty strings up to n entries, and never truncates
// below its own length: a mismatch surfaces as explicit blanks, not by
// dropping data.
func padTo(vals []string, n int) []string {
	if vals == nil && n == 0 {
		return nil
	}
	out := append([]string(nil), vals...)
	for len(out) < n {
		out = append(out, "")
	}
	return out
}
