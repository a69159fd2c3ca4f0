// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"
	"regexp"
	"strings"
)

// escaper rewrites LaTeX special characters in one pass, so replacement
// text is never re-escaped.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// Escape rewrites LaTeX special characters in text.
func Escape(text string) string {
	return escaper.Replace(text)
}

// placeholderPattern matches the boundary stage's position-preserving
// tokens.
var placeholderPattern = regexp.MustCompile(`\[(?:TABLE|LIST|EQUATION)_\d+\]`)

// EscapePreservingPlaceholders escapes text while keeping placeholder
// tokens intact so they can be resolved afterwards.
func EscapePreservingPlaceholders(text string) string {
	if text == "" {
		return ""
	}
	matches := placeholderPattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return Escape(text)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(Escape(text[last:m[0]]))
		b.WriteString(text[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(Escape(text[last:]))
	return b.String()
}

var (
	citationGroup   = regexp.MustCompile(`\[(\d+(?:[,\s\-]+\d+)*)\]`)
	citationCleanup = regexp.MustCompile(`[\s\-]+`)
)

// RewriteCitations converts bracketed numeric citations ([1], [2-4],
// [1, 3]) into \cite commands.
func RewriteCitations(text string) string {
	return citationGroup.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[1 : len(m)-1]
		keys := citationCleanup.ReplaceAllString(inner, ",")
		return fmt.Sprintf(`\cite{%s}`, keys)
	})
}

var (
	boldStars = regexp.MustCompile(`\*\*(.+?)\*\*`)
	// Underscores may already be escaped by the time emphasis runs.
	boldUnders = regexp.MustCompile(`(?:\\_|_){2}(.+?)(?:\\_|_){2}`)
	italStars  = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
	codeTicks  = regexp.MustCompile("`([^`]+)`")
)

// ConvertEmphasis maps lightweight emphasis markers that survive document
// export into LaTeX commands.
func ConvertEmphasis(text string) string {
	text = boldStars.ReplaceAllString(text, `\textbf{$1}`)
	text = boldUnders.ReplaceAllString(text, `\textbf{$1}`)
	text = italStars.ReplaceAllString(text, `\textit{$1}`)
	text = codeTicks.ReplaceAllString(text, `\texttt{$1}`)
	return text
}

var nonLabelChars = regexp.MustCompile(`[^a-z0-9]+`)

// LabelSlug converts a title into a LaTeX-safe label fragment.
func LabelSlug(title string) string {
	slug := nonLabelChars.ReplaceAllString(strings.ToLower(title), "_")
	return strings.Trim(slug, "_")
}

var leadingNumber = regexp.MustCompile(`^\d+(?:\.\d+)*\s*\.?\s*`)

// CleanSectionTitle strips leading section numbers and normalizes
// whitespace; all-caps titles are converted to title case.
func CleanSectionTitle(title string) string {
	title = leadingNumber.ReplaceAllString(strings.TrimSpace(title), "")
	title = strings.Join(strings.Fields(title), " ")
	if title != "" && title == strings.ToUpper(title) && strings.ContainsAny(title, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		title = titleCase(title)
	}
	return title
}

// titleCase capitalizes the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatAuthorName capitalizes each word of a name.
func FormatAuthorName(name string) string {
	return titleCase(strings.TrimSpace(name))
}

// Ordinal renders 1-based author numbering with LaTeX superscripts
// (1\textsuperscript{st}, ...).
func Ordinal(n int) string {
	suffix := "th"
	switch n {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	return fmt.Sprintf(`%d\textsuperscript{%s}`, n, suffix)
}

var romanValues = []struct {
	value   int
	numeral string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman converts n to a roman numeral (IEEE table numbering).
func Roman(n int) string {
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.numeral)
			n -= rv.value
		}
	}
	return b.String()
}

// SplitAffiliation breaks "Institution, City, Country" into its parts,
// substituting placeholders for missing pieces.
func SplitAffiliation(affiliation string) (institution, city, country string) {
	parts := strings.Split(affiliation, ",")
	get := func(i int, fallback string) string {
		if i < len(parts) && strings.TrimSpace(parts[i]) != "" {
			return strings.TrimSpace(parts[i])
		}
		return fallback
	}
	return get(0, "Institution"), get(1, "City"), get(2, "Country")
}

// SplitName returns the given and family parts of a full name.
func SplitName(name string) (first, last string) {
	fields := strings.Fields(strings.TrimSpace(name))
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
