// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var envPattern = regexp.MustCompile(`\\(begin|end)\{([^}]+)\}`)

// Validate performs structural checks on rendered LaTeX and returns textual
// warnings. It never fails: a broken document is a warning list, not an
// error.
func Validate(content string) []string {
	var warnings []string

	if open, close := countUnescaped(content, '{'), countUnescaped(content, '}'); open != close {
		warnings = append(warnings, fmt.Sprintf(
			"unbalanced braces: %d opening, %d closing", open, close))
	}

	if n := countUnescaped(content, '$'); n%2 != 0 {
		warnings = append(warnings, "odd number of unescaped dollar signs")
	}

	if !strings.Contains(content, `\begin{document}`) {
		warnings = append(warnings, `missing \begin{document}`)
	}
	if !strings.Contains(content, `\end{document}`) {
		warnings = append(warnings, `missing \end{document}`)
	}

	warnings = append(warnings, unbalancedEnvironments(content)...)

	for _, tok := range placeholderPattern.FindAllString(content, -1) {
		warnings = append(warnings, "leftover placeholder token "+tok)
	}

	return warnings
}

// countUnescaped counts occurrences of ch not preceded by a backslash.
func countUnescaped(s string, ch byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch && (i == 0 || s[i-1] != '\\') {
			n++
		}
	}
	return n
}

// unbalancedEnvironments pairs \begin{env} with \end{env} counts.
func unbalancedEnvironments(content string) []string {
	counts := map[string]int{}
	for _, m := range envPattern.FindAllStringSubmatch(content, -1) {
		if m[1] == "begin" {
			counts[m[2]]++
		} else {
			counts[m[2]]--
		}
	}

	var names []string
	for env, n := range counts {
		if n != 0 {
			names = append(names, env)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	warnings := make([]string, 0, len(names))
	for _, env := range names {
		n := counts[env]
		if n > 0 {
			warnings = append(warnings, fmt.Sprintf(`environment %q: %d \begin without \end`, env, n))
		} else {
			warnings = append(warnings, fmt.Sprintf(`environment %q: %d \end without \begin`, env, -n))
		}
	}
	return warnings
}
